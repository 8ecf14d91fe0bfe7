// Package locale keeps the nf_lang cookie in step with the active locale.
package locale

// Source is an observable locale value. Subscribers are notified
// synchronously, in subscription order, and only when the value changes.
// A Source is owned by one page or request and is not safe for concurrent use.
type Source struct {
	value string
	next  int
	subs  []subscription
}

type subscription struct {
	id int
	fn func(string)
}

// NewSource returns a Source holding the initial locale.
func NewSource(initial string) *Source {
	return &Source{value: initial}
}

// Value returns the current locale.
func (s *Source) Value() string {
	return s.value
}

// Set changes the locale. Setting the current value again is a no-op.
func (s *Source) Set(lang string) {
	if lang == s.value {
		return
	}
	s.value = lang
	for _, sub := range append([]subscription(nil), s.subs...) {
		sub.fn(lang)
	}
}

// Subscribe registers fn for future changes and returns its cancel func.
func (s *Source) Subscribe(fn func(string)) (unsubscribe func()) {
	s.next++
	id := s.next
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
