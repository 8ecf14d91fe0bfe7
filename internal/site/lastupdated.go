package site

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"
)

// Timestamps answers "when was this source last changed", preferring the
// latest commit that touched the file and falling back to its mtime.
type Timestamps struct {
	repo *git.Repository
	root string
	log  zerolog.Logger
}

// NewTimestamps opens the git repository containing dir, if there is one.
func NewTimestamps(dir string, logger zerolog.Logger) *Timestamps {
	t := &Timestamps{log: logger}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		logger.Debug().Err(err).Str("dir", dir).Msg("no git repository, using file times")
		return t
	}
	wt, err := repo.Worktree()
	if err != nil {
		logger.Debug().Err(err).Msg("repository has no worktree, using file times")
		return t
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return t
	}
	t.repo, t.root = repo, root
	return t
}

// LastUpdated returns the last-modified time of the file at path.
func (t *Timestamps) LastUpdated(path string) time.Time {
	if when, ok := t.fromGit(path); ok {
		return when
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (t *Timestamps) fromGit(path string) (time.Time, bool) {
	if t.repo == nil {
		return time.Time{}, false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return time.Time{}, false
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(t.root, abs)
	if err != nil {
		return time.Time{}, false
	}
	rel = filepath.ToSlash(rel)

	iter, err := t.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		t.log.Debug().Err(err).Str("file", rel).Msg("git log failed")
		return time.Time{}, false
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		// Untracked file or empty history.
		return time.Time{}, false
	}
	return commit.Committer.When, true
}
