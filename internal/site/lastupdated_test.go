package site

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/go-spring-projects/website/internal/log"
)

func TestLastUpdatedFromGit(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(dir, "docs", "index.md"), "# Home\n")

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("docs/index.md"); err != nil {
		t.Fatal(err)
	}
	when := time.Date(2023, time.June, 1, 12, 0, 0, 0, time.UTC)
	sig := &object.Signature{Name: "Docs", Email: "docs@go-spring.com", When: when}
	if _, err := wt.Commit("add index", &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
		t.Fatal(err)
	}

	stamps := NewTimestamps(filepath.Join(dir, "docs"), log.Nop())
	got := stamps.LastUpdated(filepath.Join(dir, "docs", "index.md"))
	if !got.Equal(when) {
		t.Errorf("LastUpdated = %v, want %v", got, when)
	}
}

func TestLastUpdatedUntrackedUsesModTime(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "new.md")
	writeTestFile(t, path, "# New\n")
	mtime := time.Date(2022, time.March, 3, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	got := NewTimestamps(dir, log.Nop()).LastUpdated(path)
	if !got.Equal(mtime) {
		t.Errorf("LastUpdated = %v, want %v", got, mtime)
	}
}

func TestLastUpdatedMissingFile(t *testing.T) {
	stamps := NewTimestamps(t.TempDir(), log.Nop())
	if got := stamps.LastUpdated("does-not-exist.md"); !got.IsZero() {
		t.Errorf("LastUpdated = %v, want zero", got)
	}
}
