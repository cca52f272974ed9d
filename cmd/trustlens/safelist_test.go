package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// TestSafelistCmd exercises add, list, and remove against a throwaway
// database.
func TestSafelistCmd(t *testing.T) {
	t.Parallel()

	dbDir := filepath.Join(t.TempDir(), "db")

	run := func(args ...string) (string, error) {
		cmd := NewRootCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs(append([]string{"safelist", "--db-dir", dbDir}, args...))
		err := cmd.Execute()
		return buf.String(), err
	}

	t.Run("list starts empty", func(t *testing.T) {
		out, err := run("list")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "No trusted sites") {
			t.Errorf("expected empty-list message, got %q", out)
		}
	})

	t.Run("add then list shows the URL", func(t *testing.T) {
		if _, err := run("add", "https://example.com"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out, err := run("list")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "https://example.com") {
			t.Errorf("expected the URL in the listing, got %q", out)
		}
	})

	t.Run("remove without rescan drops the URL", func(t *testing.T) {
		if _, err := run("remove", "https://example.com"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out, err := run("list")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(out, "https://example.com") {
			t.Errorf("expected the URL to be gone, got %q", out)
		}
	})

	t.Run("add requires exactly one argument", func(t *testing.T) {
		if _, err := run("add"); err == nil {
			t.Error("expected an error for missing argument")
		}
	})
}
