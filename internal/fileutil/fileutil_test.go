package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.json")

	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("new"), 0); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content mismatch: got %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteFilesAtomicWritesAll(t *testing.T) {
	dir := t.TempDir()
	files := []File{
		{Path: filepath.Join(dir, "a.json"), Data: []byte("a")},
		{Path: filepath.Join(dir, "b.json"), Data: []byte("b"), Mode: 0o600},
	}
	if err := WriteFilesAtomic(files); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		got, err := os.ReadFile(f.Path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(f.Data) {
			t.Fatalf("%s: got %q", f.Path, got)
		}
	}
	info, err := os.Stat(files[1].Path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}
	assertNoTempFiles(t, dir)
}

func TestWriteFilesAtomicLeavesTargetsOnFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.json")
	if err := os.WriteFile(good, []byte("before"), 0o644); err != nil {
		t.Fatal(err)
	}
	files := []File{
		{Path: good, Data: []byte("after")},
		{Path: filepath.Join(dir, "missing", "b.json"), Data: []byte("b")},
	}
	if err := WriteFilesAtomic(files); err == nil {
		t.Fatal("expected error for missing directory")
	}
	got, err := os.ReadFile(good)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "before" {
		t.Fatalf("target modified despite failure: %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteFilesAtomicRestoresTargetsWhenCommitFails(t *testing.T) {
	tests := []struct {
		name        string
		firstExists bool
	}{
		{"replaced target restored", true},
		{"new target removed", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			first := filepath.Join(dir, "phrases.json")
			second := filepath.Join(dir, "words.json")
			if tt.firstExists {
				if err := os.WriteFile(first, []byte("old phrases"), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			if err := os.WriteFile(second, []byte("old words"), 0o644); err != nil {
				t.Fatal(err)
			}

			rename = func(oldpath, newpath string) error {
				if newpath == second && strings.HasSuffix(oldpath, ".tmp") {
					return os.ErrPermission
				}
				return os.Rename(oldpath, newpath)
			}
			t.Cleanup(func() { rename = os.Rename })

			err := WriteFilesAtomic([]File{
				{Path: first, Data: []byte("new phrases")},
				{Path: second, Data: []byte("new words")},
			})
			if err == nil {
				t.Fatal("expected commit failure")
			}

			if tt.firstExists {
				got, err := os.ReadFile(first)
				if err != nil {
					t.Fatal(err)
				}
				if string(got) != "old phrases" {
					t.Fatalf("first target not restored: %q", got)
				}
			} else if _, err := os.Stat(first); !os.IsNotExist(err) {
				t.Fatalf("first target should be removed, stat err=%v", err)
			}
			got, err := os.ReadFile(second)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "old words" {
				t.Fatalf("second target modified: %q", got)
			}
			assertNoTempFiles(t, dir)
		})
	}
}

func TestWriteFilesAtomicRejectsEmptyPath(t *testing.T) {
	if err := WriteFilesAtomic([]File{{Data: []byte("x")}}); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSHA256Hex(t *testing.T) {
	got := SHA256Hex([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("SHA256Hex = %s", got)
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp") {
			t.Fatalf("leftover temp file %s", entry.Name())
		}
	}
}
