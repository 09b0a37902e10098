package fileutil_test

// Notes:
// - WriteFileAtomic: the Write/Sync/Close error branches are not tested because
//   triggering disk failures is platform-specific.
// - FileURI: Windows drive-letter handling is only exercised on Windows runners.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-cvgen/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestStem - Base name without extension
// ---------------------------------------------------------------------------

func TestStem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "resume.yaml", want: "resume"},
		{path: "data/jane.resume.yml", want: "jane.resume"},
		{path: "/abs/path/cv", want: "cv"},
		{path: "noext.", want: "noext"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.Stem(tt.path); got != tt.want {
				t.Errorf("Stem(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileURI - Absolute file URIs
// ---------------------------------------------------------------------------

func TestFileURI(t *testing.T) {
	t.Parallel()

	t.Run("absolute path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		got, err := fileutil.FileURI(filepath.Join(dir, "cv.html"))
		if err != nil {
			t.Fatalf("FileURI() unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "file:///") {
			t.Errorf("FileURI() = %q, want file:/// prefix", got)
		}
		if !strings.HasSuffix(got, "/cv.html") {
			t.Errorf("FileURI() = %q, want /cv.html suffix", got)
		}
	})

	t.Run("relative path becomes absolute", func(t *testing.T) {
		t.Parallel()

		got, err := fileutil.FileURI("resources")
		if err != nil {
			t.Fatalf("FileURI() unexpected error: %v", err)
		}
		wd, _ := os.Getwd()
		if !strings.Contains(got, filepath.ToSlash(filepath.Base(wd))+"/resources") {
			t.Errorf("FileURI() = %q, want it to contain the working directory", got)
		}
	})

	t.Run("spaces are escaped", func(t *testing.T) {
		t.Parallel()

		got, err := fileutil.FileURI("/tmp/my resume/cv.html")
		if err != nil {
			t.Fatalf("FileURI() unexpected error: %v", err)
		}
		if strings.Contains(got, " ") || !strings.Contains(got, "my%20resume") {
			t.Errorf("FileURI() = %q, want percent-encoded space", got)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if _, err := fileutil.FileURI(""); !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("FileURI(\"\") error = %v, want ErrEmptyPath", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestEnsureParentDir - Directory creation
// ---------------------------------------------------------------------------

func TestEnsureParentDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "out.pdf")

	if err := fileutil.EnsureParentDir(target); err != nil {
		t.Fatalf("EnsureParentDir() unexpected error: %v", err)
	}
	info, err := os.Stat(filepath.Dir(target))
	if err != nil {
		t.Fatalf("parent not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("parent is not a directory")
	}

	// Second call is a no-op.
	if err := fileutil.EnsureParentDir(target); err != nil {
		t.Errorf("EnsureParentDir() second call error: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Staged write and rename
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("replaces existing content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cv.pdf")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := fileutil.WriteFileAtomic(path, []byte("new"), fileutil.FilePermissions); err != nil {
			t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
		if fileutil.FileExists(fileutil.TempSibling(path)) {
			t.Error("staging file should not remain after rename")
		}
	})

	t.Run("missing directory fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "cv.pdf")
		if err := fileutil.WriteFileAtomic(path, []byte("x"), fileutil.FilePermissions); err == nil {
			t.Error("WriteFileAtomic() expected error for missing directory, got nil")
		}
	})
}

func TestTempSibling(t *testing.T) {
	t.Parallel()

	if got := fileutil.TempSibling("out/cv.pdf"); got != "out/cv.tmp.pdf" {
		t.Errorf("TempSibling() = %q, want %q", got, "out/cv.tmp.pdf")
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "nope")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"cvgen":          false,
		"./cvgen.yaml":   true,
		"/etc/cvgen.yml": true,
		`C:\cvgen.yaml`:  true,
	}
	for in, want := range tests {
		if got := fileutil.IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}
