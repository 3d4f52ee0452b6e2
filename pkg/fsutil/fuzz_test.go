package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gomdtree/pkg/fsutil"
)

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hello"))
	f.Add([]byte("hello\nworld\n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "test.txt")

		if err := fsutil.WriteAtomic(context.Background(), path, content, 0o644); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("content mismatch: got %d bytes, want %d", len(got), len(content))
		}
	})
}

func FuzzDumpPath(f *testing.F) {
	f.Add("docs/a.md")
	f.Add("../../etc/passwd")
	f.Add("/abs/path.markdown")
	f.Add("")

	f.Fuzz(func(t *testing.T, source string) {
		got := fsutil.DumpPath("out", source, ".txt")

		rel, err := filepath.Rel("out", got)
		if err != nil {
			t.Fatalf("Rel(%q): %v", got, err)
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			t.Errorf("DumpPath(%q) = %q escapes the output directory", source, got)
		}
	})
}
