// Package fsutil reads Markdown inputs and writes dump files.
package fsutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// FileInfo describes an input as it was when ReadFile loaded it.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// ReadFile loads path and records its metadata. Failures are classified
// with ErrNotFound, ErrPermissionDenied or ErrIsDirectory where they apply.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	var buf bytes.Buffer
	buf.Grow(int(stat.Size()))
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, nil, classify(path, err)
	}
	content := buf.Bytes()

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
		Hash:    sha256.Sum256(content),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// DumpPath places the dump of source under outputDir with its extension
// replaced by ext. Volume names, "." and ".." elements are dropped, so the
// result always stays inside outputDir.
func DumpPath(outputDir, source, ext string) string {
	cleaned := filepath.ToSlash(filepath.Clean(source))
	cleaned = strings.TrimPrefix(cleaned, filepath.ToSlash(filepath.VolumeName(source)))

	var segments []string
	for segment := range strings.SplitSeq(cleaned, "/") {
		switch segment {
		case "", ".", "..":
		default:
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		segments = []string{"input"}
	}

	last := len(segments) - 1
	segments[last] = strings.TrimSuffix(segments[last], filepath.Ext(segments[last])) + ext

	return filepath.Join(append([]string{outputDir}, segments...)...)
}
