package reporter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/gomdtree/pkg/fsutil"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// WriteDir renders every successfully parsed file into its own dump under
// dir, mirroring the source layout relative to workDir. Files that failed
// to parse are skipped, and dumps whose content is already current are not
// rewritten. It returns the paths it wrote, in result order.
func WriteDir(ctx context.Context, renderer FileRenderer, dir, workDir string, result *runner.Result) ([]string, error) {
	if result == nil {
		return nil, nil
	}

	written := make([]string, 0, len(result.Files))

	for i := range result.Files {
		file := &result.Files[i]
		if file.Error != nil || file.Snapshot == nil {
			continue
		}

		var buf bytes.Buffer
		if err := renderer.RenderFile(&buf, file); err != nil {
			return written, err
		}

		target := fsutil.DumpPath(dir, displayPath(file.Path, workDir), renderer.Extension())
		changed, err := fsutil.WriteAtomicIfChanged(ctx, target, buf.Bytes(), fsutil.DefaultFileMode)
		if err != nil {
			return written, fmt.Errorf("write dump for %s: %w", file.Path, err)
		}
		if changed {
			written = append(written, target)
		}
	}

	return written, nil
}
