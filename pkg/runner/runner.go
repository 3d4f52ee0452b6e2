package runner

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdtree/internal/logging"
	"github.com/yaklabco/gomdtree/pkg/fsutil"
	"github.com/yaklabco/gomdtree/pkg/parser"
)

// Runner parses many files with one Parser.
type Runner struct {
	// Parser parses each file. It is shared by all workers.
	Parser *parser.Parser

	// Logger receives per-file debug output. Nil uses the context logger.
	Logger *log.Logger
}

// New creates a Runner using p.
func New(p *parser.Parser) *Runner {
	return &Runner{Parser: p}
}

// Run discovers files under opts.Paths and parses them concurrently.
// Outcomes are returned in path order regardless of completion order.
// A failing file does not stop the run; its error is kept in its outcome.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := r.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, logger, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("run complete",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldJobs, jobs,
	)

	return result, nil
}

// ParseFile reads and parses a single file.
func (r *Runner) ParseFile(ctx context.Context, path string) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Info = info

	snapshot, err := r.Parser.Parse(ctx, path, content)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Snapshot = snapshot
	outcome.Elapsed = time.Since(start)

	return outcome
}

// ParseStream parses everything read from src as one document named name,
// as used for standard input.
func (r *Runner) ParseStream(ctx context.Context, name string, src io.Reader) (*Result, error) {
	start := time.Now()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	outcome := FileOutcome{
		Path: name,
		Info: &fsutil.FileInfo{Path: name, Size: int64(len(content))},
	}

	snapshot, err := r.Parser.Parse(ctx, name, content)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Snapshot = snapshot
		outcome.Elapsed = time.Since(start)
	}

	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = 1
	result.accumulate(outcome)

	return result, nil
}

// worker parses files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, logger *log.Logger, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.ParseFile(ctx, path)
		if outcome.Error != nil {
			logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
