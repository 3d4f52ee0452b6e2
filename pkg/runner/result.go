package runner

import (
	"time"

	"github.com/yaklabco/gomdtree/pkg/fsutil"
	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// FileOutcome is the parse result for one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Snapshot is the parsed document. Nil when Error is set.
	Snapshot *mdast.FileSnapshot

	// Info describes the file as it was read.
	Info *fsutil.FileInfo

	// Elapsed is the time spent reading and parsing the file.
	Elapsed time.Duration

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed successfully.
	FilesParsed int

	// FilesErrored is the number of files that could not be read or parsed.
	FilesErrored int

	// Bytes is the total size of the parsed files.
	Bytes int64

	// Tokens is the total number of raw tokens across parsed files.
	Tokens int

	// Nodes is the total number of tree nodes across parsed files.
	Nodes int

	// NodesByKind counts composite nodes per kind name.
	NodesByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Errors returns the file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}

	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

func newStats() Stats {
	return Stats{
		NodesByKind: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesParsed++
	if outcome.Info != nil {
		r.Stats.Bytes += outcome.Info.Size
	}

	if outcome.Snapshot == nil {
		return
	}

	r.Stats.Tokens += len(outcome.Snapshot.Tokens)
	_ = mdast.Walk(outcome.Snapshot.Root, func(n *mdast.Node) error {
		r.Stats.Nodes++
		if !n.IsLeaf() {
			r.Stats.NodesByKind[n.Kind.String()]++
		}
		return nil
	})
}
