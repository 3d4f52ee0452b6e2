package crosscheck

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/outline"
)

// shape is the part of an entry both parsers must agree on.
type shape struct {
	Depth int
	Kind  string
}

// Divergence locates the first entry where the outlines disagree.
// Either side is nil when that outline ended early.
type Divergence struct {
	Index     int
	Ours      *outline.Entry
	Reference *outline.Entry
}

// Report is the comparison result for one document.
type Report struct {
	Path      string
	Ours      outline.Outline
	Reference outline.Outline

	// Divergence is nil when the outlines match.
	Divergence *Divergence

	// Diff is a go-cmp rendering of the mismatch (-reference +ours).
	Diff string
}

// Matches reports whether both parsers produced the same outline.
func (r Report) Matches() bool {
	return r.Divergence == nil
}

// Checker compares parsed snapshots against the goldmark reference.
type Checker struct {
	reference *Reference
}

// New creates a Checker.
func New() *Checker {
	return &Checker{reference: NewReference()}
}

// Check compares one parsed document against the reference.
func (c *Checker) Check(snapshot *mdast.FileSnapshot) Report {
	ours := Comparable(outline.FromTree(snapshot.Root, outline.Options{}))
	reference := c.reference.Outline(snapshot.Content)

	report := Report{Path: snapshot.Path, Ours: ours, Reference: reference}
	report.Divergence, report.Diff = Compare(ours, reference)
	return report
}

// Comparable drops entries goldmark never produces and renames headings to
// their level-only form.
func Comparable(o outline.Outline) outline.Outline {
	var result outline.Outline
	for _, entry := range o {
		if entry.DefinitionsOnly {
			continue
		}
		if level := headingLevel(entry.Kind); level > 0 {
			entry.Kind = headingKey(level)
		}
		result = append(result, entry)
	}
	return result
}

func headingLevel(kind string) int {
	for k := mdast.NodeSetext1; k <= mdast.NodeATX6; k++ {
		if k.String() == kind {
			return k.HeadingLevel()
		}
	}
	return 0
}

// Compare returns the first divergence between two comparable outlines and
// a readable diff, or nil and "" when they agree on depth and kind.
func Compare(ours, reference outline.Outline) (*Divergence, string) {
	a, b := shapes(reference), shapes(ours)

	diff := cmp.Diff(a, b, cmpopts.EquateEmpty())
	if diff == "" {
		return nil, ""
	}

	idx := 0
	for idx < len(a) && idx < len(b) && a[idx] == b[idx] {
		idx++
	}

	divergence := &Divergence{Index: idx}
	if idx < len(ours) {
		divergence.Ours = &ours[idx]
	}
	if idx < len(reference) {
		divergence.Reference = &reference[idx]
	}

	return divergence, diff
}

func shapes(o outline.Outline) []shape {
	result := make([]shape, len(o))
	for i, entry := range o {
		result[i] = shape{Depth: entry.Depth, Kind: entry.Kind}
	}
	return result
}
