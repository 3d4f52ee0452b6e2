package reporter

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/yaklabco/gomdtree/pkg/langdetect"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// jsonSchemaVersion is bumped whenever the JSON layout changes.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile represents one parsed file.
type JSONFile struct {
	Path        string           `json:"path"`
	Error       string           `json:"error,omitempty"`
	Size        int              `json:"size"`
	Tokens      int              `json:"tokens"`
	Root        *JSONNode        `json:"root,omitempty"`
	Definitions []JSONDefinition `json:"definitions,omitempty"`
	Unresolved  []JSONReference  `json:"unresolved,omitempty"`
}

// JSONNode is one node of the syntax tree. Leaves carry the token kind
// in Type and the raw source in Text.
type JSONNode struct {
	Type           string      `json:"type"`
	Start          int         `json:"start"`
	End            int         `json:"end"`
	Line           int         `json:"line"`
	Column         int         `json:"column"`
	Text           *string     `json:"text,omitempty"`
	Language       string      `json:"language,omitempty"`
	LanguageSource string      `json:"languageSource,omitempty"`
	Children       []*JSONNode `json:"children,omitempty"`
}

// JSONDefinition is a link reference definition.
type JSONDefinition struct {
	Label       string `json:"label"`
	Destination string `json:"destination"`
	Title       string `json:"title,omitempty"`
	Line        int    `json:"line"`
}

// JSONReference is a reference link whose label has no definition.
type JSONReference struct {
	Type string `json:"type"`
	Text string `json:"text"`
	Line int    `json:"line"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesParsed     int            `json:"filesParsed"`
	FilesErrored    int            `json:"filesErrored"`
	Bytes           int64          `json:"bytes"`
	Tokens          int            `json:"tokens"`
	Nodes           int            `json:"nodes"`
	NodesByKind     map[string]int `json:"nodesByKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("report cancelled: %w", err)
	}

	output := r.buildOutput(result)
	if err := r.encode(bw, output); err != nil {
		return 0, err
	}

	return output.Summary.FilesErrored, nil
}

// RenderFile implements FileRenderer. The document is a single JSONFile.
func (r *JSONReporter) RenderFile(w io.Writer, file *runner.FileOutcome) error {
	if file == nil {
		return errNoSnapshot
	}
	return r.encode(w, r.buildFile(file))
}

// Extension implements FileRenderer.
func (r *JSONReporter) Extension() string {
	return ".json"
}

func (r *JSONReporter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFile, 0),
		Summary: JSONSummary{NodesByKind: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	for i := range result.Files {
		file := r.buildFile(&result.Files[i])
		if file.Error != "" {
			output.Summary.FilesErrored++
		}
		output.Files = append(output.Files, file)
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesParsed = stats.FilesParsed
	output.Summary.Bytes = stats.Bytes
	output.Summary.Tokens = stats.Tokens
	output.Summary.Nodes = stats.Nodes
	for kind, count := range stats.NodesByKind {
		output.Summary.NodesByKind[kind] = count
	}

	return output
}

func (r *JSONReporter) buildFile(file *runner.FileOutcome) JSONFile {
	out := JSONFile{Path: displayPath(file.Path, r.opts.WorkingDir)}

	if file.Error != nil || file.Snapshot == nil {
		out.Error = fileError(file).Error()
		return out
	}

	snapshot := file.Snapshot
	out.Size = len(snapshot.Content)
	out.Tokens = len(snapshot.Tokens)
	out.Root = r.buildNode(snapshot.Root)
	out.Definitions = buildDefinitions(snapshot.Root)
	out.Unresolved = buildUnresolved(snapshot.Root)

	return out
}

func (r *JSONReporter) buildNode(n *mdast.Node) *JSONNode {
	sourceRange := n.SourceRange()
	position := n.SourcePosition()

	node := &JSONNode{
		Type:   n.TypeName(),
		Start:  sourceRange.StartOffset,
		End:    sourceRange.EndOffset,
		Line:   position.StartLine,
		Column: position.StartColumn,
	}

	if n.IsLeaf() {
		text := string(n.Text())
		node.Text = &text
		return node
	}

	if r.opts.DetectLanguages {
		if result, ok := langdetect.ForNode(n); ok {
			node.Language = result.Language
			node.LanguageSource = result.Source.String()
		}
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		node.Children = append(node.Children, r.buildNode(child))
	}

	return node
}

func buildDefinitions(root *mdast.Node) []JSONDefinition {
	index := mdast.CollectDefinitions(root)
	if len(index) == 0 {
		return nil
	}

	defs := make([]JSONDefinition, 0, len(index))
	for _, def := range index {
		defs = append(defs, JSONDefinition{
			Label:       def.Label,
			Destination: def.Destination,
			Title:       def.Title,
			Line:        def.Node.SourcePosition().StartLine,
		})
	}

	slices.SortFunc(defs, func(a, b JSONDefinition) int {
		if c := cmp.Compare(a.Line, b.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})

	return defs
}

func buildUnresolved(root *mdast.Node) []JSONReference {
	var refs []JSONReference
	for _, node := range mdast.UnresolvedReferences(root) {
		refs = append(refs, JSONReference{
			Type: node.Kind.String(),
			Text: string(node.Text()),
			Line: node.SourcePosition().StartLine,
		})
	}
	return refs
}
