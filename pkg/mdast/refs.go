package mdast

import (
	"bytes"
	"strings"

	"golang.org/x/text/cases"
)

// Definition is one link reference definition found in a document.
type Definition struct {
	// Label is the normalized label.
	Label string

	// Destination is the raw destination text, without angle brackets.
	Destination string

	// Title is the raw title text, without its delimiters.
	Title string

	// Node is the LINK_DEFINITION node.
	Node *Node
}

// DefinitionIndex maps normalized labels to their first definition.
type DefinitionIndex map[string]Definition

// NormalizeLabel folds case and collapses internal whitespace of a link
// label. Surrounding brackets are stripped if present.
func NormalizeLabel(label string) string {
	label = strings.TrimPrefix(label, "[")
	label = strings.TrimSuffix(label, "]")
	return cases.Fold().String(strings.Join(strings.Fields(label), " "))
}

// CollectDefinitions indexes the LINK_DEFINITION nodes under root.
// When a label is defined more than once the first definition wins.
func CollectDefinitions(root *Node) DefinitionIndex {
	index := make(DefinitionIndex)

	for _, def := range FindByKind(root, NodeLinkDefinition) {
		label := childOfKind(def, NodeLinkLabel)
		if label == nil {
			continue
		}

		key := NormalizeLabel(string(label.Text()))
		if _, exists := index[key]; exists {
			continue
		}

		entry := Definition{Label: key, Node: def}
		if dest := childOfKind(def, NodeLinkDestination); dest != nil {
			text := dest.Text()
			if len(text) >= 2 && text[0] == '<' && text[len(text)-1] == '>' {
				text = text[1 : len(text)-1]
			}
			entry.Destination = string(text)
		}
		if title := childOfKind(def, NodeLinkTitle); title != nil {
			text := title.Text()
			if len(text) >= 2 {
				text = text[1 : len(text)-1]
			}
			entry.Title = string(text)
		}
		index[key] = entry
	}

	return index
}

// Lookup returns the definition for a label in any spelling.
func (idx DefinitionIndex) Lookup(label string) (Definition, bool) {
	def, ok := idx[NormalizeLabel(label)]
	return def, ok
}

// UnresolvedReferences returns the reference links under root whose label
// has no matching definition in the same tree.
func UnresolvedReferences(root *Node) []*Node {
	index := CollectDefinitions(root)

	return FindAll(root, func(n *Node) bool {
		if n.Kind != NodeFullReferenceLink && n.Kind != NodeShortReferenceLink {
			return false
		}
		label := childOfKind(n, NodeLinkLabel)
		if label == nil {
			return false
		}
		_, ok := index.Lookup(string(bytes.TrimSpace(label.Text())))
		return !ok
	})
}

func childOfKind(n *Node, kind NodeKind) *Node {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}
