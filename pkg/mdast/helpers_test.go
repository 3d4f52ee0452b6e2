package mdast_test

import "github.com/yaklabco/gomdtree/pkg/mdast"

// headingSnapshot builds the tree for "# Hi\n" by hand:
//
//	MARKDOWN_FILE
//	  ATX_1
//	    ATX_HEADER('#')
//	    WHITE_SPACE(' ')
//	    TEXT('Hi')
//	  EOL('\n')
func headingSnapshot() *mdast.FileSnapshot {
	content := []byte("# Hi\n")
	snapshot := mdast.NewFileSnapshot("test.md", content)
	snapshot.Tokens = []mdast.Token{
		{Kind: mdast.TokATXHeader, StartOffset: 0, EndOffset: 1},
		{Kind: mdast.TokWhitespace, StartOffset: 1, EndOffset: 2},
		{Kind: mdast.TokText, StartOffset: 2, EndOffset: 4},
		{Kind: mdast.TokEOL, StartOffset: 4, EndOffset: 5},
	}

	doc := mdast.NewDocument()
	heading := mdast.NewNode(mdast.NodeATX1)
	for i := range 3 {
		mdast.AppendChild(heading, mdast.NewLeaf(i))
	}
	mdast.SpanChildren(heading)
	mdast.AppendChild(doc, heading)
	mdast.AppendChild(doc, mdast.NewLeaf(3))
	mdast.SpanChildren(doc)

	snapshot.Root = doc
	mdast.SetFile(doc, snapshot)
	return snapshot
}
