package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/instrmap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ instrmap.IntrinsicExtractor = (*IntrinsicExtractor)(nil)

// IntrinsicExtractor pulls intrinsic-equivalent blocks from instruction pages.
type IntrinsicExtractor struct{}

// NewIntrinsicExtractor creates a new IntrinsicExtractor.
func NewIntrinsicExtractor() *IntrinsicExtractor {
	return &IntrinsicExtractor{}
}

// ExtractIntrinsics returns the text of the first pre element following each
// heading that mentions instrmap.IntrinsicHeadingMarker. "Following" means
// later in document order, not necessarily a sibling. Each matching heading
// captures independently, so two headings ahead of a single pre yield the
// same text twice.
func (e *IntrinsicExtractor) ExtractIntrinsics(rawHTML string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, instrmap.Errorf(instrmap.EINVALID, "failed to parse HTML: %v", err)
	}

	var nodes []*html.Node
	for _, root := range doc.Nodes {
		collectElements(root, &nodes)
	}

	// nextPre[i] is the index of the first pre at or after position i.
	nextPre := make([]int, len(nodes)+1)
	nextPre[len(nodes)] = -1
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].DataAtom == atom.Pre {
			nextPre[i] = i
		} else {
			nextPre[i] = nextPre[i+1]
		}
	}

	var lines []string
	for i, n := range nodes {
		if !isHeading(n) {
			continue
		}
		if !strings.Contains(doc.FindNodes(n).Text(), instrmap.IntrinsicHeadingMarker) {
			continue
		}
		j := nextPre[i+1]
		if j < 0 {
			continue
		}
		lines = append(lines, doc.FindNodes(nodes[j]).Text())
	}

	return lines, nil
}

// collectElements appends headings and pre elements under n in document order.
func collectElements(n *html.Node, out *[]*html.Node) {
	if n.Type == html.ElementNode && (isHeading(n) || n.DataAtom == atom.Pre) {
		*out = append(*out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectElements(c, out)
	}
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}
