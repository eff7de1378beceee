// Package goquery implements HTML parsing of the instruction listing and
// detail pages using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/instrmap"
)

var _ instrmap.IndexParser = (*IndexParser)(nil)

// IndexParser reads instruction links from the first table of a listing page.
type IndexParser struct{}

// NewIndexParser creates a new IndexParser.
func NewIndexParser() *IndexParser {
	return &IndexParser{}
}

// ParseIndex returns one link for every table row that has a data cell.
// The mnemonic is the trimmed text of the row's first cell and the URL is the
// href of the first anchor in that cell, resolved against baseURL.
// Rows without a data cell are skipped; a data cell without an anchor is an
// EINVALID error because it means the listing layout changed.
func (p *IndexParser) ParseIndex(html string, baseURL string) ([]instrmap.InstructionLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, instrmap.Errorf(instrmap.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, instrmap.Errorf(instrmap.EINVALID, "failed to parse HTML: %v", err)
	}

	links := make([]instrmap.InstructionLink, 0)

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return links, nil
	}

	var rowErr error
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return true
		}

		mnemonic := strings.TrimSpace(cell.Text())

		href, ok := cell.Find("a").First().Attr("href")
		if !ok {
			rowErr = instrmap.Errorf(instrmap.EINVALID, "listing row %d (%q) has no link", i, mnemonic)
			return false
		}

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			rowErr = instrmap.Errorf(instrmap.EINVALID, "listing row %d (%q) has invalid link %q: %v", i, mnemonic, href, err)
			return false
		}

		links = append(links, instrmap.InstructionLink{
			Mnemonic: mnemonic,
			URL:      base.ResolveReference(ref).String(),
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return links, nil
}
