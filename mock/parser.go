package mock

import "github.com/fwojciec/instrmap"

// Compile-time interface verification.
var (
	_ instrmap.IndexParser        = (*IndexParser)(nil)
	_ instrmap.IntrinsicExtractor = (*IntrinsicExtractor)(nil)
)

// IndexParser is a mock implementation of instrmap.IndexParser.
type IndexParser struct {
	ParseIndexFn func(html string, baseURL string) ([]instrmap.InstructionLink, error)
}

func (p *IndexParser) ParseIndex(html string, baseURL string) ([]instrmap.InstructionLink, error) {
	return p.ParseIndexFn(html, baseURL)
}

// IntrinsicExtractor is a mock implementation of instrmap.IntrinsicExtractor.
type IntrinsicExtractor struct {
	ExtractIntrinsicsFn func(html string) ([]string, error)
}

func (e *IntrinsicExtractor) ExtractIntrinsics(html string) ([]string, error) {
	return e.ExtractIntrinsicsFn(html)
}
