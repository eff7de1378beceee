package instrmap

// InstructionLink is one row of the instruction listing: a mnemonic and the
// URL of its detail page.
type InstructionLink struct {
	Mnemonic string
	URL      string
}

// FetchProgress reports progress while detail pages are processed.
type FetchProgress struct {
	URL       string
	Completed int
	Total     int
}

// FetchProgressFunc is called after each detail page is processed.
type FetchProgressFunc func(FetchProgress)

// IndexParser extracts instruction links from the listing page.
type IndexParser interface {
	// ParseIndex parses the listing HTML and returns one link per table row,
	// in document order. The baseURL is used to resolve relative hrefs.
	// A page without a table yields an empty slice and no error.
	ParseIndex(html string, baseURL string) ([]InstructionLink, error)
}

// IntrinsicExtractor extracts raw intrinsic lines from an instruction detail page.
type IntrinsicExtractor interface {
	// ExtractIntrinsics returns the text of every preformatted block that
	// follows a "Compiler Intrinsic Equivalent" heading, in document order.
	ExtractIntrinsics(html string) ([]string, error)
}
