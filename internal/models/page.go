package models

// Page is a from/size window as accepted on the HTTP surface.
type Page struct {
	From int
	Size int
}

// Index returns the page number the window falls into. A from that is not a
// multiple of size is rounded down to the start of its page, so from=5 and
// from=0 with size=10 address the same rows.
func (p Page) Index() int {
	if p.From > 0 && p.Size > 0 {
		return p.From / p.Size
	}
	return 0
}

// Offset returns the first row of the page.
func (p Page) Offset() int {
	return p.Index() * p.Size
}

// Limit returns the maximum number of rows of the page. Zero means unbounded.
func (p Page) Limit() int {
	if p.Size < 0 {
		return 0
	}
	return p.Size
}
