package catalog

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultPageSize is the number of films per listing page unless PAGE_SIZE
// overrides it.
const DefaultPageSize = 50

// Page describes one slice of an ordered result set.  Prev and Next are nil
// on the first and last page respectively.
type Page struct {
	Count      int
	Size       int
	Number     int
	TotalPages int
	Prev       *int
	Next       *int
}

// Paginate computes the page metadata for count rows split into pages of
// size rows.  Out-of-range page numbers are clamped into [1, TotalPages]
// rather than rejected, and an empty result still has one (empty) page.
func Paginate(count, size, requested int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	if count < 0 {
		count = 0
	}
	total := (count + size - 1) / size
	if total < 1 {
		total = 1
	}
	n := requested
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}

	p := Page{Count: count, Size: size, Number: n, TotalPages: total}
	if n > 1 {
		prev := n - 1
		p.Prev = &prev
	}
	if n < total {
		next := n + 1
		p.Next = &next
	}
	return p
}

// Offset is the index of the first row on the page.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// Limit is the number of rows on the page; only the last page may be short.
func (p Page) Limit() int {
	rest := p.Count - p.Offset()
	if rest < 0 {
		return 0
	}
	if rest > p.Size {
		return p.Size
	}
	return rest
}

// ParsePage reads the page query parameter.  Empty or non-numeric input
// means the first page; range clamping happens in Paginate.  Numbers too
// large for an int saturate so they still clamp to the last (or first) page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		return n
	}
	if err != nil {
		return 1
	}
	return n
}

// PageInfo is the body of the list endpoint.
type PageInfo struct {
	Count      int        `json:"count"`
	TotalPages int        `json:"total_pages"`
	Prev       *int       `json:"prev"`
	Next       *int       `json:"next"`
	Results    []Document `json:"results"`
}
