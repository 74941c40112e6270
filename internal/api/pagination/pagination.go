// Package pagination computes page metadata, visible page windows and page
// slice bounds for a filtered job list.
package pagination

import (
	"encoding/json"
	"fmt"
)

const (
	// DefaultItemsPerPage is the page size of a browse session.
	DefaultItemsPerPage = 10
	// DefaultDelta is how many pages either side of the current page are
	// shown in a window.
	DefaultDelta = 2
	// Ellipsis is the rendered form of a gap marker.
	Ellipsis = "..."
)

// State is the pagination metadata of a filtered list.
type State struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}

// Compute derives State for totalItems at currentPage. TotalPages is at
// least 1. currentPage is carried over unchanged.
func Compute(totalItems, itemsPerPage, currentPage int) State {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	if totalItems < 0 {
		totalItems = 0
	}
	return State{
		CurrentPage:  currentPage,
		TotalPages:   TotalPages(totalItems, itemsPerPage),
		TotalItems:   totalItems,
		ItemsPerPage: itemsPerPage,
	}
}

// TotalPages returns max(1, ceil(totalItems/itemsPerPage)).
func TotalPages(totalItems, itemsPerPage int) int {
	if itemsPerPage <= 0 || totalItems <= 0 {
		return 1
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// Marker is one entry of a page window: a page number or a gap.
type Marker struct {
	Page int
	Gap  bool
}

// PageMarker returns a marker for page n.
func PageMarker(n int) Marker { return Marker{Page: n} }

// GapMarker returns an ellipsis marker.
func GapMarker() Marker { return Marker{Gap: true} }

func (m Marker) String() string {
	if m.Gap {
		return Ellipsis
	}
	return fmt.Sprintf("%d", m.Page)
}

// MarshalJSON renders pages as numbers and gaps as "...".
func (m Marker) MarshalJSON() ([]byte, error) {
	if m.Gap {
		return json.Marshal(Ellipsis)
	}
	return json.Marshal(m.Page)
}

// UnmarshalJSON accepts the forms MarshalJSON produces.
func (m *Marker) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != Ellipsis {
			return fmt.Errorf("invalid page marker %q", s)
		}
		*m = GapMarker()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid page marker: %w", err)
	}
	*m = PageMarker(n)
	return nil
}

// Window returns the page controls to render for currentPage out of
// totalPages. Pages 1 and totalPages are always present, every page within
// delta of currentPage is included, and a single gap marker bridges any
// skipped run. It returns nil when totalPages <= 1: no controls are needed.
func Window(currentPage, totalPages, delta int) []Marker {
	if totalPages <= 1 {
		return nil
	}
	if delta < 0 {
		delta = 0
	}

	lo := max(2, currentPage-delta)
	hi := min(totalPages-1, currentPage+delta)

	markers := []Marker{PageMarker(1)}
	if currentPage-delta > 2 {
		markers = append(markers, GapMarker())
	}
	for p := lo; p <= hi; p++ {
		markers = append(markers, PageMarker(p))
	}
	if currentPage+delta < totalPages-1 {
		markers = append(markers, GapMarker())
	}
	markers = append(markers, PageMarker(totalPages))

	return markers
}

// Bounds returns the half-open slice range [start, end) of page over a list
// of length n. Pages outside [1, last page] yield an empty range.
func Bounds(page, itemsPerPage, n int) (start, end int) {
	if itemsPerPage <= 0 || page < 1 {
		return 0, 0
	}
	start = (page - 1) * itemsPerPage
	if start >= n {
		return n, n
	}
	end = min(start+itemsPerPage, n)
	return start, end
}

// Slice returns the items visible on page. The result is a copy.
func Slice[T any](items []T, page, itemsPerPage int) []T {
	start, end := Bounds(page, itemsPerPage, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
