// Package catalog holds presentation helpers for marketplace listings.
package catalog

import "github.com/ruabo2004/totnghiep0kho-frontend/domain"

// Ellipsis marks a gap in a page window.
const Ellipsis = 0

// Window computes the page numbers a listing view shows around the current
// page: first and last page always visible, `radius` neighbours on each side,
// gaps collapsed to a single Ellipsis marker.
//
// Window(meta{current:5,last:9}, 1) -> [1 0 4 5 6 0 9]
func Window(meta domain.PageMeta, radius int) []int {
	last := meta.LastPage
	if last <= 0 {
		return nil
	}
	current := meta.CurrentPage
	if current < 1 {
		current = 1
	}
	if current > last {
		current = last
	}
	if radius < 0 {
		radius = 0
	}

	lo := current - radius
	hi := current + radius
	if lo < 1 {
		lo = 1
	}
	if hi > last {
		hi = last
	}

	var pages []int
	if lo > 1 {
		pages = append(pages, 1)
		if lo > 2 {
			pages = append(pages, Ellipsis)
		}
	}
	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}
	if hi < last {
		if hi < last-1 {
			pages = append(pages, Ellipsis)
		}
		pages = append(pages, last)
	}
	return pages
}
