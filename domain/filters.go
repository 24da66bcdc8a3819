package domain

import (
	"net/url"
	"strconv"
)

// Sort orders accepted by the backend's product listing.
const (
	SortNewest    = "newest"
	SortPopular   = "popular"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

// PerPageOptions are the page sizes the backend accepts.
var PerPageOptions = []int{10, 20, 50, 100}

// DefaultPerPage is used when the caller supplies none or an unknown size.
const DefaultPerPage = 20

// ProductFilters is the product-listing filter set. Zero values mean
// "not filtered on".
type ProductFilters struct {
	Page       int
	PerPage    int
	CategoryID uint
	Search     string
	MinPrice   float64
	MaxPrice   float64
	SortBy     string
}

func validSort(s string) bool {
	switch s {
	case SortNewest, SortPopular, SortPriceAsc, SortPriceDesc, SortRating:
		return true
	}
	return false
}

func validPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}

// Normalize clamps the filter set to values the backend accepts.
func (f ProductFilters) Normalize() ProductFilters {
	if f.Page < 1 {
		f.Page = 1
	}
	if !validPerPage(f.PerPage) {
		f.PerPage = DefaultPerPage
	}
	if !validSort(f.SortBy) {
		f.SortBy = ""
	}
	if f.MinPrice < 0 {
		f.MinPrice = 0
	}
	if f.MaxPrice < 0 {
		f.MaxPrice = 0
	}
	return f
}

// Query maps set fields to the backend's query parameters. Unset fields are
// omitted entirely rather than sent as zeroes.
func (f ProductFilters) Query() url.Values {
	f = f.Normalize()
	q := url.Values{}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage != DefaultPerPage {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if f.CategoryID != 0 {
		q.Set("category_id", strconv.FormatUint(uint64(f.CategoryID), 10))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.MinPrice > 0 {
		q.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}
	return q
}
