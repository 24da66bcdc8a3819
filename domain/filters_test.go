package domain

import (
	"testing"
)

func TestProductFiltersQuery(t *testing.T) {
	tests := []struct {
		name    string
		filters ProductFilters
		want    map[string]string
	}{
		{
			name:    "zero filters produce no parameters",
			filters: ProductFilters{},
			want:    map[string]string{},
		},
		{
			name: "first page and default page size are omitted",
			filters: ProductFilters{
				Page:    1,
				PerPage: DefaultPerPage,
			},
			want: map[string]string{},
		},
		{
			name: "all filters set",
			filters: ProductFilters{
				Page:       3,
				PerPage:    50,
				CategoryID: 12,
				Search:     "giáo trình",
				MinPrice:   10000,
				MaxPrice:   50000,
				SortBy:     SortPriceAsc,
			},
			want: map[string]string{
				"page":        "3",
				"per_page":    "50",
				"category_id": "12",
				"search":      "giáo trình",
				"min_price":   "10000",
				"max_price":   "50000",
				"sort_by":     "price_asc",
			},
		},
		{
			name: "unknown page size clamps to default and disappears",
			filters: ProductFilters{
				PerPage: 33,
			},
			want: map[string]string{},
		},
		{
			name: "unknown sort order is dropped",
			filters: ProductFilters{
				SortBy: "alphabetical",
			},
			want: map[string]string{},
		},
		{
			name: "negative prices are cleared",
			filters: ProductFilters{
				MinPrice: -5,
				MaxPrice: -1,
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.filters.Query()
			if len(q) != len(tt.want) {
				t.Errorf("expected %d parameters, got %d (%v)", len(tt.want), len(q), q)
			}
			for key, want := range tt.want {
				if got := q.Get(key); got != want {
					t.Errorf("parameter %q = %q, want %q", key, got, want)
				}
			}
		})
	}
}

func TestProductFiltersNormalize(t *testing.T) {
	f := ProductFilters{Page: -2, PerPage: 7, SortBy: "whatever"}.Normalize()
	if f.Page != 1 {
		t.Errorf("expected page 1, got %d", f.Page)
	}
	if f.PerPage != DefaultPerPage {
		t.Errorf("expected per_page %d, got %d", DefaultPerPage, f.PerPage)
	}
	if f.SortBy != "" {
		t.Errorf("expected sort to be cleared, got %q", f.SortBy)
	}
}
