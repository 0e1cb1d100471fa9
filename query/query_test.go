package query

import (
	"fmt"
	"net/url"
	"testing"

	"autoagora/models"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func listing(brand, model string, year *int, price float64) models.Listing {
	return models.Listing{
		Brand: brand,
		Model: model,
		Year:  year,
		Price: price,
	}
}

func TestRunPaged_Pagination(t *testing.T) {
	var all []models.Listing
	for i := 0; i < 25; i++ {
		all = append(all, listing("BMW", fmt.Sprintf("M%d", i), intp(2010+i%5), 1000))
	}

	page1 := RunPaged(all, Params{Page: 1}, 12)
	if page1.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 25 items, got %d", page1.TotalPages)
	}
	if len(page1.Items) != 12 {
		t.Fatalf("expected 12 items on page 1, got %d", len(page1.Items))
	}
	if page1.Items[0].Model != "M0" {
		t.Fatalf("expected M0 first, got %s", page1.Items[0].Model)
	}

	page3 := RunPaged(all, Params{Page: 3}, 12)
	if len(page3.Items) != 1 {
		t.Fatalf("expected 1 item on page 3, got %d", len(page3.Items))
	}
	if page3.Items[0].Model != "M24" {
		t.Fatalf("expected M24 on last page, got %s", page3.Items[0].Model)
	}

	beyond := RunPaged(all, Params{Page: 9}, 12)
	if len(beyond.Items) != 0 {
		t.Fatalf("expected no items past the last page, got %d", len(beyond.Items))
	}
	if beyond.CurrentPage != 9 || beyond.TotalPages != 3 {
		t.Fatalf("unexpected paging state %d/%d", beyond.CurrentPage, beyond.TotalPages)
	}

	empty := RunPaged(nil, Params{}, 12)
	if empty.TotalPages != 1 {
		t.Fatalf("an empty collection still has 1 page, got %d", empty.TotalPages)
	}
}

func TestMatches_ScalarFilters(t *testing.T) {
	all := []models.Listing{
		listing("BMW", "320d", intp(2019), 23900),
		listing("bmw", "118i", intp(2015), 9900),
		listing("Audi", "A4", intp(2018), 15000),
	}

	res := Run(all, Params{Brand: "BMW", Page: 1})
	if len(res.Items) != 2 {
		t.Fatalf("brand match must ignore case, got %d items", len(res.Items))
	}

	// Model matching is substring, case-insensitive.
	res = Run(all, Params{Model: "32", Page: 1})
	if len(res.Items) != 1 || res.Items[0].Model != "320d" {
		t.Fatalf("expected only the 320d, got %+v", res.Items)
	}
}

func TestMatches_RangeFiltersExcludeUnknown(t *testing.T) {
	all := []models.Listing{
		listing("BMW", "320d", intp(2019), 23900),
		listing("BMW", "116d", nil, 8000),
		listing("Audi", "A4", intp(2016), 0),
	}

	res := Run(all, Params{MinYear: intp(2015), Page: 1})
	if len(res.Items) != 2 {
		t.Fatalf("unknown year must not match a year bound, got %d items", len(res.Items))
	}

	res = Run(all, Params{MinYear: intp(2015), MaxYear: intp(2017), Page: 1})
	if len(res.Items) != 1 || res.Items[0].Model != "A4" {
		t.Fatalf("expected only the A4, got %+v", res.Items)
	}

	// Unpriced listings (price 0) never match a price bound.
	res = Run(all, Params{MaxPrice: floatp(50000), Page: 1})
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 priced listings, got %d", len(res.Items))
	}
	res = Run(all, Params{MinPrice: floatp(10000), Page: 1})
	if len(res.Items) != 1 || res.Items[0].Model != "320d" {
		t.Fatalf("expected only the 320d, got %+v", res.Items)
	}
}

func TestMatches_FeaturesAreANDed(t *testing.T) {
	withTags := func(tags ...string) models.Listing {
		l := listing("BMW", "320d", intp(2019), 23900)
		l.Tags = tags
		return l
	}
	all := []models.Listing{
		withTags("Leather", "Sunroof", "5 doors"),
		withTags("Leather"),
		withTags("Sunroof"),
	}

	res := Run(all, Params{Features: []string{"leather"}, Page: 1})
	if len(res.Items) != 2 {
		t.Fatalf("feature match must ignore case, got %d items", len(res.Items))
	}

	res = Run(all, Params{Features: []string{"Leather", "Sunroof"}, Page: 1})
	if len(res.Items) != 1 {
		t.Fatalf("expected only the fully-equipped listing, got %d items", len(res.Items))
	}
}

func TestComputeFacets(t *testing.T) {
	mk := func(brand, model, fuel string, tags ...string) models.Listing {
		l := listing(brand, model, intp(2019), 1000)
		l.FuelType = fuel
		l.Tags = tags
		return l
	}
	all := []models.Listing{
		mk("BMW", "320d", "Diesel", "Leather"),
		mk("BMW", "118i", "Petrol"),
		mk("Audi", "A4", "Diesel", "Sunroof"),
		mk("Audi", "Unknown", "Diesel"),
	}

	// Facets always reflect the whole collection, even when a filter is
	// active that would exclude some of it.
	res := Run(all, Params{FuelType: "Diesel", Page: 1})
	if got := res.Facets.FuelTypes; len(got) != 2 || got[0] != "Diesel" || got[1] != "Petrol" {
		t.Fatalf("unexpected fuel facet %v", got)
	}
	if got := res.Facets.Brands; len(got) != 2 || got[0] != "Audi" || got[1] != "BMW" {
		t.Fatalf("unexpected brand facet %v", got)
	}
	if got := res.Facets.Features; len(got) != 2 {
		t.Fatalf("unexpected features facet %v", got)
	}

	// Without a brand selection the model facet spans everything except
	// the unknown sentinel.
	if got := res.Facets.Models; len(got) != 3 {
		t.Fatalf("expected 3 models, got %v", got)
	}

	res = Run(all, Params{Brand: "Audi", Page: 1})
	if got := res.Facets.Models; len(got) != 1 || got[0] != "A4" {
		t.Fatalf("expected only Audi models, got %v", got)
	}
}

func TestParseParams_Tolerant(t *testing.T) {
	values := url.Values{
		"brand":      {"BMW"},
		"minYear":    {"2015"},
		"maxYear":    {"junk"},
		"minPrice":   {"10000.50"},
		"page":       {"0"},
		"engineType": {"Diesel", "Petrol", " "},
		"features":   {"Leather"},
	}

	p := ParseParams(values)
	if p.Brand != "BMW" {
		t.Fatalf("expected brand BMW, got %s", p.Brand)
	}
	if p.MinYear == nil || *p.MinYear != 2015 {
		t.Fatalf("expected minYear 2015, got %v", p.MinYear)
	}
	if p.MaxYear != nil {
		t.Fatalf("junk bound must be ignored, got %v", *p.MaxYear)
	}
	if p.MinPrice == nil || *p.MinPrice != 10000.50 {
		t.Fatalf("expected minPrice 10000.50, got %v", p.MinPrice)
	}
	if p.Page != 1 {
		t.Fatalf("non-positive page must become 1, got %d", p.Page)
	}
	if len(p.EngineTypes) != 2 {
		t.Fatalf("expected blank engine type dropped, got %v", p.EngineTypes)
	}
	if len(p.Features) != 1 {
		t.Fatalf("unexpected features %v", p.Features)
	}

	p = ParseParams(url.Values{})
	if p.Page != 1 {
		t.Fatalf("missing page must default to 1, got %d", p.Page)
	}
	if p.MinYear != nil || p.MaxPrice != nil || p.NumberOfDoors != nil {
		t.Fatalf("expected no filters on empty input")
	}
}
