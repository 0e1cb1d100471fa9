// Package query filters, sorts and paginates the materialized listing
// collection, and computes the facet value lists that drive filter
// controls. Pure functions of (collection, params); no state, no locking.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"autoagora/models"
)

// DefaultPageSize matches the listing grid: 12 cards per page.
const DefaultPageSize = 12

// Params is one immutable set of optional constraints. Zero values mean
// "filter not applied". All active filters are ANDed together.
type Params struct {
	Brand         string
	Model         string
	FuelType      string
	Transmission  string
	Color         string
	Country       string
	NumberOfDoors *int

	MinYear    *int
	MaxYear    *int
	MinMileage *int
	MaxMileage *int
	MinPower   *int
	MaxPower   *int
	MinPrice   *float64
	MaxPrice   *float64

	EngineTypes []string
	BodyTypes   []string
	Conditions  []string
	Features    []string

	Page int
}

// ParseParams binds a flat query-string mapping into Params. Input errors
// are never surfaced: a non-numeric bound simply leaves that filter off,
// and a missing or junk page number becomes page 1.
func ParseParams(values url.Values) Params {
	p := Params{
		Brand:        values.Get("brand"),
		Model:        values.Get("model"),
		FuelType:     values.Get("fuelType"),
		Transmission: values.Get("transmission"),
		Color:        values.Get("color"),
		Country:      values.Get("country"),

		NumberOfDoors: intParam(values.Get("numberOfDoors")),
		MinYear:       intParam(values.Get("minYear")),
		MaxYear:       intParam(values.Get("maxYear")),
		MinMileage:    intParam(values.Get("minMileage")),
		MaxMileage:    intParam(values.Get("maxMileage")),
		MinPower:      intParam(values.Get("minPower")),
		MaxPower:      intParam(values.Get("maxPower")),
		MinPrice:      floatParam(values.Get("minPrice")),
		MaxPrice:      floatParam(values.Get("maxPrice")),

		EngineTypes: nonEmpty(values["engineType"]),
		BodyTypes:   nonEmpty(values["bodyType"]),
		Conditions:  nonEmpty(values["condition"]),
		Features:    nonEmpty(values["features"]),

		Page: 1,
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		p.Page = page
	}
	return p
}

// Result is one page of matches plus everything the filter UI needs.
type Result struct {
	Items       []models.Listing `json:"items"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	Facets      Facets           `json:"facets"`
}

// Facets are the distinct non-empty values per filterable dimension,
// computed over the entire collection regardless of active filters. Only
// Models is conditioned on the selected brand.
type Facets struct {
	Brands        []string `json:"brands"`
	Models        []string `json:"models"`
	FuelTypes     []string `json:"fuelTypes"`
	Transmissions []string `json:"transmissions"`
	Colors        []string `json:"colors"`
	Countries     []string `json:"countries"`
	EngineTypes   []string `json:"engineTypes"`
	BodyTypes     []string `json:"bodyTypes"`
	Conditions    []string `json:"conditions"`
	Features      []string `json:"features"`
}

// Run evaluates params against the collection with the default page size.
func Run(all []models.Listing, p Params) Result {
	return RunPaged(all, p, DefaultPageSize)
}

// RunPaged is Run with an explicit page size.
func RunPaged(all []models.Listing, p Params, pageSize int) Result {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	var matched []models.Listing
	for i := range all {
		if matches(&all[i], &p) {
			matched = append(matched, all[i])
		}
	}

	totalPages := (len(matched) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := p.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	var items []models.Listing
	if start < len(matched) {
		if end > len(matched) {
			end = len(matched)
		}
		items = matched[start:end]
	}

	return Result{
		Items:       items,
		TotalPages:  totalPages,
		CurrentPage: page,
		Facets:      ComputeFacets(all, p.Brand),
	}
}

func matches(l *models.Listing, p *Params) bool {
	if p.Brand != "" && !strings.EqualFold(l.Brand, p.Brand) {
		return false
	}
	if p.Model != "" && !strings.Contains(strings.ToLower(l.Model), strings.ToLower(p.Model)) {
		return false
	}
	if p.FuelType != "" && !strings.EqualFold(l.FuelType, p.FuelType) {
		return false
	}
	if p.Transmission != "" && !strings.EqualFold(l.Transmission, p.Transmission) {
		return false
	}
	if p.Color != "" && !strings.EqualFold(l.Color, p.Color) {
		return false
	}
	if p.Country != "" && !strings.EqualFold(l.Country, p.Country) {
		return false
	}
	if p.NumberOfDoors != nil && l.Doors != *p.NumberOfDoors {
		return false
	}

	// Range filters only apply when the listing carries the field; a
	// listing with an unknown year is excluded by any year bound, not
	// treated as matching.
	if p.MinYear != nil && (l.Year == nil || *l.Year < *p.MinYear) {
		return false
	}
	if p.MaxYear != nil && (l.Year == nil || *l.Year > *p.MaxYear) {
		return false
	}
	if p.MinMileage != nil && (l.Mileage == nil || *l.Mileage < *p.MinMileage) {
		return false
	}
	if p.MaxMileage != nil && (l.Mileage == nil || *l.Mileage > *p.MaxMileage) {
		return false
	}
	if p.MinPower != nil && (l.Power == nil || *l.Power < *p.MinPower) {
		return false
	}
	if p.MaxPower != nil && (l.Power == nil || *l.Power > *p.MaxPower) {
		return false
	}
	if p.MinPrice != nil && (l.Price == 0 || l.Price < *p.MinPrice) {
		return false
	}
	if p.MaxPrice != nil && (l.Price == 0 || l.Price > *p.MaxPrice) {
		return false
	}

	if len(p.EngineTypes) > 0 && !containsFold(p.EngineTypes, l.EngineType) {
		return false
	}
	if len(p.BodyTypes) > 0 && !containsFold(p.BodyTypes, l.BodyType) {
		return false
	}
	if len(p.Conditions) > 0 && !containsFold(p.Conditions, l.Condition) {
		return false
	}

	// Every requested feature must be present in the tag set.
	for _, feature := range p.Features {
		if !containsFold(l.Tags, feature) {
			return false
		}
	}

	return true
}

// ComputeFacets collects the distinct facet values across the whole
// collection, sorted lexicographically. When a brand is selected the
// model facet offers only that brand's models, excluding the unknown
// sentinel.
func ComputeFacets(all []models.Listing, selectedBrand string) Facets {
	brands := newFacetSet()
	modelSet := newFacetSet()
	fuelTypes := newFacetSet()
	transmissions := newFacetSet()
	colors := newFacetSet()
	countries := newFacetSet()
	engineTypes := newFacetSet()
	bodyTypes := newFacetSet()
	conditions := newFacetSet()
	features := newFacetSet()

	for i := range all {
		l := &all[i]
		brands.add(l.Brand)
		fuelTypes.add(l.FuelType)
		transmissions.add(l.Transmission)
		colors.add(l.Color)
		countries.add(l.Country)
		engineTypes.add(l.EngineType)
		bodyTypes.add(l.BodyType)
		conditions.add(l.Condition)
		for _, tag := range l.Tags {
			features.add(tag)
		}

		if selectedBrand != "" && !strings.EqualFold(l.Brand, selectedBrand) {
			continue
		}
		if strings.EqualFold(l.Model, "unknown") {
			continue
		}
		modelSet.add(l.Model)
	}

	return Facets{
		Brands:        brands.sorted(),
		Models:        modelSet.sorted(),
		FuelTypes:     fuelTypes.sorted(),
		Transmissions: transmissions.sorted(),
		Colors:        colors.sorted(),
		Countries:     countries.sorted(),
		EngineTypes:   engineTypes.sorted(),
		BodyTypes:     bodyTypes.sorted(),
		Conditions:    conditions.sorted(),
		Features:      features.sorted(),
	}
}

type facetSet map[string]struct{}

func newFacetSet() facetSet { return make(facetSet) }

func (s facetSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s facetSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func containsFold(haystack []string, needle string) bool {
	for _, v := range haystack {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}

func intParam(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func floatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
