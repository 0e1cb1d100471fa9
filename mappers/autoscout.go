package mappers

import (
	"encoding/json"
	"strings"

	"autoagora/extract"
	"autoagora/models"
)

// AutoscoutAdapter handles autoscoutcars.json: titles wrap across lines,
// prices look like "€ 309,900.-", and brand-new stock carries a year field
// reading "First Registration" instead of a date.
type AutoscoutAdapter struct{}

func (a *AutoscoutAdapter) Source() string { return "autoscoutcars" }

type autoscoutRecord struct {
	Title        text       `json:"title"`
	Link         text       `json:"link"`
	Price        text       `json:"price"`
	Mileage      text       `json:"mileage"`
	Year         text       `json:"year"`
	Power        text       `json:"power"`
	Fuel         text       `json:"fuel"`
	Transmission text       `json:"transmission"`
	Images       stringList `json:"images"`
	ImageURL     text       `json:"imageUrl"`
}

func (a *AutoscoutAdapter) Map(data json.RawMessage) (l *models.Listing) {
	defer recoverRecord(a.Source(), data, &l)

	var r autoscoutRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return badRecord(a.Source(), data, err)
	}

	title := strings.TrimSpace(strings.ReplaceAll(r.Title.String(), "\n", " "))
	title = fallback(title, notAvailableGR)
	brand, rest := extract.SplitTitle(title)

	year := extract.YearOf(r.Year.String())
	condition := "Used"
	if year == nil && strings.Contains(r.Year.String(), "First Registration") {
		condition = "New"
	}

	l = &models.Listing{
		Source:          a.Source(),
		Title:           title,
		Link:            orHash(r.Link.String()),
		Price:           extract.ParseAmount(r.Price.String()),
		PriceWithoutTax: nil,
		Power:           extract.UnitNumber(r.Power.String(), "kW"),
		Year:            year,
		Mileage:         extract.UnitNumber(r.Mileage.String(), "km"),
		Transmission:    fallback(r.Transmission.String(), notAvailableGR),
		FuelType:        fallback(r.Fuel.String(), notAvailableGR),
		Condition:       condition,
		Tags:            nil,
		DeliveryInfo:    models.DeliveryInfo{},
		Brand:           fallback(brand, notAvailableGR),
		Model:           fallback(extract.MainModel(rest), notAvailableGR),
		Color:           notAvailableGR,
		Country:         notAvailableGR,
		Doors:           4,
		BodyType:        notAvailableGR,
		EngineType:      notAvailableGR,
	}
	l.FinishImages(imageList(r.Images, r.ImageURL))
	return l
}
