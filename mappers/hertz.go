package mappers

import (
	"encoding/json"

	"autoagora/extract"
	"autoagora/models"
)

// HertzAdapter handles hertzcars.json, an ex-rental feed with Greek field
// names and very little beyond model, price, year and location.
type HertzAdapter struct{}

func (a *HertzAdapter) Source() string { return "hertzcars" }

type hertzRecord struct {
	Model    text `json:"Μοντέλο"`
	Price    text `json:"Τιμή"`
	Year     text `json:"Έτος"`
	Location text `json:"Τοποθεσία"`
	ImageURL text `json:"URLΕικόνας"`
	Link     text `json:"Link"`
}

func (a *HertzAdapter) Map(data json.RawMessage) (l *models.Listing) {
	defer recoverRecord(a.Source(), data, &l)

	var r hertzRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return badRecord(a.Source(), data, err)
	}

	title := fallback(r.Model.String(), notAvailableGR)
	brand, rest := extract.SplitTitle(title)

	l = &models.Listing{
		Source:          a.Source(),
		Title:           title,
		Link:            orHash(r.Link.String()),
		Price:           extract.ParseAmount(r.Price.String()),
		PriceWithoutTax: nil,
		Power:           nil,
		Year:            extract.YearOf(r.Year.String()),
		Mileage:         nil,
		Transmission:    notAvailableGR,
		FuelType:        notAvailableGR,
		Condition:       "Used",
		Tags:            nil,
		DeliveryInfo:    models.DeliveryInfo{},
		Brand:           fallback(brand, notAvailableGR),
		Model:           fallback(extract.MainModel(rest), notAvailableGR),
		Color:           notAvailableGR,
		Country:         fallback(r.Location.String(), notAvailableGR),
		Doors:           4,
		BodyType:        notAvailableGR,
		EngineType:      notAvailableGR,
	}
	l.FinishImages(imageList(nil, r.ImageURL))
	return l
}
