package mappers

import (
	"encoding/json"

	"autoagora/extract"
	"autoagora/models"
)

// AClassAdapter handles aclass.json, a German dealer export: "VB"
// (Verhandlungsbasis) prices, MM/YYYY registration dates, and a fixed
// country of Germany.
type AClassAdapter struct{}

func (a *AClassAdapter) Source() string { return "aclass" }

type aclassRecord struct {
	Title            text        `json:"title"`
	Link             text        `json:"link"`
	Price            text        `json:"price"`
	RegistrationDate text        `json:"registrationDate"`
	Mileage          text        `json:"mileage"`
	Tags             stringList  `json:"tags"`
	DeliveryInfo     rawDelivery `json:"deliveryInfo"`
	Images           stringList  `json:"images"`
}

func (a *AClassAdapter) Map(data json.RawMessage) (l *models.Listing) {
	defer recoverRecord(a.Source(), data, &l)

	var r aclassRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return badRecord(a.Source(), data, err)
	}

	title := fallback(r.Title.String(), notAvailableGR)
	brand, rest := extract.SplitTitle(title)

	l = &models.Listing{
		Source:          a.Source(),
		Title:           title,
		Link:            orHash(r.Link.String()),
		Price:           extract.ParseAmount(r.Price.String()),
		PriceWithoutTax: nil, // published as "Not deductible" across the feed
		Power:           nil,
		Year:            extract.YearOf(r.RegistrationDate.String()),
		Mileage:         extract.UnitNumber(r.Mileage.String(), "km"),
		Transmission:    notAvailableGR,
		FuelType:        notAvailableGR,
		Condition:       "Used",
		Tags:            r.Tags,
		DeliveryInfo:    r.DeliveryInfo.toModel(),
		Brand:           fallback(brand, notAvailableGR),
		Model:           fallback(extract.MainModel(rest), notAvailableGR),
		Color:           notAvailableGR,
		Country:         "Germany",
		Doors:           4,
		BodyType:        notAvailableGR,
		EngineType:      notAvailableGR,
	}
	l.FinishImages(imageList(r.Images, ""))
	return l
}
