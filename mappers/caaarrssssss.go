package mappers

import (
	"encoding/json"
	"strings"

	"autoagora/extract"
	"autoagora/models"
)

// CaaarrssssssAdapter handles caaarrssssss.json: same structured shape as
// carsparking but with a DD/MM/YYYY registration date, a real tag array,
// and the door count hidden inside the tags.
type CaaarrssssssAdapter struct{}

func (a *CaaarrssssssAdapter) Source() string { return "caaarrssssss" }

type caaarrssssssRecord struct {
	Brand            text        `json:"brand"`
	Model            text        `json:"model"`
	Engine           text        `json:"engine"`
	URL              text        `json:"url"`
	Price            text        `json:"price"`
	Power            text        `json:"power"`
	RegistrationDate text        `json:"registrationDate"`
	Mileage          text        `json:"mileage"`
	EngineType       text        `json:"engineType"`
	BodyType         text        `json:"bodyType"`
	Condition        text        `json:"condition"`
	Transmission     text        `json:"transmission"`
	FuelType         text        `json:"fuelType"`
	Color            text        `json:"color"`
	Country          text        `json:"country"`
	Tags             stringList  `json:"tags"`
	DeliveryInfo     rawDelivery `json:"deliveryInfo"`
	Images           stringList  `json:"images"`
	ImageURL         text        `json:"imageUrl"`
}

func (a *CaaarrssssssAdapter) Map(data json.RawMessage) (l *models.Listing) {
	defer recoverRecord(a.Source(), data, &l)

	var r caaarrssssssRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return badRecord(a.Source(), data, err)
	}

	title := strings.TrimSpace(strings.Join([]string{
		fallback(r.Brand.String(), notAvailable),
		fallback(r.Model.String(), notAvailable),
		r.Engine.String(),
	}, " "))

	l = &models.Listing{
		Source:          a.Source(),
		Title:           fallback(title, notAvailable),
		Link:            orHash(r.URL.String()),
		Price:           extract.ParseAmount(r.Price.String()),
		PriceWithoutTax: nil,
		Power:           extract.UnitNumber(r.Power.String(), "kW"),
		Year:            extract.YearOf(r.RegistrationDate.String()),
		Mileage:         extract.UnitNumber(r.Mileage.String(), "km"),
		Transmission:    fallback(strings.TrimSpace(r.Transmission.String()), notAvailable),
		FuelType:        fallback(strings.TrimSpace(r.FuelType.String()), notAvailable),
		Condition:       fallback(r.Condition.String(), "Used"),
		Tags:            r.Tags,
		DeliveryInfo:    r.DeliveryInfo.toModel(),
		Brand:           fallback(r.Brand.String(), notAvailable),
		Model:           fallback(extract.MainModel(r.Model.String()), notAvailable),
		Color:           fallback(r.Color.String(), notAvailable),
		Country:         fallback(r.Country.String(), notAvailable),
		Doors:           extract.DoorsFromTags(r.Tags),
		BodyType:        fallback(r.BodyType.String(), notAvailable),
		EngineType:      fallback(r.EngineType.String(), notAvailable),
	}
	l.FinishImages(imageList(r.Images, r.ImageURL))
	return l
}
