package mappers

import (
	"encoding/json"
	"strings"

	"autoagora/extract"
	"autoagora/models"
)

// CarsParkingAdapter handles carsparking.json: structured fields with "NC"
// placeholders and a description string that doubles as the tag source.
type CarsParkingAdapter struct{}

func (a *CarsParkingAdapter) Source() string { return "carsparking" }

type carsParkingRecord struct {
	Brand          text        `json:"brand"`
	Model          text        `json:"model"`
	Engine         text        `json:"engine"`
	URL            text        `json:"url"`
	Price          text        `json:"price"`
	Power          text        `json:"power"`
	ProductionDate text        `json:"productionDate"`
	Mileage        text        `json:"mileage"`
	NumberOfDoors  text        `json:"numberOfDoors"`
	EngineType     text        `json:"engineType"`
	BodyType       text        `json:"bodyType"`
	Condition      text        `json:"condition"`
	Transmission   text        `json:"transmission"`
	FuelType       text        `json:"fuelType"`
	Color          text        `json:"color"`
	Country        text        `json:"country"`
	Description    text        `json:"description"`
	DeliveryInfo   rawDelivery `json:"deliveryInfo"`
	Images         stringList  `json:"images"`
	ImageURL       text        `json:"imageUrl"`
}

// Scraper field labels that leak into carsparking descriptions.
var carsParkingStopWords = []string{"Year", "Kilometer", "Fuel", "type"}

func (a *CarsParkingAdapter) Map(data json.RawMessage) (l *models.Listing) {
	defer recoverRecord(a.Source(), data, &l)

	var r carsParkingRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return badRecord(a.Source(), data, err)
	}

	doors := 4
	if d := extract.LeadingInt(r.NumberOfDoors.String()); d != nil {
		doors = *d
	}

	var tags []string
	if !r.Description.Empty() {
		tags = extract.SplitWords(r.Description.String(), carsParkingStopWords...)
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
		Year:            extract.YearOf(r.ProductionDate.String()),
		Mileage:         extract.UnitNumber(r.Mileage.String(), "km"),
		Transmission:    fallback(strings.TrimSpace(r.Transmission.String()), notAvailable),
		FuelType:        fallback(strings.TrimSpace(r.FuelType.String()), notAvailable),
		Condition:       fallback(r.Condition.String(), "Used"),
		Tags:            tags,
		DeliveryInfo:    r.DeliveryInfo.toModel(),
		Brand:           fallback(r.Brand.String(), notAvailable),
		Model:           fallback(extract.MainModel(r.Model.String()), notAvailable),
		Color:           fallback(r.Color.String(), notAvailable),
		Country:         fallback(r.Country.String(), notAvailable),
		Doors:           doors,
		BodyType:        fallback(r.BodyType.String(), notAvailable),
		EngineType:      fallback(r.EngineType.String(), notAvailable),
	}
	l.FinishImages(imageList(r.Images, r.ImageURL))
	return l
}
