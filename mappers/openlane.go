package mappers

import (
	"encoding/json"
	"strings"

	"autoagora/extract"
	"autoagora/models"
)

// OpenLaneAdapter handles openlane.json: auction export where the name
// field ends with a trim suffix, fuel is inferred from the emissions
// class, and a non-empty originalPrice marks the car as new stock.
type OpenLaneAdapter struct{}

func (a *OpenLaneAdapter) Source() string { return "openlane" }

type openLaneRecord struct {
	Name                  text       `json:"name"`
	Link                  text       `json:"link"`
	Price                 text       `json:"price"`
	OriginalPrice         text       `json:"originalPrice"`
	Horsepower            text       `json:"horsepower"`
	DateFirstRegistration text       `json:"dateFirstRegistration"`
	Emissions             text       `json:"emissions"`
	CarType               text       `json:"carType"`
	Location              text       `json:"location"`
	ImageURL              text       `json:"imageUrl"`
	PremiumOffers         stringList `json:"premiumOffers"`
}

func (a *OpenLaneAdapter) Map(data json.RawMessage) (l *models.Listing) {
	defer recoverRecord(a.Source(), data, &l)

	var r openLaneRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return badRecord(a.Source(), data, err)
	}

	// "Brand Model Trim" — the last token is the trim, not the model.
	nameParts := strings.Fields(r.Name.String())
	brand := notAvailable
	model := notAvailable
	if len(nameParts) > 0 {
		brand = nameParts[0]
	}
	if len(nameParts) > 2 {
		model = extract.MainModel(strings.Join(nameParts[1:len(nameParts)-1], " "))
	} else if len(nameParts) == 2 {
		model = nameParts[1]
	}

	fuel := notAvailable
	if !r.Emissions.Empty() {
		if strings.Contains(strings.ToLower(r.Emissions.String()), "eu6") {
			fuel = "Diesel"
		} else {
			fuel = "Petrol"
		}
	}
	engineType := notAvailable
	if fuel == "Diesel" || fuel == "Petrol" {
		engineType = fuel
	}

	condition := "Used"
	priceWithoutTax := extract.ParseOptionalAmount(r.OriginalPrice.String())
	if strings.TrimSpace(r.OriginalPrice.String()) != "" {
		condition = "New"
	}

	l = &models.Listing{
		Source:          a.Source(),
		Title:           fallback(r.Name.String(), notAvailable),
		Link:            orHash(r.Link.String()),
		Price:           extract.ParseAmount(r.Price.String()),
		PriceWithoutTax: priceWithoutTax,
		Power:           extract.UnitNumber(r.Horsepower.String(), "kW"),
		Year:            extract.YearOf(r.DateFirstRegistration.String()),
		Mileage:         nil, // source never publishes mileage
		Transmission:    notAvailable,
		FuelType:        fuel,
		Condition:       condition,
		Tags:            r.PremiumOffers,
		DeliveryInfo:    models.DeliveryInfo{},
		Brand:           fallback(brand, notAvailable),
		Model:           fallback(model, notAvailable),
		Color:           notAvailable,
		Country:         fallback(r.Location.String(), notAvailable),
		Doors:           4,
		BodyType:        fallback(r.CarType.String(), notAvailable),
		EngineType:      engineType,
	}
	l.FinishImages(imageList(nil, r.ImageURL))
	return l
}
