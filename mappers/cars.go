package mappers

import (
	"encoding/json"
	"strings"

	"autoagora/extract"
	"autoagora/models"
)

// CarsAdapter handles cars.json and the carsbg_part_* shards, the richest
// source shape: explicit brand, separate tag lists, delivery info, and a
// nested detail-page object used as a fallback for location.
type CarsAdapter struct{}

func (a *CarsAdapter) Source() string { return "cars" }

type carsRecord struct {
	Title            text        `json:"title"`
	Link             text        `json:"link"`
	Brand            text        `json:"brand"`
	Price            text        `json:"price"`
	PriceWithoutTax  text        `json:"priceWithoutTax"`
	Power            text        `json:"power"`
	Year             text        `json:"year"`
	RegistrationDate text        `json:"registrationDate"`
	Mileage          text        `json:"mileage"`
	Transmission     text        `json:"transmission"`
	Fuel             text        `json:"fuel"`
	FuelType         text        `json:"fuelType"`
	Condition        text        `json:"condition"`
	Color            text        `json:"color"`
	Country          text        `json:"country"`
	Tags             stringList  `json:"tags"`
	AdditionalTags   stringList  `json:"additionalTags"`
	DeliveryInfo     rawDelivery `json:"deliveryInfo"`
	Images           stringList  `json:"images"`
	ImageURL         text        `json:"imageUrl"`
	DetailPageData   struct {
		Location text `json:"location"`
	} `json:"detailPageData"`
}

func (a *CarsAdapter) Map(data json.RawMessage) (l *models.Listing) {
	defer recoverRecord(a.Source(), data, &l)

	var r carsRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return badRecord(a.Source(), data, err)
	}

	title := fallback(r.Title.String(), notAvailableGR)
	brand, rest := extract.SplitTitle(title)
	if !r.Brand.Empty() {
		brand = r.Brand.String()
	}

	fuel := r.FuelType.String()
	if fuel == "" {
		fuel = r.Fuel.String()
	}

	year := extract.YearOf(r.RegistrationDate.String())
	if year == nil {
		year = extract.YearOf(r.Year.String())
	}

	tags := append(append([]string{}, r.Tags...), r.AdditionalTags...)

	country := r.Country.String()
	if country == "" {
		country = r.DetailPageData.Location.String()
	}

	condition := "Used"
	if !r.Condition.Empty() {
		condition = r.Condition.String()
	}

	l = &models.Listing{
		Source:          a.Source(),
		Title:           title,
		Link:            orHash(r.Link.String()),
		Price:           extract.ParseAmount(r.Price.String()),
		PriceWithoutTax: extract.ParseOptionalAmount(r.PriceWithoutTax.String()),
		Power:           extract.UnitNumber(r.Power.String(), "kW", "PS"),
		Year:            year,
		Mileage:         extract.UnitNumber(r.Mileage.String(), "km"),
		Transmission:    fallback(r.Transmission.String(), notAvailableGR),
		FuelType:        fallback(fuel, notAvailableGR),
		Condition:       condition,
		Tags:            tags,
		DeliveryInfo:    r.DeliveryInfo.toModel(),
		Brand:           fallback(brand, notAvailableGR),
		Model:           fallback(extract.MainModel(rest), notAvailableGR),
		Color:           fallback(r.Color.String(), notAvailableGR),
		Country:         fallback(country, notAvailableGR),
		Doors:           extract.DoorsFromTags(tags),
		BodyType:        bodyTypeFromTags(tags),
		EngineType:      engineTypeFromFuel(fuel),
	}
	l.FinishImages(imageList(r.Images, r.ImageURL))
	return l
}

// imageList picks the image set for sources that publish either an array
// of URLs or a single imageUrl field. Array entries may pack srcset-style
// alternates into one string; only the first URL of each is kept.
func imageList(images []string, single text) []string {
	if len(images) > 0 {
		out := make([]string, 0, len(images))
		for _, img := range images {
			if u := extract.FirstURL(img); u != "" {
				out = append(out, u)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	if !single.Empty() {
		return []string{single.String()}
	}
	return nil
}

var knownBodyTypes = []string{"Sedan", "Hatchback", "SUV", "Coupe", "Convertible", "Van", "Wagon", "Truck"}

func bodyTypeFromTags(tags []string) string {
	for _, bt := range knownBodyTypes {
		for _, tag := range tags {
			if tag == bt {
				return bt
			}
		}
	}
	return notAvailableGR
}

var knownEngineTypes = []string{"Petrol", "Diesel", "Electric", "Hybrid"}

func engineTypeFromFuel(fuel string) string {
	lower := strings.ToLower(fuel)
	for _, et := range knownEngineTypes {
		if strings.Contains(lower, strings.ToLower(et)) {
			return et
		}
	}
	return notAvailableGR
}
