package mappers

import (
	"encoding/json"
	"strings"

	"autoagora/extract"
	"autoagora/models"
)

// KleinanzeigenAdapter handles kleinanzegencars.json (the file name keeps
// the scraper's original spelling): classifieds with a numeric price field
// next to a formatted priceText, German month names in the year field, and
// bare "166 PS" power figures.
type KleinanzeigenAdapter struct{}

func (a *KleinanzeigenAdapter) Source() string { return "kleinanzegencars" }

type kleinanzeigenRecord struct {
	Title          text       `json:"title"`
	Link           text       `json:"link"`
	Brand          text       `json:"brand"`
	Price          text       `json:"price"`
	PriceText      text       `json:"priceText"`
	Mileage        text       `json:"mileage"`
	Transmission   text       `json:"transmission"`
	Year           text       `json:"year"`
	Fuel           text       `json:"fuel"`
	Power          text       `json:"power"`
	Images         stringList `json:"images"`
	DetailPageData struct {
		Location text `json:"location"`
	} `json:"detailPageData"`
}

func (a *KleinanzeigenAdapter) Map(data json.RawMessage) (l *models.Listing) {
	defer recoverRecord(a.Source(), data, &l)

	var r kleinanzeigenRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return badRecord(a.Source(), data, err)
	}

	title := fallback(r.Title.String(), notAvailable)

	// Price prefers the numeric field; priceText is the formatted fallback.
	price := extract.ParseAmount(r.Price.String())
	if price == 0 {
		price = extract.ParseAmount(r.PriceText.String())
	}

	brand := r.Brand.String()
	var model string
	if brand != "" && strings.HasPrefix(title, brand) {
		model = strings.TrimSpace(strings.TrimPrefix(title, brand))
	} else {
		brand, model = extract.SplitTitle(title)
	}

	l = &models.Listing{
		Source:          a.Source(),
		Title:           title,
		Link:            orHash(r.Link.String()),
		Price:           price,
		PriceWithoutTax: nil,
		Power:           extract.LeadingInt(r.Power.String()),
		Year:            extract.YearOf(r.Year.String()),
		Mileage:         extract.GroupedInt(r.Mileage.String()),
		Transmission:    fallback(r.Transmission.String(), notAvailableNA),
		FuelType:        fallback(r.Fuel.String(), notAvailableNA),
		Condition:       "Used",
		Tags:            nil,
		DeliveryInfo:    models.DeliveryInfo{},
		Brand:           fallback(brand, notAvailable),
		Model:           fallback(extract.MainModel(model), notAvailable),
		Color:           notAvailable,
		Country:         fallback(r.DetailPageData.Location.String(), notAvailable),
		Doors:           4,
		BodyType:        notAvailable,
		EngineType:      notAvailable,
	}
	l.FinishImages(imageList(r.Images, ""))
	return l
}
