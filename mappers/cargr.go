package mappers

import (
	"encoding/json"
	"strings"

	"autoagora/extract"
	"autoagora/models"
)

// CargrAdapter handles cargr.json: Greek field names throughout, with the
// interesting data packed into one free-text "extra information" line of
// the form "3/2004, 214.550 χλμ, 1.364 cc, 90 bhp, Βενζίνη".
type CargrAdapter struct{}

func (a *CargrAdapter) Source() string { return "cargr" }

type cargrRecord struct {
	Title       text `json:"Τίτλος"`
	Link        text `json:"Σύνδεσμος"`
	Price       text `json:"Τιμή"`
	ExtraInfo   text `json:"ΕπιπλέονΠληροφορίες"`
	Location    text `json:"Τοποθεσία"`
	Description text `json:"Περιγραφή"`
	ImageURL    text `json:"URLΕικόνας"`
}

func (a *CargrAdapter) Map(data json.RawMessage) (l *models.Listing) {
	defer recoverRecord(a.Source(), data, &l)

	var r cargrRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return badRecord(a.Source(), data, err)
	}

	title := fallback(r.Title.String(), notAvailableGR)
	brand, rest := extract.SplitTitle(title)

	info := r.ExtraInfo.String()
	fuel := notAvailableGR
	lowerInfo := strings.ToLower(info)
	if strings.Contains(lowerInfo, "βενζίνη") {
		fuel = "Βενζίνη"
	} else if strings.Contains(lowerInfo, "πετρέλαιο") {
		fuel = "Πετρέλαιο"
	}

	var tags []string
	if !r.Description.Empty() {
		tags = []string{extract.PlainText(r.Description.String())}
	}

	l = &models.Listing{
		Source:          a.Source(),
		Title:           title,
		Link:            orHash(r.Link.String()),
		Price:           extract.ParseAmount(r.Price.String()),
		PriceWithoutTax: nil,
		Power:           extract.UnitNumber(info, "bhp"),
		Year:            extract.YearOf(info),
		Mileage:         extract.UnitNumber(info, "χλμ"),
		Transmission:    notAvailableGR,
		FuelType:        fuel,
		Condition:       "Used",
		Tags:            tags,
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
