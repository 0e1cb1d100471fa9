package mappers

import (
	"bytes"
	"encoding/json"

	"autoagora/models"
)

// text is a raw field that may arrive as a JSON string, a number, a bool,
// or null. The sources are inconsistent about quoting numerics, so every
// scalar field we extract from goes through this type.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	// Unquoted scalar: keep its literal form.
	*t = text(b)
	return nil
}

func (t text) String() string { return string(t) }

func (t text) Empty() bool { return string(t) == "" }

// stringList tolerates tag arrays that mix in non-string junk; anything
// that is not a string is silently dropped.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		// Not an array at all; treat as absent.
		*l = nil
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// rawDelivery is the shared deliveryInfo shape a few sources publish.
type rawDelivery struct {
	Label text `json:"label"`
	Price text `json:"price"`
}

func (d rawDelivery) toModel() models.DeliveryInfo {
	return models.DeliveryInfo{Label: d.Label.String(), Price: d.Price.String()}
}
