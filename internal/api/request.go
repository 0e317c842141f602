package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"DeliveryDashboard/internal/catalog"
)

// formField accepts either a JSON string or a JSON number and keeps the raw
// text, so the catalog's own parsing decides what is valid.
type formField string

func (f *formField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = formField(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("want string or number, got %s", data)
		}
		*f = formField(n.String())
		return nil
	}
}

type zoneReq struct {
	Zone         string    `json:"zone"`
	Price        formField `json:"price"`
	DeliveryTime formField `json:"deliveryTime"`
}

type restaurantReq struct {
	Name          string    `json:"name"`
	DeliveryZones []zoneReq `json:"deliveryZones"`
}

func (r restaurantReq) zones() []catalog.ZoneInput {
	out := make([]catalog.ZoneInput, 0, len(r.DeliveryZones))
	for _, z := range r.DeliveryZones {
		out = append(out, catalog.ZoneInput{
			Zone:         z.Zone,
			Price:        string(z.Price),
			DeliveryTime: string(z.DeliveryTime),
		})
	}
	return out
}
