package catalog

// DeliveryZone is one priced delivery area of a restaurant. Zone names are
// display labels and may repeat.
type DeliveryZone struct {
	Zone         string  `json:"zone" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	DeliveryTime int     `json:"deliveryTime" validate:"gte=0"`
}

type Restaurant struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	DeliveryZones []DeliveryZone `json:"deliveryZones"`
}

// ZoneInput carries a zone as typed into the admin form; numbers arrive as
// text and are parsed during validation.
type ZoneInput struct {
	Zone         string `json:"zone"`
	Price        string `json:"price"`
	DeliveryTime string `json:"deliveryTime"`
}

type SearchResult struct {
	RestaurantName string  `json:"restaurantName"`
	ZoneName       string  `json:"zoneName"`
	Price          float64 `json:"price"`
	DeliveryTime   int     `json:"deliveryTime"`
}

func (r Restaurant) clone() Restaurant {
	zones := make([]DeliveryZone, len(r.DeliveryZones))
	copy(zones, r.DeliveryZones)
	r.DeliveryZones = zones
	return r
}

func cloneAll(rs []Restaurant) []Restaurant {
	out := make([]Restaurant, len(rs))
	for i, r := range rs {
		out[i] = r.clone()
	}
	return out
}

func maxID(rs []Restaurant) int {
	m := 0
	for _, r := range rs {
		if r.ID > m {
			m = r.ID
		}
	}
	return m
}
