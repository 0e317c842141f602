package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-playground/validator/v10"
)

// storedRestaurant is the schema a persisted entry must satisfy.
type storedRestaurant struct {
	ID            int            `json:"id" validate:"gt=0"`
	Name          string         `json:"name" validate:"required"`
	DeliveryZones []DeliveryZone `json:"deliveryZones" validate:"min=1,dive"`
}

func encodeCatalog(rs []Restaurant) ([]byte, error) {
	if rs == nil {
		rs = []Restaurant{}
	}
	return json.Marshal(rs)
}

// decodeCatalog parses the persisted array. Every restaurant and zone must
// carry exactly its own fields, spelled exactly, each non-null and present
// once; anything else is reported as ErrStorageCorrupt.
func decodeCatalog(data []byte) ([]Restaurant, error) {
	if err := checkDuplicateKeys(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	var raws []map[string]json.RawMessage
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after catalog array", ErrStorageCorrupt)
	}
	if raws == nil {
		return nil, fmt.Errorf("%w: catalog is not an array", ErrStorageCorrupt)
	}

	rs := make([]Restaurant, 0, len(raws))
	seen := make(map[int]struct{}, len(raws))
	for i, raw := range raws {
		r, err := decodeRestaurant(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: restaurant[%d]: %v", ErrStorageCorrupt, i, err)
		}
		if err := validate.Struct(storedRestaurant(r)); err != nil {
			var ves validator.ValidationErrors
			if errors.As(err, &ves) && len(ves) > 0 {
				return nil, fmt.Errorf("%w: restaurant[%d].%s %s", ErrStorageCorrupt, i, fieldPath(ves[0]), fieldMessage(ves[0]))
			}
			return nil, fmt.Errorf("%w: restaurant[%d]: %v", ErrStorageCorrupt, i, err)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate restaurant id %d", ErrStorageCorrupt, r.ID)
		}
		seen[r.ID] = struct{}{}
		rs = append(rs, r)
	}

	return rs, nil
}

var (
	restaurantFields = []string{"id", "name", "deliveryZones"}
	zoneFields       = []string{"zone", "price", "deliveryTime"}
)

func decodeRestaurant(raw map[string]json.RawMessage) (Restaurant, error) {
	if err := exactFields(raw, restaurantFields); err != nil {
		return Restaurant{}, err
	}

	var (
		r     Restaurant
		zones []map[string]json.RawMessage
	)
	if err := decodeField(raw, "id", &r.ID); err != nil {
		return Restaurant{}, err
	}
	if err := decodeField(raw, "name", &r.Name); err != nil {
		return Restaurant{}, err
	}
	if err := decodeField(raw, "deliveryZones", &zones); err != nil {
		return Restaurant{}, err
	}

	r.DeliveryZones = make([]DeliveryZone, 0, len(zones))
	for j, zraw := range zones {
		var z DeliveryZone
		err := exactFields(zraw, zoneFields)
		if err == nil {
			err = decodeField(zraw, "zone", &z.Zone)
		}
		if err == nil {
			err = decodeField(zraw, "price", &z.Price)
		}
		if err == nil {
			err = decodeField(zraw, "deliveryTime", &z.DeliveryTime)
		}
		if err != nil {
			return Restaurant{}, fmt.Errorf("deliveryZones[%d]: %w", j, err)
		}
		r.DeliveryZones = append(r.DeliveryZones, z)
	}
	return r, nil
}

// exactFields requires obj to hold exactly the names in want, case included.
func exactFields(obj map[string]json.RawMessage, want []string) error {
	if obj == nil {
		return errors.New("not an object")
	}
	for _, k := range want {
		if _, ok := obj[k]; !ok {
			return fmt.Errorf("missing field %q", k)
		}
	}
	for k := range obj {
		if !slices.Contains(want, k) {
			return fmt.Errorf("unknown field %q", k)
		}
	}
	return nil
}

func decodeField(obj map[string]json.RawMessage, key string, dst any) error {
	v := bytes.TrimSpace(obj[key])
	if bytes.Equal(v, []byte("null")) {
		return fmt.Errorf("field %q is null", key)
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("field %q: %v", key, err)
	}
	return nil
}

// checkDuplicateKeys walks every object in data and rejects a member name
// that appears twice. encoding/json would silently keep the last one.
func checkDuplicateKeys(data []byte) error {
	type frame struct {
		object  bool
		wantKey bool
		keys    map[string]struct{}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var stack []*frame

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		var top *frame
		if n := len(stack); n > 0 {
			top = stack[n-1]
		}

		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				if top != nil && top.object {
					top.wantKey = true
				}
				stack = append(stack, &frame{object: d == '{', wantKey: d == '{', keys: map[string]struct{}{}})
			case '}', ']':
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if top == nil || !top.object {
			continue
		}
		if top.wantKey {
			k, _ := tok.(string)
			if _, dup := top.keys[k]; dup {
				return fmt.Errorf("duplicate field %q", k)
			}
			top.keys[k] = struct{}{}
			top.wantKey = false
			continue
		}
		top.wantKey = true
	}
}
