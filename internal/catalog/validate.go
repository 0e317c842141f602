package catalog

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// decimalForm is what a price field may look like: optional sign, digits with
// an optional fraction, optional exponent. No hex, no underscores, no Inf.
var decimalForm = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type draft struct {
	Name  string         `json:"name" validate:"required"`
	Zones []DeliveryZone `json:"deliveryZones" validate:"min=1,dive"`
}

// parseDraft trims and parses raw form input. It returns a *ValidationError
// naming every bad field, or the draft ready to store.
func parseDraft(name string, zones []ZoneInput) (draft, error) {
	verr := &ValidationError{}
	d := draft{
		Name:  strings.TrimSpace(name),
		Zones: make([]DeliveryZone, 0, len(zones)),
	}

	for i, in := range zones {
		z := DeliveryZone{Zone: strings.TrimSpace(in.Zone)}

		if p, err := parsePrice(in.Price); err != nil {
			verr.add(zoneField(i, "price"), err.Error())
		} else {
			z.Price = p
		}

		if m, err := parseMinutes(in.DeliveryTime); err != nil {
			verr.add(zoneField(i, "deliveryTime"), err.Error())
		} else {
			z.DeliveryTime = m
		}

		d.Zones = append(d.Zones, z)
	}

	if err := validate.Struct(d); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return draft{}, err
		}
		for _, fe := range ves {
			verr.add(fieldPath(fe), fieldMessage(fe))
		}
	}

	if len(verr.Fields) > 0 {
		return draft{}, verr
	}
	return d, nil
}

func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("is required")
	}
	if !decimalForm.MatchString(raw) {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(p, 0) {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return p, nil
}

func parseMinutes(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("is required")
	}
	m, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number of minutes", raw)
	}
	return m, nil
}

func zoneField(i int, name string) string {
	return fmt.Sprintf("deliveryZones[%d].%s", i, name)
}

// fieldPath drops the struct name validator puts in front of the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "at least one delivery zone is required"
	case "gte":
		return "must not be negative"
	case "gt":
		return "must be positive"
	default:
		return "failed " + fe.Tag()
	}
}
