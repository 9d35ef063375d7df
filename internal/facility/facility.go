package facility

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion identifies the extraction rule generation. Bump it whenever
// the rule set changes so that cached records from older rules can be found
// and re-scraped.
const SchemaVersion = 2

// Flag is a ternary amenity state. Absence of evidence (Unknown) must stay
// distinguishable from evidence of absence (No), so a Flag is never coerced
// to a plain bool.
type Flag int

const (
	Unknown Flag = iota
	No
	Yes
)

// MarshalJSON encodes Yes/No/Unknown as true/false/null.
func (f Flag) MarshalJSON() ([]byte, error) {
	switch f {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes true/false/null back into a Flag.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*f = Yes
	case "false":
		*f = No
	case "null":
		*f = Unknown
	default:
		return fmt.Errorf("invalid facility flag: %s", data)
	}
	return nil
}

// ToiletType is the categorical toilet sub-type. The zero value means the
// sub-type is unknown and marshals to null.
type ToiletType string

const (
	ToiletFlushing   ToiletType = "flushing"
	ToiletComposting ToiletType = "composting"
	ToiletPit        ToiletType = "pit"
)

func (t ToiletType) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

func (t *ToiletType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ToiletType(s)
	return nil
}

// Summary holds the facility fields that are copied onto a site record.
type Summary struct {
	DogFriendly        Flag       `json:"dogFriendly"`
	Toilets            Flag       `json:"toilets"`
	ToiletsType        ToiletType `json:"toiletsType"`
	Showers            Flag       `json:"showers"`
	BBQ                Flag       `json:"bbq"`
	FirePits           Flag       `json:"firePits"`
	PicnicTables       Flag       `json:"picnicTables"`
	DrinkingWater      Flag       `json:"drinkingWater"`
	VehicleAccess      Flag       `json:"vehicleAccess"`
	AccessibilityNotes []string   `json:"accessibilityNotes"`
	DogPolicy          []string   `json:"dogPolicy"`
}

// Evidence keeps up to three verbatim source lines per category so that a
// flag can be audited later. It is never used for further computation.
type Evidence struct {
	Dog       []string `json:"dog"`
	Toilets   []string `json:"toilets"`
	Showers   []string `json:"showers"`
	BBQ       []string `json:"bbq"`
	Fire      []string `json:"fire"`
	Picnic    []string `json:"picnic"`
	Water     []string `json:"water"`
	Vehicle   []string `json:"vehicle"`
	Access    []string `json:"access"`
	Landscape []string `json:"landscape"`
	Animals   []string `json:"animals"`
}

// Profile is the full extraction result cached per URL.
type Profile struct {
	SchemaVersion int `json:"schemaVersion"`
	Summary
	LandscapeTags []string `json:"landscapeTags"`
	AnimalsFauna  []string `json:"animalsFauna"`
	Evidence      Evidence `json:"evidence"`
}
