// Package places defines the normalized business record shared by every
// collector, the weighted merge used to reconcile records from several
// providers, and the Collector interface implemented by provider adapters.
package places

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
)

// Record is the normalized business information for one physical place.
//
// Weight ranks the source that produced the record; a lower weight is a more
// trusted source. It is not business data and only takes part in Merge.
type Record struct {
	Name        string  `json:"name" yaml:"name"`
	Address     string  `json:"address" yaml:"address"`
	Latitude    float64 `json:"latitude" yaml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude"`
	Category    string  `json:"type" yaml:"type"`
	Phone       string  `json:"phone" yaml:"phone"`
	Email       string  `json:"email" yaml:"email"`
	ContactName string  `json:"contact_name" yaml:"contact_name"`
	Website     string  `json:"website" yaml:"website"`
	ParkingInfo string  `json:"parking_info" yaml:"parking_info"`
	ExtraInfo   string  `json:"extra_info" yaml:"extra_info"`
	Weight      int     `json:"weight" yaml:"weight"`
}

// Merge reconciles two records field by field and returns a new record.
//
// For every field except Weight the value of a is used when it is set, b's
// otherwise. When the weights differ, a set value from the lower-weight side
// always wins. The result has Weight 0.
func Merge(a, b Record) Record {
	aw, bw := a.Weight, b.Weight
	return Record{
		Name:        pick(a.Name, b.Name, aw, bw),
		Address:     pick(a.Address, b.Address, aw, bw),
		Latitude:    pick(a.Latitude, b.Latitude, aw, bw),
		Longitude:   pick(a.Longitude, b.Longitude, aw, bw),
		Category:    pick(a.Category, b.Category, aw, bw),
		Phone:       pick(a.Phone, b.Phone, aw, bw),
		Email:       pick(a.Email, b.Email, aw, bw),
		ContactName: pick(a.ContactName, b.ContactName, aw, bw),
		Website:     pick(a.Website, b.Website, aw, bw),
		ParkingInfo: pick(a.ParkingInfo, b.ParkingInfo, aw, bw),
		ExtraInfo:   pick(a.ExtraInfo, b.ExtraInfo, aw, bw),
	}
}

// pick resolves a single field.
func pick[T comparable](av, bv T, aw, bw int) T {
	var zero T

	v := av
	if av == zero {
		v = bv
	}

	switch {
	case aw < bw && av != zero:
		v = av
	case bw < aw && bv != zero:
		v = bv
	}
	return v
}

// MergeValue merges v into r when v is a Record or a non-nil *Record.
// Any other value leaves r unchanged.
func (r Record) MergeValue(v any) Record {
	switch other := v.(type) {
	case Record:
		return Merge(r, other)
	case *Record:
		if other != nil {
			return Merge(r, *other)
		}
	}
	return r
}

// Fold merges records left to right starting from an empty Record.
func Fold(records ...Record) Record {
	acc := Record{}
	for _, r := range records {
		acc = Merge(acc, r)
	}
	return acc
}

// IsZero reports whether r carries no business data. Weight is ignored.
func (r Record) IsZero() bool {
	r.Weight = 0
	return r == Record{}
}

// Geolocation returns "<latitude>,<longitude>".
//
// Each coordinate is written in its shortest exact decimal form and always
// carries a fractional part, so 1 renders as "1.0".
func (r Record) Geolocation() string {
	return formatCoordinate(r.Latitude) + "," + formatCoordinate(r.Longitude)
}

func formatCoordinate(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ToJSON serializes the record.
func (r Record) ToJSON() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.WrapParse("json", "record", err)
	}
	return data, nil
}

// FromJSON deserializes a record produced by ToJSON.
func FromJSON(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, errors.WrapParse("json", "record", err)
	}
	return r, nil
}
