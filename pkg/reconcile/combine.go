package reconcile

import (
	"cmp"
	"slices"

	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

// Contribution is one provider's record as it entered a combination.
type Contribution struct {
	Provider string        `json:"provider" yaml:"provider"`
	Record   places.Record `json:"record" yaml:"record"`
}

// Provenance maps a record field, by its JSON name, to the provider whose
// value ended up in the combined record.
type Provenance map[string]string

// Combine merges every record found in items into a single Record.
//
// Items may be Record, *Record, []Record, []*Record or []any holding any of
// those. Everything else is ignored. Records are folded in ascending weight
// order, so the order of items never changes the result when weights are
// distinct.
func Combine(items []any) places.Record {
	records := flatten(items)
	slices.SortStableFunc(records, func(a, b places.Record) int {
		return cmp.Compare(a.Weight, b.Weight)
	})
	return places.Fold(records...)
}

// CombineContributions folds contributions like Combine and reports which
// provider supplied each field. Equal weights are ordered by provider name.
func CombineContributions(contributions []Contribution) (places.Record, Provenance) {
	sorted := slices.Clone(contributions)
	sortContributions(sorted)

	acc := places.Record{}
	provenance := make(Provenance)
	for _, c := range sorted {
		before := fields(acc)
		acc = places.Merge(acc, c.Record)
		after := fields(acc)
		for name, v := range after {
			if v != before[name] {
				provenance[name] = c.Provider
			}
		}
	}
	return acc, provenance
}

func sortContributions(cs []Contribution) {
	slices.SortStableFunc(cs, func(a, b Contribution) int {
		return cmp.Or(
			cmp.Compare(a.Record.Weight, b.Record.Weight),
			cmp.Compare(a.Provider, b.Provider),
		)
	})
}

func flatten(items []any) []places.Record {
	var out []places.Record
	for _, item := range items {
		switch v := item.(type) {
		case places.Record:
			out = append(out, v)
		case *places.Record:
			if v != nil {
				out = append(out, *v)
			}
		case []places.Record:
			out = append(out, v...)
		case []*places.Record:
			for _, r := range v {
				if r != nil {
					out = append(out, *r)
				}
			}
		case Contribution:
			out = append(out, v.Record)
		case []any:
			out = append(out, flatten(v)...)
		}
	}
	return out
}

// fields lists the business fields of r keyed by JSON name.
func fields(r places.Record) map[string]any {
	return map[string]any{
		"name":         r.Name,
		"address":      r.Address,
		"latitude":     r.Latitude,
		"longitude":    r.Longitude,
		"type":         r.Category,
		"phone":        r.Phone,
		"email":        r.Email,
		"contact_name": r.ContactName,
		"website":      r.Website,
		"parking_info": r.ParkingInfo,
		"extra_info":   r.ExtraInfo,
	}
}
