package output

import (
	"io"
	"slices"
	"strconv"

	"github.com/rgreinho/request-yo-racks-api/pkg/places"
	"github.com/rgreinho/request-yo-racks-api/pkg/reconcile"
)

// RecordToTableData renders a record as a property table. Empty fields are
// skipped and the coordinates are shown as one geolocation row.
func RecordToTableData(r places.Record) Data {
	rows := [][]string{}
	add := func(name, value string) {
		if value != "" {
			rows = append(rows, []string{name, value})
		}
	}

	add("Name", r.Name)
	add("Address", r.Address)
	if r.Latitude != 0 || r.Longitude != 0 {
		add("Geolocation", r.Geolocation())
	}
	add("Type", r.Category)
	add("Phone", r.Phone)
	add("Email", r.Email)
	add("Contact Name", r.ContactName)
	add("Website", r.Website)
	add("Parking Info", r.ParkingInfo)
	add("Extra Info", r.ExtraInfo)

	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// SummariesToTableData renders search summaries with their result index.
func SummariesToTableData(summaries []places.SearchSummary) Data {
	rows := make([][]string, 0, len(summaries))
	for i, s := range summaries {
		rows = append(rows, []string{strconv.Itoa(i), s.ID, s.Name, s.Address})
	}
	return Data{
		Headers:         []string{"#", "ID", "Name", "Address"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
}

// ProvenanceToTableData lists which provider supplied each merged field.
func ProvenanceToTableData(res *reconcile.Result) Data {
	weights := make(map[string]int, len(res.Contributions))
	for _, c := range res.Contributions {
		weights[c.Provider] = c.Record.Weight
	}

	fields := make([]string, 0, len(res.Provenance))
	for field := range res.Provenance {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		provider := res.Provenance[field]
		rows = append(rows, []string{field, provider, strconv.Itoa(weights[provider])})
	}
	return Data{
		Headers:         []string{"Field", "Provider", "Weight"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

// Record writes r in format.
func Record(w io.Writer, format Format, r places.Record) error {
	if format == FormatTable {
		return NewFormatter(format).Format(w, RecordToTableData(r))
	}
	return NewFormatter(format).Format(w, r)
}

// Summaries writes search summaries in format.
func Summaries(w io.Writer, format Format, summaries []places.SearchSummary) error {
	if format == FormatTable {
		return NewFormatter(format).Format(w, SummariesToTableData(summaries))
	}
	if summaries == nil {
		summaries = []places.SearchSummary{}
	}
	return NewFormatter(format).Format(w, summaries)
}

// Result writes a collection result. Tables show the record followed by its
// field provenance.
func Result(w io.Writer, format Format, res *reconcile.Result) error {
	if format != FormatTable {
		return NewFormatter(format).Format(w, res)
	}
	f := NewFormatter(format)
	if err := f.Format(w, RecordToTableData(res.Record)); err != nil {
		return err
	}
	return f.Format(w, ProvenanceToTableData(res))
}
