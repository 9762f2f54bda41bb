
package models

import (
	"sort"
	"time"
)

// Field names understood by the default normalizers and the reports.
const (
	FieldPosition   = "position"
	FieldExamResult = "exam_result"
	FieldBasis      = "basis"
	FieldAgreement  = "agreement"
)

// ColumnSchema maps a 1-based <td> index within a row to a field name.
type ColumnSchema map[int]string

// Fields returns the schema's field names ordered by column index.
func (s ColumnSchema) Fields() []string {
	idx := make([]int, 0, len(s))
	for i := range s {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, s[i])
	}
	return out
}

// Has reports whether name is one of the schema's field names.
func (s ColumnSchema) Has(name string) bool {
	for _, f := range s {
		if f == name {
			return true
		}
	}
	return false
}

// Record is one ranking row. Values are int for numeric fields and string otherwise.
type Record map[string]any

func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Int returns the field as an int when it was normalized to one.
func (r Record) Int(field string) (int, bool) {
	v, ok := r[field].(int)
	return v, ok
}

// Text returns the field when it holds text.
func (r Record) Text(field string) (string, bool) {
	v, ok := r[field].(string)
	return v, ok
}

// TextOr returns the text value of field or fallback when absent.
func (r Record) TextOr(field, fallback string) string {
	if v, ok := r.Text(field); ok {
		return v
	}
	return fallback
}

type Column struct {
	Index int    `json:"index" mapstructure:"index"`
	Field string `json:"field" mapstructure:"field"`
}

type Faculty struct {
	Name         string   `json:"name" mapstructure:"name"`
	URL          string   `json:"url" mapstructure:"url"`
	BudgetPlaces int      `json:"budgetPlaces" mapstructure:"budget_places"`
	Columns      []Column `json:"columns" mapstructure:"columns"`
}

// Schema builds the column schema declared for the faculty's rating table.
func (f Faculty) Schema() ColumnSchema {
	s := make(ColumnSchema, len(f.Columns))
	for _, c := range f.Columns {
		s[c.Index] = c.Field
	}
	return s
}

type University struct {
	Name       string    `json:"name" mapstructure:"name"`
	TableClass string    `json:"tableClass" mapstructure:"html_table_class"`
	Faculties  []Faculty `json:"faculties" mapstructure:"faculties"`
}

// Document is a fetched page held fully in memory.
type Document struct {
	Body        []byte        `json:"-"`
	SourceURL   string        `json:"sourceUrl"`
	ContentType string        `json:"contentType"`
	Fetch       time.Duration `json:"-"`
}

// Tally counts applicants by agreement status.
type Tally struct {
	Records    int `json:"records"`
	Yes        int `json:"withAgreement"`
	No         int `json:"withoutAgreement"`
	OtherTrack int `json:"otherTrack"`
}

// Analysis is the positional summary for one applicant rank.
type Analysis struct {
	Rank  int    `json:"rank"`
	Above *Tally `json:"above,omitempty"`
	Total Tally  `json:"total"`
}

type Rating struct {
	University   string   `json:"university"`
	Faculty      string   `json:"faculty"`
	BudgetPlaces int      `json:"budgetPlaces"`
	SourceURL    string   `json:"sourceUrl,omitempty"`
	FetchMs      int64    `json:"fetchMs"`
	Records      []Record `json:"records"`
}
