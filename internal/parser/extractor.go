
package parser

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"abit-rating/internal/models"
)

type state int

const (
	stateOutside state = iota
	stateTable
	stateBody
	stateRow
	stateCell
	stateDone
)

func (s state) inBody() bool {
	return s == stateBody || s == stateRow || s == stateCell
}

func (s state) capturing() bool {
	return s != stateOutside && s != stateDone
}

type options struct {
	normalizers map[string]Normalizer
	sequential  bool
	encoding    string
}

// Option configures ExtractTokens and TableParser.
type Option func(*options)

// WithNormalizer sets the normalizer for field, replacing any default.
func WithNormalizer(field string, n Normalizer) Option {
	return func(o *options) { o.normalizers[field] = n }
}

// WithSequentialTables keeps scanning after the matched table closes, so rows
// of later tables with the same class are appended in document order.
func WithSequentialTables() Option {
	return func(o *options) { o.sequential = true }
}

// WithEncoding forces the page encoding (an HTML label such as "windows-1251")
// instead of detecting it.
func WithEncoding(label string) Option {
	return func(o *options) { o.encoding = label }
}

func newOptions(opts []Option) options {
	o := options{normalizers: DefaultNormalizers()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// extractor captures the rows of one table. It is owned by a single call.
type extractor struct {
	targetClass string
	schema      models.ColumnSchema
	opts        options

	state   state
	column  int
	records []models.Record
}

// ExtractTokens scans src once and returns one record per <tr> found in the
// <tbody> of the first <table> whose class attribute contains targetClass.
// A table that never matches yields an empty, non-nil slice.
func ExtractTokens(src TokenSource, targetClass string, schema models.ColumnSchema, opts ...Option) ([]models.Record, error) {
	e := &extractor{
		targetClass: targetClass,
		schema:      schema,
		opts:        newOptions(opts),
		records:     []models.Record{},
	}
	if err := Feed(src, e); err != nil {
		return nil, err
	}
	return e.records, nil
}

func (e *extractor) StartTag(name string, attrs []html.Attribute) error {
	switch name {
	case "table":
		// Nested tables are not tracked; only an idle extractor can match.
		if e.state == stateOutside && hasClass(attrs, e.targetClass) {
			e.state = stateTable
		}
	case "tbody":
		if e.state == stateTable {
			e.state = stateBody
		}
	case "tr":
		if e.state.inBody() {
			e.records = append(e.records, models.Record{})
			e.column = 0
			e.state = stateRow
		}
	case "td":
		if e.state.inBody() {
			e.column++
			e.state = stateCell
		}
	}
	return nil
}

func (e *extractor) EndTag(name string) error {
	switch name {
	case "td":
		if e.state == stateCell {
			e.state = stateRow
		}
	case "tr":
		if e.state == stateRow || e.state == stateCell {
			e.state = stateBody
		}
	case "tbody":
		if e.state.inBody() {
			e.state = stateTable
		}
	case "table":
		if e.state.capturing() {
			if e.opts.sequential {
				e.state = stateOutside
			} else {
				e.state = stateDone
			}
		}
	}
	return nil
}

func (e *extractor) Text(text string) error {
	if e.state != stateCell || len(e.records) == 0 || !printable(text) {
		return nil
	}
	field, ok := e.schema[e.column]
	if !ok {
		return nil
	}
	n, ok := e.opts.normalizers[field]
	if !ok {
		n = TextNormalizer
	}
	v, err := n.Normalize(text)
	if err != nil {
		return &MalformedCellError{
			Row:    len(e.records),
			Column: e.column,
			Field:  field,
			Raw:    text,
			Err:    err,
		}
	}
	e.records[len(e.records)-1][field] = v
	return nil
}

// hasClass matches on containment within the raw class attribute value.
func hasClass(attrs []html.Attribute, class string) bool {
	for _, a := range attrs {
		if a.Key == "class" && strings.Contains(a.Val, class) {
			return true
		}
	}
	return false
}

func printable(s string) bool {
	for _, r := range s {
		if unicode.IsGraphic(r) && !unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

var _ Handler = (*extractor)(nil)
