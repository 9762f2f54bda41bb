
package parser

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"abit-rating/internal/models"
)

// TableParser extracts ranking records from whole HTML pages.
type TableParser struct {
	targetClass string
	schema      models.ColumnSchema
	opts        []Option
	encoding    string
}

func New(targetClass string, schema models.ColumnSchema, opts ...Option) *TableParser {
	return &TableParser{
		targetClass: targetClass,
		schema:      schema,
		opts:        opts,
		encoding:    newOptions(opts).encoding,
	}
}

// Extract reads the page, decodes it to UTF-8 using the forced encoding or the
// content type and <meta> hints, then runs a single tokenizer pass over it.
func (p *TableParser) Extract(r io.Reader, contentType string) ([]models.Record, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	data, err := DecodePage(buf.Bytes(), contentType, p.encoding)
	if err != nil {
		return nil, err
	}
	return ExtractTokens(NewTokenizer(bytes.NewReader(data)), p.targetClass, p.schema, p.opts...)
}

// DecodePage converts page bytes to UTF-8. forced is an HTML encoding label
// that takes precedence over the content type and <meta> declarations.
// Unless the label is forced or comes from a BOM or the content type, a body
// that is valid UTF-8 throughout is kept as is.
func DecodePage(data []byte, contentType, forced string) ([]byte, error) {
	var enc encoding.Encoding
	if forced != "" {
		e, err := htmlindex.Get(forced)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", forced, err)
		}
		enc = e
	} else {
		var certain bool
		enc, _, certain = charset.DetermineEncoding(data, contentType)
		// detection only sniffs the first KB and guesses windows-1252
		if !certain && utf8.Valid(data) {
			return data, nil
		}
	}
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		utf8data = data
	}
	return utf8data, nil
}
