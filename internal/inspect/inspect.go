
// Package inspect lists the tables of a page so a catalog entry's table class
// and column indices can be written by hand.
package inspect

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"abit-rating/internal/parser"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

type Column struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

type Table struct {
	Index    int      `json:"index"`
	Class    string   `json:"class,omitempty"`
	Columns  []Column `json:"columns,omitempty"`
	BodyRows int      `json:"bodyRows"`
	// HasBody is false when the markup has no explicit <tbody>; such tables
	// cannot be extracted.
	HasBody bool `json:"hasBody"`
}

// Tables describes every table of the page in document order.
func Tables(raw []byte) ([]Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	var out []Table
	doc.Find("table").Each(func(i int, s *goquery.Selection) {
		t := Table{
			Index: i + 1,
			Class: strings.TrimSpace(s.AttrOr("class", "")),
		}
		t.Columns = headerColumns(s)
		// the HTML parser inserts <tbody> when the source omits it
		rows := s.ChildrenFiltered("tbody").ChildrenFiltered("tr")
		t.BodyRows = rows.Length()
		out = append(out, t)
	})
	for i, has := range explicitBodies(raw) {
		if i < len(out) {
			out[i].HasBody = has
		}
	}
	return out, nil
}

// explicitBodies reports, per table start tag in document order, whether the
// source markup opens a <tbody> directly inside that table. The DOM cannot
// tell such bodies apart from the ones the HTML parser inserts.
func explicitBodies(raw []byte) []bool {
	src := parser.NewTokenizer(bytes.NewReader(raw))
	var bodies []bool
	var open []int
	for {
		tok, err := src.Next()
		if err != nil {
			return bodies
		}
		switch {
		case tok.Kind == parser.StartTag && tok.Name == "table":
			bodies = append(bodies, false)
			open = append(open, len(bodies)-1)
		case tok.Kind == parser.StartTag && tok.Name == "tbody":
			if len(open) > 0 {
				bodies[open[len(open)-1]] = true
			}
		case tok.Kind == parser.EndTag && tok.Name == "table":
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}
}

func headerColumns(s *goquery.Selection) []Column {
	cells := s.Find("thead tr").First().Children()
	if cells.Length() == 0 {
		cells = s.Find("tr").First().ChildrenFiltered("th")
	}
	var cols []Column
	cells.Each(func(i int, c *goquery.Selection) {
		title := strings.TrimSpace(whitespaceRe.ReplaceAllString(c.Text(), " "))
		cols = append(cols, Column{Index: i + 1, Title: title})
	})
	return cols
}

// Write prints tables in a plain layout suitable for a terminal.
func Write(w io.Writer, tables []Table) {
	if len(tables) == 0 {
		fmt.Fprintln(w, "no tables found")
		return
	}
	for _, t := range tables {
		fmt.Fprintf(w, "table #%d class=%q rows=%d tbody=%t\n", t.Index, t.Class, t.BodyRows, t.HasBody)
		for _, c := range t.Columns {
			fmt.Fprintf(w, "\t%d: %s\n", c.Index, c.Title)
		}
	}
}
