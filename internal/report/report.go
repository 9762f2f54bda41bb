
// Package report lists and summarizes extracted ranking records.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"abit-rating/internal/classifier"
	"abit-rating/internal/models"
)

// DefaultBasis is shown when a record has no admission basis.
const DefaultBasis = "Б"

var listHeaders = []string{"МЕСТО", "БАЛЛЫ", "ОСНОВАНИЕ ПРИЕМА", "СОГЛАСИЕ"}

// List returns at most limit leading records; a nil limit keeps all of them.
func List(records []models.Record, limit *int) []models.Record {
	if limit == nil || *limit >= len(records) {
		return records
	}
	if *limit < 0 {
		return records[:0]
	}
	return records[:*limit]
}

// Row is the display form of a record in the list view.
func Row(r models.Record) []string {
	return []string{
		intCell(r, models.FieldPosition),
		intCell(r, models.FieldExamResult),
		r.TextOr(models.FieldBasis, DefaultBasis),
		r.TextOr(models.FieldAgreement, classifier.Negative),
	}
}

func intCell(r models.Record, field string) string {
	if n, ok := r.Int(field); ok {
		return strconv.Itoa(n)
	}
	return r.TextOr(field, "")
}

// RenderList writes records as a bordered grid.
func RenderList(w io.Writer, records []models.Record) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(listHeaders)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)
	for _, r := range records {
		table.Append(Row(r))
	}
	table.Render()
}

// Analyze tallies agreement statuses over all records and, when some record
// holds rank and rank is not first, the statuses of the records above it.
func Analyze(records []models.Record, rank int) models.Analysis {
	cl := classifier.New()
	a := models.Analysis{Rank: rank}
	for _, r := range records {
		if pos, ok := r.Int(models.FieldPosition); ok && pos == rank && rank != 1 && a.Above == nil {
			above := a.Total
			a.Above = &above
		}
		cl.Count(&a.Total, r)
	}
	return a
}

func RenderAnalysis(w io.Writer, a models.Analysis) {
	if a.Above != nil {
		fmt.Fprintln(w, "Над вами:")
		fmt.Fprintf(w, "\tС согласием: %d\n", a.Above.Yes)
		fmt.Fprintf(w, "\tБез согласия: %d\n", a.Above.No)
		fmt.Fprintf(w, "\tС согласием на другое направление: %d\n", a.Above.OtherTrack)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Всего абитуриентов: %d\n", a.Total.Records)
	fmt.Fprintf(w, "Всего абитуриентов с согласием: %d\n", a.Total.Yes)
	fmt.Fprintf(w, "Всего абитуриентов без согласия: %d\n", a.Total.No)
	fmt.Fprintf(w, "Всего абитуриентов с согласием на другое направление: %d\n", a.Total.OtherTrack)
}

// RenderBudget prints the number of state-funded places of the faculty.
func RenderBudget(w io.Writer, places int) {
	fmt.Fprintf(w, "Бюджетных мест: %d\n", places)
}
