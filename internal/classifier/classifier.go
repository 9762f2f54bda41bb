
package classifier

import (
	"strings"

	"abit-rating/internal/models"
)

const (
	// affirmative is the bare consent word as it appears in rating tables.
	affirmative = "да"
	negative    = "нет"

	// Affirmative is the canonical marker written for conditional consent.
	Affirmative = "Да"
	// Negative is shown when a record carries no agreement value.
	Negative = "Нет"
)

// Status is the agreement bucket a record falls into.
type Status int

const (
	StatusNo Status = iota
	StatusYes
	StatusOtherTrack
)

type Classifier struct{}

func New() *Classifier { return &Classifier{} }

// NormalizeAgreement rewrites consent text that mentions the affirmative word
// without being exactly it, e.g. "да (другое направление)" becomes "Да".
// A bare "да" and any text without the word are returned unchanged.
func NormalizeAgreement(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if strings.Contains(lower, affirmative) && lower != affirmative {
		return Affirmative
	}
	return text
}

// Classify buckets a record by its agreement and basis fields.
// A missing agreement counts as "нет"; a plain "нет" with an admission basis
// present means consent was given for another track.
func (c *Classifier) Classify(r models.Record) Status {
	agreement := strings.ToLower(strings.TrimSpace(r.TextOr(models.FieldAgreement, negative)))
	switch agreement {
	case affirmative:
		return StatusYes
	case negative:
		if basis, ok := r.Text(models.FieldBasis); ok && basis != "" {
			return StatusOtherTrack
		}
		return StatusNo
	default:
		return StatusOtherTrack
	}
}

// Count adds the record's bucket to t.
func (c *Classifier) Count(t *models.Tally, r models.Record) {
	t.Records++
	switch c.Classify(r) {
	case StatusYes:
		t.Yes++
	case StatusOtherTrack:
		t.OtherTrack++
	default:
		t.No++
	}
}
