
package parser

import (
	"strconv"
	"strings"

	"abit-rating/internal/classifier"
	"abit-rating/internal/models"
)

// Normalizer converts raw cell text into the value stored for a field.
type Normalizer interface {
	Normalize(raw string) (any, error)
}

// NormalizerFunc adapts a plain function to Normalizer.
type NormalizerFunc func(raw string) (any, error)

func (f NormalizerFunc) Normalize(raw string) (any, error) { return f(raw) }

var (
	// IntNormalizer parses a whitespace-trimmed decimal integer.
	IntNormalizer = NormalizerFunc(func(raw string) (any, error) {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		return n, nil
	})

	// AgreementNormalizer applies the conditional-consent rewrite to agreement text.
	AgreementNormalizer = NormalizerFunc(func(raw string) (any, error) {
		return classifier.NormalizeAgreement(raw), nil
	})

	// TextNormalizer keeps the decoded text verbatim.
	TextNormalizer = NormalizerFunc(func(raw string) (any, error) {
		return raw, nil
	})
)

// DefaultNormalizers returns the per-field normalizers used unless overridden.
// Fields without an entry fall back to TextNormalizer.
func DefaultNormalizers() map[string]Normalizer {
	return map[string]Normalizer{
		models.FieldPosition:   IntNormalizer,
		models.FieldExamResult: IntNormalizer,
		models.FieldAgreement:  AgreementNormalizer,
	}
}
