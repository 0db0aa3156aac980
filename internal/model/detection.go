package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Confidence is the recognition service's self-reported certainty level.
// The service answers with one of exactly three values; anything else is a
// malformed response, not a low-confidence detection.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// AllConfidences returns the closed confidence enumeration.
func AllConfidences() []Confidence {
	return []Confidence{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}
}

// ParseConfidence maps a raw confidence string onto the closed enum,
// case-insensitively. Unknown values are an error.
func ParseConfidence(s string) (Confidence, error) {
	c := Confidence(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllConfidences() {
		if c == known {
			return c, nil
		}
	}
	return "", eris.Errorf("model: unknown confidence level %q", s)
}

// DetectionRecord is the structured answer extracted from the recognition
// service's free-form reply.
type DetectionRecord struct {
	// IsPlate reports whether the service saw a vehicle plate at all.
	IsPlate bool
	// PlateText is the raw plate text as read by the service. May be empty
	// even when IsPlate is true: a legitimate detection can be illegible.
	PlateText string
	// HasPlateText distinguishes an absent plateNumber field from an empty one.
	HasPlateText bool
	// Confidence is always one of the three enumerated levels.
	Confidence Confidence
	// Reason is the service's human-readable rationale. Advisory only.
	Reason string
}
