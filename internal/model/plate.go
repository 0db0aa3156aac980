package model

import "fmt"

// CanonicalPlate is a validated plate identifier in the canonical
// area-code/series/serial segmentation. Value type; constructed only by the
// normalizer and never mutated afterwards.
type CanonicalPlate struct {
	// AreaCode is exactly 2 alphanumeric characters.
	AreaCode string `json:"area_code"`
	// Series is 1 or 2 alphanumeric characters.
	Series string `json:"series"`
	// Serial is 4 or 5 digits.
	Serial string `json:"serial"`
	// Display is the canonical joined representation, e.g. "51-AB 12345".
	Display string `json:"display"`
}

// NewCanonicalPlate joins the three segments into a CanonicalPlate with its
// display form. Callers are expected to have validated segment shapes.
func NewCanonicalPlate(areaCode, series, serial string) CanonicalPlate {
	return CanonicalPlate{
		AreaCode: areaCode,
		Series:   series,
		Serial:   serial,
		Display:  fmt.Sprintf("%s-%s %s", areaCode, series, serial),
	}
}

// Compact returns the plate without separators, i.e. the stripped input the
// normalizer segmented.
func (p CanonicalPlate) Compact() string {
	return p.AreaCode + p.Series + p.Serial
}
