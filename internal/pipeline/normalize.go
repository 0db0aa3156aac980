package pipeline

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ridemate/plateid/internal/model"
)

// ErrUnreadablePlate marks accepted text that cannot be fit to the canonical
// plate grammar. Terminal for the image: the text was trusted but is not a
// plate identifier.
var ErrUnreadablePlate = eris.New("pipeline: plate text does not fit grammar")

const (
	minStrippedLen = 5
	areaCodeLen    = 2
)

// Normalize canonicalizes raw plate text into the area-code/series/serial
// grammar. Pure function: no I/O, deterministic.
//
// The stripped string is segmented greedily from the right: the trailing
// 5-digit run is tried as the serial first, then 4 digits, and whatever
// precedes it splits into the 2-character area code and the 1-2 character
// series.
func Normalize(text string) (model.CanonicalPlate, error) {
	stripped := stripPlate(text)
	if len(stripped) < minStrippedLen {
		return model.CanonicalPlate{}, eris.Wrapf(ErrUnreadablePlate, "too short: %d alphanumeric characters", len(stripped))
	}

	for _, serialLen := range []int{5, 4} {
		prefixLen := len(stripped) - serialLen
		seriesLen := prefixLen - areaCodeLen
		if seriesLen < 1 || seriesLen > 2 {
			continue
		}
		serial := stripped[prefixLen:]
		if !allDigits(serial) {
			continue
		}
		area := stripped[:areaCodeLen]
		series := stripped[areaCodeLen:prefixLen]
		return model.NewCanonicalPlate(area, series, serial), nil
	}

	return model.CanonicalPlate{}, eris.Wrapf(ErrUnreadablePlate, "unparseable: %q", stripped)
}

// stripPlate removes everything that is not a letter or digit and uppercases
// the remainder. The recognizer may emit punctuation, spaces, and stray
// symbols around the plate text.
func stripPlate(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToUpper(text) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
