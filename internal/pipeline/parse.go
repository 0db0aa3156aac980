package pipeline

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ridemate/plateid/internal/model"
)

// ErrMalformedResponse marks a service answer with no usable structured
// payload. Distinct from a low-confidence detection: the remediation is a
// resubmit, not a better photo.
var ErrMalformedResponse = eris.New("pipeline: malformed recognition response")

// ParseDetection extracts a DetectionRecord from the service's raw answer.
// The service is instructed to reply with a single JSON object, but the
// answer may be wrapped in prose or code fences; the outermost object span
// is located by brace-depth counting so nested braces inside field values
// do not break extraction.
func ParseDetection(raw string) (model.DetectionRecord, error) {
	span, ok := extractObject(raw)
	if !ok {
		return model.DetectionRecord{}, eris.Wrap(ErrMalformedResponse, "no JSON object in response")
	}

	var payload struct {
		IsPlate     *bool   `json:"isPlate"`
		PlateNumber *string `json:"plateNumber"`
		Confidence  *string `json:"confidence"`
		Reason      string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return model.DetectionRecord{}, eris.Wrap(ErrMalformedResponse, err.Error())
	}
	if payload.IsPlate == nil {
		return model.DetectionRecord{}, eris.Wrap(ErrMalformedResponse, "missing isPlate field")
	}
	if payload.Confidence == nil {
		return model.DetectionRecord{}, eris.Wrap(ErrMalformedResponse, "missing confidence field")
	}

	confidence, err := model.ParseConfidence(*payload.Confidence)
	if err != nil {
		return model.DetectionRecord{}, eris.Wrap(ErrMalformedResponse, err.Error())
	}

	rec := model.DetectionRecord{
		IsPlate:    *payload.IsPlate,
		Confidence: confidence,
		Reason:     payload.Reason,
	}
	if payload.PlateNumber != nil {
		rec.PlateText = strings.TrimSpace(*payload.PlateNumber)
		rec.HasPlateText = rec.PlateText != ""
	}
	return rec, nil
}

// extractObject returns the first top-level {...} span in text. Depth is
// tracked across nested braces, and braces inside JSON string literals are
// ignored, so a reason like "saw {partial} text" cannot truncate the span.
func extractObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
