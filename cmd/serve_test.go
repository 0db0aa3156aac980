package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridemate/plateid/internal/model"
)

// stubProcessor returns a fixed outcome and records the reference it saw.
type stubProcessor struct {
	outcome model.Outcome
	lastRef model.ImageReference
}

func (s *stubProcessor) Process(ctx context.Context, ref model.ImageReference) model.Outcome {
	s.lastRef = ref
	return s.outcome
}

func postRecognition(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/recognitions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServe_Health(t *testing.T) {
	handler := newRouter(&stubProcessor{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServe_RecognizeBase64(t *testing.T) {
	stub := &stubProcessor{
		outcome: model.Accepted(model.NewCanonicalPlate("29", "A1", "12345"), model.ConfidenceHigh),
	}
	handler := newRouter(stub)

	imageBytes := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	body, err := json.Marshal(map[string]string{
		"image_base64": base64.StdEncoding.EncodeToString(imageBytes),
	})
	require.NoError(t, err)

	rec := postRecognition(t, handler, string(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, imageBytes, stub.lastRef.Bytes)

	var outcome model.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, model.OutcomeAccepted, outcome.Kind)
	assert.Equal(t, "29-A1 12345", outcome.Plate.Display)
}

func TestServe_RecognizeURL(t *testing.T) {
	stub := &stubProcessor{outcome: model.RejectedNotAPlate("storefront")}
	handler := newRouter(stub)

	rec := postRecognition(t, handler, `{"image_url":"https://cdn.example.com/plate.jpg"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "https://cdn.example.com/plate.jpg", stub.lastRef.Source)
}

func TestServe_BadRequests(t *testing.T) {
	handler := newRouter(&stubProcessor{})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"no image", `{}`},
		{"bad base64", `{"image_base64":"not-base64!!"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postRecognition(t, handler, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestStatusForOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome model.Outcome
		want    int
	}{
		{"accepted", model.Accepted(model.NewCanonicalPlate("51", "AB", "12345"), model.ConfidenceHigh), http.StatusOK},
		{"unreadable image", model.UnreadableImage(errors.New("empty")), http.StatusBadRequest},
		{"not a plate", model.RejectedNotAPlate("sign"), http.StatusUnprocessableEntity},
		{"low confidence", model.RejectedLowConfidence("blurry"), http.StatusUnprocessableEntity},
		{"unreadable plate", model.RejectedUnreadable("unparseable"), http.StatusUnprocessableEntity},
		{"malformed response", model.MalformedResponse("prose"), http.StatusUnprocessableEntity},
		{"quota", model.TransportFailure(model.TransportQuota, errors.New("429")), http.StatusTooManyRequests},
		{"unauthorized", model.TransportFailure(model.TransportUnauthorized, errors.New("401")), http.StatusInternalServerError},
		{"network", model.TransportFailure(model.TransportNetwork, errors.New("timeout")), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForOutcome(tt.outcome))
		})
	}
}
