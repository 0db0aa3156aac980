package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Valid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		area    string
		series  string
		serial  string
		display string
	}{
		{"two letter series", "51ab 12345", "51", "AB", "12345", "51-AB 12345"},
		{"one letter series four digit serial", "30a-1234", "30", "A", "1234", "30-A 1234"},
		{"alphanumeric series", "29a112345", "29", "A1", "12345", "29-A1 12345"},
		{"already canonical", "51-AB 12345", "51", "AB", "12345", "51-AB 12345"},
		{"dotted serial", "29A-123.45", "29", "A", "12345", "29-A 12345"},
		{"digit series", "5112345", "51", "1", "2345", "51-1 2345"},
		{"stray symbols", "[51] ab_12345!", "51", "AB", "12345", "51-AB 12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plate, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.area, plate.AreaCode)
			assert.Equal(t, tt.series, plate.Series)
			assert.Equal(t, tt.serial, plate.Serial)
			assert.Equal(t, tt.display, plate.Display)
		})
	}
}

func TestNormalize_TooShort(t *testing.T) {
	for _, input := range []string{"", "ab", "123", "a1b2", "- . -"} {
		_, err := Normalize(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, ErrUnreadablePlate))
		assert.Contains(t, err.Error(), "too short")
	}
}

func TestNormalize_Unparseable(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no digits", "ABCDEF"},
		{"trailing letters", "51A1234X"},
		{"serial too short", "51A123"},
		{"too long for grammar", "1234567890"},
		{"only digits no split", "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnreadablePlate))
			assert.Contains(t, err.Error(), "unparseable")
		})
	}
}

// Normalization is lossless: re-joining the three segments without
// separators reproduces exactly the stripped input.
func TestNormalize_Lossless(t *testing.T) {
	inputs := []string{
		"51ab 12345",
		"30a-1234",
		"29a112345",
		"77-C 98765",
		"12cd3456",
	}

	for _, input := range inputs {
		plate, err := Normalize(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, stripPlate(input), plate.Compact(), "input %q", input)
	}
}

func TestStripPlate(t *testing.T) {
	assert.Equal(t, "51AB12345", stripPlate("51-ab 12.345"))
	assert.Equal(t, "", stripPlate("  -/.  "))
	assert.Equal(t, "ABC123", stripPlate("abc123"))
}
