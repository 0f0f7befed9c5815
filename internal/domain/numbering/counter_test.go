package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixFor(t *testing.T) {
	tests := []struct {
		documentType string
		prefix       string
	}{
		{"delivery_note", "BL"},
		{"purchase_order", "BG"},
		{"return_note", "BR"},
		{"invoice", "FA"},
		{"sales_journal", "JV"},
		{"cash_control", "CC"},
	}

	for _, tt := range tests {
		t.Run(tt.documentType, func(t *testing.T) {
			prefix, err := PrefixFor(tt.documentType)
			require.NoError(t, err)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}

func TestPrefixFor_Unknown(t *testing.T) {
	_, err := PrefixFor("credit_note")
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "BL-2025-0001", FormatNumber("BL", 2025, 1))
	assert.Equal(t, "BG-2025-0042", FormatNumber("BG", 2025, 42))
	assert.Equal(t, "FA-2024-9999", FormatNumber("FA", 2024, 9999))
	// Padding widens past four digits rather than truncating
	assert.Equal(t, "CC-2025-10001", FormatNumber("CC", 2025, 10001))
}

func TestNewCounter(t *testing.T) {
	c, err := NewCounter("delivery_note", 2025)
	require.NoError(t, err)
	assert.Equal(t, "BL", c.Prefix)
	assert.Equal(t, int64(0), c.CurrentNumber)
	assert.Equal(t, 2025, c.Year)
}

func TestNewCounter_UnknownType(t *testing.T) {
	_, err := NewCounter("unknown", 2025)
	assert.Error(t, err)
}
