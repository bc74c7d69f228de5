package objectid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaia-qao/compliance-backend/internal/domain/objectid"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single embedded id",
			text: "Check AS-M-PAX-BW-Q1H-00001 now",
			want: []string{"AS-M-PAX-BW-Q1H-00001"},
		},
		{
			name: "multiple ids first-seen order",
			text: "Compare SP-U-SAT-CM-X2A-00042 with AS-M-PAX-BW-Q1H-00001 please",
			want: []string{"SP-U-SAT-CM-X2A-00042", "AS-M-PAX-BW-Q1H-00001"},
		},
		{
			name: "duplicates collapse",
			text: "AS-M-PAX-BW-Q1H-00001 and again AS-M-PAX-BW-Q1H-00001",
			want: []string{"AS-M-PAX-BW-Q1H-00001"},
		},
		{
			name: "invalid autonomy code ignored",
			text: "bogus AS-X-PAX-BW-Q1H-00001 id",
			want: nil,
		},
		{
			name: "no match",
			text: "what is the wingspan of a 747",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, objectid.Extract(tt.text))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"AS-M-PAX-BW-Q1H-00001", true},
		{"SP-U-SAT-CM-X2A-99999", true},
		{"AS-M-PAX-BW-Q1H-0001", false},   // serial too short
		{"AS-Z-PAX-BW-Q1H-00001", false},  // bad autonomy code
		{"as-m-pax-bw-q1h-00001", false},  // lowercase
		{"xAS-M-PAX-BW-Q1H-00001", false}, // leading junk
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, objectid.Validate(tt.id))
		})
	}
}

func TestParse(t *testing.T) {
	parsed, ok := objectid.Parse("AS-M-PAX-BW-Q1H-00001")
	require.True(t, ok)

	assert.Equal(t, "AS", parsed.Domain)
	assert.Equal(t, "M", parsed.Autonomy)
	assert.Equal(t, "PAX", parsed.FunctionalClass)
	assert.Equal(t, "BW", parsed.SubType)
	assert.Equal(t, "Q1H", parsed.Model)
	assert.Equal(t, "00001", parsed.SerialNumber)

	_, ok = objectid.Parse("embedded AS-M-PAX-BW-Q1H-00001")
	assert.False(t, ok, "parse must not accept embedded matches")
}

func TestComponents(t *testing.T) {
	components, ok := objectid.Components("AS-M-PAX-BW-Q1H-00001")
	require.True(t, ok)

	assert.Equal(t, "Air System", components["domainName"])
	assert.Equal(t, "Manned/Semi-Autonomous", components["autonomyName"])
	assert.Equal(t, "00001", components["serialNumber"])

	components, ok = objectid.Components("ZZ-U-SAT-CM-X2A-00042")
	require.True(t, ok)
	assert.Equal(t, "Unknown Domain", components["domainName"])

	_, ok = objectid.Components("not-an-id")
	assert.False(t, ok)
}
