package gdrive

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSanitizeDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "plain word untouched", description: "Gas", want: "Gas"},
		{name: "digits kept", description: "Taxi42", want: "Taxi42"},
		{name: "each special char replaced individually", description: "Office&Supplies!", want: "Office_Supplies_"},
		{name: "spaces replaced one for one", description: "Office & Supplies!", want: "Office___Supplies_"},
		{name: "empty stays empty", description: "", want: ""},
		{name: "non-ascii runes replaced", description: "Café", want: "Caf_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SanitizeDescription(tt.description))
		})
	}
}

func TestBuildReceiptName(t *testing.T) {
	ts := time.Date(2025, time.January, 26, 15, 30, 45, 123000000, time.UTC)
	require.Equal(t, "Gas_2025-01-26T15-30-45-123Z.jpg", BuildReceiptName("Gas", ts))

	// non-UTC timestamps normalize to UTC before formatting
	paris := time.FixedZone("CET", 60*60)
	require.Equal(t, "Gas_2025-01-26T15-30-45-123Z.jpg",
		BuildReceiptName("Gas", time.Date(2025, time.January, 26, 16, 30, 45, 123000000, paris)))
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, time.December, 1, 9, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-12-01T09-00-00-000Z", FormatTimestamp(ts))
}

func TestDeriveDescription(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{name: "first segment before underscore", fileName: "Coffee_2024-12-01T09-00-00-000Z.jpg", want: "Coffee"},
		{name: "hyphens become spaces", fileName: "My-Cool-Lunch_2024-12-01T09-00-00-000Z.jpg", want: "My Cool Lunch"},
		{name: "empty first segment defaults", fileName: "_2024-12-01T09-00-00-000Z.jpg", want: "Receipt"},
		{name: "lone underscore defaults", fileName: "_", want: "Receipt"},
		{name: "empty name defaults", fileName: "", want: "Receipt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeriveDescription(tt.fileName))
		})
	}
}

func TestBuildUploadBody(t *testing.T) {
	content := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	body := buildUploadBody("Gas_2025-01-26T15-30-45-123Z.jpg", "folder-42", content)

	mr := multipart.NewReader(bytes.NewReader(body), uploadBoundary)

	meta, err := mr.NextPart()
	require.NoError(t, err)
	require.Equal(t, "application/json; charset=UTF-8", meta.Header.Get("Content-Type"))
	metaBytes, err := io.ReadAll(meta)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Gas_2025-01-26T15-30-45-123Z.jpg","parents":["folder-42"]}`, string(metaBytes))

	media, err := mr.NextPart()
	require.NoError(t, err)
	require.Equal(t, imageMimeType, media.Header.Get("Content-Type"))
	require.Equal(t, "base64", media.Header.Get("Content-Transfer-Encoding"))
	encoded, err := io.ReadAll(media)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(string(encoded))
	require.NoError(t, err)
	require.Equal(t, content, decoded)

	_, err = mr.NextPart()
	require.ErrorIs(t, err, io.EOF)
}
