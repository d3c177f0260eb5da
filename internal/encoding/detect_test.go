package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/encoding"
)

// "Përshkrim;Shuma\n" in Windows-1252: ë = 0xEB.
var cp1252Header = []byte{
	'P', 0xEB, 'r', 's', 'h', 'k', 'r', 'i', 'm', ';',
	'S', 'h', 'u', 'm', 'a', '\n',
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Përshkrim;Shuma\nQira e zyrës;-450,00\nFaturë klienti;1.200,50\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)
	assert.Equal(t, input, readAll(t, r))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	r, err := encoding.NewUTF8Reader(bytes.NewReader(cp1252Header))
	require.NoError(t, err)
	assert.Equal(t, "Përshkrim;Shuma\n", readAll(t, r))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Përshkrim;Shuma\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Përshkrim;Shuma\n", readAll(t, r))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// BOM followed by "Ok" in UTF-16 LE.
	input := []byte{0xFF, 0xFE, 'O', 0x00, 'k', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Ok", readAll(t, r))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, err := encoding.NewUTF8Reader(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, readAll(t, r))
}

func TestNewReaderWithHint(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		input       []byte
		want        string
	}{
		{
			name:        "DeclaredCharset",
			contentType: "text/html; charset=windows-1252",
			input:       cp1252Header,
			want:        "Përshkrim;Shuma\n",
		},
		{
			name:        "LatinLabelAlias",
			contentType: "text/html; charset=ISO-8859-1",
			input:       cp1252Header,
			want:        "Përshkrim;Shuma\n",
		},
		{
			name:        "DeclaredUTF8",
			contentType: "text/html; charset=utf-8",
			input:       []byte("Kursi zyrtar i këmbimit"),
			want:        "Kursi zyrtar i këmbimit",
		},
		{
			name:        "UnknownCharsetFallsBackToDetection",
			contentType: "text/html; charset=klingon",
			input:       cp1252Header,
			want:        "Përshkrim;Shuma\n",
		},
		{
			name:        "MalformedContentType",
			contentType: "text/html; charset",
			input:       []byte("Euro"),
			want:        "Euro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := encoding.NewReaderWithHint(bytes.NewReader(tt.input), tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readAll(t, r))
		})
	}
}
