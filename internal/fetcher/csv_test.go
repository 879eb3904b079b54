package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	payload := "country,hdi\nNorway,0.961\nIreland,0.950\n"

	header, rows, err := ReadCSV(strings.NewReader(payload), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "hdi"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Norway", "0.961"}, rows[0])
}

func TestReadCSV_SkipRowsAndDelimiter(t *testing.T) {
	payload := "generated 2024\nsource: hdr\ncountry;hdi\nNorway; 0.961\n"

	header, rows, err := ReadCSV(strings.NewReader(payload), CSVOptions{
		Delimiter: ';',
		SkipRows:  2,
		TrimSpace: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "hdi"}, header)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Norway", "0.961"}, rows[0])
}

func TestReadCSV_Charset(t *testing.T) {
	// "Côte d'Ivoire" with the ô encoded as windows-1252 0xF4.
	payload := "country,value\nC\xf4te d'Ivoire,1.0\n"

	header, rows, err := ReadCSV(strings.NewReader(payload), CSVOptions{Charset: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "value"}, header)
	require.Len(t, rows, 1)
	assert.Equal(t, "Côte d'Ivoire", rows[0][0])
}

func TestReadCSV_UnknownCharset(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader("a,b\n"), CSVOptions{Charset: "no-such-charset"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported charset")
}

func TestReadCSV_RaggedRows(t *testing.T) {
	payload := "a,b,c\n1,2\n1,2,3,4\n"

	header, rows, err := ReadCSV(strings.NewReader(payload), CSVOptions{})
	require.NoError(t, err)
	assert.Len(t, header, 3)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 4)
}
