package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFilenamesHrefAndFallback(t *testing.T) {
	body := `<html><body>
<a href="/Reports/Current/DispatchIS_Reports/PUBLIC_DISPATCHIS_202508231905_0000000123456789.zip">link</a>
loose mention PUBLIC_DISPATCHIS_202508231910_0000000123456790.zip in text
</body></html>`
	got := extractFilenames(body, "DISPATCHIS")
	assert.ElementsMatch(t, []string{
		"PUBLIC_DISPATCHIS_202508231905_0000000123456789.zip",
		"PUBLIC_DISPATCHIS_202508231910_0000000123456790.zip",
	}, got)
}

func TestExtractFilenamesFiltersFamily(t *testing.T) {
	body := `<a href="PUBLIC_SCADA_202508231905_01.zip">x</a>`
	got := extractFilenames(body, "DISPATCHIS")
	assert.Empty(t, got)
}

func TestLatestPicksMaxTimestamp(t *testing.T) {
	in := []string{
		"PUBLIC_DISPATCHIS_202508231905_01.zip",
		"PUBLIC_DISPATCHIS_202508232000_01.zip",
		"PUBLIC_DISPATCHIS_202508231910_01.zip",
	}
	assert.Equal(t, "PUBLIC_DISPATCHIS_202508232000_01.zip", Latest(in))
}

func TestLatestEmpty(t *testing.T) {
	assert.Equal(t, "", Latest(nil))
}

func TestIsTruncated(t *testing.T) {
	assert.True(t, isTruncated([]byte("short")))
	assert.True(t, isTruncated([]byte(repeatA(501)+"...")))
	assert.False(t, isTruncated([]byte(repeatA(600)+"</html>")))
}

func repeatA(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
