package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateReadingTime_PlainText(t *testing.T) {
	// 400 words at 200 wpm = 120s = 2 minutes
	text := strings.Repeat("word ", 400)
	assert.Equal(t, 2, EstimateReadingTime(text))
}

func TestEstimateReadingTime_SingleImageOnly(t *testing.T) {
	// 12s of image time rounds up to 1 minute
	assert.Equal(t, 1, EstimateReadingTime(`<img src="cover.png">`))
}

func TestEstimateReadingTime_Empty(t *testing.T) {
	assert.Equal(t, 1, EstimateReadingTime(""))
}

func TestEstimateReadingTime_TextWithImages(t *testing.T) {
	// 400 words (120s) + 3 images (12 + 3 + 3 = 18s) = 138s -> 3 minutes
	var b strings.Builder
	b.WriteString(strings.Repeat("word ", 400))
	b.WriteString(`<img src="a.png"><img src="b.png"><img src="c.png">`)
	assert.Equal(t, 3, EstimateReadingTime(b.String()))
}

func TestEstimateReadingTime_CJKCountsCharacters(t *testing.T) {
	// 1000 CJK characters at 500 cpm = 120s = 2 minutes
	text := strings.Repeat("漢", 1000)
	assert.Equal(t, 2, EstimateReadingTime(text))
}

func TestEstimateReadingTime_StripsMarkup(t *testing.T) {
	// Tags don't count as words: 4 words -> well under a minute
	html := "<p><strong>only</strong> four <em>words</em> here</p>"
	assert.Equal(t, 1, EstimateReadingTime(html))
}

func TestEstimateReadingTime_Hangul(t *testing.T) {
	// 250 hangul characters = 30s -> rounds up to 1 minute
	text := strings.Repeat("한", 250)
	assert.Equal(t, 1, EstimateReadingTime(text))
}
