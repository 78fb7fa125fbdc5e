package service

import (
	"html"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// Reading speed assumptions: prose is read at 200 words per minute, CJK text
// at 500 characters per minute. The first image costs 12 seconds of viewing
// time, each further image 3 seconds.
const (
	wordsPerMinute    = 200
	cjkCharsPerMinute = 500
	firstImageSeconds = 12
	extraImageSeconds = 3
)

var (
	imgTagPattern = regexp.MustCompile(`(?i)<img[^>]*>`)
	stripPolicy   = bluemonday.StrictPolicy()
)

// cjkTables unicode ranges counted per character instead of per word
var cjkTables = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hangul,
	unicode.Hiragana,
	unicode.Katakana,
}

// EstimateReadingTime estimates reading time in minutes from rendered
// content. Markup is stripped before counting; embedded images are counted
// separately. Never returns less than 1.
func EstimateReadingTime(rendered string) int {
	images := len(imgTagPattern.FindAllString(rendered, -1))
	text := html.UnescapeString(stripPolicy.Sanitize(rendered))

	var textSeconds float64
	if cjk := countCJK(text); cjk > 0 {
		textSeconds = float64(cjk) / cjkCharsPerMinute * 60
	} else {
		words := len(strings.Fields(text))
		textSeconds = float64(words) / wordsPerMinute * 60
	}

	var imageSeconds float64
	if images > 0 {
		imageSeconds = firstImageSeconds + extraImageSeconds*float64(images-1)
	}

	minutes := int(math.Ceil((textSeconds + imageSeconds) / 60))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func countCJK(text string) int {
	count := 0
	for _, r := range text {
		if unicode.In(r, cjkTables...) {
			count++
		}
	}
	return count
}
