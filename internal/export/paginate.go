package export

import (
	"regexp"
	"strings"
)

// Paginate returns the vertical offset, in page units, at which the full
// image is drawn on each page. The first page shows the top of the image;
// every following page shifts it up by what has already been shown and lets
// the page boundary clip the rest.
func Paginate(imgHeight, pageHeight float64) []float64 {
	if imgHeight <= 0 || pageHeight <= 0 {
		return nil
	}
	offsets := []float64{0}
	heightLeft := imgHeight - pageHeight
	for heightLeft > 0 {
		offsets = append(offsets, heightLeft-imgHeight)
		heightLeft -= pageHeight
	}
	return offsets
}

var (
	spaceRun = regexp.MustCompile(`\s+`)
	pathSep  = strings.NewReplacer("/", "-", `\`, "-")
)

const fileSuffix = "_notes.pdf"

// FileName turns a display title such as "Science - Light" into
// "science_-_light_notes.pdf".
func FileName(title string) string {
	s := spaceRun.ReplaceAllString(title, "_")
	s = pathSep.Replace(s)
	return strings.ToLower(s) + fileSuffix
}
