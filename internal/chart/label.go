package chart

import (
	"strings"

	"github.com/jgoulah/covidplot/internal/series"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Label is the legend text of a series: "United Kingdom", "Canada (Ontario)"
func Label(req series.Request) string {
	label := titleCaser.String(strings.ReplaceAll(req.Country(), "-", " "))
	if req.Province() != "" {
		label += " (" + titleCaser.String(req.Province()) + ")"
	}
	return label
}
