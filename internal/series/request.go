package series

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSeriesSpec is returned for a malformed country:population[:province] spec
// or a request with no country or a non-positive population.
var ErrInvalidSeriesSpec = errors.New("invalid series spec")

// Request identifies one series to fetch. It is immutable once built.
type Request struct {
	country    string
	province   string
	population int64
}

// NewRequest builds a request. An empty province selects the national total.
func NewRequest(country, province string, population int64) (Request, error) {
	if country == "" {
		return Request{}, fmt.Errorf("%w: country is required", ErrInvalidSeriesSpec)
	}
	if population <= 0 {
		return Request{}, fmt.Errorf("%w: population must be positive, got %d", ErrInvalidSeriesSpec, population)
	}
	return Request{country: country, province: province, population: population}, nil
}

// ParseSpec parses "country:population[:province]", e.g. "canada:37590000:Ontario".
// The province may itself contain colons.
func ParseSpec(spec string) (Request, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return Request{}, fmt.Errorf("%w: %q, expected country:population[:province]", ErrInvalidSeriesSpec, spec)
	}

	pop, err := strconv.ParseInt(strings.ReplaceAll(parts[1], "_", ""), 10, 64)
	if err != nil {
		return Request{}, fmt.Errorf("%w: population %q: %v", ErrInvalidSeriesSpec, parts[1], err)
	}

	var province string
	if len(parts) == 3 {
		province = parts[2]
	}
	return NewRequest(strings.TrimSpace(parts[0]), province, pop)
}

// Country returns the API country slug
func (r Request) Country() string { return r.country }

// Province returns the province filter, "" for the national total
func (r Request) Province() string { return r.province }

// Population returns the population used for the per-capita rate
func (r Request) Population() int64 { return r.population }

// String returns country or country/province
func (r Request) String() string {
	if r.province == "" {
		return r.country
	}
	return r.country + "/" + r.province
}
