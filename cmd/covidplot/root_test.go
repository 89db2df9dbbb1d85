package main

import (
	"testing"

	"github.com/jgoulah/covidplot/internal/config"
	"github.com/jgoulah/covidplot/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRequestsFromFlags(t *testing.T) {
	cfg := &config.Config{Series: []config.SeriesEntry{{Country: "italy", Population: 1}}}

	reqs, err := resolveRequests(cfg, []string{"united-kingdom:66650000", "canada:14570000:Ontario"})
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "united-kingdom", reqs[0].Country())
	assert.Equal(t, "Ontario", reqs[1].Province())
}

func TestResolveRequestsFromConfig(t *testing.T) {
	cfg := &config.Config{Series: []config.SeriesEntry{
		{Country: "italy", Population: 60000000},
		{Country: "canada", Population: 8500000, Province: "Quebec"},
	}}

	reqs, err := resolveRequests(cfg, nil)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "italy", reqs[0].Country())
	assert.Equal(t, int64(8500000), reqs[1].Population())
}

func TestResolveRequestsErrors(t *testing.T) {
	_, err := resolveRequests(&config.Config{}, nil)
	assert.Error(t, err)

	_, err = resolveRequests(&config.Config{}, []string{"canada"})
	assert.ErrorIs(t, err, series.ErrInvalidSeriesSpec)

	_, err = resolveRequests(&config.Config{Series: []config.SeriesEntry{{Country: "canada"}}}, nil)
	assert.Error(t, err)
}
