package models

import "time"

// CaseRow is one row of the dayone/confirmed API response
type CaseRow struct {
	Country     string `json:"Country"`
	CountryCode string `json:"CountryCode"`
	Province    string `json:"Province"` // "" for the national total
	City        string `json:"City"`
	CityCode    string `json:"CityCode"`
	Lat         string `json:"Lat"`
	Lon         string `json:"Lon"`
	Cases       int64  `json:"Cases"` // cumulative confirmed
	Status      string `json:"Status"`
	Date        string `json:"Date"` // raw, e.g. 2020-03-01T00:00:00Z
}

// DailyRecord is one derived row of a country/province series
type DailyRecord struct {
	Date       time.Time `json:"date"`
	Country    string    `json:"country"`
	Province   string    `json:"province,omitempty"`
	Cases      int64     `json:"cases"`       // cumulative
	DailyCases int64     `json:"daily_cases"` // first difference, 0 on the first row

	// nil until 7 rows are available
	RollingAverage *float64 `json:"rolling_average,omitempty"`
	PerCapita      *float64 `json:"per_capita,omitempty"` // rolling average per 100k people
}

// Country is one entry of the countries endpoint
type Country struct {
	Country string `json:"Country"`
	Slug    string `json:"Slug"`
	ISO2    string `json:"ISO2"`
}
