package types

import "time"

// PricePoint is a single close-price observation. Series handed to the
// simulation are ordered ascending by date, one point per calendar week
// (Friday-close convention).
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceBar is a raw daily bar as delivered by a market-data collaborator,
// before weekly resampling.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}
