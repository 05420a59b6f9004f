package types

import "time"

type QuoteHistory struct {
	Data struct {
		Quotes []struct {
			Timestamp time.Time `json:"timestamp"`
			Quote     struct {
				USD struct {
					Price float64 `json:"price"`
				} `json:"USD"`
			} `json:"quote"`
		} `json:"quotes"`
	} `json:"data"`
}
