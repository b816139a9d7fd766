package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record represents a single sale transaction
type Record struct {
	OrderID      string          `json:"order_id"`
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customer_name"`
	Region       string          `json:"region"`
	Product      string          `json:"product"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`      // Unit price
	TotalSale    decimal.Decimal `json:"total_sale"` // Quantity × Price
}

// Dataset is an ordered, already-filtered collection of records.
// Nothing in the Q&A layer mutates it.
type Dataset []Record

// Head returns at most n leading records without copying
func (d Dataset) Head(n int) Dataset {
	if n < 0 {
		n = 0
	}
	if n >= len(d) {
		return d
	}
	return d[:n]
}
