package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int64
	CustomerID  int64
	Customer    *Customer
	Products    []Product
	OrderDate   time.Time
	Status      string
	TotalAmount decimal.Decimal
}

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderTotal sums the current prices of the given products. The result is
// fixed on the order at creation time and never recomputed afterwards.
func OrderTotal(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}
