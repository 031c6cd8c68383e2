package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Filter criteria are optional and combined with logical AND; a nil field
// imposes no constraint.

type CustomerFilter struct {
	Name         *string    `json:"name"`
	Email        *string    `json:"email"`
	CreatedAtGte *time.Time `json:"createdAtGte"`
	CreatedAtLte *time.Time `json:"createdAtLte"`
	PhonePattern *string    `json:"phonePattern"`
}

type ProductFilter struct {
	Name     *string          `json:"name"`
	PriceGte *decimal.Decimal `json:"priceGte"`
	PriceLte *decimal.Decimal `json:"priceLte"`
	StockGte *int             `json:"stockGte"`
	StockLte *int             `json:"stockLte"`
}

type OrderFilter struct {
	TotalAmountGte *decimal.Decimal `json:"totalAmountGte"`
	TotalAmountLte *decimal.Decimal `json:"totalAmountLte"`
	OrderDateGte   *time.Time       `json:"orderDateGte"`
	OrderDateLte   *time.Time       `json:"orderDateLte"`
	CustomerName   *string          `json:"customerName"`
	ProductName    *string          `json:"productName"`
	ProductID      *int64           `json:"productId"`
}

// Page controls offset pagination. OrderBy entries may carry a "-" prefix
// for descending order.
type Page struct {
	OrderBy  []string `json:"orderBy"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps the requested page and pageSize to sane bounds.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

type CustomerListRequest struct {
	Filter CustomerFilter `json:"filter"`
	Page
}

type ProductListRequest struct {
	Filter ProductFilter `json:"filter"`
	Page
}

type OrderListRequest struct {
	Filter OrderFilter `json:"filter"`
	Page
}
