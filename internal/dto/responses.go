package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"crmd/internal/domain"
)

type CustomerDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProductDTO struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}

type OrderDTO struct {
	ID          int64           `json:"id"`
	Customer    *CustomerDTO    `json:"customer"`
	OrderDate   time.Time       `json:"orderDate"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ProductIDs  []int64         `json:"productIds,omitempty"`
}

func NewCustomerDTO(c domain.Customer) CustomerDTO {
	return CustomerDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

func NewProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:    p.ID,
		Name:  p.Name,
		Stock: p.Stock,
		Price: p.Price,
	}
}

func NewOrderDTO(o domain.Order) OrderDTO {
	out := OrderDTO{
		ID:          o.ID,
		OrderDate:   o.OrderDate,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
	}
	if o.Customer != nil {
		c := NewCustomerDTO(*o.Customer)
		out.Customer = &c
	}
	for _, p := range o.Products {
		out.ProductIDs = append(out.ProductIDs, p.ID)
	}
	return out
}

// Connection envelopes: one page of an ordered, filtered collection.

type CustomerConnection struct {
	Items       []CustomerDTO `json:"items"`
	TotalCount  int64         `json:"totalCount"`
	Page        int           `json:"page"`
	PageSize    int           `json:"pageSize"`
	HasNextPage bool          `json:"hasNextPage"`
}

type ProductConnection struct {
	Items       []ProductDTO `json:"items"`
	TotalCount  int64        `json:"totalCount"`
	Page        int          `json:"page"`
	PageSize    int          `json:"pageSize"`
	HasNextPage bool         `json:"hasNextPage"`
}

type OrderConnection struct {
	Items       []OrderDTO `json:"items"`
	TotalCount  int64      `json:"totalCount"`
	Page        int        `json:"page"`
	PageSize    int        `json:"pageSize"`
	HasNextPage bool       `json:"hasNextPage"`
}

// ReminderOrder is the reduced projection served by ordersRecent and
// pendingOrdersLastWeek: just enough for the reminder job.
type ReminderOrder struct {
	ID        int64            `json:"id"`
	OrderDate time.Time        `json:"orderDate"`
	Status    string           `json:"status"`
	Customer  ReminderCustomer `json:"customer"`
}

type ReminderCustomer struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
