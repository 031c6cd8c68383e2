package dto

import "github.com/shopspring/decimal"

// Mutation inputs.

type CreateCustomerRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

type BulkCreateCustomersRequest struct {
	Customers []CreateCustomerRequest `json:"customers"`
}

type CreateProductRequest struct {
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	CustomerID int64   `json:"customerId"`
	ProductIDs []int64 `json:"productIds"`
}

type UpdateLowStockRequest struct {
	IncrementBy *int `json:"incrementBy"`
	Threshold   *int `json:"threshold"`
}

// Mutation results. Every mutation answers with success/message/errors plus
// the entity (or list) it produced; validation failures set success=false and
// leave the entity nil.

type CustomerResult struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Errors   []string     `json:"errors"`
	Customer *CustomerDTO `json:"customer"`
}

type BulkCustomersResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Errors  []string      `json:"errors"`
	Created []CustomerDTO `json:"created"`
}

type ProductResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  []string    `json:"errors"`
	Product *ProductDTO `json:"product"`
}

type OrderResult struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Errors  []string  `json:"errors"`
	Order   *OrderDTO `json:"order"`
}

type LowStockResult struct {
	Success         bool         `json:"success"`
	Message         string       `json:"message"`
	Errors          []string     `json:"errors"`
	UpdatedProducts []ProductDTO `json:"updatedProducts"`
}
