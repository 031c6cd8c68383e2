// Package filter maps the per-entity filter DTOs onto SQL predicates. Every
// criterion is optional; present criteria are combined with AND. Ordering is
// validated against a per-entity whitelist, unknown fields are ignored, and
// id is always appended as the stable tie-break.
package filter

import (
	"regexp"
	"strings"

	"crmd/internal/dto"
	apperrors "crmd/internal/errors"
)

type Predicate struct {
	Where   string
	Args    []interface{}
	OrderBy string
}

type builder struct {
	conds []string
	args  []interface{}
}

func (b *builder) contains(col, needle string) {
	b.conds = append(b.conds, "LOWER("+col+") LIKE ?")
	b.args = append(b.args, "%"+escapeLike(strings.ToLower(needle))+"%")
}

func (b *builder) cmp(col, op string, arg interface{}) {
	b.conds = append(b.conds, col+" "+op+" ?")
	b.args = append(b.args, arg)
}

func (b *builder) where() string {
	return strings.Join(b.conds, " AND ")
}

// escapeLike neutralizes the LIKE wildcards so a literal % or _ in a
// criterion matches itself.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

var (
	customerOrderFields = map[string]string{
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
	}
	productOrderFields = map[string]string{
		"name":  "name",
		"price": "price",
		"stock": "stock",
	}
	orderOrderFields = map[string]string{
		"order_date":   "o.order_date",
		"total_amount": "o.total_amount",
		"status":       "o.status",
	}
)

func orderClause(fields []string, whitelist map[string]string, fallback, tieBreak string) string {
	var parts []string
	for _, f := range fields {
		name := strings.TrimPrefix(f, "-")
		col, ok := whitelist[name]
		if !ok {
			continue
		}
		dir := " ASC"
		if strings.HasPrefix(f, "-") {
			dir = " DESC"
		}
		parts = append(parts, col+dir)
	}
	if len(parts) == 0 {
		parts = append(parts, fallback)
	}
	parts = append(parts, tieBreak)
	return strings.Join(parts, ", ")
}

// Customers builds the predicate for the customers table. Default ordering
// is newest-first.
func Customers(f dto.CustomerFilter, orderBy []string) (Predicate, error) {
	var b builder
	if f.Name != nil {
		b.contains("name", *f.Name)
	}
	if f.Email != nil {
		b.contains("email", *f.Email)
	}
	if f.CreatedAtGte != nil {
		b.cmp("created_at", ">=", *f.CreatedAtGte)
	}
	if f.CreatedAtLte != nil {
		b.cmp("created_at", "<=", *f.CreatedAtLte)
	}
	if f.PhonePattern != nil {
		if _, err := regexp.Compile(*f.PhonePattern); err != nil {
			return Predicate{}, apperrors.NewValidationError("invalid phone pattern", apperrors.ValidationDetail{
				Field:   "phonePattern",
				Message: "phonePattern must be a valid regular expression",
			})
		}
		b.conds = append(b.conds, "phone REGEXP ?")
		b.args = append(b.args, *f.PhonePattern)
	}

	return Predicate{
		Where:   b.where(),
		Args:    b.args,
		OrderBy: orderClause(orderBy, customerOrderFields, "created_at DESC", "id ASC"),
	}, nil
}

// Products builds the predicate for the products table. Default ordering is
// alphabetical by name.
func Products(f dto.ProductFilter, orderBy []string) Predicate {
	var b builder
	if f.Name != nil {
		b.contains("name", *f.Name)
	}
	if f.PriceGte != nil {
		b.cmp("price", ">=", *f.PriceGte)
	}
	if f.PriceLte != nil {
		b.cmp("price", "<=", *f.PriceLte)
	}
	if f.StockGte != nil {
		b.cmp("stock", ">=", *f.StockGte)
	}
	if f.StockLte != nil {
		b.cmp("stock", "<=", *f.StockLte)
	}

	return Predicate{
		Where:   b.where(),
		Args:    b.args,
		OrderBy: orderClause(orderBy, productOrderFields, "name ASC", "id ASC"),
	}
}

// Orders builds the predicate for the orders table. The query is expected to
// alias orders as o and join customers as c. Product criteria go through
// EXISTS subqueries so an order matching several associated products still
// appears once.
func Orders(f dto.OrderFilter, orderBy []string) Predicate {
	var b builder
	if f.TotalAmountGte != nil {
		b.cmp("o.total_amount", ">=", *f.TotalAmountGte)
	}
	if f.TotalAmountLte != nil {
		b.cmp("o.total_amount", "<=", *f.TotalAmountLte)
	}
	if f.OrderDateGte != nil {
		b.cmp("o.order_date", ">=", *f.OrderDateGte)
	}
	if f.OrderDateLte != nil {
		b.cmp("o.order_date", "<=", *f.OrderDateLte)
	}
	if f.CustomerName != nil {
		b.contains("c.name", *f.CustomerName)
	}
	if f.ProductName != nil {
		b.conds = append(b.conds, "EXISTS (SELECT 1 FROM order_products op JOIN products p ON p.id = op.product_id WHERE op.order_id = o.id AND LOWER(p.name) LIKE ?)")
		b.args = append(b.args, "%"+escapeLike(strings.ToLower(*f.ProductName))+"%")
	}
	if f.ProductID != nil {
		b.conds = append(b.conds, "EXISTS (SELECT 1 FROM order_products op WHERE op.order_id = o.id AND op.product_id = ?)")
		b.args = append(b.args, *f.ProductID)
	}

	return Predicate{
		Where:   b.where(),
		Args:    b.args,
		OrderBy: orderClause(orderBy, orderOrderFields, "o.order_date DESC", "o.id ASC"),
	}
}
