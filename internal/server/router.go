package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	customerctrl "crmd/internal/customer/controller"
	orderctrl "crmd/internal/order/controller"
	productctrl "crmd/internal/product/controller"
)

// NewRouter builds the process-wide route table once at startup. Every query
// and mutation operation is a named route; the operation names are the API
// contract the periodic jobs and external callers depend on.
func NewRouter(
	customers *customerctrl.CustomerController,
	products *productctrl.ProductController,
	orders *orderctrl.OrderController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		// Queries
		r.Get("/hello", hello)
		r.Get("/customersCount", customers.CustomersCount)
		r.Get("/ordersCount", orders.OrdersCount)
		r.Get("/ordersRevenue", orders.OrdersRevenue)
		r.Get("/ordersRecent", orders.OrdersRecent)
		r.Get("/pendingOrdersLastWeek", orders.PendingOrdersLastWeek)
		r.Post("/allCustomers", customers.AllCustomers)
		r.Post("/allProducts", products.AllProducts)
		r.Post("/allOrders", orders.AllOrders)

		// Mutations
		r.Post("/createCustomer", customers.CreateCustomer)
		r.Post("/bulkCreateCustomers", customers.BulkCreateCustomers)
		r.Post("/createProduct", products.CreateProduct)
		r.Post("/createOrder", orders.CreateOrder)
		r.Post("/updateLowStockProducts", products.UpdateLowStockProducts)
	})

	logger.Info("route table built")

	return r
}

func hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"hello": "Hello from CRM!"})
}
