package order

import (
	"database/sql"

	"go.uber.org/zap"

	customerrepo "crmd/internal/customer/repository"
	"crmd/internal/order/controller"
	orderrepo "crmd/internal/order/repository"
	"crmd/internal/order/service"
	"crmd/internal/order/usecase"
	productrepo "crmd/internal/product/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	customerRepo := customerrepo.NewMySQLCustomerRepository(db)
	productRepo := productrepo.NewMySQLProductRepository(db)

	writer := service.NewOrderService(db, orderRepo, logger)
	uc := usecase.NewOrdersUseCase(writer, orderRepo, customerRepo, productRepo, logger)

	return controller.NewOrderController(uc, logger)
}
