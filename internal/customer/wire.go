package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"crmd/internal/customer/controller"
	"crmd/internal/customer/repository"
	"crmd/internal/customer/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.CustomerController {
	repo := repository.NewMySQLCustomerRepository(db)
	uc := usecase.NewCustomersUseCase(repo, logger)
	return controller.NewCustomerController(uc, logger)
}
