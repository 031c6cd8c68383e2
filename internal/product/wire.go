package product

import (
	"database/sql"

	"go.uber.org/zap"

	"crmd/internal/product/controller"
	"crmd/internal/product/repository"
	"crmd/internal/product/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ProductController {
	repo := repository.NewMySQLProductRepository(db)
	uc := usecase.NewProductsUseCase(repo, logger)
	return controller.NewProductController(uc, logger)
}
