package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"crmd/internal/domain"
	"crmd/internal/dto"
	apperrors "crmd/internal/errors"
	"crmd/internal/filter"
)

type CustomerRepository interface {
	Insert(ctx context.Context, c domain.Customer) (int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, pred filter.Predicate, limit, offset int) ([]domain.Customer, error)
	Count(ctx context.Context, pred filter.Predicate) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type CustomersUseCase struct {
	repo   CustomerRepository
	logger *zap.Logger
}

func NewCustomersUseCase(repo CustomerRepository, logger *zap.Logger) *CustomersUseCase {
	return &CustomersUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and persists a single customer. Validation and duplicate
// emails come back as a success=false result, never as an error; only store
// faults are returned as errors.
func (uc *CustomersUseCase) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResult, error) {
	if errs := uc.validate(ctx, req, nil); len(errs) > 0 {
		return &dto.CustomerResult{
			Success: false,
			Message: "customer validation failed",
			Errors:  errs,
		}, nil
	}

	customer := domain.Customer{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     normalizePhone(req.Phone),
		CreatedAt: time.Now().UTC(),
	}

	id, err := uc.repo.Insert(ctx, customer)
	if err != nil {
		// A concurrent create can win the race between the existence check
		// and the insert; the unique index reports it as a conflict.
		if _, ok := apperrors.IsConflictError(err); ok {
			return &dto.CustomerResult{
				Success: false,
				Message: "customer validation failed",
				Errors:  []string{"email already exists"},
			}, nil
		}
		return nil, err
	}
	customer.ID = id

	uc.logger.Info("customer created", zap.Int64("customerId", id), zap.String("email", customer.Email))

	result := dto.NewCustomerDTO(customer)
	return &dto.CustomerResult{
		Success:  true,
		Message:  "Customer created successfully",
		Customer: &result,
	}, nil
}

// BulkCreate processes entries independently: a failing entry never blocks
// the others. Emails accepted earlier in the same batch count as duplicates
// for later entries.
func (uc *CustomersUseCase) BulkCreate(ctx context.Context, req dto.BulkCreateCustomersRequest) (*dto.BulkCustomersResult, error) {
	created := []dto.CustomerDTO{}
	var errs []string
	acceptedEmails := make(map[string]bool)

	for i, entry := range req.Customers {
		entryErrs := uc.validate(ctx, entry, acceptedEmails)
		if len(entryErrs) > 0 {
			errs = append(errs, fmt.Sprintf("Index %d: %s", i, strings.Join(entryErrs, "; ")))
			continue
		}

		customer := domain.Customer{
			Name:      entry.Name,
			Email:     entry.Email,
			Phone:     normalizePhone(entry.Phone),
			CreatedAt: time.Now().UTC(),
		}

		id, err := uc.repo.Insert(ctx, customer)
		if err != nil {
			if _, ok := apperrors.IsConflictError(err); ok {
				errs = append(errs, fmt.Sprintf("Index %d: email already exists", i))
				continue
			}
			return nil, err
		}
		customer.ID = id

		acceptedEmails[strings.ToLower(entry.Email)] = true
		created = append(created, dto.NewCustomerDTO(customer))
	}

	uc.logger.Info("bulk customer create finished",
		zap.Int("requested", len(req.Customers)),
		zap.Int("created", len(created)),
		zap.Int("failed", len(errs)),
	)

	return &dto.BulkCustomersResult{
		Success: len(errs) == 0,
		Message: fmt.Sprintf("Created %d of %d customers", len(created), len(req.Customers)),
		Errors:  errs,
		Created: created,
	}, nil
}

func (uc *CustomersUseCase) List(ctx context.Context, req dto.CustomerListRequest) (*dto.CustomerConnection, error) {
	pred, err := filter.Customers(req.Filter, req.OrderBy)
	if err != nil {
		return nil, err
	}

	page, pageSize := dto.NormalizePage(req.Page.Page, req.PageSize)
	offset := (page - 1) * pageSize

	customers, err := uc.repo.List(ctx, pred, pageSize, offset)
	if err != nil {
		return nil, err
	}

	total, err := uc.repo.Count(ctx, pred)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CustomerDTO, 0, len(customers))
	for _, c := range customers {
		items = append(items, dto.NewCustomerDTO(c))
	}

	return &dto.CustomerConnection{
		Items:       items,
		TotalCount:  total,
		Page:        page,
		PageSize:    pageSize,
		HasNextPage: int64(offset+len(items)) < total,
	}, nil
}

func (uc *CustomersUseCase) Count(ctx context.Context) (int64, error) {
	return uc.repo.CountAll(ctx)
}

// validate collects every problem with the entry instead of stopping at the
// first one. batchEmails holds lowercased emails already accepted in the
// current bulk request; pass nil for single creates.
func (uc *CustomersUseCase) validate(ctx context.Context, req dto.CreateCustomerRequest, batchEmails map[string]bool) []string {
	var errs []string

	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "name is required")
	}

	switch {
	case strings.TrimSpace(req.Email) == "":
		errs = append(errs, "email is required")
	case !domain.ValidEmail(req.Email):
		errs = append(errs, "email is not valid")
	case batchEmails[strings.ToLower(req.Email)]:
		errs = append(errs, "email already exists")
	default:
		exists, err := uc.repo.EmailExists(ctx, req.Email)
		if err != nil {
			uc.logger.Error("email existence check failed", zap.Error(err))
			errs = append(errs, "email could not be verified")
		} else if exists {
			errs = append(errs, "email already exists")
		}
	}

	if req.Phone != nil && *req.Phone != "" && !domain.ValidPhone(*req.Phone) {
		errs = append(errs, "phone must be international format +<digits> or XXX-XXX-XXXX")
	}

	return errs
}

func normalizePhone(phone *string) *string {
	if phone == nil || *phone == "" {
		return nil
	}
	return phone
}
