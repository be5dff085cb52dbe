package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"go.uber.org/zap"
)

type SupplierUsecase struct {
	suppliers repo.SupplierRepository
	log       *zap.Logger
}

func NewSupplierUsecase(suppliers repo.SupplierRepository, log *zap.Logger) *SupplierUsecase {
	return &SupplierUsecase{suppliers: suppliers, log: log}
}

type SupplierInput struct {
	Name          string
	Email         string
	ContactNumber string
	Address       string
}

func (in SupplierInput) validate() error {
	if !present(in.Name, in.Email, in.ContactNumber, in.Address) {
		return errBadRequest("name, email, contactNumber and address are required")
	}
	if !isEmail(in.Email) {
		return errBadRequest("invalid email")
	}
	return nil
}

func (in SupplierInput) apply(s *model.Supplier) {
	s.Name = strings.TrimSpace(in.Name)
	s.Email = strings.ToLower(strings.TrimSpace(in.Email))
	s.ContactNumber = strings.TrimSpace(in.ContactNumber)
	s.Address = strings.TrimSpace(in.Address)
}

func (u *SupplierUsecase) List(ctx context.Context) ([]model.Supplier, error) {
	out, err := u.suppliers.List(ctx)
	if err != nil {
		u.log.Error("list suppliers failed", zap.Error(err))
		return nil, errDB
	}
	return out, nil
}

func (u *SupplierUsecase) Get(ctx context.Context, id string) (model.Supplier, error) {
	s, err := u.suppliers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Supplier{}, errNotFound("supplier not found")
		}
		return model.Supplier{}, errDB
	}
	return s, nil
}

func (u *SupplierUsecase) Create(ctx context.Context, in SupplierInput) (model.Supplier, error) {
	if err := in.validate(); err != nil {
		return model.Supplier{}, err
	}

	var s model.Supplier
	in.apply(&s)
	if err := u.suppliers.Create(ctx, &s); err != nil {
		u.log.Error("create supplier failed", zap.Error(err))
		return model.Supplier{}, errDB
	}
	return s, nil
}

func (u *SupplierUsecase) Update(ctx context.Context, id string, in SupplierInput) (model.Supplier, error) {
	if err := in.validate(); err != nil {
		return model.Supplier{}, err
	}

	s, err := u.Get(ctx, id)
	if err != nil {
		return model.Supplier{}, err
	}
	in.apply(&s)

	if err := u.suppliers.Update(ctx, &s); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Supplier{}, errNotFound("supplier not found")
		}
		return model.Supplier{}, errDB
	}
	return s, nil
}

func (u *SupplierUsecase) Delete(ctx context.Context, id string) error {
	if err := u.suppliers.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("supplier not found")
		}
		return errDB
	}
	return nil
}
