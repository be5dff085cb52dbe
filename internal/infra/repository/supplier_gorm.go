package repository

import (
	"context"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
	repo "github.com/gimhantharuke456/sachi-itpm/internal/repository"

	"gorm.io/gorm"
)

type SupplierGormRepository struct {
	db *gorm.DB
}

var _ repo.SupplierRepository = (*SupplierGormRepository)(nil)

func NewSupplierGormRepository(db *gorm.DB) *SupplierGormRepository {
	return &SupplierGormRepository{db: db}
}

func (r *SupplierGormRepository) List(ctx context.Context) ([]model.Supplier, error) {
	out := []model.Supplier{}
	if err := r.db.WithContext(ctx).Order("name asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SupplierGormRepository) FindByID(ctx context.Context, id string) (model.Supplier, error) {
	var s model.Supplier
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return model.Supplier{}, mapErr(err)
	}
	return s, nil
}

func (r *SupplierGormRepository) Create(ctx context.Context, s *model.Supplier) error {
	return mapErr(r.db.WithContext(ctx).Create(s).Error)
}

func (r *SupplierGormRepository) Update(ctx context.Context, s *model.Supplier) error {
	res := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"name":           s.Name,
		"email":          s.Email,
		"contact_number": s.ContactNumber,
		"address":        s.Address,
	})
	return affected(res)
}

func (r *SupplierGormRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Supplier{}))
}
