package repository

import (
	"context"
	"fmt"

	"barangaylink-backend/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResidentRepository interface {
	Create(ctx context.Context, resident *entity.Resident) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Resident, error)
	FindByResidentID(ctx context.Context, residentID string) (*entity.Resident, error)
	FindAll(ctx context.Context) ([]*entity.Resident, error)
	Update(ctx context.Context, resident *entity.Resident) error
	DeleteWithOwned(ctx context.Context, id uuid.UUID) error
}

type residentRepository struct {
	db *gorm.DB
}

func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{db: db}
}

func (r *residentRepository) Create(ctx context.Context, resident *entity.Resident) error {
	return r.db.WithContext(ctx).Create(resident).Error
}

func (r *residentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resident, error) {
	var resident entity.Resident
	if err := r.db.WithContext(ctx).First(&resident, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resident, nil
}

func (r *residentRepository) FindByResidentID(ctx context.Context, residentID string) (*entity.Resident, error) {
	var resident entity.Resident
	if err := r.db.WithContext(ctx).Where("resident_id = ?", residentID).First(&resident).Error; err != nil {
		return nil, err
	}
	return &resident, nil
}

func (r *residentRepository) FindAll(ctx context.Context) ([]*entity.Resident, error) {
	var residents []*entity.Resident
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

func (r *residentRepository) Update(ctx context.Context, resident *entity.Resident) error {
	return r.db.WithContext(ctx).Save(resident).Error
}

// DeleteWithOwned removes a resident together with everything the resident
// owns, in one transaction. Children go first: assignments, then the
// request/service link rows, then the requests, then the resident itself.
// Returns gorm.ErrRecordNotFound when the resident does not exist; any other
// failure rolls the whole cascade back.
func (r *residentRepository) DeleteWithOwned(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resident entity.Resident
		if err := tx.First(&resident, "id = ?", id).Error; err != nil {
			return err
		}

		var requestIDs []uuid.UUID
		if err := tx.Model(&entity.Request{}).
			Where("resident_id = ?", id).
			Pluck("id", &requestIDs).Error; err != nil {
			return fmt.Errorf("collect owned requests: %w", err)
		}

		if len(requestIDs) > 0 {
			if err := tx.Where("request_id IN ?", requestIDs).
				Delete(&entity.Assignment{}).Error; err != nil {
				return fmt.Errorf("delete assignments: %w", err)
			}
			if err := tx.Exec("DELETE FROM request_services WHERE request_id IN ?", requestIDs).Error; err != nil {
				return fmt.Errorf("delete request service links: %w", err)
			}
			if err := tx.Where("id IN ?", requestIDs).
				Delete(&entity.Request{}).Error; err != nil {
				return fmt.Errorf("delete requests: %w", err)
			}
		}

		if err := tx.Delete(&entity.Resident{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete resident: %w", err)
		}
		return nil
	})
}
