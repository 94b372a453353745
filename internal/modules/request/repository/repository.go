package repository

import (
	"context"

	"barangaylink-backend/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter narrows FindAll. The service id matches against either the
// legacy singular reference or the plural set.
type ListFilter struct {
	ResidentID *uuid.UUID
	ServiceID  *uuid.UUID
	Status     string
}

type RequestRepository interface {
	Create(ctx context.Context, request *entity.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error)
	FindAll(ctx context.Context, filter ListFilter) ([]*entity.Request, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create persists the request and its service link rows in one session.
// Omit("Services.*") stops gorm from upserting the referenced services
// themselves; only request_services rows are written for them.
func (r *requestRepository) Create(ctx context.Context, request *entity.Request) error {
	return r.db.WithContext(ctx).Omit("Services.*").Create(request).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	var request entity.Request
	if err := r.db.WithContext(ctx).
		Preload("Resident").
		Preload("Service").
		Preload("Services").
		First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindAll(ctx context.Context, filter ListFilter) ([]*entity.Request, error) {
	query := r.db.WithContext(ctx).
		Preload("Resident").
		Preload("Service").
		Preload("Services")

	if filter.ResidentID != nil {
		query = query.Where("resident_id = ?", *filter.ResidentID)
	}
	if filter.ServiceID != nil {
		query = query.Where(
			"service_id = ? OR id IN (SELECT request_id FROM request_services WHERE service_id = ?)",
			*filter.ServiceID, *filter.ServiceID,
		)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var requests []*entity.Request
	if err := query.Order("date_requested DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Request{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes only the request row and its service links. Assignments
// referencing the request are left in place; the resident cascade is the
// only path that removes them.
func (r *requestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM request_services WHERE request_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Request{}, "id = ?", id).Error
	})
}
