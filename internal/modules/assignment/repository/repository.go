package repository

import (
	"context"

	"barangaylink-backend/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	RequestID *uuid.UUID
	StaffID   *uuid.UUID
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)
	FindAll(ctx context.Context, filter ListFilter) ([]*entity.Assignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *entity.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// FindByID resolves the nested request with its own resident and services.
// A dangling request or staff reference loads as nil rather than failing.
func (r *assignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	var assignment entity.Assignment
	if err := r.db.WithContext(ctx).
		Preload("Request").
		Preload("Request.Resident").
		Preload("Request.Service").
		Preload("Request.Services").
		Preload("Staff").
		First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindAll(ctx context.Context, filter ListFilter) ([]*entity.Assignment, error) {
	query := r.db.WithContext(ctx).
		Preload("Request").
		Preload("Request.Resident").
		Preload("Request.Service").
		Preload("Request.Services").
		Preload("Staff")

	if filter.RequestID != nil {
		query = query.Where("request_id = ?", *filter.RequestID)
	}
	if filter.StaffID != nil {
		query = query.Where("staff_id = ?", *filter.StaffID)
	}

	var assignments []*entity.Assignment
	if err := query.Order("date_assigned DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Assignment{}, "id = ?", id).Error
}
