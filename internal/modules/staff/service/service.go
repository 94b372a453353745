package staff

import (
	"context"
	"errors"
	"net/http"

	"barangaylink-backend/internal/entity"
	"barangaylink-backend/internal/modules/staff/dto"
	"barangaylink-backend/internal/modules/staff/repository"
	"barangaylink-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffService owns the worker roster. Deleting a staff member never
// cascades into assignments; their staff reference dangles and renders
// empty on read.
type StaffService interface {
	ListStaff(ctx context.Context) ([]*entity.Staff, error)
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*entity.Staff, error)
	GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*entity.Staff, error)
	DeleteStaff(ctx context.Context, id uuid.UUID) error
}

type staffService struct {
	repo repository.StaffRepository
}

func NewStaffService(repo repository.StaffRepository) StaffService {
	return &staffService{repo: repo}
}

func (s *staffService) ListStaff(ctx context.Context) ([]*entity.Staff, error) {
	return s.repo.FindAll(ctx)
}

func (s *staffService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*entity.Staff, error) {
	staff := &entity.Staff{
		Name: req.Name,
		Role: req.Role,
	}

	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *staffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return staff, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*entity.Staff, error) {
	staff, err := s.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Role != nil {
		staff.Role = *req.Role
	}

	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *staffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetStaff(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
