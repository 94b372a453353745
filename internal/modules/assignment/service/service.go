package assignment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"barangaylink-backend/internal/entity"
	"barangaylink-backend/internal/modules/assignment/dto"
	"barangaylink-backend/internal/modules/assignment/repository"
	requestRepo "barangaylink-backend/internal/modules/request/repository"
	staffRepo "barangaylink-backend/internal/modules/staff/repository"
	"barangaylink-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentService interface {
	ListAssignments(ctx context.Context, filter dto.ListAssignmentsFilter) ([]*entity.Assignment, error)
	CreateAssignment(ctx context.Context, input dto.CreateAssignmentInput) (*entity.Assignment, error)
	GetAssignment(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
}

type assignmentService struct {
	repo     repository.AssignmentRepository
	requests requestRepo.RequestRepository
	staff    staffRepo.StaffRepository
}

func NewAssignmentService(repo repository.AssignmentRepository, requests requestRepo.RequestRepository, staff staffRepo.StaffRepository) AssignmentService {
	return &assignmentService{
		repo:     repo,
		requests: requests,
		staff:    staff,
	}
}

func (s *assignmentService) ListAssignments(ctx context.Context, filter dto.ListAssignmentsFilter) ([]*entity.Assignment, error) {
	repoFilter := repository.ListFilter{}

	if filter.RequestID != "" {
		id, err := uuid.Parse(filter.RequestID)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "invalid requestId filter", apperror.ErrInvalidInput)
		}
		repoFilter.RequestID = &id
	}
	if filter.StaffID != "" {
		id, err := uuid.Parse(filter.StaffID)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "invalid staffId filter", apperror.ErrInvalidInput)
		}
		repoFilter.StaffID = &id
	}

	return s.repo.FindAll(ctx, repoFilter)
}

// CreateAssignment requires both sides of the binding to exist at creation
// time. The date defaults to now when the caller leaves it out.
func (s *assignmentService) CreateAssignment(ctx context.Context, input dto.CreateAssignmentInput) (*entity.Assignment, error) {
	requestID, err := uuid.Parse(input.RequestID)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "invalid requestId", apperror.ErrInvalidInput)
	}
	staffID, err := uuid.Parse(input.StaffID)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "invalid staffId", apperror.ErrInvalidInput)
	}

	if _, err := s.requests.FindByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Request or Staff not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.staff.FindByID(ctx, staffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Request or Staff not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	assignment := &entity.Assignment{
		RequestID:    requestID,
		StaffID:      staffID,
		DateAssigned: time.Now(),
	}
	if input.DateAssigned != nil {
		assignment.DateAssigned = *input.DateAssigned
	}

	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, assignment.ID)
}

func (s *assignmentService) GetAssignment(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return assignment, nil
}

// DeleteAssignment removes the binding only. Assignments are leaves; nothing
// cascades from here.
func (s *assignmentService) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetAssignment(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
