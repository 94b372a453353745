package request

import (
	"context"
	"errors"
	"net/http"
	"time"

	"barangaylink-backend/internal/entity"
	catalogRepo "barangaylink-backend/internal/modules/catalog/repository"
	"barangaylink-backend/internal/modules/request/dto"
	"barangaylink-backend/internal/modules/request/repository"
	residentRepo "barangaylink-backend/internal/modules/resident/repository"
	"barangaylink-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestService interface {
	ListRequests(ctx context.Context, filter dto.ListRequestsFilter) ([]*entity.Request, error)
	CreateRequest(ctx context.Context, input dto.CreateRequestInput) (*entity.Request, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*entity.Request, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, input dto.UpdateRequestStatusInput) (*entity.Request, error)
	DeleteRequest(ctx context.Context, id uuid.UUID) error
}

type requestService struct {
	repo      repository.RequestRepository
	residents residentRepo.ResidentRepository
	services  catalogRepo.ServiceRepository
}

func NewRequestService(repo repository.RequestRepository, residents residentRepo.ResidentRepository, services catalogRepo.ServiceRepository) RequestService {
	return &requestService{
		repo:      repo,
		residents: residents,
		services:  services,
	}
}

func (s *requestService) ListRequests(ctx context.Context, filter dto.ListRequestsFilter) ([]*entity.Request, error) {
	repoFilter := repository.ListFilter{Status: filter.Status}

	if filter.ResidentID != "" {
		id, err := uuid.Parse(filter.ResidentID)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "invalid residentId filter", apperror.ErrInvalidInput)
		}
		repoFilter.ResidentID = &id
	}
	if filter.ServiceID != "" {
		id, err := uuid.Parse(filter.ServiceID)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "invalid serviceId filter", apperror.ErrInvalidInput)
		}
		repoFilter.ServiceID = &id
	}

	return s.repo.FindAll(ctx, repoFilter)
}

// CreateRequest validates every reference before anything is persisted. The
// plural serviceIds path wins over the legacy singular serviceId; exactly one
// of the two ends up populated on the stored request, never both.
func (s *requestService) CreateRequest(ctx context.Context, input dto.CreateRequestInput) (*entity.Request, error) {
	residentID, err := uuid.Parse(input.ResidentID)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "invalid residentId", apperror.ErrInvalidInput)
	}

	if _, err := s.residents.FindByID(ctx, residentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Resident not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	request := &entity.Request{
		ResidentID:    residentID,
		DateRequested: time.Now(),
		Status:        input.Status,
	}
	if request.Status == "" {
		request.Status = entity.StatusPending
	}

	switch {
	case len(input.ServiceIDs) > 0:
		serviceIDs := make([]uuid.UUID, 0, len(input.ServiceIDs))
		for _, raw := range input.ServiceIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, apperror.New(http.StatusBadRequest, "invalid serviceIds entry", apperror.ErrInvalidInput)
			}
			serviceIDs = append(serviceIDs, id)
		}

		count, err := s.services.CountByIDs(ctx, serviceIDs)
		if err != nil {
			return nil, err
		}
		if count != int64(len(serviceIDs)) {
			return nil, apperror.New(http.StatusNotFound, "One or more services not found", apperror.ErrNotFound)
		}

		for _, id := range serviceIDs {
			request.Services = append(request.Services, entity.Service{ID: id})
		}

	case input.ServiceID != "":
		serviceID, err := uuid.Parse(input.ServiceID)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "invalid serviceId", apperror.ErrInvalidInput)
		}
		if _, err := s.services.FindByID(ctx, serviceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(http.StatusNotFound, "Service not found", apperror.ErrNotFound)
			}
			return nil, err
		}
		request.ServiceID = &serviceID

	default:
		return nil, apperror.New(http.StatusBadRequest, "serviceId or serviceIds required", apperror.ErrInvalidInput)
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, request.ID)
}

func (s *requestService) GetRequest(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return request, nil
}

// UpdateRequestStatus moves a request to any member of the status set. The
// set is flat: completed requests may legitimately go back to pending.
func (s *requestService) UpdateRequestStatus(ctx context.Context, id uuid.UUID, input dto.UpdateRequestStatusInput) (*entity.Request, error) {
	if !entity.ValidStatus(input.Status) {
		return nil, apperror.New(http.StatusBadRequest, "Invalid status", apperror.ErrInvalidInput)
	}

	if _, err := s.GetRequest(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *requestService) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRequest(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
