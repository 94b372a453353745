package catalog

import (
	"context"
	"errors"
	"net/http"

	"barangaylink-backend/internal/entity"
	"barangaylink-backend/internal/modules/catalog/dto"
	"barangaylink-backend/internal/modules/catalog/repository"
	"barangaylink-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService owns the service-type definitions. Deleting an entry never
// cascades into requests that reference it: those references dangle and are
// rendered empty on read.
type CatalogService interface {
	ListServices(ctx context.Context) ([]*entity.Service, error)
	CreateService(ctx context.Context, req dto.CreateServiceRequest) (*entity.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*entity.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	repo repository.ServiceRepository
}

func NewCatalogService(repo repository.ServiceRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListServices(ctx context.Context) ([]*entity.Service, error) {
	return s.repo.FindAll(ctx)
}

func (s *catalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest) (*entity.Service, error) {
	service := &entity.Service{
		ServiceType: req.ServiceType,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *catalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	service, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return service, nil
}

func (s *catalogService) UpdateService(ctx context.Context, id uuid.UUID, req dto.UpdateServiceRequest) (*entity.Service, error) {
	service, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ServiceType != nil {
		service.ServiceType = *req.ServiceType
	}
	if req.Description != nil {
		service.Description = *req.Description
	}

	if err := s.repo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
