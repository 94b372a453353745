package resident

import (
	"context"
	"errors"
	"net/http"

	"barangaylink-backend/internal/entity"
	"barangaylink-backend/internal/modules/resident/dto"
	"barangaylink-backend/internal/modules/resident/repository"
	"barangaylink-backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResidentService interface {
	ListResidents(ctx context.Context) ([]*entity.Resident, error)
	CreateResident(ctx context.Context, req dto.CreateResidentRequest) (*entity.Resident, error)
	GetResident(ctx context.Context, id uuid.UUID) (*entity.Resident, error)
	UpdateResident(ctx context.Context, id uuid.UUID, req dto.UpdateResidentRequest) (*entity.Resident, error)
	DeleteResident(ctx context.Context, id uuid.UUID) error
}

type residentService struct {
	repo repository.ResidentRepository
}

func NewResidentService(repo repository.ResidentRepository) ResidentService {
	return &residentService{repo: repo}
}

func (s *residentService) ListResidents(ctx context.Context) ([]*entity.Resident, error) {
	return s.repo.FindAll(ctx)
}

func (s *residentService) CreateResident(ctx context.Context, req dto.CreateResidentRequest) (*entity.Resident, error) {
	if existing, _ := s.repo.FindByResidentID(ctx, req.ResidentID); existing != nil {
		return nil, apperror.New(http.StatusConflict, "Resident ID already exists", apperror.ErrConflict)
	}

	resident := &entity.Resident{
		ResidentID:    req.ResidentID,
		Name:          req.Name,
		Address:       req.Address,
		BirthDate:     req.BirthDate,
		ContactNumber: req.ContactNumber,
	}

	if err := s.repo.Create(ctx, resident); err != nil {
		return nil, err
	}
	return resident, nil
}

func (s *residentService) GetResident(ctx context.Context, id uuid.UUID) (*entity.Resident, error) {
	resident, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return resident, nil
}

func (s *residentService) UpdateResident(ctx context.Context, id uuid.UUID, req dto.UpdateResidentRequest) (*entity.Resident, error) {
	resident, err := s.GetResident(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ResidentID != nil && *req.ResidentID != resident.ResidentID {
		if existing, _ := s.repo.FindByResidentID(ctx, *req.ResidentID); existing != nil {
			return nil, apperror.New(http.StatusConflict, "Resident ID already exists", apperror.ErrConflict)
		}
		resident.ResidentID = *req.ResidentID
	}
	if req.Name != nil {
		resident.Name = *req.Name
	}
	if req.Address != nil {
		resident.Address = *req.Address
	}
	if req.BirthDate != nil {
		resident.BirthDate = *req.BirthDate
	}
	if req.ContactNumber != nil {
		resident.ContactNumber = *req.ContactNumber
	}

	if err := s.repo.Update(ctx, resident); err != nil {
		return nil, err
	}
	return resident, nil
}

// DeleteResident removes the resident and cascades through owned requests
// into their assignments. A missing resident is NotFound; a failure inside
// the cascade is an integrity error so operators can tell "nothing to do"
// apart from "partial failure".
func (s *residentService) DeleteResident(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteWithOwned(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "Not found", apperror.ErrNotFound)
		}
		return apperror.New(0, "resident delete cascade failed: "+err.Error(), apperror.ErrIntegrity)
	}
	return nil
}
