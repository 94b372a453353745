package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"barangaylink-backend/internal/bootstrap"
	"barangaylink-backend/internal/entity"
	catalogRepo "barangaylink-backend/internal/modules/catalog/repository"
	requestDto "barangaylink-backend/internal/modules/request/dto"
	requestRepo "barangaylink-backend/internal/modules/request/repository"
	request "barangaylink-backend/internal/modules/request/service"
	residentRepo "barangaylink-backend/internal/modules/resident/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))
	return db
}

func newTestService(db *gorm.DB) ReportService {
	return NewReportService(request.NewRequestService(
		requestRepo.NewRequestRepository(db),
		residentRepo.NewResidentRepository(db),
		catalogRepo.NewServiceRepository(db),
	))
}

func TestWriteRequestsCSV(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	resident := &entity.Resident{
		ResidentID:    "R-7001",
		Name:          "Rosa Mendoza",
		Address:       "2 Aguinaldo St",
		BirthDate:     time.Date(1970, 1, 15, 0, 0, 0, 0, time.UTC),
		ContactNumber: "09201234567",
	}
	require.NoError(t, db.Create(resident).Error)

	s1 := &entity.Service{ServiceType: "Medical Assistance"}
	s2 := &entity.Service{ServiceType: "Burial Assistance"}
	require.NoError(t, db.Create(s1).Error)
	require.NoError(t, db.Create(s2).Error)

	when := time.Date(2024, 10, 5, 14, 30, 0, 0, time.UTC)

	single := &entity.Request{
		ResidentID:    resident.ID,
		ServiceID:     &s1.ID,
		DateRequested: when,
		Status:        entity.StatusCompleted,
	}
	require.NoError(t, db.Create(single).Error)

	plural := &entity.Request{
		ResidentID:    resident.ID,
		Services:      []entity.Service{*s1, *s2},
		DateRequested: when.Add(time.Hour),
		Status:        entity.StatusPending,
	}
	require.NoError(t, db.Omit("Services.*").Create(plural).Error)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteRequestsCSV(ctx, requestDto.ListRequestsFilter{}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Resident", "Services", "Status", "Date Requested"}, rows[0])

	// Newest request first, plural services joined with "; ".
	assert.Equal(t, "Rosa Mendoza", rows[1][0])
	assert.ElementsMatch(t, []string{"Medical Assistance", "Burial Assistance"}, strings.Split(rows[1][1], "; "))
	assert.Equal(t, entity.StatusPending, rows[1][2])
	assert.Equal(t, "2024-10-05 15:30:00", rows[1][3])

	assert.Equal(t, "Rosa Mendoza", rows[2][0])
	assert.Equal(t, "Medical Assistance", rows[2][1])
	assert.Equal(t, entity.StatusCompleted, rows[2][2])
	assert.Equal(t, "2024-10-05 14:30:00", rows[2][3])
}

func TestWriteRequestsCSV_DanglingReferences(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	resident := &entity.Resident{
		ResidentID:    "R-7002",
		Name:          "Tomas Rivera",
		Address:       "8 Katipunan Rd",
		BirthDate:     time.Date(1988, 6, 30, 0, 0, 0, 0, time.UTC),
		ContactNumber: "09211234567",
	}
	require.NoError(t, db.Create(resident).Error)

	service := &entity.Service{ServiceType: "Barangay Clearance"}
	require.NoError(t, db.Create(service).Error)

	req := &entity.Request{
		ResidentID:    resident.ID,
		ServiceID:     &service.ID,
		DateRequested: time.Now(),
		Status:        entity.StatusPending,
	}
	require.NoError(t, db.Create(req).Error)

	require.NoError(t, db.Delete(&entity.Service{}, "id = ?", service.ID).Error)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteRequestsCSV(ctx, requestDto.ListRequestsFilter{}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Tomas Rivera", rows[1][0])
	assert.Equal(t, "", rows[1][1], "dangling service renders as an empty cell")
}

func TestWriteRequestsCSV_StatusFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	resident := &entity.Resident{
		ResidentID:    "R-7003",
		Name:          "Elena Cruz",
		Address:       "11 Del Pilar St",
		BirthDate:     time.Date(1995, 12, 2, 0, 0, 0, 0, time.UTC),
		ContactNumber: "09221234567",
	}
	require.NoError(t, db.Create(resident).Error)

	for _, status := range []string{entity.StatusPending, entity.StatusCompleted} {
		req := &entity.Request{
			ResidentID:    resident.ID,
			DateRequested: time.Now(),
			Status:        status,
		}
		require.NoError(t, db.Create(req).Error)
	}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteRequestsCSV(ctx, requestDto.ListRequestsFilter{Status: entity.StatusCompleted}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.StatusCompleted, rows[1][2])
}
