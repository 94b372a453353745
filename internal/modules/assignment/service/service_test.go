package assignment

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"barangaylink-backend/internal/bootstrap"
	"barangaylink-backend/internal/entity"
	"barangaylink-backend/internal/modules/assignment/dto"
	"barangaylink-backend/internal/modules/assignment/repository"
	requestRepo "barangaylink-backend/internal/modules/request/repository"
	staffRepo "barangaylink-backend/internal/modules/staff/repository"
	"barangaylink-backend/pkg/apperror"
	"github.com/google/uuid"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))
	return db
}

type fixtures struct {
	resident *entity.Resident
	staff    *entity.Staff
	request  *entity.Request
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	resident := &entity.Resident{
		ResidentID:    "R-5001",
		Name:          "Liza Ramos",
		Address:       "9 Luna St",
		BirthDate:     time.Date(1992, 7, 20, 0, 0, 0, 0, time.UTC),
		ContactNumber: "09191234567",
	}
	require.NoError(t, db.Create(resident).Error)

	staff := &entity.Staff{Name: "Carlos Tan", Role: "Health Worker"}
	require.NoError(t, db.Create(staff).Error)

	request := &entity.Request{
		ResidentID:    resident.ID,
		DateRequested: time.Now(),
		Status:        entity.StatusPending,
	}
	require.NoError(t, db.Create(request).Error)

	return fixtures{resident: resident, staff: staff, request: request}
}

func newTestService(db *gorm.DB) AssignmentService {
	return NewAssignmentService(
		repository.NewAssignmentRepository(db),
		requestRepo.NewRequestRepository(db),
		staffRepo.NewStaffRepository(db),
	)
}

func TestCreateAssignment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()
	fx := seedFixtures(t, db)

	created, err := svc.CreateAssignment(ctx, dto.CreateAssignmentInput{
		RequestID: fx.request.ID.String(),
		StaffID:   fx.staff.ID.String(),
	})
	require.NoError(t, err)

	assert.False(t, created.DateAssigned.IsZero(), "date defaults to now")
	require.NotNil(t, created.Request)
	assert.Equal(t, fx.request.ID, created.Request.ID)
	require.NotNil(t, created.Request.Resident)
	assert.Equal(t, fx.resident.ID, created.Request.Resident.ID)
	require.NotNil(t, created.Staff)
	assert.Equal(t, fx.staff.ID, created.Staff.ID)
}

func TestCreateAssignment_ExplicitDate(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()
	fx := seedFixtures(t, db)

	when := time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC)
	created, err := svc.CreateAssignment(ctx, dto.CreateAssignmentInput{
		RequestID:    fx.request.ID.String(),
		StaffID:      fx.staff.ID.String(),
		DateAssigned: &when,
	})
	require.NoError(t, err)
	assert.True(t, created.DateAssigned.Equal(when))
}

func TestCreateAssignment_MissingReferences(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()
	fx := seedFixtures(t, db)

	_, err := svc.CreateAssignment(ctx, dto.CreateAssignmentInput{
		RequestID: uuid.New().String(),
		StaffID:   fx.staff.ID.String(),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.Equal(t, "Request or Staff not found", err.Error())

	_, err = svc.CreateAssignment(ctx, dto.CreateAssignmentInput{
		RequestID: fx.request.ID.String(),
		StaffID:   uuid.New().String(),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.Equal(t, "Request or Staff not found", err.Error())
}

func TestListAssignments_FiltersAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()
	fx := seedFixtures(t, db)

	otherStaff := &entity.Staff{Name: "Nena Garcia", Role: "Secretary"}
	require.NoError(t, db.Create(otherStaff).Error)

	now := time.Now()
	older := &entity.Assignment{RequestID: fx.request.ID, StaffID: fx.staff.ID, DateAssigned: now.Add(-time.Hour)}
	newer := &entity.Assignment{RequestID: fx.request.ID, StaffID: otherStaff.ID, DateAssigned: now}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)

	all, err := svc.ListAssignments(ctx, dto.ListAssignmentsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID, "newest dateAssigned first")

	byStaff, err := svc.ListAssignments(ctx, dto.ListAssignmentsFilter{StaffID: fx.staff.ID.String()})
	require.NoError(t, err)
	require.Len(t, byStaff, 1)
	assert.Equal(t, older.ID, byStaff[0].ID)

	byRequest, err := svc.ListAssignments(ctx, dto.ListAssignmentsFilter{RequestID: fx.request.ID.String()})
	require.NoError(t, err)
	assert.Len(t, byRequest, 2)
}

func TestDeleteRequestLeavesAssignmentDangling(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()
	fx := seedFixtures(t, db)

	created, err := svc.CreateAssignment(ctx, dto.CreateAssignmentInput{
		RequestID: fx.request.ID.String(),
		StaffID:   fx.staff.ID.String(),
	})
	require.NoError(t, err)

	// Deleting the request directly does not touch assignments; the record
	// survives with a request reference that reads render as null.
	require.NoError(t, db.Delete(&entity.Request{}, "id = ?", fx.request.ID).Error)

	got, err := svc.GetAssignment(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Request)
	require.NotNil(t, got.Staff)
}

func TestDeleteAssignment_IsLeaf(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()
	fx := seedFixtures(t, db)

	created, err := svc.CreateAssignment(ctx, dto.CreateAssignmentInput{
		RequestID: fx.request.ID.String(),
		StaffID:   fx.staff.ID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAssignment(ctx, created.ID))

	_, err = svc.GetAssignment(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

	// The request and staff it pointed at are untouched.
	var count int64
	require.NoError(t, db.Model(&entity.Request{}).Where("id = ?", fx.request.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&entity.Staff{}).Where("id = ?", fx.staff.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
