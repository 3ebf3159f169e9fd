package enrollment

import (
	"testing"

	"lms/apperr"
	"lms/models"
	catalogModel "lms/models/catalog"
	catalogService "lms/services/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&catalogModel.Batch{},
		&catalogModel.Subject{},
		&catalogModel.Chapter{},
		&catalogModel.ContentItem{},
		&catalogModel.EnrollmentRequest{},
	))
	return db
}

func createBatch(t *testing.T, db *gorm.DB, name string) *catalogModel.Batch {
	t.Helper()
	batch := catalogModel.Batch{Name: name}
	require.NoError(t, db.Create(&batch).Error)
	return &batch
}

func TestRequestCreatesPending(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	batch := createBatch(t, db, "Physics-101")

	request, err := svc.Request(7, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, catalogModel.RequestPending, request.Status)
	assert.False(t, request.RequestedAt.IsZero())
}

func TestRequestUnknownBatch(t *testing.T) {
	svc := NewService(setupDB(t))

	_, err := svc.Request(7, 42)
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDuplicateRequestRejected(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	batch := createBatch(t, db, "Physics-101")

	_, err := svc.Request(7, batch.ID)
	require.NoError(t, err)

	_, err = svc.Request(7, batch.ID)
	var duplicate *apperr.DuplicateRequestError
	assert.ErrorAs(t, err, &duplicate)

	// A different student is unaffected.
	_, err = svc.Request(8, batch.ID)
	assert.NoError(t, err)
}

func TestApprovedRequestStillBlocksNewOnes(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	batch := createBatch(t, db, "Physics-101")

	request, err := svc.Request(7, batch.ID)
	require.NoError(t, err)
	_, err = svc.Approve(request.ID, 1)
	require.NoError(t, err)

	_, err = svc.Request(7, batch.ID)
	var duplicate *apperr.DuplicateRequestError
	assert.ErrorAs(t, err, &duplicate)
}

func TestApproveIsTerminal(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	batch := createBatch(t, db, "Physics-101")

	request, err := svc.Request(7, batch.ID)
	require.NoError(t, err)

	approved, err := svc.Approve(request.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, catalogModel.RequestApproved, approved.Status)
	assert.NotNil(t, approved.DecidedAt)
	require.NotNil(t, approved.DecidedBy)
	assert.Equal(t, uint(1), *approved.DecidedBy)

	var decided *apperr.AlreadyDecidedError
	_, err = svc.Approve(request.ID, 1)
	assert.ErrorAs(t, err, &decided)
	_, err = svc.Deny(request.ID, 1, "")
	assert.ErrorAs(t, err, &decided)
}

func TestDenyStoresReasonAndAllowsReRequest(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	batch := createBatch(t, db, "Physics-101")

	request, err := svc.Request(7, batch.ID)
	require.NoError(t, err)

	denied, err := svc.Deny(request.ID, 1, "  batch is full  ")
	require.NoError(t, err)
	assert.Equal(t, catalogModel.RequestDenied, denied.Status)
	assert.Equal(t, "batch is full", denied.DenialReason)

	// A denied request frees the (user, batch) pair for a fresh request.
	again, err := svc.Request(7, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, catalogModel.RequestPending, again.Status)
}

func TestDecideUnknownRequest(t *testing.T) {
	svc := NewService(setupDB(t))

	var notFound *apperr.NotFoundError
	_, err := svc.Approve(42, 1)
	assert.ErrorAs(t, err, &notFound)
	_, err = svc.Deny(42, 1, "nope")
	assert.ErrorAs(t, err, &notFound)
}

func TestListPendingAndByUser(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)
	physics := createBatch(t, db, "Physics-101")
	chemistry := createBatch(t, db, "Chemistry-101")

	first, err := svc.Request(7, physics.ID)
	require.NoError(t, err)
	_, err = svc.Request(7, chemistry.ID)
	require.NoError(t, err)
	_, err = svc.Request(8, physics.ID)
	require.NoError(t, err)

	pending, err := svc.ListPending()
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	_, err = svc.Approve(first.ID, 1)
	require.NoError(t, err)

	pending, err = svc.ListPending()
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	mine, err := svc.ListByUser(7)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

// Full workflow from the authoring side to student visibility.
func TestEnrollmentGatesVisibility(t *testing.T) {
	db := setupDB(t)
	enrollSvc := NewService(db)
	catalogSvc := catalogService.NewService(db)

	batch, err := catalogSvc.CreateBatch("Physics-101", "")
	require.NoError(t, err)
	subject, err := catalogSvc.CreateSubject(batch.ID, "Mechanics")
	require.NoError(t, err)
	chapter, err := catalogSvc.CreateChapter(subject.ID, "Kinematics")
	require.NoError(t, err)
	_, err = catalogSvc.CreateContent(chapter.ID, "VIDEO", "https://example.com/v1", "", nil)
	require.NoError(t, err)

	const studentID = 7

	request, err := enrollSvc.Request(studentID, batch.ID)
	require.NoError(t, err)

	// Pending is not enough.
	visible, err := catalogSvc.VisibleBatches(studentID, models.RoleStudent)
	require.NoError(t, err)
	assert.Empty(t, visible)

	_, err = enrollSvc.Approve(request.ID, 1)
	require.NoError(t, err)

	visible, err = catalogSvc.VisibleBatches(studentID, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Physics-101", visible[0].Name)

	items, err := catalogSvc.ListContentVisible(studentID, models.RoleStudent, chapter.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
