package catalog

import (
	"testing"

	"lms/apperr"
	"lms/models"
	catalogModel "lms/models/catalog"

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

	// A single connection keeps every query on the same in-memory database.
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

func approveEnrollment(t *testing.T, db *gorm.DB, userID, batchID uint) {
	t.Helper()
	active := true
	require.NoError(t, db.Create(&catalogModel.EnrollmentRequest{
		UserID:  userID,
		BatchID: batchID,
		Status:  catalogModel.RequestApproved,
		Active:  &active,
	}).Error)
}

func TestCreateBatchValidatesName(t *testing.T) {
	svc := NewService(setupDB(t))

	_, err := svc.CreateBatch("   ", "desc")
	var validation *apperr.ValidationError
	assert.ErrorAs(t, err, &validation)

	batch, err := svc.CreateBatch("  Physics-101  ", " intro ")
	require.NoError(t, err)
	assert.Equal(t, "Physics-101", batch.Name)
	assert.Equal(t, "intro", batch.Description)
}

func TestListBatchesRoundTrip(t *testing.T) {
	svc := NewService(setupDB(t))

	batch, err := svc.CreateBatch("Physics-101", "")
	require.NoError(t, err)

	batches, err := svc.ListBatches()
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, batch.ID, batches[0].ID)
	assert.Equal(t, "Physics-101", batches[0].Name)

	require.NoError(t, svc.DeleteBatch(batch.ID))

	batches, err = svc.ListBatches()
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestCreateSubjectRequiresExistingBatch(t *testing.T) {
	svc := NewService(setupDB(t))

	_, err := svc.CreateSubject(42, "Mechanics")
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestContentURLValidation(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	batch, err := svc.CreateBatch("Physics-101", "")
	require.NoError(t, err)
	subject, err := svc.CreateSubject(batch.ID, "Mechanics")
	require.NoError(t, err)
	chapter, err := svc.CreateChapter(subject.ID, "Kinematics")
	require.NoError(t, err)

	var validation *apperr.ValidationError
	_, err = svc.CreateContent(chapter.ID, "VIDEO", "not-a-url", "", nil)
	assert.ErrorAs(t, err, &validation)

	_, err = svc.CreateContent(chapter.ID, "VIDEO", "ftp://example.com/v1", "", nil)
	assert.ErrorAs(t, err, &validation)

	_, err = svc.CreateContent(chapter.ID, "SLIDES", "https://example.com/v1", "", nil)
	assert.ErrorAs(t, err, &validation)

	item, err := svc.CreateContent(chapter.ID, "video", "https://example.com/v1", "intro video", nil)
	require.NoError(t, err)
	assert.Equal(t, catalogModel.ContentTypeVideo, item.Type)
}

func TestListOrderIsMostRecentFirst(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	batch, err := svc.CreateBatch("Physics-101", "")
	require.NoError(t, err)
	first, err := svc.CreateSubject(batch.ID, "Mechanics")
	require.NoError(t, err)
	second, err := svc.CreateSubject(batch.ID, "Optics")
	require.NoError(t, err)

	// sqlite timestamps have second precision; force distinct ordering keys
	require.NoError(t, db.Model(second).Update("created_at", first.CreatedAt.Add(1_000_000_000)).Error)

	subjects, err := svc.ListSubjects(batch.ID)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Optics", subjects[0].Name)
	assert.Equal(t, "Mechanics", subjects[1].Name)
}

func TestDeleteBatchCascades(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	batch, err := svc.CreateBatch("Physics-101", "")
	require.NoError(t, err)
	subject, err := svc.CreateSubject(batch.ID, "Mechanics")
	require.NoError(t, err)
	chapter, err := svc.CreateChapter(subject.ID, "Kinematics")
	require.NoError(t, err)
	_, err = svc.CreateContent(chapter.ID, "VIDEO", "https://example.com/v1", "", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBatch(batch.ID))

	// Nothing below the batch stays reachable through list operations.
	var notFound *apperr.NotFoundError
	_, err = svc.ListSubjects(batch.ID)
	assert.ErrorAs(t, err, &notFound)
	_, err = svc.ListChapters(subject.ID)
	assert.ErrorAs(t, err, &notFound)
	_, err = svc.ListContent(chapter.ID)
	assert.ErrorAs(t, err, &notFound)

	// And the rows themselves are flagged, not orphaned.
	var liveContent int64
	require.NoError(t, db.Model(&catalogModel.ContentItem{}).
		Where("is_deleted = ?", false).Count(&liveContent).Error)
	assert.Zero(t, liveContent)
}

func TestDeleteSubjectCascadesChaptersAndContent(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	batch, err := svc.CreateBatch("Physics-101", "")
	require.NoError(t, err)
	subject, err := svc.CreateSubject(batch.ID, "Mechanics")
	require.NoError(t, err)
	chapter, err := svc.CreateChapter(subject.ID, "Kinematics")
	require.NoError(t, err)
	_, err = svc.CreateContent(chapter.ID, "PDF", "https://example.com/notes.pdf", "", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSubject(subject.ID))

	// Batch survives, subtree does not.
	subjects, err := svc.ListSubjects(batch.ID)
	require.NoError(t, err)
	assert.Empty(t, subjects)

	var liveChapters int64
	require.NoError(t, db.Model(&catalogModel.Chapter{}).
		Where("is_deleted = ?", false).Count(&liveChapters).Error)
	assert.Zero(t, liveChapters)
}

func TestVisibleBatches(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	physics, err := svc.CreateBatch("Physics-101", "")
	require.NoError(t, err)
	chemistry, err := svc.CreateBatch("Chemistry-101", "")
	require.NoError(t, err)

	const studentID = 7

	// No approval yet: student sees nothing, admin sees everything.
	visible, err := svc.VisibleBatches(studentID, models.RoleStudent)
	require.NoError(t, err)
	assert.Empty(t, visible)

	visible, err = svc.VisibleBatches(1, models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	approveEnrollment(t, db, studentID, physics.ID)

	visible, err = svc.VisibleBatches(studentID, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, physics.ID, visible[0].ID)

	// Approval for one batch does not leak the other's children.
	_, err = svc.ListSubjectsVisible(studentID, models.RoleStudent, chemistry.ID)
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestVisibilityEnforcedDownTheHierarchy(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	batch, err := svc.CreateBatch("Physics-101", "")
	require.NoError(t, err)
	subject, err := svc.CreateSubject(batch.ID, "Mechanics")
	require.NoError(t, err)
	chapter, err := svc.CreateChapter(subject.ID, "Kinematics")
	require.NoError(t, err)
	_, err = svc.CreateContent(chapter.ID, "VIDEO", "https://example.com/v1", "", nil)
	require.NoError(t, err)

	const studentID = 7
	var notFound *apperr.NotFoundError

	_, err = svc.ListChaptersVisible(studentID, models.RoleStudent, subject.ID)
	assert.ErrorAs(t, err, &notFound)
	_, err = svc.ListContentVisible(studentID, models.RoleStudent, chapter.ID)
	assert.ErrorAs(t, err, &notFound)

	approveEnrollment(t, db, studentID, batch.ID)

	chapters, err := svc.ListChaptersVisible(studentID, models.RoleStudent, subject.ID)
	require.NoError(t, err)
	assert.Len(t, chapters, 1)
	items, err := svc.ListContentVisible(studentID, models.RoleStudent, chapter.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDeletedBatchNoLongerVisibleDespiteApproval(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	batch, err := svc.CreateBatch("Physics-101", "")
	require.NoError(t, err)

	const studentID = 7
	approveEnrollment(t, db, studentID, batch.ID)

	require.NoError(t, svc.DeleteBatch(batch.ID))

	visible, err := svc.VisibleBatches(studentID, models.RoleStudent)
	require.NoError(t, err)
	assert.Empty(t, visible)

	_, err = svc.ListSubjectsVisible(studentID, models.RoleStudent, batch.ID)
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestMutationsFireStaleHook(t *testing.T) {
	svc := NewService(setupDB(t))

	calls := 0
	svc.NotifyStale(func() { calls++ })

	batch, err := svc.CreateBatch("Physics-101", "")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	require.NoError(t, svc.DeleteBatch(batch.ID))
	assert.Equal(t, 2, calls)
}
