// Package catalog implements the content catalog store: the
// Batch -> Subject -> Chapter -> ContentItem hierarchy with uniform
// create/list/delete per level, atomic cascading deletes and data-layer
// visibility checks for student callers.
package catalog

import (
	"net/url"
	"strings"

	"lms/apperr"
	"lms/models"
	"lms/models/catalog"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns all reads and writes against the catalog tables. Mutations
// fire the stale hook so per-session navigators know their view is out of
// date.
type Service struct {
	db    *gorm.DB
	stale func()
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// NotifyStale registers a hook invoked after every successful mutation.
func (s *Service) NotifyStale(fn func()) {
	s.stale = fn
}

func (s *Service) markStale() {
	if s.stale != nil {
		s.stale()
	}
}

// ---- Batch ----

func (s *Service) CreateBatch(name, description string) (*catalog.Batch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewValidation("name", "Name is required!")
	}

	batch := catalog.Batch{Name: name, Description: strings.TrimSpace(description)}
	if err := s.db.Create(&batch).Error; err != nil {
		return nil, err
	}
	s.markStale()
	return &batch, nil
}

// ListBatches returns every non-deleted batch, most recent first.
func (s *Service) ListBatches() ([]catalog.Batch, error) {
	var batches []catalog.Batch
	err := s.db.Where("is_deleted = ?", false).Order("created_at desc").Find(&batches).Error
	return batches, err
}

// VisibleBatches is the authorization choke-point for batch listing: admins
// see everything, students only batches with an approved enrollment request.
func (s *Service) VisibleBatches(userID uint, role string) ([]catalog.Batch, error) {
	if role == models.RoleAdmin {
		return s.ListBatches()
	}

	var batches []catalog.Batch
	err := s.db.
		Joins("JOIN enrollment_requests ON enrollment_requests.batch_id = batches.id").
		Where("enrollment_requests.user_id = ? AND enrollment_requests.status = ? AND enrollment_requests.is_deleted = ?",
			userID, catalog.RequestApproved, false).
		Where("batches.is_deleted = ?", false).
		Order("batches.created_at desc").
		Find(&batches).Error
	return batches, err
}

// EnsureBatchVisible guards every student-facing listing below a batch.
// An invisible batch reports NotFound rather than Forbidden so students
// cannot probe for batches they were never approved into.
func (s *Service) EnsureBatchVisible(userID uint, role string, batchID uint) error {
	if _, err := s.batchByID(batchID); err != nil {
		return err
	}
	if role == models.RoleAdmin {
		return nil
	}

	var count int64
	err := s.db.Model(&catalog.EnrollmentRequest{}).
		Where("user_id = ? AND batch_id = ? AND status = ? AND is_deleted = ?",
			userID, batchID, catalog.RequestApproved, false).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return &apperr.NotFoundError{Entity: "batch", ID: batchID}
	}
	return nil
}

// DeleteBatch removes the batch and every subject, chapter and content item
// beneath it in one transaction.
func (s *Service) DeleteBatch(id uint) error {
	if _, err := s.batchByID(id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&catalog.Batch{}).Where("id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		subjectIDs, err := childIDs(tx, &catalog.Subject{}, "batch_id", []uint{id})
		if err != nil {
			return err
		}
		return deleteSubjectTrees(tx, subjectIDs)
	})
	if err != nil {
		return &apperr.CascadeError{Entity: "batch", ID: id, Err: err}
	}
	s.markStale()
	return nil
}

// ---- Subject ----

func (s *Service) CreateSubject(batchID uint, name string) (*catalog.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewValidation("name", "Name is required!")
	}
	if _, err := s.batchByID(batchID); err != nil {
		return nil, err
	}

	subject := catalog.Subject{BatchID: batchID, Name: name}
	if err := s.db.Create(&subject).Error; err != nil {
		return nil, err
	}
	s.markStale()
	return &subject, nil
}

func (s *Service) ListSubjects(batchID uint) ([]catalog.Subject, error) {
	if _, err := s.batchByID(batchID); err != nil {
		return nil, err
	}
	var subjects []catalog.Subject
	err := s.db.Where("batch_id = ? AND is_deleted = ?", batchID, false).
		Order("created_at desc").Find(&subjects).Error
	return subjects, err
}

// ListSubjectsVisible lists a batch's subjects after the visibility check.
func (s *Service) ListSubjectsVisible(userID uint, role string, batchID uint) ([]catalog.Subject, error) {
	if err := s.EnsureBatchVisible(userID, role, batchID); err != nil {
		return nil, err
	}
	return s.ListSubjects(batchID)
}

func (s *Service) DeleteSubject(id uint) error {
	if _, err := s.subjectByID(id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return deleteSubjectTrees(tx, []uint{id})
	})
	if err != nil {
		return &apperr.CascadeError{Entity: "subject", ID: id, Err: err}
	}
	s.markStale()
	return nil
}

// ---- Chapter ----

func (s *Service) CreateChapter(subjectID uint, name string) (*catalog.Chapter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewValidation("name", "Name is required!")
	}
	if _, err := s.subjectByID(subjectID); err != nil {
		return nil, err
	}

	chapter := catalog.Chapter{SubjectID: subjectID, Name: name}
	if err := s.db.Create(&chapter).Error; err != nil {
		return nil, err
	}
	s.markStale()
	return &chapter, nil
}

func (s *Service) ListChapters(subjectID uint) ([]catalog.Chapter, error) {
	if _, err := s.subjectByID(subjectID); err != nil {
		return nil, err
	}
	var chapters []catalog.Chapter
	err := s.db.Where("subject_id = ? AND is_deleted = ?", subjectID, false).
		Order("created_at desc").Find(&chapters).Error
	return chapters, err
}

// ListChaptersVisible resolves the subject's batch and applies the
// visibility check before listing.
func (s *Service) ListChaptersVisible(userID uint, role string, subjectID uint) ([]catalog.Chapter, error) {
	subject, err := s.subjectByID(subjectID)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureBatchVisible(userID, role, subject.BatchID); err != nil {
		return nil, err
	}
	return s.ListChapters(subjectID)
}

func (s *Service) DeleteChapter(id uint) error {
	if _, err := s.chapterByID(id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return deleteChapterTrees(tx, []uint{id})
	})
	if err != nil {
		return &apperr.CascadeError{Entity: "chapter", ID: id, Err: err}
	}
	s.markStale()
	return nil
}

// ---- ContentItem ----

func (s *Service) CreateContent(chapterID uint, contentType, rawURL, description string, meta datatypes.JSON) (*catalog.ContentItem, error) {
	contentType = strings.ToUpper(strings.TrimSpace(contentType))
	rawURL = strings.TrimSpace(rawURL)

	if contentType != catalog.ContentTypeVideo && contentType != catalog.ContentTypePDF {
		return nil, apperr.NewValidation("type", "Type must be VIDEO or PDF!")
	}
	if rawURL == "" {
		return nil, apperr.NewValidation("url", "URL is required!")
	}
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, apperr.NewValidation("url", "URL must be an absolute http(s) URI!")
	}
	if _, err := s.chapterByID(chapterID); err != nil {
		return nil, err
	}

	item := catalog.ContentItem{
		ChapterID:   chapterID,
		Type:        contentType,
		URL:         rawURL,
		Description: strings.TrimSpace(description),
		Meta:        meta,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	s.markStale()
	return &item, nil
}

func (s *Service) ListContent(chapterID uint) ([]catalog.ContentItem, error) {
	if _, err := s.chapterByID(chapterID); err != nil {
		return nil, err
	}
	var items []catalog.ContentItem
	err := s.db.Where("chapter_id = ? AND is_deleted = ?", chapterID, false).
		Order("created_at desc").Find(&items).Error
	return items, err
}

// ListContentVisible walks chapter -> subject -> batch and applies the
// visibility check before listing.
func (s *Service) ListContentVisible(userID uint, role string, chapterID uint) ([]catalog.ContentItem, error) {
	chapter, err := s.chapterByID(chapterID)
	if err != nil {
		return nil, err
	}
	subject, err := s.subjectByID(chapter.SubjectID)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureBatchVisible(userID, role, subject.BatchID); err != nil {
		return nil, err
	}
	return s.ListContent(chapterID)
}

func (s *Service) DeleteContent(id uint) error {
	var item catalog.ContentItem
	if err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&item).Error; err != nil {
		return &apperr.NotFoundError{Entity: "content", ID: id}
	}

	if err := s.db.Model(&catalog.ContentItem{}).Where("id = ?", id).
		Update("is_deleted", true).Error; err != nil {
		return err
	}
	s.markStale()
	return nil
}

// ---- lookups ----

// GetSubject returns a subject by id for callers that need its batch.
func (s *Service) GetSubject(id uint) (*catalog.Subject, error) {
	return s.subjectByID(id)
}

// GetChapter returns a chapter by id for callers that need its subject.
func (s *Service) GetChapter(id uint) (*catalog.Chapter, error) {
	return s.chapterByID(id)
}

func (s *Service) batchByID(id uint) (*catalog.Batch, error) {
	var batch catalog.Batch
	if err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&batch).Error; err != nil {
		return nil, &apperr.NotFoundError{Entity: "batch", ID: id}
	}
	return &batch, nil
}

func (s *Service) subjectByID(id uint) (*catalog.Subject, error) {
	var subject catalog.Subject
	if err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&subject).Error; err != nil {
		return nil, &apperr.NotFoundError{Entity: "subject", ID: id}
	}
	return &subject, nil
}

func (s *Service) chapterByID(id uint) (*catalog.Chapter, error) {
	var chapter catalog.Chapter
	if err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&chapter).Error; err != nil {
		return nil, &apperr.NotFoundError{Entity: "chapter", ID: id}
	}
	return &chapter, nil
}

// ---- cascade helpers (run inside a transaction) ----

func childIDs(tx *gorm.DB, model interface{}, fk string, parentIDs []uint) ([]uint, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := tx.Model(model).
		Where(fk+" IN ? AND is_deleted = ?", parentIDs, false).
		Pluck("id", &ids).Error
	return ids, err
}

func deleteSubjectTrees(tx *gorm.DB, subjectIDs []uint) error {
	if len(subjectIDs) == 0 {
		return nil
	}
	if err := tx.Model(&catalog.Subject{}).Where("id IN ?", subjectIDs).
		Update("is_deleted", true).Error; err != nil {
		return err
	}
	chapterIDs, err := childIDs(tx, &catalog.Chapter{}, "subject_id", subjectIDs)
	if err != nil {
		return err
	}
	return deleteChapterTrees(tx, chapterIDs)
}

func deleteChapterTrees(tx *gorm.DB, chapterIDs []uint) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	if err := tx.Model(&catalog.Chapter{}).Where("id IN ?", chapterIDs).
		Update("is_deleted", true).Error; err != nil {
		return err
	}
	return tx.Model(&catalog.ContentItem{}).Where("chapter_id IN ? AND is_deleted = ?", chapterIDs, false).
		Update("is_deleted", true).Error
}
