package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"commandcenter-backend/dashboard"
	"commandcenter-backend/models"
	"commandcenter-backend/repository"
	"commandcenter-backend/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrStoreNotSet   = errors.New("case store not set")
	ErrStorageNotSet = errors.New("blob storage not set")
)

// CaseService is the read/write façade the HTTP layer uses over the case store
type CaseService struct {
	store  *repository.CaseStore
	blobs  storage.Storage
	logger *zap.Logger
	now    func() time.Time
}

// CaseServiceOption is a functional option for CaseService
type CaseServiceOption func(*CaseService)

// WithCaseStore sets the case store
func WithCaseStore(store *repository.CaseStore) CaseServiceOption {
	return func(s *CaseService) {
		s.store = store
	}
}

// WithBlobStorage sets where uploaded documents are kept
func WithBlobStorage(blobs storage.Storage) CaseServiceOption {
	return func(s *CaseService) {
		s.blobs = blobs
	}
}

// WithCaseLogger sets the logger
func WithCaseLogger(logger *zap.Logger) CaseServiceOption {
	return func(s *CaseService) {
		s.logger = logger
	}
}

// WithCaseClock overrides the time source used for derived views
func WithCaseClock(now func() time.Time) CaseServiceOption {
	return func(s *CaseService) {
		s.now = now
	}
}

// NewCaseService creates a new case service
func NewCaseService(opts ...CaseServiceOption) *CaseService {
	s := &CaseService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Now returns the service clock
func (s *CaseService) Now() time.Time {
	return s.now()
}

// Dashboard computes the overview for a deadline window of windowDays
func (s *CaseService) Dashboard(windowDays int) (dashboard.Summary, error) {
	if s.store == nil {
		return dashboard.Summary{}, ErrStoreNotSet
	}
	return dashboard.Summarize(s.store.Snapshot(), s.now(), windowDays), nil
}

// PartyView is a party with its unread intel counters
type PartyView struct {
	models.Party
	UnreadCount          int `json:"unread_count"`
	ImportantUnreadCount int `json:"important_unread_count"`
}

func newPartyView(p models.Party) PartyView {
	return PartyView{
		Party:                p,
		UnreadCount:          dashboard.PartyUnreadCount(p),
		ImportantUnreadCount: dashboard.PartyImportantUnreadCount(p),
	}
}

// ListParties returns parties whose name or company contains query, case-insensitively
func (s *CaseService) ListParties(query string) ([]PartyView, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}
	query = strings.ToLower(strings.TrimSpace(query))

	out := []PartyView{}
	for _, p := range s.store.Parties() {
		if query != "" && !containsFold(p.Name, query) && (p.Company == nil || !containsFold(*p.Company, query)) {
			continue
		}
		out = append(out, newPartyView(p))
	}
	return out, nil
}

// GetParty returns one party
func (s *CaseService) GetParty(id string) (PartyView, error) {
	if s.store == nil {
		return PartyView{}, ErrStoreNotSet
	}
	p, err := s.store.Party(id)
	if err != nil {
		return PartyView{}, err
	}
	return newPartyView(p), nil
}

// CreateParty adds a party
func (s *CaseService) CreateParty(p models.Party) (PartyView, error) {
	if s.store == nil {
		return PartyView{}, ErrStoreNotSet
	}
	created, err := s.store.AddParty(p)
	if err != nil {
		return PartyView{}, err
	}
	s.logger.Info("party added", zap.String("party_id", created.ID), zap.String("role", string(created.Role)))
	return newPartyView(created), nil
}

// AddIntel records a new intel update on a party
func (s *CaseService) AddIntel(partyID string, u models.IntelUpdate) (models.IntelUpdate, error) {
	if s.store == nil {
		return models.IntelUpdate{}, ErrStoreNotSet
	}
	return s.store.AddIntelUpdate(partyID, u)
}

// MarkIntelRead flags an intel update as read
func (s *CaseService) MarkIntelRead(partyID, intelID string) error {
	if s.store == nil {
		return ErrStoreNotSet
	}
	return s.store.MarkIntelRead(partyID, intelID)
}

// TimelineFilter narrows the timeline listing
type TimelineFilter struct {
	Type          models.EventType
	ShowCompleted bool
}

// TimelineEntry is an event with its label relative to now
type TimelineEntry struct {
	models.TimelineEvent
	RelativeLabel string `json:"relative_label"`
}

// ListTimeline returns events in ascending date order
func (s *CaseService) ListTimeline(f TimelineFilter) ([]TimelineEntry, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}
	now := s.now()
	events := s.store.TimelineEvents()
	dashboard.SortTimeline(events)

	out := []TimelineEntry{}
	for _, e := range events {
		if f.Type != "" && e.EventType != f.Type {
			continue
		}
		if e.Completed && !f.ShowCompleted {
			continue
		}
		out = append(out, TimelineEntry{TimelineEvent: e, RelativeLabel: dashboard.RelativeDayLabel(e.EventDate, now)})
	}
	return out, nil
}

// UpcomingDeadlines returns open events due within windowDays
func (s *CaseService) UpcomingDeadlines(windowDays int) ([]models.TimelineEvent, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}
	return dashboard.UpcomingDeadlines(s.store.TimelineEvents(), s.now(), windowDays), nil
}

// CreateTimelineEvent adds an event
func (s *CaseService) CreateTimelineEvent(e models.TimelineEvent) (models.TimelineEvent, error) {
	if s.store == nil {
		return models.TimelineEvent{}, ErrStoreNotSet
	}
	return s.store.AddTimelineEvent(e)
}

// ToggleTimelineEvent flips an event's completed flag
func (s *CaseService) ToggleTimelineEvent(id string) (models.TimelineEvent, error) {
	if s.store == nil {
		return models.TimelineEvent{}, ErrStoreNotSet
	}
	return s.store.ToggleEventCompleted(id)
}

// FileFilter narrows the document library listing
type FileFilter struct {
	Query    string
	Category models.FileCategory
}

// FileView is a file record with a display size
type FileView struct {
	models.ProjectFile
	SizeLabel string `json:"size_label"`
}

func newFileView(f models.ProjectFile) FileView {
	return FileView{ProjectFile: f, SizeLabel: dashboard.FormatFileSize(f.Size)}
}

// ListFiles returns files matching the filter, newest upload first
func (s *CaseService) ListFiles(f FileFilter) ([]FileView, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	files := s.store.Files()
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})

	out := []FileView{}
	for _, file := range files {
		if f.Category != "" && file.Category != f.Category {
			continue
		}
		if query != "" && !containsFold(file.OriginalName, query) && !containsFold(file.Filename, query) &&
			(file.Notes == nil || !containsFold(*file.Notes, query)) {
			continue
		}
		out = append(out, newFileView(file))
	}
	return out, nil
}

// GetFile returns one file record
func (s *CaseService) GetFile(id string) (FileView, error) {
	if s.store == nil {
		return FileView{}, ErrStoreNotSet
	}
	f, err := s.store.File(id)
	if err != nil {
		return FileView{}, err
	}
	return newFileView(f), nil
}

// UploadFileRequest represents a document upload
type UploadFileRequest struct {
	Filename string
	MimeType string
	Size     int64
	Category models.FileCategory
	Notes    *string
	Body     io.Reader
}

// UploadFile stores the blob and records it in the library
func (s *CaseService) UploadFile(ctx context.Context, req UploadFileRequest) (FileView, error) {
	if s.store == nil {
		return FileView{}, ErrStoreNotSet
	}
	if s.blobs == nil {
		return FileView{}, ErrStorageNotSet
	}

	fileID := uuid.NewString()
	storagePath, err := s.blobs.Upload(ctx, fileID, req.Filename, req.Body)
	if err != nil {
		return FileView{}, fmt.Errorf("failed to store blob: %w", err)
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = storage.ContentType(req.Filename)
	}

	record, err := s.store.AddFile(models.ProjectFile{
		ID:           fileID,
		Filename:     storagePath[strings.LastIndex(storagePath, "/")+1:],
		OriginalName: req.Filename,
		MimeType:     mimeType,
		Size:         req.Size,
		Category:     req.Category,
		URL:          "/api/files/" + fileID + "/download",
		StoragePath:  storagePath,
		Notes:        req.Notes,
	})
	if err != nil {
		if delErr := s.blobs.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to clean up blob", zap.String("path", storagePath), zap.Error(delErr))
		}
		return FileView{}, err
	}

	s.logger.Info("file uploaded",
		zap.String("file_id", record.ID),
		zap.String("category", string(record.Category)),
		zap.Int64("size", record.Size))
	return newFileView(record), nil
}

// OpenFile returns the record and a reader over its blob. Callers close the reader.
func (s *CaseService) OpenFile(ctx context.Context, id string) (models.ProjectFile, io.ReadCloser, error) {
	if s.store == nil {
		return models.ProjectFile{}, nil, ErrStoreNotSet
	}
	if s.blobs == nil {
		return models.ProjectFile{}, nil, ErrStorageNotSet
	}

	f, err := s.store.File(id)
	if err != nil {
		return models.ProjectFile{}, nil, err
	}
	if f.StoragePath == "" {
		return models.ProjectFile{}, nil, fmt.Errorf("file %s has no stored content: %w", id, storage.ErrNotFound)
	}

	rc, err := s.blobs.Download(ctx, f.StoragePath)
	if err != nil {
		return models.ProjectFile{}, nil, err
	}
	return f, rc, nil
}

// SetFileNotes replaces a file's notes
func (s *CaseService) SetFileNotes(id, notes string) (FileView, error) {
	if s.store == nil {
		return FileView{}, ErrStoreNotSet
	}
	f, err := s.store.SetFileNotes(id, notes)
	if err != nil {
		return FileView{}, err
	}
	return newFileView(f), nil
}

// DeleteFile removes the record, then its blob
func (s *CaseService) DeleteFile(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrStoreNotSet
	}
	f, err := s.store.DeleteFile(id)
	if err != nil {
		return err
	}
	if f.StoragePath != "" && s.blobs != nil {
		if err := s.blobs.Delete(ctx, f.StoragePath); err != nil {
			// The record is already gone; an orphaned blob is only logged.
			s.logger.Warn("failed to delete blob", zap.String("file_id", id), zap.Error(err))
		}
	}
	return nil
}

// NoteFilter narrows the notes listing
type NoteFilter struct {
	Category   models.NoteCategory
	Query      string
	EntityType string
	EntityID   string
}

// ListNotes returns matching notes, pinned first, otherwise newest first
func (s *CaseService) ListNotes(f NoteFilter) ([]models.Note, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := []models.Note{}
	for _, n := range s.store.Notes() {
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		if f.EntityType != "" && n.EntityType != f.EntityType {
			continue
		}
		if f.EntityID != "" && n.EntityID != f.EntityID {
			continue
		}
		if query != "" && !containsFold(n.Content, query) {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pinned && !out[j].Pinned
	})
	return out, nil
}

// CreateNote adds a note
func (s *CaseService) CreateNote(n models.Note) (models.Note, error) {
	if s.store == nil {
		return models.Note{}, ErrStoreNotSet
	}
	return s.store.AddNote(n)
}

// ToggleNotePinned flips a note's pinned flag
func (s *CaseService) ToggleNotePinned(id string) (models.Note, error) {
	if s.store == nil {
		return models.Note{}, ErrStoreNotSet
	}
	return s.store.ToggleNotePinned(id)
}

// DeleteNote removes a note
func (s *CaseService) DeleteNote(id string) error {
	if s.store == nil {
		return ErrStoreNotSet
	}
	return s.store.DeleteNote(id)
}

// AlertFeed returns the active alerts, sorted and labelled
func (s *CaseService) AlertFeed() ([]dashboard.AlertView, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}
	return dashboard.AlertFeed(s.store.Alerts(), s.now()), nil
}

// CreateAlert adds an alert
func (s *CaseService) CreateAlert(a models.Alert) (models.Alert, error) {
	if s.store == nil {
		return models.Alert{}, ErrStoreNotSet
	}
	return s.store.AddAlert(a)
}

// DismissAlert moves an alert to DISMISSED
func (s *CaseService) DismissAlert(id string) (models.Alert, error) {
	if s.store == nil {
		return models.Alert{}, ErrStoreNotSet
	}
	return s.store.DismissAlert(id)
}

// PurgeDismissedAlerts drops dismissed alerts and returns how many went
func (s *CaseService) PurgeDismissedAlerts() (int, error) {
	if s.store == nil {
		return 0, ErrStoreNotSet
	}
	n := s.store.PurgeDismissedAlerts()
	if n > 0 {
		s.logger.Info("dismissed alerts purged", zap.Int("count", n))
	}
	return n, nil
}

// Milestones returns the domestication checklist
func (s *CaseService) Milestones() ([]models.Milestone, error) {
	if s.store == nil {
		return nil, ErrStoreNotSet
	}
	return s.store.Milestones(), nil
}

// ToggleMilestone flips one checklist step
func (s *CaseService) ToggleMilestone(step string) (models.Milestone, error) {
	if s.store == nil {
		return models.Milestone{}, ErrStoreNotSet
	}
	return s.store.ToggleMilestone(step)
}

// containsFold reports whether s contains lowerQuery, ignoring case
func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
