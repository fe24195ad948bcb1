package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"commandcenter-backend/models"
	"commandcenter-backend/repository"
	"commandcenter-backend/seed"
	"commandcenter-backend/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededNow sits between the demo data's past and upcoming events
var seededNow = time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)

func newSeededService(t *testing.T) (*CaseService, *storage.MemoryStorage) {
	t.Helper()
	snap, err := seed.Demo()
	require.NoError(t, err)

	clock := func() time.Time { return seededNow }
	blobs := storage.NewMemoryStorage()
	svc := NewCaseService(
		WithCaseStore(repository.NewCaseStore(snap, repository.WithClock(clock))),
		WithBlobStorage(blobs),
		WithCaseClock(clock),
	)
	return svc, blobs
}

func TestCaseService_RequiresStore(t *testing.T) {
	svc := NewCaseService()
	_, err := svc.Dashboard(7)
	assert.ErrorIs(t, err, ErrStoreNotSet)
	_, err = svc.ListParties("")
	assert.ErrorIs(t, err, ErrStoreNotSet)
}

func TestCaseService_Dashboard(t *testing.T) {
	svc, _ := newSeededService(t)

	summary, err := svc.Dashboard(7)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.UnreadIntel)
	assert.Equal(t, 3, summary.UrgentAlerts)
	assert.Equal(t, 6, summary.NotificationTotal)
	assert.Equal(t, "6", summary.Badge)
	require.Len(t, summary.UpcomingDeadlines, 1)
	assert.Equal(t, "evt-4", summary.UpcomingDeadlines[0].ID)
	assert.Equal(t, 4, summary.MilestonesTotal)
	assert.False(t, summary.CollectionUnlocked)
}

func TestCaseService_DismissLowersNotificationTotal(t *testing.T) {
	svc, _ := newSeededService(t)

	_, err := svc.DismissAlert("alert-1")
	require.NoError(t, err)
	require.NoError(t, svc.MarkIntelRead("1", "intel-1"))

	summary, err := svc.Dashboard(7)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.UrgentAlerts)
	assert.Equal(t, 2, summary.UnreadIntel)
	assert.Equal(t, 4, summary.NotificationTotal)

	feed, err := svc.AlertFeed()
	require.NoError(t, err)
	for _, a := range feed {
		assert.NotEqual(t, "alert-1", a.ID)
	}
}

func TestCaseService_ListParties(t *testing.T) {
	svc, _ := newSeededService(t)

	all, err := svc.ListParties("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCompany, err := svc.ListParties("wilson &")
	require.NoError(t, err)
	require.Len(t, byCompany, 1)
	assert.Equal(t, "James Wilson", byCompany[0].Name)
	assert.Equal(t, 1, byCompany[0].UnreadCount)
	assert.Equal(t, 1, byCompany[0].ImportantUnreadCount)

	none, err := svc.ListParties("nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCaseService_ListTimeline(t *testing.T) {
	svc, _ := newSeededService(t)

	open, err := svc.ListTimeline(TimelineFilter{})
	require.NoError(t, err)
	require.Len(t, open, 4)
	assert.Equal(t, "evt-4", open[0].ID)
	assert.Equal(t, "In 4 days", open[0].RelativeLabel)
	assert.Equal(t, "In 3 weeks", open[2].RelativeLabel)

	all, err := svc.ListTimeline(TimelineFilter{ShowCompleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 7)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].EventDate.Before(all[i-1].EventDate))
	}

	hearings, err := svc.ListTimeline(TimelineFilter{Type: models.EventHearing, ShowCompleted: true})
	require.NoError(t, err)
	require.Len(t, hearings, 1)
	assert.Equal(t, "evt-5", hearings[0].ID)
}

func TestCaseService_Files(t *testing.T) {
	svc, blobs := newSeededService(t)
	ctx := context.Background()

	pdfs, err := svc.ListFiles(FileFilter{Query: "asset search report"})
	require.NoError(t, err)
	require.Len(t, pdfs, 1)
	assert.Equal(t, "1.1 MB", pdfs[0].SizeLabel)

	filings, err := svc.ListFiles(FileFilter{Category: models.CategoryCourtFiling})
	require.NoError(t, err)
	assert.Len(t, filings, 2)

	uploaded, err := svc.UploadFile(ctx, UploadFileRequest{
		Filename: "Writ Application.pdf",
		Size:     5,
		Category: models.CategoryCourtFiling,
		Body:     strings.NewReader("%PDF-"),
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", uploaded.MimeType)
	assert.Equal(t, "Writ Application.pdf", uploaded.OriginalName)
	assert.Equal(t, seededNow, uploaded.UploadedAt)
	assert.Equal(t, "/api/files/"+uploaded.ID+"/download", uploaded.URL)

	rec, rc, err := svc.OpenFile(ctx, uploaded.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(body))

	newest, err := svc.ListFiles(FileFilter{})
	require.NoError(t, err)
	assert.Equal(t, uploaded.ID, newest[0].ID)

	noted, err := svc.SetFileNotes(uploaded.ID, "filed in TN")
	require.NoError(t, err)
	require.NotNil(t, noted.Notes)
	assert.Equal(t, "filed in TN", *noted.Notes)

	require.NoError(t, svc.DeleteFile(ctx, uploaded.ID))
	_, err = blobs.Download(ctx, rec.StoragePath)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = svc.GetFile(uploaded.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCaseService_UploadRejectedCleansUpBlob(t *testing.T) {
	svc, blobs := newSeededService(t)

	_, err := svc.UploadFile(context.Background(), UploadFileRequest{
		Filename: "x.pdf",
		Category: "BOGUS",
		Body:     bytes.NewReader([]byte("x")),
	})
	assert.ErrorIs(t, err, repository.ErrInvalidValue)

	files, err := svc.ListFiles(FileFilter{Query: "x.pdf"})
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Zero(t, blobs.Len())
}

func TestCaseService_OpenSeededFileHasNoContent(t *testing.T) {
	svc, _ := newSeededService(t)
	_, _, err := svc.OpenFile(context.Background(), "file-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCaseService_ListNotes(t *testing.T) {
	svc, _ := newSeededService(t)

	created, err := svc.CreateNote(models.Note{Content: "Call TN clerk about filing fee"})
	require.NoError(t, err)
	assert.Equal(t, models.GeneralEntity, created.EntityType)

	notes, err := svc.ListNotes(NoteFilter{})
	require.NoError(t, err)
	require.Len(t, notes, 6)
	assert.True(t, notes[0].Pinned)
	assert.True(t, notes[1].Pinned)
	assert.Equal(t, created.ID, notes[2].ID, "newest unpinned note follows the pinned ones")

	party1, err := svc.ListNotes(NoteFilter{EntityType: "party", EntityID: "1"})
	require.NoError(t, err)
	require.Len(t, party1, 1)
	assert.Equal(t, "note-1", party1[0].ID)

	legal, err := svc.ListNotes(NoteFilter{Category: models.NoteLegal, Query: "FRAUDULENT"})
	require.NoError(t, err)
	require.Len(t, legal, 1)
	assert.Equal(t, "note-4", legal[0].ID)
}

func TestCaseService_PurgeDismissedAlerts(t *testing.T) {
	svc, _ := newSeededService(t)

	_, err := svc.DismissAlert("alert-5")
	require.NoError(t, err)
	n, err := svc.PurgeDismissedAlerts()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.DismissAlert("alert-5")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCaseService_ToggleMilestone(t *testing.T) {
	svc, _ := newSeededService(t)

	m, err := svc.ToggleMilestone("WRIT_ISSUED")
	require.NoError(t, err)
	assert.True(t, m.Completed)

	summary, err := svc.Dashboard(7)
	require.NoError(t, err)
	assert.Equal(t, 25, summary.ProgressPercent)
}
