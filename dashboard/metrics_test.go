package dashboard

import (
	"math"
	"testing"
	"time"

	"commandcenter-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2025, time.January, 1, 9, 30, 0, 0, time.UTC)

func intel(id string, read bool) models.IntelUpdate {
	return models.IntelUpdate{ID: id, Source: models.SourceManual, Title: id, Read: read}
}

func event(id string, offset time.Duration, completed bool) models.TimelineEvent {
	return models.TimelineEvent{
		ID:        id,
		Title:     id,
		EventType: models.EventDeadline,
		EventDate: refNow.Add(offset),
		Completed: completed,
		Priority:  models.PriorityNormal,
	}
}

func TestUnreadIntelCount(t *testing.T) {
	t.Run("empty input is zero", func(t *testing.T) {
		assert.Equal(t, 0, UnreadIntelCount(nil))
	})

	parties := []models.Party{
		{ID: "1", IntelUpdates: []models.IntelUpdate{intel("a", false), intel("b", false), intel("c", true)}},
		{ID: "2", IntelUpdates: []models.IntelUpdate{intel("d", false)}},
		{ID: "3"},
	}

	t.Run("sums unread across parties", func(t *testing.T) {
		assert.Equal(t, 3, UnreadIntelCount(parties))
	})

	t.Run("adding a read update does not change the count", func(t *testing.T) {
		withRead := []models.Party{parties[0].Clone(), parties[1].Clone(), parties[2].Clone()}
		withRead[2].IntelUpdates = append(withRead[2].IntelUpdates, intel("e", true))
		assert.Equal(t, UnreadIntelCount(parties), UnreadIntelCount(withRead))
	})

	t.Run("marking one read decreases by exactly one", func(t *testing.T) {
		marked := []models.Party{parties[0].Clone(), parties[1].Clone(), parties[2].Clone()}
		marked[0].IntelUpdates[0].Read = true
		assert.Equal(t, UnreadIntelCount(parties)-1, UnreadIntelCount(marked))
	})

	t.Run("important unread per party", func(t *testing.T) {
		p := models.Party{IntelUpdates: []models.IntelUpdate{
			{ID: "x", Important: true},
			{ID: "y", Important: true, Read: true},
			{ID: "z"},
		}}
		assert.Equal(t, 2, PartyUnreadCount(p))
		assert.Equal(t, 1, PartyImportantUnreadCount(p))
	})
}

func TestUpcomingDeadlines(t *testing.T) {
	day := 24 * time.Hour
	events := []models.TimelineEvent{
		event("past", -time.Hour, false),
		event("in-5d", 5*day, false),
		event("in-2d", 2*day, false),
		event("done", day, true),
		event("in-10d", 10*day, false),
		event("now", 0, false),
		event("edge-7d", 7*day, false),
	}

	t.Run("filters and sorts ascending", func(t *testing.T) {
		got := UpcomingDeadlines(events, refNow, 7)
		ids := make([]string, len(got))
		for i, e := range got {
			ids[i] = e.ID
			assert.False(t, e.Completed)
		}
		assert.Equal(t, []string{"now", "in-2d", "in-5d", "edge-7d"}, ids)
	})

	t.Run("non-positive window is empty", func(t *testing.T) {
		assert.Empty(t, UpcomingDeadlines(events, refNow, 0))
		assert.Empty(t, UpcomingDeadlines(events, refNow, -3))
		assert.NotNil(t, UpcomingDeadlines(events, refNow, 0))
	})

	t.Run("wider window is a superset", func(t *testing.T) {
		narrow := UpcomingDeadlines(events, refNow, 3)
		wide := UpcomingDeadlines(events, refNow, 30)
		wideIDs := map[string]bool{}
		for _, e := range wide {
			wideIDs[e.ID] = true
		}
		for _, e := range narrow {
			assert.True(t, wideIDs[e.ID], "missing %s", e.ID)
		}
		assert.Len(t, wide, 5)
	})

	t.Run("huge windows clamp instead of overflowing", func(t *testing.T) {
		week := UpcomingDeadlines(events, refNow, 7)
		for _, days := range []int{MaxWindowDays, MaxWindowDays + 1, 1 << 40, math.MaxInt} {
			got := UpcomingDeadlines(events, refNow, days)
			ids := map[string]bool{}
			for _, e := range got {
				ids[e.ID] = true
			}
			for _, e := range week {
				assert.True(t, ids[e.ID], "window %d missing %s", days, e.ID)
			}
			assert.Len(t, got, 5, "window %d", days)
		}
	})

	t.Run("result is a fresh slice", func(t *testing.T) {
		got := UpcomingDeadlines(events, refNow, 7)
		require.NotEmpty(t, got)
		got[0].Title = "changed"
		assert.Equal(t, "now", events[5].Title)
	})
}

func TestUrgentAlertCount(t *testing.T) {
	alerts := []models.Alert{
		{ID: "1", Priority: models.PriorityUrgent},
		{ID: "2", Priority: models.PriorityHigh},
		{ID: "3", Priority: models.PriorityHigh, Dismissed: true},
		{ID: "4", Priority: models.PriorityNormal},
		{ID: "5", Priority: models.PriorityLow},
	}
	assert.Equal(t, 2, UrgentAlertCount(alerts))
	assert.Equal(t, 0, UrgentAlertCount(nil))
}

func TestDomesticationProgress(t *testing.T) {
	t.Run("empty checklist is zero not NaN", func(t *testing.T) {
		assert.Equal(t, 0.0, DomesticationProgress(nil))
		assert.Equal(t, 0, ProgressPercent(nil))
		assert.False(t, CollectionUnlocked(nil))
	})

	t.Run("half complete", func(t *testing.T) {
		ms := []models.Milestone{
			{Step: "A", Completed: true},
			{Step: "B", Completed: true},
			{Step: "C"},
			{Step: "D"},
		}
		assert.Equal(t, 0.5, DomesticationProgress(ms))
		assert.Equal(t, 50, ProgressPercent(ms))
		assert.False(t, CollectionUnlocked(ms))
	})

	t.Run("all complete unlocks collection", func(t *testing.T) {
		ms := []models.Milestone{{Step: "A", Completed: true}, {Step: "B", Completed: true}, {Step: "C", Completed: true}}
		assert.Equal(t, 1.0, DomesticationProgress(ms))
		assert.Equal(t, 100, ProgressPercent(ms))
		assert.True(t, CollectionUnlocked(ms))
	})

	t.Run("percent rounds", func(t *testing.T) {
		ms := []models.Milestone{{Step: "A", Completed: true}, {Step: "B"}, {Step: "C"}}
		assert.Equal(t, 33, ProgressPercent(ms))
	})
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{2048, "2.0 KB"},
		{245000, "239.3 KB"},
		{1048575, "1024.0 KB"},
		{5242880, "5.0 MB"},
		{1200000, "1.1 MB"},
		{-10, "0 B"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileSize(tt.bytes))
		})
	}
}

func TestSplitTimeline(t *testing.T) {
	day := 24 * time.Hour
	events := []models.TimelineEvent{
		event("b-past", -2*day, true),
		event("c-future", 3*day, false),
		event("a-past", -10*day, true),
		event("d-future", day, false),
	}

	future, past := SplitTimeline(events, refNow)
	require.Len(t, future, 2)
	require.Len(t, past, 2)
	assert.Equal(t, "d-future", future[0].ID)
	assert.Equal(t, "c-future", future[1].ID)
	assert.Equal(t, "b-past", past[0].ID)
	assert.Equal(t, "a-past", past[1].ID)
}

func TestTimelineStats(t *testing.T) {
	events := []models.TimelineEvent{
		{ID: "1", Priority: models.PriorityUrgent},
		{ID: "2", Priority: models.PriorityUrgent, Completed: true},
		{ID: "3", EventType: models.EventHearing},
		{ID: "4", EventType: models.EventHearing, Completed: true},
	}
	assert.Equal(t, 1, OpenUrgentEventCount(events))
	assert.Equal(t, 1, PendingHearingCount(events))
}
