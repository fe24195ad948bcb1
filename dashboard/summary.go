package dashboard

import (
	"time"

	"commandcenter-backend/models"
)

// DefaultDeadlineWindow is the number of days the overview looks ahead
const DefaultDeadlineWindow = 7

// Summary is the overview tab's aggregate view of a snapshot
type Summary struct {
	UnreadIntel           int                    `json:"unread_intel"`
	UrgentAlerts          int                    `json:"urgent_alerts"`
	NotificationTotal     int                    `json:"notification_total"`
	Badge                 string                 `json:"badge"`
	UpcomingDeadlines     []models.TimelineEvent `json:"upcoming_deadlines"`
	DeadlineWindowDays    int                    `json:"deadline_window_days"`
	DomesticationProgress float64                `json:"domestication_progress"`
	ProgressPercent       int                    `json:"progress_percent"`
	MilestonesCompleted   int                    `json:"milestones_completed"`
	MilestonesTotal       int                    `json:"milestones_total"`
	CollectionUnlocked    bool                   `json:"collection_unlocked"`
	OpenUrgentEvents      int                    `json:"open_urgent_events"`
	PendingHearings       int                    `json:"pending_hearings"`
	Case                  models.CaseRecord      `json:"case"`
	GeneratedAt           time.Time              `json:"generated_at"`
}

// Summarize computes the overview for snap at now
func Summarize(snap models.Snapshot, now time.Time, windowDays int) Summary {
	completed := 0
	for _, m := range snap.Milestones {
		if m.Completed {
			completed++
		}
	}
	total := NotificationTotal(snap.Alerts, snap.Parties)

	return Summary{
		UnreadIntel:           UnreadIntelCount(snap.Parties),
		UrgentAlerts:          UrgentAlertCount(snap.Alerts),
		NotificationTotal:     total,
		Badge:                 BadgeLabel(total),
		UpcomingDeadlines:     UpcomingDeadlines(snap.TimelineEvents, now, windowDays),
		DeadlineWindowDays:    windowDays,
		DomesticationProgress: DomesticationProgress(snap.Milestones),
		ProgressPercent:       ProgressPercent(snap.Milestones),
		MilestonesCompleted:   completed,
		MilestonesTotal:       len(snap.Milestones),
		CollectionUnlocked:    CollectionUnlocked(snap.Milestones),
		OpenUrgentEvents:      OpenUrgentEventCount(snap.TimelineEvents),
		PendingHearings:       PendingHearingCount(snap.TimelineEvents),
		Case:                  snap.Case,
		GeneratedAt:           now,
	}
}
