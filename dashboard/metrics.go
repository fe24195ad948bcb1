package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"commandcenter-backend/models"
)

const (
	kilobyte = 1024
	megabyte = 1024 * 1024
)

// MaxWindowDays bounds deadline windows. Wider windows are treated as this
// one so the end date cannot overflow.
const MaxWindowDays = 36500

// UnreadIntelCount sums unread intel updates across all parties
func UnreadIntelCount(parties []models.Party) int {
	count := 0
	for _, p := range parties {
		count += PartyUnreadCount(p)
	}
	return count
}

// PartyUnreadCount counts unread intel updates for one party
func PartyUnreadCount(p models.Party) int {
	count := 0
	for _, u := range p.IntelUpdates {
		if !u.Read {
			count++
		}
	}
	return count
}

// PartyImportantUnreadCount counts unread intel updates flagged important
func PartyImportantUnreadCount(p models.Party) int {
	count := 0
	for _, u := range p.IntelUpdates {
		if !u.Read && u.Important {
			count++
		}
	}
	return count
}

// UpcomingDeadlines returns the incomplete events dated within
// [now, now+windowDays], sorted by date ascending. The result is a fresh
// slice. A window of zero or less yields an empty slice; windows above
// MaxWindowDays are clamped.
func UpcomingDeadlines(events []models.TimelineEvent, now time.Time, windowDays int) []models.TimelineEvent {
	upcoming := []models.TimelineEvent{}
	if windowDays <= 0 {
		return upcoming
	}
	windowDays = min(windowDays, MaxWindowDays)

	end := now.AddDate(0, 0, windowDays)
	for _, e := range events {
		if e.Completed {
			continue
		}
		if e.EventDate.Before(now) || e.EventDate.After(end) {
			continue
		}
		upcoming = append(upcoming, e.Clone())
	}

	SortTimeline(upcoming)
	return upcoming
}

// SortTimeline orders events by date ascending, in place
func SortTimeline(events []models.TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate.Before(events[j].EventDate)
	})
}

// SplitTimeline partitions events into future (ascending) and past
// (most recent first) relative to now.
func SplitTimeline(events []models.TimelineEvent, now time.Time) (future, past []models.TimelineEvent) {
	sorted := make([]models.TimelineEvent, len(events))
	copy(sorted, events)
	SortTimeline(sorted)

	future = []models.TimelineEvent{}
	past = []models.TimelineEvent{}
	for _, e := range sorted {
		if e.EventDate.Before(now) {
			past = append(past, e)
		} else {
			future = append(future, e)
		}
	}
	for i, j := 0, len(past)-1; i < j; i, j = i+1, j-1 {
		past[i], past[j] = past[j], past[i]
	}
	return future, past
}

// OpenUrgentEventCount counts incomplete events with URGENT priority
func OpenUrgentEventCount(events []models.TimelineEvent) int {
	count := 0
	for _, e := range events {
		if !e.Completed && e.Priority == models.PriorityUrgent {
			count++
		}
	}
	return count
}

// PendingHearingCount counts hearings that are not yet completed
func PendingHearingCount(events []models.TimelineEvent) int {
	count := 0
	for _, e := range events {
		if !e.Completed && e.EventType == models.EventHearing {
			count++
		}
	}
	return count
}

// UrgentAlertCount counts active alerts with URGENT or HIGH priority
func UrgentAlertCount(alerts []models.Alert) int {
	count := 0
	for _, a := range alerts {
		if a.Dismissed {
			continue
		}
		if a.Priority == models.PriorityUrgent || a.Priority == models.PriorityHigh {
			count++
		}
	}
	return count
}

// DomesticationProgress returns completed/total as a ratio in [0,1].
// An empty checklist has progress 0.
func DomesticationProgress(milestones []models.Milestone) float64 {
	if len(milestones) == 0 {
		return 0
	}
	completed := 0
	for _, m := range milestones {
		if m.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(milestones))
}

// ProgressPercent rounds DomesticationProgress to a whole percentage
func ProgressPercent(milestones []models.Milestone) int {
	return int(math.Round(DomesticationProgress(milestones) * 100))
}

// CollectionUnlocked reports whether every milestone is complete. Collection
// actions stay locked for an empty checklist.
func CollectionUnlocked(milestones []models.Milestone) bool {
	return len(milestones) > 0 && DomesticationProgress(milestones) == 1
}

// FormatFileSize renders a byte count as B, KB or MB with one decimal
func FormatFileSize(bytes int64) string {
	switch {
	case bytes < 0:
		return "0 B"
	case bytes < kilobyte:
		return fmt.Sprintf("%d B", bytes)
	case bytes < megabyte:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kilobyte)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/megabyte)
	}
}
