package dashboard

import (
	"sort"
	"strconv"
	"time"

	"commandcenter-backend/models"
)

// BadgeCap is the largest count the notification badge shows verbatim
const BadgeCap = 9

// AlertView is an active alert decorated for display
type AlertView struct {
	models.Alert
	DueLabel string `json:"due_label,omitempty"`
	Urgent   bool   `json:"urgent"`
}

// ActiveAlerts returns the alerts that have not been dismissed
func ActiveAlerts(alerts []models.Alert) []models.Alert {
	active := []models.Alert{}
	for _, a := range alerts {
		if !a.Dismissed {
			active = append(active, a.Clone())
		}
	}
	return active
}

// SortAlerts orders alerts by priority (URGENT first), then due date
// ascending with undated alerts last, then ID.
func SortAlerts(alerts []models.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		switch {
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
		return a.ID < b.ID
	})
}

// AlertFeed returns the active alerts in display order with due labels
func AlertFeed(alerts []models.Alert, now time.Time) []AlertView {
	active := ActiveAlerts(alerts)
	SortAlerts(active)

	views := make([]AlertView, 0, len(active))
	for _, a := range active {
		v := AlertView{Alert: a}
		if a.DueDate != nil {
			v.DueLabel = DueLabel(*a.DueDate, now)
			v.Urgent = v.DueLabel == "Overdue" || v.DueLabel == "Today"
		}
		views = append(views, v)
	}
	return views
}

// NotificationTotal is the notification bell count: urgent/high active
// alerts plus unread intel.
func NotificationTotal(alerts []models.Alert, parties []models.Party) int {
	return UrgentAlertCount(alerts) + UnreadIntelCount(parties)
}

// BadgeLabel renders a notification count, capped at "9+"
func BadgeLabel(total int) string {
	if total <= 0 {
		return ""
	}
	if total > BadgeCap {
		return strconv.Itoa(BadgeCap) + "+"
	}
	return strconv.Itoa(total)
}
