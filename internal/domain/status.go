package domain

import "strings"

// WeekStatusKind buckets a predicted week relative to the current week.
type WeekStatusKind string

const (
	StatusOverdue  WeekStatusKind = "overdue"
	StatusDueSoon  WeekStatusKind = "due_soon"
	StatusUpcoming WeekStatusKind = "upcoming"
)

// WeekStatus is the classification of a target week
type WeekStatus struct {
	Kind       WeekStatusKind `json:"kind"`
	Label      string         `json:"label"`
	WeeksUntil int            `json:"weeks_until"`
}

type NotificationType string

const (
	NotificationOverdue  NotificationType = "overdue"
	NotificationUpcoming NotificationType = "upcoming"
	NotificationInactive NotificationType = "inactive"
)

var notificationTitles = map[NotificationType]string{
	NotificationOverdue:  "Overdue order",
	NotificationUpcoming: "Order expected soon",
	NotificationInactive: "Inactive client",
}

// Title returns the human-readable title of a notification type.
func (t NotificationType) Title() string {
	if title, ok := notificationTitles[t]; ok {
		return title
	}

	return "Notification"
}

// ParseNotificationType returns the type for a given label (case-insensitive).
func ParseNotificationType(label string) (NotificationType, bool) {
	t := NotificationType(strings.ToLower(strings.TrimSpace(label)))
	_, ok := notificationTitles[t]

	return t, ok
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)
