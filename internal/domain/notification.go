package domain

import "time"

// Notification is an alert raised for a client or one of its products
type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	ClientID    string           `json:"client_id"`
	ClientName  string           `json:"client_name"`
	ProductName string           `json:"product_name,omitempty"`
	Priority    Priority         `json:"priority"`
	CreatedAt   time.Time        `json:"created_at"`
	Read        bool             `json:"read"`
	ActionURL   string           `json:"action_url,omitempty"`
}

// NotificationFeed is the notification list with its unread counter
type NotificationFeed struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
