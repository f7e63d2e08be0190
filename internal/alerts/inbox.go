package alerts

import (
	"sync"

	"github.com/packdash/backend-go/internal/domain"
)

// Inbox keeps the read and dismissed state of generated notifications.
// Notifications are regenerated on every read, so state is keyed by id.
type Inbox struct {
	mu        sync.RWMutex
	read      map[string]struct{}
	dismissed map[string]struct{}
}

func NewInbox() *Inbox {
	return &Inbox{
		read:      make(map[string]struct{}),
		dismissed: make(map[string]struct{}),
	}
}

// Apply drops dismissed notifications and flags the read ones.
func (i *Inbox) Apply(generated []domain.Notification) []domain.Notification {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]domain.Notification, 0, len(generated))
	for _, n := range generated {
		if _, ok := i.dismissed[n.ID]; ok {
			continue
		}
		if _, ok := i.read[n.ID]; ok {
			n.Read = true
		}
		out = append(out, n)
	}
	return out
}

func (i *Inbox) MarkAsRead(id string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.read[id] = struct{}{}
}

func (i *Inbox) MarkAllAsRead(ids []string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, id := range ids {
		i.read[id] = struct{}{}
	}
}

func (i *Inbox) Delete(id string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.dismissed[id] = struct{}{}
}

// Clear dismisses every given notification.
func (i *Inbox) Clear(ids []string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, id := range ids {
		i.dismissed[id] = struct{}{}
	}
}

func UnreadCount(notifications []domain.Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

func ByType(notifications []domain.Notification, t domain.NotificationType) []domain.Notification {
	out := make([]domain.Notification, 0)
	for _, n := range notifications {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

func HighPriorityUnread(notifications []domain.Notification) []domain.Notification {
	out := make([]domain.Notification, 0)
	for _, n := range notifications {
		if n.Priority == domain.PriorityHigh && !n.Read {
			out = append(out, n)
		}
	}
	return out
}
