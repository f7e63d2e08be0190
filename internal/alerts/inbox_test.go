package alerts

import (
	"sync"
	"testing"

	"github.com/packdash/backend-go/internal/domain"
)

func sampleNotifications() []domain.Notification {
	return []domain.Notification{
		{ID: "overdue-a-x", Type: domain.NotificationOverdue, Priority: domain.PriorityHigh},
		{ID: "upcoming-a-y", Type: domain.NotificationUpcoming, Priority: domain.PriorityMedium},
		{ID: "inactive-b", Type: domain.NotificationInactive, Priority: domain.PriorityHigh},
	}
}

func TestInbox_ReadAndDelete(t *testing.T) {
	inbox := NewInbox()

	inbox.MarkAsRead("overdue-a-x")
	inbox.Delete("upcoming-a-y")

	got := inbox.Apply(sampleNotifications())
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if !got[0].Read {
		t.Error("expected overdue-a-x to be read")
	}
	if UnreadCount(got) != 1 {
		t.Errorf("expected 1 unread, got %d", UnreadCount(got))
	}
	if high := HighPriorityUnread(got); len(high) != 1 || high[0].ID != "inactive-b" {
		t.Errorf("unexpected high priority unread %+v", high)
	}
	if byType := ByType(got, domain.NotificationInactive); len(byType) != 1 {
		t.Errorf("expected 1 inactive notification, got %d", len(byType))
	}
}

func TestInbox_MarkAllAndClear(t *testing.T) {
	inbox := NewInbox()
	generated := sampleNotifications()
	ids := []string{generated[0].ID, generated[1].ID, generated[2].ID}

	inbox.MarkAllAsRead(ids)
	if UnreadCount(inbox.Apply(generated)) != 0 {
		t.Error("expected every notification to be read")
	}

	inbox.Clear(ids)
	if got := inbox.Apply(generated); len(got) != 0 {
		t.Errorf("expected no notifications after clear, got %d", len(got))
	}
}

func TestInbox_ConcurrentUse(t *testing.T) {
	inbox := NewInbox()
	generated := sampleNotifications()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			inbox.MarkAsRead("overdue-a-x")
		}()
		go func() {
			defer wg.Done()
			_ = inbox.Apply(generated)
		}()
	}
	wg.Wait()

	if got := inbox.Apply(generated); !got[0].Read {
		t.Error("expected overdue-a-x to be read")
	}
}
