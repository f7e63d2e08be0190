package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/service"
)

var fixedNow = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

type stubClients struct {
	created domain.Client
}

func (s *stubClients) List(context.Context) ([]domain.Client, error) {
	return []domain.Client{{ID: "c1", Nom: "Martin"}}, nil
}

func (s *stubClients) Get(_ context.Context, id string) (*domain.Client, error) {
	if id != "c1" {
		return nil, domain.ErrNotFound
	}
	return &domain.Client{ID: "c1", Nom: "Martin"}, nil
}

func (s *stubClients) Create(_ context.Context, input domain.Client) (*domain.Client, error) {
	if input.Nom == "" {
		return nil, domain.ErrInvalidInput
	}
	s.created = input
	input.ID = "new"
	return &input, nil
}

func (s *stubClients) Update(_ context.Context, id string, input domain.Client) (*domain.Client, error) {
	input.ID = id
	return &input, nil
}

func (s *stubClients) Delete(context.Context, string) error { return nil }

type stubOrders struct {
	listedFor string
}

func (s *stubOrders) List(_ context.Context, clientID string) ([]domain.Order, error) {
	s.listedFor = clientID
	return []domain.Order{}, nil
}

func (s *stubOrders) Get(context.Context, string) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (s *stubOrders) Create(_ context.Context, input domain.Order) (*domain.Order, error) {
	input.ID = "o1"
	return &input, nil
}

func (s *stubOrders) Update(_ context.Context, id string, input domain.Order) (*domain.Order, error) {
	input.ID = id
	return &input, nil
}

func (s *stubOrders) Delete(context.Context, string) error { return nil }

type stubInsights struct {
	now      time.Time
	filter   service.NotificationFilter
	read     string
	cleared  bool
	failDash bool
}

func (s *stubInsights) ClientInsight(_ context.Context, id string, now time.Time) (*domain.ClientInsight, error) {
	s.now = now
	return &domain.ClientInsight{Client: domain.Client{ID: id}}, nil
}

func (s *stubInsights) Dashboard(_ context.Context, now time.Time) (*domain.Dashboard, error) {
	if s.failDash {
		return nil, errors.New("database unavailable")
	}
	s.now = now
	return &domain.Dashboard{TotalClients: 1}, nil
}

func (s *stubInsights) OverdueProducts(context.Context, time.Time) ([]domain.ClientProducts, error) {
	return []domain.ClientProducts{}, nil
}

func (s *stubInsights) UpcomingProducts(context.Context, time.Time) ([]domain.ClientProducts, error) {
	return []domain.ClientProducts{}, nil
}

func (s *stubInsights) InactiveClients(context.Context, time.Time) ([]domain.InactiveClient, error) {
	return []domain.InactiveClient{}, nil
}

func (s *stubInsights) Notifications(_ context.Context, _ time.Time, filter service.NotificationFilter) (*domain.NotificationFeed, error) {
	s.filter = filter
	return &domain.NotificationFeed{Notifications: []domain.Notification{}}, nil
}

func (s *stubInsights) MarkAsRead(id string)                           { s.read = id }
func (s *stubInsights) DeleteNotification(string)                      {}
func (s *stubInsights) MarkAllAsRead(context.Context, time.Time) error { return nil }

func (s *stubInsights) ClearNotifications(context.Context, time.Time) error {
	s.cleared = true
	return nil
}

func newTestRouter() (*gin.Engine, *stubClients, *stubOrders, *stubInsights) {
	gin.SetMode(gin.TestMode)
	clients, orders, insights := &stubClients{}, &stubOrders{}, &stubInsights{}
	router := NewRouter(&Services{
		Clients:  clients,
		Orders:   orders,
		Insights: insights,
		Clock:    func() time.Time { return fixedNow },
	}, nil)
	return router, clients, orders, insights
}

func perform(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	return body
}

func TestHealthAndCatalog(t *testing.T) {
	router, _, _, _ := newTestRouter()

	if w := perform(router, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}

	w := perform(router, http.MethodGet, "/api/v1/catalog", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("catalog status = %d", w.Code)
	}
	var catalog []domain.Category
	if err := json.Unmarshal(w.Body.Bytes(), &catalog); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(catalog) != len(domain.Catalog) {
		t.Errorf("expected %d categories, got %d", len(domain.Catalog), len(catalog))
	}
}

func TestClientRoutes(t *testing.T) {
	router, clients, orders, _ := newTestRouter()

	w := perform(router, http.MethodPost, "/api/v1/clients", []byte(`{"nom":"Durand","ville":"Lyon"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	if clients.created.Ville != "Lyon" {
		t.Errorf("payload not bound: %+v", clients.created)
	}

	w = perform(router, http.MethodPost, "/api/v1/clients", []byte(`{"nom":`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed payload status = %d", w.Code)
	}

	w = perform(router, http.MethodPost, "/api/v1/clients", []byte(`{"nom":""}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid client status = %d", w.Code)
	}

	w = perform(router, http.MethodGet, "/api/v1/clients/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing client status = %d", w.Code)
	}
	if body := decodeError(t, w); body["error"] == "" || body["details"] != domain.ErrNotFound.Error() {
		t.Errorf("unexpected error body %v", body)
	}

	w = perform(router, http.MethodGet, "/api/v1/clients/c1/orders", nil)
	if w.Code != http.StatusOK || orders.listedFor != "c1" {
		t.Errorf("client orders status = %d, listed for %q", w.Code, orders.listedFor)
	}

	if w = perform(router, http.MethodDelete, "/api/v1/clients/c1", nil); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
}

func TestOrderRoutes(t *testing.T) {
	router, _, orders, _ := newTestRouter()

	body := []byte(`{"client_id":"c1","week_number":10,"year":2024,"products":[{"category":"pots","name":"250gr","quantity":40}]}`)
	w := perform(router, http.MethodPost, "/api/v1/orders", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	var created domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if created.ID != "o1" || len(created.Products) != 1 || created.Products[0].Quantity != 40 {
		t.Errorf("unexpected order %+v", created)
	}

	perform(router, http.MethodGet, "/api/v1/orders?client_id=c9", nil)
	if orders.listedFor != "c9" {
		t.Errorf("client filter not forwarded: %q", orders.listedFor)
	}

	if w = perform(router, http.MethodGet, "/api/v1/orders/o404", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing order status = %d", w.Code)
	}
}

func TestInsightRoutesUseRequestTime(t *testing.T) {
	router, _, _, insights := newTestRouter()

	if w := perform(router, http.MethodGet, "/api/v1/insights/dashboard", nil); w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", w.Code)
	}
	if !insights.now.Equal(fixedNow) {
		t.Errorf("dashboard evaluated at %v, want clock time", insights.now)
	}

	if w := perform(router, http.MethodGet, "/api/v1/clients/c1/insight?now=2025-01-06", nil); w.Code != http.StatusOK {
		t.Fatalf("insight status = %d", w.Code)
	}
	if want := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC); !insights.now.Equal(want) {
		t.Errorf("insight evaluated at %v, want %v", insights.now, want)
	}

	if w := perform(router, http.MethodGet, "/api/v1/insights/overdue?now=06/01/2025", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad now status = %d", w.Code)
	}

	for _, path := range []string{"/api/v1/insights/overdue", "/api/v1/insights/upcoming", "/api/v1/insights/inactive"} {
		if w := perform(router, http.MethodGet, path, nil); w.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, w.Code)
		}
	}
}

func TestDashboardFailure(t *testing.T) {
	router, _, _, insights := newTestRouter()
	insights.failDash = true

	w := perform(router, http.MethodGet, "/api/v1/insights/dashboard", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeError(t, w); body["details"] != "database unavailable" {
		t.Errorf("unexpected error body %v", body)
	}
}

func TestNotificationRoutes(t *testing.T) {
	router, _, _, insights := newTestRouter()

	w := perform(router, http.MethodGet, "/api/v1/notifications?type=Overdue&unread=true&priority=high", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	want := service.NotificationFilter{Type: domain.NotificationOverdue, UnreadOnly: true, HighPriority: true}
	if insights.filter != want {
		t.Errorf("filter = %+v, want %+v", insights.filter, want)
	}

	if w = perform(router, http.MethodGet, "/api/v1/notifications?type=urgent", nil); w.Code != http.StatusBadRequest {
		t.Errorf("invalid type status = %d", w.Code)
	}

	if w = perform(router, http.MethodPost, "/api/v1/notifications/inactive-b/read", nil); w.Code != http.StatusNoContent || insights.read != "inactive-b" {
		t.Errorf("mark read status = %d, read %q", w.Code, insights.read)
	}

	if w = perform(router, http.MethodPost, "/api/v1/notifications/read", nil); w.Code != http.StatusNoContent {
		t.Errorf("mark all read status = %d", w.Code)
	}

	if w = perform(router, http.MethodDelete, "/api/v1/notifications", nil); w.Code != http.StatusNoContent || !insights.cleared {
		t.Errorf("clear status = %d, cleared %v", w.Code, insights.cleared)
	}
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, allowAll := normalizeAllowedOrigins([]string{"http://a.test, http://b.test", " "})
	if allowAll || len(origins) != 2 || origins[1] != "http://b.test" {
		t.Errorf("got %v allowAll=%v", origins, allowAll)
	}

	if _, allowAll := normalizeAllowedOrigins([]string{"*"}); !allowAll {
		t.Error("expected wildcard to allow all origins")
	}
}
