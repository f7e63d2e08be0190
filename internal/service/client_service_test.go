package service

import (
	"context"
	"errors"
	"testing"

	"github.com/packdash/backend-go/internal/domain"
)

func TestClientService_Create(t *testing.T) {
	repo := &memClients{}
	cache := &countingCache{}
	svc := NewClientService(repo, cache, fixedClock)

	client, err := svc.Create(context.Background(), domain.Client{
		Nom:           "  Martin ",
		NomEntreprise: "Boulangerie Martin",
		Email:         "Contact@Martin.fr",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.ID == "" {
		t.Error("expected an id to be assigned")
	}
	if client.Nom != "Martin" || client.Email != "contact@martin.fr" {
		t.Errorf("client not normalised: %+v", client)
	}
	if !client.CreatedAt.Equal(testNow) {
		t.Errorf("created_at = %v, want %v", client.CreatedAt, testNow)
	}
	if len(repo.clients) != 1 {
		t.Errorf("expected 1 stored client, got %d", len(repo.clients))
	}
	if cache.invalidated != 1 {
		t.Errorf("expected cache invalidation, got %d", cache.invalidated)
	}
}

func TestClientService_CreateValidation(t *testing.T) {
	svc := NewClientService(&memClients{}, nil, fixedClock)

	cases := []domain.Client{
		{Nom: "   "},
		{Nom: "Martin", Email: "not-an-email"},
	}
	for _, c := range cases {
		if _, err := svc.Create(context.Background(), c); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Create(%+v) error = %v, want ErrInvalidInput", c, err)
		}
	}
}

func TestClientService_UpdateKeepsIdentity(t *testing.T) {
	repo := &memClients{clients: []domain.Client{{ID: "c1", Nom: "Old", CreatedAt: testNow.AddDate(-1, 0, 0)}}}
	svc := NewClientService(repo, nil, fixedClock)

	updated, err := svc.Update(context.Background(), "c1", domain.Client{ID: "other", Nom: "New"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != "c1" || updated.Nom != "New" {
		t.Errorf("unexpected client %+v", updated)
	}
	if !updated.CreatedAt.Equal(testNow.AddDate(-1, 0, 0)) {
		t.Errorf("created_at changed to %v", updated.CreatedAt)
	}

	if _, err := svc.Update(context.Background(), "missing", domain.Client{Nom: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClientService_Delete(t *testing.T) {
	repo := &memClients{clients: []domain.Client{{ID: "c1", Nom: "A"}}}
	svc := NewClientService(repo, nil, fixedClock)

	if err := svc.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), "c1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
