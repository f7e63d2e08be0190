package service

import (
	"context"
	"errors"
	"testing"

	"github.com/packdash/backend-go/internal/domain"
)

func newOrderFixture() (*OrderService, *memOrders, *countingCache) {
	clients := &memClients{clients: []domain.Client{{ID: "c1", Nom: "Martin"}}}
	orders := &memOrders{}
	cache := &countingCache{}
	return NewOrderService(orders, clients, cache), orders, cache
}

func TestOrderService_CreateDerivesFields(t *testing.T) {
	svc, orders, cache := newOrderFixture()

	order, err := svc.Create(context.Background(), domain.Order{
		ClientID:   "c1",
		WeekNumber: 10,
		Year:       2024,
		Products: []domain.OrderProduct{
			{Category: domain.CategoryPapierThermo, Name: " Bob 35 ", Quantity: 100},
			{Category: domain.CategoryPots, Name: "250gr", Quantity: 40},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.ID == "" {
		t.Error("expected an order id")
	}
	if order.Total != 140 {
		t.Errorf("total = %v, want 140", order.Total)
	}
	if order.Products[0].Name != "Bob 35" || order.Products[0].Unit != domain.UnitKg {
		t.Errorf("first product = %+v", order.Products[0])
	}
	if order.Products[1].Unit != domain.UnitItem {
		t.Errorf("second product unit = %q", order.Products[1].Unit)
	}
	if _, ok := order.Products[1].Details.(domain.PotDetails); !ok {
		t.Errorf("pot details not filled: %#v", order.Products[1].Details)
	}
	if len(orders.orders) != 1 || cache.invalidated != 1 {
		t.Errorf("stored=%d invalidated=%d", len(orders.orders), cache.invalidated)
	}
}

func TestOrderService_KeepsExplicitTotalAndLegacyOrders(t *testing.T) {
	svc, _, _ := newOrderFixture()

	order, err := svc.Create(context.Background(), domain.Order{
		ClientID: "c1", WeekNumber: 3, Year: 2023, Total: 75,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Products != nil || order.Total != 75 {
		t.Errorf("legacy order altered: %+v", order)
	}
}

func TestOrderService_Validation(t *testing.T) {
	svc, _, _ := newOrderFixture()

	cases := map[string]domain.Order{
		"missing client":   {WeekNumber: 1, Year: 2024},
		"unknown client":   {ClientID: "nope", WeekNumber: 1, Year: 2024},
		"week zero":        {ClientID: "c1", WeekNumber: 0, Year: 2024},
		"week 53":          {ClientID: "c1", WeekNumber: 53, Year: 2024},
		"no year":          {ClientID: "c1", WeekNumber: 5},
		"negative total":   {ClientID: "c1", WeekNumber: 5, Year: 2024, Total: -1},
		"unknown category": {ClientID: "c1", WeekNumber: 5, Year: 2024, Products: []domain.OrderProduct{{Category: "verre", Name: "x", Quantity: 1}}},
		"negative qty":     {ClientID: "c1", WeekNumber: 5, Year: 2024, Products: []domain.OrderProduct{{Category: domain.CategoryPots, Name: "x", Quantity: -2}}},
		"unnamed product":  {ClientID: "c1", WeekNumber: 5, Year: 2024, Products: []domain.OrderProduct{{Category: domain.CategoryPots, Quantity: 2}}},
	}

	for name, o := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), o); !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestOrderService_ListByUnknownClient(t *testing.T) {
	svc, _, _ := newOrderFixture()

	if _, err := svc.List(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderService_UpdateAndDelete(t *testing.T) {
	svc, orders, _ := newOrderFixture()
	orders.orders = []domain.Order{{ID: "o1", ClientID: "c1", WeekNumber: 4, Year: 2024, Total: 10}}

	updated, err := svc.Update(context.Background(), "o1", domain.Order{ClientID: "c1", WeekNumber: 6, Year: 2024, Total: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != "o1" || orders.orders[0].WeekNumber != 6 {
		t.Errorf("update not applied: %+v", orders.orders[0])
	}

	if err := svc.Delete(context.Background(), "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), "o1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
