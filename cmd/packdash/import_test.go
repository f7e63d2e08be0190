package main

import (
	"strings"
	"testing"

	"github.com/packdash/backend-go/internal/domain"
)

func TestParseClientsCSV(t *testing.T) {
	input := "\ufeffid,Nom,prenom,nom_entreprise,email,ville\n" +
		"c1, Martin ,Paul,Boulangerie Martin,paul@martin.fr,Lyon\n" +
		"c2,Durand,,,,\n"

	clients, err := parseClientsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
	if clients[0].ID != "c1" || clients[0].Nom != "Martin" || clients[0].Ville != "Lyon" {
		t.Errorf("unexpected first client %+v", clients[0])
	}
	if clients[1].DisplayName() != "Durand" {
		t.Errorf("unexpected second client %+v", clients[1])
	}
}

func TestParseClientsCSV_MissingColumn(t *testing.T) {
	if _, err := parseClientsCSV(strings.NewReader("id,email\nc1,a@b.c\n")); err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestParseOrdersCSV(t *testing.T) {
	input := "order_id,client_id,week_number,year,total,category,product,quantity\n" +
		"o1,c1,10,2024,,papier_thermo,Bob 35,\"12,5\"\n" +
		"o1,c1,10,2024,,pots,250gr,40\n" +
		"o2,c1,3,2023,120,,,\n"

	orders, err := parseOrdersCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}

	first := orders[0]
	if first.ID != "o1" || first.WeekNumber != 10 || first.Year != 2024 || len(first.Products) != 2 {
		t.Fatalf("unexpected first order %+v", first)
	}
	if first.Products[0].Quantity != 12.5 {
		t.Errorf("expected comma decimal to parse, got %v", first.Products[0].Quantity)
	}
	if _, ok := first.Products[1].Details.(domain.PotDetails); !ok {
		t.Errorf("expected pot details, got %#v", first.Products[1].Details)
	}

	legacy := orders[1]
	if legacy.Products != nil || legacy.Total != 120 {
		t.Errorf("expected legacy order with total 120, got %+v", legacy)
	}
}

func TestParseOrdersCSV_Errors(t *testing.T) {
	tests := map[string]string{
		"missing column": "order_id,client_id,week_number\no1,c1,3\n",
		"bad week":       "order_id,client_id,week_number,year\no1,c1,x,2024\n",
		"bad quantity":   "order_id,client_id,week_number,year,product,quantity\no1,c1,3,2024,Bob 35,many\n",
		"empty order id": "order_id,client_id,week_number,year\n,c1,3,2024\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := parseOrdersCSV(strings.NewReader(input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
