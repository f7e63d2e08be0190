package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/packdash/backend-go/internal/config"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/pkg/logger"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
)

func runImport(c *cli.Context, cfg *config.Config) error {
	clientsPath, ordersPath := c.String("clients"), c.String("orders")
	if clientsPath == "" && ordersPath == "" {
		return fmt.Errorf("nothing to import: pass --clients and/or --orders")
	}

	db, err := dbFrom(c)
	if err != nil {
		return err
	}
	svc := newServices(db, cfg)

	if clientsPath != "" {
		clients, err := readCSVFile(clientsPath, parseClientsCSV)
		if err != nil {
			return err
		}

		bar := progressbar.Default(int64(len(clients)), "clients")
		failed := 0
		for _, client := range clients {
			if _, err := svc.clients.Create(c.Context, client); err != nil {
				failed++
				logger.Log.Warn().Err(err).Str("client_id", client.ID).Msg("client skipped")
			}
			_ = bar.Add(1)
		}
		logger.Log.Info().Int("imported", len(clients)-failed).Int("skipped", failed).Msg("clients imported")
	}

	if ordersPath != "" {
		orders, err := readCSVFile(ordersPath, parseOrdersCSV)
		if err != nil {
			return err
		}

		bar := progressbar.Default(int64(len(orders)), "orders")
		failed := 0
		for _, order := range orders {
			if _, err := svc.orders.Create(c.Context, order); err != nil {
				failed++
				logger.Log.Warn().Err(err).Str("order_id", order.ID).Msg("order skipped")
			}
			_ = bar.Add(1)
		}
		logger.Log.Info().Int("imported", len(orders)-failed).Int("skipped", failed).Msg("orders imported")
	}

	return nil
}

func readCSVFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// csvTable gives access to CSV cells by header name.
type csvTable struct {
	columns map[string]int
	rows    [][]string
}

func readTable(r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return &csvTable{columns: columns, rows: rows}, nil
}

func (t *csvTable) get(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseClientsCSV(r io.Reader) ([]domain.Client, error) {
	table, err := readTable(r, "nom")
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0, len(table.rows))
	for _, row := range table.rows {
		clients = append(clients, domain.Client{
			ID:            table.get(row, "id"),
			Nom:           table.get(row, "nom"),
			Prenom:        table.get(row, "prenom"),
			NomEntreprise: table.get(row, "nom_entreprise"),
			Email:         table.get(row, "email"),
			Telephone:     table.get(row, "telephone"),
			CodePostal:    table.get(row, "code_postal"),
			Rue:           table.get(row, "rue"),
			Ville:         table.get(row, "ville"),
		})
	}
	return clients, nil
}

// parseOrdersCSV groups product lines by order_id, keeping the file order.
// Orders whose rows carry no product are legacy orders described by their
// total only.
func parseOrdersCSV(r io.Reader) ([]domain.Order, error) {
	table, err := readTable(r, "order_id", "client_id", "week_number", "year")
	if err != nil {
		return nil, err
	}

	var (
		orders []domain.Order
		index  = make(map[string]int)
	)
	for n, row := range table.rows {
		line := n + 2
		id := table.get(row, "order_id")
		if id == "" {
			return nil, fmt.Errorf("line %d: order_id is required", line)
		}

		i, seen := index[id]
		if !seen {
			week, err := parseIntCell(table.get(row, "week_number"))
			if err != nil {
				return nil, fmt.Errorf("line %d: week_number: %w", line, err)
			}
			year, err := parseIntCell(table.get(row, "year"))
			if err != nil {
				return nil, fmt.Errorf("line %d: year: %w", line, err)
			}
			total, err := parseFloatCell(table.get(row, "total"))
			if err != nil {
				return nil, fmt.Errorf("line %d: total: %w", line, err)
			}

			orders = append(orders, domain.Order{
				ID:          id,
				ClientID:    table.get(row, "client_id"),
				OrderNumber: table.get(row, "order_number"),
				WeekNumber:  week,
				Year:        year,
				Total:       total,
			})
			i = len(orders) - 1
			index[id] = i
		}

		name := table.get(row, "product")
		if name == "" {
			continue
		}
		quantity, err := parseFloatCell(table.get(row, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: quantity: %w", line, err)
		}
		category := table.get(row, "category")
		orders[i].Products = append(orders[i].Products, domain.OrderProduct{
			Category: category,
			Name:     name,
			Quantity: quantity,
			Unit:     table.get(row, "unit"),
			Details:  domain.DetailsFor(category),
		})
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func parseIntCell(s string) (int, error) {
	return strconv.Atoi(s)
}

// parseFloatCell accepts both decimal separators. Empty cells are zero.
func parseFloatCell(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
