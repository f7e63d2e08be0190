package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/repository"
)

const clientColumns = `id, nom, prenom, nom_entreprise, email, telephone, code_postal, rue, ville, created_at`

type ClientRepository struct {
	db *DB
}

var _ repository.ClientRepository = (*ClientRepository)(nil)

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	clients := []domain.Client{}
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC, id`
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (r *ClientRepository) Get(ctx context.Context, id string) (*domain.Client, error) {
	var client domain.Client
	query := r.db.Rebind(`SELECT ` + clientColumns + ` FROM clients WHERE id = ?`)
	if err := r.db.GetContext(ctx, &client, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client %s: %w", id, err)
	}
	return &client, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `)
		VALUES (:id, :nom, :prenom, :nom_entreprise, :email, :telephone, :code_postal, :rue, :ville, :created_at)`
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, client); err != nil {
			return fmt.Errorf("failed to insert client: %w", err)
		}
		return nil
	})
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `UPDATE clients SET nom = :nom, prenom = :prenom, nom_entreprise = :nom_entreprise,
		email = :email, telephone = :telephone, code_postal = :code_postal, rue = :rue, ville = :ville
		WHERE id = :id`
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, query, client)
		if err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}
		return expectOneRow(res)
	})
}

// Delete removes the client together with its orders.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM orders WHERE client_id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete orders of client %s: %w", id, err)
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM clients WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("failed to delete client %s: %w", id, err)
		}
		return expectOneRow(res)
	})
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
