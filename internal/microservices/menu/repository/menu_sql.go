package repository

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-pos/internal/microservices/menu/domain"
)

// MenuSQL reads the menu through database/sql, used with the SQLite driver.
type MenuSQL struct {
	db *sql.DB
}

func NewMenuSQL(db *sql.DB) *MenuSQL { return &MenuSQL{db: db} }

func (r *MenuSQL) LoadMenu(ctx context.Context) ([]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, selectMenu)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ArticleNo, &e.Name, &e.Price); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateSchema creates menu_items if it does not exist.
func (r *MenuSQL) CreateSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS menu_items (
  article_no INTEGER PRIMARY KEY,
  name       TEXT NOT NULL UNIQUE,
  price      TEXT NOT NULL
)`)
	return err
}

func (r *MenuSQL) Insert(ctx context.Context, e domain.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO menu_items (article_no, name, price) VALUES (?, ?, ?)`,
		e.ArticleNo, e.Name, e.Price.String())
	if err != nil {
		return fmt.Errorf("insert menu item %q: %w", e.Name, err)
	}
	return nil
}
