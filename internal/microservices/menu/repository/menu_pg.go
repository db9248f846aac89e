package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"restaurant-pos/internal/microservices/menu/domain"
)

// numeric is cast to text so no precision is lost on the way to decimal
const selectMenuPG = `SELECT article_no, name, price::text FROM menu_items ORDER BY article_no`

type MenuPG struct {
	pool *pgxpool.Pool
}

func NewMenuPG(pool *pgxpool.Pool) *MenuPG { return &MenuPG{pool: pool} }

func (r *MenuPG) LoadMenu(ctx context.Context) ([]domain.Entry, error) {
	rows, err := r.pool.Query(ctx, selectMenuPG)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Entry, error) {
		var (
			e     domain.Entry
			price string
		)
		if err := row.Scan(&e.ArticleNo, &e.Name, &price); err != nil {
			return domain.Entry{}, err
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("price of %q: %w", e.Name, err)
		}
		e.Price = d
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan menu: %w", err)
	}
	return entries, nil
}
