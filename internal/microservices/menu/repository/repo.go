package repository

import (
	"context"

	"restaurant-pos/internal/microservices/menu/domain"
)

type MenuRepositoryInterface interface {
	LoadMenu(ctx context.Context) ([]domain.Entry, error)
}

const selectMenu = `SELECT article_no, name, price FROM menu_items ORDER BY article_no`
