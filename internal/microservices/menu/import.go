package menu

import (
	"context"
	"fmt"

	"restaurant-pos/internal/common/db"
	"restaurant-pos/internal/microservices/menu/repository"
)

// ImportCSV copies a CSV menu into the menu_items table of a SQLite file and
// returns the number of items written. The menu is validated first.
func ImportCSV(ctx context.Context, csvPath, sqlitePath string) (int, error) {
	m, err := FromRepository(ctx, repository.NewMenuCSV(csvPath))
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", csvPath, err)
	}
	sqlDB, err := db.OpenSQLite(ctx, sqlitePath)
	if err != nil {
		return 0, err
	}
	defer sqlDB.Close()

	repo := repository.NewMenuSQL(sqlDB)
	if err := repo.CreateSchema(ctx); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}
	for _, e := range m.entries {
		if err := repo.Insert(ctx, e); err != nil {
			return 0, err
		}
	}
	return len(m.entries), nil
}
