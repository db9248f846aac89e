// Package menu serves the restaurant's read-only price list.
package menu

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/db"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/menu/domain"
	"restaurant-pos/internal/microservices/menu/repository"
)

var ErrEmptyMenu = errors.New("menu has no items")

type Menu struct {
	entries []domain.Entry
	byName  map[string]int
}

// New checks the entries and indexes them by name. Names must be unique and
// prices non-negative.
func New(entries []domain.Entry) (*Menu, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyMenu
	}
	m := &Menu{
		entries: slices.Clone(entries),
		byName:  make(map[string]int, len(entries)),
	}
	for i, e := range m.entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("menu article %d: name is empty", e.ArticleNo)
		}
		if e.Price.IsNegative() {
			return nil, fmt.Errorf("menu item %q: negative price %s", name, e.Price)
		}
		if _, dup := m.byName[name]; dup {
			return nil, fmt.Errorf("menu item %q listed twice", name)
		}
		m.entries[i].Name = name
		m.byName[name] = i
	}
	return m, nil
}

func (m *Menu) Price(name string) (decimal.Decimal, bool) {
	i, ok := m.byName[name]
	if !ok {
		return decimal.Decimal{}, false
	}
	return m.entries[i].Price, true
}

func (m *Menu) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

func (m *Menu) Entries() []domain.Entry { return slices.Clone(m.entries) }

func (m *Menu) Names() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Name)
	}
	return out
}

// FromRepository loads and validates the menu held by repo.
func FromRepository(ctx context.Context, repo repository.MenuRepositoryInterface) (*Menu, error) {
	entries, err := repo.LoadMenu(ctx)
	if err != nil {
		return nil, err
	}
	return New(entries)
}

// Load reads the menu from the source named in cfg.
func Load(ctx context.Context, cfg config.App, lg *logger.Logger) (*Menu, error) {
	var (
		m   *Menu
		err error
	)
	switch cfg.Menu.Source {
	case config.MenuSourceCSV:
		m, err = FromRepository(ctx, repository.NewMenuCSV(cfg.Menu.Path))
	case config.MenuSourceSQLite:
		sqlDB, oerr := db.OpenSQLite(ctx, cfg.Menu.Path)
		if oerr != nil {
			return nil, oerr
		}
		defer sqlDB.Close()
		m, err = FromRepository(ctx, repository.NewMenuSQL(sqlDB))
	case config.MenuSourcePostgres:
		conn, cerr := db.Connect(ctx, cfg.Database)
		if cerr != nil {
			return nil, cerr
		}
		defer conn.Close()
		m, err = FromRepository(ctx, repository.NewMenuPG(conn.Pool))
	default:
		return nil, fmt.Errorf("unknown menu source %q", cfg.Menu.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("load menu from %s: %w", cfg.Menu.Source, err)
	}
	lg.Info("menu_loaded", map[string]any{"source": cfg.Menu.Source, "items": len(m.entries)})
	return m, nil
}
