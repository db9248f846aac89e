package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/menu/domain"
)

const sampleCSV = "Art.-Nr.,Name,Preis (in €)\n1,Pizza,10.00\n2,Salat,5.00\n3,Espresso,2.20\n"

func entry(no int, name, price string) domain.Entry {
	return domain.Entry{ArticleNo: no, Name: name, Price: decimal.RequireFromString(price)}
}

func TestNew(t *testing.T) {
	m, err := New([]domain.Entry{entry(1, " Pizza ", "10.00"), entry(2, "Espresso", "2.20")})
	require.NoError(t, err)

	p, ok := m.Price("Pizza")
	require.True(t, ok)
	assert.True(t, p.Equal(decimal.NewFromInt(10)))
	assert.True(t, m.Has("Espresso"))
	assert.False(t, m.Has("Tiramisu"))
	_, ok = m.Price("Tiramisu")
	assert.False(t, ok)
	assert.Equal(t, []string{"Pizza", "Espresso"}, m.Names())

	// callers get a copy
	es := m.Entries()
	es[0].Name = "changed"
	assert.Equal(t, "Pizza", m.Entries()[0].Name)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.Entry
		wantErr string
	}{
		{"empty", nil, "no items"},
		{"blank name", []domain.Entry{entry(1, "  ", "1.00")}, "name is empty"},
		{"negative price", []domain.Entry{entry(1, "Pizza", "-1.00")}, "negative price"},
		{"duplicate", []domain.Entry{entry(1, "Pizza", "1.00"), entry(2, "Pizza ", "2.00")}, "listed twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyMenu)
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestLoad_CSV(t *testing.T) {
	cfg := config.Default()
	cfg.Menu.Path = writeCSV(t)

	m, err := Load(t.Context(), cfg, logger.NewNop())
	require.NoError(t, err)
	assert.Len(t, m.Entries(), 3)
}

func TestLoad_UnknownSource(t *testing.T) {
	cfg := config.Default()
	cfg.Menu.Source = "xml"
	_, err := Load(t.Context(), cfg, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown menu source")
}

func TestImportCSV_ThenLoadSQLite(t *testing.T) {
	ctx := t.Context()
	sqlitePath := filepath.Join(t.TempDir(), "menu.db")

	n, err := ImportCSV(ctx, writeCSV(t), sqlitePath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	cfg := config.Default()
	cfg.Menu.Source = config.MenuSourceSQLite
	cfg.Menu.Path = sqlitePath
	m, err := Load(ctx, cfg, logger.NewNop())
	require.NoError(t, err)

	p, ok := m.Price("Espresso")
	require.True(t, ok)
	assert.Equal(t, "2.20", p.StringFixed(2))
	assert.Equal(t, []string{"Pizza", "Salat", "Espresso"}, m.Names())
}

func TestImportCSV_InvalidMenu(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.csv")
	require.NoError(t, os.WriteFile(path, []byte("Art.-Nr.,Name,Preis (in €)\n1,Pizza,1\n2,Pizza,2\n"), 0o644))

	_, err := ImportCSV(t.Context(), path, filepath.Join(t.TempDir(), "menu.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listed twice")
}
