package factory

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-pos/internal/microservices/order/domain/dao"
)

func TestCreate_SequentialIDs(t *testing.T) {
	f := New()
	for want := int64(1); want <= 5; want++ {
		o, err := f.Create(3, Selection{"Pizza": 1}, "")
		require.NoError(t, err)
		assert.Equal(t, want, o.ID)
	}
	assert.Equal(t, int64(5), f.LastID())
}

func TestCreate_Fields(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 19, 30, 0, 0, time.UTC)
	f := New(WithClock(func() time.Time { return stamp }))

	o, err := f.Create(7, Selection{" Tiramisu ": 2}, "  no cream ")
	require.NoError(t, err)

	assert.Equal(t, dao.Order{
		ID:          1,
		CreatedAt:   stamp,
		TableNumber: 7,
		Item:        dao.LineItem{Name: "Tiramisu", Quantity: 2},
		Status:      dao.StatusOpen,
		Note:        "no cream",
	}, o)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		table int
		items Selection
		field string
	}{
		{name: "zero table", table: 0, items: Selection{"Pizza": 1}, field: "table_number"},
		{name: "negative table", table: -2, items: Selection{"Pizza": 1}, field: "table_number"},
		{name: "no items", table: 1, items: Selection{}, field: "items"},
		{name: "nil items", table: 1, items: nil, field: "items"},
		{name: "two items", table: 1, items: Selection{"Pizza": 1, "Espresso": 2}, field: "items"},
		{name: "blank name", table: 1, items: Selection{"  ": 1}, field: "items.name"},
		{name: "zero quantity", table: 1, items: Selection{"Pizza": 0}, field: "items[Pizza].quantity"},
		{name: "negative quantity", table: 1, items: Selection{"Pizza": -1}, field: "items[Pizza].quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			_, err := f.Create(tt.table, tt.items, "")
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Zero(t, f.LastID(), "rejected input must not consume an id")
		})
	}
}

func TestCreate_RejectionKeepsSequence(t *testing.T) {
	f := New()
	_, err := f.Create(1, Selection{"Pizza": 1}, "")
	require.NoError(t, err)
	_, err = f.Create(0, Selection{"Pizza": 1}, "")
	require.Error(t, err)

	o, err := f.Create(1, Selection{"Pizza": 1}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), o.ID)
}
