package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
)

func TestBookingStore_SaveAndListByUser(t *testing.T) {
	store := NewBookingStore()
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.Booking{
		ID:        "b1",
		UserID:    "user-1",
		Summary:   "First call",
		CreatedAt: base,
	}))
	require.NoError(t, store.Save(ctx, domain.Booking{
		ID:        "b2",
		UserID:    "user-2",
		Summary:   "Other user",
		CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, store.Save(ctx, domain.Booking{
		ID:        "b3",
		UserID:    "user-1",
		Summary:   "Second call",
		CreatedAt: base.Add(2 * time.Minute),
	}))

	bookings, err := store.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	// Newest first
	assert.Equal(t, "b3", bookings[0].ID)
	assert.Equal(t, "b1", bookings[1].ID)
}

func TestBookingStore_ListByUser_Empty(t *testing.T) {
	store := NewBookingStore()

	bookings, err := store.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
