package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
)

func TestGetAvailabilityEmptyDay(t *testing.T) {
	env := newTestEnv(t)
	uc := NewGetAvailability(env.repo, env.resolver)

	out, err := uc.Execute(context.Background(), "barber-1", "2024-06-01")
	require.NoError(t, err)

	expected, genErr := domain.Slots(domain.DefaultWorkingHours)
	require.NoError(t, genErr)

	assert.Equal(t, "2024-06-01", out.Date)
	assert.Equal(t, expected, out.AvailableSlots)
	assert.Empty(t, out.OccupiedSlots)
}

func TestGetAvailabilityWithBooking(t *testing.T) {
	env := newTestEnv(t)
	createUC := NewCreateAppointment(env.repo, env.resolver, nil, env.audit)
	uc := NewGetAvailability(env.repo, env.resolver)
	ctx := context.Background()

	in := validCreateInput()
	in.Status = "confirmed"
	_, err := createUC.Execute(ctx, in)
	require.NoError(t, err)

	out, err := uc.Execute(ctx, "barber-1", "2024-06-01")
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00"}, out.OccupiedSlots)
	assert.NotContains(t, out.AvailableSlots, "10:00")
	assert.Len(t, out.AvailableSlots, 15)
}

func TestGetAvailabilityPartition(t *testing.T) {
	env := newTestEnv(t)
	createUC := NewCreateAppointment(env.repo, env.resolver, nil, env.audit)
	uc := NewGetAvailability(env.repo, env.resolver)
	ctx := context.Background()

	for _, hm := range []string{"09:00", "11:30", "15:00"} {
		in := validCreateInput()
		in.Time = hm
		_, err := createUC.Execute(ctx, in)
		require.NoError(t, err)
	}

	out, err := uc.Execute(ctx, "barber-1", "2024-06-01")
	require.NoError(t, err)

	generated, genErr := domain.Slots(domain.DefaultWorkingHours)
	require.NoError(t, genErr)

	// available ∪ occupied == generated, and the sets are disjoint.
	union := map[string]int{}
	for _, s := range out.AvailableSlots {
		union[s]++
	}
	for _, s := range out.OccupiedSlots {
		union[s]++
	}

	assert.Len(t, union, len(generated))
	for _, s := range generated {
		assert.Equal(t, 1, union[s], "slot %s must appear in exactly one set", s)
	}
	assert.Equal(t, []string{"09:00", "11:30", "15:00"}, out.OccupiedSlots)
}

func TestGetAvailabilityIgnoresCancelled(t *testing.T) {
	env := newTestEnv(t)
	createUC := NewCreateAppointment(env.repo, env.resolver, nil, env.audit)
	transitionUC := NewTransitionAppointment(env.repo, env.audit)
	uc := NewGetAvailability(env.repo, env.resolver)
	ctx := context.Background()

	ap, err := createUC.Execute(ctx, validCreateInput())
	require.NoError(t, err)

	_, err = transitionUC.Cancel(ctx, ap.ID)
	require.NoError(t, err)

	out, err := uc.Execute(ctx, "barber-1", "2024-06-01")
	require.NoError(t, err)

	assert.Empty(t, out.OccupiedSlots)
	assert.Contains(t, out.AvailableSlots, "10:00")
}

func TestGetAvailabilityInvalidDate(t *testing.T) {
	env := newTestEnv(t)
	uc := NewGetAvailability(env.repo, env.resolver)

	_, err := uc.Execute(context.Background(), "barber-1", "June 1st")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDateOrTime))
}

func TestGetAvailabilityOffGridBookingDoesNotBlockSlots(t *testing.T) {
	env := newTestEnv(t)
	createUC := NewCreateAppointment(env.repo, env.resolver, nil, env.audit)
	uc := NewGetAvailability(env.repo, env.resolver)
	ctx := context.Background()

	// 10:15 is bookable (inside the window) but not on the 30-minute grid.
	in := validCreateInput()
	in.Time = "10:15"
	_, err := createUC.Execute(ctx, in)
	require.NoError(t, err)

	out, err := uc.Execute(ctx, "barber-1", "2024-06-01")
	require.NoError(t, err)

	// Exact-time matching: the off-grid booking occupies no grid slot.
	assert.Empty(t, out.OccupiedSlots)
	assert.Contains(t, out.AvailableSlots, "10:00")
	assert.Contains(t, out.AvailableSlots, "10:30")
}
