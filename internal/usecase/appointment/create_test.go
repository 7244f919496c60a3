package appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/infra/idempotency"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

func TestCreateAppointment(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCreateAppointment(env.repo, env.resolver, nil, env.audit)
	ctx := context.Background()

	ap, err := uc.Execute(ctx, validCreateInput())
	require.NoError(t, err)

	assert.NotEmpty(t, ap.ID)
	assert.Equal(t, "pending", ap.Status)
	assert.Equal(t, "2024-06-01", ap.Date)
	assert.Equal(t, "10:00", ap.Time)
}

func TestCreateAppointmentConfirmedInitialStatus(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCreateAppointment(env.repo, env.resolver, nil, env.audit)

	in := validCreateInput()
	in.Status = "confirmed"

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)
}

func TestCreateAppointmentValidation(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCreateAppointment(env.repo, env.resolver, nil, env.audit)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateAppointmentInput)
		code   string
	}{
		{"missing barber", func(in *CreateAppointmentInput) { in.BarberID = "" }, httperr.CodeInvalidRequest},
		{"bad date", func(in *CreateAppointmentInput) { in.Date = "06/01/2024" }, httperr.CodeInvalidDateOrTime},
		{"bad time", func(in *CreateAppointmentInput) { in.Time = "10am" }, httperr.CodeInvalidDateOrTime},
		{"short duration", func(in *CreateAppointmentInput) { in.DurationMinutes = 10 }, httperr.CodeDurationTooShort},
		{"negative price", func(in *CreateAppointmentInput) { p := -5.0; in.Price = &p }, httperr.CodeInvalidRequest},
		{"terminal initial status", func(in *CreateAppointmentInput) { in.Status = "completed" }, httperr.CodeInvalidStatus},
		{"before opening", func(in *CreateAppointmentInput) { in.Time = "08:00" }, httperr.CodeOutsideWorkingHours},
		{"at closing", func(in *CreateAppointmentInput) { in.Time = "18:00" }, httperr.CodeOutsideWorkingHours},
		{"at break start", func(in *CreateAppointmentInput) { in.Time = "12:00" }, httperr.CodeInsideBreak},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)

			_, err := uc.Execute(ctx, in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}

	// Nothing was persisted by any rejected request.
	times, err := env.repo.ListActiveTimes(ctx, "barber-1", "2024-06-01")
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestCreateAppointmentSlotUnavailable(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCreateAppointment(env.repo, env.resolver, nil, env.audit)
	ctx := context.Background()

	_, err := uc.Execute(ctx, validCreateInput())
	require.NoError(t, err)

	_, err = uc.Execute(ctx, validCreateInput())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	// A different client may take a different slot.
	in := validCreateInput()
	in.Time = "10:30"
	_, err = uc.Execute(ctx, in)
	assert.NoError(t, err)
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCreateAppointment(env.repo, env.resolver, nil, env.audit)
	ctx := context.Background()

	const numGoroutines = 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			in := validCreateInput()
			in.ClientID = fmt.Sprintf("client-%d", id)
			_, err := uc.Execute(ctx, in)
			results <- err
		}(i)
	}

	wg.Wait()
	close(results)

	successCount := 0
	conflictCount := 0
	for err := range results {
		if err == nil {
			successCount++
		} else if httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
			conflictCount++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successCount, "exactly one booking wins the slot")
	assert.Equal(t, numGoroutines-1, conflictCount)

	times, err := env.repo.ListActiveTimes(ctx, "barber-1", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)
}

func TestCreateAppointmentIdempotency(t *testing.T) {
	env := newTestEnv(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := idempotency.NewStore(client, time.Hour)

	uc := NewCreateAppointment(env.repo, env.resolver, store, env.audit)
	ctx := context.Background()

	in := validCreateInput()
	in.IdempotencyKey = "attempt-1"

	first, err := uc.Execute(ctx, in)
	require.NoError(t, err)

	// The retry resolves to the original appointment, no duplicate.
	second, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	times, err := env.repo.ListActiveTimes(ctx, "barber-1", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)
}

func TestCreateAppointmentIdempotencyReleaseOnFailure(t *testing.T) {
	env := newTestEnv(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := idempotency.NewStore(client, time.Hour)

	uc := NewCreateAppointment(env.repo, env.resolver, store, env.audit)
	ctx := context.Background()

	// Occupy the slot without a key.
	_, err := uc.Execute(ctx, validCreateInput())
	require.NoError(t, err)

	in := validCreateInput()
	in.ClientID = "client-2"
	in.IdempotencyKey = "attempt-2"

	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	// The key was released, so retrying with a free slot succeeds.
	in.Time = "11:00"
	ap, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "11:00", ap.Time)
}

func TestCreateUsesConfiguredWorkingHours(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCreateAppointment(env.repo, env.resolver, nil, env.audit)
	ctx := context.Background()

	// 2024-06-01 is a Saturday (weekday 6).
	saturday := 6
	require.NoError(t, env.db.Create(&models.WorkingHours{
		BarberID:            "barber-1",
		Weekday:             &saturday,
		OpenTime:            "14:00",
		CloseTime:           "18:00",
		SlotIntervalMinutes: 30,
		Active:              true,
	}).Error)

	// 10:00 is inside the default window but outside Saturday's.
	_, err := uc.Execute(ctx, validCreateInput())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeOutsideWorkingHours))

	in := validCreateInput()
	in.Time = "14:00"
	_, err = uc.Execute(ctx, in)
	assert.NoError(t, err)
}
