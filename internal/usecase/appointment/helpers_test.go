package appointment

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-engine/internal/audit"
	domain "github.com/BruksfildServices01/booking-engine/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/booking-engine/internal/infra/repository"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

type testEnv struct {
	db       *gorm.DB
	repo     *infraRepo.AppointmentGormRepository
	resolver *domain.HoursResolver
	audit    *audit.Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.WorkingHours{},
		&models.Appointment{},
		&models.AuditLog{},
	))

	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
        ON appointments (barber_id, date, time)
        WHERE status IN ('pending', 'confirmed')
    `)

	repo := infraRepo.NewAppointmentGormRepository(db)

	return &testEnv{
		db:       db,
		repo:     repo,
		resolver: domain.NewHoursResolver(repo),
		audit:    audit.NewDispatcher(audit.New(db), zerolog.Nop()),
	}
}

func validCreateInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		BarbershopID:    "shop-1",
		BarberID:        "barber-1",
		ClientID:        "client-1",
		ServiceID:       "service-1",
		Date:            "2024-06-01",
		Time:            "10:00",
		DurationMinutes: 30,
	}
}
