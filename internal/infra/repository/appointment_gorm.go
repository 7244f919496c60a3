package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Conflict check
// --------------------------------------------------

// occupiedBy returns the ids of active appointments holding the slot.
// Inside a transaction the rows are locked FOR UPDATE on postgres so the
// check-then-write pair serializes; sqlite has no row locks and
// serializes writers on the database lock instead.
func occupiedBy(
	tx *gorm.DB,
	barberID string,
	date string,
	hm string,
	excludeID string,
	lock bool,
) ([]string, error) {

	q := tx.Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND date = ? AND time = ? AND status IN ?",
			barberID, date, hm, domain.ActiveStatuses,
		)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	if lock && tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ids []string
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *AppointmentGormRepository) IsSlotFree(
	ctx context.Context,
	barberID string,
	date string,
	hm string,
	excludeID string,
) (bool, error) {

	ids, err := occupiedBy(r.db.WithContext(ctx), barberID, date, hm, excludeID, false)
	if err != nil {
		return false, err
	}
	return len(ids) == 0, nil
}

// --------------------------------------------------
// Create / Update (transactional)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := occupiedBy(tx, ap.BarberID, ap.Date, ap.Time, "", true)
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return tx.Create(ap).Error
	})

	return mapWriteError(ctx, err)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	recheckSlot bool,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if recheckSlot {
			ids, err := occupiedBy(tx, ap.BarberID, ap.Date, ap.Time, ap.ID, true)
			if err != nil {
				return err
			}
			if len(ids) > 0 {
				return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
			}
		}
		return tx.Save(ap).Error
	})

	return mapWriteError(ctx, err)
}

// mapWriteError classifies transaction failures. A unique-index violation
// means another writer won the slot; a deadline hit mid-write leaves the
// outcome unknown and must not be retried blindly.
func mapWriteError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return httperr.ErrBusiness(httperr.CodeIndeterminate)
	}
	return err
}

// --------------------------------------------------
// Read / Delete
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Appointment{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	f.Normalize()

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.BarberID != "" {
		q = q.Where("barber_id = ?", f.BarberID)
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.BarbershopID != "" {
		q = q.Where("barbershop_id = ?", f.BarbershopID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := q.
		Order("date ASC, time ASC").
		Offset(f.Offset()).
		Limit(f.Limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveTimes(
	ctx context.Context,
	barberID string,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND date = ? AND status IN ?",
			barberID, date, domain.ActiveStatuses,
		).
		Order("time ASC").
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}

	return times, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID string,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error

	if err == nil {
		return &wh, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday IS NULL", barberID).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &wh, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
