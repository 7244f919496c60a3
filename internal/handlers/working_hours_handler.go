package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	"github.com/BruksfildServices01/booking-engine/internal/middleware"
	"github.com/BruksfildServices01/booking-engine/internal/models"
)

// WorkingHoursHandler is the barber-side management surface for the
// configuration the scheduling core reads.
type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingHoursEntry struct {
	Weekday             *int   `json:"weekday"`
	OpenTime            string `json:"open_time" binding:"required"`
	CloseTime           string `json:"close_time" binding:"required"`
	BreakStart          string `json:"break_start"`
	BreakEnd            string `json:"break_end"`
	SlotIntervalMinutes int    `json:"slot_interval_minutes"`
	Active              bool   `json:"active"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID := c.GetString(middleware.ContextUserID)

	var rows []models.WorkingHours
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		httperr.Internal(c, "working_hours_error", "Could not load working hours.")
		return
	}

	httpresp.OK(c, rows)
}

// Update replaces the barber's working-hours rows wholesale.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID := c.GetString(middleware.ContextUserID)

	var entries []WorkingHoursEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid request body.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		for _, e := range entries {
			row := models.WorkingHours{
				BarberID:            barberID,
				Weekday:             e.Weekday,
				OpenTime:            e.OpenTime,
				CloseTime:           e.CloseTime,
				BreakStart:          e.BreakStart,
				BreakEnd:            e.BreakEnd,
				SlotIntervalMinutes: e.SlotIntervalMinutes,
				Active:              e.Active,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "working_hours_error", "Could not update working hours.")
		return
	}

	h.Get(c)
}
