package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/booking-engine/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	"github.com/BruksfildServices01/booking-engine/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/booking-engine/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	transitionUC *ucAppointment.TransitionAppointment
	deleteUC     *ucAppointment.DeleteAppointment
	getUC        *ucAppointment.GetAppointment
	listUC       *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	transitionUC *ucAppointment.TransitionAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	getUC *ucAppointment.GetAppointment,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		rescheduleUC: rescheduleUC,
		transitionUC: transitionUC,
		deleteUC:     deleteUC,
		getUC:        getUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Date         string   `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string   `json:"time" binding:"required"` // HH:MM
	Duration     int      `json:"duration" binding:"required"`
	ClientID     string   `json:"client_id"`
	BarberID     string   `json:"barber_id" binding:"required"`
	ServiceID    string   `json:"service_id" binding:"required"`
	BarbershopID string   `json:"barbershop_id"`
	Status       string   `json:"status"`
	Price        *float64 `json:"price"`
	Notes        string   `json:"notes"`
}

type PatchAppointmentRequest struct {
	Date     *string  `json:"date"`
	Time     *string  `json:"time"`
	BarberID *string  `json:"barber_id"`
	Duration *int     `json:"duration"`
	Price    *float64 `json:"price"`
	Notes    *string  `json:"notes"`
	Status   *string  `json:"status"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid request body.")
		return
	}

	viewerID := c.GetString(middleware.ContextUserID)
	viewerRole := c.GetString(middleware.ContextUserRole)

	// A client booking for themselves does not need to repeat their id.
	if req.ClientID == "" && viewerRole == domain.RoleClient {
		req.ClientID = viewerID
	}
	if req.BarbershopID == "" {
		req.BarbershopID = c.GetString(middleware.ContextBarbershopID)
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID:    req.BarbershopID,
		BarberID:        req.BarberID,
		ClientID:        req.ClientID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.Duration,
		Status:          req.Status,
		Price:           req.Price,
		Notes:           req.Notes,
		IdempotencyKey:  c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		httperr.Respond(c, err, "Could not create appointment.")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	barbershopID := c.Query("barbershop_id")
	if barbershopID == "" {
		barbershopID = c.Query("barbershopId")
	}

	f := domain.ListFilter{
		Date:         c.Query("date"),
		Status:       c.Query("status"),
		BarbershopID: barbershopID,
		Page:         page,
		Limit:        limit,
		Viewer: domain.ViewerScope{
			Role:   c.GetString(middleware.ContextUserRole),
			UserID: c.GetString(middleware.ContextUserID),
		},
	}
	f.Normalize()

	apps, total, err := h.listUC.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err, "Could not list appointments.")
		return
	}

	httpresp.List(c, apps, total, f.Page, f.Limit)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.getUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, "Appointment not found.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// PATCH (partial update / reschedule)
// ======================================================

func (h *AppointmentHandler) Patch(c *gin.Context) {
	var req PatchAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid request body.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		ID:              c.Param("id"),
		Date:            req.Date,
		Time:            req.Time,
		BarberID:        req.BarberID,
		DurationMinutes: req.Duration,
		Price:           req.Price,
		Notes:           req.Notes,
		Status:          req.Status,
	})
	if err != nil {
		httperr.Respond(c, err, "Could not update appointment.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.transitionUC.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, "Could not cancel appointment.")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.transitionUC.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, "Could not complete appointment.")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	ap, err := h.transitionUC.MarkNoShow(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, "Could not mark appointment as no-show.")
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.deleteUC.Execute(c.Request.Context(), c.Param("id")); err != nil {
		if httperr.IsBusiness(err, httperr.CodeAppointmentNotFound) {
			httperr.NotFound(c, httperr.CodeAppointmentNotFound, "Appointment not found.")
			return
		}
		httperr.BadRequest(c, "delete_failed", "Could not delete appointment.")
		return
	}

	httpresp.OK(c, gin.H{"message": "appointment deleted"})
}
