package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-engine/internal/httperr"
	"github.com/BruksfildServices01/booking-engine/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/booking-engine/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availabilityUC *ucAppointment.GetAvailability
}

func NewAvailabilityHandler(availabilityUC *ucAppointment.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUC: availabilityUC}
}

// Get returns the free/occupied slot partition for one barber and date.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	barberID := c.Param("barberId")
	date := c.Query("date")

	if barberID == "" || date == "" {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "barberId and date are required.")
		return
	}

	availability, err := h.availabilityUC.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Respond(c, err, "Could not compute availability.")
		return
	}

	httpresp.OK(c, availability)
}
