package appointment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swasth/triage-api/internal/handler"
	"github.com/swasth/triage-api/internal/model"
	triagesvc "github.com/swasth/triage-api/internal/service/triage"
)

type Handler struct {
	triage *triagesvc.Service
}

func NewHandler(triage *triagesvc.Service) *Handler {
	return &Handler{triage: triage}
}

// RegisterRoutes wires the confirm/decline flow. These routes are
// reached from links in the doctor notification email, so they stay
// outside the authenticated groups.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/confirm/:id", h.ConfirmationContext)
		appointments.POST("/confirm", h.ConfirmWithSchedule)
		// GET alias so the decline link in the email works directly.
		appointments.GET("/decline/:id", h.Decline)
		appointments.POST("/decline/:id", h.Decline)
	}
}

// ConfirmationContext returns the request and patient a doctor is
// about to schedule, for display before picking a slot.
func (h *Handler) ConfirmationContext(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request ID"))
		return
	}

	request, patient, err := h.triage.ConfirmationContext(c.Request.Context(), requestID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"request": request,
		"patient": patient,
	}))
}

func (h *Handler) ConfirmWithSchedule(c *gin.Context) {
	var req model.ConfirmAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appt, err := h.triage.ConfirmWithSchedule(c.Request.Context(), req.RequestID, req.Date, req.Time)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{
		Status:  "success",
		Message: "Appointment confirmed. Patient has been notified.",
		Data:    appt,
	})
}

func (h *Handler) Decline(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request ID"))
		return
	}

	if err := h.triage.Decline(c.Request.Context(), requestID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{
		Status:  "success",
		Message: "Appointment declined.",
	})
}
