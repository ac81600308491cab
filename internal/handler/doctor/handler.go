package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasth/triage-api/internal/handler"
	"github.com/swasth/triage-api/internal/middleware"
	"github.com/swasth/triage-api/internal/model"
	doctorsvc "github.com/swasth/triage-api/internal/service/doctor"
)

type Handler struct {
	doctors *doctorsvc.Service
}

func NewHandler(doctors *doctorsvc.Service) *Handler {
	return &Handler{doctors: doctors}
}

// RegisterRoutes wires the doctor self-service endpoints. The group is
// expected to already require an authenticated doctor.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("/me", h.Profile)
		doctors.PATCH("/availability", h.UpdateAvailability)
	}
}

func (h *Handler) Profile(c *gin.Context) {
	doctor, err := h.doctors.Get(c.Request.Context(), c.GetInt64(middleware.ContextUserID))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.doctors.UpdateAvailability(c.Request.Context(), c.GetInt64(middleware.ContextUserID), req.Availability)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}
