package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swasth/triage-api/internal/handler"
	"github.com/swasth/triage-api/internal/middleware"
	adminsvc "github.com/swasth/triage-api/internal/service/admin"
	doctorsvc "github.com/swasth/triage-api/internal/service/doctor"
)

type Handler struct {
	admin   *adminsvc.Service
	doctors *doctorsvc.Service
}

func NewHandler(admin *adminsvc.Service, doctors *doctorsvc.Service) *Handler {
	return &Handler{admin: admin, doctors: doctors}
}

// RegisterRoutes wires the dashboard endpoints. The group is expected
// to already require an authenticated admin.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/stats", h.Stats)
		admin.GET("/patients", h.ListPatients)
		admin.GET("/doctors", h.ListDoctors)
		admin.GET("/requests", h.ListRequests)
		admin.GET("/appointments", h.ListAppointments)
		admin.GET("/email-logs", h.EmailLogs)
		admin.POST("/doctors/:id/approve", h.ApproveDoctor)
		admin.POST("/doctors/:id/block", h.BlockDoctor)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.admin.ListPatients(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.doctors.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) ListRequests(c *gin.Context) {
	requests, err := h.admin.ListRequests(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(requests))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.admin.ListAppointments(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) EmailLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	logs, err := h.admin.RecentEmailLogs(c.Request.Context(), limit)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(logs))
}

func (h *Handler) ApproveDoctor(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	doctor, err := h.doctors.Approve(c.Request.Context(), doctorID, c.GetInt64(middleware.ContextUserID))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{
		Status:  "success",
		Message: "Doctor approved successfully.",
		Data:    doctor,
	})
}

func (h *Handler) BlockDoctor(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	doctor, err := h.doctors.Block(c.Request.Context(), doctorID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, &handler.Response{
		Status:  "success",
		Message: "Doctor blocked.",
		Data:    doctor,
	})
}
