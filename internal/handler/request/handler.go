package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swasth/triage-api/internal/handler"
	"github.com/swasth/triage-api/internal/model"
	patientsvc "github.com/swasth/triage-api/internal/service/patient"
	triagesvc "github.com/swasth/triage-api/internal/service/triage"
)

type Handler struct {
	triage   *triagesvc.Service
	patients *patientsvc.Service
}

func NewHandler(triage *triagesvc.Service, patients *patientsvc.Service) *Handler {
	return &Handler{triage: triage, patients: patients}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("", h.SubmitRequest)
		requests.GET("/patient/:id", h.ListPatientRequests)
	}
}

// SubmitRequest runs the full triage pipeline and returns the outcome.
func (h *Handler) SubmitRequest(c *gin.Context) {
	var req model.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	outcome, err := h.triage.ProcessRequest(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, &handler.Response{
		Status:  "success",
		Message: outcome.Message,
		Data:    outcome,
	})
}

func (h *Handler) ListPatientRequests(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	requests, err := h.patients.RequestHistory(c.Request.Context(), patientID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(requests))
}
