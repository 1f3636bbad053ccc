package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	appointmentRepo "vetchat/database/repository/appointment"
	conversationRepo "vetchat/database/repository/conversation"
	"vetchat/models"
	"vetchat/services/appointment"
	"vetchat/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookAppointmentRequest is the body of POST /api/appointments/book.
type BookAppointmentRequest struct {
	SessionID string `json:"sessionId"`
	UserInput string `json:"userInput"`
}

// UpdateStatusRequest is the body of PATCH /api/appointments/:id/status.
type UpdateStatusRequest struct {
	Status models.AppointmentStatus `json:"status"`
}

// AppointmentHandler exposes the booking flow and appointment queries.
type AppointmentHandler struct {
	Flow appointment.FlowService
	Repo appointmentRepo.Repository
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(flow appointment.FlowService, repo appointmentRepo.Repository) *AppointmentHandler {
	return &AppointmentHandler{Flow: flow, Repo: repo}
}

// BookAppointment handles POST /api/appointments/book. It feeds one user
// input directly into the booking state machine for callers that already
// know they want the booking flow.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "SessionId and userInput are required", err.Error())
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.UserInput = strings.TrimSpace(req.UserInput)
	if req.SessionID == "" || req.UserInput == "" {
		utils.JSONError(c, http.StatusBadRequest, "SessionId and userInput are required", "")
		return
	}

	result, err := h.Flow.ProcessFlow(c.Request.Context(), req.SessionID, req.UserInput)
	if err != nil {
		if errors.Is(err, conversationRepo.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Session not found", "create the session via the chat endpoint first")
			return
		}
		utils.GetLogger().Error("appointment flow failed",
			zap.String("sessionId", req.SessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Appointment booking error", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// ListAppointments handles GET /api/appointments with optional sessionId,
// status, from and to query filters, newest first.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	filter := appointmentRepo.ListFilter{
		SessionID: strings.TrimSpace(c.Query("sessionId")),
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		s := models.AppointmentStatus(strings.ToLower(status))
		if !s.Valid() {
			utils.JSONError(c, http.StatusBadRequest, "Invalid status filter", status)
			return
		}
		filter.Status = s
	}

	for name, dst := range map[string]*time.Time{"from": &filter.From, "to": &filter.To} {
		if raw := strings.TrimSpace(c.Query(name)); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "Invalid "+name+" filter", "expected RFC 3339 timestamp")
				return
			}
			*dst = t
		}
	}

	appointments, err := h.Repo.List(c.Request.Context(), filter)
	if err != nil {
		utils.GetLogger().Error("failed to list appointments", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list appointments", "")
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": appointments})
}

// GetAppointment handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	appt, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Appointment not found", "")
			return
		}
		utils.GetLogger().Error("failed to load appointment", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load appointment", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": appt})
}

// UpdateAppointmentStatus handles PATCH /api/appointments/:id/status. Status
// is the only mutable field on a stored appointment.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Status is required", err.Error())
		return
	}
	if !req.Status.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", string(req.Status))
		return
	}

	if err := h.Repo.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Appointment not found", "")
			return
		}
		utils.GetLogger().Error("failed to update appointment status", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update appointment", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
