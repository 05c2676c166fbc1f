package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/models"
	"github.com/medibook/medibook-api/internal/services"
)

type createPrescriptionRequest struct {
	AppointmentID string            `json:"appointmentId" binding:"required"`
	Diagnosis     string            `json:"diagnosis" binding:"required"`
	Medicines     []models.Medicine `json:"medicines" binding:"required"`
	Notes         string            `json:"notes"`
}

// CreatePrescription writes a prescription against one of the calling
// doctor's completed appointments.
func (h *Handler) CreatePrescription(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req createPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointmentID, err := primitive.ObjectIDFromHex(req.AppointmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}

	prescription, err := h.Prescriptions.Create(c.Request.Context(), actor.ID, services.CreatePrescriptionInput{
		AppointmentID: appointmentID,
		Diagnosis:     req.Diagnosis,
		Medicines:     req.Medicines,
		Notes:         req.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prescription)
}

// ListPrescriptions returns prescription history: authored ones for
// doctors, received ones for patients.
func (h *Handler) ListPrescriptions(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	prescriptions, err := h.Prescriptions.List(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prescriptions)
}
