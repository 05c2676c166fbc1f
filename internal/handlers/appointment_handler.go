package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/models"
	"github.com/medibook/medibook-api/internal/store"
)

type bookRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Slot     string `json:"slot" binding:"required"`
}

// BookAppointment books one of a doctor's open slots for the calling
// patient. A slot lost to a concurrent booking comes back as 409.
func (h *Handler) BookAppointment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctorID, err := primitive.ObjectIDFromHex(req.DoctorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor id"})
		return
	}

	appointment, err := h.Appointments.Book(c.Request.Context(), actor.ID, doctorID, req.Date, req.Slot)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// ListAppointments returns the caller's appointments: their own bookings
// for patients, their schedule for doctors, everything for admins.
// Optional query filters: status, date.
func (h *Handler) ListAppointments(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	filter := store.AppointmentFilter{Date: c.Query("date")}
	if status := c.Query("status"); status != "" {
		filter.Status = models.AppointmentStatus(status)
	}

	appointments, err := h.Appointments.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// CancelAppointment cancels a requested or confirmed appointment and puts
// the slot back on the doctor's ledger.
func (h *Handler) CancelAppointment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.Appointments.Cancel(c.Request.Context(), id, actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CompleteAppointment marks a confirmed appointment as completed, which
// unlocks prescription writing for it.
func (h *Handler) CompleteAppointment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.Appointments.Complete(c.Request.Context(), id, actor.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}
