package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/store"
)

type updateProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	Mobile         *string `json:"mobile,omitempty"`
	Age            *int    `json:"age,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	ProfileImg     *string `json:"profileImg,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	Degree         *string `json:"degree,omitempty"`
	Experience     *string `json:"experience,omitempty"`
	Bio            *string `json:"bio,omitempty"`
}

// UpdateMyProfile lets a doctor change their own profile fields. The
// password and email are deliberately not updatable here.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req == (updateProfileRequest{}) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	doctor, err := h.Directory.UpdateDoctorProfile(c.Request.Context(), actor.ID, store.DoctorProfileUpdate{
		Name:           req.Name,
		Mobile:         req.Mobile,
		Age:            req.Age,
		Gender:         req.Gender,
		ProfileImg:     req.ProfileImg,
		Specialization: req.Specialization,
		Degree:         req.Degree,
		Experience:     req.Experience,
		Bio:            req.Bio,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctor)
}

type addAvailabilityRequest struct {
	Date      string   `json:"date" binding:"required"`
	TimeSlots []string `json:"timeSlots" binding:"required"`
}

// AddAvailability appends or merges a date entry on the calling doctor's
// availability ledger.
func (h *Handler) AddAvailability(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req addAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	availability, err := h.Availability.Add(c.Request.Context(), actor.ID, req.Date, req.TimeSlots)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"availability": availability})
}

// ListAvailability returns the remaining open slots of any doctor.
func (h *Handler) ListAvailability(c *gin.Context) {
	doctorID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	availability, err := h.Availability.List(c.Request.Context(), doctorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"availability": availability})
}

// RateDoctor records a 1-5 star rating and folds it into the doctor's
// running average.
func (h *Handler) RateDoctor(c *gin.Context) {
	doctorID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Rating int `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Directory.RateDoctor(c.Request.Context(), doctorID, req.Rating); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating recorded"})
}
