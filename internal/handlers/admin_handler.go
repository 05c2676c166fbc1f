package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/services"
)

type addDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Mobile         string `json:"mobile"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	ProfileImg     string `json:"profileImg"`
	Specialization string `json:"specialization"`
	Degree         string `json:"degree"`
	Experience     string `json:"experience"`
	Bio            string `json:"bio"`
}

// AddDoctor creates a doctor account (admin only).
func (h *Handler) AddDoctor(c *gin.Context) {
	var req addDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor, err := h.Directory.AddDoctor(c.Request.Context(), services.AddDoctorInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
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

	c.JSON(http.StatusCreated, doctor)
}

// ListDoctors lists doctors, optionally filtered by specialization
// (?specialization=...).
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.Directory.ListDoctors(c.Request.Context(), c.Query("specialization"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// RemoveDoctor deletes a doctor record. Deletion is refused while the
// doctor still has open appointments.
func (h *Handler) RemoveDoctor(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.Directory.RemoveDoctor(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Doctor removed"})
}

// ListPatients lists every patient for the admin views.
func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.Directory.ListPatients(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, patients)
}
