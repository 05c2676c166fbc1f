package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/models"
	"github.com/medibook/medibook-api/internal/services"
)

// Handler holds the services every route handler needs.
type Handler struct {
	Auth          services.Auth
	Availability  services.Availability
	Appointments  services.Appointments
	Directory     services.Directory
	Prescriptions services.Prescriptions
	Log           zerolog.Logger
}

func NewHandler(auth services.Auth, availability services.Availability, appointments services.Appointments, directory services.Directory, prescriptions services.Prescriptions, log zerolog.Logger) *Handler {
	return &Handler{
		Auth:          auth,
		Availability:  availability,
		Appointments:  appointments,
		Directory:     directory,
		Prescriptions: prescriptions,
		Log:           log,
	}
}

// actor pulls the authenticated caller out of the gin context (set by the
// auth middleware).
func (h *Handler) actor(c *gin.Context) (services.Actor, bool) {
	idHex, _ := c.Get("userID")
	role, _ := c.Get("userRole")
	roleStr, _ := role.(string)
	if roleStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return services.Actor{}, false
	}
	id, err := primitive.ObjectIDFromHex(idHex.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
		return services.Actor{}, false
	}
	return services.Actor{ID: id, Role: roleStr}, true
}

// respondError maps domain errors to HTTP statuses. Anything unknown is a
// logged 500 with a generic body.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, models.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrDuplicateEmail.Error()})
	case errors.Is(err, models.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrSlotUnavailable.Error()})
	case errors.Is(err, models.ErrSlotNotFound):
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrSlotNotFound.Error()})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrInvalidTransition.Error()})
	case errors.Is(err, models.ErrDoctorHasOpenAppointments):
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrDoctorHasOpenAppointments.Error()})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		h.Log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
