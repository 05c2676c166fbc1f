package services

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/models"
	"github.com/medibook/medibook-api/internal/store"
)

var slotRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Availability manages a doctor's ledger of bookable date/time slots.
type Availability interface {
	Add(ctx context.Context, doctorID primitive.ObjectID, date string, slots []string) ([]models.AvailabilityDay, error)
	List(ctx context.Context, doctorID primitive.ObjectID) ([]models.AvailabilityDay, error)
}

type availabilityService struct {
	doctors store.DoctorStore
}

func NewAvailability(doctors store.DoctorStore) Availability {
	return &availabilityService{doctors: doctors}
}

// ValidateDate checks the "YYYY-MM-DD" contract, including that the date
// actually exists on the calendar.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return models.Validationf("date must be YYYY-MM-DD, got %q", date)
	}
	return nil
}

// ValidateSlot checks the "HH:MM" 24-hour contract.
func ValidateSlot(slot string) error {
	if !slotRe.MatchString(slot) {
		return models.Validationf("time slot must be HH:MM, got %q", slot)
	}
	return nil
}

// dedupeSlots drops repeated slots, keeping first-seen order.
func dedupeSlots(slots []string) []string {
	seen := make(map[string]bool, len(slots))
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (s *availabilityService) Add(ctx context.Context, doctorID primitive.ObjectID, date string, slots []string) ([]models.AvailabilityDay, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, models.Validationf("at least one time slot is required")
	}
	for _, slot := range slots {
		if err := ValidateSlot(slot); err != nil {
			return nil, err
		}
	}

	if err := s.doctors.AddAvailability(ctx, doctorID, date, dedupeSlots(slots)); err != nil {
		return nil, err
	}
	return s.List(ctx, doctorID)
}

func (s *availabilityService) List(ctx context.Context, doctorID primitive.ObjectID) ([]models.AvailabilityDay, error) {
	doctor, err := s.doctors.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Availability == nil {
		return []models.AvailabilityDay{}, nil
	}
	return doctor.Availability, nil
}
