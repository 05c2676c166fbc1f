package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/models"
	"github.com/medibook/medibook-api/internal/store"
)

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ID   primitive.ObjectID
	Role string
}

const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// Appointments runs the booking workflow: requested -> confirmed ->
// completed, with cancellation as a side exit that returns the slot to
// the doctor's ledger.
type Appointments interface {
	Book(ctx context.Context, patientID, doctorID primitive.ObjectID, date, slot string) (*models.Appointment, error)
	List(ctx context.Context, actor Actor, filter store.AppointmentFilter) ([]models.Appointment, error)
	Cancel(ctx context.Context, id primitive.ObjectID, actor Actor) (*models.Appointment, error)
	Complete(ctx context.Context, id primitive.ObjectID, doctorID primitive.ObjectID) (*models.Appointment, error)
}

type appointmentService struct {
	doctors      store.DoctorStore
	patients     store.PatientStore
	appointments store.AppointmentStore
	notifier     *Notifier
	log          zerolog.Logger
}

func NewAppointments(doctors store.DoctorStore, patients store.PatientStore, appointments store.AppointmentStore, notifier *Notifier, log zerolog.Logger) Appointments {
	return &appointmentService{
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		notifier:     notifier,
		log:          log,
	}
}

// Book consumes the slot before creating the appointment. The conditional
// slot pull is the gate: when two callers race for the same (doctor, date,
// slot), only one write modifies the document and the other caller gets
// ErrSlotUnavailable. There is no retry.
func (s *appointmentService) Book(ctx context.Context, patientID, doctorID primitive.ObjectID, date, slot string) (*models.Appointment, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}

	patient, err := s.patients.FindByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}
	doctor, err := s.doctors.FindByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	if err := s.doctors.ConsumeSlot(ctx, doctorID, date, slot); err != nil {
		if errors.Is(err, models.ErrSlotNotFound) {
			return nil, models.ErrSlotUnavailable
		}
		return nil, err
	}

	appointment := &models.Appointment{
		DoctorID:    doctorID,
		PatientID:   patientID,
		DoctorName:  doctor.Name,
		PatientName: patient.Name,
		Date:        date,
		Slot:        slot,
		Status:      models.StatusConfirmed,
	}
	if err := s.appointments.Insert(ctx, appointment); err != nil {
		// The slot was already consumed; put it back so it is not lost.
		if restoreErr := s.doctors.RestoreSlot(ctx, doctorID, date, slot); restoreErr != nil {
			s.log.Error().Err(restoreErr).
				Str("doctorId", doctorID.Hex()).Str("date", date).Str("slot", slot).
				Msg("failed to restore slot after booking insert failure")
		}
		return nil, err
	}

	if err := s.doctors.AddPatient(ctx, doctorID, patientID); err != nil {
		s.log.Error().Err(err).Str("doctorId", doctorID.Hex()).Msg("failed to link patient to doctor")
	}

	s.notifier.BookingConfirmed(patient, appointment)
	return appointment, nil
}

// List returns appointments visible to the actor: patients see their own,
// doctors see their own schedule, admins see everything.
func (s *appointmentService) List(ctx context.Context, actor Actor, filter store.AppointmentFilter) ([]models.Appointment, error) {
	switch actor.Role {
	case RolePatient:
		id := actor.ID
		filter.PatientID = &id
	case RoleDoctor:
		id := actor.ID
		filter.DoctorID = &id
	case RoleAdmin:
		// unrestricted
	default:
		return nil, models.ErrForbidden
	}
	return s.appointments.List(ctx, filter)
}

func (s *appointmentService) Cancel(ctx context.Context, id primitive.ObjectID, actor Actor) (*models.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.mayTouch(appointment, actor) {
		return nil, models.ErrForbidden
	}
	if !appointment.Status.CanTransitionTo(models.StatusCancelled) {
		return nil, models.ErrInvalidTransition
	}

	if err := s.appointments.UpdateStatus(ctx, id, appointment.Status, models.StatusCancelled); err != nil {
		return nil, err
	}
	appointment.Status = models.StatusCancelled

	// Return the freed slot to the ledger so it can be booked again.
	if err := s.doctors.RestoreSlot(ctx, appointment.DoctorID, appointment.Date, appointment.Slot); err != nil {
		s.log.Error().Err(err).
			Str("appointmentId", id.Hex()).Str("date", appointment.Date).Str("slot", appointment.Slot).
			Msg("failed to restore slot after cancellation")
	}

	if patient, err := s.patients.FindByID(ctx, appointment.PatientID); err == nil {
		s.notifier.BookingCancelled(patient, appointment)
	}
	return appointment, nil
}

func (s *appointmentService) Complete(ctx context.Context, id primitive.ObjectID, doctorID primitive.ObjectID) (*models.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != doctorID {
		return nil, models.ErrForbidden
	}
	if !appointment.Status.CanTransitionTo(models.StatusCompleted) {
		return nil, models.ErrInvalidTransition
	}

	if err := s.appointments.UpdateStatus(ctx, id, appointment.Status, models.StatusCompleted); err != nil {
		return nil, err
	}
	appointment.Status = models.StatusCompleted

	if err := s.doctors.IncrementConsultations(ctx, doctorID); err != nil {
		s.log.Error().Err(err).Str("doctorId", doctorID.Hex()).Msg("failed to increment consultation count")
	}
	return appointment, nil
}

func (s *appointmentService) mayTouch(a *models.Appointment, actor Actor) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleDoctor:
		return a.DoctorID == actor.ID
	case RolePatient:
		return a.PatientID == actor.ID
	}
	return false
}
