package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/models"
	"github.com/medibook/medibook-api/internal/store"
)

type CreatePrescriptionInput struct {
	AppointmentID primitive.ObjectID
	Diagnosis     string
	Medicines     []models.Medicine
	Notes         string
}

// Prescriptions are written by the appointment's doctor once the
// appointment is completed, and read back by either party.
type Prescriptions interface {
	Create(ctx context.Context, doctorID primitive.ObjectID, input CreatePrescriptionInput) (*models.Prescription, error)
	List(ctx context.Context, actor Actor) ([]models.Prescription, error)
}

type prescriptionService struct {
	appointments  store.AppointmentStore
	prescriptions store.PrescriptionStore
}

func NewPrescriptions(appointments store.AppointmentStore, prescriptions store.PrescriptionStore) Prescriptions {
	return &prescriptionService{appointments: appointments, prescriptions: prescriptions}
}

func (s *prescriptionService) Create(ctx context.Context, doctorID primitive.ObjectID, input CreatePrescriptionInput) (*models.Prescription, error) {
	if input.Diagnosis == "" {
		return nil, models.Validationf("diagnosis is required")
	}
	if len(input.Medicines) == 0 {
		return nil, models.Validationf("at least one medicine is required")
	}
	for _, m := range input.Medicines {
		if m.Name == "" || m.Dosage == "" {
			return nil, models.Validationf("each medicine needs a name and a dosage")
		}
	}

	appointment, err := s.appointments.FindByID(ctx, input.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != doctorID {
		return nil, models.ErrForbidden
	}
	if appointment.Status != models.StatusCompleted {
		return nil, models.ErrInvalidTransition
	}

	prescription := &models.Prescription{
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		Diagnosis:     input.Diagnosis,
		Medicines:     input.Medicines,
		Notes:         input.Notes,
	}
	if err := s.prescriptions.Insert(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (s *prescriptionService) List(ctx context.Context, actor Actor) ([]models.Prescription, error) {
	switch actor.Role {
	case RoleDoctor:
		return s.prescriptions.ListByDoctor(ctx, actor.ID)
	case RolePatient:
		return s.prescriptions.ListByPatient(ctx, actor.ID)
	}
	return nil, models.ErrForbidden
}
