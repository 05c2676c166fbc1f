package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/models"
	"github.com/medibook/medibook-api/internal/store"
	"github.com/medibook/medibook-api/internal/utils"
)

type AddDoctorInput struct {
	Name           string
	Email          string
	Password       string
	Mobile         string
	Age            int
	Gender         string
	ProfileImg     string
	Specialization string
	Degree         string
	Experience     string
	Bio            string
}

// Directory covers the admin-facing doctor/patient operations plus the
// doctor self-service profile update and patient ratings.
type Directory interface {
	AddDoctor(ctx context.Context, input AddDoctorInput) (*models.Doctor, error)
	ListDoctors(ctx context.Context, specialization string) ([]models.Doctor, error)
	RemoveDoctor(ctx context.Context, id primitive.ObjectID) error
	ListPatients(ctx context.Context) ([]models.Patient, error)
	GetDoctor(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
	UpdateDoctorProfile(ctx context.Context, id primitive.ObjectID, upd store.DoctorProfileUpdate) (*models.Doctor, error)
	RateDoctor(ctx context.Context, id primitive.ObjectID, stars int) error
}

type directoryService struct {
	doctors      store.DoctorStore
	patients     store.PatientStore
	appointments store.AppointmentStore
}

func NewDirectory(doctors store.DoctorStore, patients store.PatientStore, appointments store.AppointmentStore) Directory {
	return &directoryService{doctors: doctors, patients: patients, appointments: appointments}
}

func (s *directoryService) AddDoctor(ctx context.Context, input AddDoctorInput) (*models.Doctor, error) {
	if input.Name == "" || input.Email == "" {
		return nil, models.Validationf("name and email are required")
	}
	if len(input.Password) < 8 {
		return nil, models.Validationf("password must be at least 8 characters")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		Name:           input.Name,
		Email:          input.Email,
		Password:       hashed,
		Role:           RoleDoctor,
		Mobile:         input.Mobile,
		Age:            input.Age,
		Gender:         input.Gender,
		ProfileImg:     input.ProfileImg,
		Specialization: input.Specialization,
		Degree:         input.Degree,
		Experience:     input.Experience,
		Bio:            input.Bio,
	}
	if err := s.doctors.Insert(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *directoryService) ListDoctors(ctx context.Context, specialization string) ([]models.Doctor, error) {
	return s.doctors.List(ctx, specialization)
}

// RemoveDoctor refuses to delete a doctor who still has requested or
// confirmed appointments; those must be completed or cancelled first.
func (s *directoryService) RemoveDoctor(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.doctors.FindByID(ctx, id); err != nil {
		return err
	}
	open, err := s.appointments.CountOpenForDoctor(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return models.ErrDoctorHasOpenAppointments
	}
	return s.doctors.Delete(ctx, id)
}

func (s *directoryService) ListPatients(ctx context.Context) ([]models.Patient, error) {
	return s.patients.List(ctx)
}

func (s *directoryService) GetDoctor(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	return s.doctors.FindByID(ctx, id)
}

func (s *directoryService) UpdateDoctorProfile(ctx context.Context, id primitive.ObjectID, upd store.DoctorProfileUpdate) (*models.Doctor, error) {
	if err := s.doctors.UpdateProfile(ctx, id, upd); err != nil {
		return nil, err
	}
	return s.doctors.FindByID(ctx, id)
}

func (s *directoryService) RateDoctor(ctx context.Context, id primitive.ObjectID, stars int) error {
	if stars < 1 || stars > 5 {
		return models.Validationf("rating must be between 1 and 5, got %d", stars)
	}
	return s.doctors.AddRating(ctx, id, stars)
}
