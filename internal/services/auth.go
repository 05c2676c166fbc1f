package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/config"
	"github.com/medibook/medibook-api/internal/models"
	"github.com/medibook/medibook-api/internal/store"
	"github.com/medibook/medibook-api/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type RegisterPatientInput struct {
	Name     string
	Email    string
	Password string
	Mobile   string
	Age      int
	Gender   string
}

// LoginResult is the token plus the profile of whoever logged in. Exactly
// one of Doctor/Patient is set for those roles; both are nil for the
// bootstrap admin.
type LoginResult struct {
	Token   string          `json:"token"`
	Role    string          `json:"role"`
	Doctor  *models.Doctor  `json:"doctor,omitempty"`
	Patient *models.Patient `json:"patient,omitempty"`
}

// Auth handles account creation and login. Passwords are hashed exactly
// once, at the point the password field is set.
type Auth interface {
	RegisterPatient(ctx context.Context, input RegisterPatientInput) (*models.Patient, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, actor Actor) (any, error)
}

type authService struct {
	doctors  store.DoctorStore
	patients store.PatientStore
	cfg      config.Config
}

func NewAuth(doctors store.DoctorStore, patients store.PatientStore, cfg config.Config) Auth {
	return &authService{doctors: doctors, patients: patients, cfg: cfg}
}

func (s *authService) RegisterPatient(ctx context.Context, input RegisterPatientInput) (*models.Patient, error) {
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

	patient := &models.Patient{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     RolePatient,
		Mobile:   input.Mobile,
		Age:      input.Age,
		Gender:   input.Gender,
	}
	if err := s.patients.Insert(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Login checks the bootstrap admin first, then doctors, then patients.
// Every failure path reports the same ErrInvalidCredentials so callers
// cannot probe which emails exist.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.cfg.AdminEmail != "" && email == s.cfg.AdminEmail {
		if password != s.cfg.AdminPassword {
			return nil, ErrInvalidCredentials
		}
		token, err := utils.GenerateJWT(primitive.NilObjectID.Hex(), RoleAdmin)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Token: token, Role: RoleAdmin}, nil
	}

	if doctor, err := s.doctors.FindByEmail(ctx, email); err == nil {
		if !utils.CheckPasswordHash(password, doctor.Password) {
			return nil, ErrInvalidCredentials
		}
		token, err := utils.GenerateJWT(doctor.ID.Hex(), RoleDoctor)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Token: token, Role: RoleDoctor, Doctor: doctor}, nil
	}

	patient, err := s.patients.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, patient.Password) {
		return nil, ErrInvalidCredentials
	}
	token, err := utils.GenerateJWT(patient.ID.Hex(), RolePatient)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: RolePatient, Patient: patient}, nil
}

// Profile returns the caller's own document based on token claims.
func (s *authService) Profile(ctx context.Context, actor Actor) (any, error) {
	switch actor.Role {
	case RoleDoctor:
		return s.doctors.FindByID(ctx, actor.ID)
	case RolePatient:
		return s.patients.FindByID(ctx, actor.ID)
	case RoleAdmin:
		return map[string]string{"role": RoleAdmin, "email": s.cfg.AdminEmail}, nil
	}
	return nil, models.ErrForbidden
}
