package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/models"
)

// DoctorProfileUpdate holds the fields a doctor may change on their own
// profile. Nil pointers are left untouched.
type DoctorProfileUpdate struct {
	Name           *string
	Mobile         *string
	Age            *int
	Gender         *string
	ProfileImg     *string
	Specialization *string
	Degree         *string
	Experience     *string
	Bio            *string
}

// AppointmentFilter narrows appointment listings. Zero values mean "any".
type AppointmentFilter struct {
	DoctorID  *primitive.ObjectID
	PatientID *primitive.ObjectID
	Status    models.AppointmentStatus
	Date      string
}

type DoctorStore interface {
	Insert(ctx context.Context, d *models.Doctor) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	List(ctx context.Context, specialization string) ([]models.Doctor, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd DoctorProfileUpdate) error

	// Availability ledger. AddAvailability merges slots into an existing
	// date entry ($addToSet, so no duplicates) or appends a new entry.
	// ConsumeSlot is the conditional write that prevents double-booking:
	// it only succeeds while the (date, slot) pair is still present, and
	// returns models.ErrSlotNotFound otherwise. RestoreSlot is its inverse.
	AddAvailability(ctx context.Context, id primitive.ObjectID, date string, slots []string) error
	ConsumeSlot(ctx context.Context, id primitive.ObjectID, date, slot string) error
	RestoreSlot(ctx context.Context, id primitive.ObjectID, date, slot string) error

	AddPatient(ctx context.Context, doctorID, patientID primitive.ObjectID) error
	IncrementConsultations(ctx context.Context, id primitive.ObjectID) error
	AddRating(ctx context.Context, id primitive.ObjectID, stars int) error
}

type PatientStore interface {
	Insert(ctx context.Context, p *models.Patient) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Patient, error)
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
	List(ctx context.Context) ([]models.Patient, error)
}

type AppointmentStore interface {
	Insert(ctx context.Context, a *models.Appointment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	// UpdateStatus flips status from -> to in one conditional write and
	// returns models.ErrInvalidTransition when the stored status no longer
	// matches from.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.AppointmentStatus) error
	CountOpenForDoctor(ctx context.Context, doctorID primitive.ObjectID) (int64, error)
}

type PrescriptionStore interface {
	Insert(ctx context.Context, p *models.Prescription) error
	ListByDoctor(ctx context.Context, doctorID primitive.ObjectID) ([]models.Prescription, error)
	ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.Prescription, error)
}
