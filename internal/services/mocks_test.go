package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/medibook-api/internal/models"
	"github.com/medibook/medibook-api/internal/store"
)

// -- Mock stores --
//
// The mocks guard every operation with one mutex, which gives them the
// same atomicity the Mongo conditional writes provide: a consume either
// sees the slot and removes it, or fails.

type mockDoctorStore struct {
	mu      sync.Mutex
	doctors map[primitive.ObjectID]*models.Doctor
}

func newMockDoctorStore() *mockDoctorStore {
	return &mockDoctorStore{doctors: make(map[primitive.ObjectID]*models.Doctor)}
}

func (m *mockDoctorStore) Insert(_ context.Context, d *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.doctors {
		if existing.Email == d.Email {
			return models.ErrDuplicateEmail
		}
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.Availability == nil {
		d.Availability = []models.AvailabilityDay{}
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *mockDoctorStore) FindByEmail(_ context.Context, email string) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.doctors {
		if d.Email == email {
			copied := *d
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *mockDoctorStore) List(_ context.Context, specialization string) ([]models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Doctor{}
	for _, d := range m.doctors {
		if specialization == "" || d.Specialization == specialization {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *mockDoctorStore) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.doctors, id)
	return nil
}

func (m *mockDoctorStore) UpdateProfile(_ context.Context, id primitive.ObjectID, upd store.DoctorProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return models.ErrNotFound
	}
	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.Mobile != nil {
		d.Mobile = *upd.Mobile
	}
	if upd.Age != nil {
		d.Age = *upd.Age
	}
	if upd.Gender != nil {
		d.Gender = *upd.Gender
	}
	if upd.ProfileImg != nil {
		d.ProfileImg = *upd.ProfileImg
	}
	if upd.Specialization != nil {
		d.Specialization = *upd.Specialization
	}
	if upd.Degree != nil {
		d.Degree = *upd.Degree
	}
	if upd.Experience != nil {
		d.Experience = *upd.Experience
	}
	if upd.Bio != nil {
		d.Bio = *upd.Bio
	}
	return nil
}

func (m *mockDoctorStore) AddAvailability(_ context.Context, id primitive.ObjectID, date string, slots []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return models.ErrNotFound
	}
	for i := range d.Availability {
		if d.Availability[i].Date == date {
			for _, slot := range slots {
				if !contains(d.Availability[i].TimeSlots, slot) {
					d.Availability[i].TimeSlots = append(d.Availability[i].TimeSlots, slot)
				}
			}
			return nil
		}
	}
	d.Availability = append(d.Availability, models.AvailabilityDay{Date: date, TimeSlots: append([]string{}, slots...)})
	return nil
}

func (m *mockDoctorStore) ConsumeSlot(_ context.Context, id primitive.ObjectID, date, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return models.ErrSlotNotFound
	}
	for i := range d.Availability {
		if d.Availability[i].Date != date {
			continue
		}
		for j, s := range d.Availability[i].TimeSlots {
			if s == slot {
				d.Availability[i].TimeSlots = append(d.Availability[i].TimeSlots[:j], d.Availability[i].TimeSlots[j+1:]...)
				if len(d.Availability[i].TimeSlots) == 0 {
					d.Availability = append(d.Availability[:i], d.Availability[i+1:]...)
				}
				return nil
			}
		}
	}
	return models.ErrSlotNotFound
}

func (m *mockDoctorStore) RestoreSlot(_ context.Context, id primitive.ObjectID, date, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return models.ErrNotFound
	}
	for i := range d.Availability {
		if d.Availability[i].Date == date {
			if !contains(d.Availability[i].TimeSlots, slot) {
				d.Availability[i].TimeSlots = append(d.Availability[i].TimeSlots, slot)
			}
			return nil
		}
	}
	d.Availability = append(d.Availability, models.AvailabilityDay{Date: date, TimeSlots: []string{slot}})
	return nil
}

func (m *mockDoctorStore) AddPatient(_ context.Context, doctorID, patientID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[doctorID]
	if !ok {
		return models.ErrNotFound
	}
	for _, p := range d.Patients {
		if p == patientID {
			return nil
		}
	}
	d.Patients = append(d.Patients, patientID)
	return nil
}

func (m *mockDoctorStore) IncrementConsultations(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return models.ErrNotFound
	}
	d.ConsultationCount++
	return nil
}

func (m *mockDoctorStore) AddRating(_ context.Context, id primitive.ObjectID, stars int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return models.ErrNotFound
	}
	total := float64(d.Ratings.TotalRatings)
	d.Ratings.AverageRating = (d.Ratings.AverageRating*total + float64(stars)) / (total + 1)
	d.Ratings.TotalRatings++
	return nil
}

func contains(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

type mockPatientStore struct {
	mu       sync.Mutex
	patients map[primitive.ObjectID]*models.Patient
}

func newMockPatientStore() *mockPatientStore {
	return &mockPatientStore{patients: make(map[primitive.ObjectID]*models.Patient)}
}

func (m *mockPatientStore) Insert(_ context.Context, p *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.patients {
		if existing.Email == p.Email {
			return models.ErrDuplicateEmail
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockPatientStore) FindByEmail(_ context.Context, email string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.patients {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *mockPatientStore) List(_ context.Context) ([]models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Patient{}
	for _, p := range m.patients {
		out = append(out, *p)
	}
	return out, nil
}

type mockAppointmentStore struct {
	mu           sync.Mutex
	appointments map[primitive.ObjectID]*models.Appointment
}

func newMockAppointmentStore() *mockAppointmentStore {
	return &mockAppointmentStore{appointments: make(map[primitive.ObjectID]*models.Appointment)}
}

func (m *mockAppointmentStore) Insert(_ context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	copied := *a
	m.appointments[a.ID] = &copied
	return nil
}

func (m *mockAppointmentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockAppointmentStore) List(_ context.Context, filter store.AppointmentFilter) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range m.appointments {
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockAppointmentStore) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to models.AppointmentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok || a.Status != from {
		return models.ErrInvalidTransition
	}
	a.Status = to
	return nil
}

func (m *mockAppointmentStore) CountOpenForDoctor(_ context.Context, doctorID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && (a.Status == models.StatusRequested || a.Status == models.StatusConfirmed) {
			n++
		}
	}
	return n, nil
}

type mockPrescriptionStore struct {
	mu            sync.Mutex
	prescriptions map[primitive.ObjectID]*models.Prescription
}

func newMockPrescriptionStore() *mockPrescriptionStore {
	return &mockPrescriptionStore{prescriptions: make(map[primitive.ObjectID]*models.Prescription)}
}

func (m *mockPrescriptionStore) Insert(_ context.Context, p *models.Prescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	copied := *p
	m.prescriptions[p.ID] = &copied
	return nil
}

func (m *mockPrescriptionStore) ListByDoctor(_ context.Context, doctorID primitive.ObjectID) ([]models.Prescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Prescription{}
	for _, p := range m.prescriptions {
		if p.DoctorID == doctorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPrescriptionStore) ListByPatient(_ context.Context, patientID primitive.ObjectID) ([]models.Prescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Prescription{}
	for _, p := range m.prescriptions {
		if p.PatientID == patientID {
			out = append(out, *p)
		}
	}
	return out, nil
}
