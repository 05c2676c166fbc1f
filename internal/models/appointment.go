package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusRequested AppointmentStatus = "requested"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// transitions is the single place that defines which status changes are
// legal. completed and cancelled are terminal.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusRequested: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle step.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s AppointmentStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Appointment binds one patient to one of a doctor's availability slots.
// Doctor and patient names are denormalized for list views, so the source
// collections are only consulted at booking time.
type Appointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorID    primitive.ObjectID `bson:"doctorId" json:"doctorId"`
	PatientID   primitive.ObjectID `bson:"patientId" json:"patientId"`
	DoctorName  string             `bson:"doctorName" json:"doctorName"`
	PatientName string             `bson:"patientName" json:"patientName"`
	Date        string             `bson:"date" json:"date"` // "YYYY-MM-DD"
	Slot        string             `bson:"slot" json:"slot"` // "HH:MM"
	Status      AppointmentStatus  `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
