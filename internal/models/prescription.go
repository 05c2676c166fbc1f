package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Medicine struct {
	Name     string `bson:"name" json:"name"`
	Dosage   string `bson:"dosage" json:"dosage"`
	Duration string `bson:"duration,omitempty" json:"duration,omitempty"`
}

// Prescription is written by a doctor against one completed appointment.
type Prescription struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppointmentID primitive.ObjectID `bson:"appointmentId" json:"appointmentId"`
	DoctorID      primitive.ObjectID `bson:"doctorId" json:"doctorId"`
	PatientID     primitive.ObjectID `bson:"patientId" json:"patientId"`
	Diagnosis     string             `bson:"diagnosis" json:"diagnosis"`
	Medicines     []Medicine         `bson:"medicines" json:"medicines"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
