package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AvailabilityDay is one entry of a doctor's availability ledger: a calendar
// date with the bookable time slots remaining on it. Slots are removed as
// appointments consume them.
type AvailabilityDay struct {
	Date      string   `bson:"date" json:"date"`           // "YYYY-MM-DD"
	TimeSlots []string `bson:"timeSlots" json:"timeSlots"` // "HH:MM", no duplicates
}

type DoctorRatings struct {
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	TotalRatings  int     `bson:"totalRatings" json:"totalRatings"`
}

type Doctor struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name              string               `bson:"name" json:"name"`
	Email             string               `bson:"email" json:"email"`
	Password          string               `bson:"password" json:"-"` // Hide from JSON responses
	Role              string               `bson:"role" json:"role"`
	Mobile            string               `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Age               int                  `bson:"age,omitempty" json:"age,omitempty"`
	Gender            string               `bson:"gender,omitempty" json:"gender,omitempty"`
	ProfileImg        string               `bson:"profileImg,omitempty" json:"profileImg,omitempty"`
	Specialization    string               `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Degree            string               `bson:"degree,omitempty" json:"degree,omitempty"`
	Experience        string               `bson:"experience,omitempty" json:"experience,omitempty"`
	Bio               string               `bson:"bio,omitempty" json:"bio,omitempty"`
	Availability      []AvailabilityDay    `bson:"availability" json:"availability"`
	Ratings           DoctorRatings        `bson:"ratings" json:"ratings"`
	ConsultationCount int                  `bson:"consultationCount" json:"consultationCount"`
	Patients          []primitive.ObjectID `bson:"patients" json:"patients"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}
