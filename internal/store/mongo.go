package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	doctorsCollection       = "doctors"
	patientsCollection      = "patients"
	appointmentsCollection  = "appointments"
	prescriptionsCollection = "prescriptions"
)

// Stores bundles the Mongo-backed implementations of every store interface.
type Stores struct {
	Doctors       DoctorStore
	Patients      PatientStore
	Appointments  AppointmentStore
	Prescriptions PrescriptionStore
}

func NewStores(db *mongo.Database) *Stores {
	return &Stores{
		Doctors:       &mongoDoctorStore{coll: db.Collection(doctorsCollection)},
		Patients:      &mongoPatientStore{coll: db.Collection(patientsCollection)},
		Appointments:  &mongoAppointmentStore{coll: db.Collection(appointmentsCollection)},
		Prescriptions: &mongoPrescriptionStore{coll: db.Collection(prescriptionsCollection)},
	}
}

// EnsureIndexes creates the indexes the stores rely on. The unique email
// indexes are what turns a duplicate registration into a duplicate-key
// error instead of a second record.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	emailUnique := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, name := range []string{doctorsCollection, patientsCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, emailUnique); err != nil {
			return err
		}
	}

	appts := db.Collection(appointmentsCollection)
	_, err := appts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "patientId", Value: 1}}},
	})
	return err
}
