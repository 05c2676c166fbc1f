package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medibook/medibook-api/internal/models"
)

type mongoAppointmentStore struct {
	coll *mongo.Collection
}

func (s *mongoAppointmentStore) Insert(ctx context.Context, a *models.Appointment) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, a)
	return err
}

func (s *mongoAppointmentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var a models.Appointment
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *mongoAppointmentStore) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	query := bson.M{}
	if filter.DoctorID != nil {
		query["doctorId"] = *filter.DoctorID
	}
	if filter.PatientID != nil {
		query["patientId"] = *filter.PatientID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "slot", Value: 1}})
	cursor, err := s.coll.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *mongoAppointmentStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.AppointmentStatus) error {
	// Conditional on the current status so a concurrent transition loses
	// cleanly instead of overwriting.
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrInvalidTransition
	}
	return nil
}

func (s *mongoAppointmentStore) CountOpenForDoctor(ctx context.Context, doctorID primitive.ObjectID) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{
		"doctorId": doctorID,
		"status":   bson.M{"$in": bson.A{models.StatusRequested, models.StatusConfirmed}},
	})
}
