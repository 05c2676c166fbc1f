package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medibook/medibook-api/internal/models"
)

type mongoPrescriptionStore struct {
	coll *mongo.Collection
}

func (s *mongoPrescriptionStore) Insert(ctx context.Context, p *models.Prescription) error {
	p.CreatedAt = time.Now().UTC()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, p)
	return err
}

func (s *mongoPrescriptionStore) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID) ([]models.Prescription, error) {
	return s.list(ctx, bson.M{"doctorId": doctorID})
}

func (s *mongoPrescriptionStore) ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.Prescription, error) {
	return s.list(ctx, bson.M{"patientId": patientID})
}

func (s *mongoPrescriptionStore) list(ctx context.Context, filter bson.M) ([]models.Prescription, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	prescriptions := []models.Prescription{}
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}
