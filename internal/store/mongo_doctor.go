package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medibook/medibook-api/internal/models"
)

type mongoDoctorStore struct {
	coll *mongo.Collection
}

func (s *mongoDoctorStore) Insert(ctx context.Context, d *models.Doctor) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.Availability == nil {
		d.Availability = []models.AvailabilityDay{}
	}
	if d.Patients == nil {
		d.Patients = []primitive.ObjectID{}
	}
	_, err := s.coll.InsertOne(ctx, d)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateEmail
	}
	return err
}

func (s *mongoDoctorStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	var d models.Doctor
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *mongoDoctorStore) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var d models.Doctor
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *mongoDoctorStore) List(ctx context.Context, specialization string) ([]models.Doctor, error) {
	filter := bson.M{}
	if specialization != "" {
		filter["specialization"] = specialization
	}
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	doctors := []models.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (s *mongoDoctorStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *mongoDoctorStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd DoctorProfileUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Mobile != nil {
		set["mobile"] = *upd.Mobile
	}
	if upd.Age != nil {
		set["age"] = *upd.Age
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}
	if upd.ProfileImg != nil {
		set["profileImg"] = *upd.ProfileImg
	}
	if upd.Specialization != nil {
		set["specialization"] = *upd.Specialization
	}
	if upd.Degree != nil {
		set["degree"] = *upd.Degree
	}
	if upd.Experience != nil {
		set["experience"] = *upd.Experience
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *mongoDoctorStore) AddAvailability(ctx context.Context, id primitive.ObjectID, date string, slots []string) error {
	now := time.Now().UTC()

	// Merge into an existing date entry first. $addToSet keeps the entry
	// free of duplicate slots no matter what the caller sends.
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "availability.date": date},
		bson.M{
			"$addToSet": bson.M{"availability.$.timeSlots": bson.M{"$each": slots}},
			"$set":      bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// No entry for this date yet: append one.
	res, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"availability": models.AvailabilityDay{Date: date, TimeSlots: slots}},
			"$set":  bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *mongoDoctorStore) ConsumeSlot(ctx context.Context, id primitive.ObjectID, date, slot string) error {
	// The filter only matches while the slot is still present, so two
	// concurrent consumers cannot both see a modified document.
	res, err := s.coll.UpdateOne(ctx,
		bson.M{
			"_id":          id,
			"availability": bson.M{"$elemMatch": bson.M{"date": date, "timeSlots": slot}},
		},
		bson.M{
			"$pull": bson.M{"availability.$.timeSlots": slot},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return models.ErrSlotNotFound
	}

	// Prune date entries that ran out of slots.
	_, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"availability": bson.M{"timeSlots": bson.M{"$size": 0}}}},
	)
	return err
}

func (s *mongoDoctorStore) RestoreSlot(ctx context.Context, id primitive.ObjectID, date, slot string) error {
	now := time.Now().UTC()

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "availability.date": date},
		bson.M{
			"$addToSet": bson.M{"availability.$.timeSlots": slot},
			"$set":      bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// The date entry was pruned when its last slot was consumed.
	res, err = s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"availability": models.AvailabilityDay{Date: date, TimeSlots: []string{slot}}},
			"$set":  bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *mongoDoctorStore) AddPatient(ctx context.Context, doctorID, patientID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": doctorID},
		bson.M{"$addToSet": bson.M{"patients": patientID}},
	)
	return err
}

func (s *mongoDoctorStore) IncrementConsultations(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"consultationCount": 1}},
	)
	return err
}

func (s *mongoDoctorStore) AddRating(ctx context.Context, id primitive.ObjectID, stars int) error {
	// Pipeline update: both expressions read the pre-update ratings, so the
	// running mean and the counter advance together in one atomic write.
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"ratings.averageRating": bson.M{"$divide": bson.A{
				bson.M{"$add": bson.A{
					bson.M{"$multiply": bson.A{"$ratings.averageRating", "$ratings.totalRatings"}},
					stars,
				}},
				bson.M{"$add": bson.A{"$ratings.totalRatings", 1}},
			}},
			"ratings.totalRatings": bson.M{"$add": bson.A{"$ratings.totalRatings", 1}},
			"updatedAt":            "$$NOW",
		}}},
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, pipeline)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
