package mongodb

import (
	"context"
	"time"

	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type doctorStore struct {
	c *mongo.Collection
}

func NewDoctorStore(db *mongo.Database) domainRepo.DoctorRepository {
	return &doctorStore{c: db.Collection(doctorsCollection)}
}

func (s *doctorStore) List(ctx context.Context, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	q := bson.M{}
	if filter.HospitalID != "" {
		q["hospital_id"] = filter.HospitalID
	}
	if filter.IsAvailable != nil {
		q["is_available"] = *filter.IsAvailable
	}
	return findAll[entity.Doctor](ctx, s.c, q, bson.D{{Key: "name", Value: 1}})
}

func (s *doctorStore) FindByID(ctx context.Context, id entity.DoctorID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	if err := findOne(ctx, s.c, bson.M{"_id": id}, &doctor, "doctor", id.String()); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (s *doctorStore) Create(ctx context.Context, doctor *entity.Doctor) error {
	if err := doctor.Validate(); err != nil {
		return err
	}
	if doctor.ID == "" {
		doctor.ID = entity.DoctorID(newID())
	}
	doctor.CreatedAt = time.Now().UTC()
	return insert(ctx, s.c, doctor, "doctor", "id", doctor.ID.String())
}

func (s *doctorStore) Update(ctx context.Context, doctor *entity.Doctor) error {
	if err := entity.ValidateRef("id", doctor.ID.String()); err != nil {
		return err
	}
	if err := doctor.Validate(); err != nil {
		return err
	}
	existing, err := s.FindByID(ctx, doctor.ID)
	if err != nil {
		return err
	}
	doctor.CreatedAt = existing.CreatedAt
	return replace(ctx, s.c, doctor.ID.String(), doctor, "doctor")
}

func (s *doctorStore) Delete(ctx context.Context, id entity.DoctorID) (bool, error) {
	return deleteByID(ctx, s.c, id.String())
}
