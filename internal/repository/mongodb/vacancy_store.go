package mongodb

import (
	"context"
	"time"

	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type vacancyStore struct {
	c *mongo.Collection
}

func NewVacancyStore(db *mongo.Database) domainRepo.VacancyRepository {
	return &vacancyStore{c: db.Collection(vacanciesCollection)}
}

func (s *vacancyStore) List(ctx context.Context, filter entity.VacancyFilter) ([]entity.Vacancy, error) {
	q := bson.M{}
	if filter.CompanyID != "" {
		q["company_id"] = filter.CompanyID
	}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	return findAll[entity.Vacancy](ctx, s.c, q, bson.D{{Key: "created_at", Value: -1}})
}

func (s *vacancyStore) FindByID(ctx context.Context, id entity.VacancyID) (*entity.Vacancy, error) {
	var vacancy entity.Vacancy
	if err := findOne(ctx, s.c, bson.M{"_id": id}, &vacancy, "vacancy", id.String()); err != nil {
		return nil, err
	}
	return &vacancy, nil
}

func (s *vacancyStore) Create(ctx context.Context, vacancy *entity.Vacancy) error {
	vacancy.ApplyDefaults()
	if err := vacancy.Validate(); err != nil {
		return err
	}
	if vacancy.ID == "" {
		vacancy.ID = entity.VacancyID(newID())
	}
	vacancy.CreatedAt = time.Now().UTC()
	return insert(ctx, s.c, vacancy, "vacancy", "id", vacancy.ID.String())
}

func (s *vacancyStore) Update(ctx context.Context, vacancy *entity.Vacancy) error {
	if err := entity.ValidateRef("id", vacancy.ID.String()); err != nil {
		return err
	}
	vacancy.ApplyDefaults()
	if err := vacancy.Validate(); err != nil {
		return err
	}
	existing, err := s.FindByID(ctx, vacancy.ID)
	if err != nil {
		return err
	}
	vacancy.CreatedAt = existing.CreatedAt
	return replace(ctx, s.c, vacancy.ID.String(), vacancy, "vacancy")
}

func (s *vacancyStore) Delete(ctx context.Context, id entity.VacancyID) (bool, error) {
	return deleteByID(ctx, s.c, id.String())
}
