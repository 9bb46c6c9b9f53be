package mongodb

import (
	"context"
	"time"

	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type companyStore struct {
	c *mongo.Collection
}

func NewCompanyStore(db *mongo.Database) domainRepo.CompanyRepository {
	return &companyStore{c: db.Collection(companiesCollection)}
}

func (s *companyStore) List(ctx context.Context, filter entity.CompanyFilter) ([]entity.Company, error) {
	q := bson.M{}
	if filter.Industry != "" {
		q["industry"] = filter.Industry
	}
	return findAll[entity.Company](ctx, s.c, q, bson.D{{Key: "name", Value: 1}})
}

func (s *companyStore) FindByID(ctx context.Context, id entity.CompanyID) (*entity.Company, error) {
	var company entity.Company
	if err := findOne(ctx, s.c, bson.M{"_id": id}, &company, "company", id.String()); err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *companyStore) Create(ctx context.Context, company *entity.Company) error {
	if err := company.Validate(); err != nil {
		return err
	}
	if company.ID == "" {
		company.ID = entity.CompanyID(newID())
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now
	return insert(ctx, s.c, company, "company", "id", company.ID.String())
}

func (s *companyStore) Update(ctx context.Context, company *entity.Company) error {
	if err := entity.ValidateRef("id", company.ID.String()); err != nil {
		return err
	}
	if err := company.Validate(); err != nil {
		return err
	}
	existing, err := s.FindByID(ctx, company.ID)
	if err != nil {
		return err
	}
	company.CreatedAt = existing.CreatedAt
	company.UpdatedAt = time.Now().UTC()
	return replace(ctx, s.c, company.ID.String(), company, "company")
}

func (s *companyStore) Delete(ctx context.Context, id entity.CompanyID) (bool, error) {
	return deleteByID(ctx, s.c, id.String())
}
