package repository

import (
	"context"
	"strings"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) List(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
	var orders []entity.Order
	query := r.db.WithContext(ctx)
	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.UserEmail != "" {
		query = query.Where("user_email = ?", filter.UserEmail)
	}
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id entity.OrderID) (*entity.Order, error) {
	var order entity.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, notFound(err, "order", id.String())
	}
	return &order, nil
}

func (r *orderRepository) FindByIDFold(ctx context.Context, id string) (*entity.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.MissingField("order_id")
	}
	var order entity.Order
	if err := r.db.WithContext(ctx).Where("UPPER(id) = ?", strings.ToUpper(id)).First(&order).Error; err != nil {
		return nil, notFound(err, "order", id)
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	order.ApplyDefaults()
	if err := order.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if isDuplicateKeyError(err) {
			return apperr.Duplicate("order", "id", order.ID.String())
		}
		return err
	}
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id entity.OrderID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, apperr.Invalid("status", "must be one of completed, pending, cancelled")
	}
	result := r.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("order", id.String())
	}
	return r.FindByID(ctx, id)
}

func (r *orderRepository) Delete(ctx context.Context, id entity.OrderID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Order{})
	return result.RowsAffected > 0, result.Error
}
