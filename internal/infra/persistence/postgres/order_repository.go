package postgres

import (
	"context"

	"saborreal/internal/domain/entity"
	domainerrors "saborreal/internal/domain/errors"
	"saborreal/internal/domain/repository"
	"saborreal/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order with its line snapshots. GORM inserts the
// association rows together with the order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	for i := range order.Lines {
		order.Lines[i].ProductID = orderM.Lines[i].ProductID
	}

	return nil
}

// ListByOwner returns the given user's orders, newest first.
func (repo *orderRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by owner")
	}

	return toOrderDomainSlice(orderModels), nil
}

// FindByIDAndOwner retrieves an order only if it belongs to the given user.
func (repo *orderRepository) FindByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID and owner")
	}

	return toOrderDomain(&orderM), nil
}

// ListAll returns every order, newest first.
func (repo *orderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list all orders")
	}

	return toOrderDomainSlice(orderModels), nil
}

// FindByID retrieves an order regardless of owner.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// UpdateStatus unconditionally overwrites the order status.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// toOrderDomain converts a GORM model to a domain entity.
func toOrderDomain(orderM *model.OrderModel) *entity.Order {
	lines := make([]entity.OrderLine, 0, len(orderM.Lines))
	for _, lineM := range orderM.Lines {
		lines = append(lines, entity.OrderLine{
			ProductID: lineM.ProductID,
			Name:      lineM.Name,
			UnitPrice: lineM.UnitPrice,
			Qty:       lineM.Qty,
			Subtotal:  lineM.Subtotal,
			ImageURL:  lineM.ImageURL,
		})
	}

	return &entity.Order{
		ID:     orderM.ID,
		Code:   orderM.Code,
		UserID: orderM.UserID,
		Lines:  lines,
		Total:  orderM.Total,
		Status: entity.OrderStatus(orderM.Status),
		Delivery: entity.DeliveryInfo{
			Name:    orderM.DeliveryName,
			Phone:   orderM.DeliveryPhone,
			Address: orderM.DeliveryAddress,
			Notes:   orderM.DeliveryNotes,
		},
		CreatedAt: orderM.CreatedAt,
	}
}

func toOrderDomainSlice(orderModels []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

// fromOrderDomain converts a domain entity to a GORM model.
func fromOrderDomain(order *entity.Order) *model.OrderModel {
	lines := make([]model.OrderLineModel, 0, len(order.Lines))
	for i, line := range order.Lines {
		lines = append(lines, model.OrderLineModel{
			Position:  i,
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Qty:       line.Qty,
			Subtotal:  line.Subtotal,
			ImageURL:  line.ImageURL,
		})
	}

	return &model.OrderModel{
		Code:            order.Code,
		UserID:          order.UserID,
		Total:           order.Total,
		Status:          order.Status.String(),
		DeliveryName:    order.Delivery.Name,
		DeliveryPhone:   order.Delivery.Phone,
		DeliveryAddress: order.Delivery.Address,
		DeliveryNotes:   order.Delivery.Notes,
		CreatedAt:       order.CreatedAt,
		Lines:           lines,
	}
}
