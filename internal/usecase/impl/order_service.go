// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	deliverycontext "saborreal/internal/delivery/context"
	"saborreal/internal/domain/entity"
	domainerrors "saborreal/internal/domain/errors"
	"saborreal/internal/domain/repository"
	"saborreal/internal/domain/service"
	"saborreal/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// phonePattern is the permissive delivery phone shape: digits, '+', '-' and
// spaces, 6 to 20 characters.
var phonePattern = regexp.MustCompile(`^[\d+\-\s]{6,20}$`)

const minDeliveryAddressLen = 5

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// OrderServiceParams holds dependencies for the order service, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService. It receives all dependencies as interfaces.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout places an order for the given user. The reservation loop runs
// inside a single database transaction: each line's stock is taken through an
// atomic conditional decrement, and a failure on any line rolls the whole
// checkout back, so no stock stays reserved for an order that was never
// written.
func (srv *orderService) Checkout(ctx context.Context, userID uuid.UUID, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	delivery, err := validateDeliveryInfo(input)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting checkout",
		slog.Any("userID", userID),
		slog.Int("items", len(input.Items)),
	)

	var created *entity.Order
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		products := repoFactory.NewProductRepository()
		orders := repoFactory.NewOrderRepository()

		total := decimal.Zero
		lines := make([]entity.OrderLine, 0, len(input.Items))

		for _, item := range input.Items {
			if item.Qty <= 0 {
				return domainerrors.ErrInvalidQuantity.WithDetails(item.ProductID.String())
			}

			product, err := products.FindActiveByID(ctx, item.ProductID)
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductUnavailable.WithDetails(item.ProductID.String())
			}
			if err != nil {
				return errors.Wrap(err, "failed to look up product")
			}

			// Single conditional check-and-decrement; a false match means the
			// stock is short or a concurrent reservation won the race.
			matched, err := products.DecrementStock(ctx, product.ID, item.Qty)
			if err != nil {
				return errors.Wrap(err, "failed to decrement stock")
			}
			if !matched {
				return domainerrors.ErrInsufficientStock.WithDetails(product.Name)
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Qty))).Round(2)
			total = total.Add(subtotal)

			// Snapshot copied at this instant, never re-derived from the
			// live product.
			lines = append(lines, entity.OrderLine{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Qty:       item.Qty,
				Subtotal:  subtotal,
				ImageURL:  product.ImageURL,
			})
		}

		now := srv.now().UTC()
		order := &entity.Order{
			Code:      entity.NewOrderCode(now),
			UserID:    userID,
			Lines:     lines,
			Total:     total.Round(2),
			Status:    entity.OrderCreated,
			Delivery:  *delivery,
			CreatedAt: now,
		}

		if err := orders.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		created = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Checkout failed",
			slog.Any("userID", userID),
			slog.Any("error", err),
		)

		return nil, err
	}

	srv.log(ctx).Info("Checkout completed",
		slog.Any("orderID", created.ID),
		slog.String("code", created.Code),
		slog.String("total", created.Total.StringFixed(2)),
	)

	srv.publishEvent(ctx, service.OrderEventCreated, created.ID, created.Code, created.UserID, created.Status, created.Total)

	return &usecase.CheckoutOutput{Order: created}, nil
}

// ListMine returns the caller's orders, newest first.
func (srv *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetMine returns the caller's order. A foreign order is indistinguishable
// from a missing one.
func (srv *orderService) GetMine(ctx context.Context, orderID, userID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByIDAndOwner(ctx, orderID, userID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// AdminList returns every order, newest first.
func (srv *orderService) AdminList(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// AdminGet returns any order by ID.
func (srv *orderService) AdminGet(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// AdminUpdateStatus overwrites an order's status unconditionally.
func (srv *orderService) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error {
	if !status.IsValid() {
		return domainerrors.ErrInvalidStatus.WithDetails(status.String())
	}

	if err := srv.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated",
		slog.Any("orderID", orderID),
		slog.String("status", status.String()),
	)

	srv.publishEvent(ctx, service.OrderEventStatusUpdated, orderID, "", uuid.Nil, status, decimal.Zero)

	return nil
}

// publishEvent emits an order event best-effort; a publish failure is logged
// and never fails the request.
func (srv *orderService) publishEvent(ctx context.Context, eventType string, orderID uuid.UUID, code string, userID uuid.UUID, status entity.OrderStatus, total decimal.Decimal) {
	if srv.publisher == nil {
		return
	}

	event := &service.OrderEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      eventType,
		OrderID:   orderID.String(),
		OrderCode: code,
		Status:    status.String(),
		Total:     total.StringFixed(2),
	}
	if userID != uuid.Nil {
		event.UserID = userID.String()
	}

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event",
			slog.String("type", eventType),
			slog.Any("orderID", orderID),
			slog.Any("error", err),
		)
	}
}

// validateDeliveryInfo applies the delivery field rules in a fixed order, the
// first failure wins. It is pure; the cart-emptiness check happens before it
// is called.
func validateDeliveryInfo(input *usecase.CheckoutInput) (*entity.DeliveryInfo, error) {
	name := strings.TrimSpace(input.DeliveryName)
	if name == "" {
		return nil, domainerrors.ErrDeliveryName
	}

	phone := strings.TrimSpace(input.DeliveryPhone)
	if !phonePattern.MatchString(phone) {
		return nil, domainerrors.ErrDeliveryPhone
	}

	address := strings.TrimSpace(input.DeliveryAddress)
	if len([]rune(address)) < minDeliveryAddressLen {
		return nil, domainerrors.ErrDeliveryAddress
	}

	return &entity.DeliveryInfo{
		Name:    name,
		Phone:   phone,
		Address: address,
		Notes:   strings.TrimSpace(input.Notes),
	}, nil
}
