package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/pizza-delivery/internal/domain"
	"github.com/spec-kit/pizza-delivery/internal/events"
	"github.com/spec-kit/pizza-delivery/internal/menu"
	"github.com/spec-kit/pizza-delivery/internal/observability"
	"github.com/spec-kit/pizza-delivery/internal/repository"
)

// OrderService implements the order ledger. Every method receives the
// authenticated identity of the caller.
type OrderService struct {
	orders     repository.OrderRepository
	menu       menu.Menu
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// OrderDependencies groups collaborators. Menu defaults to menu.Default.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	Menu       menu.Menu
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// CreateOrderInput carries a new order request.
type CreateOrderInput struct {
	Size      string
	PizzaType string
	Quantity  int
	Toppings  bool
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	m := deps.Menu
	if m == nil {
		m = menu.Default
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:     deps.OrderRepo,
		menu:       m,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateOrder prices and stores a pending order for the caller.
func (s *OrderService) CreateOrder(ctx context.Context, identity *domain.User, input CreateOrderInput) (*domain.Order, error) {
	if err := requireRole(identity, domain.RoleUser); err != nil {
		return nil, err
	}

	size := strings.ToLower(strings.TrimSpace(input.Size))
	pizzaType := strings.ToLower(strings.TrimSpace(input.PizzaType))
	price, err := menu.Price(s.menu, size, pizzaType, input.Quantity, input.Toppings)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:    identity.ID,
		Size:      size,
		PizzaType: pizzaType,
		Quantity:  input.Quantity,
		Toppings:  input.Toppings,
		Price:     price,
		Status:    domain.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.metrics.RecordOrderCreated(order.Size)
	s.publish(ctx, events.EventOrderCreated, order, identity, events.OrderCreatedPayload{
		Size:      order.Size,
		PizzaType: order.PizzaType,
		Quantity:  order.Quantity,
		Price:     order.Price,
	})
	return order, nil
}

// GetOrder returns one of the caller's orders. Orders owned by someone else
// are reported as not found.
func (s *OrderService) GetOrder(ctx context.Context, identity *domain.User, id string) (*domain.Order, error) {
	if err := requireRole(identity, domain.RoleUser); err != nil {
		return nil, err
	}
	return s.visibleOrder(ctx, identity, id)
}

// ListOrders returns the caller's orders, or every order for admins.
func (s *OrderService) ListOrders(ctx context.Context, identity *domain.User) ([]domain.Order, error) {
	if err := requireRole(identity, domain.RoleUser, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if identity.Role == domain.RoleAdmin {
		return s.orders.ListAll(ctx)
	}
	return s.orders.ListByUser(ctx, identity.ID)
}

// UpdateOrderStatus moves an order forward. Backward or repeated transitions
// are rejected, and a concurrent change between read and write loses.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, identity *domain.User, id, rawStatus string) (*domain.Order, error) {
	if err := requireRole(identity, domain.RoleAdmin); err != nil {
		return nil, err
	}
	next, err := domain.ParseOrderStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := order.Status
	if !previous.CanTransitionTo(next) {
		return nil, domain.ErrInvalidStatusTransition
	}

	order.Status = next
	if err := s.orders.UpdateStatus(ctx, order, previous); err != nil {
		return nil, err
	}

	s.metrics.RecordStatusChange(string(next))
	s.publish(ctx, events.EventOrderStatusChanged, order, identity, events.OrderStatusChangedPayload{
		CustomerID: order.UserID,
		OldStatus:  previous,
		NewStatus:  next,
	})
	return order, nil
}

// GetOrderStatus returns the status of an order. Users only see their own.
func (s *OrderService) GetOrderStatus(ctx context.Context, identity *domain.User, id string) (domain.OrderStatus, error) {
	if err := requireRole(identity, domain.RoleUser, domain.RoleAdmin); err != nil {
		return "", err
	}
	order, err := s.visibleOrder(ctx, identity, id)
	if err != nil {
		return "", err
	}
	return order.Status, nil
}

// DeleteOrder removes one of the caller's orders.
func (s *OrderService) DeleteOrder(ctx context.Context, identity *domain.User, id string) error {
	if err := requireRole(identity, domain.RoleUser); err != nil {
		return err
	}
	order, err := s.visibleOrder(ctx, identity, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, order.ID); err != nil {
		return err
	}
	s.publish(ctx, events.EventOrderDeleted, order, identity, nil)
	return nil
}

func (s *OrderService) visibleOrder(ctx context.Context, identity *domain.User, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.Role != domain.RoleAdmin && order.UserID != identity.ID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType events.EventType, order *domain.Order, actor *domain.User, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   order.ID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: s.now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(eventType)),
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

func requireRole(identity *domain.User, allowed ...domain.Role) error {
	if identity == nil {
		return domain.ErrMissingToken
	}
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return domain.ErrInsufficientPrivilege
}
