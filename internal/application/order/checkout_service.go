package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/cart"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/order"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// orderNumberAttempts bounds how often a colliding order number is regenerated
const orderNumberAttempts = 3

// CheckoutConfig tunes retries and idempotency
type CheckoutConfig struct {
	// MaxRetries is how many times a transient failure is retried
	MaxRetries int
	// RetryBackoff is multiplied by the attempt number between retries
	RetryBackoff time.Duration
	// IdempotencyTTL is how long a checkout key is remembered
	IdempotencyTTL time.Duration
}

// DefaultCheckoutConfig returns the defaults used when nothing is configured
func DefaultCheckoutConfig() CheckoutConfig {
	return CheckoutConfig{
		MaxRetries:     3,
		RetryBackoff:   50 * time.Millisecond,
		IdempotencyTTL: 24 * time.Hour,
	}
}

// CheckoutRecorder receives checkout outcomes for metrics
type CheckoutRecorder interface {
	OrderPlaced(ctx context.Context, itemCount int, total decimal.Decimal, elapsed time.Duration)
	CheckoutFailed(ctx context.Context, reason string, elapsed time.Duration)
}

// CheckoutService turns a user's cart into an order. Stock is reserved, the
// order is written and the cart is emptied in one transaction: either all of
// it happens or none of it does.
type CheckoutService struct {
	txScope        TransactionScope
	orderRepo      order.OrderRepository
	idempotency    shared.IdempotencyStore
	eventPublisher shared.EventPublisher
	metrics        CheckoutRecorder
	isRetryable    func(error) bool
	cfg            CheckoutConfig
	logger         *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(txScope TransactionScope, orderRepo order.OrderRepository, cfg CheckoutConfig, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		txScope:   txScope,
		orderRepo: orderRepo,
		isRetryable: func(err error) bool {
			return errors.Is(err, shared.ErrConcurrencyConflict)
		},
		cfg:    cfg,
		logger: logger,
	}
}

// SetEventPublisher sets the publisher for OrderPlaced events
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the recorder for checkout outcomes
func (s *CheckoutService) SetMetrics(recorder CheckoutRecorder) {
	s.metrics = recorder
}

// SetIdempotencyStore enables Idempotency-Key handling
func (s *CheckoutService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// SetRetryClassifier sets the predicate deciding which errors are retried
func (s *CheckoutService) SetRetryClassifier(fn func(error) bool) {
	if fn != nil {
		s.isRetryable = fn
	}
}

// Checkout places an order from the user's cart. A non-empty idempotencyKey
// makes repeated submissions return the first order instead of placing a
// second one.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest, idempotencyKey string) (*OrderResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	delivery := order.DeliveryInfo{Address: req.DeliveryAddress, Phone: req.Phone, Notes: req.Notes}
	if err := delivery.Validate(); err != nil {
		return nil, err
	}

	if idempotencyKey == "" || s.idempotency == nil {
		return s.checkoutWithRetry(ctx, userID, delivery)
	}

	key := fmt.Sprintf("checkout:%s:%s", userID, idempotencyKey)
	claimed, result, err := s.idempotency.Claim(ctx, key, s.cfg.IdempotencyTTL)
	if err != nil {
		return nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if !claimed {
		return s.replay(ctx, userID, result)
	}

	resp, err := s.checkoutWithRetry(ctx, userID, delivery)
	if err != nil {
		if relErr := s.idempotency.Release(ctx, key); relErr != nil {
			s.logger.Warn("failed to release idempotency key", zap.String("key", key), zap.Error(relErr))
		}
		return nil, err
	}
	if err := s.idempotency.Complete(ctx, key, resp.ID.String(), s.cfg.IdempotencyTTL); err != nil {
		s.logger.Warn("failed to complete idempotency key", zap.String("key", key), zap.Error(err))
	}
	return resp, nil
}

// replay returns the order recorded for a completed key. A key that is still
// in flight is a duplicate request.
func (s *CheckoutService) replay(ctx context.Context, userID uuid.UUID, result string) (*OrderResponse, error) {
	if result == "" {
		return nil, shared.ErrDuplicateRequest
	}
	orderID, err := uuid.Parse(result)
	if err != nil {
		return nil, fmt.Errorf("corrupt idempotency result %q: %w", result, err)
	}
	o, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

func (s *CheckoutService) checkoutWithRetry(ctx context.Context, userID uuid.UUID, delivery order.DeliveryInfo) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "place_order")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrUserID, userID.String())
	start := time.Now()

	var (
		placed *order.Order
		err    error
	)
	attempt := 0
	for ; ; attempt++ {
		placed, err = s.placeOrder(ctx, userID, delivery)
		if err == nil || attempt >= s.cfg.MaxRetries || !s.isRetryable(err) {
			break
		}
		s.logger.Info("retrying checkout after transient failure",
			zap.String("user_id", userID.String()),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			err = ctx.Err()
			s.recordFailure(ctx, err, start)
			telemetry.RecordError(span, err)
			return nil, err
		case <-time.After(s.cfg.RetryBackoff * time.Duration(attempt+1)):
		}
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrAttempt, attempt+1)
	if err != nil {
		s.recordFailure(ctx, err, start)
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, placed.ID.String(),
		telemetry.SpanAttrOrderNumber, placed.OrderNumber,
		telemetry.SpanAttrItemCount, len(placed.Items),
		telemetry.SpanAttrTotal, placed.TotalAmount.StringFixed(2),
	)
	if s.metrics != nil {
		s.metrics.OrderPlaced(ctx, len(placed.Items), placed.TotalAmount, time.Since(start))
	}
	s.logger.Info("order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("order_number", placed.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.String("total_amount", placed.TotalAmount.StringFixed(2)),
	)
	s.publishEvents(ctx, placed)
	return ToOrderResponse(placed), nil
}

func (s *CheckoutService) recordFailure(ctx context.Context, err error, start time.Time) {
	if s.metrics == nil {
		return
	}
	reason := "INTERNAL"
	var derr *shared.DomainError
	if errors.As(err, &derr) {
		reason = derr.Code
	} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		reason = "CANCELLED"
	}
	s.metrics.CheckoutFailed(ctx, reason, time.Since(start))
}

// placeOrder runs one checkout attempt inside a single transaction
func (s *CheckoutService) placeOrder(ctx context.Context, userID uuid.UUID, delivery order.DeliveryInfo) (*order.Order, error) {
	var placed *order.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.Carts().FindByOwner(ctx, cart.UserOwner(userID))
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if c == nil || c.IsEmpty() {
			return shared.NewDomainError("EMPTY_CART", "Your cart is empty")
		}

		// Products were loaded with the cart inside this transaction
		lines := make([]order.Line, 0, len(c.Items))
		for _, item := range c.Items {
			product := item.Product
			if product == nil || !product.IsActive() {
				return shared.NewNotFoundError("Product")
			}
			if err := product.EnsureAvailable(item.Quantity); err != nil {
				s.logger.Info("checkout rejected: insufficient stock",
					zap.String("product_id", product.ID.String()),
					zap.Int("requested", item.Quantity),
					zap.Int("available", product.StockQuantity),
				)
				return err
			}
			lines = append(lines, order.Line{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.EffectivePrice(),
			})
		}

		o, err := order.PlaceOrder(userID, delivery, lines)
		if err != nil {
			return err
		}

		// A fixed lock order keeps concurrent checkouts from deadlocking
		reserve := make([]order.Line, len(lines))
		copy(reserve, lines)
		sort.Slice(reserve, func(i, j int) bool {
			return reserve[i].ProductID.String() < reserve[j].ProductID.String()
		})
		for _, line := range reserve {
			if err := repos.Stock().Reserve(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		if err := s.createWithFreshNumber(ctx, repos.Orders(), o); err != nil {
			return err
		}

		if err := repos.Carts().ClearItems(ctx, c.ID); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (s *CheckoutService) createWithFreshNumber(ctx context.Context, orders order.OrderRepository, o *order.Order) error {
	for attempt := 1; ; attempt++ {
		err := orders.Create(ctx, o)
		if !errors.Is(err, order.ErrDuplicateOrderNumber) || attempt >= orderNumberAttempts {
			return err
		}
		s.logger.Warn("order number collision", zap.String("order_number", o.OrderNumber))
		o.RegenerateNumber()
	}
}

func (s *CheckoutService) publishEvents(ctx context.Context, o *order.Order) {
	defer o.ClearDomainEvents()
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Error("failed to publish order events",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}
}
