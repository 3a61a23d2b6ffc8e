package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/metrics"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
)

var ErrValidation = errors.New("validation")

const AddedMessage = "item added to cart"

type CartStore interface {
	AddItem(ctx context.Context, p models.Product) (models.CartItem, error)
	ListItems(ctx context.Context) ([]models.CartItem, error)
	State() cart.State
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type CartService struct {
	Store     CartStore
	Publisher EventPublisher
	Metrics   *metrics.Metrics
}

func (s *CartService) Ready() bool {
	return s.Store.State() == cart.Ready
}

// Add stores one line for p. Publishing the cart event is best effort and
// never fails the add.
func (s *CartService) Add(ctx context.Context, p models.Product) (models.CartItem, error) {
	l := logging.FromContext(ctx).With("service", "cart", "op", "add")

	f, _ := p.Price.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return models.CartItem{}, fmt.Errorf("price %s is not representable as a real number: %w", p.Price, ErrValidation)
	}

	item, err := s.Store.AddItem(ctx, p)
	s.Metrics.ObserveCartOp("add", err)
	if err != nil {
		l.Error("cart_add_failed", "title", p.Title, "error", err)
		return models.CartItem{}, err
	}
	l.Info("cart_item_added", "id", item.ID, "title", item.Title)

	s.publish(ctx, item)
	return item, nil
}

func (s *CartService) publish(ctx context.Context, item models.CartItem) {
	if s.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ev := mykafka.NewEvent("item_added", item)
	if err := s.Publisher.PublishEvent(ctx, mykafka.CartTopic, strconv.FormatUint(uint64(item.ID), 10), ev); err != nil {
		s.Metrics.ObserveEventFailure()
		logging.FromContext(ctx).Warn("cart_event_publish_failed", "id", item.ID, "error", err)
	}
}

// List returns every cart line. A read failure is returned as an error,
// never as an empty cart.
func (s *CartService) List(ctx context.Context) ([]models.CartItem, error) {
	l := logging.FromContext(ctx).With("service", "cart", "op", "list")

	items, err := s.Store.ListItems(ctx)
	s.Metrics.ObserveCartOp("list", err)
	if err != nil {
		l.Error("cart_list_failed", "error", err)
		return nil, err
	}
	l.Debug("cart_listed", "count", len(items))
	return items, nil
}
