package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"readquest/internal/engine"
	"readquest/internal/model"
	"readquest/internal/storage"
)

// PendingPurchase is a quoted purchase waiting for the reader to confirm.
// Its token can be used once.
type PendingPurchase struct {
	Token     string
	Item      model.ShopItem
	ManaAfter int
}

// PendingReset is a requested reset waiting for confirmation.
type PendingReset struct {
	Token string
}

// Shop returns the catalog in display order.
func (c *Coordinator) Shop() []model.ShopItem {
	return c.catalog.Items()
}

// QuotePurchase checks that an item can be bought right now and returns a
// quote to confirm. Nothing changes until ConfirmPurchase.
func (c *Coordinator) QuotePurchase(itemID string) (PendingPurchase, error) {
	item, err := c.catalog.Find(itemID)
	if err != nil {
		return PendingPurchase{}, err
	}
	after, err := engine.Purchase(c.stats, item)
	if err != nil {
		return PendingPurchase{}, err
	}
	p := PendingPurchase{Token: uuid.NewString(), Item: item, ManaAfter: after.Mana}
	c.purchases[p.Token] = p
	return p, nil
}

// ConfirmPurchase commits a quoted purchase. The ledger checks run again
// against the current stats, so a stale quote cannot overspend.
func (c *Coordinator) ConfirmPurchase(ctx context.Context, token string) (model.HeroStats, error) {
	p, ok := c.purchases[token]
	if !ok {
		return c.stats, fmt.Errorf("%w: unknown or used purchase token", model.ErrNotConfirmed)
	}
	delete(c.purchases, token)

	next, err := engine.Purchase(c.stats, p.Item)
	if err != nil {
		return c.stats, err
	}
	c.stats = next
	c.persist(ctx, func(s storage.Store) error { return s.Save(ctx, c.snapshot()) })
	c.logger.Printf("purchased %s for %d mana", p.Item.ID, p.Item.Price)
	return c.stats, nil
}

// CancelPurchase discards a quote.
func (c *Coordinator) CancelPurchase(token string) {
	delete(c.purchases, token)
}

// RequestReset starts the two-step reset.
func (c *Coordinator) RequestReset() PendingReset {
	r := PendingReset{Token: uuid.NewString()}
	c.resets[r.Token] = r
	return r
}

// CancelReset discards a reset request.
func (c *Coordinator) CancelReset(token string) {
	delete(c.resets, token)
}

// ConfirmReset clears durable state and returns the hero to defaults.
// It cannot be undone.
func (c *Coordinator) ConfirmReset(ctx context.Context, token string) error {
	if _, ok := c.resets[token]; !ok {
		return fmt.Errorf("%w: unknown or used reset token", model.ErrNotConfirmed)
	}
	delete(c.resets, token)

	c.stats = model.DefaultStats()
	c.books = []model.Book{}
	c.sessions = nil
	c.reading = nil
	c.purchases = map[string]PendingPurchase{}
	c.firstRun = true
	c.view = ViewDashboard
	c.persist(ctx, func(s storage.Store) error { return s.Reset(ctx) })
	c.logger.Printf("progress reset")
	return nil
}
