package engine

import (
	"fmt"

	"readquest/internal/model"
)

// Purchase spends mana on a shop item. Checks run in order: the item must be
// unlocked, then the hero must afford it. On failure stats are returned
// unchanged. Only mana changes on success.
func Purchase(stats model.HeroStats, item model.ShopItem) (model.HeroStats, error) {
	if item.Locked {
		return stats, fmt.Errorf("%w: %s", model.ErrItemLocked, item.Name)
	}
	if item.Price <= 0 {
		return stats, model.InputError{Field: "price", Reason: fmt.Sprintf("%d is not positive", item.Price)}
	}
	if stats.Mana < item.Price {
		return stats, model.FundsError{Price: item.Price, Mana: stats.Mana}
	}
	stats.Mana -= item.Price
	return stats, nil
}
