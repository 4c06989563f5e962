package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

// Catalog is the immutable set of purchasable items.
type Catalog struct {
	order []string
	items map[string]domain.StoreItem
}

func NewCatalog(items ...domain.StoreItem) (*Catalog, error) {
	c := &Catalog{items: make(map[string]domain.StoreItem, len(items))}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("store item %q: %w", item.ID, err)
		}
		if _, exists := c.items[item.ID]; exists {
			return nil, fmt.Errorf("store item %q: %w", item.ID, domain.ErrDuplicateID)
		}
		c.items[item.ID] = item
		c.order = append(c.order, item.ID)
	}

	return c, nil
}

func (c *Catalog) Get(id string) (domain.StoreItem, error) {
	item, ok := c.items[id]
	if !ok {
		return domain.StoreItem{}, domain.ErrItemNotFound
	}
	return item, nil
}

// List returns the items of a category in catalog order; an empty category means all.
func (c *Catalog) List(category domain.Category) []domain.StoreItem {
	list := make([]domain.StoreItem, 0, len(c.order))
	for _, id := range c.order {
		item := c.items[id]
		if category == "" || item.Category == category {
			list = append(list, item)
		}
	}
	return list
}

// Purchase debits the item's price from the ledger and returns a receipt.
// A failed check leaves the ledger unchanged.
func Purchase(item domain.StoreItem, ledger *PointsLedger, now time.Time) (domain.Receipt, error) {
	if !item.Available {
		return domain.Receipt{}, domain.ErrItemUnavailable
	}

	if err := ledger.Debit(item.Price, "purchase "+item.ID); err != nil {
		return domain.Receipt{}, err
	}

	return domain.Receipt{
		ID:        uuid.NewString(),
		ItemID:    item.ID,
		PricePaid: item.Price,
		Timestamp: now,
	}, nil
}
