package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrItemInvalidID   = errors.New("store item id cannot be empty")
	ErrInvalidPrice    = errors.New("store item price must be positive")
	ErrInvalidCategory = errors.New("invalid store category (must be virtual or eco-product)")
)

type Category string

const (
	CategoryVirtual    Category = "virtual"
	CategoryEcoProduct Category = "eco-product"
)

type StoreItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon" yaml:"icon"`
	Price       int      `json:"price" yaml:"price"`
	Category    Category `json:"category" yaml:"category"`
	Available   bool     `json:"available" yaml:"available"`
}

func (i StoreItem) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrItemInvalidID
	}
	if i.Price <= 0 {
		return ErrInvalidPrice
	}
	switch i.Category {
	case CategoryVirtual, CategoryEcoProduct:
	default:
		return ErrInvalidCategory
	}
	return nil
}

type Receipt struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	PricePaid int       `json:"price_paid"`
	Timestamp time.Time `json:"timestamp"`
}
