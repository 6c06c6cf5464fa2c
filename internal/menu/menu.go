package menu

import (
	"math"

	"github.com/spec-kit/pizza-delivery/internal/domain"
)

// Item is the price of one pizza type at one size.
type Item struct {
	Base     float64
	Toppings float64
}

// Menu resolves prices for a size and pizza type.
type Menu interface {
	Lookup(size, pizzaType string) (Item, bool)
}

// Static is an in-memory price table keyed by size then pizza type.
type Static map[string]map[string]Item

// Default is the house menu.
var Default = Static{
	"small": {
		"margherita": {Base: 8.00, Toppings: 1.50},
		"pepperoni":  {Base: 9.50, Toppings: 1.50},
		"vegetarian": {Base: 9.00, Toppings: 1.50},
		"hawaiian":   {Base: 9.50, Toppings: 1.50},
	},
	"medium": {
		"margherita": {Base: 10.50, Toppings: 2.00},
		"pepperoni":  {Base: 12.00, Toppings: 2.00},
		"vegetarian": {Base: 11.50, Toppings: 2.00},
		"hawaiian":   {Base: 12.00, Toppings: 2.00},
	},
	"large": {
		"margherita": {Base: 13.00, Toppings: 2.50},
		"pepperoni":  {Base: 15.00, Toppings: 2.50},
		"vegetarian": {Base: 14.50, Toppings: 2.50},
		"hawaiian":   {Base: 15.00, Toppings: 2.50},
	},
}

// Lookup implements Menu.
func (s Static) Lookup(size, pizzaType string) (Item, bool) {
	types, ok := s[size]
	if !ok {
		return Item{}, false
	}
	item, ok := types[pizzaType]
	return item, ok
}

// Price computes the order total: (base + toppings surcharge) * quantity.
func Price(m Menu, size, pizzaType string, quantity int, toppings bool) (float64, error) {
	if quantity < 1 {
		return 0, domain.ErrInvalidOrder
	}
	item, ok := m.Lookup(size, pizzaType)
	if !ok {
		return 0, domain.ErrInvalidOrder
	}
	unit := item.Base
	if toppings {
		unit += item.Toppings
	}
	return math.Round(unit*float64(quantity)*100) / 100, nil
}
