package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/store"
)

const emptyMenuMessage = "Sorry, no items are available at the moment."

// Catalog is the read-only menu lookup used for numeric validation and for
// rendering the menu to the visitor.
type Catalog struct {
	menu store.MenuStore
}

func New(menu store.MenuStore) *Catalog {
	return &Catalog{menu: menu}
}

func (c *Catalog) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	return c.menu.ListAvailable(ctx)
}

// FindByNumber returns the available item with the given number, or
// store.ErrNotFound for unknown and unavailable numbers alike.
func (c *Catalog) FindByNumber(ctx context.Context, itemNumber int) (*models.MenuItem, error) {
	return c.menu.FindByNumber(ctx, itemNumber)
}

// RenderMenu groups available items by category in the fixed display order.
func (c *Catalog) RenderMenu(ctx context.Context) (string, error) {
	items, err := c.menu.ListAvailable(ctx)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return emptyMenuMessage, nil
	}

	grouped := make(map[string][]models.MenuItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	var b strings.Builder
	for _, category := range models.CategoryDisplayOrder {
		section := grouped[category]
		if len(section) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n📌 %s\n", strings.ToUpper(category))
		b.WriteString(strings.Repeat("─", 25) + "\n")
		for _, item := range section {
			fmt.Fprintf(&b, "%d. %s - %s\n", item.ItemNumber, item.Name, models.FormatNaira(item.Price))
			fmt.Fprintf(&b, "   %s\n\n", item.Description)
		}
	}
	return b.String(), nil
}
