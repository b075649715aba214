// Package catalog holds the static shop catalog. It is rebuilt from embedded
// configuration on every load and never persisted.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"readquest/internal/model"
)

//go:embed shop.yaml
var shopYAML []byte

type file struct {
	Items []model.ShopItem `yaml:"items"`
}

// Catalog is an ordered, read-only list of shop items.
type Catalog struct {
	items []model.ShopItem
}

// Default returns the built-in catalog. The embedded file is checked by
// tests, so a parse failure here is a build defect.
func Default() *Catalog {
	c, err := Parse(shopYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded shop.yaml: %v", err))
	}
	return c
}

// Parse decodes a catalog document and checks every entry.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]bool, len(f.Items))
	for i, it := range f.Items {
		id := strings.TrimSpace(it.ID)
		switch {
		case id == "":
			return nil, fmt.Errorf("item %d: %w", i, model.InputError{Field: "id", Reason: "empty"})
		case seen[id]:
			return nil, fmt.Errorf("item %s: %w", id, model.InputError{Field: "id", Reason: "duplicate"})
		case strings.TrimSpace(it.Name) == "":
			return nil, fmt.Errorf("item %s: %w", id, model.InputError{Field: "name", Reason: "empty"})
		case it.Price <= 0:
			return nil, fmt.Errorf("item %s: %w", id, model.InputError{Field: "price", Reason: fmt.Sprintf("%d is not positive", it.Price)})
		}
		seen[id] = true
		f.Items[i].ID = id
	}
	return &Catalog{items: f.Items}, nil
}

// Items returns a copy of the catalog in display order.
func (c *Catalog) Items() []model.ShopItem {
	out := make([]model.ShopItem, len(c.items))
	copy(out, c.items)
	return out
}

// Find looks an item up by id.
func (c *Catalog) Find(id string) (model.ShopItem, error) {
	id = strings.TrimSpace(id)
	for _, it := range c.items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.ShopItem{}, fmt.Errorf("%w: %q", model.ErrItemNotFound, id)
}
