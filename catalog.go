package vector

import (
	"slices"
	"strings"

	"github.com/ErikKalkoken/go-set"
)

// ItemCatalog is the set of item identifiers the config accepts.
type ItemCatalog interface {
	Has(name string) bool
	Names() []string
}

// NormalizeItem lower-cases name and adds the minecraft namespace when it is
// missing, so "BLAZE_ROD" and "minecraft:blaze_rod" name the same item.
func NormalizeItem(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" && !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	return name
}

// SetCatalog is an ItemCatalog backed by a fixed set of names.
type SetCatalog struct {
	names set.Set[string]
}

// NewItemCatalog creates a catalog of the given item names.
func NewItemCatalog(names ...string) *SetCatalog {
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		if n = NormalizeItem(n); n != "" {
			normalized = append(normalized, n)
		}
	}
	return &SetCatalog{names: set.Of(normalized...)}
}

// Has reports whether name, after normalisation, is a known item.
func (c *SetCatalog) Has(name string) bool {
	return c.names.Contains(NormalizeItem(name))
}

// Names returns all item names in sorted order.
func (c *SetCatalog) Names() []string {
	return slices.Sorted(c.names.All())
}
