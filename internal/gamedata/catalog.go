package gamedata

// Catalog is an indexed, read-only view over the game's servant and item
// definitions. Lookups never fail hard: a missing entry reports ok=false and
// callers treat it as a zero-cost contribution.
type Catalog struct {
	servants map[int]*Servant
	items    map[int]*Item
}

// NewCatalog builds an indexed catalog from servant and item definitions.
// Later duplicates of the same ID win, matching config sync semantics.
func NewCatalog(servants []*Servant, items []*Item) *Catalog {
	c := &Catalog{
		servants: make(map[int]*Servant, len(servants)),
		items:    make(map[int]*Item, len(items)),
	}
	for _, s := range servants {
		if s != nil {
			c.servants[s.ID] = s
		}
	}
	for _, it := range items {
		if it != nil {
			c.items[it.ID] = it
		}
	}
	return c
}

// Servant returns the catalog definition for the given servant ID.
func (c *Catalog) Servant(id int) (*Servant, bool) {
	s, ok := c.servants[id]
	return s, ok
}

// Item returns the catalog definition for the given item ID.
func (c *Catalog) Item(id int) (*Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// ServantCount reports how many servants the catalog defines.
func (c *Catalog) ServantCount() int {
	return len(c.servants)
}

// ItemCount reports how many items the catalog defines.
func (c *Catalog) ItemCount() int {
	return len(c.items)
}
