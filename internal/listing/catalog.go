package listing

// Catalog is the fixed set of selectable tags, ordered as loaded.
// It is read-only for the lifetime of the process and therefore safe
// for concurrent use without synchronization.
type Catalog struct {
	tags []string
}

// NewCatalog builds a catalog from an already loaded tag list.
func NewCatalog(tags []string) *Catalog {
	own := make([]string, len(tags))
	copy(own, tags)
	return &Catalog{tags: own}
}

// Contains reports whether the tag is part of the catalog.
func (c *Catalog) Contains(tag string) bool {
	for _, t := range c.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags returns the catalog entries in load order.
func (c *Catalog) Tags() []string {
	out := make([]string, len(c.tags))
	copy(out, c.tags)
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.tags)
}
