package domain

// Category is the classification label assigned to a pair.
// Exactly one category is assigned per analysis; the first matching
// check in precedence order (safety → supply → volume → pattern) wins.
type Category string

const (
	CategoryUnsafe     Category = "unsafe"
	CategoryBundled    Category = "bundled"
	CategoryFakeVolume Category = "fake_volume"
	CategoryRugged     Category = "rugged"
	CategoryPumped     Category = "pumped"
	CategoryNewPair    Category = "new_pair"
	CategoryNormal     Category = "normal"
)

// String returns the string representation of Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryUnsafe, CategoryBundled, CategoryFakeVolume,
		CategoryRugged, CategoryPumped, CategoryNewPair, CategoryNormal:
		return true
	}
	return false
}

// Tradable reports whether trading decisions run for this category.
// Only new pairs and pumped pairs are sampled by the decider.
func (c Category) Tradable() bool {
	return c == CategoryNewPair || c == CategoryPumped
}
