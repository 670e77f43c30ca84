package domain

// ListItem is the interface for items that can be displayed in the results grid.
// It provides a common API for display and filtering.
type ListItem interface {
	// GetID returns the catalog identifier for this item
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetDescription returns secondary info for display (artist, or kind)
	GetDescription() string
}
