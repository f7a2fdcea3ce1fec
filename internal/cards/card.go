// Package cards defines the canonical card record and the lookup index that
// resolves any identifier spelling to one catalog entry.
package cards

// CardRecord represents the authoritative metadata for one card in a
// catalog. Records are immutable once loaded for the session.
type CardRecord struct {
	// Canonical identity, globally unique within a catalog.
	CardID string `json:"card_id"`

	// Display attributes
	Name             string `json:"name"`
	CharacterVariant string `json:"character_variant,omitempty"`
	SetCode          string `json:"set_code"`
	Number           string `json:"number"`
	Type             string `json:"type"`
	Rarity           string `json:"rarity"`

	// Numeric attributes (nil when the card has no such stat)
	Cost  *int `json:"cost"`
	Power *int `json:"power,omitempty"`
	HP    *int `json:"hp,omitempty"`

	// Gameplay tags
	Aspects  []string `json:"aspects"`
	Traits   []string `json:"traits"`
	Keywords []string `json:"keywords"`
	Arenas   []string `json:"arenas"`

	ImageURL string `json:"image_url,omitempty"`
}

// HasAspect reports whether the card carries the given aspect (exact match).
func (c *CardRecord) HasAspect(aspect string) bool {
	for _, a := range c.Aspects {
		if a == aspect {
			return true
		}
	}
	return false
}

// DisplayName returns the card name with its character variant, when one
// exists ("Luke Skywalker, Jedi Knight").
func (c *CardRecord) DisplayName() string {
	if c.CharacterVariant == "" {
		return c.Name
	}
	return c.Name + ", " + c.CharacterVariant
}
