package engine

// ============================================================================
// LAYOUT BUILDER — Grid and list cards
// ============================================================================
// Grid and list views show one card per record. The layout names which field
// is the primary (title) field and which one is the media field; the remaining
// visible fields become card details.
// ============================================================================

const (
	LayoutPrimaryField = "primaryField"
	LayoutMediaField   = "mediaField"
)

// Card is one record rendered for a grid or list view.
type Card struct {
	ID      string   `json:"id"`
	Primary string   `json:"primary"`
	Media   string   `json:"media,omitempty"`
	Details []Detail `json:"details,omitempty"`
}

// Detail is a label-value pair on a card.
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BuildCards renders the page of a QueryResult as cards. itemID identifies a
// record; it may be nil.
func BuildCards[T any](result QueryResult[T], view ViewConfig, fields *Fields[T], itemID func(T) string) []Card {
	primaryID := view.Layout[LayoutPrimaryField]
	mediaID := view.Layout[LayoutMediaField]

	primary, hasPrimary := fields.Get(primaryID)
	media, hasMedia := fields.Get(mediaID)
	hasMedia = hasMedia && !view.IsHidden(mediaID)

	cards := make([]Card, 0, len(result.Items))
	for _, item := range result.Items {
		card := Card{}
		if itemID != nil {
			card.ID = itemID(item)
		}
		if hasPrimary {
			card.Primary = primary.Display(item, view)
		}
		if hasMedia {
			card.Media = media.Display(item, view)
		}
		for _, f := range fields.Visible(view) {
			if f.ID == primaryID || f.ID == mediaID {
				continue
			}
			card.Details = append(card.Details, Detail{Label: f.Label(), Value: f.Display(item, view)})
		}
		cards = append(cards, card)
	}
	return cards
}
