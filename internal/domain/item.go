package domain

// Item is a single entry on a shared list. Ids are assigned by the store,
// are unique across all lists, and are never reused.
type Item struct {
	ID     int64  `json:"id"`
	ListID int64  `json:"-"`
	Text   string `json:"text"`
	Done   bool   `json:"done"`
}

// AllDone reports whether every item in the slice is checked.
func AllDone(items []Item) bool {
	for _, it := range items {
		if !it.Done {
			return false
		}
	}
	return true
}
