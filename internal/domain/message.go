package domain

// MessageRef identifies a single outbound chat message. It is the handle the
// render pointer and delete session stores persist, and the value the
// staleness guard compares.
type MessageRef struct {
	ChatID    int64
	MessageID int64
}

// Button is one selectable control attached to a rendered message.
type Button struct {
	Label string
	Data  string
}

// Keyboard is a column of controls, one row per button.
type Keyboard struct {
	Rows []Button
}

// Empty reports whether the keyboard carries no controls. Editing a message
// with an empty keyboard strips its controls.
func (k Keyboard) Empty() bool {
	return len(k.Rows) == 0
}
