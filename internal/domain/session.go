package domain

import (
	"sort"
	"strconv"
	"strings"
)

// DeleteSession drives the multi-select deletion workflow for one user.
// A user has at most one session at a time, regardless of which list it
// targets; a later session supersedes the earlier one.
type DeleteSession struct {
	UserID   int64
	ListID   int64
	Selected map[int64]struct{}

	// Notice is the group-visible "user is selecting..." message, absent
	// when the workflow started in a private chat.
	Notice *MessageRef

	// Panel is the private message hosting the selection controls. It is
	// the sole authority on whether an incoming action is current: actions
	// carrying any other message reference are stale.
	Panel *MessageRef
}

// ToggleSelected flips membership of id in the selection set.
func (s *DeleteSession) ToggleSelected(id int64) {
	if _, ok := s.Selected[id]; ok {
		delete(s.Selected, id)
	} else {
		s.Selected[id] = struct{}{}
	}
}

// SelectedIDs returns the selection as a sorted slice.
func (s *DeleteSession) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(s.Selected))
	for id := range s.Selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EncodeSelection serializes a selection set as a sorted comma-joined string,
// the form the session store persists.
func EncodeSelection(selected map[int64]struct{}) string {
	ids := make([]int64, 0, len(selected))
	for id := range selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// DecodeSelection parses a comma-joined id string back into a set. Fragments
// that do not parse as integers are skipped.
func DecodeSelection(s string) map[int64]struct{} {
	selected := make(map[int64]struct{})
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		selected[id] = struct{}{}
	}
	return selected
}
