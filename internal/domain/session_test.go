package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeSelection_Sorts(t *testing.T) {
	selected := map[int64]struct{}{5: {}, 3: {}, 7: {}}
	assert.Equal(t, "3,5,7", EncodeSelection(selected))
}

func TestDecodeSelection_Empty(t *testing.T) {
	assert.Empty(t, DecodeSelection(""))
}

func TestDecodeSelection_SkipsGarbage(t *testing.T) {
	selected := DecodeSelection("1,x,3")
	assert.Equal(t, map[int64]struct{}{1: {}, 3: {}}, selected)
}

func TestSelectionRoundTrip(t *testing.T) {
	cases := []map[int64]struct{}{
		{},
		{1: {}},
		{2: {}, 1: {}, 9: {}},
		{-4: {}, 0: {}, 4: {}},
		{100: {}, 10: {}, 1: {}, 1000: {}, 55: {}, 7: {}},
	}
	for _, original := range cases {
		parsed := DecodeSelection(EncodeSelection(original))
		assert.Equal(t, original, parsed)
	}
}

func TestToggleSelected_XOR(t *testing.T) {
	s := &DeleteSession{Selected: map[int64]struct{}{}}

	s.ToggleSelected(4)
	assert.Contains(t, s.Selected, int64(4))

	s.ToggleSelected(4)
	assert.NotContains(t, s.Selected, int64(4))

	// An even number of toggles always restores the original membership.
	for i := 0; i < 6; i++ {
		s.ToggleSelected(9)
	}
	assert.NotContains(t, s.Selected, int64(9))

	for i := 0; i < 5; i++ {
		s.ToggleSelected(9)
	}
	assert.Contains(t, s.Selected, int64(9))
}

func TestSelectedIDs_Sorted(t *testing.T) {
	s := &DeleteSession{Selected: map[int64]struct{}{9: {}, 1: {}, 5: {}}}
	assert.Equal(t, []int64{1, 5, 9}, s.SelectedIDs())
}

func TestAllDone(t *testing.T) {
	assert.True(t, AllDone([]Item{{Done: true}, {Done: true}}))
	assert.False(t, AllDone([]Item{{Done: true}, {Done: false}}))
	assert.False(t, AllDone([]Item{{Done: false}}))
}

func TestDecodeSelection_EmptyMapNotNilSafe(t *testing.T) {
	// Round trip of the empty set must produce an empty, usable set.
	parsed := DecodeSelection(EncodeSelection(map[int64]struct{}{}))
	assert.NotNil(t, parsed)
	assert.Len(t, parsed, 0)
}
