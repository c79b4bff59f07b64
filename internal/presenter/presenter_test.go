package presenter

import (
	"testing"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/Rrens/shoplist/internal/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_AllDoneMarker(t *testing.T) {
	items := []domain.Item{
		{ID: 1, Text: "Milk", Done: true},
		{ID: 2, Text: "Eggs", Done: true},
	}

	text, kb := Toggle(items)

	assert.Equal(t, "✅ Milk\n✅ Eggs\n", text)
	require.Len(t, kb.Rows, 2)
	assert.Equal(t, "✅ Milk", kb.Rows[0].Label)
	assert.Equal(t, "1", kb.Rows[0].Data)
}

func TestToggle_PartiallyDone(t *testing.T) {
	items := []domain.Item{
		{ID: 1, Text: "Milk", Done: true},
		{ID: 2, Text: "Eggs", Done: false},
	}

	text, kb := Toggle(items)

	assert.Equal(t, "☑️ Milk\n⬜ Eggs\n", text)
	assert.Equal(t, "☑️ Milk", kb.Rows[0].Label)
	assert.Equal(t, "⬜ Eggs", kb.Rows[1].Label)
}

func TestToggle_Deterministic(t *testing.T) {
	items := []domain.Item{
		{ID: 3, Text: "Bread", Done: false},
		{ID: 4, Text: "Jam", Done: true},
	}

	textA, kbA := Toggle(items)
	textB, kbB := Toggle(items)

	assert.Equal(t, textA, textB)
	assert.Equal(t, kbA, kbB)
}

func TestDeleteSelect_Markers(t *testing.T) {
	items := []domain.Item{
		{ID: 1, Text: "Milk"},
		{ID: 2, Text: "Eggs"},
	}
	selected := map[int64]struct{}{2: {}}

	text, kb := DeleteSelect(items, selected)

	assert.Equal(t, messages.DeleteSelectPrompt, text)
	require.Len(t, kb.Rows, 3)
	assert.Equal(t, "⬜ Milk", kb.Rows[0].Label)
	assert.Equal(t, "delete_1", kb.Rows[0].Data)
	assert.Equal(t, "❌ Eggs", kb.Rows[1].Label)
	assert.Equal(t, "delete_2", kb.Rows[1].Data)
	assert.Equal(t, messages.DeleteDoneLabel, kb.Rows[2].Label)
	assert.Equal(t, DeleteCommitData, kb.Rows[2].Data)
}

func TestDeleteSelect_Deterministic(t *testing.T) {
	items := []domain.Item{{ID: 7, Text: "Tea"}}
	selected := map[int64]struct{}{7: {}}

	textA, kbA := DeleteSelect(items, selected)
	textB, kbB := DeleteSelect(items, selected)

	assert.Equal(t, textA, textB)
	assert.Equal(t, kbA, kbB)
}

func TestPlain(t *testing.T) {
	items := []domain.Item{
		{ID: 1, Text: "Milk"},
		{ID: 2, Text: "Eggs"},
	}
	assert.Equal(t, "• Milk\n• Eggs\n", Plain(items))
	assert.Equal(t, "", Plain(nil))
}
