// Package presenter turns item slices into message text and keyboards. All
// functions are pure: identical items, mode and selection produce
// byte-identical output.
package presenter

import (
	"strconv"
	"strings"

	"github.com/Rrens/shoplist/internal/domain"
	"github.com/Rrens/shoplist/internal/messages"
)

// Callback data prefixes understood by the dispatcher. Toggle buttons carry
// the bare item id.
const (
	DeletePrefix     = "delete_"
	DeleteCommitData = "delete_done"
)

// Toggle renders the shared list with one toggle button per item. When every
// item is checked the markers switch to the all-done variant so a fully
// bought list reads differently from a partially done one.
func Toggle(items []domain.Item) (string, domain.Keyboard) {
	var text strings.Builder
	var kb domain.Keyboard

	allDone := domain.AllDone(items)

	for _, item := range items {
		var mark, label string
		switch {
		case allDone:
			mark, label = "✅", "✅ "+item.Text
		case item.Done:
			mark, label = "☑️", "☑️ "+item.Text
		default:
			mark, label = "⬜", "⬜ "+item.Text
		}
		text.WriteString(mark + " " + item.Text + "\n")
		kb.Rows = append(kb.Rows, domain.Button{
			Label: label,
			Data:  strconv.FormatInt(item.ID, 10),
		})
	}

	return text.String(), kb
}

// DeleteSelect renders the private selection panel: one button per item
// marked by membership in selected, plus the trailing commit button.
func DeleteSelect(items []domain.Item, selected map[int64]struct{}) (string, domain.Keyboard) {
	var kb domain.Keyboard

	for _, item := range items {
		label := "⬜ " + item.Text
		if _, ok := selected[item.ID]; ok {
			label = "❌ " + item.Text
		}
		kb.Rows = append(kb.Rows, domain.Button{
			Label: label,
			Data:  DeletePrefix + strconv.FormatInt(item.ID, 10),
		})
	}

	kb.Rows = append(kb.Rows, domain.Button{
		Label: messages.DeleteDoneLabel,
		Data:  DeleteCommitData,
	})

	return messages.DeleteSelectPrompt, kb
}

// Plain renders the list as bulleted text with no controls, for sharing.
func Plain(items []domain.Item) string {
	var text strings.Builder
	for _, item := range items {
		text.WriteString("• " + item.Text + "\n")
	}
	return text.String()
}
