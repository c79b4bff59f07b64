package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItems(t *testing.T) {
	items, err := ParseItems(`{"items": ["Milk", "2 liters of juice"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "2 liters of juice"}, items)
}

func TestParseItems_MarkdownFences(t *testing.T) {
	items, err := ParseItems("```json\n{\"items\": [\"Bread\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bread"}, items)
}

func TestParseItems_LeadingProse(t *testing.T) {
	items, err := ParseItems(`Here you go: {"items": ["Eggs"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eggs"}, items)
}

func TestParseItems_EmptyAndBlankEntries(t *testing.T) {
	items, err := ParseItems(`{"items": ["", "  ", "Butter"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Butter"}, items)

	items, err = ParseItems(`{"items": []}`)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseItems_Invalid(t *testing.T) {
	_, err := ParseItems("not json at all")
	assert.Error(t, err)
}

func TestBuildPrompt_IncludesText(t *testing.T) {
	prompt := BuildPrompt("milk and two apples")
	assert.Contains(t, prompt, "milk and two apples")
	assert.Contains(t, prompt, `{"items":`)
}

type fakeProvider struct {
	name       string
	configured bool
}

func (f *fakeProvider) Name() string       { return f.name }
func (f *fakeProvider) IsConfigured() bool { return f.configured }
func (f *fakeProvider) ExtractItems(context.Context, string) ([]string, error) {
	return nil, nil
}

func TestRouter_GetProvider(t *testing.T) {
	router := NewRouter("gemini")
	router.RegisterProvider(&fakeProvider{name: "gemini", configured: true})
	router.RegisterProvider(&fakeProvider{name: "openai", configured: false})

	p, err := router.GetProvider("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	_, err = router.GetProvider("openai")
	assert.Error(t, err)

	_, err = router.GetProvider("missing")
	assert.Error(t, err)

	assert.Equal(t, []string{"gemini"}, router.ListProviders())
}
