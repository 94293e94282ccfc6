package scraper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseValue(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestFindRecipeNodeMatchesBareTypeString(t *testing.T) {
	v := parseValue(t, `{"@type": "Recipe", "name": "Plain"}`)

	node, ok := FindRecipeNode([]interface{}{v})

	require.True(t, ok)
	assert.Equal(t, "Plain", node["name"])
}

func TestFindRecipeNodeMatchesTypeArray(t *testing.T) {
	v := parseValue(t, `{"@type": ["Recipe"], "name": "Array Type"}`)

	node, ok := FindRecipeNode([]interface{}{v})

	require.True(t, ok)
	assert.Equal(t, "Array Type", node["name"])
}

func TestFindRecipeNodeDescendsIntoGraph(t *testing.T) {
	v := parseValue(t, `{
		"@context": "https://schema.org",
		"@graph": [
			{"@type": "WebSite", "name": "Site"},
			{"@type": "WebPage", "name": "Page"},
			{"@type": "Recipe", "name": "In Graph"},
			{"@type": "Person", "name": "Author"}
		]
	}`)

	node, ok := FindRecipeNode([]interface{}{v})

	require.True(t, ok)
	assert.Equal(t, "In Graph", node["name"])
}

func TestFindRecipeNodeDescendsIntoArrays(t *testing.T) {
	v := parseValue(t, `[[{"@type": "Article"}], [{"@type": "Recipe", "name": "Nested"}]]`)

	node, ok := FindRecipeNode([]interface{}{v})

	require.True(t, ok)
	assert.Equal(t, "Nested", node["name"])
}

func TestFindRecipeNodePrefersFirstInDocumentOrder(t *testing.T) {
	first := parseValue(t, `{"@type": "Recipe", "name": "First Recipe"}`)
	second := parseValue(t, `{"@type": "Recipe", "name": "Second Recipe"}`)

	node, ok := FindRecipeNode([]interface{}{first, second})

	require.True(t, ok)
	assert.Equal(t, "First Recipe", node["name"])
}

func TestFindRecipeNodeSkipsNonRecipeDocuments(t *testing.T) {
	org := parseValue(t, `{"@type": "Organization", "name": "Food Blog"}`)
	recipe := parseValue(t, `{"@type": "Recipe", "name": "Found It"}`)

	node, ok := FindRecipeNode([]interface{}{org, recipe})

	require.True(t, ok)
	assert.Equal(t, "Found It", node["name"])
}

func TestFindRecipeNodeReportsNoMatch(t *testing.T) {
	org := parseValue(t, `{"@type": "Organization", "name": "Some Company"}`)
	scalar := parseValue(t, `"just a string"`)

	_, ok := FindRecipeNode([]interface{}{org, scalar})

	assert.False(t, ok)
}

func TestFindRecipeNodeIgnoresNonStringTypeEntries(t *testing.T) {
	v := parseValue(t, `{"@type": [42, null, "Recipe"], "name": "Odd Types"}`)

	node, ok := FindRecipeNode([]interface{}{v})

	require.True(t, ok)
	assert.Equal(t, "Odd Types", node["name"])
}
