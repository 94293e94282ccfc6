package scraper

// FindRecipeNode searches the extracted documents, in order, for the first
// Recipe-typed object. Within a document the search is depth-first in
// declaration order, descending into @graph arrays and plain arrays, so a
// page carrying organization/webpage nodes beside the recipe resolves
// deterministically to the first Recipe encountered.
func FindRecipeNode(values []interface{}) (map[string]interface{}, bool) {
	for _, v := range values {
		if node, ok := findRecipe(v); ok {
			return node, true
		}
	}
	return nil, false
}

func findRecipe(v interface{}) (map[string]interface{}, bool) {
	switch value := v.(type) {
	case map[string]interface{}:
		if isRecipeNode(value) {
			return value, true
		}
		if graph, ok := value["@graph"].([]interface{}); ok {
			for _, item := range graph {
				if node, found := findRecipe(item); found {
					return node, true
				}
			}
		}
	case []interface{}:
		for _, item := range value {
			if node, found := findRecipe(item); found {
				return node, true
			}
		}
	}
	return nil, false
}

// isRecipeNode reports whether the object declares @type "Recipe", either
// as the bare string or as an array containing it.
func isRecipeNode(node map[string]interface{}) bool {
	switch t := node["@type"].(type) {
	case string:
		return t == "Recipe"
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}
