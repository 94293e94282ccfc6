package scraper

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mealstash/backend/internal/models"
)

// NormalizeRecipe maps a Recipe-typed JSON-LD node onto the canonical
// record. Source fields are polymorphic across the schema.org ecosystem;
// each extractor below tolerates the shapes seen in the wild. The second
// return value is the resolved image URL, if any — image acquisition is
// the caller's concern.
//
// A fresh id, slug and timestamps are always assigned here, never copied
// from the source document. Absent fields stay at their zero value so
// consumers can tell "absent" from "present but empty".
func NormalizeRecipe(node map[string]interface{}, sourceURL string) (*models.Recipe, string) {
	recipeID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	name := stringField(node, "name")
	if name == "" {
		name = "Untitled"
	}
	name = DecodeEntities(name)

	recipe := &models.Recipe{
		ID:           recipeID,
		Slug:         Slugify(name),
		Name:         name,
		Description:  DecodeEntities(stringField(node, "description")),
		Categories:   extractCategories(node["recipeCategory"]),
		Tags:         extractTags(node["keywords"]),
		Yield:        DecodeEntities(extractYield(node["recipeYield"])),
		Ingredients:  extractIngredients(node["recipeIngredient"]),
		Instructions: extractInstructions(node["recipeInstructions"]),
		PrepTime:     stringField(node, "prepTime"),
		PerformTime:  stringField(node, "cookTime"),
		TotalTime:    stringField(node, "totalTime"),
		Nutrition:    extractNutrition(node["nutrition"]),
		DateAdded:    now,
		DateUpdated:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
		SourceURL:    sourceURL,
	}

	return recipe, extractImageURL(node["image"])
}

func stringField(node map[string]interface{}, key string) string {
	s, _ := node[key].(string)
	return s
}

// extractImageURL accepts a bare URL string, an object with a "url" key,
// or an array whose first element is either of those.
func extractImageURL(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]interface{}:
		url, _ := v["url"].(string)
		return url
	case []interface{}:
		if len(v) == 0 {
			return ""
		}
		switch first := v[0].(type) {
		case string:
			return first
		case map[string]interface{}:
			url, _ := first["url"].(string)
			return url
		}
	}
	return ""
}

// extractIngredients accepts an array of plain strings. Each string
// becomes one Ingredient with no quantity/unit/food and with note,
// display and originalText all equal to the (entity-decoded) source text.
func extractIngredients(value interface{}) models.JSONBIngredients {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	var ingredients models.JSONBIngredients
	for _, item := range items {
		text, ok := item.(string)
		if !ok {
			continue
		}
		text = DecodeEntities(text)
		ingredients = append(ingredients, models.Ingredient{
			Note:         text,
			Display:      text,
			OriginalText: text,
			ReferenceID:  uuid.NewString(),
		})
	}
	return ingredients
}

// extractInstructions accepts an array of plain strings, an array of
// HowToStep objects with a "text" field, or HowToSection objects with a
// name and nested itemListElement steps. A section collapses to exactly
// one instruction carrying the section name as title and the first nested
// step's text; the remaining section steps are dropped. That matches the
// historical import behavior — changing it would change observable
// results for pages that use sectioned instructions.
func extractInstructions(value interface{}) models.JSONBInstructions {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	var instructions models.JSONBInstructions
	for _, item := range items {
		switch step := item.(type) {
		case string:
			instructions = append(instructions, models.Instruction{
				ID:   uuid.NewString(),
				Text: DecodeEntities(step),
			})
		case map[string]interface{}:
			if section, ok := sectionInstruction(step); ok {
				instructions = append(instructions, section)
				continue
			}
			text, ok := step["text"].(string)
			if !ok {
				continue
			}
			instructions = append(instructions, models.Instruction{
				ID:   uuid.NewString(),
				Text: DecodeEntities(text),
			})
		}
	}
	return instructions
}

func sectionInstruction(step map[string]interface{}) (models.Instruction, bool) {
	name, ok := step["name"].(string)
	if !ok {
		return models.Instruction{}, false
	}
	elements, ok := step["itemListElement"].([]interface{})
	if !ok {
		return models.Instruction{}, false
	}
	for _, element := range elements {
		nested, ok := element.(map[string]interface{})
		if !ok {
			continue
		}
		text, ok := nested["text"].(string)
		if !ok {
			continue
		}
		return models.Instruction{
			ID:    uuid.NewString(),
			Title: DecodeEntities(name),
			Text:  DecodeEntities(text),
		}, true
	}
	return models.Instruction{}, false
}

// extractYield accepts a bare string, an array (first element wins), or a
// number (stringified).
func extractYield(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// extractCategories accepts an array of strings or a single
// comma-separated string; each distinct name becomes a category with a
// fresh id and a derived slug.
func extractCategories(value interface{}) models.JSONBCategories {
	names := extractNames(value)
	if len(names) == 0 {
		return nil
	}
	categories := make(models.JSONBCategories, 0, len(names))
	for _, name := range names {
		name = DecodeEntities(name)
		categories = append(categories, models.Category{
			ID:   uuid.NewString(),
			Name: name,
			Slug: Slugify(name),
		})
	}
	return categories
}

// extractTags handles the keywords field, which has the same two shapes
// as recipeCategory.
func extractTags(value interface{}) models.JSONBTags {
	names := extractNames(value)
	if len(names) == 0 {
		return nil
	}
	tags := make(models.JSONBTags, 0, len(names))
	for _, name := range names {
		name = DecodeEntities(name)
		tags = append(tags, models.Tag{
			ID:   uuid.NewString(),
			Name: name,
			Slug: Slugify(name),
		})
	}
	return tags
}

func extractNames(value interface{}) []string {
	switch v := value.(type) {
	case []interface{}:
		var names []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				names = append(names, s)
			}
		}
		return names
	case string:
		var names []string
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		return names
	}
	return nil
}

// extractNutrition copies the seven known nutrition sub-fields, each
// independently optional, from a flat object.
func extractNutrition(value interface{}) models.JSONBNutrition {
	node, ok := value.(map[string]interface{})
	if !ok {
		return models.JSONBNutrition{}
	}
	return models.JSONBNutrition{Nutrition: &models.Nutrition{
		Calories:            stringField(node, "calories"),
		FatContent:          stringField(node, "fatContent"),
		ProteinContent:      stringField(node, "proteinContent"),
		CarbohydrateContent: stringField(node, "carbohydrateContent"),
		FiberContent:        stringField(node, "fiberContent"),
		SodiumContent:       stringField(node, "sodiumContent"),
		SugarContent:        stringField(node, "sugarContent"),
	}}
}
