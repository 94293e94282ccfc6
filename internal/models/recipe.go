package models

import (
	"database/sql/driver"
	"encoding/json"
)

// jsonbValue marshals a JSONB column value, writing fallback for empty
// collections so the column never holds SQL NULL.
func jsonbValue(v interface{}, length int, fallback string) (driver.Value, error) {
	if length == 0 {
		return fallback, nil
	}
	return json.Marshal(v)
}

// jsonbScan unmarshals a JSONB column into dest, tolerating both []byte and
// string driver representations (postgres vs sqlite).
func jsonbScan(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, dest)
}

// Category is a recipe category with a derived slug.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Tag is a recipe keyword with a derived slug.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Tool is a kitchen tool referenced by a recipe.
type Tool struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	OnHand *bool  `json:"on_hand,omitempty"`
}

// IngredientUnit is an optional unit attached to a parsed ingredient.
type IngredientUnit struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// IngredientFood is an optional food entity attached to a parsed ingredient.
type IngredientFood struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ingredient is one entry of a recipe's ingredient list. Ingredients built
// from raw unparsed text carry no quantity/unit/food and keep the source
// string verbatim in Note, Display and OriginalText.
type Ingredient struct {
	Quantity     *float64        `json:"quantity,omitempty"`
	Unit         *IngredientUnit `json:"unit,omitempty"`
	Food         *IngredientFood `json:"food,omitempty"`
	Note         string          `json:"note"`
	Display      string          `json:"display"`
	Title        string          `json:"title,omitempty"`
	OriginalText string          `json:"original_text"`
	ReferenceID  string          `json:"reference_id"`
}

// Instruction is one step of a recipe. Title is set when the step heads a
// named section.
type Instruction struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title,omitempty"`
	Text                 string   `json:"text"`
	IngredientReferences []string `json:"ingredient_references,omitempty"`
}

// Nutrition is the flat optional nutrition block. All fields are opaque
// strings copied from the source document.
type Nutrition struct {
	Calories            string `json:"calories,omitempty"`
	FatContent          string `json:"fat_content,omitempty"`
	ProteinContent      string `json:"protein_content,omitempty"`
	CarbohydrateContent string `json:"carbohydrate_content,omitempty"`
	FiberContent        string `json:"fiber_content,omitempty"`
	SodiumContent       string `json:"sodium_content,omitempty"`
	SugarContent        string `json:"sugar_content,omitempty"`
}

// Settings is the per-recipe display settings block.
type Settings struct {
	Public          *bool `json:"public,omitempty"`
	ShowNutrition   *bool `json:"show_nutrition,omitempty"`
	ShowAssets      *bool `json:"show_assets,omitempty"`
	LandscapeView   *bool `json:"landscape_view,omitempty"`
	DisableComments *bool `json:"disable_comments,omitempty"`
	DisableAmount   *bool `json:"disable_amount,omitempty"`
}

// JSONBCategories is a custom type for storing categories in JSONB
type JSONBCategories []Category

func (a JSONBCategories) Value() (driver.Value, error) {
	return jsonbValue([]Category(a), len(a), "[]")
}

func (a *JSONBCategories) Scan(value interface{}) error { return jsonbScan(value, a) }

// JSONBTags is a custom type for storing tags in JSONB
type JSONBTags []Tag

func (a JSONBTags) Value() (driver.Value, error) {
	return jsonbValue([]Tag(a), len(a), "[]")
}

func (a *JSONBTags) Scan(value interface{}) error { return jsonbScan(value, a) }

// JSONBTools is a custom type for storing tools in JSONB
type JSONBTools []Tool

func (a JSONBTools) Value() (driver.Value, error) {
	return jsonbValue([]Tool(a), len(a), "[]")
}

func (a *JSONBTools) Scan(value interface{}) error { return jsonbScan(value, a) }

// JSONBIngredients is a custom type for storing ingredients in JSONB
type JSONBIngredients []Ingredient

func (a JSONBIngredients) Value() (driver.Value, error) {
	return jsonbValue([]Ingredient(a), len(a), "[]")
}

func (a *JSONBIngredients) Scan(value interface{}) error { return jsonbScan(value, a) }

// JSONBInstructions is a custom type for storing instructions in JSONB
type JSONBInstructions []Instruction

func (a JSONBInstructions) Value() (driver.Value, error) {
	return jsonbValue([]Instruction(a), len(a), "[]")
}

func (a *JSONBInstructions) Scan(value interface{}) error { return jsonbScan(value, a) }

// JSONBNutrition stores the optional nutrition block in JSONB
type JSONBNutrition struct {
	*Nutrition
}

func (n JSONBNutrition) Value() (driver.Value, error) {
	if n.Nutrition == nil {
		return nil, nil
	}
	return json.Marshal(n.Nutrition)
}

func (n *JSONBNutrition) Scan(value interface{}) error {
	if value == nil {
		n.Nutrition = nil
		return nil
	}
	n.Nutrition = &Nutrition{}
	return jsonbScan(value, n.Nutrition)
}

func (n JSONBNutrition) MarshalJSON() ([]byte, error) {
	if n.Nutrition == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Nutrition)
}

func (n *JSONBNutrition) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Nutrition = nil
		return nil
	}
	n.Nutrition = &Nutrition{}
	return json.Unmarshal(data, n.Nutrition)
}

// JSONBSettings stores the optional settings block in JSONB
type JSONBSettings struct {
	*Settings
}

func (s JSONBSettings) Value() (driver.Value, error) {
	if s.Settings == nil {
		return nil, nil
	}
	return json.Marshal(s.Settings)
}

func (s *JSONBSettings) Scan(value interface{}) error {
	if value == nil {
		s.Settings = nil
		return nil
	}
	s.Settings = &Settings{}
	return jsonbScan(value, s.Settings)
}

func (s JSONBSettings) MarshalJSON() ([]byte, error) {
	if s.Settings == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Settings)
}

func (s *JSONBSettings) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		s.Settings = nil
		return nil
	}
	s.Settings = &Settings{}
	return json.Unmarshal(data, s.Settings)
}

// JSONBStringMap is a custom type for storing string maps in JSONB
type JSONBStringMap map[string]string

func (m JSONBStringMap) Value() (driver.Value, error) {
	return jsonbValue(map[string]string(m), len(m), "{}")
}

func (m *JSONBStringMap) Scan(value interface{}) error { return jsonbScan(value, m) }

// Recipe is the canonical recipe record. Records arrive here either from
// the import pipeline (internal/scraper + internal/service) or already
// canonical from a remote server response.
//
// DateAdded/DateUpdated/CreatedAt/UpdatedAt are opaque RFC3339 strings
// assigned at normalization time, never parsed back into time values.
type Recipe struct {
	ID           string            `gorm:"primaryKey;size:36" json:"id"`
	Slug         string            `gorm:"size:255;index" json:"slug"`
	Name         string            `gorm:"size:255;not null;index" json:"name"`
	Description  string            `gorm:"type:text" json:"description"`
	Image        string            `gorm:"size:512" json:"image"`
	Categories   JSONBCategories   `gorm:"type:jsonb;not null;default:'[]'" json:"recipe_category"`
	Tags         JSONBTags         `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Tools        JSONBTools        `gorm:"type:jsonb;not null;default:'[]'" json:"tools"`
	Rating       *int              `json:"rating"`
	Yield        string            `gorm:"size:255" json:"recipe_yield"`
	Ingredients  JSONBIngredients  `gorm:"type:jsonb;not null;default:'[]'" json:"recipe_ingredient"`
	Instructions JSONBInstructions `gorm:"type:jsonb;not null;default:'[]'" json:"recipe_instructions"`
	PrepTime     string            `gorm:"size:64" json:"prep_time"`
	PerformTime  string            `gorm:"size:64" json:"perform_time"`
	TotalTime    string            `gorm:"size:64" json:"total_time"`
	Nutrition    JSONBNutrition    `gorm:"type:jsonb" json:"nutrition"`
	Settings     JSONBSettings     `gorm:"type:jsonb" json:"settings"`
	DateAdded    string            `gorm:"size:40" json:"date_added"`
	DateUpdated  string            `gorm:"size:40" json:"date_updated"`
	CreatedAt    string            `gorm:"size:40" json:"created_at"`
	UpdatedAt    string            `gorm:"size:40" json:"updated_at"`
	SourceURL    string            `gorm:"size:512;index" json:"org_url"`
	Extras       JSONBStringMap    `gorm:"type:jsonb;not null;default:'{}'" json:"extras"`
}

// RecipeFavorite marks a recipe as a favorite.
type RecipeFavorite struct {
	RecipeID  string `gorm:"primaryKey;size:36" json:"recipe_id"`
	CreatedAt string `gorm:"size:40" json:"created_at"`
}
