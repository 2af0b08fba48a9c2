// Package config handles loading of external configuration consumed once per
// dataset, such as the specific-category to major-category mapping.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultMajorCategory is assigned when a category has no mapping entry.
const DefaultMajorCategory = "Miscellaneous"

// CategoryMapping maps a normalized specific-category name to its broad group.
type CategoryMapping map[string]string

// DefaultCategoryMapping returns the built-in mapping used when no external
// mapping file is configured.
func DefaultCategoryMapping() CategoryMapping {
	return CategoryMapping{
		"grocery":             "Food",
		"snacks":              "Food",
		"cafe":                "Food",
		"coffee":              "Food",
		"café":                "Food",
		"bento":               "Food",
		"beverage":            "Food",
		"combini meal":        "Food",
		"dining":              "Food",
		"housing":             "Housing and Utilities",
		"internet bill":       "Housing and Utilities",
		"electricity bill":    "Housing and Utilities",
		"gas bill":            "Housing and Utilities",
		"water & sewage bill": "Housing and Utilities",
		"phone bill":          "Housing and Utilities",
		"clothing":            "Household and Clothing",
		"household":           "Household and Clothing",
		"supplements":         "Fitness",
		"shoes":               "Fitness",
		"sports event":        "Fitness",
		"gym":                 "Fitness",
		"commute":             "Transportation",
		"ride share":          "Transportation",
		"bus":                 "Transportation",
		"shinkansen":          "Transportation",
		"taxi":                "Transportation",
		"souvenirs":           "Souvenirs/Gifts/Treats",
		"treat":               "Souvenirs/Gifts/Treats",
		"gift":                "Souvenirs/Gifts/Treats",
		"entertainment":       "Entertainment",
		"nomikai":             "Entertainment",
		"education":           "Education",
	}
}

// Lookup returns the major category for a normalized specific category.
// Unmapped categories fall back to DefaultMajorCategory; an empty category
// yields an empty major category.
func (m CategoryMapping) Lookup(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return ""
	}
	if major, ok := m[category]; ok {
		return major
	}
	return DefaultMajorCategory
}

// LoadCategoryMapping reads a mapping file of the form
// {"CATEGORY_MAPPING": {"grocery": "Food", ...}}.
func LoadCategoryMapping(path string) (CategoryMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category mapping: %w", err)
	}

	var file struct {
		CategoryMapping map[string]string `json:"CATEGORY_MAPPING"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse category mapping: %w", err)
	}
	if len(file.CategoryMapping) == 0 {
		return nil, fmt.Errorf("category mapping file %s contains no entries", path)
	}

	mapping := make(CategoryMapping, len(file.CategoryMapping))
	for category, major := range file.CategoryMapping {
		mapping[strings.ToLower(strings.TrimSpace(category))] = major
	}
	return mapping, nil
}
