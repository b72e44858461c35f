package models

import "strings"

// Recipe describes how a result item is crafted.
// Ingredients are consumed, tools are not. Result does not have to exist in the catalog.
type Recipe struct {
	Result      string   `json:"result"`
	Ingredients []string `json:"ingredients"`
	Tools       []string `json:"tools"`
	Type        string   `json:"type,omitempty"`
}

// RecipeClass is a recipe type split into group and subgroup
type RecipeClass struct {
	Group    string `json:"group"`
	Subgroup string `json:"subgroup,omitempty"`
}

// ParseRecipeType splits "Group/Subgroup" into its parts. Anything after the second
// separator stays in the subgroup.
func ParseRecipeType(s string) RecipeClass {
	s = strings.TrimSpace(s)
	if s == "" {
		return RecipeClass{}
	}
	group, sub, _ := strings.Cut(s, "/")
	return RecipeClass{
		Group:    strings.TrimSpace(group),
		Subgroup: strings.TrimSpace(sub),
	}
}

// Class returns the parsed classification of the recipe
func (r Recipe) Class() RecipeClass {
	return ParseRecipeType(r.Type)
}

// Requirements returns every name the recipe needs: ingredients first, then tools
func (r Recipe) Requirements() []string {
	out := make([]string, 0, len(r.Ingredients)+len(r.Tools))
	out = append(out, r.Ingredients...)
	out = append(out, r.Tools...)
	return out
}

// Uses reports whether name appears among ingredients or tools (exact, case-sensitive)
func (r Recipe) Uses(name string) bool {
	for _, n := range r.Ingredients {
		if n == name {
			return true
		}
	}
	for _, n := range r.Tools {
		if n == name {
			return true
		}
	}
	return false
}
