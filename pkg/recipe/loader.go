package recipe

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/r-bassi/SteamVista/pkg/dashboard"
)

// Load reads one recipe from a YAML file.
func Load(path string) (Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recipe{}, fmt.Errorf("reading recipe: %w", err)
	}
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Recipe{}, fmt.Errorf("parsing recipe %s: %w", path, err)
	}
	if r.Name == "" {
		return Recipe{}, fmt.Errorf("recipe %s has no name", path)
	}
	return r, nil
}

// Save writes one recipe as YAML.
func Save(path string, r Recipe) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding recipe: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing recipe: %w", err)
	}
	return nil
}

// Find resolves a name against the builtins, then treats it as a file
// path. Builtin names win so a stray local file cannot shadow them.
func Find(name string) (Recipe, error) {
	for _, r := range BuiltinRecipes() {
		if r.Name == name {
			return r, nil
		}
	}
	if _, err := os.Stat(name); err == nil {
		return Load(name)
	}
	return Recipe{}, fmt.Errorf("unknown recipe %q", name)
}

// Install applies the recipe's filter values to the dashboard, one
// UpdateFilter per dimension, after clearing whatever was active.
func Install(d *dashboard.Dashboard, r Recipe, now time.Time) error {
	preds, err := r.Filters.Predicates(now)
	if err != nil {
		return fmt.Errorf("recipe %s: %w", r.Name, err)
	}
	d.ResetFilters()
	for key, p := range preds {
		if err := d.UpdateFilter(key, p); err != nil {
			return fmt.Errorf("recipe %s, filter %s: %w", r.Name, key, err)
		}
	}
	return nil
}
