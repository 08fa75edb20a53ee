package recommend

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/daybalance/internal/event"
)

// Catalog errors.
var (
	ErrEmptyCatalog     = errors.New("no suggestions available for activity")
	ErrDuplicateKey     = errors.New("duplicate activity key")
	ErrEmptyActivityKey = errors.New("activity key cannot be empty")
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Activity is one catalog entry with its suggestion strings.
type Activity struct {
	Key         string   `yaml:"key"`
	Label       string   `yaml:"label"`
	Suggestions []string `yaml:"suggestions"`
}

// Catalog is the static activity reference data, ordered per category.
type Catalog struct {
	Work []Activity `yaml:"work"`
	Life []Activity `yaml:"life"`
}

// EmptyCatalogError reports a preferred activity that contributes no suggestions.
type EmptyCatalogError struct {
	Category event.Category
	Key      string
}

func (e *EmptyCatalogError) Error() string {
	return fmt.Sprintf("%s: %s/%s", ErrEmptyCatalog, e.Category, e.Key)
}

func (e *EmptyCatalogError) Unwrap() error {
	return ErrEmptyCatalog
}

// Activities returns the ordered entries for a category.
func (c Catalog) Activities(cat event.Category) []Activity {
	if cat == event.CategoryWork {
		return c.Work
	}
	return c.Life
}

// Lookup finds an activity by key.
func (c Catalog) Lookup(cat event.Category, key string) (Activity, bool) {
	for _, a := range c.Activities(cat) {
		if a.Key == key {
			return a, true
		}
	}
	return Activity{}, false
}

// Keys returns the activity keys of a category in catalog order.
func (c Catalog) Keys(cat event.Category) []string {
	activities := c.Activities(cat)
	keys := make([]string, len(activities))
	for i, a := range activities {
		keys[i] = a.Key
	}
	return keys
}

// Validate rejects empty and duplicate keys within a category.
func (c Catalog) Validate() error {
	for _, cat := range []event.Category{event.CategoryWork, event.CategoryLife} {
		seen := make(map[string]bool)
		for _, a := range c.Activities(cat) {
			if a.Key == "" {
				return fmt.Errorf("%s: %w", cat, ErrEmptyActivityKey)
			}
			if seen[a.Key] {
				return fmt.Errorf("%s: %w: %q", cat, ErrDuplicateKey, a.Key)
			}
			seen[a.Key] = true
		}
	}
	return nil
}

// LoadCatalog decodes a YAML catalog.
func LoadCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("opening catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadCatalog(f)
}

// DefaultCatalog returns the built-in activity catalog.
func DefaultCatalog() Catalog {
	var c Catalog
	if err := yaml.Unmarshal(defaultCatalogYAML, &c); err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}
