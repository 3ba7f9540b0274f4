package llm

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"portfolio-ai-be/internal/entity"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogEntry struct {
	DefaultModel string   `yaml:"default_model"`
	Models       []string `yaml:"models"`
}

type catalogFile struct {
	Providers map[entity.ProviderId]catalogEntry `yaml:"providers"`
}

var (
	catalogOnce sync.Once
	catalog     catalogFile
	catalogErr  error
)

func loadCatalog() (catalogFile, error) {
	catalogOnce.Do(func() {
		catalogErr = yaml.Unmarshal(catalogYAML, &catalog)
		if catalogErr != nil {
			catalogErr = fmt.Errorf("parse model catalog: %w", catalogErr)
		}
	})
	return catalog, catalogErr
}

// CatalogModels returns a copy of the static model list for a provider
func CatalogModels(id entity.ProviderId) []string {
	c, err := loadCatalog()
	if err != nil {
		return nil
	}
	models := c.Providers[id].Models
	out := make([]string, len(models))
	copy(out, models)
	return out
}

// DefaultModel is used when the configuration has no selected model
func DefaultModel(id entity.ProviderId) string {
	c, err := loadCatalog()
	if err != nil {
		return ""
	}
	return c.Providers[id].DefaultModel
}

// ResolveModel returns selected, or the provider's default when selected is empty
func ResolveModel(id entity.ProviderId, selected string) string {
	if selected != "" {
		return selected
	}
	return DefaultModel(id)
}
