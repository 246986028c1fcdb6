package generator

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"story-relay/internal/models"
)

//go:embed catalog.toml
var defaultCatalogTOML string

// GenreTable - варианты значений для одного жанра.
type GenreTable struct {
	Label      string   `toml:"label"`
	Guidance   string   `toml:"guidance"`
	Times      []string `toml:"times"`
	Locations  []string `toml:"locations"`
	Characters []string `toml:"characters"`
	Actions    []string `toml:"actions"`
	Moods      []string `toml:"moods"`
}

// Catalog - жанровые таблицы и банки фраз.
type Catalog struct {
	DefaultGenre         string                `toml:"default_genre"`
	LocationDescriptions []string              `toml:"location_descriptions"`
	CharacterBackgrounds []string              `toml:"character_backgrounds"`
	LengthRequirements   map[string]string     `toml:"length_requirements"`
	Genres               map[string]GenreTable `toml:"genres"`
}

// DefaultCatalog разбирает встроенный каталог.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogTOML)
	if err != nil {
		panic(fmt.Sprintf("embedded genre catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog читает каталог из TOML-файла. Пустой путь - встроенный каталог.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("failed to decode genre catalog %s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("genre catalog %s: %w", path, err)
	}
	return &c, nil
}

// ParseCatalog разбирает каталог из строки TOML.
func ParseCatalog(data string) (*Catalog, error) {
	var c Catalog
	if _, err := toml.Decode(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode genre catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Genres) == 0 {
		return fmt.Errorf("no genres defined")
	}
	if _, ok := c.Genres[c.DefaultGenre]; !ok {
		return fmt.Errorf("default genre %q is not defined", c.DefaultGenre)
	}
	for name, g := range c.Genres {
		lists := map[string][]string{
			"times":      g.Times,
			"locations":  g.Locations,
			"characters": g.Characters,
			"actions":    g.Actions,
			"moods":      g.Moods,
		}
		for field, values := range lists {
			if len(values) == 0 {
				return fmt.Errorf("genre %q has no %s", name, field)
			}
		}
	}
	if len(c.LocationDescriptions) == 0 || len(c.CharacterBackgrounds) == 0 {
		return fmt.Errorf("phrase banks must not be empty")
	}
	return nil
}

// Lookup возвращает таблицу жанра. Неизвестный жанр заменяется жанром по умолчанию.
func (c *Catalog) Lookup(genre string) (GenreTable, string) {
	if g, ok := c.Genres[strings.TrimSpace(genre)]; ok {
		return g, strings.TrimSpace(genre)
	}
	return c.Genres[c.DefaultGenre], c.DefaultGenre
}

// GenreNames - отсортированный список жанров.
func (c *Catalog) GenreNames() []string {
	names := make([]string, 0, len(c.Genres))
	for name := range c.Genres {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LengthRequirement - требование к объёму текста для промпта.
func (c *Catalog) LengthRequirement(length models.StoryLength) string {
	if req, ok := c.LengthRequirements[string(length.Normalize())]; ok {
		return req
	}
	return c.LengthRequirements[string(models.StoryLengthMedium)]
}
