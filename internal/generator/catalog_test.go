package generator

import (
	"os"
	"path/filepath"
	"testing"

	"story-relay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, []string{"adventure", "comedy", "drama", "fantasy", "horror", "mystery", "romance", "sci-fi"}, c.GenreNames())

	for name, g := range c.Genres {
		assert.GreaterOrEqual(t, len(g.Times), 5, name)
		assert.GreaterOrEqual(t, len(g.Locations), 5, name)
		assert.GreaterOrEqual(t, len(g.Characters), 5, name)
		assert.GreaterOrEqual(t, len(g.Actions), 5, name)
		assert.Len(t, g.Moods, 5, name)
		assert.NotEmpty(t, g.Label, name)
	}

	assert.Equal(t, "100-150字", c.LengthRequirement(models.StoryLengthShort))
	assert.Equal(t, "200-300字", c.LengthRequirement(models.StoryLength("unknown")))
}

func TestLoadCatalog(t *testing.T) {
	t.Run("Custom file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "genres.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
default_genre = "noir"
location_descriptions = ["满是%s"]
character_backgrounds = ["%s沉默寡言"]

[genres.noir]
label = "黑色"
times = ["雨夜"]
locations = ["酒吧"]
characters = ["侦探"]
actions = ["追查"]
moods = ["阴郁"]
`), 0o600))

		c, err := LoadCatalog(path)
		require.NoError(t, err)
		table, name := c.Lookup("fantasy")
		assert.Equal(t, "noir", name)
		assert.Equal(t, []string{"酒吧"}, table.Locations)
	})

	t.Run("Missing moods rejected", func(t *testing.T) {
		_, err := ParseCatalog(`
default_genre = "x"
location_descriptions = ["%s"]
character_backgrounds = ["%s"]
[genres.x]
times = ["a"]
locations = ["b"]
characters = ["c"]
actions = ["d"]
`)
		assert.Error(t, err)
	})

	t.Run("Unknown default genre rejected", func(t *testing.T) {
		_, err := ParseCatalog(`default_genre = "nope"`)
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}
