package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRosterCounts(t *testing.T) {
	r := Default()
	assert.Equal(t, 12, r.Count(Tank))
	assert.Equal(t, 23, r.Count(DPS))
	assert.Equal(t, 9, r.Count(Healer))
	assert.Equal(t, 44, r.Total())
	assert.Len(t, r.All(), 44)
}

func TestAllKeepsCategoryThenRosterOrder(t *testing.T) {
	r, err := New(map[Category][]string{
		DPS:  {"z"},
		Tank: {"x", "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "x", Category: Tank},
		{Name: "y", Category: Tank},
		{Name: "z", Category: DPS},
	}, r.All())
}

func TestCategoryOfUsesIndex(t *testing.T) {
	r := Default()
	c, ok := r.CategoryOf("Luna Snow")
	require.True(t, ok)
	assert.Equal(t, Healer, c)

	_, ok = r.CategoryOf("Nobody")
	assert.False(t, ok)
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New(map[Category][]string{
		Tank: {"Groot"},
		DPS:  {"Groot"},
	})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestNewRejectsUnknownCategory(t *testing.T) {
	_, err := New(map[Category][]string{"support": {"Jeff"}})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestNewSkipsBlankNames(t *testing.T) {
	r, err := New(map[Category][]string{Tank: {" Groot ", "", "  "}})
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "Groot", Category: Tank}}, r.InCategory(Tank))
}

func TestAllReturnsCopy(t *testing.T) {
	r := Default()
	all := r.All()
	all[0].Name = "changed"
	assert.NotEqual(t, "changed", r.All()[0].Name)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Healer ")
	require.NoError(t, err)
	assert.Equal(t, Healer, c)
	assert.Equal(t, "HEALER", c.Label())

	_, err = ParseCategory("all")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.toml")
	content := "tank = [\"x\", \"y\"]\ndps = [\"z\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Total())
	assert.Equal(t, 0, r.Count(Healer))
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.toml")
	require.NoError(t, os.WriteFile(path, []byte("support = [\"x\"]\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestLoadRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.toml")
	require.NoError(t, os.WriteFile(path, []byte("tank = []\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
