package pg

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrations "github.com/dropDatabas3/hellopos/migrations/postgres"
)

func TestParseEmbeddedMigrations(t *testing.T) {
	migs, err := NewMigrator(migrations.FS, migrations.Dir).Parse()
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, 1, migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS users")
}

func TestParseOrdersAndRejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_b.sql": {Data: []byte("B")},
		"m/0001_a.sql": {Data: []byte("A")},
		"m/README.md":  {Data: []byte("x")},
		"m/0010_c.sql": {Data: []byte("C")},
	}
	migs, err := NewMigrator(fsys, "m").Parse()
	require.NoError(t, err)
	require.Len(t, migs, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{migs[0].Version, migs[1].Version, migs[2].Version})

	fsys["m/02_dup.sql"] = &fstest.MapFile{Data: []byte("D")}
	_, err = NewMigrator(fsys, "m").Parse()
	assert.Error(t, err)
}
