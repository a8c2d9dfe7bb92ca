package words

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-helper/assets"
	"github.com/robalobadob/wordle-helper/internal/database"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "words.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, assets.Migrations()))
	return db
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestEmbedded(t *testing.T) {
	list, err := Embedded(5)
	require.NoError(t, err)
	assert.Greater(t, len(list), 300)
	assert.Contains(t, list, "crane")

	none, err := Embedded(6)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReadFile(t *testing.T) {
	p := writeFile(t, "# comment\ncrane\n\n  Slate \nab1de\ntoolong\nAUDIO\n")
	list, err := ReadFile(p, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "Slate", "AUDIO"}, list)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"), 5)
	assert.Error(t, err)
}

func TestSeedAndFromDB(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	n, err := Seed(ctx, db, []string{"crane", "SLATE", "Crane", "eerie", "xylophone"})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = Seed(ctx, db, []string{"crane", "audio"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	total, err := Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	list, err := FromDB(ctx, db, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"CRANE", "SLATE", "EERIE", "AUDIO"}, list)
}

func TestResolvePriority(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	_, src, err := Resolve(ctx, Options{DB: db, Length: 5})
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src, "empty table falls through")

	_, err = Seed(ctx, db, []string{"crane", "slate"})
	require.NoError(t, err)
	list, src, err := Resolve(ctx, Options{DB: db, Length: 5})
	require.NoError(t, err)
	assert.Equal(t, SourceDB, src)
	assert.Equal(t, []string{"CRANE", "SLATE"}, list)

	p := writeFile(t, "audio\n")
	list, src, err = Resolve(ctx, Options{File: p, DB: db, Length: 5})
	require.NoError(t, err)
	assert.Equal(t, SourceFile, src)
	assert.Equal(t, []string{"audio"}, list)

	_, _, err = Resolve(ctx, Options{File: writeFile(t, "toolong\n"), Length: 5})
	assert.Error(t, err)
}

func TestLoadDictionary(t *testing.T) {
	d, src, err := LoadDictionary(context.Background(), Options{Length: 5})
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, src)
	assert.True(t, d.Contains("CRANE"))
	assert.Equal(t, 5, d.WordLength())
}
