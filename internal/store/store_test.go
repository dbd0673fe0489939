package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/hanzicards/internal/card"
)

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func backups(t *testing.T, dbPath string) []string {
	t.Helper()
	entries, err := os.ReadDir(BackupDir(dbPath))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestLoadMissingFileReturnsEmptyStore(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestLoadSkipsLinesWithoutSeparator(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data")
	contents := "garbage_no_equals_sign\n" +
		`A={"character":"A","category":["Food"],"pinyin":"a"}` + "\n\n"
	require.NoError(t, os.WriteFile(dbPath, []byte(contents), 0644))

	s, err := Load(dbPath)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	c, ok := s.Get("A")
	require.True(t, ok)
	assert.Equal(t, card.New("A", []string{"Food"}, "a"), c)
}

func TestLoadRejectsMalformedPayload(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data")
	contents := `A={"character":"A","category":[]}` + "\nB={not json\n"
	require.NoError(t, os.WriteFile(dbPath, []byte(contents), 0644))

	s, err := Load(dbPath)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrSerialization)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadFillsCharacterFromKey(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(dbPath, []byte(`你好 = {"category":["greeting"]}`+"\r\n"), 0644))

	s, err := Load(dbPath)
	require.NoError(t, err)

	c, ok := s.Get("你好")
	require.True(t, ok)
	assert.Equal(t, "你好", c.Character)
	assert.Equal(t, []string{"greeting"}, c.Categories)
	assert.Empty(t, c.Pinyin)
}

func TestLoadUnreadablePathIsIOError(t *testing.T) {
	// A directory cannot be read as a file
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data")

	s := New()
	s.Put(card.New("你好", []string{"greeting", "HSK1"}, "nǐ hǎo"))
	s.Put(card.New("吃", []string{"Food"}, "chī"))
	s.Put(card.New("水", []string{}, ""))

	require.NoError(t, s.Save(dbPath))

	loaded, err := Load(dbPath)
	require.NoError(t, err)
	assert.Equal(t, s.Cards(), loaded.Cards())

	_, err = os.Stat(dbPath + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be gone after save")
}

func TestSaveLoadRoundTripCharacterWithSeparator(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data")

	s := New()
	s.Put(card.New("a=b", []string{"math"}, ""))
	s.Put(card.New("=", []string{"Symbols"}, ""))
	s.Put(card.New("x={", nil, "x"))
	s.Put(card.New("等于", []string{"math"}, "deng3yu2"))

	require.NoError(t, s.Save(dbPath))

	loaded, err := Load(dbPath)
	require.NoError(t, err)
	assert.Equal(t, s.Cards(), loaded.Cards())
}

func TestSaveTwiceKeepsContentAndAddsBackups(t *testing.T) {
	fixedClock(t, time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local))
	dbPath := filepath.Join(t.TempDir(), "data")

	s := New()
	s.Put(card.New("猫", []string{"Animals"}, "māo"))
	s.Put(card.New("狗", []string{"Animals"}, "gǒu"))

	require.NoError(t, s.Save(dbPath))
	first, err := os.ReadFile(dbPath)
	require.NoError(t, err)

	require.NoError(t, s.Save(dbPath))
	second, err := os.ReadFile(dbPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	names := backups(t, dbPath)
	require.Len(t, names, 2)
	stamp := now().Format(backupLayout)
	assert.ElementsMatch(t, []string{stamp, stamp + "-1"}, names)
}

func TestSaveBacksUpPreviousContents(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data")
	old := `旧={"character":"旧","category":["Old"],"pinyin":"jiù"}` + "\n"
	require.NoError(t, os.WriteFile(dbPath, []byte(old), 0644))

	s := New()
	s.Put(card.New("新", []string{"New"}, "xīn"))
	require.NoError(t, s.Save(dbPath))

	names := backups(t, dbPath)
	require.Len(t, names, 1)
	backedUp, err := os.ReadFile(filepath.Join(BackupDir(dbPath), names[0]))
	require.NoError(t, err)
	assert.Equal(t, old, string(backedUp))

	current, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, `新={"character":"新","category":["New"],"pinyin":"xīn"}`+"\n", string(current))
}

func TestFirstSaveBacksUpEmptyFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data")

	s := New()
	s.Put(card.New("一", []string{"Numbers"}, "yī"))
	require.NoError(t, s.Save(dbPath))

	names := backups(t, dbPath)
	require.Len(t, names, 1)
	info, err := os.Stat(filepath.Join(BackupDir(dbPath), names[0]))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestSaveIntoMissingDirectoryFails(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing", "data")

	s := New()
	s.Put(card.New("一", nil, ""))
	err := s.Save(dbPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
}

func TestPutOverwritesAndDelete(t *testing.T) {
	s := New()
	s.Put(card.New("学", []string{"Verbs"}, ""))
	s.Put(card.New("学", []string{"School"}, "xué"))

	require.Equal(t, 1, s.Len())
	c, _ := s.Get("学")
	assert.Equal(t, []string{"School"}, c.Categories)

	assert.True(t, s.Delete("学"))
	assert.False(t, s.Delete("学"))
	assert.Equal(t, 0, s.Len())
}
