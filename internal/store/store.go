package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arcanaland/hanzicards/internal/card"
)

var (
	// ErrIO marks filesystem read, write and copy failures
	ErrIO = errors.New("store i/o error")
	// ErrSerialization marks a record that could not be encoded or decoded
	ErrSerialization = errors.New("store serialization error")
)

// BackupDirName is the sibling directory holding pre-save copies of the database
const BackupDirName = "backups"

// backupLayout is RFC3339 with nanoseconds, minus the colons so the name is
// valid on every filesystem
const backupLayout = "2006-01-02T150405.000000000-0700"

// now is replaced in tests
var now = time.Now

// Store maps a headword to its card. Keys always equal the card's Character
// because every insert goes through Put.
type Store struct {
	cards map[string]card.Card
}

// New returns an empty store
func New() *Store {
	return &Store{cards: make(map[string]card.Card)}
}

// Load reads the database at path. A missing file yields an empty store.
// Lines without a '=' separator are skipped; a payload that is not a valid
// card fails the whole load.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("database not found, starting empty", "path", path)
			return New(), nil
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}

	s := New()
	for i, line := range strings.Split(string(data), "\n") {
		key, c, ok, err := decodeLine(line)
		if !ok {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", ErrSerialization, path, i+1, err)
		}

		// Older records may omit the character field
		if c.Character == "" {
			c.Character = strings.TrimSpace(key)
		}
		if c.Character == "" {
			slog.Warn("skipping record without a character", "path", path, "line", i+1)
			continue
		}
		s.Put(c)
	}

	slog.Debug("database loaded", "path", path, "cards", s.Len())
	return s, nil
}

// decodeLine splits a key=value record. Characters may contain '=' too, so
// each '=' is tried in turn until the rest decodes as a card. ok is false
// when the line has no separator at all; err is the decode error of the
// first candidate when none decodes.
func decodeLine(line string) (string, card.Card, bool, error) {
	var firstErr error
	for i := strings.IndexByte(line, '='); i >= 0; {
		var c card.Card
		err := json.Unmarshal([]byte(strings.TrimSpace(line[i+1:])), &c)
		if err == nil {
			return line[:i], c, true, nil
		}
		if firstErr == nil {
			firstErr = err
		}

		next := strings.IndexByte(line[i+1:], '=')
		if next < 0 {
			break
		}
		i += next + 1
	}

	if firstErr == nil {
		return "", card.Card{}, false, nil
	}
	return "", card.Card{}, true, firstErr
}

// Put inserts or replaces the card keyed by its character
func (s *Store) Put(c card.Card) {
	s.cards[c.Character] = c
}

// Get returns the card for character
func (s *Store) Get(character string) (card.Card, bool) {
	c, ok := s.cards[character]
	return c, ok
}

// Delete removes character and reports whether it was present
func (s *Store) Delete(character string) bool {
	if _, ok := s.cards[character]; !ok {
		return false
	}
	delete(s.cards, character)
	return true
}

// Len returns the number of cards
func (s *Store) Len() int {
	return len(s.cards)
}

// Cards returns every card ordered by character
func (s *Store) Cards() []card.Card {
	cards := make([]card.Card, 0, len(s.cards))
	for _, c := range s.cards {
		cards = append(cards, c)
	}
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Character < cards[j].Character
	})
	return cards
}

// Save writes the store to path. The new contents go to a temporary sibling
// first, the current file is copied into the backups directory, and only then
// is the temporary file renamed over path. Steps already completed are not
// rolled back when a later one fails.
func (s *Store) Save(path string) error {
	contents, err := s.encode()
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := writeSynced(tmpPath, contents); err != nil {
		os.Remove(tmpPath)
		return err
	}

	backupPath, err := Backup(path)
	if err != nil {
		os.Remove(tmpPath)
		return err
	}
	slog.Debug("backup written", "path", backupPath)

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing %s: %w", ErrIO, path, err)
	}

	slog.Debug("database saved", "path", path, "cards", s.Len())
	return nil
}

// encode renders one character=<json> line per card, sorted so that saving an
// unchanged store produces identical bytes
func (s *Store) encode() ([]byte, error) {
	var buf bytes.Buffer
	for _, c := range s.Cards() {
		value, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding %q: %w", ErrSerialization, c.Character, err)
		}
		buf.WriteString(c.Character)
		buf.WriteByte('=')
		buf.Write(value)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// BackupDir returns the backups directory used for the database at path
func BackupDir(path string) string {
	return filepath.Join(filepath.Dir(path), BackupDirName)
}

// Backup copies the current file at path into the backups directory under a
// timestamped name and returns the backup's path. A missing database is
// created empty first so every save leaves a backup behind.
func Backup(path string) (string, error) {
	dir := BackupDir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", ErrIO, dir, err)
	}

	src, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %w", ErrIO, path, err)
	}
	defer src.Close()

	dst, backupPath, err := createBackupFile(dir)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("%w: copying %s to %s: %w", ErrIO, path, backupPath, err)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		return "", fmt.Errorf("%w: syncing %s: %w", ErrIO, backupPath, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("%w: closing %s: %w", ErrIO, backupPath, err)
	}

	return backupPath, nil
}

// createBackupFile creates a new file named after the current time, adding a
// numeric suffix when an earlier backup already took that name
func createBackupFile(dir string) (*os.File, string, error) {
	stamp := now().Format(backupLayout)
	name := stamp
	for i := 1; ; i++ {
		backupPath := filepath.Join(dir, name)
		f, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, backupPath, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("%w: creating %s: %w", ErrIO, backupPath, err)
		}
		name = fmt.Sprintf("%s-%d", stamp, i)
	}
}

// writeSynced writes data to path and flushes it to stable storage
func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIO, path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: syncing %s: %w", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrIO, path, err)
	}
	return nil
}
