// Package audiostore keeps synthesised audio on the local filesystem.
//
// Files are content addressed: the name is derived from the language and
// the exact text, so the same phrase is synthesised once and then reused.
package audiostore

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const ext = ".mp3"

// Store writes audio files under dir and builds their public URLs.
type Store struct {
	dir       string
	urlPrefix string
}

// New creates a Store, creating dir if needed.
func New(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("audiostore: create dir %s: %w", dir, err)
	}
	return &Store{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// Name returns the file name used for text spoken in lang.
func Name(lang, text string) string {
	sum := blake2b.Sum256([]byte(lang + "\x00" + text))
	return lang + "_" + hex.EncodeToString(sum[:16]) + ext
}

// Find returns the URL of an existing file for (lang, text).
func (s *Store) Find(lang, text string) (string, bool) {
	name := Name(lang, text)
	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil || info.Size() == 0 {
		return "", false
	}
	return s.url(name), true
}

// Recorded returns the URL of a pre-recorded file installed under the
// store directory. Names that are not a plain file name never match.
func (s *Store) Recorded(name string) (string, bool) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", false
	}
	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		return "", false
	}
	return s.url(name), true
}

// Save writes data for (lang, text) and returns its URL. The write goes
// through a temporary file and a rename, so readers never see partial audio.
func (s *Store) Save(lang, text string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("audiostore: empty audio")
	}

	name := Name(lang, text)
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, ".tmp-*"+ext)
	if err != nil {
		return "", fmt.Errorf("audiostore: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("audiostore: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("audiostore: close %s: %w", name, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", fmt.Errorf("audiostore: chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("audiostore: rename %s: %w", name, err)
	}

	return s.url(name), nil
}

// Prune removes temporary files left behind by an interrupted Save and
// reports how many were deleted.
func (s *Store) Prune() (int, error) {
	removed := 0
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".tmp-") {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("audiostore: prune: %w", err)
	}
	return removed, nil
}

func (s *Store) url(name string) string {
	return s.urlPrefix + "/" + name
}
