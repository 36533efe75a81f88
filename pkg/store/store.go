package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Keys for the two persisted sets. They map onto the legacy file names so
// state written by earlier versions of the scraper keeps working.
const (
	KeyVisited    = "visited"
	KeyCandidates = "candidates"
)

var fileNames = map[string]string{
	KeyVisited:    "visited_links.json",
	KeyCandidates: "all_urls.json",
}

// Store persists string sets as flat JSON-array files under a directory.
// Writes go through a temp file and a rename, so readers never observe a
// partially written file.
type Store struct {
	dir string
}

// New creates the storage directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	name, ok := fileNames[key]
	if !ok {
		name = key + ".json"
	}
	return filepath.Join(s.dir, name)
}

// Load reads the set stored under key. A missing file is an empty set.
func (s *Store) Load(key string) (map[string]struct{}, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]struct{}), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path(key), err)
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path(key), err)
	}

	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set, nil
}

// Save durably overwrites the set stored under key.
func (s *Store) Save(key string, set map[string]struct{}) error {
	items := make([]string, 0, len(set))
	for item := range set {
		items = append(items, item)
	}
	sort.Strings(items)

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", s.path(key), err)
	}
	return nil
}

// Reset overwrites each given key with an empty set.
func (s *Store) Reset(keys ...string) error {
	for _, key := range keys {
		if err := s.Save(key, map[string]struct{}{}); err != nil {
			return err
		}
	}
	return nil
}
