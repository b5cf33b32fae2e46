package backup

import (
	"cmp"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/afero"
)

// Metadata describes a single saved hook.
type Metadata struct {
	ID         string    `json:"id"`          // <hook>/<timestamp>-<hash8>
	Hook       string    `json:"hook"`        // Hook name
	SourcePath string    `json:"source_path"` // Installed hook that was saved
	BackupPath string    `json:"backup_path"` // Path to the saved copy
	CreatedAt  time.Time `json:"created_at"`  // Backup creation timestamp
	ModifiedAt time.Time `json:"modified_at"` // Source modification timestamp
	Hash       string    `json:"hash"`        // SHA256 hash of content
	Size       int64     `json:"size"`        // File size in bytes
	Mode       uint32    `json:"mode"`        // Permission bits of the saved hook
}

// Index lists every backup in a store.
type Index struct {
	Version string              `json:"version"`
	Updated time.Time           `json:"updated"`
	Backups map[string]Metadata `json:"backups"` // Key: backup ID
}

const (
	// IndexVersion is the current version of the backup index format
	IndexVersion = "1.0"
	// IndexFilename is the name of the index file
	IndexFilename = "index.json"
)

func newIndex() *Index {
	return &Index{
		Version: IndexVersion,
		Updated: time.Now(),
		Backups: make(map[string]Metadata),
	}
}

// loadIndex reads the index, returning an empty one if none exists yet.
func (s *Store) loadIndex() (*Index, error) {
	indexPath := filepath.Join(s.dir, IndexFilename)

	exists, err := afero.Exists(s.fs, indexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat index file: %w", err)
	}
	if !exists {
		return newIndex(), nil
	}

	data, err := afero.ReadFile(s.fs, indexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse index file: %w", err)
	}
	if index.Backups == nil {
		index.Backups = make(map[string]Metadata)
	}

	return &index, nil
}

// saveIndex writes the index to disk.
func (s *Store) saveIndex(index *Index) error {
	if err := s.fs.MkdirAll(s.dir, DirPerm); err != nil {
		return fmt.Errorf("failed to create backups directory: %w", err)
	}

	index.Updated = time.Now()

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	indexPath := filepath.Join(s.dir, IndexFilename)
	if err := afero.WriteFile(s.fs, indexPath, data, FilePerm); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}

	return nil
}

// list returns backups sorted by creation time, newest first. An empty hook
// matches every backup.
func (idx *Index) list(hook string) []Metadata {
	backups := make([]Metadata, 0, len(idx.Backups))
	for _, b := range idx.Backups {
		if hook == "" || b.Hook == hook {
			backups = append(backups, b)
		}
	}

	slices.SortFunc(backups, func(a, b Metadata) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return backups
}
