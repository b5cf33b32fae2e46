// Package backup saves installed hooks before they are overwritten.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/klauern/hooksync/internal/logging"
)

const (
	// DirPerm is the permission for backup directories (rwxr-x---)
	DirPerm = 0o750
	// FilePerm is the permission for backup files (rw-r-----)
	FilePerm = 0o640

	// DefaultMaxBackups is how many backups are kept per hook by default.
	DefaultMaxBackups = 5
)

// ErrNotFound is returned for an unknown backup ID.
var ErrNotFound = errors.New("backup not found")

// Store keeps saved copies of hooks under one directory, laid out as
// <dir>/<hook>/<timestamp>-<hash8> next to an index.json.
type Store struct {
	fs         afero.Fs
	dir        string
	maxBackups int
	now        func() time.Time
}

// NewStore creates a store rooted at dir. maxBackups limits the number of
// backups kept per hook; 0 keeps everything.
func NewStore(fsys afero.Fs, dir string, maxBackups int) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{fs: fsys, dir: dir, maxBackups: maxBackups, now: time.Now}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Backup saves the hook at path and prunes old backups of it.
func (s *Store) Backup(hook, path string) error {
	if _, err := s.Create(hook, path); err != nil {
		return err
	}
	if s.maxBackups > 0 {
		if _, err := s.Prune(hook, s.maxBackups); err != nil {
			return err
		}
	}
	return nil
}

// Create saves a copy of the file at path under hook.
func (s *Store) Create(hook, path string) (*Metadata, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source path %q: %w", path, err)
	}

	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %q: %w", path, err)
	}

	hash := sha256.Sum256(content)
	hashStr := hex.EncodeToString(hash[:])

	created := s.now()
	id := hook + "/" + created.Format("20060102-150405-") + hashStr[:8]

	hookDir := filepath.Join(s.dir, hook)
	if err := s.fs.MkdirAll(hookDir, DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath := filepath.Join(s.dir, filepath.FromSlash(id))
	if err := afero.WriteFile(s.fs, backupPath, content, FilePerm); err != nil {
		return nil, fmt.Errorf("failed to write backup file: %w", err)
	}

	metadata := Metadata{
		ID:         id,
		Hook:       hook,
		SourcePath: path,
		BackupPath: backupPath,
		CreatedAt:  created,
		ModifiedAt: info.ModTime(),
		Hash:       hashStr,
		Size:       info.Size(),
		Mode:       uint32(info.Mode().Perm()),
	}

	index, err := s.loadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}
	index.Backups[id] = metadata
	if err := s.saveIndex(index); err != nil {
		return nil, fmt.Errorf("failed to add backup to index: %w", err)
	}

	logging.Debug("backed up hook",
		logging.Hook(hook),
		logging.Path(backupPath),
		logging.Operation("backup"),
	)

	return &metadata, nil
}

// Get returns the metadata of one backup.
func (s *Store) Get(id string) (*Metadata, error) {
	index, err := s.loadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}
	metadata, ok := index.Backups[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return &metadata, nil
}

// List returns backups newest first. An empty hook lists every backup.
func (s *Store) List(hook string) ([]Metadata, error) {
	index, err := s.loadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}
	return index.list(hook), nil
}

// Restore writes a backup back to targetPath after verifying its hash. An
// empty targetPath restores to the original location.
func (s *Store) Restore(id, targetPath string) error {
	metadata, err := s.Get(id)
	if err != nil {
		return err
	}

	content, err := s.verified(metadata)
	if err != nil {
		return err
	}

	if targetPath == "" {
		targetPath = metadata.SourcePath
	}
	if err := s.fs.MkdirAll(filepath.Dir(targetPath), DirPerm); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	mode := os.FileMode(metadata.Mode).Perm()
	if mode == 0 {
		mode = FilePerm
	}
	if err := afero.WriteFile(s.fs, targetPath, content, mode); err != nil {
		return fmt.Errorf("failed to write target file: %w", err)
	}
	if err := s.fs.Chmod(targetPath, mode); err != nil {
		return fmt.Errorf("failed to restore mode of %q: %w", targetPath, err)
	}

	logging.Info("restored hook", logging.Hook(metadata.Hook), logging.Path(targetPath))
	return nil
}

// Verify checks that a backup file exists and matches its recorded hash.
func (s *Store) Verify(id string) error {
	metadata, err := s.Get(id)
	if err != nil {
		return err
	}
	_, err = s.verified(metadata)
	return err
}

// Delete removes a backup file and its index entry.
func (s *Store) Delete(id string) error {
	index, err := s.loadIndex()
	if err != nil {
		return fmt.Errorf("failed to load backup index: %w", err)
	}

	metadata, ok := index.Backups[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	if err := s.fs.Remove(metadata.BackupPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete backup file: %w", err)
	}

	delete(index.Backups, id)
	if err := s.saveIndex(index); err != nil {
		return fmt.Errorf("failed to remove backup from index: %w", err)
	}
	return nil
}

func (s *Store) verified(metadata *Metadata) ([]byte, error) {
	content, err := afero.ReadFile(s.fs, metadata.BackupPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("backup file missing: %s", metadata.BackupPath)
		}
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	hash := sha256.Sum256(content)
	hashStr := hex.EncodeToString(hash[:])
	if hashStr != metadata.Hash {
		return nil, fmt.Errorf("backup file corrupted: hash mismatch (expected %s, got %s)", metadata.Hash, hashStr)
	}
	return content, nil
}
