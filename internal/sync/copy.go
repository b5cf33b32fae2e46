package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/klauern/hooksync/internal/logging"
)

// ownerExecute is OR-ed into every installed hook's mode.
const ownerExecute os.FileMode = 0o100

// hashFile returns the hex SHA-256 of the file at path.
func hashFile(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %q: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// sameContent reports whether both files hash identically.
func sameContent(fs afero.Fs, a, b string) (bool, error) {
	ha, err := hashFile(fs, a)
	if err != nil {
		return false, err
	}
	hb, err := hashFile(fs, b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

// copyFile copies src to dst byte for byte. The destination ends up with the
// source permission bits plus owner execute, whether or not it existed.
func copyFile(fs afero.Fs, src, dst string) error {
	srcInfo, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source %q: %w", src, err)
	}
	mode := srcInfo.Mode().Perm() | ownerExecute

	srcFile, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source %q: %w", src, err)
	}
	defer func() { _ = srcFile.Close() }()

	// #nosec G302 G304 - hooks must be executable, dst is under .git/hooks
	dstFile, err := fs.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create destination %q: %w", dst, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("failed to copy content to %q: %w", dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("failed to flush %q: %w", dst, err)
	}

	// OpenFile leaves the mode of an existing file alone and is subject to
	// the umask on creation.
	if err := fs.Chmod(dst, mode); err != nil {
		return fmt.Errorf("failed to make %q executable: %w", dst, err)
	}

	logging.Debug("copied file",
		logging.Path(src),
		logging.Operation("copy"),
	)

	return nil
}
