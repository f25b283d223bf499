// Package fileutil keeps pristine copies of photos before their metadata
// is rewritten in place.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrBackupExists is returned when a backup for the photo is already present.
// The earlier copy is older and therefore closer to the original.
var ErrBackupExists = errors.New("backup already exists")

// Backup copies src into dir under its own base name and returns the copy's
// path. An existing backup is never replaced.
func Backup(src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		return dst, ErrBackupExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat backup: %w", err)
	}
	if err := CopyVerified(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// CopyVerified streams src to dst, then reads dst back and compares its size
// and SHA256 with the source. dst is removed on mismatch. The source mode and
// modification time carry over.
func CopyVerified(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHash := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, srcHash))
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	if written != info.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}

	dstSize, dstSum, err := hashCopy(dst)
	if err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("verify copy: %w", err)
	}
	if dstSize != written || !bytes.Equal(srcHash.Sum(nil), dstSum) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: %s differs from %s", dst, src)
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// hashCopy re-reads a finished copy. Tests replace it to simulate corruption.
var hashCopy = hashFile

func hashFile(path string) (int64, []byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer file.Close()
	hash := sha256.New()
	n, err := io.Copy(hash, file)
	if err != nil {
		return 0, nil, err
	}
	return n, hash.Sum(nil), nil
}
