// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fileutil

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// CopyFile copies a file from src to dst. It is able to overwrite existing
// files that are in use. It does this by writing to a temporary file and then
// moving it into place.
func CopyFile(src, dst string) (err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcStat, err := srcFile.Stat()
	if err != nil {
		return err
	}
	if srcStat.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	tempDst := dst + ".tmp"
	dstFile, err := os.OpenFile(tempDst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcStat.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			dstFile.Close()
			os.Remove(tempDst)
		}
	}()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	if err = dstFile.Sync(); err != nil {
		return err
	}
	if err = dstFile.Close(); err != nil {
		return err
	}
	return os.Rename(tempDst, dst)
}

// Version returns a version string based on the current time.
func Version() string {
	return time.Now().Format("20060102150405")
}

var removeVersionRe = regexp.MustCompile(`[-.](\d+(\.\d+)?)(\.[^.]+)?$`)

// RemoveVersion removes the version part from the given filename.
func RemoveVersion(filename string) string {
	// Matches "-20230405" or ".20230405", keeping a trailing extension.
	return removeVersionRe.ReplaceAllString(filename, "$3")
}

// UpdateVersion returns filename with its version part replaced by the
// current one: dir/name.ext becomes dir/name-<version>.ext.
func UpdateVersion(filename string) string {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)
	name, ext, hasExt := strings.Cut(base, ".")
	name = RemoveVersion(name)
	if !hasExt {
		return filepath.Join(dir, name+"-"+Version())
	}
	return filepath.Join(dir, name+"-"+Version()+"."+ext)
}

// BackupName returns an unused versioned name for filename. When the
// versioned name is already taken a counter is added: name-<version>-2.ext.
func BackupName(filename string) string {
	dir := filepath.Dir(filename)
	name, ext, hasExt := strings.Cut(filepath.Base(filename), ".")
	name = RemoveVersion(name) + "-" + Version()
	if hasExt {
		ext = "." + ext
	}
	candidate := filepath.Join(dir, name+ext)
	for n := 2; ; n++ {
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", name, n, ext))
	}
}

// Identical reports whether the contents of two files are identical.
func Identical(file1, file2 string) (bool, error) {
	h1, err := Checksum(file1, "sha256")
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to hash file1: %w", err)
	}
	h2, err := Checksum(file2, "sha256")
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to hash file2: %w", err)
	}
	return h1 == h2, nil
}

// ChecksumAlgorithms lists the algorithms Checksum accepts.
var ChecksumAlgorithms = []string{"sha256", "sha1", "md5"}

func newHash(algo string) (hash.Hash, error) {
	switch algo {
	case "", "sha256":
		return sha256.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "md5":
		return md5.New(), nil
	}
	return nil, fmt.Errorf("unsupported checksum algorithm %q", algo)
}

// Checksum returns the hex digest of the file at path.
func Checksum(path, algo string) (string, error) {
	h, err := newHash(algo)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Entry is one directory listing entry.
type Entry struct {
	Name    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Mode.IsDir() }

// List returns the entries of dir sorted by name. Hidden entries are skipped
// unless all is set.
func List(dir string, all bool) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(des))
	for _, de := range des {
		if !all && strings.HasPrefix(de.Name(), ".") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", de.Name(), err)
		}
		out = append(out, Entry{
			Name:    de.Name(),
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// HumanSize formats n bytes with a binary unit suffix.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}
