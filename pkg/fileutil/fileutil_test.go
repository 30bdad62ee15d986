// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fileutil

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "hello")
	writeFile(t, dst, "old contents")

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile error: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Fatalf("dst = %q, want %q", got, "hello")
	}
	if _, err := os.Stat(dst + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temporary file left behind: %v", err)
	}
	same, err := Identical(src, dst)
	if err != nil || !same {
		t.Fatalf("Identical = %v, %v, want true", same, err)
	}
}

func TestCopyFileErrors(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Fatalf("CopyFile(missing) error = %v, want not-exist", err)
	}
	if err := CopyFile(dir, filepath.Join(dir, "out")); err == nil {
		t.Fatalf("CopyFile(directory) succeeded")
	}
}

func TestChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a")
	writeFile(t, path, "abc")

	tests := map[string]string{
		"sha256": "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		"sha1":   "a9993e364706816aba3e25717850c26c9cd0d89d",
		"md5":    "900150983cd24fb0d6963f7d28e17f72",
	}
	for algo, want := range tests {
		got, err := Checksum(path, algo)
		if err != nil {
			t.Fatalf("Checksum(%s) error: %v", algo, err)
		}
		if got != want {
			t.Errorf("Checksum(%s) = %q, want %q", algo, got, want)
		}
	}
	if _, err := Checksum(path, "crc32"); err == nil {
		t.Errorf("Checksum(crc32) succeeded")
	}
}

func TestIdenticalMissing(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	writeFile(t, a, "x")
	same, err := Identical(a, filepath.Join(dir, "b"))
	if err != nil || same {
		t.Fatalf("Identical = %v, %v, want false, nil", same, err)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "bb")
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, ".hidden"), "")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := List(dir, false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	if want := []string{"a.txt", "b.txt", "sub"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %#v, want %#v", names, want)
	}
	if entries[1].Size != 2 || !entries[2].IsDir() {
		t.Fatalf("entries = %+v", entries)
	}

	all, err := List(dir, true)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 4 || all[0].Name != ".hidden" {
		t.Fatalf("List(all) = %+v", all)
	}
}

func TestUpdateVersion(t *testing.T) {
	got := UpdateVersion("/data/app-20230405.tar.gz")
	if !strings.HasPrefix(got, "/data/app-") || !strings.HasSuffix(got, ".tar.gz") {
		t.Fatalf("UpdateVersion = %q", got)
	}
	if strings.Contains(got, "20230405") {
		t.Fatalf("UpdateVersion kept the old version: %q", got)
	}
	if got := UpdateVersion("/data/notes"); !strings.HasPrefix(got, "/data/notes-") {
		t.Fatalf("UpdateVersion = %q", got)
	}
}

func TestBackupNameSkipsTaken(t *testing.T) {
	dir := t.TempDir()
	orig := filepath.Join(dir, "dst.txt")
	seen := make(map[string]bool)
	for range 3 {
		name := BackupName(orig)
		if seen[name] {
			t.Fatalf("BackupName returned %q twice", name)
		}
		if !strings.HasPrefix(filepath.Base(name), "dst-") || !strings.HasSuffix(name, ".txt") {
			t.Fatalf("BackupName = %q", name)
		}
		seen[name] = true
		if err := os.WriteFile(name, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := BackupName(filepath.Join(dir, "notes")); !strings.HasPrefix(got, filepath.Join(dir, "notes-")) {
		t.Fatalf("BackupName = %q", got)
	}
}

func TestHumanSize(t *testing.T) {
	tests := map[int64]string{
		0:           "0B",
		1023:        "1023B",
		1024:        "1.0K",
		1536:        "1.5K",
		1024 * 1024: "1.0M",
	}
	for n, want := range tests {
		if got := HumanSize(n); got != want {
			t.Errorf("HumanSize(%d) = %q, want %q", n, got, want)
		}
	}
}
