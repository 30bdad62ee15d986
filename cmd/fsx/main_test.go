// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runFsx runs fsx with a private prefs file in dir.
func runFsx(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("FSX_CATALOG", "")
	t.Setenv("NO_COLOR", "")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr,
		filepath.Join(dir, "prefs.toml"))
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "hello\n")

	res := runFsx(t, dir, "", "copy", "-s", src, "-d", dst)
	if res.code != 0 {
		t.Fatalf("copy exit %d, stderr %q", res.code, res.stderr)
	}
	if got := readFile(t, dst); got != "hello\n" {
		t.Fatalf("dst = %q, want %q", got, "hello\n")
	}

	res = runFsx(t, dir, "", "copy", "-s", src, "-d", dst)
	if res.code != 0 || !strings.Contains(res.stdout, "up to date") {
		t.Fatalf("second copy = %+v, want up to date", res)
	}
}

func TestCopyIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	sub := filepath.Join(dir, "sub")
	writeFile(t, src, "data")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if res := runFsx(t, dir, "", "copy", "--src", src, "--dest", sub); res.code != 0 {
		t.Fatalf("copy exit %d, stderr %q", res.code, res.stderr)
	}
	if got := readFile(t, filepath.Join(sub, "src.txt")); got != "data" {
		t.Fatalf("copied = %q", got)
	}
}

func TestCopyExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	res := runFsx(t, dir, "", "copy", "-s", src, "-d", dst)
	if res.code != 1 || !strings.Contains(res.stderr, "already exists") {
		t.Fatalf("copy over existing = %+v, want refusal", res)
	}
	if got := readFile(t, dst); got != "old" {
		t.Fatalf("dst changed to %q", got)
	}

	res = runFsx(t, dir, "", "copy", "-s", src, "-d", dst, "--backup")
	if res.code != 0 {
		t.Fatalf("copy --backup exit %d, stderr %q", res.code, res.stderr)
	}
	if got := readFile(t, dst); got != "new" {
		t.Fatalf("dst = %q, want %q", got, "new")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var backups []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "dst-") {
			backups = append(backups, e.Name())
			if got := readFile(t, filepath.Join(dir, e.Name())); got != "old" {
				t.Errorf("backup %s = %q, want %q", e.Name(), got, "old")
			}
		}
	}
	if len(backups) != 1 {
		t.Fatalf("backups = %v, want one", backups)
	}

	// A second backup must not replace the first, even within one second.
	writeFile(t, src, "newest")
	if res := runFsx(t, dir, "", "copy", "-s", src, "-d", dst, "-b"); res.code != 0 {
		t.Fatalf("second copy --backup exit %d, stderr %q", res.code, res.stderr)
	}
	contents := make(map[string]bool)
	entries, err = os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "dst-") {
			contents[readFile(t, filepath.Join(dir, e.Name()))] = true
		}
	}
	if diff := cmp.Diff(map[string]bool{"old": true, "new": true}, contents); diff != "" {
		t.Fatalf("backup contents (-want +got):\n%s", diff)
	}

	writeFile(t, src, "newer")
	if res := runFsx(t, dir, "", "copy", "-s", src, "-d", dst, "-f"); res.code != 0 {
		t.Fatalf("copy -f exit %d, stderr %q", res.code, res.stderr)
	}
	if got := readFile(t, dst); got != "newer" {
		t.Fatalf("dst = %q, want %q", got, "newer")
	}
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	writeFile(t, src, "x")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no action", nil, []string{"no action specified", "Run 'fsx --help'"}},
		{"unknown action", []string{"move"}, []string{"unknown action: move"}},
		{"missing dest", []string{"copy", "-s", src}, []string{"--dest", "Run 'fsx --help copy'"}},
		{"missing src file", []string{"copy", "-s", filepath.Join(dir, "nope"), "-d", "x"}, []string{"failed validation"}},
		{"unknown option", []string{"copy", "--nope"}, []string{"unknown option", "Run 'fsx --help' for usage."}},
		{"option for another action", []string{"list", "--force"}, []string{"not supported by action \"list\""}},
		{"bad algo", []string{"checksum", "--files", src, "--algo", "crc"}, []string{"failed validation"}},
		{"bad constraint", []string{"version", "--require", ">= one"}, []string{"failed validation"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runFsx(t, dir, "", tt.args...)
			if res.code == 0 {
				t.Fatalf("exit 0, stdout %q", res.stdout)
			}
			for _, w := range tt.want {
				if !strings.Contains(res.stderr, w) {
					t.Errorf("stderr = %q, want it to contain %q", res.stderr, w)
				}
			}
		})
	}
}

func TestHelp(t *testing.T) {
	dir := t.TempDir()
	res := runFsx(t, dir, "", "--help")
	if res.code != 0 {
		t.Fatalf("--help exit %d", res.code)
	}
	for _, w := range []string{"fsx - " + description, "ACTIONS:", "checksum", "--dest DEST", "--help ACTION"} {
		if !strings.Contains(res.stdout, w) {
			t.Errorf("help missing %q:\n%s", w, res.stdout)
		}
	}

	res = runFsx(t, dir, "", "compress", "--help")
	if res.code != 0 {
		t.Fatalf("compress --help exit %d", res.code)
	}
	if !strings.HasPrefix(res.stdout, "compress - Compress or decompress") {
		t.Errorf("action help = %q", res.stdout)
	}
	if strings.Contains(res.stdout, "--backup") {
		t.Errorf("compress help lists copy-only --backup:\n%s", res.stdout)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.toml"), "a = 1\n")
	writeFile(t, filepath.Join(dir, "a.txt"), "text")
	writeFile(t, filepath.Join(dir, ".hidden"), "")

	res := runFsx(t, dir, "", "list", "--dir", dir)
	if res.code != 0 {
		t.Fatalf("list exit %d, stderr %q", res.code, res.stderr)
	}
	if diff := cmp.Diff("a.txt\nb.toml\n", res.stdout); diff != "" {
		t.Errorf("list (-want +got):\n%s", diff)
	}

	res = runFsx(t, dir, "", "list", "--dir", dir, "-l", "--all")
	if res.code != 0 {
		t.Fatalf("list -l exit %d, stderr %q", res.code, res.stderr)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 4 {
		t.Fatalf("list -l --all printed %d lines:\n%s", len(lines), res.stdout)
	}
	if !strings.HasPrefix(lines[0], "MODE") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[3], "toml") || !strings.HasSuffix(lines[3], "b.toml") {
		t.Errorf("b.toml line = %q", lines[3])
	}
}

func TestChecksum(t *testing.T) {
	dir := t.TempDir()
	var files []string
	var want strings.Builder
	for _, name := range []string{"one", "two", "three", "four", "five"} {
		p := filepath.Join(dir, name)
		writeFile(t, p, name+"\n")
		files = append(files, p)
		sum := sha256.Sum256([]byte(name + "\n"))
		want.WriteString(hex.EncodeToString(sum[:]) + "  " + p + "\n")
	}

	args := append([]string{"checksum", "--files"}, files...)
	res := runFsx(t, dir, "", args...)
	if res.code != 0 {
		t.Fatalf("checksum exit %d, stderr %q", res.code, res.stderr)
	}
	if diff := cmp.Diff(want.String(), res.stdout); diff != "" {
		t.Errorf("checksum (-want +got):\n%s", diff)
	}
}

func TestCompress(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "log.txt")
	body := strings.Repeat("compress me\n", 200)
	writeFile(t, src, body)

	if res := runFsx(t, dir, "", "compress", "-s", src, "--level", "best"); res.code != 0 {
		t.Fatalf("compress exit %d, stderr %q", res.code, res.stderr)
	}
	if err := os.Remove(src); err != nil {
		t.Fatal(err)
	}
	// Already-compressed input is detected and decompressed.
	if res := runFsx(t, dir, "", "compress", "-s", src+".zst"); res.code != 0 {
		t.Fatalf("decompress exit %d, stderr %q", res.code, res.stderr)
	}
	if got := readFile(t, src); got != body {
		t.Fatalf("round trip changed %d bytes into %d", len(body), len(got))
	}

	res := runFsx(t, dir, "", "compress", "-x", "-s", src+".zst")
	if res.code != 1 || !strings.Contains(res.stderr, "already exists") {
		t.Fatalf("decompress over existing = %+v, want refusal", res)
	}
}

func TestVersion(t *testing.T) {
	dir := t.TempDir()
	res := runFsx(t, dir, "", "version", "--require", ">= 0.1")
	if res.code != 0 || res.stdout != "fsx "+version+"\n" {
		t.Fatalf("version = %+v", res)
	}
	res = runFsx(t, dir, "", "version", "--require", "< 0.1")
	if res.code != 1 || !strings.Contains(res.stderr, "does not satisfy") {
		t.Fatalf("unmet constraint = %+v", res)
	}
}

func TestCatalogFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "catalog")
	catalog, err := filepath.Abs("testdata/fsx.toml")
	if err != nil {
		t.Fatal(err)
	}

	res := runFsx(t, dir, "", "--catalog", catalog, "cp", "-i", src, "-o", dst)
	if res.code != 0 {
		t.Fatalf("cp exit %d, stderr %q", res.code, res.stderr)
	}
	if got := readFile(t, dst); got != "catalog" {
		t.Fatalf("dst = %q", got)
	}

	// The built-in catalog is not consulted.
	res = runFsx(t, dir, "", "--catalog", catalog, "copy", "-s", src, "-d", dst)
	if res.code == 0 || !strings.Contains(res.stderr, "unknown") {
		t.Fatalf("copy with file catalog = %+v, want failure", res)
	}

	res = runFsx(t, dir, "", "--catalog", catalog, "--help", "sum")
	if res.code != 0 || !strings.HasPrefix(res.stdout, "sum - Hash files") {
		t.Fatalf("sum help = %+v", res)
	}

	res = runFsx(t, dir, "", "--catalog", catalog, "--catalog-format", "hcl", "cp", "-i", src, "-o", dst)
	if res.code == 0 {
		t.Fatalf("toml catalog decoded as hcl succeeded")
	}
}

func TestSavePrefs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	writeFile(t, src, "x")
	catalog, err := filepath.Abs("testdata/fsx.toml")
	if err != nil {
		t.Fatal(err)
	}

	res := runFsx(t, dir, "", "--catalog", catalog, "--no-color", "--save-prefs", "sum", "--files", src)
	if res.code != 0 {
		t.Fatalf("sum exit %d, stderr %q", res.code, res.stderr)
	}
	p, err := loadPrefs(filepath.Join(dir, "prefs.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(prefs{Catalog: catalog, NoColor: true}, p); diff != "" {
		t.Fatalf("saved prefs (-want +got):\n%s", diff)
	}

	// The saved catalog is used without --catalog.
	if res := runFsx(t, dir, "", "sum", "--files", src); res.code != 0 {
		t.Fatalf("sum with saved prefs exit %d, stderr %q", res.code, res.stderr)
	}
}

func TestVerbose(t *testing.T) {
	dir := t.TempDir()
	res := runFsx(t, dir, "", "version", "--verbose")
	if res.code != 0 {
		t.Fatalf("version --verbose exit %d, stderr %q", res.code, res.stderr)
	}
	if !strings.Contains(res.stderr, "cmdline: loaded") {
		t.Errorf("stderr = %q, want pipeline logs", res.stderr)
	}
}

func TestLoadPrefsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FSX_CATALOG", "/etc/fsx.hcl")
	t.Setenv("NO_COLOR", "1")
	p, err := loadPrefs(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(prefs{Catalog: "/etc/fsx.hcl", NoColor: true}, p); diff != "" {
		t.Fatalf("prefs (-want +got):\n%s", diff)
	}

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "catalog = [")
	if _, err := loadPrefs(bad); err == nil {
		t.Fatalf("loadPrefs(%s) succeeded", bad)
	}
}
