// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ftdetect

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectFile(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		fileName string
		contents []byte
		want     FileType
	}{
		{
			name:     "toml_by_ext",
			fileName: "fsx.toml",
			contents: []byte("[[action]]\nname = \"copy\"\n"),
			want:     TOML,
		},
		{
			name:     "yaml_by_ext",
			fileName: "fsx.yml",
			contents: []byte("actions: []\n"),
			want:     YAML,
		},
		{
			name:     "hcl_by_ext",
			fileName: "fsx.hcl",
			contents: []byte("action \"copy\" {}\n"),
			want:     HCL,
		},
		{
			name:     "elf_beats_name",
			fileName: "tool.toml",
			contents: []byte{0x7f, 'E', 'L', 'F', 2, 1, 1},
			want:     Binary,
		},
		{
			name:     "zstd_magic",
			fileName: "data",
			contents: []byte{0x28, 0xb5, 0x2f, 0xfd, 0x00},
			want:     Zstd,
		},
		{
			name:     "gzip_magic",
			fileName: "data",
			contents: []byte{0x1f, 0x8b, 0x08},
			want:     Gzip,
		},
		{
			name:     "script_shebang",
			fileName: "run",
			contents: []byte("#!/usr/bin/env bash\necho hi\n"),
			want:     Script,
		},
		{
			name:     "plain_text",
			fileName: "README",
			contents: []byte("héllo\n"),
			want:     Text,
		},
		{
			name:     "empty",
			fileName: "empty",
			want:     Text,
		},
		{
			name:     "binary_data",
			fileName: "blob",
			contents: []byte{0x00, 0x01, 0x02, 0xff},
			want:     Unknown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, tc.fileName)
			if err := os.WriteFile(path, tc.contents, 0o644); err != nil {
				t.Fatalf("write file: %v", err)
			}

			ft, err := DetectFile(path)
			if err != nil {
				t.Fatalf("DetectFile error: %v", err)
			}
			if ft != tc.want {
				t.Fatalf("DetectFile type mismatch: got %v want %v", ft, tc.want)
			}
		})
	}
}

func TestDetectFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := DetectFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDetectName(t *testing.T) {
	t.Parallel()

	cases := map[string]FileType{
		"a.TOML":  TOML,
		"a.yaml":  YAML,
		"a/b.hcl": HCL,
		"x.tgz":   Gzip,
	}
	for name, want := range cases {
		got, ok := DetectName(name)
		if !ok || got != want {
			t.Errorf("DetectName(%q) = %v, %v, want %v", name, got, ok, want)
		}
	}
	if _, ok := DetectName("Makefile"); ok {
		t.Errorf("DetectName(%q) matched", "Makefile")
	}
}
