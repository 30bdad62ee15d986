// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ftdetect

import (
	"bytes"
	"debug/macho"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type FileType int

const (
	Unknown FileType = iota
	Binary
	Zstd
	Gzip
	Script
	TOML
	YAML
	HCL
	JSON
	Text
)

func (t FileType) String() string {
	switch t {
	case Binary:
		return "binary"
	case Zstd:
		return "zstd"
	case Gzip:
		return "gzip"
	case Script:
		return "script"
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case HCL:
		return "hcl"
	case JSON:
		return "json"
	case Text:
		return "text"
	}
	return "unknown"
}

// sniffLen is how much of a file DetectFile looks at.
const sniffLen = 512

// DetectFile reports the type of the regular file at path, looking at its
// leading bytes first and its name second.
func DetectFile(path string) (FileType, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Unknown, fmt.Errorf("failed to read file: %w", err)
	}
	return detect(path, head[:n]), nil
}

func detect(path string, head []byte) FileType {
	if isExecutable(head) {
		return Binary
	}
	if bytes.HasPrefix(head, []byte{0x28, 0xb5, 0x2f, 0xfd}) {
		return Zstd
	}
	if bytes.HasPrefix(head, []byte{0x1f, 0x8b}) {
		return Gzip
	}
	if ft, ok := DetectName(path); ok {
		return ft
	}
	if bytes.HasPrefix(head, []byte("#!")) {
		return Script
	}
	if isText(head) {
		return Text
	}
	return Unknown
}

// DetectName reports the type implied by the file name alone.
func DetectName(path string) (FileType, bool) {
	if path == "" {
		return Unknown, false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, true
	case ".yml", ".yaml":
		return YAML, true
	case ".hcl":
		return HCL, true
	case ".json":
		return JSON, true
	case ".zst":
		return Zstd, true
	case ".gz", ".tgz":
		return Gzip, true
	case ".sh", ".bash", ".py":
		return Script, true
	case ".txt", ".md":
		return Text, true
	}
	return Unknown, false
}

func isExecutable(head []byte) bool {
	if len(head) < 4 {
		return false
	}
	switch binary.LittleEndian.Uint32(head) {
	case 0x464C457F: // ELF (0x7f 'E' 'L' 'F')
		return true
	case macho.Magic32, macho.Magic64, macho.MagicFat:
		return true
	}
	return bytes.HasPrefix(head, []byte("MZ"))
}

// isText reports whether head looks like UTF-8 text. A multi-byte rune cut
// off at the end of head is allowed.
func isText(head []byte) bool {
	if bytes.IndexByte(head, 0) >= 0 {
		return false
	}
	for len(head) > 0 {
		r, size := utf8.DecodeRune(head)
		if r == utf8.RuneError && size == 1 {
			return len(head) < utf8.UTFMax && !utf8.FullRune(head)
		}
		head = head[size:]
	}
	return true
}
