// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codecutil

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Levels lists the names ZstdCompress accepts, fastest first.
var Levels = []string{"fastest", "default", "better", "best"}

// ParseLevel maps a level name to a zstd encoder level. The empty string is
// the default level.
func ParseLevel(name string) (zstd.EncoderLevel, error) {
	if name == "" {
		return zstd.SpeedDefault, nil
	}
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		return 0, fmt.Errorf("unknown compression level %q", name)
	}
	return level, nil
}

// ZstdCompress compresses src into dst at the given level.
func ZstdCompress(src, dst string, level zstd.EncoderLevel) error {
	return transform(src, dst, func(w io.Writer, r io.Reader) error {
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level))
		if err != nil {
			return fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		if _, err := io.Copy(encoder, r); err != nil {
			encoder.Close()
			return fmt.Errorf("failed to compress file: %w", err)
		}
		return encoder.Close()
	})
}

// ZstdDecompress decompresses src into dst.
func ZstdDecompress(src, dst string) error {
	return transform(src, dst, func(w io.Writer, r io.Reader) error {
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer decoder.Close()

		if _, err := decoder.WriteTo(w); err != nil {
			return fmt.Errorf("failed to decompress file: %w", err)
		}
		return nil
	})
}

// transform streams src through fn into a temporary file next to dst and
// renames it into place once fn succeeds.
func transform(src, dst string, fn func(w io.Writer, r io.Reader) error) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	tmp := dst + ".tmp"
	dstFile, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	if err := fn(dstFile, srcFile); err != nil {
		dstFile.Close()
		os.Remove(tmp)
		return err
	}
	if err := dstFile.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write destination file: %w", err)
	}
	return os.Rename(tmp, dst)
}
