// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {

	versions := []int32{5, 13, 17}

	for _, version := range versions {
		raw, err := buildTestFile(version).Marshal()
		if err != nil {
			t.Fatalf("building the version %d fixture failed, reason: %v", version, err)
		}

		file, err := NewBytes(raw, nil)
		if err != nil {
			t.Errorf("NewBytes failed, reason: %v", err)
			continue
		}

		got := file.Parse()
		if got != nil {
			t.Errorf("Parse of version %d got %v, want nil", version, got)
		}
		if file.Header.Version != version {
			t.Errorf("parsed version got %d, want %d", file.Header.Version, version)
		}
		if len(file.Metadata.Types) != 1 || len(file.Metadata.Objects) != 1 {
			t.Errorf("version %d tables got %d types and %d objects, want 1 and 1",
				version, len(file.Metadata.Types), len(file.Metadata.Objects))
		}
	}
}

func TestNew(t *testing.T) {

	raw, err := buildTestFile(17).Marshal()
	if err != nil {
		t.Fatalf("building the fixture failed, reason: %v", err)
	}
	name := filepath.Join(t.TempDir(), "globalgamemanagers")
	if err := ioutil.WriteFile(name, raw, 0644); err != nil {
		t.Fatalf("writing the fixture failed, reason: %v", err)
	}

	file, err := New(name, nil)
	if err != nil {
		t.Fatalf("New(%s) failed, reason: %v", name, err)
	}
	defer file.Close()

	if got := file.Parse(); got != nil {
		t.Errorf("Parse(%s) got %v, want nil", name, got)
	}
	if file.Header.Version != 17 {
		t.Errorf("parsed version got %d, want 17", file.Header.Version)
	}
}

func TestParseTooSmall(t *testing.T) {

	file, err := NewBytes([]byte{0x01, 0x02, 0x03}, nil)
	if err != nil {
		t.Fatalf("NewBytes failed, reason: %v", err)
	}
	if got := file.Parse(); got != ErrInvalidFileSize {
		t.Errorf("Parse got %v, want %v", got, ErrInvalidFileSize)
	}
}

func TestParseTruncated(t *testing.T) {

	raw, err := buildTestFile(17).Marshal()
	if err != nil {
		t.Fatalf("building the fixture failed, reason: %v", err)
	}

	file, err := NewBytes(raw[:len(raw)/2], nil)
	if err != nil {
		t.Fatalf("NewBytes failed, reason: %v", err)
	}
	got := file.Parse()
	if got != ErrTruncatedMetadata {
		t.Errorf("Parse got %v, want %v", got, ErrTruncatedMetadata)
	}

	// The header decoded before the cut stays available.
	if file.Header.Version != 17 {
		t.Errorf("partial parse lost the header, got version %d", file.Header.Version)
	}
}

func TestParseHeaderOnly(t *testing.T) {

	raw, err := buildTestFile(17).Marshal()
	if err != nil {
		t.Fatalf("building the fixture failed, reason: %v", err)
	}

	file, err := NewBytes(raw, &Options{HeaderOnly: true})
	if err != nil {
		t.Fatalf("NewBytes failed, reason: %v", err)
	}
	if got := file.Parse(); got != nil {
		t.Errorf("Parse got %v, want nil", got)
	}
	if file.Header.Version != 17 {
		t.Errorf("header-only parse got version %d, want 17", file.Header.Version)
	}
	if len(file.Metadata.Types) != 0 {
		t.Errorf("header-only parse must not decode metadata")
	}
}
