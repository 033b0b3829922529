// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"rules.json", FormatJSON},
		{"rules.JSON", FormatJSON},
		{"rules.yaml", FormatYAML},
		{"/etc/ucredirect/rules.yml", FormatYAML},
		{"versions.txt", Format("")},
		{"rules", Format("")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.expected {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	if _, err := NewReader(FormatTable, strings.NewReader("")); err == nil {
		t.Error("expected error for table format")
	}
	if _, err := NewReader(Format("xml"), strings.NewReader("")); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := NewReader(FormatJSON, strings.NewReader("{}")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		want    testConfig
		wantErr bool
	}{
		{name: "json", format: FormatJSON, input: `{"name":"a","value":1}`, want: testConfig{Name: "a", Value: 1}},
		{name: "yaml", format: FormatYAML, input: "name: b\nvalue: 2\n", want: testConfig{Name: "b", Value: 2}},
		{name: "json unknown field", format: FormatJSON, input: `{"name":"a","extra":true}`, wantErr: true},
		{name: "yaml unknown field", format: FormatYAML, input: "name: b\nextra: true\n", wantErr: true},
		{name: "invalid json", format: FormatJSON, input: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}
			var got testConfig
			err = r.Deserialize(&got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Deserialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Deserialize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReader_NilChecks(t *testing.T) {
	var r *Reader
	if err := r.Deserialize(&testConfig{}); err == nil {
		t.Error("expected error for nil reader")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil reader returned %v", err)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("name: file\nvalue: 7\n"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	got, err := FromFile[testConfig](path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if got.Name != "file" || got.Value != 7 {
		t.Errorf("FromFile() = %+v", got)
	}

	if _, err := FromFile[testConfig](filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := FromFile[testConfig](filepath.Join(dir, "config.txt")); err == nil {
		t.Error("expected error for unknown extension")
	}
}
