package utils

import "testing"

func TestResolveIncludePath(t *testing.T) {
	tests := []struct {
		dir      string
		target   string
		quoted   bool
		expected string
	}{
		{"shaders", "common.hlsli", true, "shaders/common.hlsli"},
		{"", "common.hlsli", true, "common.hlsli"},
		{".", "common.hlsli", true, "common.hlsli"},
		{"shaders/lib", "../common.hlsli", true, "shaders/common.hlsli"},
		{"shaders", "common.hlsli", false, "common.hlsli"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got := ResolveIncludePath(tt.dir, tt.target, tt.quoted)
			if got != tt.expected {
				t.Errorf("ResolveIncludePath(%q, %q, %v) = %q; want %q", tt.dir, tt.target, tt.quoted, got, tt.expected)
			}
		})
	}
}

func TestDirOf(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"shaders/common.hlsli", "shaders"},
		{"common.hlsli", "."},
		{"/abs/shaders/common.hlsli", "/abs/shaders"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := DirOf(tt.path)
			if got != tt.expected {
				t.Errorf("DirOf(%q) = %q; want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestNormalizeSlashes(t *testing.T) {
	got := NormalizeSlashes(`shaders\lib\common.hlsli`)
	want := "shaders/lib/common.hlsli"
	if got != want {
		t.Errorf("NormalizeSlashes = %q; want %q", got, want)
	}
}
