package ui

import (
	"strings"
	"testing"
)

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		status  string
	}{
		{
			name:    "enabled status",
			enabled: true,
			status:  "enabled",
		},
		{
			name:    "disabled status",
			enabled: false,
			status:  "disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatStatus(tt.enabled, tt.status)
			if !strings.Contains(got, tt.status) {
				t.Errorf("FormatStatus() missing status %q", tt.status)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	headers := []string{"NAME", "MODE"}
	rows := [][]string{
		{"DP-1", "1920x1080"},
		{"HDMI-A-1", "2560x1440"},
	}

	got := RenderTable(headers, rows)

	for _, h := range headers {
		if !strings.Contains(got, h) {
			t.Errorf("RenderTable() missing header %q", h)
		}
	}
	for _, row := range rows {
		for _, cell := range row {
			if !strings.Contains(got, cell) {
				t.Errorf("RenderTable() missing cell %q", cell)
			}
		}
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	// header, separator, and one line per row
	if len(lines) != 2+len(rows) {
		t.Errorf("RenderTable() produced %d lines, want %d", len(lines), 2+len(rows))
	}
}

func TestRenderTableEmpty(t *testing.T) {
	got := RenderTable([]string{"NAME"}, nil)
	if !strings.Contains(got, "NAME") {
		t.Error("RenderTable() missing header for empty table")
	}
}

func TestCreateSeparator(t *testing.T) {
	tests := []struct {
		name  string
		width int
		char  string
	}{
		{name: "default width", width: 0, char: ""},
		{name: "explicit width", width: 10, char: "─"},
		{name: "custom char", width: 5, char: "="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateSeparator(tt.width, tt.char)
			if got == "" {
				t.Error("CreateSeparator() returned empty string")
			}
			want := tt.char
			if want == "" {
				want = "─"
			}
			if !strings.Contains(got, want) {
				t.Errorf("CreateSeparator() missing separator char %q", want)
			}
		})
	}
}
