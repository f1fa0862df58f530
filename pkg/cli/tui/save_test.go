package tui

import (
	"path/filepath"
	"testing"
)

func TestResolveSavePath(t *testing.T) {
	tests := []struct {
		name string
		opts SaveOptions
		want SaveTarget
	}{
		{
			name: "disabled",
			opts: SaveOptions{Enabled: false, Mode: SaveModeDefault, DefaultPath: "/tmp/form.txt"},
			want: SaveTarget{Skip: true},
		},
		{
			name: "default path",
			opts: SaveOptions{Enabled: true, Mode: SaveModeDefault, DefaultPath: "/tmp/form.txt"},
			want: SaveTarget{Path: "/tmp/form.txt"},
		},
		{
			name: "default without a path prompts",
			opts: SaveOptions{Enabled: true, Mode: SaveModeDefault},
			want: SaveTarget{Prompt: true},
		},
		{
			name: "custom directory",
			opts: SaveOptions{Enabled: true, Mode: SaveModeCustom, DefaultPath: "/tmp/form.txt", CustomDir: "/data/out"},
			want: SaveTarget{Path: filepath.Join("/data/out", "form.html")},
		},
		{
			name: "custom without a directory prompts",
			opts: SaveOptions{Enabled: true, Mode: SaveModeCustom, CustomDir: "   "},
			want: SaveTarget{Prompt: true},
		},
		{
			name: "no option selected prompts",
			opts: SaveOptions{Enabled: true, Mode: SaveModeNone, DefaultPath: "/tmp/form.txt"},
			want: SaveTarget{Prompt: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSavePath(tt.opts); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
