package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestXDGDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		fn   func() (string, error)
		env  string
		set  string
		want string
	}{
		{"cache default", cacheDir, "XDG_CACHE_HOME", "", filepath.Join(home, ".cache", appName)},
		{"cache xdg", cacheDir, "XDG_CACHE_HOME", "/tmp/xdg-cache", filepath.Join("/tmp/xdg-cache", appName)},
		{"config default", configDir, "XDG_CONFIG_HOME", "", filepath.Join(home, ".config", appName)},
		{"config xdg", configDir, "XDG_CONFIG_HOME", "/tmp/xdg-config", filepath.Join("/tmp/xdg-config", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.set)
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, format, want string
	}{
		{"", "net.json", "svg", "net.svg"},
		{"", "dir/net.yaml", "dot", "dir/net.dot"},
		{"out.svg", "net.json", "svg", "out.svg"},
		{"-", "net.json", "dot", "-"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.format, got, tt.want)
		}
	}
}
