package cli

import (
	"context"
	"path/filepath"
	"testing"

	pkgio "github.com/psptools/psplib/pkg/io"
)

const fixturePath = "../../pkg/psplib/testdata/j301_1.sm"

// isolateUserDirs points the XDG config and cache directories at temp dirs
// so tests never touch the real user environment.
func isolateUserDirs(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

func TestIsJSONInput(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
		want bool
	}{
		{"json extension", "instance.json", "anything", true},
		{"json extension uppercase", "instance.JSON", "anything", true},
		{"json body", "instance.txt", "  {\"Name\": \"x\"}", true},
		{"psplib file", "j301_1.sm", "****", false},
		{"empty file", "empty.sm", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isJSONInput(tt.path, []byte(tt.data)); got != tt.want {
				t.Errorf("isJSONInput(%q, %q) = %v, want %v", tt.path, tt.data, got, tt.want)
			}
		})
	}
}

func TestRunParseWritesJSONFile(t *testing.T) {
	isolateUserDirs(t)

	out := filepath.Join(t.TempDir(), "j301_1.json")
	opts := &parseOpts{output: out, indent: pkgio.DefaultIndent}
	if err := runParse(context.Background(), opts, fixturePath); err != nil {
		t.Fatalf("runParse: %v", err)
	}

	in, err := pkgio.ImportJSON(out)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if in.Name != "j301_1.sm" {
		t.Errorf("Name = %q, want %q", in.Name, "j301_1.sm")
	}
	if len(in.Jobs) != 32 {
		t.Errorf("len(Jobs) = %d, want 32", len(in.Jobs))
	}
}

func TestRunParseMissingFile(t *testing.T) {
	isolateUserDirs(t)

	opts := &parseOpts{indent: pkgio.DefaultIndent}
	err := runParse(context.Background(), opts, filepath.Join(t.TempDir(), "nope.sm"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInstanceUsesCache(t *testing.T) {
	isolateUserDirs(t)
	cfg := defaultConfig()

	// First load populates the cache, second load must return the same data.
	first, err := loadInstance(context.Background(), cfg, fixturePath, "", false)
	if err != nil {
		t.Fatalf("first loadInstance: %v", err)
	}
	second, err := loadInstance(context.Background(), cfg, fixturePath, "", false)
	if err != nil {
		t.Fatalf("second loadInstance: %v", err)
	}
	if first.Name != second.Name || first.Horizon != second.Horizon || len(first.Jobs) != len(second.Jobs) {
		t.Errorf("cached instance differs: %q/%d/%d vs %q/%d/%d",
			second.Name, second.Horizon, len(second.Jobs),
			first.Name, first.Horizon, len(first.Jobs))
	}

	// Refresh bypasses the cache but still decodes successfully.
	third, err := loadInstance(context.Background(), cfg, fixturePath, "", true)
	if err != nil {
		t.Fatalf("refresh loadInstance: %v", err)
	}
	if third.Horizon != first.Horizon {
		t.Errorf("refresh Horizon = %d, want %d", third.Horizon, first.Horizon)
	}
}

func TestLoadInstanceJSONInput(t *testing.T) {
	isolateUserDirs(t)
	cfg := defaultConfig()

	in, err := loadInstance(context.Background(), cfg, fixturePath, "", false)
	if err != nil {
		t.Fatalf("loadInstance: %v", err)
	}

	path := filepath.Join(t.TempDir(), "j301_1.json")
	if err := pkgio.ExportJSON(in, path, pkgio.DefaultIndent); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	back, err := loadInstance(context.Background(), cfg, path, "", false)
	if err != nil {
		t.Fatalf("loadInstance(json): %v", err)
	}
	if back.Name != in.Name || len(back.Jobs) != len(in.Jobs) {
		t.Errorf("JSON round trip mismatch: %q/%d vs %q/%d",
			back.Name, len(back.Jobs), in.Name, len(in.Jobs))
	}
}

func TestExcludedSkipDummies(t *testing.T) {
	isolateUserDirs(t)
	cfg := defaultConfig()

	in, err := loadInstance(context.Background(), cfg, fixturePath, "", false)
	if err != nil {
		t.Fatalf("loadInstance: %v", err)
	}

	got := excluded(in, true)
	if len(got) != 2 || got[0] != 1 || got[1] != 32 {
		t.Errorf("excluded = %v, want [1 32]", got)
	}
	if ids := excluded(in, false); ids != nil {
		t.Errorf("excluded without skip-dummies = %v, want nil", ids)
	}
}
