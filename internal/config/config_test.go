package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// isolate points the default config path at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(PathEnv, filepath.Join(dir, "config.toml"))
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", c.LogLevel)
	}
	if c.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", c.Workers, runtime.NumCPU())
	}
	if c.S3Region != "us-east-1" {
		t.Errorf("S3Region = %q, want us-east-1", c.S3Region)
	}
	if c.NoColor || c.S3Endpoint != "" {
		t.Errorf("unexpected values: %+v", c)
	}
}

func TestLoad_Precedence(t *testing.T) {
	for _, tc := range []struct {
		name       string
		file       string
		env        map[string]string
		wantLevel  string
		wantWork   int
		wantRegion string
		wantNoCol  bool
		wantEndpt  string
	}{
		{
			name:       "FileOnly",
			file:       "log_level = \"info\"\nworkers = 3\ns3_region = \"eu-west-1\"\nno_color = true\n",
			wantLevel:  "info",
			wantWork:   3,
			wantRegion: "eu-west-1",
			wantNoCol:  true,
		},
		{
			name: "EnvOverridesFile",
			file: "log_level = \"info\"\nworkers = 3\n",
			env: map[string]string{
				"ESAUDIT_LOG_LEVEL":   "debug",
				"ESAUDIT_WORKERS":     "8",
				"ESAUDIT_S3_ENDPOINT": "http://localhost:9000",
			},
			wantLevel:  "debug",
			wantWork:   8,
			wantRegion: "us-east-1",
			wantEndpt:  "http://localhost:9000",
		},
		{
			name:       "EnvOnly",
			env:        map[string]string{"ESAUDIT_NO_COLOR": "true", "ESAUDIT_S3_REGION": "ap-south-1"},
			wantLevel:  "warn",
			wantWork:   runtime.NumCPU(),
			wantRegion: "ap-south-1",
			wantNoCol:  true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolate(t)
			if tc.file != "" {
				writeFile(t, filepath.Join(dir, "config.toml"), tc.file)
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			c, err := Load("")
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if c.LogLevel != tc.wantLevel {
				t.Errorf("LogLevel = %q, want %q", c.LogLevel, tc.wantLevel)
			}
			if c.Workers != tc.wantWork {
				t.Errorf("Workers = %d, want %d", c.Workers, tc.wantWork)
			}
			if c.S3Region != tc.wantRegion {
				t.Errorf("S3Region = %q, want %q", c.S3Region, tc.wantRegion)
			}
			if c.NoColor != tc.wantNoCol {
				t.Errorf("NoColor = %v, want %v", c.NoColor, tc.wantNoCol)
			}
			if c.S3Endpoint != tc.wantEndpt {
				t.Errorf("S3Endpoint = %q, want %q", c.S3Endpoint, tc.wantEndpt)
			}
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "workers = 2\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Workers != 2 {
		t.Errorf("Workers = %d, want 2", c.Workers)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "BadTOML", file: "workers = [\n"},
		{name: "BadLevelInFile", file: "log_level = \"loud\"\n"},
		{name: "NegativeWorkers", env: map[string]string{"ESAUDIT_WORKERS": "-1"}},
		{name: "NonNumericWorkers", env: map[string]string{"ESAUDIT_WORKERS": "many"}},
		{name: "BadLevelInEnv", env: map[string]string{"ESAUDIT_LOG_LEVEL": "verbose"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolate(t)
			if tc.file != "" {
				writeFile(t, filepath.Join(dir, "config.toml"), tc.file)
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelWarn, true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
