package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func setHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", filepath.Join(dir, "AppData"))
	t.Setenv("LOCALAPPDATA", filepath.Join(dir, "LocalAppData"))
	return dir
}

func TestDirsContainProject(t *testing.T) {
	setHome(t)

	for name, dir := range map[string]string{
		"ConfigDir": ConfigDir(),
		"CacheDir":  CacheDir(),
		"LogDir":    LogDir(),
	} {
		if dir == "" {
			t.Errorf("%s() returned empty string", name)
		}
		if !strings.Contains(dir, projectOrg) || !strings.Contains(dir, projectName) {
			t.Errorf("%s() = %q, should contain %q and %q", name, dir, projectOrg, projectName)
		}
	}
}

func TestDirsPlatformSpecific(t *testing.T) {
	home := setHome(t)
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}

	if want := filepath.Join(home, ".config", "topmolt", "cli"); ConfigDir() != want {
		t.Errorf("ConfigDir() = %q, want %q", ConfigDir(), want)
	}
	if want := filepath.Join(home, ".cache", "topmolt", "cli"); CacheDir() != want {
		t.Errorf("CacheDir() = %q, want %q", CacheDir(), want)
	}
	if want := filepath.Join(home, ".local", "log", "topmolt", "cli"); LogDir() != want {
		t.Errorf("LogDir() = %q, want %q", LogDir(), want)
	}
}

func TestFiles(t *testing.T) {
	setHome(t)

	if filepath.Base(ConfigFile()) != "cli.yml" {
		t.Errorf("ConfigFile() = %q, want cli.yml", ConfigFile())
	}
	if filepath.Dir(ConfigFile()) != ConfigDir() {
		t.Errorf("ConfigFile() should be inside ConfigDir()")
	}
	if filepath.Base(LogFile()) != "cli.log" {
		t.Errorf("LogFile() = %q, want cli.log", LogFile())
	}
}

func TestEnsureDirs(t *testing.T) {
	setHome(t)

	if err := EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error = %v", err)
	}
	for _, dir := range []string{ConfigDir(), CacheDir(), LogDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
		if runtime.GOOS != "windows" && info.Mode().Perm() != 0700 {
			t.Errorf("%s mode = %v, want 0700", dir, info.Mode().Perm())
		}
	}

	// second call is a no-op
	if err := EnsureDirs(); err != nil {
		t.Fatalf("second EnsureDirs() error = %v", err)
	}
}

func TestEnsureFile(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "subdir", "test.txt")

	if err := EnsureFile(testFile); err != nil {
		t.Fatalf("EnsureFile() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(testFile)); err != nil {
		t.Errorf("EnsureFile() should create parent directory: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := setHome(t)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/x.yml", filepath.Join(home, "x.yml")},
		{"/abs/x.yml", "/abs/x.yml"},
		{"rel", "rel"},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveConfigPath(t *testing.T) {
	home := setHome(t)

	if got := ResolveConfigPath(""); got != ConfigFile() {
		t.Errorf("ResolveConfigPath('') = %q, want %q", got, ConfigFile())
	}
	if got, want := ResolveConfigPath("~/custom.yml"), filepath.Join(home, "custom.yml"); got != want {
		t.Errorf("ResolveConfigPath('~/custom.yml') = %q, want %q", got, want)
	}
	if got, want := ResolveConfigPath("staging"), filepath.Join(ConfigDir(), "staging.yml"); got != want {
		t.Errorf("ResolveConfigPath('staging') = %q, want %q", got, want)
	}
}

func TestAddExtIfNeeded(t *testing.T) {
	dir := t.TempDir()

	if got := addExtIfNeeded("/p/config.yml"); got != "/p/config.yml" {
		t.Errorf("addExtIfNeeded(.yml) = %q", got)
	}
	if got := addExtIfNeeded("/p/config.yaml"); got != "/p/config.yaml" {
		t.Errorf("addExtIfNeeded(.yaml) = %q", got)
	}
	if got := addExtIfNeeded("/p/config.json"); got != "/p/config.json" {
		t.Errorf("addExtIfNeeded(.json) = %q", got)
	}

	base := filepath.Join(dir, "config")
	if got := addExtIfNeeded(base); got != base+".yml" {
		t.Errorf("addExtIfNeeded(no ext) = %q, want %q", got, base+".yml")
	}

	if err := os.WriteFile(base+".yaml", []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := addExtIfNeeded(base); got != base+".yaml" {
		t.Errorf("addExtIfNeeded(existing .yaml) = %q, want %q", got, base+".yaml")
	}
}
