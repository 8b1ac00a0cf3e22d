package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	input := `
# comment line
   /var/log/syslog   system
/var/log/auth.log
	~/app/dev.log app log  # trailing comment
/var/log/syslog duplicate
#/var/log/skipped.log

`
	got, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []Entry{
		{Path: "/var/log/syslog", Name: "system", Line: 3},
		{Path: "/var/log/auth.log", Name: "auth.log", Line: 4},
		{Path: filepath.Join(home, "app/dev.log"), Name: "app log", Line: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %#v, want %#v", got, want)
	}
}

func TestParse_RelativePathsBecomeAbsolute(t *testing.T) {
	got, err := Parse(strings.NewReader("logs/app.log\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if !filepath.IsAbs(got[0].Path) {
		t.Fatalf("Path = %q, want absolute", got[0].Path)
	}
	if !strings.HasSuffix(got[0].Path, filepath.FromSlash("logs/app.log")) {
		t.Fatalf("Path = %q, want suffix logs/app.log", got[0].Path)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	got, err := Parse(strings.NewReader("# nothing here\n\n   \n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Parse = %#v, want empty", got)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logtop.conf")
	if err := os.WriteFile(path, []byte("/tmp/a.log\n/tmp/b.log b\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != 2 || got[1].Name != "b" {
		t.Fatalf("Load = %#v, want two entries with second named b", got)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.conf"))
	if err == nil {
		t.Fatalf("Load returned nil error, want error")
	}
	if !strings.Contains(err.Error(), "open config") {
		t.Fatalf("Load error = %q, want it to mention open config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
