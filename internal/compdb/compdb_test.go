package compdb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compile_commands.json")
	db := Database{
		{Directory: "/p", Command: "cc -c '-DMSG=hello world' a.c", File: "a.c"},
		{Directory: "/p/lib", Command: "c++ -c util.cpp", File: "util.cpp"},
	}
	if err := db.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(db, got); diff != "" {
		t.Errorf("Save/Load: diff -want +got:\n%s", diff)
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compile_commands.json")
	var db Database
	if err := db.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(buf)); got != "[]" {
		t.Errorf("output=%q; want []", got)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load expected error for missing file")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compile_commands.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o664); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load expected error for invalid JSON")
	}
}
