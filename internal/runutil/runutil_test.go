package runutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNumberedName(t *testing.T) {
	dir := t.TempDir()
	first := NumberedName(dir, "run", ".log")
	if filepath.Base(first) != "run1.log" {
		t.Fatalf("first name = %q", first)
	}
	if err := os.WriteFile(first, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if second := NumberedName(dir, "run", ".log"); filepath.Base(second) != "run2.log" {
		t.Fatalf("second name = %q", second)
	}
}

func TestBackupExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edits.tsv")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	backup, err := BackupExisting(path, dir)
	if err != nil {
		t.Fatal(err)
	}
	if backup == "" {
		t.Fatal("expected a backup path")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("original should have been moved aside")
	}
	data, err := os.ReadFile(backup)
	if err != nil || string(data) != "old" {
		t.Errorf("backup content = %q, %v", data, err)
	}
	if base := filepath.Base(backup); !strings.HasPrefix(base, "indelfix_backup") || !strings.HasSuffix(base, "_edits.tsv") {
		t.Errorf("backup name = %q", base)
	}
}

func TestBackupExistingAbsent(t *testing.T) {
	backup, err := BackupExisting(filepath.Join(t.TempDir(), "nope.tsv"), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if backup != "" {
		t.Fatalf("backup = %q, want none for a missing file", backup)
	}
}

func TestLogName(t *testing.T) {
	dir := t.TempDir()
	name := LogName(dir, "/data/assembly.fasta")
	if filepath.Base(name) != "indelfix_assembly_run1.log" {
		t.Fatalf("log name = %q", name)
	}
	if err := os.WriteFile(name, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if next := LogName(dir, "/data/assembly.fasta"); filepath.Base(next) != "indelfix_assembly_run2.log" {
		t.Fatalf("next log name = %q", next)
	}
}
