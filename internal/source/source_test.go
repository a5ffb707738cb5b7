package source

import (
	"testing"

	"github.com/go-logr/logr"

	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
)

func TestWriteAndReadFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewLocalService(logging.New(logr.Discard()))
	src := model.InitializedSource{Path: dir}

	if err := svc.WriteFile(src, "./", "hello.txt", []byte("hello world")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := svc.ReadFile(src, "./", "hello.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("ReadFile = %q, want %q", got, "hello world")
	}
}

func TestWriteFileNestedPath(t *testing.T) {
	dir := t.TempDir()
	svc := NewLocalService(logging.New(logr.Discard()))
	src := model.InitializedSource{Path: dir}

	if err := svc.WriteFile(src, ".github/workflows", "codeql.yml", []byte("name: CodeQL")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := svc.ReadFile(src, ".github/workflows", "codeql.yml")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != "name: CodeQL" {
		t.Fatalf("ReadFile = %q", got)
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewLocalService(logging.New(logr.Discard()))
	src := model.InitializedSource{Path: dir}

	if err := svc.WriteFile(src, "./", "LICENSE", []byte("apache-2.0")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	hash, err := svc.HashFile(src, "./", "LICENSE")
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	// sha256("apache-2.0")
	const want = "4b77b33be70c243e93630753368638e28bb66e77935606b15aba3614339c3ee0"
	if hash != want {
		t.Fatalf("HashFile = %q, want %q", hash, want)
	}
}
