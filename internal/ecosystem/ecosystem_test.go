package ecosystem

import (
	"context"
	"testing"

	"github.com/go-logr/logr"

	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
)

func TestInitializeGoSuccess(t *testing.T) {
	dir := t.TempDir()
	svc := NewLocalService(logging.New(logr.Discard()))

	eco, err := svc.Initialize(context.Background(),
		model.NewGoEcosystemParams(model.GoParams{Name: "my-project", Host: "github.com"}),
		model.InitializedSource{Path: dir},
	)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if eco.Kind != "Go" || eco.Go.Name != "my-project" {
		t.Fatalf("unexpected ecosystem %+v", eco)
	}
}

func TestInitializeGoFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewLocalService(logging.New(logr.Discard()))

	_, err := svc.Initialize(context.Background(),
		model.NewGoEcosystemParams(model.GoParams{Name: "", Host: "github.com"}),
		model.InitializedSource{Path: dir},
	)
	if err == nil {
		t.Fatal("expected error for empty module name")
	}
	if model.KindOf(err) != model.KindSubprocess {
		t.Fatalf("expected Subprocess error, got %v", err)
	}
}

func TestInitializeUnsupported(t *testing.T) {
	svc := NewLocalService(logging.New(logr.Discard()))
	_, err := svc.Initialize(context.Background(), model.EcosystemParams{Kind: "Gradle"}, model.InitializedSource{Path: t.TempDir()})
	if model.KindOf(err) != model.KindUnsupported {
		t.Fatalf("expected Unsupported error, got %v", err)
	}
}
