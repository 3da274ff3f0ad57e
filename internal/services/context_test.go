package services_test

import (
	"context"
	"testing"

	"shortreel/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithProject(ctx, "Deep_Sea_Fish")
	ctx = services.WithStage(ctx, "compose")
	ctx = services.WithRequestID(ctx, "req-123")

	if title, ok := services.ProjectFromContext(ctx); !ok || title != "Deep_Sea_Fish" {
		t.Fatalf("unexpected project: %v %v", title, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "compose" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithProject(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.ProjectFromContext(ctx); ok {
		t.Fatal("expected no project value")
	}
}
