package generator

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/braunma/rackfloor/pkg/catalog"
)

func TestGenerateChunkedMatchesGenerate(t *testing.T) {
	cat := catalog.Default()
	opts := DefaultOptions()

	var calls []int
	racks, err := GenerateChunked(context.Background(), 130, cat, opts, 25, func(done, total int) {
		if total != 130 {
			t.Errorf("progress total = %d, expected 130", total)
		}
		calls = append(calls, done)
	})
	if err != nil {
		t.Fatalf("GenerateChunked() error = %v", err)
	}

	if diff := cmp.Diff(Generate(130, cat, opts), racks); diff != "" {
		t.Errorf("GenerateChunked() differs from Generate():\n%s", diff)
	}

	expected := []int{25, 50, 75, 100, 125, 130}
	if diff := cmp.Diff(expected, calls); diff != "" {
		t.Errorf("progress calls mismatch:\n%s", diff)
	}
}

func TestGenerateChunkedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	racks, err := GenerateChunked(ctx, 500, catalog.Default(), DefaultOptions(), 10, func(done, _ int) {
		if done >= 30 {
			cancel()
		}
	})
	if err == nil {
		t.Fatal("GenerateChunked() expected context error")
	}
	if racks != nil {
		t.Errorf("GenerateChunked() returned %d racks after cancel", len(racks))
	}
}

func TestGenerateAsync(t *testing.T) {
	cat := catalog.Default()

	res := <-GenerateAsync(context.Background(), 60, cat, DefaultOptions(), 0, nil)
	if res.Err != nil {
		t.Fatalf("GenerateAsync() error = %v", res.Err)
	}
	if len(res.Racks) != 60 {
		t.Errorf("GenerateAsync() returned %d racks, expected 60", len(res.Racks))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = <-GenerateAsync(ctx, 60, cat, DefaultOptions(), 0, nil)
	if res.Err == nil {
		t.Error("GenerateAsync() on cancelled context expected error")
	}
}
