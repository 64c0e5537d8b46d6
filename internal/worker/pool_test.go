package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"testing"
)

func TestNewPoolDefaultConcurrency(t *testing.T) {
	p := NewPool[int, int](0)
	if p.concurrency != runtime.NumCPU() {
		t.Errorf("expected concurrency %d, got %d", runtime.NumCPU(), p.concurrency)
	}

	p2 := NewPool[int, int](-1)
	if p2.concurrency != runtime.NumCPU() {
		t.Errorf("expected concurrency %d for -1, got %d", runtime.NumCPU(), p2.concurrency)
	}
}

func TestNewPoolExplicitConcurrency(t *testing.T) {
	p := NewPool[int, int](4)
	if p.concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", p.concurrency)
	}
}

func TestProcessEmpty(t *testing.T) {
	p := NewPool[int, int](2)
	results := p.Process(context.Background(), nil, func(n int) (int, error) {
		return n, nil
	})
	if results != nil {
		t.Errorf("expected nil results for empty input, got %v", results)
	}
}

func TestProcessPreservesOrder(t *testing.T) {
	p := NewPool[int, string](4)
	items := []int{0, 1, 2, 3, 4, 5, 6, 7}

	results := p.Process(context.Background(), items, func(n int) (string, error) {
		return "user-" + strconv.Itoa(n), nil
	})

	if len(results) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(results))
	}

	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result[%d] unexpected error: %v", i, r.Err)
		}
		expected := "user-" + strconv.Itoa(items[i])
		if r.Value != expected {
			t.Errorf("result[%d] = %q, expected %q", i, r.Value, expected)
		}
		if r.Index != i {
			t.Errorf("result[%d].Index = %d, expected %d", i, r.Index, i)
		}
	}
}

func TestProcessCapturesErrors(t *testing.T) {
	p := NewPool[int, int](2)
	items := []int{1, 2, 3, 4}

	results := p.Process(context.Background(), items, func(n int) (int, error) {
		if n%2 == 0 {
			return 0, fmt.Errorf("even item %d", n)
		}
		return n * 10, nil
	})

	for i, r := range results {
		if items[i]%2 == 0 {
			if r.Err == nil {
				t.Errorf("result[%d] expected error, got none", i)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("result[%d] unexpected error: %v", i, r.Err)
		}
		if r.Value != items[i]*10 {
			t.Errorf("result[%d] = %d, expected %d", i, r.Value, items[i]*10)
		}
	}
}

func TestProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPool[int, int](2)
	results := p.Process(ctx, []int{1, 2, 3}, func(n int) (int, error) {
		return n, nil
	})

	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result[%d].Err = %v, want context.Canceled", i, r.Err)
		}
	}
}
