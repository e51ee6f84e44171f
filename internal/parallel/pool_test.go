package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNewWorkerPool(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero", 0, runtime.GOMAXPROCS(0)},
		{"negative", -5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewWorkerPool(tt.workers)
			defer p.Close()
			if got := p.Workers(); got != tt.want {
				t.Errorf("Workers() = %d, want %d", got, tt.want)
			}
			if !p.IsRunning() {
				t.Error("IsRunning() = false, want true")
			}
		})
	}
}

func TestExecuteAll(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	p.ExecuteAll(work)
	if got := counter.Load(); got != 100 {
		t.Errorf("counter = %d, want 100", got)
	}

	// Results written by index are visible after ExecuteAll returns.
	out := make([]int, 50)
	work = make([]func(), len(out))
	for i := range work {
		work[i] = func() { out[i] = i * i }
	}
	p.ExecuteAll(work)
	for i, v := range out {
		if v != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestExecuteAllAfterClose(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	p.Close()
	if p.IsRunning() {
		t.Fatal("IsRunning() = true after Close()")
	}

	ran := 0
	p.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ran = %d after Close(), want 2", ran)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name             string
		n, parts, minLen int
		want             []Span
	}{
		{"even", 8, 4, 1, []Span{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"leftover to the front", 10, 4, 1, []Span{{0, 3}, {3, 6}, {6, 8}, {8, 10}}},
		{"limited by min length", 100, 8, 40, []Span{{0, 50}, {50, 100}}},
		{"too small", 10, 4, 32, []Span{{0, 10}}},
		{"one part", 7, 1, 1, []Span{{0, 7}}},
		{"empty", 0, 4, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.n, tt.parts, tt.minLen)
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%d, %d, %d) = %v, want %v", tt.n, tt.parts, tt.minLen, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Split(%d, %d, %d) = %v, want %v", tt.n, tt.parts, tt.minLen, got, tt.want)
					break
				}
			}
		})
	}
}
