package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type memoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: map[string][]byte{}}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.entries[key]
	return value, ok
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

func TestLoaderCachesSuccessfulFetch(t *testing.T) {
	loader := NewLoader(newMemoryStore(), time.Minute)

	calls := 0
	fetch := func(context.Context) ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	for i := 0; i < 3; i++ {
		got, err := loader.Do(context.Background(), "k", fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "payload" {
			t.Fatalf("unexpected payload %q", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single upstream fetch, got %d", calls)
	}
}

func TestLoaderDoesNotCacheFailures(t *testing.T) {
	loader := NewLoader(newMemoryStore(), time.Minute)

	calls := 0
	sentinel := errors.New("upstream down")
	fetch := func(context.Context) ([]byte, error) {
		calls++
		return nil, sentinel
	}

	for i := 0; i < 2; i++ {
		if _, err := loader.Do(context.Background(), "k", fetch); !errors.Is(err, sentinel) {
			t.Fatalf("expected sentinel error, got %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("failures must not be cached, got %d calls", calls)
	}
}

func TestLoaderCollapsesConcurrentFetches(t *testing.T) {
	loader := NewLoader(nil, 0) // no store, singleflight only

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("once"), nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([][]byte, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := loader.Do(context.Background(), "same-key", fetch)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results[i] = got
		}(i)
	}

	// Give every worker a chance to join the flight before releasing it.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected one collapsed fetch, got %d", calls.Load())
	}
	for i, r := range results {
		if string(r) != "once" {
			t.Fatalf("worker %d got %q", i, r)
		}
	}
}

func TestLoaderDistinctKeysFetchSeparately(t *testing.T) {
	loader := NewLoader(newMemoryStore(), time.Minute)

	calls := 0
	fetch := func(context.Context) ([]byte, error) {
		calls++
		return []byte("v"), nil
	}

	if _, err := loader.Do(context.Background(), "a", fetch); err != nil {
		t.Fatal(err)
	}
	if _, err := loader.Do(context.Background(), "b", fetch); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("expected two fetches for two keys, got %d", calls)
	}
}
