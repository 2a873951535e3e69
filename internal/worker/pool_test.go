package worker

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestPool_ProcessesSubmittedJobs(t *testing.T) {
	original := AnalyzeEnergyFunc
	t.Cleanup(func() { AnalyzeEnergyFunc = original })

	var mu sync.Mutex
	var analyzed []string
	AnalyzeEnergyFunc = func(r io.Reader) (float64, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return 0, err
		}
		mu.Lock()
		analyzed = append(analyzed, string(data))
		mu.Unlock()
		return 0.5, nil
	}

	dir := t.TempDir()
	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(dir, "beat_"+string(rune('a'+i))+".mp3")
		if err := os.WriteFile(paths[i], []byte("payload-"+string(rune('a'+i))), 0644); err != nil {
			t.Fatal(err)
		}
	}

	pool := NewPool(10)
	pool.Start(2)
	for _, p := range paths {
		pool.Submit(Job{AssetPath: p})
	}
	pool.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(analyzed) != 3 {
		t.Fatalf("analyzed %d jobs, want 3", len(analyzed))
	}
}

func TestPool_FullQueueDropsJob(t *testing.T) {
	pool := NewPool(1)
	// No workers running; the second submit must not block.
	pool.Submit(Job{AssetPath: "one"})

	done := make(chan struct{})
	go func() {
		pool.Submit(Job{AssetPath: "two"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}
}

func TestPool_MissingFileDoesNotPanic(t *testing.T) {
	pool := NewPool(1)
	pool.Start(1)
	pool.Submit(Job{AssetPath: filepath.Join(t.TempDir(), "missing.mp3")})
	pool.Stop()
}
