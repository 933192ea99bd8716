package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	// Create temporary directory for test
	tempDir, err := os.MkdirTemp("", "stats-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create new storage
	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	// Test incrementing stats
	t.Run("IncrementStats", func(t *testing.T) {
		storage.IncrementStats(1, 2, 3, 4)
		stats := storage.GetCurrentStats()

		if stats.Audits != 1 {
			t.Errorf("Expected 1 audit, got %d", stats.Audits)
		}
		if stats.Errors != 2 {
			t.Errorf("Expected 2 errors, got %d", stats.Errors)
		}
		if stats.CacheHits != 3 {
			t.Errorf("Expected 3 cache hits, got %d", stats.CacheHits)
		}
		if stats.CacheMisses != 4 {
			t.Errorf("Expected 4 cache misses, got %d", stats.CacheMisses)
		}
	})

	// Test persistence
	t.Run("Persistence", func(t *testing.T) {
		// Force a save
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		// Create new storage instance pointing to same directory
		storage2, err := NewStorage(tempDir)
		if err != nil {
			t.Fatalf("Failed to create second storage: %v", err)
		}

		stats := storage2.GetCurrentStats()
		if stats.Audits != 1 {
			t.Errorf("Expected 1 audit after reload, got %d", stats.Audits)
		}
	})

	// Test cleanup
	t.Run("Cleanup", func(t *testing.T) {
		// Add some old stats
		oldMonth := time.Now().AddDate(0, -2, 0).Format("2006-01")
		storage.stats[oldMonth] = &MonthlyStats{
			Audits:      100,
			LastUpdated: time.Now().AddDate(0, -2, 0),
		}

		// Run cleanup keeping only 1 month of data
		storage.Cleanup(1)

		// Verify old stats are gone
		if _, exists := storage.stats[oldMonth]; exists {
			t.Error("Old stats should have been cleaned up")
		}
	})

	// Test file size
	t.Run("FileSize", func(t *testing.T) {
		// Force a save
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		// Check file size
		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}

		// File should be relatively small (< 1KB for this test data)
		if info.Size() > 1024 {
			t.Errorf("File size too large: %d bytes", info.Size())
		}
	})

	// Test concurrent access
	t.Run("ConcurrentAccess", func(t *testing.T) {
		before := storage.GetCurrentStats()
		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					storage.IncrementStats(1, 1, 1, 1)
					storage.GetCurrentStats()
				}
				done <- true
			}()
		}

		// Wait for all goroutines to complete
		for i := 0; i < 10; i++ {
			<-done
		}

		// Verify final counts
		stats := storage.GetCurrentStats()
		expectedCount := 1000 // 10 goroutines * 100 iterations
		delta := (stats.Audits - before.Audits) + (stats.CacheHits - before.CacheHits)
		if delta != expectedCount*2 {
			t.Errorf("Expected %d new increments, got %d", expectedCount*2, delta)
		}
	})

	// Test shutdown flushes to disk
	t.Run("Shutdown", func(t *testing.T) {
		if err := storage.Shutdown(); err != nil {
			t.Fatalf("Shutdown failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(tempDir, "stats.json")); err != nil {
			t.Errorf("Expected stats file after shutdown: %v", err)
		}
	})
}
