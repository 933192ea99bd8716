package logging

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics represents the collected usage statistics
type Statistics struct {
	UniqueVisitors  map[string]time.Time `json:"uniqueVisitors"`  // IP -> Last Visit Time
	AuditRequests   int                  `json:"auditRequests"`   // Total number of audit requests
	ErrorCount      int                  `json:"errorCount"`      // Number of errors
	PopularURLs     map[string]int       `json:"popularUrls"`     // URL -> Count
	AverageLoadTime float64              `json:"averageLoadTime"` // Average audit time in milliseconds
	TotalLoadTime   float64              `json:"-"`               // Used to calculate average
	RequestCount    int                  `json:"-"`               // Used to calculate average
	LastPersisted   time.Time            `json:"lastPersisted"`   // Last time stats were saved
	mutex           sync.RWMutex         `json:"-"`
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			UniqueVisitors: make(map[string]time.Time),
			PopularURLs:    make(map[string]int),
			LastPersisted:  time.Now(),
		}

		// Try to load existing statistics
		if err := stats.Load(); err != nil {
			fmt.Printf("Could not load existing statistics: %v\n", err)
		}
	})
	return stats
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// cleanURL removes API paths and query parameters, returns just the main URL
func cleanURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	// Don't track our own API URLs
	if strings.Contains(u.Host, "localhost") ||
		strings.Contains(u.Host, "127.0.0.1") ||
		strings.Contains(strings.ToLower(u.Path), "/api/") {
		return ""
	}

	cleanURL := u.Scheme + "://" + u.Host

	if u.Path != "" && u.Path != "/" {
		cleanURL += u.Path
	}

	return strings.TrimSuffix(cleanURL, "/")
}

// TrackAudit records an audit request
func (s *Statistics) TrackAudit(url string, loadTime float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AuditRequests++

	// Clean the URL before storing
	cleanedURL := cleanURL(url)
	if cleanedURL != "" {
		s.PopularURLs[cleanedURL]++
	}

	if hasError {
		s.ErrorCount++
	}

	s.TotalLoadTime += loadTime
	s.RequestCount++
	s.AverageLoadTime = s.TotalLoadTime / float64(s.RequestCount)
}

// uniqueVisitorsLocked counts visitors seen in the last 24 hours.
// Callers must hold the mutex.
func (s *Statistics) uniqueVisitorsLocked() int {
	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// errorRateLocked returns the error rate as a percentage.
// Callers must hold the mutex.
func (s *Statistics) errorRateLocked() float64 {
	if s.AuditRequests == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(s.AuditRequests)) * 100
}

// popularURLsLocked returns up to n audited URLs with their counts.
// Callers must hold the mutex.
func (s *Statistics) popularURLsLocked(n int) map[string]int {
	result := make(map[string]int)
	count := 0

	for url, freq := range s.PopularURLs {
		if count < n {
			result[url] = freq
			count++
		}
	}

	return result
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.uniqueVisitorsLocked()
}

// GetPopularURLs returns the top N most audited URLs
func (s *Statistics) GetPopularURLs(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.popularURLsLocked(n)
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.errorRateLocked()
}

// Save persists the statistics to a file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create("statistics.json")
	if err != nil {
		return fmt.Errorf("could not create statistics file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %v", err)
	}

	return nil
}

// Load reads the statistics from a file
func (s *Statistics) Load() error {
	file, err := os.Open("statistics.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return fmt.Errorf("could not open statistics file: %v", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %v", err)
	}

	return nil
}

// GetStatistics returns a copy of the current statistics, but only in development mode
func (s *Statistics) GetStatistics() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	// In production, return limited statistics without sensitive data
	if os.Getenv(ENV_DEV_MODE) != "true" {
		return map[string]interface{}{
			"uniqueVisitors24h": s.uniqueVisitorsLocked(),
			"totalRequests":     s.AuditRequests,
			"errorRate":         s.errorRateLocked(),
			"averageLoadTime":   s.AverageLoadTime,
		}
	}

	// In development mode, return full statistics
	return map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitorsLocked(),
		"totalRequests":     s.AuditRequests,
		"errorRate":         s.errorRateLocked(),
		"averageLoadTime":   s.AverageLoadTime,
		"popularUrls":       s.popularURLsLocked(5), // Top 5 URLs only shown in dev mode
	}
}
