package analyzer

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aeo-audit/backend/schema"
	"github.com/aeo-audit/backend/stats"
)

// Cache entry with expiration
type cacheEntry struct {
	report    *Report
	timestamp time.Time
}

// CacheStats provides statistics about the auditor's result cache
type CacheStats struct {
	Entries     int           `json:"entries"`
	CacheHits   int           `json:"cacheHits"`
	CacheMisses int           `json:"cacheMisses"`
	CacheTTL    time.Duration `json:"cacheTTL"`
}

// Auditor runs the five category analyses over a page and aggregates
// them into a Report. Results are cached per (url, html) with a TTL.
type Auditor struct {
	weights         WeightConfig
	logger          *zap.Logger
	stats           *stats.Storage
	cache           map[string]cacheEntry
	cacheMutex      sync.RWMutex
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration
}

// New creates an Auditor with the canonical category weights.
func New(logger *zap.Logger) (*Auditor, error) {
	return NewWithWeights(DefaultWeights(), logger)
}

// NewWithWeights creates an Auditor with an explicit weight
// configuration. Construction fails fast on an invalid configuration.
func NewWithWeights(weights WeightConfig, logger *zap.Logger) (*Auditor, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weight configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	auditor := &Auditor{
		weights:         weights,
		logger:          logger,
		cache:           make(map[string]cacheEntry),
		cacheTTL:        30 * time.Minute,
		maxCacheSize:    1000,
		cleanupInterval: 5 * time.Minute,
		lastCleanup:     time.Now(),
	}

	// Start cleanup goroutine
	go auditor.periodicCleanup()

	return auditor, nil
}

// SetStats attaches a statistics storage for usage counters. A nil
// storage disables tracking.
func (a *Auditor) SetStats(s *stats.Storage) {
	a.stats = s
}

// periodicCleanup removes expired cache entries periodically
func (a *Auditor) periodicCleanup() {
	ticker := time.NewTicker(a.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		a.cleanup()
	}
}

// cleanup removes expired entries and enforces the cache size limit,
// evicting oldest entries first.
func (a *Auditor) cleanup() {
	now := time.Now()

	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()

	for key, entry := range a.cache {
		if now.Sub(entry.timestamp) > a.cacheTTL {
			delete(a.cache, key)
		}
	}

	if len(a.cache) > a.maxCacheSize {
		entries := make([]struct {
			key       string
			timestamp time.Time
		}, 0, len(a.cache))
		for key, entry := range a.cache {
			entries = append(entries, struct {
				key       string
				timestamp time.Time
			}{key, entry.timestamp})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})
		for i := 0; i < len(entries)-a.maxCacheSize; i++ {
			delete(a.cache, entries[i].key)
		}
	}

	a.lastCleanup = now
}

// SetCacheTTL sets the result cache TTL.
func (a *Auditor) SetCacheTTL(ttl time.Duration) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cacheTTL = ttl
}

// SetMaxCacheSize sets the maximum number of cached reports.
func (a *Auditor) SetMaxCacheSize(size int) {
	a.cacheMutex.Lock()
	a.maxCacheSize = size
	a.cacheMutex.Unlock()
	a.cleanup()
}

// ClearCache drops all cached reports.
func (a *Auditor) ClearCache() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cache = make(map[string]cacheEntry)
}

// cacheKey derives a unique key for a (url, html) pair.
func cacheKey(url, html string) string {
	hash := md5.Sum([]byte(url + "\x00" + html))
	return hex.EncodeToString(hash[:])
}

// IsCached reports whether a fresh report exists for the input.
func (a *Auditor) IsCached(url, html string) bool {
	key := cacheKey(url, html)
	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	entry, found := a.cache[key]
	return found && time.Since(entry.timestamp) < a.cacheTTL
}

// GetCacheStats returns statistics about the result cache.
func (a *Auditor) GetCacheStats() CacheStats {
	a.cacheMutex.RLock()
	entries := len(a.cache)
	ttl := a.cacheTTL
	a.cacheMutex.RUnlock()

	cs := CacheStats{Entries: entries, CacheTTL: ttl}
	if a.stats != nil {
		current := a.stats.GetCurrentStats()
		cs.CacheHits = current.CacheHits
		cs.CacheMisses = current.CacheMisses
	}
	return cs
}

// Audit runs the full five-category analysis over the supplied HTML and
// URL. All collected signals are optional; their absence degrades
// individual cards, never the audit itself. The returned report is
// always a complete, well-typed shape.
func (a *Auditor) Audit(html, url string, collected *Collected) (*Report, error) {
	if time.Since(a.lastCleanup) > a.cleanupInterval {
		go a.cleanup()
	}

	key := cacheKey(url, html)
	a.cacheMutex.RLock()
	if entry, found := a.cache[key]; found && time.Since(entry.timestamp) < a.cacheTTL {
		a.cacheMutex.RUnlock()
		a.trackCache(true)
		return entry.report, nil
	}
	a.cacheMutex.RUnlock()
	a.trackCache(false)

	report, err := a.run(html, url, collected)
	if err != nil {
		a.trackAudit(true)
		return report, err
	}
	a.trackAudit(false)

	a.cacheMutex.Lock()
	a.cache[key] = cacheEntry{report: report, timestamp: time.Now()}
	a.cacheMutex.Unlock()

	return report, nil
}

// run executes the five analyzers with settle-all semantics: each runs
// in its own goroutine behind a recover, so one failure never cancels
// or corrupts the others.
func (a *Auditor) run(html, url string, collected *Collected) (*Report, error) {
	if strings.TrimSpace(html) == "" {
		return a.emptyReport(url, "no HTML content was provided"), fmt.Errorf("empty HTML input")
	}

	doc, err := ParseHTML(html)
	if err != nil {
		return a.emptyReport(url, fmt.Sprintf("the HTML could not be parsed: %v", err)), err
	}

	entities := schema.Parse(doc.Root(), a.logger)

	w := a.weights
	runners := map[string]func() (MainSection, []GlobalPenalty){
		CategoryDiscoverability: func() (MainSection, []GlobalPenalty) {
			return analyzeDiscoverability(url, collected, w.Discoverability)
		},
		CategoryStructuredData: func() (MainSection, []GlobalPenalty) {
			return analyzeStructuredData(doc, entities, w.StructuredData), nil
		},
		CategoryLLMFormatting: func() (MainSection, []GlobalPenalty) {
			return analyzeLLMFormatting(doc, url, w.LLMFormatting), nil
		},
		CategoryAccessibility: func() (MainSection, []GlobalPenalty) {
			return analyzeAccessibility(doc, collected, w.Accessibility), nil
		},
		CategoryReadability: func() (MainSection, []GlobalPenalty) {
			return analyzeReadability(doc, a.logger, w.Readability), nil
		},
	}

	outcomes := make(map[string]categoryOutcome, len(runners))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for id, runner := range runners {
		wg.Add(1)
		go func(id string, runner func() (MainSection, []GlobalPenalty)) {
			defer wg.Done()
			outcome := a.settle(id, runner)
			mu.Lock()
			outcomes[id] = outcome
			mu.Unlock()
		}(id, runner)
	}
	wg.Wait()

	return a.aggregate(url, outcomes), nil
}

// settle captures an analyzer's result or its panic as a value.
func (a *Auditor) settle(id string, runner func() (MainSection, []GlobalPenalty)) (outcome categoryOutcome) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("category analyzer panicked",
				zap.String("category", id),
				zap.Any("panic", r))
			outcome = categoryOutcome{err: fmt.Errorf("analyzer panicked: %v", r)}
		}
	}()

	section, penalties := runner()
	return categoryOutcome{section: section, penalties: penalties}
}

func (a *Auditor) trackCache(hit bool) {
	if a.stats == nil {
		return
	}
	if hit {
		a.stats.IncrementStats(0, 0, 1, 0)
	} else {
		a.stats.IncrementStats(0, 0, 0, 1)
	}
}

func (a *Auditor) trackAudit(errored bool) {
	if a.stats == nil {
		return
	}
	if errored {
		a.stats.IncrementStats(1, 1, 0, 0)
	} else {
		a.stats.IncrementStats(1, 0, 0, 0)
	}
}

// Shutdown flushes statistics and drops the cache.
func (a *Auditor) Shutdown() error {
	if a == nil {
		return nil
	}

	if a.stats != nil {
		if err := a.stats.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown stats storage: %w", err)
		}
	}

	a.cacheMutex.Lock()
	a.cache = nil
	a.cacheMutex.Unlock()

	return nil
}
