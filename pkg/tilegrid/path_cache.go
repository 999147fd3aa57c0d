// pkg/tilegrid/path_cache.go
package tilegrid

// DefaultPathCacheSize bounds the number of memoized next steps.
const DefaultPathCacheSize = 4096

type pathKey struct {
	start, goal Coord
}

type cachedStep struct {
	next Coord
	ok   bool
}

// PathCache memoizes NextStepToward answers for one grid version.
// Any grid mutation bumps the version and the whole cache is dropped on the next lookup.
type PathCache struct {
	limit   int
	version uint64
	steps   map[pathKey]cachedStep

	hits, misses int
}

// NewPathCache creates a cache holding at most limit entries (limit <= 0: unbounded).
func NewPathCache(limit int) *PathCache {
	return &PathCache{limit: limit, steps: make(map[pathKey]cachedStep)}
}

func (pc *PathCache) lookup(version uint64, start, goal Coord) (next Coord, ok, hit bool) {
	if version != pc.version {
		pc.Reset()
		pc.version = version
	}
	step, found := pc.steps[pathKey{start, goal}]
	if !found {
		pc.misses++
		return Coord{}, false, false
	}
	pc.hits++
	return step.next, step.ok, true
}

func (pc *PathCache) store(version uint64, start, goal, next Coord, ok bool) {
	if version != pc.version {
		pc.Reset()
		pc.version = version
	}
	if pc.limit > 0 && len(pc.steps) >= pc.limit {
		pc.Reset()
	}
	pc.steps[pathKey{start, goal}] = cachedStep{next: next, ok: ok}
}

// Reset drops every entry.
func (pc *PathCache) Reset() {
	clear(pc.steps)
}

func (pc *PathCache) Len() int    { return len(pc.steps) }
func (pc *PathCache) Hits() int   { return pc.hits }
func (pc *PathCache) Misses() int { return pc.misses }
