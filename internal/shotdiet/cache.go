package shotdiet

import (
	"container/list"
	"fmt"
	"sort"
	"sync"

	"github.com/nba-gm-sim/matchengine/internal/domain"
)

// No LRU library appears in any example repo's go.mod; container/list plus
// a map is the standard library idiom for this and is the one cache in the
// system built without a third-party dependency (see DESIGN.md).

const DefaultCapacity = 2048

type lruEntry struct {
	key   string
	style *Style
}

// Cache is a bounded LRU keyed on a matchup fingerprint: sorted offensive
// pids, sorted defensive pids, bucketed energies, role assignments, and
// scheme.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Key builds the cache fingerprint for a matchup.
func Key(off, def *domain.Team) string {
	offPIDs := sortedOnCourt(off)
	defPIDs := sortedOnCourt(def)
	roles := make([]string, 0, len(off.Roles))
	for role, pid := range off.Roles {
		roles = append(roles, role+"="+pid)
	}
	sort.Strings(roles)
	return fmt.Sprintf("%s|%s|%s|%s|%v|%s|%s",
		off.TeamID, offPIDs, energyBuckets(off), off.Tactics.OffenseScheme, roles,
		defPIDs, def.Tactics.DefenseScheme+"|"+energyBuckets(def))
}

func sortedOnCourt(t *domain.Team) string {
	pids := make([]string, 0, 5)
	pids = append(pids, t.OnCourt[:]...)
	sort.Strings(pids)
	out := ""
	for i, p := range pids {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}

func energyBuckets(t *domain.Team) string {
	out := ""
	pids := make([]string, 0, 5)
	pids = append(pids, t.OnCourt[:]...)
	sort.Strings(pids)
	for i, pid := range pids {
		p := t.ByID[pid]
		bucket := 0
		if p != nil {
			bucket = int(p.Energy * 10)
		}
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d", bucket)
	}
	return out
}

// Get returns a cached style and marks it most-recently-used.
func (c *Cache) Get(key string) (*Style, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*lruEntry).style, true
}

// Put inserts a style, evicting the least-recently-used entry if over
// capacity.
func (c *Cache) Put(key string, style *Style) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		el.Value.(*lruEntry).style = style
		return
	}
	el := c.ll.PushFront(&lruEntry{key: key, style: style})
	c.items[key] = el
	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
		}
	}
}

// Len reports the current entry count, for tests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// GetOrCompute returns the cached style for (off, def), computing and
// inserting it on a miss.
func (c *Cache) GetOrCompute(off, def *domain.Team) *Style {
	key := Key(off, def)
	if s, ok := c.Get(key); ok {
		return s
	}
	s := ComputeStyle(off, def)
	c.Put(key, s)
	return s
}
