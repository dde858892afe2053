package shotdiet

import (
	"fmt"
	"testing"

	"github.com/nba-gm-sim/matchengine/internal/domain"
)

func teamWithPID(teamID, pid string) *domain.Team {
	p := &domain.Player{PlayerID: pid, Derived: map[string]float64{}, Energy: 1.0}
	t := &domain.Team{TeamID: teamID, ByID: map[string]*domain.Player{pid: p}}
	t.OnCourt = [5]string{pid, pid, pid, pid, pid}
	t.Tactics.OffenseScheme = "Spread_HeavyPnR"
	t.Tactics.DefenseScheme = "Drop"
	return t
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(2)
	a := teamWithPID("AAA", "p1")
	b := teamWithPID("BBB", "p2")
	d := teamWithPID("DDD", "p3")

	c.Put(Key(a, d), &Style{})
	c.Put(Key(b, d), &Style{})
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	// touch a's entry so it becomes most-recently-used
	if _, ok := c.Get(Key(a, d)); !ok {
		t.Fatal("expected a's entry present")
	}

	e := teamWithPID("EEE", "p4")
	c.Put(Key(e, d), &Style{})
	if c.Len() != 2 {
		t.Fatalf("expected eviction to keep capacity at 2, got %d", c.Len())
	}
	if _, ok := c.Get(Key(b, d)); ok {
		t.Fatal("expected b's entry to have been evicted as least-recently-used")
	}
	if _, ok := c.Get(Key(a, d)); !ok {
		t.Fatal("expected a's entry to survive since it was touched")
	}
}

func TestGetOrComputeCachesResult(t *testing.T) {
	c := NewCache(DefaultCapacity)
	a := teamWithPID("AAA", "p1")
	d := teamWithPID("DDD", "p3")
	s1 := c.GetOrCompute(a, d)
	s2 := c.GetOrCompute(a, d)
	if fmt.Sprintf("%p", s1) != fmt.Sprintf("%p", s2) {
		t.Fatal("expected identical cached pointer on repeated lookups")
	}
}
