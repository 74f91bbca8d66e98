package reco

import (
	"reflect"
	"testing"

	"shopReco/domain"
)

func sessionFromAids(id int64, aids ...int64) domain.Session {
	events := make([]domain.Event, 0, len(aids))
	for _, aid := range aids {
		events = append(events, domain.Event{Aid: aid, Type: domain.EventClicks})
	}
	return domain.Session{SessionID: id, Events: events}
}

func TestRecentDistinct(t *testing.T) {
	cases := []struct {
		name    string
		history []int64
		n       int
		want    []int64
	}{
		{"dedups most recent first", []int64{10, 20, 10}, 5, []int64{10, 20}},
		{"window shorter than history", []int64{1, 2, 3, 4, 5, 6}, 3, []int64{6, 5, 4}},
		{"window larger than history", []int64{7}, 5, []int64{7}},
		{"repeated tail collapses", []int64{1, 2, 2, 2}, 3, []int64{2}},
		{"empty history", nil, 5, []int64{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := recentDistinct(tc.history, tc.n)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("recentDistinct(%v, %d) = %v, want %v", tc.history, tc.n, got, tc.want)
			}
		})
	}
}

func TestBuildCandidates_ExcludesHistoryFromCovisit(t *testing.T) {
	svc := newTestService(t, testArtifacts(20), testScorers())

	pool := svc.buildCandidates(testSession())

	// dynamic candidates lead: 30 (weight 3) before 40 (weight 1)
	if len(pool) < 2 || pool[0] != 30 || pool[1] != 40 {
		t.Fatalf("pool head = %v, want [30 40 ...]", pool)
	}

	// 10 and 20 re-enter only through the fallback merge, after the
	// dynamic candidates
	for i, aid := range pool[:2] {
		if aid == 10 || aid == 20 {
			t.Errorf("history aid %d at dynamic position %d", aid, i)
		}
	}
}

func TestBuildCandidates_EmptySession(t *testing.T) {
	svc := newTestService(t, testArtifacts(20), testScorers())

	if pool := svc.buildCandidates(domain.Session{SessionID: 1}); len(pool) != 0 {
		t.Errorf("pool = %v, want empty for empty session", pool)
	}
}

func TestBuildCandidates_DistinctAndBounded(t *testing.T) {
	artifacts := testArtifacts(40)
	svc, err := NewRecoService(artifacts, testScorers(), nil, nil, Config{CandidatesPerSession: 10})
	if err != nil {
		t.Fatalf("NewRecoService: %v", err)
	}

	pool := svc.buildCandidates(testSession())

	if len(pool) > 10 {
		t.Errorf("pool length = %d, want <= 10", len(pool))
	}

	seen := make(map[int64]struct{}, len(pool))
	for _, aid := range pool {
		if _, ok := seen[aid]; ok {
			t.Fatalf("duplicate aid %d in pool %v", aid, pool)
		}
		seen[aid] = struct{}{}
	}
}

func TestBuildCandidates_AccumulatesAcrossSeeds(t *testing.T) {
	artifacts := &Artifacts{
		CoVisit: NewCoVisitIndex(map[int64][]WeightedAid{
			1: {{Aid: 100, Weight: 2}, {Aid: 200, Weight: 5}},
			2: {{Aid: 100, Weight: 4}},
		}),
		Popularity: NewPopularityTable(nil),
		Fallback:   NewFallbackList(nil),
	}
	svc, err := NewRecoService(artifacts, testScorers(), nil, nil, Config{})
	if err != nil {
		t.Fatalf("NewRecoService: %v", err)
	}

	// 100 accumulates 2+4=6 across both seeds and beats 200 at 5
	pool := svc.buildCandidates(sessionFromAids(1, 1, 2))
	want := []int64{100, 200}
	if !reflect.DeepEqual(pool, want) {
		t.Errorf("pool = %v, want %v", pool, want)
	}
}

func TestBuildCandidates_TiesKeepFirstSeenOrder(t *testing.T) {
	artifacts := &Artifacts{
		CoVisit: NewCoVisitIndex(map[int64][]WeightedAid{
			// neighbors of 1 sort by weight desc then aid asc: 300, 100, 200
			1: {{Aid: 100, Weight: 1}, {Aid: 200, Weight: 1}, {Aid: 300, Weight: 2}},
		}),
		Popularity: NewPopularityTable(nil),
		Fallback:   NewFallbackList(nil),
	}
	svc, err := NewRecoService(artifacts, testScorers(), nil, nil, Config{})
	if err != nil {
		t.Fatalf("NewRecoService: %v", err)
	}

	for i := 0; i < 20; i++ {
		pool := svc.buildCandidates(sessionFromAids(1, 1))
		want := []int64{300, 100, 200}
		if !reflect.DeepEqual(pool, want) {
			t.Fatalf("run %d: pool = %v, want %v", i, pool, want)
		}
	}
}

func TestBuildCandidates_SeedWindowLimitsLookups(t *testing.T) {
	artifacts := &Artifacts{
		CoVisit: NewCoVisitIndex(map[int64][]WeightedAid{
			1: {{Aid: 100, Weight: 9}},
			2: {{Aid: 200, Weight: 9}},
			3: {{Aid: 300, Weight: 9}},
		}),
		Popularity: NewPopularityTable(nil),
		Fallback:   NewFallbackList(nil),
	}
	svc, err := NewRecoService(artifacts, testScorers(), nil, nil, Config{ItemsFromHistory: 2})
	if err != nil {
		t.Fatalf("NewRecoService: %v", err)
	}

	// only the two most recent items (3, 2) seed the lookup
	pool := svc.buildCandidates(sessionFromAids(1, 1, 2, 3))
	for _, aid := range pool {
		if aid == 100 {
			t.Fatalf("pool %v contains neighbor of aged-out seed 1", pool)
		}
	}
	if len(pool) != 2 {
		t.Fatalf("pool = %v, want neighbors of seeds 3 and 2 only", pool)
	}
}
