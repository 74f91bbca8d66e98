package reco

import (
	"reflect"
	"testing"
)

func TestBuildFeatures_WorkedExample(t *testing.T) {
	artifacts := testArtifacts(20)
	session := testSession()

	table := buildFeatures(session, []int64{30, 40, 10}, artifacts.CoVisit, artifacts.Popularity)

	if !reflect.DeepEqual(table.Columns, FeatureColumns()) {
		t.Fatalf("columns = %v, want %v", table.Columns, FeatureColumns())
	}
	if table.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", table.NumRows())
	}

	// candidate 30: covisit 3 (from history item 10), popularity 10,
	// session length 3, never seen in this session
	if want := []float64{3, 10, 3, 0}; !reflect.DeepEqual(table.Rows[0], want) {
		t.Errorf("row for 30 = %v, want %v", table.Rows[0], want)
	}

	// candidate 40: covisit 1 (from history item 20)
	if want := []float64{1, 5, 3, 0}; !reflect.DeepEqual(table.Rows[1], want) {
		t.Errorf("row for 40 = %v, want %v", table.Rows[1], want)
	}

	// candidate 10 is fallback-sourced: it occurred twice in the session
	// and picks up covisit weight from history item 20
	if want := []float64{2, 100, 3, 2}; !reflect.DeepEqual(table.Rows[2], want) {
		t.Errorf("row for 10 = %v, want %v", table.Rows[2], want)
	}
}

func TestBuildFeatures_DuplicateHistoryCountedOnce(t *testing.T) {
	covisit := NewCoVisitIndex(map[int64][]WeightedAid{
		10: {{Aid: 30, Weight: 3}},
	})
	pop := NewPopularityTable(nil)

	// 10 appears twice but the covisit rescan runs over distinct history
	table := buildFeatures(sessionFromAids(1, 10, 20, 10), []int64{30}, covisit, pop)

	if got := table.Rows[0][0]; got != 3 {
		t.Errorf("covisit score = %v, want 3 (distinct history, not per event)", got)
	}
	if got := table.Rows[0][2]; got != 3 {
		t.Errorf("session length = %v, want 3 (all events, with repetition)", got)
	}
}

func TestBuildFeatures_MissingLookupsAreZero(t *testing.T) {
	covisit := NewCoVisitIndex(nil)
	pop := NewPopularityTable(nil)

	table := buildFeatures(sessionFromAids(1, 5), []int64{99}, covisit, pop)

	if want := []float64{0, 0, 1, 0}; !reflect.DeepEqual(table.Rows[0], want) {
		t.Errorf("row = %v, want all-zero lookups %v", table.Rows[0], want)
	}
}

func TestFeatureTable_Flatten(t *testing.T) {
	table := &FeatureTable{
		Columns: FeatureColumns(),
		Aids:    []int64{1, 2},
		Rows:    [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}},
	}

	want := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	if got := table.Flatten(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

func TestFeatureTable_ColumnIndex(t *testing.T) {
	table := &FeatureTable{Columns: FeatureColumns()}

	idx, ok := table.ColumnIndex(FeatSessionLength)
	if !ok || idx != 2 {
		t.Errorf("ColumnIndex(session_length) = %d,%v, want 2,true", idx, ok)
	}

	if _, ok := table.ColumnIndex("unknown"); ok {
		t.Error("ColumnIndex(unknown) reported present")
	}
}
