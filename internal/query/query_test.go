package query

import (
	"testing"

	"github.com/trackflow/trackflow/backend/internal/models"
)

func TestSearch_EmptyQuery(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Title: "Login bug", Status: models.StatusOpen, Priority: models.PriorityHigh},
	}

	for _, q := range []string{"", "   ", "\t"} {
		result := Search(issues, q)
		if len(result) != 0 {
			t.Errorf("Search(%q) returned %d issues, expected 0", q, len(result))
		}
	}
}

func TestSearch_TitleMatchBeatsPriority(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Title: "Login bug", Priority: models.PriorityLow, Status: models.StatusOpen},
		{ID: 2, Title: "Other", Description: "login flow broken", Priority: models.PriorityCritical, Status: models.StatusOpen},
	}

	result := Search(issues, "login")
	if len(result) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(result))
	}
	if result[0].ID != 1 {
		t.Errorf("title match should rank first, got issue %d", result[0].ID)
	}
}

func TestSearch_PriorityOrderWithinTier(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Title: "payment timeout", Priority: models.PriorityLow},
		{ID: 2, Title: "payment fails on retry", Priority: models.PriorityCritical},
		{ID: 3, Title: "payment form styling", Priority: models.PriorityHigh},
	}

	result := Search(issues, "payment")
	want := []uint{2, 3, 1}
	for i, id := range want {
		if result[i].ID != id {
			t.Errorf("position %d: got issue %d, expected %d", i, result[i].ID, id)
		}
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Title: "Broken LOGIN redirect", Priority: models.PriorityMedium},
	}

	if len(Search(issues, "LoGiN")) != 1 {
		t.Error("search should be case-insensitive")
	}
}

func TestSearch_MatchesIDStatusPriority(t *testing.T) {
	issues := []models.Issue{
		{ID: 42, Title: "Alpha", Status: models.StatusResolved, Priority: models.PriorityLow},
		{ID: 7, Title: "Beta", Status: models.StatusOpen, Priority: models.PriorityCritical},
	}

	if got := Search(issues, "42"); len(got) != 1 || got[0].ID != 42 {
		t.Errorf("search by id: got %v", got)
	}
	if got := Search(issues, "resolved"); len(got) != 1 || got[0].ID != 42 {
		t.Errorf("search by status: got %v", got)
	}
	if got := Search(issues, "critical"); len(got) != 1 || got[0].ID != 7 {
		t.Errorf("search by priority: got %v", got)
	}
}

func TestSearch_StableOnTies(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Title: "cache miss A", Priority: models.PriorityMedium},
		{ID: 2, Title: "cache miss B", Priority: models.PriorityMedium},
		{ID: 3, Title: "cache miss C", Priority: models.PriorityMedium},
	}

	result := Search(issues, "cache")
	for i, id := range []uint{1, 2, 3} {
		if result[i].ID != id {
			t.Errorf("ties should retain input order, position %d got %d", i, result[i].ID)
		}
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Title: "zz low", Priority: models.PriorityLow},
		{ID: 2, Title: "zz critical", Priority: models.PriorityCritical},
	}

	Search(issues, "zz")
	if issues[0].ID != 1 || issues[1].ID != 2 {
		t.Error("input slice was reordered")
	}
}

func TestFilter_StatusOnly(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Status: models.StatusOpen},
		{ID: 2, Status: models.StatusClosed},
		{ID: 3, Status: models.StatusOpen},
	}

	result := Filter(issues, models.StatusOpen, "")
	if len(result) != 2 {
		t.Fatalf("expected 2 open issues, got %d", len(result))
	}
	if result[0].ID != 1 || result[1].ID != 3 {
		t.Error("input order should be preserved")
	}
}

func TestFilter_All(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Status: models.StatusOpen},
		{ID: 2, Status: models.StatusClosed},
	}

	if got := Filter(issues, FilterAll, ""); len(got) != 2 {
		t.Errorf("All filter should keep everything, got %d", len(got))
	}
}

func TestFilter_StatusAndSearchCompose(t *testing.T) {
	issues := []models.Issue{
		{ID: 1, Title: "Login bug", Status: models.StatusOpen},
		{ID: 2, Title: "Login flow broken", Status: models.StatusClosed},
		{ID: 3, Title: "Other", Status: models.StatusOpen},
	}

	result := Filter(issues, models.StatusOpen, "login")
	if len(result) != 1 || result[0].ID != 1 {
		t.Errorf("composed filter should intersect, got %v", result)
	}
}

func TestFilter_SearchMatchesIDNotStatus(t *testing.T) {
	issues := []models.Issue{
		{ID: 17, Title: "Alpha", Status: models.StatusOpen},
		{ID: 3, Title: "Beta", Description: "regression", Status: models.StatusResolved},
	}

	if got := Filter(issues, FilterAll, "17"); len(got) != 1 || got[0].ID != 17 {
		t.Errorf("list filter should match stringified id, got %v", got)
	}
	// Unlike Search, the list filter never matches on status text.
	if got := Filter(issues, FilterAll, "resolved"); len(got) != 0 {
		t.Errorf("list filter should not match status text, got %v", got)
	}
}

func TestCountByStatus_CriticalOnlyInTotal(t *testing.T) {
	issues := []models.Issue{
		{Status: models.StatusOpen},
		{Status: models.StatusOpen},
		{Status: models.StatusInProgress},
		{Status: models.StatusResolved},
		{Status: models.StatusClosed},
		{Status: models.StatusCritical},
	}

	counts := CountByStatus(issues)
	if counts.Total != 6 {
		t.Errorf("Total = %d, expected 6", counts.Total)
	}
	if counts.Open != 2 {
		t.Errorf("Open = %d, expected 2", counts.Open)
	}
	if counts.InProgress != 1 {
		t.Errorf("InProgress = %d, expected 1", counts.InProgress)
	}
	if counts.Resolved != 1 {
		t.Errorf("Resolved = %d, expected 1", counts.Resolved)
	}
	if counts.Closed != 1 {
		t.Errorf("Closed = %d, expected 1", counts.Closed)
	}
}

func TestCountByStatus_Empty(t *testing.T) {
	counts := CountByStatus(nil)
	if counts.Total != 0 || counts.Open != 0 {
		t.Errorf("empty collection should yield zero counts, got %+v", counts)
	}
}

func TestPriorityRank(t *testing.T) {
	cases := []struct {
		priority string
		want     int
	}{
		{"Critical", 4},
		{"High", 3},
		{"Medium", 2},
		{"Low", 1},
		{"critical", 4},
		{"unknown", 0},
		{"", 0},
	}

	for _, tc := range cases {
		if got := PriorityRank(tc.priority); got != tc.want {
			t.Errorf("PriorityRank(%q) = %d, expected %d", tc.priority, got, tc.want)
		}
	}
}
