package services

import (
	"sort"
	"time"

	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/internal/store"
)

// DashboardService computes the dashboard widgets from an issue snapshot.
// Everything is recomputed from scratch on every call; any caching or refresh
// cadence belongs to the caller.
type DashboardService struct {
	issues store.IssueStore
	clock  store.Clock
}

func NewDashboardService(issues store.IssueStore, clock store.Clock) *DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardService{issues: issues, clock: clock}
}

type DashboardStats struct {
	TotalIssues       int     `json:"total_issues"`
	OpenIssues        int     `json:"open_issues"`
	ResolvedThisWeek  int     `json:"resolved_this_week"`
	AvgResolutionDays float64 `json:"avg_resolution_days"`
	TotalTrendPct     float64 `json:"total_trend_pct"`
	ResolvedTrendPct  float64 `json:"resolved_trend_pct"`
}

type TrendPoint struct {
	Date     string `json:"date"` // calendar day label, 2006-01-02
	Created  int    `json:"created"`
	Resolved int    `json:"resolved"`
}

type ActivityItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DashboardResponse struct {
	Stats             DashboardStats `json:"stats"`
	Trend             []TrendPoint   `json:"trend"`
	StatusBreakdown   map[string]int `json:"status_breakdown"`
	PriorityBreakdown map[string]int `json:"priority_breakdown"`
	RecentActivity    []ActivityItem `json:"recent_activity"`
}

const trendDays = 30

// GetStats builds the full dashboard payload.
func (s *DashboardService) GetStats() (*DashboardResponse, error) {
	issues, err := s.issues.GetAll()
	if err != nil {
		return nil, err
	}
	now := s.clock()

	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	resolvedThisWeek := resolvedBetween(issues, weekAgo, now)
	resolvedLastWeek := resolvedBetween(issues, twoWeeksAgo, weekAgo)
	createdThisWeek := createdBetween(issues, weekAgo, now)
	createdLastWeek := createdBetween(issues, twoWeeksAgo, weekAgo)

	open := 0
	for _, issue := range issues {
		if issue.Status == models.StatusOpen {
			open++
		}
	}

	return &DashboardResponse{
		Stats: DashboardStats{
			TotalIssues:       len(issues),
			OpenIssues:        open,
			ResolvedThisWeek:  resolvedThisWeek,
			AvgResolutionDays: AvgResolutionDays(issues),
			TotalTrendPct:     PercentChange(createdThisWeek, createdLastWeek),
			ResolvedTrendPct:  PercentChange(resolvedThisWeek, resolvedLastWeek),
		},
		Trend:             TrendSeries(issues, now, trendDays),
		StatusBreakdown:   Breakdown(issues, func(i models.Issue) string { return i.Status }),
		PriorityBreakdown: Breakdown(issues, func(i models.Issue) string { return i.Priority }),
		RecentActivity:    RecentActivity(issues, 10),
	}, nil
}

func resolvedBetween(issues []models.Issue, from, to time.Time) int {
	n := 0
	for _, issue := range issues {
		if issue.Status == models.StatusResolved &&
			issue.UpdatedAt.After(from) && !issue.UpdatedAt.After(to) {
			n++
		}
	}
	return n
}

func createdBetween(issues []models.Issue, from, to time.Time) int {
	n := 0
	for _, issue := range issues {
		if issue.CreatedAt.After(from) && !issue.CreatedAt.After(to) {
			n++
		}
	}
	return n
}

// PercentChange is the week-over-week delta. With no baseline, any activity
// reads as +100% and none as 0.
func PercentChange(thisWeek, lastWeek int) float64 {
	if lastWeek > 0 {
		return float64(thisWeek-lastWeek) / float64(lastWeek) * 100
	}
	if thisWeek > 0 {
		return 100
	}
	return 0
}

// AvgResolutionDays is the mean time from creation to last update over
// resolved issues, in days. Zero when nothing is resolved.
func AvgResolutionDays(issues []models.Issue) float64 {
	var totalDays float64
	count := 0
	for _, issue := range issues {
		if issue.Status != models.StatusResolved {
			continue
		}
		totalDays += issue.UpdatedAt.Sub(issue.CreatedAt).Hours() / 24
		count++
	}
	if count == 0 {
		return 0
	}
	return totalDays / float64(count)
}

// TrendSeries counts, for each of the last days calendar days, issues created
// that day and issues resolved that day, oldest first.
func TrendSeries(issues []models.Issue, now time.Time, days int) []TrendPoint {
	series := make([]TrendPoint, 0, days)
	for d := days - 1; d >= 0; d-- {
		day := now.AddDate(0, 0, -d)
		label := day.Format("2006-01-02")

		point := TrendPoint{Date: label}
		for _, issue := range issues {
			if issue.CreatedAt.Format("2006-01-02") == label {
				point.Created++
			}
			if issue.Status == models.StatusResolved && issue.UpdatedAt.Format("2006-01-02") == label {
				point.Resolved++
			}
		}
		series = append(series, point)
	}
	return series
}

// Breakdown tallies issues by the keyed field. Absent categories are simply
// absent; callers must not assume every enum value appears.
func Breakdown(issues []models.Issue, key func(models.Issue) string) map[string]int {
	out := make(map[string]int)
	for _, issue := range issues {
		out[key(issue)]++
	}
	return out
}

// RecentActivity returns the limit most recently updated issues, newest
// first, ties keeping input order.
func RecentActivity(issues []models.Issue, limit int) []ActivityItem {
	sorted := make([]models.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	items := make([]ActivityItem, 0, len(sorted))
	for _, issue := range sorted {
		items = append(items, ActivityItem{
			ID:        issue.ID,
			Title:     issue.Title,
			Status:    issue.Status,
			Priority:  issue.Priority,
			UpdatedAt: issue.UpdatedAt,
		})
	}
	return items
}
