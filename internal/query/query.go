// Package query holds the pure filtering, search and tally functions the issue
// stores and handlers share. Nothing here mutates its input; every function
// works on a snapshot and returns fresh slices.
package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/trackflow/trackflow/backend/internal/models"
)

// FilterAll is the sentinel filter value meaning "no status filter".
const FilterAll = "All"

// PriorityRank returns the fixed sort weight for a priority value.
// Unrecognized priorities rank below Low.
func PriorityRank(priority string) int {
	switch strings.ToLower(priority) {
	case "critical":
		return 4
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	default:
		return 0
	}
}

// Search returns issues matching q, relevance ordered: issues whose title
// contains the term sort before issues matched only on other fields, then by
// priority rank descending, stable on input order. An empty or whitespace-only
// query matches nothing.
func Search(issues []models.Issue, q string) []models.Issue {
	term := strings.ToLower(strings.TrimSpace(q))
	if term == "" {
		return []models.Issue{}
	}

	matched := make([]models.Issue, 0)
	for _, issue := range issues {
		if strings.Contains(strings.ToLower(issue.Title), term) ||
			strings.Contains(strings.ToLower(issue.Description), term) ||
			strings.Contains(strconv.FormatUint(uint64(issue.ID), 10), term) ||
			strings.Contains(strings.ToLower(issue.Status), term) ||
			strings.Contains(strings.ToLower(issue.Priority), term) {
			matched = append(matched, issue)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		aTitle := strings.Contains(strings.ToLower(matched[i].Title), term)
		bTitle := strings.Contains(strings.ToLower(matched[j].Title), term)
		if aTitle != bTitle {
			return aTitle
		}
		return PriorityRank(matched[i].Priority) > PriorityRank(matched[j].Priority)
	})

	return matched
}

// Filter applies the issue list view's composed filter: status equality unless
// activeFilter is FilterAll, then a plain case-insensitive substring match on
// title, description or stringified id. Input order is preserved.
func Filter(issues []models.Issue, activeFilter, searchTerm string) []models.Issue {
	filtered := make([]models.Issue, 0, len(issues))

	for _, issue := range issues {
		if activeFilter != FilterAll && issue.Status != activeFilter {
			continue
		}
		filtered = append(filtered, issue)
	}

	if searchTerm == "" {
		return filtered
	}

	term := strings.ToLower(searchTerm)
	result := make([]models.Issue, 0, len(filtered))
	for _, issue := range filtered {
		if strings.Contains(strings.ToLower(issue.Title), term) ||
			strings.Contains(strings.ToLower(issue.Description), term) ||
			strings.Contains(strconv.FormatUint(uint64(issue.ID), 10), term) {
			result = append(result, issue)
		}
	}
	return result
}

// StatusCounts is the fixed-shape tally shown above the issue list. Statuses
// outside the four buckets (e.g. "Critical") count toward Total only.
type StatusCounts struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}

// CountByStatus tallies issues into the four summary buckets plus a total.
func CountByStatus(issues []models.Issue) StatusCounts {
	counts := StatusCounts{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Status {
		case models.StatusOpen:
			counts.Open++
		case models.StatusInProgress:
			counts.InProgress++
		case models.StatusResolved:
			counts.Resolved++
		case models.StatusClosed:
			counts.Closed++
		}
	}
	return counts
}
