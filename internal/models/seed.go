package models

import "time"

func ptr(v uint) *uint { return &v }

// FixtureUsers returns the built-in demo team roster.
func FixtureUsers() []User {
	return []User{
		{ID: 1, Name: "Sarah Chen", Role: "Frontend Engineer", Avatar: "avatars/sarah.png", Email: "sarah.chen@trackflow.dev"},
		{ID: 2, Name: "Marcus Webb", Role: "Backend Engineer", Avatar: "avatars/marcus.png", Email: "marcus.webb@trackflow.dev"},
		{ID: 3, Name: "Priya Patel", Role: "QA Engineer", Avatar: "avatars/priya.png", Email: "priya.patel@trackflow.dev"},
		{ID: 4, Name: "Tom Okafor", Role: "Engineering Manager", Avatar: "avatars/tom.png", Email: "tom.okafor@trackflow.dev"},
	}
}

// FixtureProjects returns the built-in demo projects.
func FixtureProjects(now time.Time) []Project {
	return []Project{
		{ID: 1, Name: "Web App", Description: "Customer-facing web application", TeamMembers: "1,2,3", CreatedAt: now.AddDate(0, -6, 0)},
		{ID: 2, Name: "Mobile App", Description: "iOS and Android clients", TeamMembers: "1,3,4", CreatedAt: now.AddDate(0, -3, 0)},
	}
}

// FixtureIssues returns demo issues with timestamps relative to now so the
// dashboard trends have data on a fresh install.
func FixtureIssues(now time.Time) []Issue {
	day := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	return []Issue{
		{
			ID: 1, Title: "Login page throws 500 on empty password",
			Description: "Submitting the login form with a blank password returns a server error instead of a validation message.",
			Status:      StatusOpen, Priority: PriorityHigh, AssigneeID: ptr(2), ProjectID: ptr(1),
			Tags:      "login,auth,backend",
			CreatedAt: day(12), UpdatedAt: day(2), StatusChangedAt: day(12),
		},
		{
			ID: 2, Title: "Dashboard widgets overlap on tablet viewport",
			Description: "Metric cards stack incorrectly between 768px and 1024px.",
			Status:      StatusInProgress, Priority: PriorityMedium, AssigneeID: ptr(1), ProjectID: ptr(1),
			Tags:      "ui,responsive",
			CreatedAt: day(9), UpdatedAt: day(1), StatusChangedAt: day(3),
		},
		{
			ID: 3, Title: "Search returns stale results after issue delete",
			Description: "Deleted issues still appear in search until a full reload.",
			Status:      StatusResolved, Priority: PriorityHigh, AssigneeID: ptr(2), ProjectID: ptr(1),
			Tags:      "search,cache",
			CreatedAt: day(15), UpdatedAt: day(4), StatusChangedAt: day(4),
		},
		{
			ID: 4, Title: "Add CSV export for issue list",
			Description: "Support exporting the filtered issue list as CSV.",
			Status:      StatusOpen, Priority: PriorityLow, ProjectID: ptr(2),
			Tags:      "export,feature",
			CreatedAt: day(20), UpdatedAt: day(20), StatusChangedAt: day(20),
		},
		{
			ID: 5, Title: "Data loss when two tabs edit the same issue",
			Description: "Last write silently wins with no conflict warning.",
			Status:      StatusCritical, Priority: PriorityCritical, AssigneeID: ptr(4), ProjectID: ptr(1),
			Tags:      "data-integrity",
			CreatedAt: day(6), UpdatedAt: day(1), StatusChangedAt: day(5),
		},
		{
			ID: 6, Title: "Notification emails sent twice",
			Description: "Status change notifications are duplicated for watchers.",
			Status:      StatusClosed, Priority: PriorityMedium, AssigneeID: ptr(3), ProjectID: ptr(2),
			Tags:      "notifications,email",
			CreatedAt: day(30), UpdatedAt: day(10), StatusChangedAt: day(10),
		},
	}
}

// FixtureComments returns demo comments for the fixture issues.
func FixtureComments(now time.Time) []Comment {
	day := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	return []Comment{
		{ID: 1, IssueID: 1, UserID: 2, Content: "Reproduced on staging, stack trace points at the session handler.", CreatedAt: day(11), UpdatedAt: day(11)},
		{ID: 2, IssueID: 1, UserID: 4, Content: "Bumping priority, this is hitting real users.", CreatedAt: day(10), UpdatedAt: day(10)},
		{ID: 3, IssueID: 2, UserID: 1, Content: "Grid breakpoints need a medium tier, working on it.", CreatedAt: day(2), UpdatedAt: day(2)},
		{ID: 4, IssueID: 3, UserID: 3, Content: "Verified fixed in build 412.", CreatedAt: day(4), UpdatedAt: day(4)},
	}
}

// SeedDefaultData inserts fixture data into empty tables. Existing rows are
// never touched.
func SeedDefaultData() error {
	now := time.Now()

	var userCount int64
	DB.Model(&User{}).Count(&userCount)
	if userCount == 0 {
		users := FixtureUsers()
		if err := DB.Create(&users).Error; err != nil {
			return err
		}
	}

	var projectCount int64
	DB.Model(&Project{}).Count(&projectCount)
	if projectCount == 0 {
		projects := FixtureProjects(now)
		if err := DB.Create(&projects).Error; err != nil {
			return err
		}
	}

	var issueCount int64
	DB.Model(&Issue{}).Count(&issueCount)
	if issueCount == 0 {
		issues := FixtureIssues(now)
		if err := DB.Create(&issues).Error; err != nil {
			return err
		}
	}

	var commentCount int64
	DB.Model(&Comment{}).Count(&commentCount)
	if commentCount == 0 {
		comments := FixtureComments(now)
		if err := DB.Create(&comments).Error; err != nil {
			return err
		}
	}

	return nil
}
