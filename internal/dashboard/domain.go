package dashboard

// Stats aggregates a user's activity for the dashboard landing view.
type Stats struct {
	TotalApplications    int            `json:"totalApplications"`
	ApplicationsByStatus map[string]int `json:"applicationsByStatus"`
	RecentApplications   int            `json:"recentApplications"`
	UpcomingReminders    int            `json:"upcomingReminders"`
}
