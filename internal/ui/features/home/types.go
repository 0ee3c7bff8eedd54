// Package home provides the dashboard landing page.
package home

import (
	"time"

	"github.com/leapstack-labs/planportal/internal/ui/features/common"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// recentLimit is how many saved assessments the dashboard lists.
const recentLimit = 5

// DashboardStats holds the KPI cards.
type DashboardStats struct {
	Documents      int
	Adopted        int
	CompletionRate int
	HighPriority   int
	Categories     int
	Regulations    int
	Mandatory      int
}

// RecentAssessment is one row of the recent assessments table.
type RecentAssessment struct {
	ID          string
	ProjectName string
	ProjectType string
	Total       float64
	Level       core.RiskLevel
	CreatedAt   time.Time
}

// DashboardData is everything the dashboard renders.
type DashboardData struct {
	Stats        DashboardStats
	Categories   []CategorySummary
	Recent       []RecentAssessment
	CatalogError string
}

// CategorySummary is a category card with its document count.
type CategorySummary struct {
	common.CategoryGroup
	Count int
}
