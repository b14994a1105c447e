// Package dashboard holds the read-only aggregates shown on the admin dashboard.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
)

const DefaultMonths = 6

type MonthBucket struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Label string     `json:"label"`
	Count int        `json:"count"`
}

type FeedbackBreakdown struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

type Summary struct {
	ProjectCount     int               `json:"projectCount"`
	ExperienceCount  int               `json:"experienceCount"`
	Feedback         FeedbackBreakdown `json:"feedback"`
	ProjectsPerMonth []MonthBucket     `json:"projectsPerMonth"`
	GeneratedAt      time.Time         `json:"generatedAt"`
}

// MonthLabel formats a month as "Jan 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String()[:3], year)
}

// BucketProjectsByMonth counts creation times per calendar month (UTC) over the trailing window of
// `months` months. The window ends at the month of the latest timestamp, or at now when there is none.
// Empty months are included and the result is in chronological order.
func BucketProjectsByMonth(createdAt []time.Time, now time.Time, months int) []MonthBucket {
	if months <= 0 {
		months = DefaultMonths
	}

	var latest time.Time
	counts := make(map[[2]int]int, len(createdAt))
	for _, ts := range createdAt {
		if ts.IsZero() {
			continue
		}
		ts = ts.UTC()
		counts[[2]int{ts.Year(), int(ts.Month())}]++
		if ts.After(latest) {
			latest = ts
		}
	}

	end := latest
	if end.IsZero() {
		end = now.UTC()
	}
	endMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]MonthBucket, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := endMonth.AddDate(0, -i, 0)
		buckets = append(buckets, MonthBucket{
			Year:  m.Year(),
			Month: m.Month(),
			Label: MonthLabel(m.Year(), m.Month()),
			Count: counts[[2]int{m.Year(), int(m.Month())}],
		})
	}
	return buckets
}

// CountFeedback splits statuses into the three known buckets. Total counts every record.
func CountFeedback(statuses []feedback.Status) FeedbackBreakdown {
	b := FeedbackBreakdown{Total: len(statuses)}
	for _, s := range statuses {
		switch s {
		case feedback.StatusApproved:
			b.Approved++
		case feedback.StatusPending:
			b.Pending++
		case feedback.StatusRejected:
			b.Rejected++
		}
	}
	return b
}

// Cache stores the latest computed Summary. Get reports a miss with (nil, false, nil).
type Cache interface {
	Get(ctx context.Context) (*Summary, bool, error)
	Set(ctx context.Context, s *Summary) error
	Invalidate(ctx context.Context) error
}
