package web

import "github.com/khoahotran/portfolio-admin/internal/domain/dashboard"

type share struct {
	Label   string
	Count   int
	Percent int
}

func maxBucket(buckets []dashboard.MonthBucket) int {
	m := 0
	for _, b := range buckets {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}

// feedbackShares turns the breakdown into whole percentages of Total. An empty breakdown yields zeros.
func feedbackShares(b dashboard.FeedbackBreakdown) []share {
	pct := func(n int) int {
		if b.Total == 0 {
			return 0
		}
		return n * 100 / b.Total
	}
	return []share{
		{Label: "Approved", Count: b.Approved, Percent: pct(b.Approved)},
		{Label: "Pending", Count: b.Pending, Percent: pct(b.Pending)},
		{Label: "Rejected", Count: b.Rejected, Percent: pct(b.Rejected)},
	}
}
