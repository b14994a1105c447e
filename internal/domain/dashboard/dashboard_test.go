package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestBucketProjectsByMonth_TrailingSixOfEightMonths(t *testing.T) {
	// eight distinct months, March 2023 .. December 2023 with gaps in May and July
	created := []time.Time{
		day(2023, time.March, 3),
		day(2023, time.April, 9),
		day(2023, time.June, 1),
		day(2023, time.August, 20),
		day(2023, time.August, 21),
		day(2023, time.September, 5),
		day(2023, time.October, 30),
		day(2023, time.November, 11),
		day(2023, time.December, 24),
	}
	now := day(2025, time.May, 1)

	got := BucketProjectsByMonth(created, now, 6)

	require.Len(t, got, 6)
	labels := make([]string, len(got))
	counts := make([]int, len(got))
	for i, b := range got {
		labels[i] = b.Label
		counts[i] = b.Count
	}
	assert.Equal(t, []string{"Jul 2023", "Aug 2023", "Sep 2023", "Oct 2023", "Nov 2023", "Dec 2023"}, labels)
	assert.Equal(t, []int{0, 2, 1, 1, 1, 1}, counts)
}

func TestBucketProjectsByMonth_CrossesYearBoundary(t *testing.T) {
	created := []time.Time{day(2023, time.November, 2), day(2024, time.February, 14)}

	got := BucketProjectsByMonth(created, time.Time{}, 6)

	require.Len(t, got, 6)
	assert.Equal(t, "Sep 2023", got[0].Label)
	assert.Equal(t, "Feb 2024", got[5].Label)
	assert.Equal(t, 1, got[2].Count)
	assert.Equal(t, 1, got[5].Count)
}

func TestBucketProjectsByMonth_EmptyUsesNow(t *testing.T) {
	now := day(2024, time.March, 15)

	got := BucketProjectsByMonth(nil, now, 6)

	require.Len(t, got, 6)
	assert.Equal(t, "Oct 2023", got[0].Label)
	assert.Equal(t, "Mar 2024", got[5].Label)
	for _, b := range got {
		assert.Zero(t, b.Count)
	}
}

func TestBucketProjectsByMonth_DefaultWindow(t *testing.T) {
	got := BucketProjectsByMonth([]time.Time{day(2024, time.June, 1)}, time.Now(), 0)
	assert.Len(t, got, DefaultMonths)
}

func TestCountFeedback(t *testing.T) {
	got := CountFeedback([]feedback.Status{
		feedback.StatusPending,
		feedback.StatusApproved,
		feedback.StatusApproved,
		feedback.StatusRejected,
		feedback.StatusPending,
	})

	assert.Equal(t, FeedbackBreakdown{Total: 5, Approved: 2, Pending: 2, Rejected: 1}, got)
}
