package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("startDate", "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("startDate", "2024-02-29T10:30:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 3, 30, 0, 0, time.UTC), d)

	d, err = ParseDate("startDate", "  ")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("startDate", "29/02/2024")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("endDate", nil)
	require.NoError(t, err)
	assert.Nil(t, d)

	empty := ""
	d, err = ParseOptionalDate("endDate", &empty)
	require.NoError(t, err)
	assert.Nil(t, d)

	v := "2023-12-01"
	d, err = ParseOptionalDate("endDate", &v)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 2023, d.Year())
}
