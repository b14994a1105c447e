package experience

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

func TestExperience_Validate(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("missing required fields", func(t *testing.T) {
		for _, e := range []Experience{
			{Company: "Acme", StartDate: start},
			{Title: "Engineer", StartDate: start},
			{Title: "Engineer", Company: "Acme"},
			{Title: "  ", Company: "Acme", StartDate: start},
		} {
			err := e.Validate()
			assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

			var appErr *apperror.AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, MsgRequiredFields, appErr.Message)
		}
	})

	t.Run("length limits", func(t *testing.T) {
		e := Experience{Title: strings.Repeat("x", 101), Company: "Acme", StartDate: start}
		err := e.Validate()
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
		assert.Contains(t, err.Error(), "title must be at most 100 characters")
	})

	t.Run("current role keeps end date", func(t *testing.T) {
		end := start.AddDate(1, 0, 0)
		e := Experience{Title: "Engineer", Company: "Acme", StartDate: start, EndDate: &end, IsCurrent: true}
		assert.NoError(t, e.Validate())
		assert.True(t, e.IsCurrent)
		assert.Equal(t, end, *e.EndDate)
	})
}
