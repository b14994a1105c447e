package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type postgresFeedbackRepo struct {
	db *pgxpool.Pool
}

func NewPostgresFeedbackRepo(db *pgxpool.Pool) feedback.Repository {
	return &postgresFeedbackRepo{db: db}
}

var feedbackColumns = []string{
	"id", "name", "email", "message", "status", "reply", "replied_at", "created_at", "updated_at",
}

func scanFeedback(row pgx.Row) (*feedback.Feedback, error) {
	f := &feedback.Feedback{}
	var status string
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Email,
		&f.Message,
		&status,
		&f.Reply,
		&f.RepliedAt,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("feedback", "")
		}
		return nil, apperror.NewInternal("failed to scan feedback row", err)
	}
	f.Status = feedback.Status(status)
	return f, nil
}

func (r *postgresFeedbackRepo) Save(ctx context.Context, f *feedback.Feedback) error {
	query, args, err := psql.Insert("feedback").
		Columns(feedbackColumns...).
		Values(f.ID, f.Name, f.Email, f.Message, string(f.Status), f.Reply, f.RepliedAt, f.CreatedAt, f.UpdatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build feedback insert", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("feedback", "id", f.ID.String())
		}
		return apperror.NewInternal("failed to save feedback", err)
	}
	return nil
}

func (r *postgresFeedbackRepo) Update(ctx context.Context, f *feedback.Feedback) error {
	query, args, err := psql.Update("feedback").
		SetMap(map[string]any{
			"name":       f.Name,
			"email":      f.Email,
			"message":    f.Message,
			"status":     string(f.Status),
			"reply":      f.Reply,
			"replied_at": f.RepliedAt,
			"updated_at": f.UpdatedAt,
		}).
		Where(sq.Eq{"id": f.ID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build feedback update", err)
	}
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to update feedback", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("feedback", f.ID.String())
	}
	return nil
}

func (r *postgresFeedbackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete feedback", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("feedback", id.String())
	}
	return nil
}

func (r *postgresFeedbackRepo) FindByID(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	query, args, err := psql.Select(feedbackColumns...).From("feedback").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build feedback query", err)
	}
	f, err := scanFeedback(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("feedback", id.String())
	}
	return f, err
}

func (r *postgresFeedbackRepo) List(ctx context.Context) ([]*feedback.Feedback, error) {
	query, args, err := psql.Select(feedbackColumns...).From("feedback").OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build feedback list query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list feedback", err)
	}
	defer rows.Close()

	items := make([]*feedback.Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating feedback rows", err)
	}
	return items, nil
}
