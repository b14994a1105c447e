package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-admin/internal/domain/experience"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type postgresExperienceRepo struct {
	db *pgxpool.Pool
}

func NewPostgresExperienceRepo(db *pgxpool.Pool) experience.Repository {
	return &postgresExperienceRepo{db: db}
}

var experienceColumns = []string{
	"id", "title", "company", "location", "start_date", "end_date",
	"is_current", "description", "created_at", "updated_at",
}

func scanExperience(row pgx.Row) (*experience.Experience, error) {
	e := &experience.Experience{}
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Company,
		&e.Location,
		&e.StartDate,
		&e.EndDate,
		&e.IsCurrent,
		&e.Description,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("experience", "")
		}
		return nil, apperror.NewInternal("failed to scan experience row", err)
	}
	return e, nil
}

func (r *postgresExperienceRepo) Save(ctx context.Context, e *experience.Experience) error {
	query, args, err := psql.Insert("experiences").
		Columns(experienceColumns...).
		Values(e.ID, e.Title, e.Company, e.Location, e.StartDate, e.EndDate,
			e.IsCurrent, e.Description, e.CreatedAt, e.UpdatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build experience insert", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("experience", "id", e.ID.String())
		}
		return apperror.NewInternal("failed to save experience", err)
	}
	return nil
}

func (r *postgresExperienceRepo) Update(ctx context.Context, e *experience.Experience) error {
	query, args, err := psql.Update("experiences").
		SetMap(map[string]any{
			"title":       e.Title,
			"company":     e.Company,
			"location":    e.Location,
			"start_date":  e.StartDate,
			"end_date":    e.EndDate,
			"is_current":  e.IsCurrent,
			"description": e.Description,
			"updated_at":  e.UpdatedAt,
		}).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build experience update", err)
	}
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to update experience", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("experience", e.ID.String())
	}
	return nil
}

func (r *postgresExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete experience", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("experience", id.String())
	}
	return nil
}

func (r *postgresExperienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*experience.Experience, error) {
	query, args, err := psql.Select(experienceColumns...).
		From("experiences").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build experience query", err)
	}
	e, err := scanExperience(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("experience", id.String())
	}
	return e, err
}

func (r *postgresExperienceRepo) List(ctx context.Context) ([]*experience.Experience, error) {
	query, args, err := psql.Select(experienceColumns...).
		From("experiences").
		OrderBy("start_date DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build experience list query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list experiences", err)
	}
	defer rows.Close()

	items := make([]*experience.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating experience rows", err)
	}
	return items, nil
}
