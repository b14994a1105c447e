package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type postgresProjectRepo struct {
	db *pgxpool.Pool
}

func NewPostgresProjectRepo(db *pgxpool.Pool) project.Repository {
	return &postgresProjectRepo{db: db}
}

var projectColumns = []string{
	"id", "title", "description", "technologies", "live_url", "github_url", "image_url", "created_at", "updated_at",
}

func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Technologies,
		&p.LiveURL,
		&p.GithubURL,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("project", "")
		}
		return nil, apperror.NewInternal("failed to scan project row", err)
	}
	p.Technologies = nonNilStrings(p.Technologies)
	return p, nil
}

func scanProjects(rows pgx.Rows) ([]*project.Project, error) {
	defer rows.Close()
	projects := make([]*project.Project, 0)

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return projects, nil
}

func (r *postgresProjectRepo) Save(ctx context.Context, p *project.Project) error {
	query, args, err := psql.Insert("projects").
		Columns(projectColumns...).
		Values(p.ID, p.Title, p.Description, nonNilStrings(p.Technologies),
			p.LiveURL, p.GithubURL, p.ImageURL, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build project insert", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("project", "id", p.ID.String())
		}
		return apperror.NewInternal("failed to save project", err)
	}
	return nil
}

func (r *postgresProjectRepo) Update(ctx context.Context, p *project.Project) error {
	query, args, err := psql.Update("projects").
		SetMap(map[string]any{
			"title":        p.Title,
			"description":  p.Description,
			"technologies": nonNilStrings(p.Technologies),
			"live_url":     p.LiveURL,
			"github_url":   p.GithubURL,
			"image_url":    p.ImageURL,
			"updated_at":   p.UpdatedAt,
		}).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build project update", err)
	}
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to update project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", p.ID.String())
	}
	return nil
}

func (r *postgresProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", id.String())
	}
	return nil
}

func (r *postgresProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query, args, err := psql.Select(projectColumns...).From("projects").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build project query", err)
	}
	p, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("project", id.String())
	}
	return p, err
}

func (r *postgresProjectRepo) List(ctx context.Context) ([]*project.Project, error) {
	query, args, err := psql.Select(projectColumns...).From("projects").OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build project list query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list projects", err)
	}
	return scanProjects(rows)
}
