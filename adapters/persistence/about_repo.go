package persistence

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/internal/domain/about"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type postgresAboutRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresAboutRepo(db *pgxpool.Pool, logger logger.Logger) about.Repository {
	return &postgresAboutRepo{db: db, logger: logger}
}

func (r *postgresAboutRepo) GetOrCreate(ctx context.Context, defaults *about.About) (*about.About, error) {
	educationBytes, err := json.Marshal(nonNilEducation(defaults.Education))
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal education", err)
	}

	// The fixed primary key makes concurrent first reads converge on one row.
	_, err = r.db.Exec(ctx, `
		INSERT INTO about (id, bio, skills, education, resume_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`,
		about.SingletonID,
		defaults.Bio,
		nonNilStrings(defaults.Skills),
		educationBytes,
		defaults.ResumeLink,
		defaults.CreatedAt,
		defaults.UpdatedAt,
	)
	if err != nil {
		return nil, apperror.NewInternal("failed to ensure about document", err)
	}

	a := &about.About{}
	var educationRaw []byte
	err = r.db.QueryRow(ctx, `
		SELECT id, bio, skills, education, resume_link, created_at, updated_at
		FROM about
		WHERE id = $1
	`, about.SingletonID).Scan(
		&a.ID,
		&a.Bio,
		&a.Skills,
		&educationRaw,
		&a.ResumeLink,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, apperror.NewInternal("failed to query about document", err)
	}

	if err := json.Unmarshal(educationRaw, &a.Education); err != nil {
		r.logger.Warn("Failed to unmarshal education", zap.Error(err))
	}
	a.Skills = nonNilStrings(a.Skills)
	a.Education = nonNilEducation(a.Education)
	return a, nil
}

func (r *postgresAboutRepo) Replace(ctx context.Context, a *about.About) error {
	educationBytes, err := json.Marshal(nonNilEducation(a.Education))
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}

	query := `
		INSERT INTO about (id, bio, skills, education, resume_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			education = EXCLUDED.education,
			resume_link = EXCLUDED.resume_link,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		about.SingletonID,
		a.Bio,
		nonNilStrings(a.Skills),
		educationBytes,
		a.ResumeLink,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to replace about document", err)
	}
	return nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilEducation(in []about.Education) []about.Education {
	if in == nil {
		return []about.Education{}
	}
	return in
}
