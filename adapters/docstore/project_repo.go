package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/khoahotran/portfolio-admin/internal/domain/project"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type projectDocument struct {
	ID           string    `bson:"_id"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description"`
	Technologies []string  `bson:"technologies"`
	LiveURL      string    `bson:"liveUrl"`
	GithubURL    string    `bson:"githubUrl"`
	ImageURL     string    `bson:"imageUrl"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func newProjectDocument(p *project.Project) projectDocument {
	tech := p.Technologies
	if tech == nil {
		tech = []string{}
	}
	return projectDocument{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		Technologies: tech,
		LiveURL:      p.LiveURL,
		GithubURL:    p.GithubURL,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (d projectDocument) toDomain() (*project.Project, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, apperror.NewInternal("stored project id is not a uuid", err)
	}
	p := &project.Project{
		ID:           id,
		Title:        d.Title,
		Description:  d.Description,
		Technologies: d.Technologies,
		LiveURL:      d.LiveURL,
		GithubURL:    d.GithubURL,
		ImageURL:     d.ImageURL,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return p, nil
}

type mongoProjectRepo struct {
	coll *mongo.Collection
}

func NewMongoProjectRepo(db *mongo.Database) project.Repository {
	return &mongoProjectRepo{coll: db.Collection(CollectionProjects)}
}

func (r *mongoProjectRepo) Save(ctx context.Context, p *project.Project) error {
	if _, err := r.coll.InsertOne(ctx, newProjectDocument(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewConflict("project", "id", p.ID.String())
		}
		return apperror.NewInternal("failed to save project", err)
	}
	return nil
}

func (r *mongoProjectRepo) Update(ctx context.Context, p *project.Project) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID.String()}, newProjectDocument(p))
	if err != nil {
		return apperror.NewInternal("failed to update project", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("project", p.ID.String())
	}
	return nil
}

func (r *mongoProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return apperror.NewInternal("failed to delete project", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound("project", id.String())
	}
	return nil
}

func (r *mongoProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var doc projectDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("project", id.String())
		}
		return nil, apperror.NewInternal("failed to query project", err)
	}
	return doc.toDomain()
}

func (r *mongoProjectRepo) List(ctx context.Context) ([]*project.Project, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, apperror.NewInternal("failed to list projects", err)
	}
	var docs []projectDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperror.NewInternal("failed to decode projects", err)
	}

	items := make([]*project.Project, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}
