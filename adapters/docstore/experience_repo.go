package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/khoahotran/portfolio-admin/internal/domain/experience"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type experienceDocument struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Company     string     `bson:"company"`
	Location    string     `bson:"location"`
	StartDate   time.Time  `bson:"startDate"`
	EndDate     *time.Time `bson:"endDate"`
	IsCurrent   bool       `bson:"isCurrent"`
	Description string     `bson:"description"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

func newExperienceDocument(e *experience.Experience) experienceDocument {
	return experienceDocument{
		ID:          e.ID.String(),
		Title:       e.Title,
		Company:     e.Company,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		IsCurrent:   e.IsCurrent,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (d experienceDocument) toDomain() (*experience.Experience, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, apperror.NewInternal("stored experience id is not a uuid", err)
	}
	return &experience.Experience{
		ID:          id,
		Title:       d.Title,
		Company:     d.Company,
		Location:    d.Location,
		StartDate:   d.StartDate.UTC(),
		EndDate:     utcPtr(d.EndDate),
		IsCurrent:   d.IsCurrent,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}, nil
}

type mongoExperienceRepo struct {
	coll *mongo.Collection
}

func NewMongoExperienceRepo(db *mongo.Database) experience.Repository {
	return &mongoExperienceRepo{coll: db.Collection(CollectionExperiences)}
}

func (r *mongoExperienceRepo) Save(ctx context.Context, e *experience.Experience) error {
	if _, err := r.coll.InsertOne(ctx, newExperienceDocument(e)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewConflict("experience", "id", e.ID.String())
		}
		return apperror.NewInternal("failed to save experience", err)
	}
	return nil
}

func (r *mongoExperienceRepo) Update(ctx context.Context, e *experience.Experience) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": e.ID.String()}, newExperienceDocument(e))
	if err != nil {
		return apperror.NewInternal("failed to update experience", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("experience", e.ID.String())
	}
	return nil
}

func (r *mongoExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return apperror.NewInternal("failed to delete experience", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound("experience", id.String())
	}
	return nil
}

func (r *mongoExperienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*experience.Experience, error) {
	var doc experienceDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("experience", id.String())
		}
		return nil, apperror.NewInternal("failed to query experience", err)
	}
	return doc.toDomain()
}

func (r *mongoExperienceRepo) List(ctx context.Context) ([]*experience.Experience, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperror.NewInternal("failed to list experiences", err)
	}
	var docs []experienceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperror.NewInternal("failed to decode experiences", err)
	}

	items := make([]*experience.Experience, 0, len(docs))
	for _, d := range docs {
		e, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
