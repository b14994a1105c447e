package docstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/khoahotran/portfolio-admin/internal/domain/about"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type educationDocument struct {
	Degree      string `bson:"degree"`
	Institution string `bson:"institution"`
	Year        string `bson:"year"`
}

type aboutDocument struct {
	ID         string              `bson:"_id"`
	Bio        string              `bson:"bio"`
	Skills     []string            `bson:"skills"`
	Education  []educationDocument `bson:"education"`
	ResumeLink string              `bson:"resumeLink"`
	CreatedAt  time.Time           `bson:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt"`
}

func aboutFields(a *about.About) bson.M {
	education := make([]educationDocument, 0, len(a.Education))
	for _, e := range a.Education {
		education = append(education, educationDocument{Degree: e.Degree, Institution: e.Institution, Year: e.Year})
	}
	skills := a.Skills
	if skills == nil {
		skills = []string{}
	}
	return bson.M{
		"bio":        a.Bio,
		"skills":     skills,
		"education":  education,
		"resumeLink": a.ResumeLink,
		"updatedAt":  a.UpdatedAt,
	}
}

func (d aboutDocument) toDomain() *about.About {
	a := &about.About{
		ID:         about.SingletonID,
		Bio:        d.Bio,
		Skills:     d.Skills,
		Education:  make([]about.Education, 0, len(d.Education)),
		ResumeLink: d.ResumeLink,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	if id, err := uuid.Parse(d.ID); err == nil {
		a.ID = id
	}
	if a.Skills == nil {
		a.Skills = []string{}
	}
	for _, e := range d.Education {
		a.Education = append(a.Education, about.Education{Degree: e.Degree, Institution: e.Institution, Year: e.Year})
	}
	return a
}

type mongoAboutRepo struct {
	coll *mongo.Collection
}

func NewMongoAboutRepo(db *mongo.Database) about.Repository {
	return &mongoAboutRepo{coll: db.Collection(CollectionAbout)}
}

func (r *mongoAboutRepo) GetOrCreate(ctx context.Context, defaults *about.About) (*about.About, error) {
	id := about.SingletonID.String()
	insert := aboutFields(defaults)
	insert["createdAt"] = defaults.CreatedAt

	// $setOnInsert on the fixed _id leaves an existing document untouched.
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$setOnInsert": insert},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, apperror.NewInternal("failed to ensure about document", err)
	}

	var doc aboutDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, apperror.NewInternal("failed to query about document", err)
	}
	return doc.toDomain(), nil
}

func (r *mongoAboutRepo) Replace(ctx context.Context, a *about.About) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": about.SingletonID.String()},
		bson.M{
			"$set":         aboutFields(a),
			"$setOnInsert": bson.M{"createdAt": a.CreatedAt},
		},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return apperror.NewInternal("failed to replace about document", err)
	}
	return nil
}
