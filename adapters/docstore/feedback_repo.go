package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/khoahotran/portfolio-admin/internal/domain/feedback"
	"github.com/khoahotran/portfolio-admin/pkg/apperror"
)

type feedbackDocument struct {
	ID        string     `bson:"_id"`
	Name      string     `bson:"name"`
	Email     string     `bson:"email"`
	Message   string     `bson:"message"`
	Status    string     `bson:"status"`
	Reply     string     `bson:"reply"`
	RepliedAt *time.Time `bson:"repliedAt"`
	CreatedAt time.Time  `bson:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt"`
}

func newFeedbackDocument(f *feedback.Feedback) feedbackDocument {
	return feedbackDocument{
		ID:        f.ID.String(),
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		Status:    string(f.Status),
		Reply:     f.Reply,
		RepliedAt: f.RepliedAt,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (d feedbackDocument) toDomain() (*feedback.Feedback, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, apperror.NewInternal("stored feedback id is not a uuid", err)
	}
	return &feedback.Feedback{
		ID:        id,
		Name:      d.Name,
		Email:     d.Email,
		Message:   d.Message,
		Status:    feedback.Status(d.Status),
		Reply:     d.Reply,
		RepliedAt: utcPtr(d.RepliedAt),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

type mongoFeedbackRepo struct {
	coll *mongo.Collection
}

func NewMongoFeedbackRepo(db *mongo.Database) feedback.Repository {
	return &mongoFeedbackRepo{coll: db.Collection(CollectionFeedback)}
}

func (r *mongoFeedbackRepo) Save(ctx context.Context, f *feedback.Feedback) error {
	if _, err := r.coll.InsertOne(ctx, newFeedbackDocument(f)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewConflict("feedback", "id", f.ID.String())
		}
		return apperror.NewInternal("failed to save feedback", err)
	}
	return nil
}

func (r *mongoFeedbackRepo) Update(ctx context.Context, f *feedback.Feedback) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": f.ID.String()}, newFeedbackDocument(f))
	if err != nil {
		return apperror.NewInternal("failed to update feedback", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("feedback", f.ID.String())
	}
	return nil
}

func (r *mongoFeedbackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return apperror.NewInternal("failed to delete feedback", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound("feedback", id.String())
	}
	return nil
}

func (r *mongoFeedbackRepo) FindByID(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	var doc feedbackDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("feedback", id.String())
		}
		return nil, apperror.NewInternal("failed to query feedback", err)
	}
	return doc.toDomain()
}

func (r *mongoFeedbackRepo) List(ctx context.Context) ([]*feedback.Feedback, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, apperror.NewInternal("failed to list feedback", err)
	}
	var docs []feedbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperror.NewInternal("failed to decode feedback", err)
	}

	items := make([]*feedback.Feedback, 0, len(docs))
	for _, d := range docs {
		f, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, nil
}
