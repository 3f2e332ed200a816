// internal/app/store/submissions/store.go
package submissions

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/meditrip/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding the journal.
const CollectionName = "contact_submissions"

// DefaultRecentLimit caps Recent when no limit is given.
const DefaultRecentLimit = 50

var (
	// ErrNotFound is returned when no submission matches.
	ErrNotFound = errors.New("submission not found")

	// ErrDuplicateReference is returned by Insert when the reference is taken.
	ErrDuplicateReference = errors.New("submission reference already exists")
)

// Store journals contact submissions.
type Store struct {
	c *mongo.Collection
}

// New creates a new Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates the reference lookup and recency indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetName("idx_submissions_reference").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_submissions_created"),
		},
		{
			Keys:    bson.D{{Key: "delivery", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_submissions_delivery_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Insert stores a new submission in the pending state and returns it with
// its ID and timestamps set.
func (s *Store) Insert(ctx context.Context, sub models.ContactSubmission) (models.ContactSubmission, error) {
	now := time.Now().UTC()
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if sub.Delivery == "" {
		sub.Delivery = models.DeliveryPending
	}
	if sub.EmailStatus == "" {
		sub.EmailStatus = models.EmailPending
	}
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ContactSubmission{}, ErrDuplicateReference
		}
		return models.ContactSubmission{}, err
	}
	return sub, nil
}

// MarkDelivered records the CMS outcome. A non-nil deliveryErr marks the
// submission failed.
func (s *Store) MarkDelivered(ctx context.Context, id primitive.ObjectID, cmsItemID string, deliveryErr error) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if deliveryErr != nil {
		set["delivery"] = models.DeliveryFailed
		set["error"] = deliveryErr.Error()
	} else {
		set["delivery"] = models.DeliveryDelivered
		set["cms_item_id"] = cmsItemID
	}
	return s.update(ctx, id, set)
}

// MarkEmailed records the notification outcome.
func (s *Store) MarkEmailed(ctx context.Context, id primitive.ObjectID, status string) error {
	now := time.Now().UTC()
	set := bson.M{"email_status": status, "updated_at": now}
	if status == models.EmailSent {
		set["emailed_at"] = now
	}
	return s.update(ctx, id, set)
}

func (s *Store) update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByReference returns the submission with the given visitor reference.
func (s *Store) GetByReference(ctx context.Context, ref string) (models.ContactSubmission, error) {
	var sub models.ContactSubmission
	err := s.c.FindOne(ctx, bson.M{"reference": ref}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sub, ErrNotFound
	}
	return sub, err
}

// Recent returns the newest submissions first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.ContactSubmission, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ContactSubmission
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByDelivery returns how many submissions are in the given state.
func (s *Store) CountByDelivery(ctx context.Context, state string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"delivery": state})
}
