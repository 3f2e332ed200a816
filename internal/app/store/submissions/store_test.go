package submissions_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/meditrip/internal/app/store/submissions"
	"github.com/dalemusser/meditrip/internal/domain/models"
	"github.com/dalemusser/meditrip/internal/testutil"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newSubmission() models.ContactSubmission {
	return models.ContactSubmission{
		Reference:   uuid.NewString(),
		Name:        "Sam Lee",
		Email:       "sam@example.com",
		CountryName: "United Kingdom",
		CountryCode: "+44",
		Phone:       "+447700900123",
		Message:     "Hello",
	}
}

func TestInsert_SetsDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sub, err := store.Insert(ctx, newSubmission())
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if sub.ID.IsZero() {
		t.Error("expected ID to be set")
	}
	if sub.Delivery != models.DeliveryPending || sub.EmailStatus != models.EmailPending {
		t.Errorf("expected pending states, got %q/%q", sub.Delivery, sub.EmailStatus)
	}
	if sub.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestMarkDelivered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ok, _ := store.Insert(ctx, newSubmission())
	failed, _ := store.Insert(ctx, newSubmission())

	if err := store.MarkDelivered(ctx, ok.ID, "item-1", nil); err != nil {
		t.Fatalf("MarkDelivered failed: %v", err)
	}
	if err := store.MarkDelivered(ctx, failed.ID, "", errors.New("cms: 500")); err != nil {
		t.Fatalf("MarkDelivered failed: %v", err)
	}

	got, err := store.GetByReference(ctx, ok.Reference)
	if err != nil {
		t.Fatalf("GetByReference failed: %v", err)
	}
	if got.Delivery != models.DeliveryDelivered || got.CMSItemID != "item-1" {
		t.Errorf("got %q/%q", got.Delivery, got.CMSItemID)
	}

	got, _ = store.GetByReference(ctx, failed.Reference)
	if got.Delivery != models.DeliveryFailed || got.Error != "cms: 500" {
		t.Errorf("got %q/%q", got.Delivery, got.Error)
	}

	n, err := store.CountByDelivery(ctx, models.DeliveryFailed)
	if err != nil || n != 1 {
		t.Errorf("CountByDelivery = %d, %v", n, err)
	}
}

func TestMarkEmailed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sub, _ := store.Insert(ctx, newSubmission())
	if err := store.MarkEmailed(ctx, sub.ID, models.EmailSent); err != nil {
		t.Fatalf("MarkEmailed failed: %v", err)
	}
	got, _ := store.GetByReference(ctx, sub.Reference)
	if got.EmailStatus != models.EmailSent || got.EmailedAt == nil {
		t.Errorf("got status %q, emailed_at %v", got.EmailStatus, got.EmailedAt)
	}
}

func TestMark_UnknownID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.MarkEmailed(ctx, primitive.NewObjectID(), models.EmailSkipped)
	if !errors.Is(err, submissions.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	var last models.ContactSubmission
	for i := 0; i < 3; i++ {
		last, _ = store.Insert(ctx, newSubmission())
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != last.ID {
		t.Errorf("expected newest first")
	}
}

func TestGetByReference_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByReference(ctx, "missing"); !errors.Is(err, submissions.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsert_DuplicateReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	first := newSubmission()
	if _, err := store.Insert(ctx, first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	dup := newSubmission()
	dup.Reference = first.Reference
	if _, err := store.Insert(ctx, dup); !errors.Is(err, submissions.ErrDuplicateReference) {
		t.Errorf("expected ErrDuplicateReference, got %v", err)
	}
}
