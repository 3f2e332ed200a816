// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/meditrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ContactSubmissions is the journal collection guarded by a validator.
const ContactSubmissions = "contact_submissions"

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll, logger); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				logger.Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
			return
		}
		logger.Info("validator ensured", zap.String("collection", coll))
	}

	ensure(ContactSubmissions, contactSubmissionsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection creates name unless it exists. A concurrent create by
// another instance counts as existing.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, logger *zap.Logger) (created bool, err error) {
	if exists, listErr := collectionExists(ctx, db, name); listErr == nil && exists {
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		logger.Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	logger.Info("created collection", zap.String("collection", name))
	return true, nil
}

// setValidator attaches validator with moderate validation, so documents
// written before the schema existed can still be updated.
func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	return db.RunCommand(ctx, cmd).Decode(&out)
}

/* ------------------------- error helpers ------------------------- */

// commandErr reports whether err is a server command error with one of
// codes, or whose message contains one of phrases.
func commandErr(err error, codes []int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		for _, c := range codes {
			if ce.Code == c {
				return true
			}
		}
	}
	s := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErr(err, []int32{48}, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErr(err, []int32{59}, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErr(err, []int32{115}, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func enumOf(values ...string) bson.A {
	a := bson.A{}
	for _, v := range values {
		a = append(a, v)
	}
	return a
}

func contactSubmissionsSchema() bson.M {
	nonBlank := bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"reference", "name", "email", "phone", "message", "delivery", "email_status", "created_at"},
			"properties": bson.M{
				"reference":    nonBlank,
				"name":         nonBlank,
				"email":        bson.M{"bsonType": "string", "pattern": "^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$"},
				"country_code": bson.M{"bsonType": "string", "pattern": "^\\+[0-9]{1,4}$"},
				"phone":        bson.M{"bsonType": "string", "pattern": "^\\+[0-9]{7,19}$"},
				"message":      nonBlank,
				"delivery":     bson.M{"enum": enumOf(models.DeliveryPending, models.DeliveryDelivered, models.DeliveryFailed)},
				"email_status": bson.M{"enum": enumOf(models.EmailPending, models.EmailSent, models.EmailSkipped, models.EmailFailed)},
				"created_at":   bson.M{"bsonType": "date"},
				"updated_at":   bson.M{"bsonType": "date"},
			},
		},
	}
}
