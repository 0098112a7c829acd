// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	adminstore "github.com/ihsb/ihsbsite/internal/app/store/admins"
	admissionstore "github.com/ihsb/ihsbsite/internal/app/store/admissions"
	alumnistore "github.com/ihsb/ihsbsite/internal/app/store/alumni"
	eventstore "github.com/ihsb/ihsbsite/internal/app/store/events"
	notificationstore "github.com/ihsb/ihsbsite/internal/app/store/notifications"
	sportstore "github.com/ihsb/ihsbsite/internal/app/store/sports"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Date fields are stored as YYYY-MM-DD strings.
const datePattern = `^\d{4}-\d{2}-\d{2}$`

// nonBlank matches a string with at least one non-space character.
var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": `.*\S.*`}

// EnsureAll creates the site's collections (if missing) and attaches
// JSON-Schema validators as a second line behind request validation.
// Servers that reject collMod (some DocumentDB versions) are logged and
// skipped. Problems are aggregated so every failing collection is reported.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isUnsupported(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure(adminstore.Collection, adminsSchema())
	ensure(eventstore.Collection, eventsSchema())
	ensure(sportstore.Collection, sportsSchema())
	ensure(admissionstore.Collection, admissionsSchema())
	ensure(alumnistore.YearStatsCollection, yearStatsSchema())
	ensure(notificationstore.Collection, notificationsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		return nil
	}
	// Listing failed or the collection is missing; create and tolerate a race.
	if err := db.CreateCollection(ctx, name); err != nil {
		if hasCode(err, 48, "already exists") {
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

// isUnsupported reports a server that has no collMod or no validators.
func isUnsupported(err error) bool {
	return hasCode(err, 59, "no such command") ||
		hasCode(err, 115, "not implemented") ||
		hasCode(err, 115, "not supported")
}

func hasCode(err error, code int32, text string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), text)
}

func jsonSchema(required []string, props bson.M) bson.M {
	req := make(bson.A, 0, len(required))
	for _, r := range required {
		req = append(req, r)
	}
	return bson.M{"$jsonSchema": bson.M{
		"bsonType":   "object",
		"required":   req,
		"properties": props,
	}}
}

func enum(vals ...string) bson.M {
	a := make(bson.A, 0, len(vals))
	for _, v := range vals {
		a = append(a, v)
	}
	return bson.M{"enum": a}
}

var dateString = bson.M{"bsonType": "string", "pattern": datePattern}

func adminsSchema() bson.M {
	return jsonSchema([]string{"email", "role"}, bson.M{
		"email":  nonBlank,
		"role":   enum(models.RoleAdmin, models.RoleSuperadmin),
		"active": bson.M{"bsonType": "bool"},
	})
}

func eventsSchema() bson.M {
	return jsonSchema([]string{"title", "date", "category"}, bson.M{
		"title": nonBlank,
		"date":  dateString,
		"category": enum(models.EventAcademic, models.EventSports, models.EventCultural,
			models.EventAdmission, models.EventOther),
		"featured": bson.M{"bsonType": "bool"},
	})
}

func sportsSchema() bson.M {
	return jsonSchema([]string{"slug", "title", "sport", "placement", "date"}, bson.M{
		"slug":  bson.M{"bsonType": "string", "pattern": `^[a-z0-9]+(?:-[a-z0-9]+)*$`},
		"title": nonBlank,
		"sport": nonBlank,
		"date":  dateString,
	})
}

func admissionsSchema() bson.M {
	return jsonSchema([]string{"studentName", "guardianEmail", "status"}, bson.M{
		"studentName":   nonBlank,
		"guardianEmail": nonBlank,
		"dateOfBirth":   dateString,
		"status":        enum(models.AdmissionPending, models.AdmissionApproved, models.AdmissionRejected),
	})
}

func yearStatsSchema() bson.M {
	return jsonSchema([]string{"year", "count"}, bson.M{
		"year":           bson.M{"bsonType": "string", "pattern": `^\d{4}$`},
		"count":          nonBlank,
		"autoCalculated": bson.M{"bsonType": "bool"},
	})
}

func notificationsSchema() bson.M {
	return jsonSchema([]string{"type", "action", "itemHref"}, bson.M{
		"type":     nonBlank,
		"action":   nonBlank,
		"itemHref": bson.M{"bsonType": "string"},
	})
}
