package indexes_test

import (
	"testing"

	"github.com/ihsb/ihsbsite/internal/app/system/indexes"
	"github.com/ihsb/ihsbsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll: %v", err)
	}
}

func TestEnsureAll_SlugIsUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	coll := db.Collection("sports_achievements")
	if _, err := coll.InsertOne(ctx, bson.M{"slug": "football-champions-2024"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := coll.InsertOne(ctx, bson.M{"slug": "football-champions-2024"})
	if !mongo.IsDuplicateKeyError(err) {
		t.Errorf("duplicate slug insert: err = %v, want duplicate key error", err)
	}
}

func TestEnsureAll_FailsOnExistingDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coll := db.Collection("sports_achievements")
	for i := 0; i < 2; i++ {
		if _, err := coll.InsertOne(ctx, bson.M{"slug": "dup"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := indexes.EnsureAll(ctx, db); err == nil {
		t.Error("expected EnsureAll to report the duplicate slugs")
	}
}
