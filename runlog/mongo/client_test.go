package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/axiom-lang/axiom/runlog"
)

func TestClientAppendAssignsID(t *testing.T) {
	t.Parallel()

	oid := mustOID(t, "000000000000000000000001")
	coll := &fakeCollection{insertedID: oid}
	c := &client{coll: coll}

	e := &runlog.Event{
		RunID:     "run-1",
		Seq:       0,
		Kind:      "PRINT",
		Line:      `PRINT|hello`,
		Timestamp: time.Unix(1, 0).UTC(),
	}
	err := c.Append(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), e.ID)
}

func TestClientAppendRejectsMissingRunID(t *testing.T) {
	t.Parallel()

	c := &client{coll: &fakeCollection{}}
	err := c.Append(context.Background(), &runlog.Event{Kind: "PRINT", Line: "x"})
	assert.Error(t, err)
}

func TestClientListNextCursor(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name       string
		eventCount int
		limit      int
		wantNext   string
	}
	cases := []testCase{
		{name: "fewer_than_limit", eventCount: 2, limit: 3, wantNext: ""},
		{name: "exactly_limit_no_more", eventCount: 3, limit: 3, wantNext: ""},
		{name: "more_than_limit_has_next", eventCount: 4, limit: 3, wantNext: "000000000000000000000003"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			runID := "run-1"
			coll := &fakeCollection{findDocs: fakeEventDocuments(runID, tc.eventCount)}
			c := &client{coll: coll}

			page, err := c.List(context.Background(), runID, "", tc.limit)
			require.NoError(t, err)
			assert.Len(t, page.Events, min(tc.eventCount, tc.limit))
			assert.Equal(t, tc.wantNext, page.NextCursor)

			if tc.wantNext == "" {
				return
			}

			next, err := c.List(context.Background(), runID, page.NextCursor, tc.limit)
			require.NoError(t, err)
			assert.Len(t, next.Events, tc.eventCount-tc.limit)
			assert.Empty(t, next.NextCursor)
		})
	}
}

func TestClientListRejectsMissingRunID(t *testing.T) {
	t.Parallel()

	c := &client{coll: &fakeCollection{}}
	_, err := c.List(context.Background(), "", "", 10)
	assert.Error(t, err)
}

func TestClientListRejectsNonPositiveLimit(t *testing.T) {
	t.Parallel()

	c := &client{coll: &fakeCollection{}}
	_, err := c.List(context.Background(), "run-1", "", 0)
	assert.Error(t, err)
}

func TestEnsureIndexesCreatesRunIDIndex(t *testing.T) {
	t.Parallel()

	coll := &fakeCollection{}
	err := ensureIndexes(context.Background(), coll)
	require.NoError(t, err)
	assert.True(t, coll.indexCreated)
}

func fakeEventDocuments(runID string, n int) []eventDocument {
	docs := make([]eventDocument, 0, n)
	for i := 1; i <= n; i++ {
		oid := mustOIDFromCounter(i)
		docs = append(docs, eventDocument{
			ID:        oid,
			RunID:     runID,
			Seq:       i - 1,
			Kind:      "RANDOM",
			Line:      "RANDOM|1",
			Timestamp: time.Unix(int64(i), 0).UTC(),
		})
	}
	return docs
}

func mustOID(t *testing.T, hex string) bson.ObjectID {
	t.Helper()
	oid, err := bson.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return oid
}

// mustOIDFromCounter builds a deterministic ObjectID whose last byte is i,
// mirroring the "000000000000000000000003"-style hex cursors asserted above.
func mustOIDFromCounter(i int) bson.ObjectID {
	var raw [12]byte
	raw[11] = byte(i)
	return bson.ObjectID(raw)
}

// fakeCollection, fakeCursor, and fakeIndexView stand in for the real driver
// types so Append/List/ensureIndexes can be exercised without a live MongoDB
// instance — the entire reason client.go narrows *mongodriver.Collection
// down to the collection/indexView/cursor interfaces in the first place.
type fakeCollection struct {
	insertedID   bson.ObjectID
	findDocs     []eventDocument
	indexCreated bool
}

func (c *fakeCollection) InsertOne(context.Context, any, ...options.Lister[options.InsertOneOptions]) (*mongodriver.InsertOneResult, error) {
	return &mongodriver.InsertOneResult{InsertedID: c.insertedID}, nil
}

func (c *fakeCollection) Find(_ context.Context, filter any, opts ...options.Lister[options.FindOptions]) (cursor, error) {
	f, ok := filter.(bson.M)
	if !ok {
		return &fakeCursor{}, nil
	}

	runID, _ := f["run_id"].(string)
	var after bson.ObjectID
	if idFilter, ok := f["_id"].(bson.M); ok {
		if gt, ok := idFilter["$gt"].(bson.ObjectID); ok {
			after = gt
		}
	}

	filtered := make([]eventDocument, 0, len(c.findDocs))
	for _, doc := range c.findDocs {
		if doc.RunID != runID {
			continue
		}
		if after != (bson.ObjectID{}) && doc.ID.Hex() <= after.Hex() {
			continue
		}
		filtered = append(filtered, doc)
	}

	var limit int64
	for _, lister := range opts {
		resolved, err := lister.List()
		if err != nil {
			return nil, err
		}
		if resolved != nil && resolved.Limit != nil {
			limit = *resolved.Limit
		}
	}
	if limit > 0 && int64(len(filtered)) > limit {
		filtered = filtered[:limit]
	}

	return &fakeCursor{docs: filtered}, nil
}

func (c *fakeCollection) Indexes() indexView {
	return &fakeIndexView{coll: c}
}

type fakeIndexView struct {
	coll *fakeCollection
}

func (v *fakeIndexView) CreateOne(context.Context, mongodriver.IndexModel, ...options.Lister[options.CreateIndexesOptions]) (string, error) {
	v.coll.indexCreated = true
	return "", nil
}

type fakeCursor struct {
	docs []eventDocument
	pos  int
}

func (c *fakeCursor) Next(context.Context) bool {
	if c.pos >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *fakeCursor) Decode(val any) error {
	if c.pos == 0 || c.pos > len(c.docs) {
		return nil
	}
	p, ok := val.(*eventDocument)
	if !ok {
		return nil
	}
	*p = c.docs[c.pos-1]
	return nil
}

func (c *fakeCursor) Err() error                { return nil }
func (c *fakeCursor) Close(context.Context) error { return nil }
