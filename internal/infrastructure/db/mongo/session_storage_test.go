package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/sealer"
)

func newTestSealer(t *testing.T) *sealer.Sealer {
	t.Helper()
	s, err := sealer.New("mongo-test")
	if err != nil {
		t.Fatalf("sealer.New returned error: %v", err)
	}
	return s
}

func TestSessionStorage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	seal := newTestSealer(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newStorage := func(mt *mtest.T) *SessionStorage {
		s := NewSessionStorage(mt.DB, seal, time.Hour)
		s.now = func() time.Time { return now }
		return s
	}
	ns := func(mt *mtest.T) string { return mt.DB.Name() + "." + sessionCollection }

	mt.Run("load decodes the sealed payload", func(mt *mtest.T) {
		payload, err := seal.SealSession(domain.Authenticated(&domain.User{ID: 3, Name: "Ketut"}, "tok-3"))
		if err != nil {
			mt.Fatalf("SealSession returned error: %v", err)
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: sessionKeyPrefix + "sid-1"},
			{Key: "payload", Value: payload},
			{Key: "updated_at", Value: now},
			{Key: "expires_at", Value: now.Add(time.Hour)},
		}))

		sess, err := newStorage(mt).Load(context.Background(), "sid-1")
		if err != nil {
			mt.Fatalf("Load returned error: %v", err)
		}
		if sess.Token != "tok-3" || !sess.IsAuthenticated || sess.User.Name != "Ketut" {
			mt.Fatalf("unexpected session: %+v", sess)
		}
	})

	mt.Run("load without a live document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		if _, err := newStorage(mt).Load(context.Background(), "gone"); !errors.Is(err, domain.ErrSessionNotFound) {
			mt.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	mt.Run("load with an unreadable payload", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: sessionKeyPrefix + "sid-2"},
			{Key: "payload", Value: []byte("not sealed")},
		}))

		if _, err := newStorage(mt).Load(context.Background(), "sid-2"); !errors.Is(err, domain.ErrSessionNotFound) {
			mt.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	mt.Run("save upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		if err := newStorage(mt).Save(context.Background(), "sid-3", domain.Session{}); err != nil {
			mt.Fatalf("Save returned error: %v", err)
		}
	})

	mt.Run("save reports server errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))

		if err := newStorage(mt).Save(context.Background(), "sid-4", domain.Session{}); err == nil {
			mt.Fatalf("expected Save to fail")
		}
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := newStorage(mt).Delete(context.Background(), "sid-5"); err != nil {
			mt.Fatalf("Delete returned error: %v", err)
		}
	})
}
