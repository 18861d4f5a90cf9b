package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/sealer"
)

const (
	sessionCollection = "sessions"
	sessionKeyPrefix  = "auth-storage:"
	defaultSessionTTL = 30 * 24 * time.Hour
)

type sessionDoc struct {
	ID        string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// SessionStorage keeps sealed session snapshots in the sessions collection.
// A TTL index on expires_at lets MongoDB purge abandoned sessions.
type SessionStorage struct {
	col    *mongo.Collection
	sealer *sealer.Sealer
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionStorage(db *mongo.Database, s *sealer.Sealer, ttl time.Duration) *SessionStorage {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStorage{
		col:    db.Collection(sessionCollection),
		sealer: s,
		ttl:    ttl,
		now:    time.Now,
	}
}

// EnsureIndexes creates the expiry index on the sessions collection.
func (r *SessionStorage) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (r *SessionStorage) Load(ctx context.Context, id string) (domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// The TTL monitor runs about once a minute, so expired documents may
	// still be present.
	filter := bson.M{"_id": sessionKeyPrefix + id, "expires_at": bson.M{"$gt": r.now()}}

	var doc sessionDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	sess, err := r.sealer.OpenSession(doc.Payload)
	if err != nil {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (r *SessionStorage) Save(ctx context.Context, id string, sess domain.Session) error {
	sealed, err := r.sealer.SealSession(sess)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.now()
	doc := sessionDoc{
		ID:        sessionKeyPrefix + id,
		Payload:   sealed,
		UpdatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionStorage) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": sessionKeyPrefix + id}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionStorage) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}
