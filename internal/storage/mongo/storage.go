package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/storage"
)

// Storage is a MongoDB-backed implementation of the storage interface
type Storage struct {
	client   *mongo.Client
	players  *mongo.Collection
	admins   *mongo.Collection
	settings *mongo.Collection
}

// New connects to MongoDB, verifies the connection and ensures indexes
func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := NewWithClient(client, cfg.Database)
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// NewWithClient creates a storage on an existing client (for testing)
func NewWithClient(client *mongo.Client, database string) *Storage {
	db := client.Database(database)
	return &Storage{
		client:   client,
		players:  db.Collection(playersCollection),
		admins:   db.Collection(adminsCollection),
		settings: db.Collection(settingsCollection),
	}
}

// EnsureIndexes creates the unique index on player names
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.players.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create players name index: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB
func (s *Storage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.findPlayers(ctx, bson.M{}, nil)
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	var doc playerDocument
	err := s.players.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Storage) UpsertPlayerScore(ctx context.Context, name string, score int, now time.Time) (*model.Player, bool, error) {
	if err := model.ValidatePlayer(&model.Player{Name: name, Score: score}); err != nil {
		return nil, false, err
	}

	filter := bson.M{"name": name}
	update := bson.M{
		"$set":         bson.M{"score": score, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	// The before-image tells created from updated; no document means this
	// call inserted it.
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	// A duplicate key error means a concurrent writer created the player
	// first; the retry then matches it and updates.
	var (
		before playerDocument
		err    error
	)
	for attempt := 0; attempt < 2; attempt++ {
		err = s.players.FindOneAndUpdate(ctx, filter, update, opts).Decode(&before)
		if !mongo.IsDuplicateKeyError(err) {
			break
		}
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return &model.Player{Name: name, Score: score, CreatedAt: now, UpdatedAt: now}, true, nil
	case err != nil:
		return nil, false, err
	}

	player := before.toModel()
	player.Score = score
	player.UpdatedAt = now
	return player, false, nil
}

func (s *Storage) SearchPlayerNames(ctx context.Context, query string) ([]string, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}
	players, err := s.findPlayers(ctx, filter, bson.M{"name": 1})
	if err != nil {
		return nil, err
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names, nil
}

func (s *Storage) ResetPlayerScores(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.players.UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{"score": 0, "updatedAt": now}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *Storage) DeleteAllPlayers(ctx context.Context) (int64, error) {
	res, err := s.players.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Storage) findPlayers(ctx context.Context, filter any, projection any) ([]*model.Player, error) {
	opts := options.Find()
	if projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := s.players.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	players := []*model.Player{}
	for cursor.Next(ctx) {
		var doc playerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		players = append(players, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

// Admin operations

func (s *Storage) GetAdmin(ctx context.Context) (*model.Admin, error) {
	var doc adminDocument
	err := s.admins.FindOne(ctx, bson.M{"_id": adminDocumentID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrAdminNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Storage) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	if err := model.ValidateAdmin(admin); err != nil {
		return err
	}

	_, err := s.admins.InsertOne(ctx, adminDocumentFromModel(admin))
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrAdminExists
	}
	return err
}

func (s *Storage) UpdateAdminPassword(ctx context.Context, passwordHash string, now time.Time) error {
	if passwordHash == "" {
		return fmt.Errorf("%w: empty password hash", model.ErrInvalidAdmin)
	}

	res, err := s.admins.UpdateOne(ctx,
		bson.M{"_id": adminDocumentID},
		bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrAdminNotFound
	}
	return nil
}

// Setting operations

func (s *Storage) GetSetting(ctx context.Context) (*model.Setting, error) {
	var doc settingDocument
	err := s.settings.FindOne(ctx, bson.M{"_id": settingDocumentID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrSettingNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Storage) SaveSetting(ctx context.Context, setting *model.Setting, now time.Time) error {
	if err := model.ValidateSetting(setting); err != nil {
		return err
	}

	_, err := s.settings.UpdateOne(ctx,
		bson.M{"_id": settingDocumentID},
		bson.M{
			"$set": bson.M{
				"horsePoints": setting.HorsePoints,
				"returnPoint": setting.ReturnPoint,
				"updatedAt":   now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
