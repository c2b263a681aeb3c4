package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/storage"
)

// maxWatchRetries bounds optimistic transaction retries on the admin key
const maxWatchRetries = 5

// Bulk player scripts run atomically against the name index, so an upsert
// is never split between reading the index and touching the hashes.
// KEYS[1] is the index, ARGV[1] the player key prefix.
var (
	resetScoresScript = redis.NewScript(`
local names = redis.call('SMEMBERS', KEYS[1])
for _, name in ipairs(names) do
	redis.call('HSET', ARGV[1] .. name, ARGV[2], '0', ARGV[3], ARGV[4])
end
return #names
`)

	deletePlayersScript = redis.NewScript(`
local names = redis.call('SMEMBERS', KEYS[1])
for _, name in ipairs(names) do
	redis.call('DEL', ARGV[1] .. name)
end
redis.call('DEL', KEYS[1])
return #names
`)
)

// Storage is a Redis-backed implementation of the storage interface.
// Players are hashes indexed by a SET of names; the admin is a JSON string
// and the setting a hash, both under fixed keys.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	names, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	return s.loadPlayers(ctx, names)
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	fields, err := s.client.HGetAll(ctx, playerKey(name)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrPlayerNotFound
	}
	return decodePlayer(name, fields)
}

func (s *Storage) UpsertPlayerScore(ctx context.Context, name string, score int, now time.Time) (*model.Player, bool, error) {
	if err := model.ValidatePlayer(&model.Player{Name: name, Score: score}); err != nil {
		return nil, false, err
	}

	ts := formatTime(now)
	key := playerKey(name)

	// MULTI/EXEC: SADD reports 1 for exactly one concurrent creator
	pipe := s.client.TxPipeline()
	added := pipe.SAdd(ctx, playersIndexKey(), name)
	pipe.HSetNX(ctx, key, fieldCreatedAt, ts)
	pipe.HSet(ctx, key, fieldScore, score, fieldUpdatedAt, ts)
	all := pipe.HGetAll(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, false, err
	}

	player, err := decodePlayer(name, all.Val())
	if err != nil {
		return nil, false, err
	}
	return player, added.Val() == 1, nil
}

func (s *Storage) SearchPlayerNames(ctx context.Context, query string) ([]string, error) {
	needle := strings.ToLower(query)
	names := []string{}

	iter := s.client.SScan(ctx, playersIndexKey(), 0, "", 0).Iterator()
	for iter.Next(ctx) {
		name := iter.Val()
		if strings.Contains(strings.ToLower(name), needle) {
			names = append(names, name)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *Storage) ResetPlayerScores(ctx context.Context, now time.Time) (int64, error) {
	return resetScoresScript.Run(ctx, s.client,
		[]string{playersIndexKey()},
		playerKey(""), fieldScore, fieldUpdatedAt, formatTime(now),
	).Int64()
}

func (s *Storage) DeleteAllPlayers(ctx context.Context) (int64, error) {
	return deletePlayersScript.Run(ctx, s.client,
		[]string{playersIndexKey()},
		playerKey(""),
	).Int64()
}

// loadPlayers fetches the hashes of the named players in one round trip
func (s *Storage) loadPlayers(ctx context.Context, names []string) ([]*model.Player, error) {
	players := make([]*model.Player, 0, len(names))
	if len(names) == 0 {
		return players, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(names))
	for i, name := range names {
		cmds[i] = pipe.HGetAll(ctx, playerKey(name))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// Deleted between SMEMBERS and HGETALL
			continue
		}
		player, err := decodePlayer(names[i], fields)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

// Admin operations

func (s *Storage) GetAdmin(ctx context.Context) (*model.Admin, error) {
	data, err := s.client.Get(ctx, adminKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAdminNotFound
		}
		return nil, err
	}

	var admin model.Admin
	if err := json.Unmarshal(data, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *Storage) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	if err := model.ValidateAdmin(admin); err != nil {
		return err
	}

	data, err := json.Marshal(admin)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, adminKey(), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrAdminExists
	}
	return nil
}

func (s *Storage) UpdateAdminPassword(ctx context.Context, passwordHash string, now time.Time) error {
	key := adminKey()

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrAdminNotFound
			}
			return err
		}

		var admin model.Admin
		if err := json.Unmarshal(data, &admin); err != nil {
			return err
		}
		admin.PasswordHash = passwordHash
		admin.UpdatedAt = now
		if err := model.ValidateAdmin(&admin); err != nil {
			return err
		}

		updated, err := json.Marshal(&admin)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update admin password: %w", redis.TxFailedErr)
}

// Setting operations

func (s *Storage) GetSetting(ctx context.Context) (*model.Setting, error) {
	fields, err := s.client.HGetAll(ctx, settingKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrSettingNotFound
	}

	var setting model.Setting
	if err := json.Unmarshal([]byte(fields[fieldHorsePoints]), &setting.HorsePoints); err != nil {
		return nil, fmt.Errorf("decode horse points: %w", err)
	}
	if setting.ReturnPoint, err = strconv.Atoi(fields[fieldReturnPoint]); err != nil {
		return nil, fmt.Errorf("decode return point: %w", err)
	}
	if setting.CreatedAt, err = parseTime(fields[fieldCreatedAt]); err != nil {
		return nil, err
	}
	if setting.UpdatedAt, err = parseTime(fields[fieldUpdatedAt]); err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *Storage) SaveSetting(ctx context.Context, setting *model.Setting, now time.Time) error {
	if err := model.ValidateSetting(setting); err != nil {
		return err
	}

	horsePoints, err := json.Marshal(setting.HorsePoints)
	if err != nil {
		return err
	}

	ts := formatTime(now)
	key := settingKey()

	pipe := s.client.TxPipeline()
	pipe.HSetNX(ctx, key, fieldCreatedAt, ts)
	pipe.HSet(ctx, key,
		fieldHorsePoints, string(horsePoints),
		fieldReturnPoint, setting.ReturnPoint,
		fieldUpdatedAt, ts,
	)
	_, err = pipe.Exec(ctx)
	return err
}

// Encoding helpers

func decodePlayer(name string, fields map[string]string) (*model.Player, error) {
	score, err := strconv.Atoi(fields[fieldScore])
	if err != nil {
		return nil, fmt.Errorf("decode score of %q: %w", name, err)
	}
	createdAt, err := parseTime(fields[fieldCreatedAt])
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(fields[fieldUpdatedAt])
	if err != nil {
		return nil, err
	}
	return &model.Player{
		Name:      name,
		Score:     score,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode timestamp: %w", err)
	}
	return t, nil
}
