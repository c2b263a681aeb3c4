package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/mahjong-scoreboard/internal/dependencies/mocks"
	"github.com/mcoot/mahjong-scoreboard/internal/services/auth"
	"github.com/mcoot/mahjong-scoreboard/internal/storage/memory"
	"github.com/mcoot/mahjong-scoreboard/internal/testutil"
)

// TestJWTSecret is the signing secret used by NewTestApp
const TestJWTSecret = "test-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Memory    *memory.Storage
}

// NewTestApp creates an App configured for testing: in-memory storage, a
// mocked clock and the cheapest bcrypt cost
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app, err := newWithDependencies(
		store,
		mockClock,
		auth.NewBcryptHasher(bcrypt.MinCost),
		[]byte(TestJWTSecret),
		auth.DefaultConfig(),
		testutil.NopLogger(),
	)
	if err != nil {
		// Only reachable with an empty secret
		panic(err)
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Memory:    store,
	}
}
