package factory

import (
	"time"

	"github.com/mazekit/mazegame-go/internal/dependencies/mocks"
	"github.com/mazekit/mazegame-go/internal/dependencies/random"
	"github.com/mazekit/mazegame-go/internal/services/auth"
	"github.com/mazekit/mazegame-go/internal/storage/memory"
	"github.com/mazekit/mazegame-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The auth service gets a seeded real random source so session tokens stay
// distinct.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, random.NewSeeded(1), auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
