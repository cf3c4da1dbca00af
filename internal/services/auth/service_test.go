package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mazekit/mazegame-go/internal/dependencies/mocks"
	"github.com/mazekit/mazegame-go/internal/dependencies/random"
	"github.com/mazekit/mazegame-go/internal/storage/memory"
	"github.com/mazekit/mazegame-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	// IDs and tokens must be distinct across calls, so use a real source
	s.service = New(s.storage, s.clock, random.NewSeeded(1), testutil.NopLogger(), DefaultConfig())
	s.ctx = context.Background()
}

// CreateGuestPlayer tests

func (s *ServiceSuite) TestCreateGuestPlayerSucceeds() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Alice", session.Player.DisplayName)
	s.True(session.Player.IsGuest)
	s.NotEmpty(session.PlayerID)
}

func (s *ServiceSuite) TestCreateGuestPlayerPersistsPlayer() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	player, err := s.storage.GetPlayer(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Equal("Alice", player.DisplayName)
}

func (s *ServiceSuite) TestCreateGuestPlayerSessionIsValid() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID, validated.PlayerID)
}

func (s *ServiceSuite) TestCreateGuestPlayerRejectsEmptyName() {
	_, err := s.service.CreateGuestPlayer(s.ctx, "")
	s.ErrorIs(err, ErrInvalidDisplayName)
}

// RegisterPlayer tests

func (s *ServiceSuite) TestRegisterPlayerSucceeds() {
	session, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter2hunter2", "Alice")
	s.Require().NoError(err)

	s.False(session.Player.IsGuest)

	rp, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(session.PlayerID, rp.PlayerID)
	s.NotEqual("hunter2hunter2", rp.PasswordHash)
}

func (s *ServiceSuite) TestRegisterPlayerRejectsDuplicateUsername() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter2hunter2", "Alice")
	s.Require().NoError(err)

	_, err = s.service.RegisterPlayer(s.ctx, "alice", "otherpassword", "Other Alice")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestRegisterPlayerRejectsBadUsername() {
	_, err := s.service.RegisterPlayer(s.ctx, "a", "hunter2hunter2", "Alice")
	s.ErrorIs(err, ErrInvalidUsername)

	_, err = s.service.RegisterPlayer(s.ctx, "alice!", "hunter2hunter2", "Alice")
	s.ErrorIs(err, ErrInvalidUsername)
}

func (s *ServiceSuite) TestRegisterPlayerRejectsShortPassword() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "short", "Alice")
	s.ErrorIs(err, ErrInvalidPassword)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	registered, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter2hunter2", "Alice")
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "alice", "hunter2hunter2")
	s.Require().NoError(err)
	s.Equal(registered.PlayerID, session.PlayerID)
	s.NotEqual(registered.Token, session.Token)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter2hunter2", "Alice")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsForUnknownUsername() {
	_, err := s.service.Login(s.ctx, "nobody", "hunter2hunter2")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Session tests

func (s *ServiceSuite) TestValidateSessionFailsForUnknownToken() {
	_, err := s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpires() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	expired, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	fresh, err := s.service.CreateGuestPlayer(s.ctx, "Bob")
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(expired.Token)
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestGetPlayerReturnsSessionPlayer() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	player, err := s.service.GetPlayer(session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID, player.ID)
}
