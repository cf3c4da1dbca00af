package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is a participant as the rest of the system sees one: guests and
// registered players look the same outside the auth service.
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool
	CreatedAt   time.Time
}

// RegisteredPlayer holds the credentials backing a non-guest Player.
// Kept separate from Player so password hashes never travel with
// session or lobby data.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // immutable login name
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
