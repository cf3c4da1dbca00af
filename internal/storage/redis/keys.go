package redis

import "github.com/mazekit/mazegame-go/internal/model"

// All keys live under one prefix so a shared Redis can be swept by pattern
const keyPrefix = "mzgame:"

func playerKey(id model.PlayerID) string {
	return keyPrefix + "player:" + string(id)
}

func registeredPlayerKey(playerID model.PlayerID) string {
	return keyPrefix + "registered_player:" + string(playerID)
}

// usernameIndexKey maps a login username to its player id
func usernameIndexKey(username string) string {
	return keyPrefix + "idx:username:" + username
}

func lobbyKey(code model.LobbyCode) string {
	return keyPrefix + "lobby:" + string(code)
}

func gameKey(id model.GameID) string {
	return keyPrefix + "game:" + string(id)
}

func boardKey(gameID model.GameID) string {
	return keyPrefix + "board:" + string(gameID)
}
