package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LobbyConfigRequest carries lobby game settings
type LobbyConfigRequest struct {
	BoardWidth  int `json:"board_width"`
	BoardHeight int `json:"board_height"`
	TargetScore int `json:"target_score"`
}

// CreateLobbyRequest is the request body for creating a lobby
type CreateLobbyRequest struct {
	Config *LobbyConfigRequest `json:"config,omitempty"`
}

// TransferHostRequest is the request body for transferring host
type TransferHostRequest struct {
	NewHostID string `json:"new_host_id"`
}

// StageInsertRequest is the request body for staging the loose tile at a lane
type StageInsertRequest struct {
	Dir        string `json:"dir"`
	GuideIndex int    `json:"guide_index"`
}

// MoveRequest is the request body for moving a token
type MoveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
