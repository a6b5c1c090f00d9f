package remote

// Actions carried in Message.Action.
const (
	ActionPlayerID    = "PLAYER_ID"
	ActionUpdateState = "UPDATE_STATE"
	ActionJoinGame    = "JOIN_GAME"
	ActionStartGame   = "START_GAME"
	ActionPlayerInput = "PLAYER_INPUT"
	ActionRestartGame = "RESTART_GAME"
)

// Object types carried in GameObject.Type.
const (
	TypeSnakeHead = "SNAKE_HEAD"
	TypeSnakeBody = "SNAKE_BODY"
	TypeFruit     = "FRUIT"
)

// GameObject is one drawable entity in an authority snapshot. Coordinates
// are whole pixels in the authority's board space.
type GameObject struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Type      string `json:"type"`
	PlayerID  int    `json:"playerId"`
	Color     string `json:"color,omitempty"`
	Health    int    `json:"health,omitempty"`
	Name      string `json:"name,omitempty"`
	FruitType string `json:"fruitType,omitempty"`
	Alive     bool   `json:"alive,omitempty"`
}

// Message is the single envelope used in both directions.
type Message struct {
	Action         string         `json:"action"`
	Objects        []GameObject   `json:"objects,omitempty"`
	GameOver       bool           `json:"gameOver"`
	GameInProgress bool           `json:"gameInProgress"`
	Input          string         `json:"input,omitempty"`
	PlayerID       int            `json:"playerId"`
	PlayerName     string         `json:"playerName,omitempty"`
	PlayerScores   map[int]int    `json:"playerScores,omitempty"`
	PlayerNames    map[int]string `json:"playerNames,omitempty"`
}
