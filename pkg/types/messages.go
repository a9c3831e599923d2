package types

// Client -> Server
//   join-room      {roomCode, playerName}
//   draw-line      {x1, y1, x2, y2, roomCode}
//   start-game     roomCode
//   finish-stroke  roomCode
//   submit-vote    {roomCode, targetId}
//   fake-guess     {roomCode, guess}
//   restart-game   roomCode
//   chatMessage    text
//   mouse-move     {x, y}
//
// Server -> Client
//   init-player, update-players, draw-line, draw-history, role-assignment,
//   next-turn, game-over, reveal-result, final-outcome, clear-canvas,
//   message, mouse-move, error
//
// Every frame is {"event": <name>, "data": <payload>}.

const (
	EventJoinRoom     = "join-room"
	EventDrawLine     = "draw-line"
	EventStartGame    = "start-game"
	EventFinishStroke = "finish-stroke"
	EventSubmitVote   = "submit-vote"
	EventFakeGuess    = "fake-guess"
	EventRestartGame  = "restart-game"
	EventChatMessage  = "chatMessage"
	EventMouseMove    = "mouse-move"

	EventInitPlayer     = "init-player"
	EventUpdatePlayers  = "update-players"
	EventDrawHistory    = "draw-history"
	EventRoleAssignment = "role-assignment"
	EventNextTurn       = "next-turn"
	EventGameOver       = "game-over"
	EventRevealResult   = "reveal-result"
	EventFinalOutcome   = "final-outcome"
	EventClearCanvas    = "clear-canvas"
	EventMessage        = "message"
	EventError          = "error"
)

const (
	RoleFake   = "fake"
	RoleArtist = "artist"

	// Sent to the fake artist in place of the secret word.
	HiddenWord = "???"

	SystemUser  = "SYSTEM"
	SystemColor = "#000"
)

type InitPlayer struct {
	ID          string `json:"id"`
	Color       string `json:"color"`
	RoomCode    string `json:"roomCode"`
	IsSpectator bool   `json:"isSpectator"`
}

type RoleAssignment struct {
	Role     string `json:"role"`
	Category string `json:"category"`
	Word     string `json:"word"`
}

type NextTurn struct {
	ActivePlayerID string `json:"activePlayerId"`
	PlayerName     string `json:"playerName"`
}

type GameOver struct {
	Message string `json:"message"`
}

type RevealResult struct {
	IsCaught    bool   `json:"isCaught"`
	SuspectID   string `json:"suspectId"`
	SuspectName string `json:"suspectName"`
	FakeID      string `json:"fakeId"`
	FakeName    string `json:"fakeName"`
}

type FinalOutcome struct {
	Success bool   `json:"success"`
	Word    string `json:"word"`
}

type ChatMessage struct {
	User  string `json:"user"`
	Color string `json:"color"`
	Text  string `json:"text"`
}

type Cursor struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type Error struct {
	Message string `json:"message"`
}
