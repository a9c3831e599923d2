package types

// RoomStats is served by GET /stats.
type RoomStats struct {
	Rooms int `json:"rooms"`
}

// RoomCode is returned by POST /rooms.
type RoomCode struct {
	Code string `json:"code"`
}
