package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/fake-artist-backend/internal/hub"
	wire "github.com/DoyleJ11/fake-artist-backend/pkg/types"
)

const (
	codeLength   = 6
	codeAttempts = 16
	hubTimeout   = 2 * time.Second
)

var (
	ErrNoFreeCode     = errors.New("no free room code")
	ErrHubUnavailable = errors.New("hub unavailable")
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, codeLength)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func roomExists(ctx context.Context, h *hub.Hub, code string) (bool, error) {
	reply := make(chan bool, 1)
	if !h.Send(ctx, hub.RoomExists{Code: code, Reply: reply}) {
		return false, ErrHubUnavailable
	}
	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ErrHubUnavailable
	}
}

// NewRoomCode hands out a code that no live room uses. The room itself is
// created by the first join.
func NewRoomCode(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), hubTimeout)
		defer cancel()

		for i := 0; i < codeAttempts; i++ {
			code, err := GenerateCode()
			if err != nil {
				log.Error("generate room code", zap.Error(err))
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			taken, err := roomExists(ctx, h, code)
			if err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			if taken {
				log.Debug("collision on code, regenerating", zap.String("room", code))
				continue
			}
			writeJSON(w, http.StatusCreated, wire.RoomCode{Code: code})
			return
		}
		log.Warn("room code space exhausted", zap.Error(ErrNoFreeCode))
		http.Error(w, ErrNoFreeCode.Error(), http.StatusServiceUnavailable)
	}
}

func Stats(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), hubTimeout)
		defer cancel()

		reply := make(chan int, 1)
		if !h.Send(ctx, hub.CountRooms{Reply: reply}) {
			http.Error(w, "hub unavailable", http.StatusServiceUnavailable)
			return
		}
		select {
		case n := <-reply:
			writeJSON(w, http.StatusOK, wire.RoomStats{Rooms: n})
		case <-ctx.Done():
			http.Error(w, "hub unavailable", http.StatusServiceUnavailable)
		}
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
