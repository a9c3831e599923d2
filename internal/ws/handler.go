package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"nhooyr.io/websocket"

	"github.com/DoyleJ11/fake-artist-backend/internal/hub"
	"github.com/DoyleJ11/fake-artist-backend/internal/types"
	wire "github.com/DoyleJ11/fake-artist-backend/pkg/types"
)

const (
	writeTimeout = 3 * time.Second
	pingInterval = 30 * time.Second
	maxFrame     = 16 << 10
)

type Options struct {
	OriginPatterns []string
	OutboxSize     int
	EventRate      rate.Limit
	EventBurst     int
}

func Handler(h *hub.Hub, opts Options, log *zap.Logger) http.HandlerFunc {
	if opts.OutboxSize <= 0 {
		opts.OutboxSize = 256
	}
	if opts.EventRate <= 0 {
		opts.EventRate = rate.Inf
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")
		conn.SetReadLimit(maxFrame)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		connID := uuid.NewString()
		clog := log.With(zap.String("conn", connID))
		out := make(chan types.ServerMessage, opts.OutboxSize)

		if !h.Send(ctx, hub.Connect{ConnID: connID, Outbox: out}) {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}
		defer h.Send(context.Background(), hub.Disconnect{ConnID: connID})

		go writePump(ctx, cancel, conn, out, clog)
		go pingPump(ctx, conn)

		limiter := rate.NewLimiter(opts.EventRate, opts.EventBurst)
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					clog.Debug("read ended", zap.Error(err))
				}
				return
			}

			if !limiter.Allow() {
				clog.Debug("rate limited frame dropped")
				continue
			}

			cmd, err := types.Decode(data)
			if err != nil {
				clog.Debug("rejected frame", zap.Error(err))
				writeJSON(ctx, conn, types.ServerMessage{Event: wire.EventError, Data: wire.Error{Message: err.Error()}})
				continue
			}

			if !h.Send(ctx, hub.Inbound{ConnID: connID, Cmd: cmd}) {
				return
			}
		}
	}
}

// writePump drains the outbox until the hub closes it.
func writePump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out <-chan types.ServerMessage, log *zap.Logger) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-out:
			if !ok {
				conn.Close(websocket.StatusPolicyViolation, "dropped")
				return
			}
			if err := writeJSON(ctx, conn, msg); err != nil {
				log.Debug("write failed", zap.String("event", msg.Event), zap.Error(err))
				return
			}
		}
	}
}

func pingPump(ctx context.Context, conn *websocket.Conn) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			pctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pctx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

func writeJSON(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(wctx, websocket.MessageText, payload)
}
