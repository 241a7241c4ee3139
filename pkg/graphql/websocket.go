package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

const subprotocol = "graphql-ws"

// graphql-ws message types.
const (
	gqlConnectionInit      = "connection_init"
	gqlConnectionAck       = "connection_ack"
	gqlConnectionError     = "connection_error"
	gqlConnectionKeepAlive = "ka"
	gqlConnectionTerminate = "connection_terminate"
	gqlStart               = "start"
	gqlStop                = "stop"
	gqlData                = "data"
	gqlError               = "error"
	gqlComplete            = "complete"
)

var errCompletedWithoutData = errors.New("operation completed without data")

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// webSocketTransport runs each request on its own graphql-ws connection.
type webSocketTransport struct {
	endpoint string
	header   http.Header
	dialer   *websocket.Dialer
	logger   *zap.Logger
	counter  int64
}

func newWebSocketTransport(endpoint string, header http.Header, dialer *websocket.Dialer, logger *zap.Logger) *webSocketTransport {
	return &webSocketTransport{
		endpoint: endpoint,
		header:   header,
		dialer:   dialer,
		logger:   logger,
	}
}

func (t *webSocketTransport) generateUniqueID() string {
	return strconv.FormatInt(atomic.AddInt64(&t.counter, 1), 10)
}

func (t *webSocketTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	dialer := *t.dialer
	dialer.Subprotocols = []string{subprotocol}

	conn, resp, err := dialer.DialContext(ctx, t.endpoint, t.header)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
		}

		return nil, fmt.Errorf("failed to dial WebSocket: %w", err)
	}
	defer conn.Close()

	// Unblocks ReadJSON when ctx ends first.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	result, err := t.exchange(conn, req)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return result, err
}

//nolint:cyclop
func (t *webSocketTransport) exchange(conn *websocket.Conn, req *Request) (*Response, error) {
	if err := conn.WriteJSON(wsMessage{Type: gqlConnectionInit}); err != nil {
		return nil, fmt.Errorf("failed to send init message: %w", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	id := t.generateUniqueID()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return nil, fmt.Errorf("failed to read message: %w", err)
		}

		t.logger.Debug("websocket message", zap.String("type", msg.Type), zap.String("id", msg.ID))

		switch msg.Type {
		case gqlConnectionAck:
			if err := conn.WriteJSON(wsMessage{ID: id, Type: gqlStart, Payload: payload}); err != nil {
				return nil, fmt.Errorf("failed to send start message: %w", err)
			}
		case gqlConnectionError:
			return nil, fmt.Errorf("connection error: %s", string(msg.Payload))
		case gqlConnectionKeepAlive:
		case gqlData:
			if msg.ID != id {
				continue
			}

			var r Response
			if err := json.Unmarshal(msg.Payload, &r); err != nil {
				return nil, fmt.Errorf("failed to unmarshal data message: %w", err)
			}

			t.terminate(conn, id)

			return &r, nil
		case gqlError:
			if msg.ID != id {
				continue
			}

			var r Response
			if err := json.Unmarshal(msg.Payload, &r.Errors); err != nil {
				var single gqlerror.Error
				if err := json.Unmarshal(msg.Payload, &single); err != nil {
					return nil, fmt.Errorf("operation error: %s", string(msg.Payload))
				}

				r.Errors = gqlerror.List{&single}
			}

			t.terminate(conn, id)

			return &r, nil
		case gqlComplete:
			if msg.ID == id {
				return nil, errCompletedWithoutData
			}
		default:
			t.logger.Debug("unknown message type", zap.String("type", msg.Type))
		}
	}
}

func (t *webSocketTransport) terminate(conn *websocket.Conn, id string) {
	if err := conn.WriteJSON(wsMessage{ID: id, Type: gqlStop}); err != nil {
		t.logger.Debug("failed to send stop message", zap.Error(err))
	}

	if err := conn.WriteJSON(wsMessage{Type: gqlConnectionTerminate}); err != nil {
		t.logger.Debug("failed to send close message", zap.Error(err))
	}
}
