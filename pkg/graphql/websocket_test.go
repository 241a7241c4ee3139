package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupWebSocketTestServer answers every start message with reply.
func setupWebSocketTestServer(t *testing.T, reply func(id string) []wsMessage) *httptest.Server {
	upgrader := websocket.Upgrader{Subprotocols: []string{subprotocol}}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		assert.Equal(t, subprotocol, conn.Subprotocol())

		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}

			switch msg.Type {
			case gqlConnectionInit:
				_ = conn.WriteJSON(wsMessage{Type: gqlConnectionKeepAlive})
				_ = conn.WriteJSON(wsMessage{Type: gqlConnectionAck})
			case gqlStart:
				for _, m := range reply(msg.ID) {
					_ = conn.WriteJSON(m)
				}
			case gqlConnectionTerminate:
				return
			}
		}
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWebSocketExecute(t *testing.T) {
	server := setupWebSocketTestServer(t, func(id string) []wsMessage {
		return []wsMessage{
			{ID: "other", Type: gqlData, Payload: json.RawMessage(`{"data":{"message":"not mine"}}`)},
			{ID: id, Type: gqlData, Payload: json.RawMessage(`{"data":{"message":"hello"}}`)},
			{ID: id, Type: gqlComplete},
		}
	})
	defer server.Close()

	client := NewClient(wsURL(server))

	var result map[string]string
	err := client.Execute(context.Background(), &Request{Query: "query { message }"}, &result)
	assert.NoError(t, err)
	assert.Equal(t, "hello", result["message"])
}

func TestWebSocketErrors(t *testing.T) {
	tests := []struct {
		name    string
		reply   func(id string) []wsMessage
		wantErr string
	}{
		{
			name: "error list",
			reply: func(id string) []wsMessage {
				return []wsMessage{{ID: id, Type: gqlError, Payload: json.RawMessage(`[{"message":"boom"}]`)}}
			},
			wantErr: "boom",
		},
		{
			name: "single error",
			reply: func(id string) []wsMessage {
				return []wsMessage{{ID: id, Type: gqlError, Payload: json.RawMessage(`{"message":"bang"}`)}}
			},
			wantErr: "bang",
		},
		{
			name: "errors in data",
			reply: func(id string) []wsMessage {
				return []wsMessage{{ID: id, Type: gqlData, Payload: json.RawMessage(`{"errors":[{"message":"bad query"}]}`)}}
			},
			wantErr: "bad query",
		},
		{
			name: "complete without data",
			reply: func(id string) []wsMessage {
				return []wsMessage{{ID: id, Type: gqlComplete}}
			},
			wantErr: errCompletedWithoutData.Error(),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			server := setupWebSocketTestServer(t, tt.reply)
			defer server.Close()

			client := NewClient(wsURL(server))
			err := client.Execute(context.Background(), &Request{Query: "query { message }"}, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestWebSocketContextCancel(t *testing.T) {
	server := setupWebSocketTestServer(t, func(id string) []wsMessage {
		return nil
	})
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	client := NewClient(wsURL(server))
	err := client.Execute(ctx, &Request{Query: "query { message }"}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWebSocketHandshakeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(wsURL(server))
	err := client.Execute(context.Background(), &Request{Query: "query { message }"}, nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}
