package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

// Request is the body of a GraphQL operation.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors gqlerror.List   `json:"errors,omitempty"`
}

// Transport sends one request and returns the decoded response envelope.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

type Client struct {
	endpoint   string
	header     http.Header
	httpClient *http.Client
	dialer     *websocket.Dialer
	logger     *zap.Logger

	transport Transport
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = hc
	}
}

func WithHeader(key, value string) ClientOption {
	return func(client *Client) {
		client.header.Add(key, value)
	}
}

func WithLogger(logger *zap.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

func WithDialer(dialer *websocket.Dialer) ClientOption {
	return func(client *Client) {
		client.dialer = dialer
	}
}

// WithTransport replaces the transport chosen from the endpoint scheme.
func WithTransport(t Transport) ClientOption {
	return func(client *Client) {
		client.transport = t
	}
}

// NewClient returns a client for endpoint. ws and wss endpoints use the
// graphql-ws protocol, anything else is sent as an HTTP POST.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	client := &Client{
		endpoint:   endpoint,
		header:     http.Header{},
		httpClient: http.DefaultClient,
		dialer:     websocket.DefaultDialer,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.transport == nil {
		if u, err := url.Parse(endpoint); err == nil && (u.Scheme == "ws" || u.Scheme == "wss") {
			client.transport = newWebSocketTransport(endpoint, client.header, client.dialer, client.logger)
		} else {
			client.transport = newHTTPTransport(endpoint, client.header, client.httpClient, client.logger)
		}
	}

	return client
}

func (client *Client) Endpoint() string {
	return client.endpoint
}

// Execute runs req and decodes the data field into target.
func (client *Client) Execute(ctx context.Context, req *Request, target interface{}) error {
	resp, err := client.transport.Do(ctx, req)
	if err != nil {
		return err
	}

	if len(resp.Errors) > 0 {
		return &ResponseError{Errors: resp.Errors}
	}

	if len(resp.Data) == 0 || target == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Data, target); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return nil
}
