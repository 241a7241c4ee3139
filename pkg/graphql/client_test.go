package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://example.com")
	assert.NotNil(t, client)
	assert.Equal(t, "http://example.com", client.Endpoint())
	assert.IsType(t, &httpTransport{}, client.transport)

	client = NewClient("wss://example.com/graphql")
	assert.IsType(t, &webSocketTransport{}, client.transport)
}

func TestExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var req Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Echo", req.OperationName)
		assert.Equal(t, "hello", req.Variables["message"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data": {"message": "hello"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithHeader("Authorization", "Bearer token"))

	var result map[string]string
	err := client.Execute(context.Background(), &Request{
		Query:         "query Echo($message: String) { message }",
		OperationName: "Echo",
		Variables:     map[string]interface{}{"message": "hello"},
	}, &result)
	assert.NoError(t, err)
	assert.Equal(t, "hello", result["message"])
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "graphql errors",
			status: http.StatusOK,
			body:   `{"data": null, "errors": [{"message": "first"}, {"message": "second"}]}`,
			check: func(t *testing.T, err error) {
				var respErr *ResponseError
				require.True(t, errors.As(err, &respErr))
				assert.Len(t, respErr.Errors, 2)
				assert.Equal(t, "first; second", err.Error())
			},
		},
		{
			name:   "graphql errors with bad request",
			status: http.StatusBadRequest,
			body:   `{"errors": [{"message": "Variable \"$searchText\" got invalid value"}]}`,
			check: func(t *testing.T, err error) {
				var respErr *ResponseError
				require.True(t, errors.As(err, &respErr))
				assert.Equal(t, `Variable "$searchText" got invalid value`, err.Error())
			},
		},
		{
			name:   "status without graphql errors",
			status: http.StatusBadGateway,
			body:   `upstream unavailable`,
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
				assert.Equal(t, "unexpected status 502 Bad Gateway: upstream unavailable", err.Error())
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `{"data": `,
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "failed to unmarshal response body")
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)

			var result map[string]interface{}
			err := client.Execute(context.Background(), &Request{Query: "query { message }"}, &result)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestExecuteNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := NewClient(endpoint)
	err := client.Execute(context.Background(), &Request{Query: "query { message }"}, nil)
	assert.ErrorContains(t, err, "failed to execute request")
}

type stubTransport struct {
	resp *Response
	err  error
	req  *Request
}

func (s *stubTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	s.req = req

	return s.resp, s.err
}

func TestWithTransport(t *testing.T) {
	stub := &stubTransport{resp: &Response{Data: json.RawMessage(`{"message":"stubbed"}`)}}
	client := NewClient("http://example.com", WithTransport(stub))

	var result map[string]string
	assert.NoError(t, client.Execute(context.Background(), &Request{Query: "query { message }"}, &result))
	assert.Equal(t, "stubbed", result["message"])
	assert.Equal(t, "query { message }", stub.req.Query)
}
