package launch

import (
	"context"
	"fmt"
	"time"

	"github.com/sachaos/launchy/pkg/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// GetLaunchesOperation is the operation name sent with every request.
	GetLaunchesOperation = "GetLaunches"

	searchTextVariable = "searchText"
)

const getLaunchesQuery = `query GetLaunches($searchText: String) {
  launches(find: { mission_name: $searchText }) {
    mission_name
    rocket {
      rocket_name
      rocket_type
    }
  }
}`

var getLaunches = mustParseOperation(getLaunchesQuery, GetLaunchesOperation)

func mustParseOperation(query, name string) *ast.OperationDefinition {
	doc, err := parser.ParseQuery(&ast.Source{Name: name, Input: query})
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", name, err))
	}

	op := doc.Operations.ForName(name)
	if op == nil {
		panic(fmt.Sprintf("operation %s not found", name))
	}

	if op.VariableDefinitions.ForName(searchTextVariable) == nil {
		panic(fmt.Sprintf("operation %s does not declare $%s", name, searchTextVariable))
	}

	return op
}

type launchesData struct {
	Launches []Launch `json:"launches"`
}

// QueryError is the error returned by FetchLaunches. Its message is meant to be
// shown to the user as is.
type QueryError struct {
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

type executor interface {
	Execute(ctx context.Context, req *graphql.Request, target interface{}) error
}

// Client issues the GetLaunches query.
type Client struct {
	gql          executor
	serverFilter bool
	timeout      time.Duration
	logger       *zap.Logger

	group singleflight.Group
}

type Option func(*Client)

// WithServerFilter controls whether the search text is sent to the server.
// When disabled the server returns every launch.
func WithServerFilter(b bool) Option {
	return func(c *Client) {
		c.serverFilter = b
	}
}

// WithTimeout bounds a request that callers share. Each caller still gives up
// when its own ctx is done. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(gql *graphql.Client, opts ...Option) *Client {
	return newClient(gql, opts...)
}

func newClient(gql executor, opts ...Option) *Client {
	c := &Client{
		gql:          gql,
		serverFilter: true,
		logger:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchLaunches returns the launches whose mission name matches searchText on
// the server. Concurrent calls with the same search text share one request.
func (c *Client) FetchLaunches(ctx context.Context, searchText string) ([]Launch, error) {
	variables := map[string]interface{}{}
	key := "*"

	if c.serverFilter {
		variables[searchTextVariable] = searchText
		key = "=" + searchText
	}

	// The shared request outlives any single caller, so it must not inherit
	// the cancellation of whoever started it.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		callCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(callCtx, c.timeout)
			defer cancel()
		}

		var data launchesData

		err := c.gql.Execute(callCtx, &graphql.Request{
			Query:         getLaunchesQuery,
			OperationName: getLaunches.Name,
			Variables:     variables,
		}, &data)

		return data.Launches, err
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res.Err = ctx.Err()
	}

	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		c.logger.Debug("fetch launches failed", zap.String("search", searchText), zap.Error(err))

		return nil, &QueryError{Message: err.Error(), Err: err}
	}

	launches := v.([]Launch)

	c.logger.Debug("fetched launches",
		zap.String("search", searchText),
		zap.Int("count", len(launches)),
		zap.Bool("shared", shared))

	if shared {
		launches = append([]Launch(nil), launches...)
	}

	return launches, nil
}
