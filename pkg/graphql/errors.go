package graphql

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// ResponseError is returned when the server answers with GraphQL errors.
type ResponseError struct {
	Errors gqlerror.List
}

func (e *ResponseError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		if err == nil {
			continue
		}

		messages = append(messages, err.Message)
	}

	return strings.Join(messages, "; ")
}

// StatusError is returned for a non-2xx HTTP response that carries no GraphQL errors.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("unexpected status %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}
