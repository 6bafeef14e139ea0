package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/iudanet/goawx/pkg/api"
)

// RemoteError - сервер отклонил запрос (статус вне 2xx).
// Detail берется из поля detail ответа, если оно есть.
type RemoteError struct {
	Method     string
	Path       string
	Detail     string
	StatusCode int
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("%s %s: server error (%d)", e.Method, e.Path, e.StatusCode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// NotFound reports a 404 response.
func (e *RemoteError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func newRemoteError(method, path string, status int, body []byte) *RemoteError {
	e := &RemoteError{Method: method, Path: path, StatusCode: status}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Detail != "":
			e.Detail = errResp.Detail
		case errResp.Error != "":
			e.Detail = errResp.Error
		default:
			// ошибки валидации AWX: {"field": ["message"]}
			e.Detail = strings.TrimSpace(string(body))
		}
		return e
	}
	e.Detail = strings.TrimSpace(string(body))
	return e
}
