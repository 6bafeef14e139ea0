package auth

import (
	"encoding/base64"
	"strings"

	"github.com/iudanet/goawx/internal/client/api"
)

// Bearer аутентифицирует запросы personal access token'ом AWX
type Bearer string

// Header returns the Authorization header.
func (b Bearer) Header() (string, string) {
	return "Authorization", "Bearer " + string(b)
}

// Basic аутентифицирует запросы логином и паролем
type Basic struct {
	Username string
	Password string
}

// Header returns the Authorization header.
func (b Basic) Header() (string, string) {
	creds := base64.StdEncoding.EncodeToString([]byte(b.Username + ":" + b.Password))
	return "Authorization", "Basic " + creds
}

// FromCredentials выбирает способ аутентификации: токен имеет приоритет
// над логином и паролем.
func FromCredentials(token, username, password string) (api.Authenticator, error) {
	if token = strings.TrimSpace(token); token != "" {
		return Bearer(token), nil
	}
	if username != "" && password != "" {
		return Basic{Username: username, Password: password}, nil
	}
	return nil, ErrNoCredentials
}
