package api

import (
	"encoding/json"
	"fmt"
)

// Response - статус и сырое тело HTTP ответа
type Response struct {
	Body       []byte
	StatusCode int
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode декодирует JSON тело в v. Пустое тело оставляет v без изменений.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Object декодирует тело ответа как JSON объект.
func (r *Response) Object() (map[string]any, error) {
	out := map[string]any{}
	if err := r.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Err returns a *RemoteError for a non-2xx status and nil otherwise.
func (r *Response) Err(method, path string) error {
	if r.OK() {
		return nil
	}
	return newRemoteError(method, path, r.StatusCode, r.Body)
}
