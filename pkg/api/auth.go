package api

// Prefix версионный префикс AWX API
const Prefix = "/api/v2"

// TokenRequest представляет запрос на выпуск personal access token
type TokenRequest struct {
	Description string `json:"description,omitempty"` // произвольное описание токена
	Scope       string `json:"scope,omitempty"`       // "read" или "write"
}

// TokenResponse представляет выпущенный токен
type TokenResponse struct {
	ID      int64  `json:"id"`      // ID токена на сервере
	Token   string `json:"token"`   // bearer token (возвращается только при создании)
	Expires string `json:"expires"` // RFC3339 время истечения
	Scope   string `json:"scope"`   // выданный scope
}

// ErrorResponse представляет ответ с ошибкой.
// AWX кладет описание ошибки в поле detail.
type ErrorResponse struct {
	Detail string `json:"detail,omitempty"` // описание ошибки
	Error  string `json:"error,omitempty"`  // альтернативное поле некоторых прокси
}

// PingResponse представляет ответ /api/v2/ping/
type PingResponse struct {
	Version string `json:"version"`
	Active  string `json:"active_node"`
	HA      bool   `json:"ha"`
}
