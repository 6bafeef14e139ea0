package api

// ListResponse представляет страницу коллекции AWX.
// Next/Previous содержат относительные ссылки на соседние страницы или null.
type ListResponse struct {
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []map[string]any `json:"results"`
	Count    int              `json:"count"`
}

// MeResponse ответ /api/v2/me/ имеет форму списка из одного пользователя
type MeResponse = ListResponse
