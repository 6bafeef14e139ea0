package endpoint

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/iudanet/goawx/pkg/api"
)

// Resolver строит канонические абсолютные пути к ресурсам API.
// Базовый URL хранится без версионного префикса: префикс всегда
// приходит из относительного пути ресурса, чтобы не дублироваться.
type Resolver struct {
	base string
}

// New создает Resolver для базового URL сервиса.
// Если base уже содержит /api/v2, сегмент удаляется один раз.
func New(base string) (*Resolver, error) {
	base = strings.TrimSpace(base)
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", base, err)
	}

	base = stripVersion(base)
	for strings.HasSuffix(base, "/") && !strings.HasSuffix(base, "://") {
		base = strings.TrimSuffix(base, "/")
	}

	return &Resolver{base: base}, nil
}

// stripVersion удаляет первый сегмент /api/v2 в пути base.
// Совпадение должно заканчиваться на "/" или концом строки, хост не проверяется.
func stripVersion(base string) string {
	head, path := "", base
	if i := strings.Index(base, "://"); i >= 0 {
		head, path = base, ""
		if j := strings.IndexByte(base[i+3:], '/'); j >= 0 {
			head, path = base[:i+3+j], base[i+3+j:]
		}
	}

	for from := 0; from < len(path); {
		i := strings.Index(path[from:], api.Prefix)
		if i < 0 {
			break
		}
		i += from
		end := i + len(api.Prefix)
		if end == len(path) || path[end] == '/' {
			return head + path[:i] + path[end:]
		}
		from = i + 1
	}
	return head + path
}

// Base returns the normalized service root.
func (r *Resolver) Base() string {
	return r.base
}

// Resolve returns base + rel, where rel has exactly one leading and one trailing slash.
func (r *Resolver) Resolve(rel string) string {
	return r.base + Normalize(rel)
}

// Normalize приводит относительный путь к виду /path/
func Normalize(rel string) string {
	rel = strings.Trim(strings.TrimSpace(rel), "/")
	if rel == "" {
		return "/"
	}
	return "/" + rel + "/"
}

// Join returns the per-instance path for id inside a collection.
// An empty id yields the collection path itself.
func Join(collection, id string) string {
	collection = strings.TrimRight(strings.TrimSpace(collection), "/")
	if id == "" {
		return collection
	}
	return collection + "/" + strings.Trim(id, "/")
}
