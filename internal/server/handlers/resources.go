package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/goawx/internal/endpoint"
	"github.com/iudanet/goawx/internal/models"
	"github.com/iudanet/goawx/internal/server/storage"
	"github.com/iudanet/goawx/internal/validation"
	"github.com/iudanet/goawx/pkg/api"
)

const (
	defaultPageSize = 25
	maxPageSize     = 200
)

// Параметры запроса коллекции, которые не являются фильтрами
var reservedParams = map[string]bool{"page": true, "page_size": true, "order_by": true}

// ResourceHandler обслуживает коллекции каталога: /api/v2/{resource}/
type ResourceHandler struct {
	logger  *slog.Logger
	records storage.RecordStorage
}

// NewResourceHandler создает handler для ресурсов каталога
func NewResourceHandler(logger *slog.Logger, records storage.RecordStorage) *ResourceHandler {
	return &ResourceHandler{
		logger:  logger,
		records: records,
	}
}

// List обрабатывает GET /api/v2/{resource}/
// Поддерживает фильтры field=value, page и page_size
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schema, ok := h.schema(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page, pageSize, err := pagination(query)
	if err != nil {
		SendDetail(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.records.ListRecords(ctx, schema.Name)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list records", slog.String("resource", schema.Name), slog.Any("error", err))
		SendDetail(w, h.logger, DetailServerError, http.StatusInternalServerError)
		return
	}

	results := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		fields := present(schema, rec)
		if matches(fields, query) {
			results = append(results, fields)
		}
	}

	resp := api.ListResponse{Count: len(results), Results: []map[string]any{}}
	start := (page - 1) * pageSize
	if start < len(results) {
		end := min(start+pageSize, len(results))
		resp.Results = results[start:end]
	}
	if start+pageSize < len(results) {
		resp.Next = pageLink(r.URL, page+1)
	}
	if page > 1 {
		resp.Previous = pageLink(r.URL, page-1)
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}

// Create обрабатывает POST /api/v2/{resource}/
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schema, ok := h.schema(w, r)
	if !ok || !h.canWrite(w, r) {
		return
	}

	body, ok := h.decode(w, r)
	if !ok {
		return
	}
	fields, err := clean(schema, body, false)
	if err != nil {
		SendDetail(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	rec := &models.StoredRecord{Resource: schema.Name, Fields: fields}
	if err := h.records.CreateRecord(ctx, rec); err != nil {
		h.logger.ErrorContext(ctx, "failed to create record", slog.String("resource", schema.Name), slog.Any("error", err))
		SendDetail(w, h.logger, DetailServerError, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "record created", slog.String("resource", schema.Name), slog.Int64("id", rec.ID))
	sendJSON(w, h.logger, present(schema, rec), http.StatusCreated)
}

// Get обрабатывает GET /api/v2/{resource}/{id}/
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schema(w, r)
	if !ok {
		return
	}
	rec, ok := h.load(w, r, schema)
	if !ok {
		return
	}
	sendJSON(w, h.logger, present(schema, rec), http.StatusOK)
}

// Update обрабатывает PUT /api/v2/{resource}/{id}/
// Записываемые поля полностью заменяются телом запроса
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, false)
}

// Patch обрабатывает PATCH /api/v2/{resource}/{id}/
// Переданные поля сливаются с сохраненными
func (h *ResourceHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, true)
}

func (h *ResourceHandler) write(w http.ResponseWriter, r *http.Request, partial bool) {
	ctx := r.Context()

	schema, ok := h.schema(w, r)
	if !ok || !h.canWrite(w, r) {
		return
	}
	rec, ok := h.load(w, r, schema)
	if !ok {
		return
	}

	body, ok := h.decode(w, r)
	if !ok {
		return
	}
	fields, err := clean(schema, body, partial)
	if err != nil {
		SendDetail(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	if partial {
		maps.Copy(rec.Fields, fields)
	} else {
		rec.Fields = fields
	}

	if err := h.records.UpdateRecord(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			SendDetail(w, h.logger, DetailNotFound, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update record", slog.String("resource", schema.Name), slog.Any("error", err))
		SendDetail(w, h.logger, DetailServerError, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "record updated",
		slog.String("resource", schema.Name),
		slog.Int64("id", rec.ID),
		slog.Bool("partial", partial))
	sendJSON(w, h.logger, present(schema, rec), http.StatusOK)
}

// Delete обрабатывает DELETE /api/v2/{resource}/{id}/
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schema, ok := h.schema(w, r)
	if !ok || !h.canWrite(w, r) {
		return
	}
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	if err := h.records.DeleteRecord(ctx, schema.Name, id); err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			SendDetail(w, h.logger, DetailNotFound, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete record", slog.String("resource", schema.Name), slog.Any("error", err))
		SendDetail(w, h.logger, DetailServerError, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "record deleted", slog.String("resource", schema.Name), slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// schema принимает только имена коллекций; алиасы в единственном числе
// существуют лишь в CLI
func (h *ResourceHandler) schema(w http.ResponseWriter, r *http.Request) (*models.Schema, bool) {
	name := chi.URLParam(r, "resource")
	schema, err := models.Lookup(name)
	if err != nil || schema.Name != name {
		SendDetail(w, h.logger, DetailNotFound, http.StatusNotFound)
		return nil, false
	}
	return schema, true
}

func (h *ResourceHandler) id(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		SendDetail(w, h.logger, DetailNotFound, http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func (h *ResourceHandler) load(w http.ResponseWriter, r *http.Request, schema *models.Schema) (*models.StoredRecord, bool) {
	ctx := r.Context()

	id, ok := h.id(w, r)
	if !ok {
		return nil, false
	}
	rec, err := h.records.GetRecord(ctx, schema.Name, id)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			SendDetail(w, h.logger, DetailNotFound, http.StatusNotFound)
			return nil, false
		}
		h.logger.ErrorContext(ctx, "failed to get record", slog.String("resource", schema.Name), slog.Any("error", err))
		SendDetail(w, h.logger, DetailServerError, http.StatusInternalServerError)
		return nil, false
	}
	return rec, true
}

func (h *ResourceHandler) decode(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode record body", slog.Any("error", err))
		SendDetail(w, h.logger, "JSON parse error - "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, true
}

// canWrite отклоняет изменения по токену со scope read
func (h *ResourceHandler) canWrite(w http.ResponseWriter, r *http.Request) bool {
	if p, ok := GetPrincipal(r.Context()); ok && p.Scope == ScopeRead {
		SendDetail(w, h.logger, DetailPermissionDenied, http.StatusForbidden)
		return false
	}
	return true
}

// clean проверяет тело запроса по каталогу и возвращает записываемые поля.
// Read-only поля игнорируются, неизвестные отклоняются.
func clean(schema *models.Schema, body map[string]any, partial bool) (map[string]any, error) {
	names := make([]string, 0, len(body))
	for name := range body {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(map[string]any, len(body))
	for _, name := range names {
		field, ok := schema.Field(name)
		if !ok {
			return nil, fmt.Errorf("%s: unknown field for %s", name, schema.Name)
		}
		if field.ReadOnly {
			continue
		}
		value, err := validation.Validate(name, body[name], field.Kind, field.Allowed)
		if err != nil {
			return nil, err
		}
		fields[name] = value
	}

	if !partial {
		for _, field := range schema.Writable() {
			if _, ok := fields[field.Name]; field.Required && !ok {
				return nil, fmt.Errorf("%s: this field is required", field.Name)
			}
		}
	}
	return fields, nil
}

// present дополняет сохраненные поля полями, которые проставляет сервер
func present(schema *models.Schema, rec *models.StoredRecord) map[string]any {
	out := maps.Clone(rec.Fields)
	if out == nil {
		out = make(map[string]any)
	}
	id := strconv.FormatInt(rec.ID, 10)
	out["id"] = rec.ID
	out["type"] = schema.Singular
	out["url"] = endpoint.Join(schema.Endpoint, id) + "/"
	out["related"] = map[string]any{}
	out["summary_fields"] = map[string]any{}
	out["created"] = rec.Created.UTC().Format(time.RFC3339)
	out["modified"] = rec.Modified.UTC().Format(time.RFC3339)
	return out
}

// matches сравнивает текстовое представление полей с фильтрами запроса
func matches(fields map[string]any, query url.Values) bool {
	for key, values := range query {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		if text(fields[key]) != values[0] {
			return false
		}
	}
	return true
}

func text(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func pagination(query url.Values) (page, pageSize int, err error) {
	page, pageSize = 1, defaultPageSize
	if v := query.Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page %q", v)
		}
	}
	if v := query.Get("page_size"); v != "" {
		pageSize, err = strconv.Atoi(v)
		if err != nil || pageSize < 1 {
			return 0, 0, fmt.Errorf("invalid page_size %q", v)
		}
		pageSize = min(pageSize, maxPageSize)
	}
	return page, pageSize, nil
}

// pageLink строит относительную ссылку на страницу, сохраняя остальные параметры
func pageLink(u *url.URL, page int) *string {
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	link := u.Path + "?" + query.Encode()
	return &link
}
