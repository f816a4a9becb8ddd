package common

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// DecodeJSON читает тело запроса, неизвестные поля считаются ошибкой.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return NewBadRequestError("INVALID_BODY", "не удалось прочитать тело запроса")
	}
	return nil
}

// PathParam возвращает обязательный параметр пути.
func PathParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		return "", NewBadRequestError("VALIDATION_ERROR", name+" обязателен")
	}
	return value, nil
}

// QueryBool читает булев query-параметр, отсутствие означает false.
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, NewBadRequestError("VALIDATION_ERROR", name+" должен быть true или false")
	}
	return v, nil
}
