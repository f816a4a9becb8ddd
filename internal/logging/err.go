package logging

import (
	"context"
	"errors"
	"reflect"
)

// errorWithLogCtx несёт поля логирования места, где ошибка возникла.
type errorWithLogCtx struct {
	next error
	ctx  logCtx
}

func (e *errorWithLogCtx) Error() string {
	return e.next.Error()
}

func (e *errorWithLogCtx) Unwrap() error {
	return e.next
}

// WrapError прикрепляет к err поля логирования из ctx (класс, ученик, запись...).
// nil остаётся nil.
func WrapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	c, _ := ctx.Value(key).(logCtx)
	return &errorWithLogCtx{next: err, ctx: c}
}

// ErrorCtx дополняет ctx полями, прикреплёнными к err через WrapError.
// Непустые поля ошибки перекрывают поля ctx, остальные сохраняются.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *errorWithLogCtx
	if !errors.As(err, &e) {
		return ctx
	}
	return update(ctx, func(c *logCtx) { merge(c, e.ctx) })
}

func merge(dst *logCtx, src logCtx) {
	d := reflect.ValueOf(dst).Elem()
	s := reflect.ValueOf(src)
	for i := 0; i < s.NumField(); i++ {
		if f := s.Field(i); !f.IsZero() {
			d.Field(i).Set(f)
		}
	}
}
