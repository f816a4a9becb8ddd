package logging

import "context"

// update копирует logCtx из контекста (или создаёт новый) и применяет fn.
func update(ctx context.Context, fn func(*logCtx)) context.Context {
	c, _ := ctx.Value(key).(logCtx)
	fn(&c)
	return context.WithValue(ctx, key, c)
}

// WithLogRequestID добавляет request ID в контекст.
func WithLogRequestID(ctx context.Context, requestID string) context.Context {
	return update(ctx, func(c *logCtx) { c.RequestID = requestID })
}

// WithLogRequestPath добавляет путь запроса в контекст.
func WithLogRequestPath(ctx context.Context, path string) context.Context {
	return update(ctx, func(c *logCtx) { c.Path = path })
}

// WithLogRequestMethod добавляет метод запроса в контекст.
func WithLogRequestMethod(ctx context.Context, method string) context.Context {
	return update(ctx, func(c *logCtx) { c.Method = method })
}

// WithLogRequestStatus добавляет статус ответа в контекст.
func WithLogRequestStatus(ctx context.Context, status int) context.Context {
	return update(ctx, func(c *logCtx) { c.Status = status })
}

// WithLogRequestDuration добавляет длительность запроса в контекст.
func WithLogRequestDuration(ctx context.Context, duration string) context.Context {
	return update(ctx, func(c *logCtx) { c.RequestDuration = duration })
}

// WithLogClassID добавляет ID класса в контекст.
func WithLogClassID(ctx context.Context, classID string) context.Context {
	return update(ctx, func(c *logCtx) { c.ClassID = classID })
}

// WithLogStudentID добавляет ID ученика в контекст.
func WithLogStudentID(ctx context.Context, studentID string) context.Context {
	return update(ctx, func(c *logCtx) { c.StudentID = studentID })
}

// WithLogSessionID добавляет ID сессии переклички в контекст.
func WithLogSessionID(ctx context.Context, sessionID string) context.Context {
	return update(ctx, func(c *logCtx) { c.SessionID = sessionID })
}

// WithLogRecordID добавляет ID записи посещаемости в контекст.
func WithLogRecordID(ctx context.Context, recordID string) context.Context {
	return update(ctx, func(c *logCtx) { c.RecordID = recordID })
}

// WithLogPickCount добавляет количество выбранных учеников в контекст.
func WithLogPickCount(ctx context.Context, cnt int) context.Context {
	return update(ctx, func(c *logCtx) { c.PickCount = cnt })
}
