package nower

import "time"

// Nower предоставляет абстракцию для получения текущего времени.
// Через неё проставляются время начала сессий, отметок и записей истории.
type Nower interface {
	Now() time.Time
}
