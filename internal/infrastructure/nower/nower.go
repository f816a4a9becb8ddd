package nower

import "time"

type nowerImpl struct{}

// New создаёт реализацию на базе системных часов.
func New() Nower {
	return &nowerImpl{}
}

// Now возвращает текущее время в UTC с точностью до миллисекунд,
// в таком виде время хранится в SQLite и без потерь проходит round-trip.
func (n *nowerImpl) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
