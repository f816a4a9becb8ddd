package picker

import (
	"slices"

	"github.com/voidAlex/student-roll-call/internal/infrastructure/randomizer"
)

// DefaultMaxRecent размер окна анти-повтора по умолчанию.
const DefaultMaxRecent = 3

// AntiRepeat выбирает элементы, избегая недавно выбранных.
// Хранит последние maxRecent выбранных элементов между вызовами Pick.
// Не потокобезопасен: синхронизацию обеспечивает владелец.
type AntiRepeat[T comparable] struct {
	rnd       randomizer.Randomizer
	maxRecent int
	recent    []T
}

// NewAntiRepeat создаёт picker с окном maxRecent (<= 0 означает DefaultMaxRecent).
func NewAntiRepeat[T comparable](rnd randomizer.Randomizer, maxRecent int) *AntiRepeat[T] {
	if maxRecent <= 0 {
		maxRecent = DefaultMaxRecent
	}
	return &AntiRepeat[T]{
		rnd:       rnd,
		maxRecent: maxRecent,
	}
}

// Pick выбирает count элементов из pool.
// Сначала из элементов вне окна недавних; если их меньше count, то из всего pool.
// Вызывающий гарантирует count <= len(pool).
func (p *AntiRepeat[T]) Pick(pool []T, count int) []T {
	available := make([]T, 0, len(pool))
	for _, item := range pool {
		if !slices.Contains(p.recent, item) {
			available = append(available, item)
		}
	}

	var selected []T
	if len(available) >= count {
		selected = Sample(p.rnd, available, count)
	} else {
		// Свежих элементов не хватает: ослабляем исключение, чтобы выбор не падал
		selected = Sample(p.rnd, pool, count)
	}

	p.recent = append(p.recent, selected...)
	if len(p.recent) > p.maxRecent {
		p.recent = append([]T(nil), p.recent[len(p.recent)-p.maxRecent:]...)
	}
	return selected
}

// Reset очищает окно недавних. Вызывается при старте каждой новой сессии.
func (p *AntiRepeat[T]) Reset() {
	p.recent = nil
}

// Recent возвращает копию окна недавних, от старых к новым.
func (p *AntiRepeat[T]) Recent() []T {
	return append([]T{}, p.recent...)
}

// MaxRecent возвращает размер окна.
func (p *AntiRepeat[T]) MaxRecent() int {
	return p.maxRecent
}
