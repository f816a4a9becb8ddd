package randomizer

import (
	"math/rand"
	"sync"
	"time"
)

type randomizerImpl struct {
	mu  sync.Mutex // Защищает доступ к генератору случайных чисел
	rnd *rand.Rand
}

// New создаёт потокобезопасный randomizer на основе math/rand.
// Использует псевдослучайный генератор: криптостойкость для вызова учеников не нужна.
func New() Randomizer {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded создаёт randomizer с фиксированным seed (воспроизводимые выборки в тестах).
func NewSeeded(seed int64) Randomizer {
	return &randomizerImpl{
		rnd: rand.New(rand.NewSource(seed)), // #nosec G404
	}
}

// Intn возвращает случайное число из [0, n).
func (r *randomizerImpl) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// Float64 возвращает случайное число из [0.0, 1.0).
func (r *randomizerImpl) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}
