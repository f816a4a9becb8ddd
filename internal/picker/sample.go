// Package picker содержит примитивы случайной выборки учеников:
// перемешивание, выборку k элементов, взвешенную выборку и выбор с анти-повтором.
package picker

import (
	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/infrastructure/randomizer"
)

// Shuffle возвращает случайную перестановку items (Fisher-Yates).
// Вход не изменяется, работа идёт на копии.
func Shuffle[T any](rnd randomizer.Randomizer, items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	// Идём с последнего элемента до второго, меняя текущий с элементом из [0, i]
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Sample выбирает k случайных элементов без повторов.
// При k >= len(items) возвращает перестановку всех элементов.
func Sample[T any](rnd randomizer.Randomizer, items []T, k int) []T {
	if k <= 0 {
		return []T{}
	}
	shuffled := Shuffle(rnd, items)
	if k >= len(shuffled) {
		return shuffled
	}
	return shuffled[:k]
}

// WeightedSample выбирает до count элементов без возвращения,
// вероятность выбора пропорциональна весу.
func WeightedSample[T any](rnd randomizer.Randomizer, items []T, weights []float64, count int) ([]T, error) {
	if len(items) != len(weights) {
		return nil, domain.ErrInvalidWeights
	}
	for _, w := range weights {
		if w < 0 {
			return nil, domain.ErrInvalidWeights
		}
	}

	availableItems := append([]T{}, items...)
	availableWeights := append([]float64{}, weights...)
	selected := make([]T, 0, max(count, 0))

	for len(selected) < count && len(availableItems) > 0 {
		var total float64
		for _, w := range availableWeights {
			total += w
		}
		target := rnd.Float64() * total

		// Последний элемент как запасной вариант: все оставшиеся веса нулевые или ошибка округления
		idx := len(availableItems) - 1
		var cumulative float64
		for j, w := range availableWeights {
			cumulative += w
			if target < cumulative {
				idx = j
				break
			}
		}

		selected = append(selected, availableItems[idx])
		availableItems = append(availableItems[:idx], availableItems[idx+1:]...)
		availableWeights = append(availableWeights[:idx], availableWeights[idx+1:]...)
	}
	return selected, nil
}
