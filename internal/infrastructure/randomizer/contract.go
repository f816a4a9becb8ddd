package randomizer

// Randomizer предоставляет абстракцию для рандомизации.
// Все выборки (перемешивание ростера, анти-повтор, аватары) идут через неё,
// чтобы в тестах можно было подставить детерминированный источник.
type Randomizer interface {
	// Intn возвращает равномерно распределённое число из [0, n). n должно быть > 0.
	Intn(n int) int
	// Float64 возвращает число из [0.0, 1.0).
	Float64() float64
}
