package domain

import "errors"

// Доменные ошибки, используемые для обработки бизнес-логики.
// Эти ошибки преобразуются в HTTP-ответы в слое обработчиков.
var (
	// Возникает при старте переклички по классу без учеников.
	ErrEmptyRoster = errors.New("class has no students")
	// Возникает при выборе или отметке без активной сессии.
	ErrNoActiveSession = errors.New("no active session")
	// Возникает, когда исключение уже выбранных убрало всех кандидатов.
	ErrPoolExhausted = errors.New("no students left to choose from")
	// Возникает при повторном старте в строгом режиме.
	ErrSessionActive = errors.New("session already active")
	// Возникает при отметке в уже завершённой перекличке.
	ErrSessionCompleted = errors.New("session already completed")
	// Возникает при несогласованных списках элементов и весов.
	ErrInvalidWeights = errors.New("items and weights must have same size and non-negative weights")

	// Базовая ошибка валидации входных данных сервиса.
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidSettings     = errors.New("invalid random call settings")
	ErrInvalidStatus       = errors.New("invalid attendance status")
	ErrStudentNotInSession = errors.New("student not in session")
	ErrClassNotFound       = errors.New("class not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrStudentNoExists     = errors.New("student number already exists")
	ErrRecordNotFound      = errors.New("attendance record not found")
	ErrNoValidRows         = errors.New("no valid student rows")
)
