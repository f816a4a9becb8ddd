// Package randomcall управляет жизненным циклом сессии случайного вызова:
// старт по снимку ростера, выбор учеников, фиксация истории и завершение.
package randomcall

import (
	"sync"

	"github.com/google/uuid"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/infrastructure/nower"
	"github.com/voidAlex/student-roll-call/internal/infrastructure/randomizer"
	"github.com/voidAlex/student-roll-call/internal/picker"
)

// Options параметры менеджера.
type Options struct {
	// MaxRecent размер окна анти-повтора (<= 0 означает picker.DefaultMaxRecent).
	MaxRecent int
	// StrictRestart запрещает старт новой сессии, пока текущая не завершена.
	StrictRestart bool
	// Settings начальные глобальные настройки; нулевое значение заменяется значениями по умолчанию.
	Settings domain.RandomCallSettings
}

// Manager владеет текущей сессией, глобальными настройками и picker'ом.
// Наружу отдаются только копии.
type Manager struct {
	mu            sync.Mutex
	nower         nower.Nower
	picker        *picker.AntiRepeat[domain.RollCallStudent]
	settings      domain.RandomCallSettings
	strictRestart bool
	session       *domain.RandomCallSession
}

func New(rnd randomizer.Randomizer, nower nower.Nower, opts Options) *Manager {
	settings := opts.Settings
	if settings.PickCount < 1 {
		settings = domain.DefaultRandomCallSettings()
	}
	return &Manager{
		nower:         nower,
		picker:        picker.NewAntiRepeat[domain.RollCallStudent](rnd, opts.MaxRecent),
		settings:      settings,
		strictRestart: opts.StrictRestart,
	}
}

// Start начинает новую сессию по снимку ростера.
// Активная сессия заменяется (или ErrSessionActive в строгом режиме), окно анти-повтора сбрасывается.
func (m *Manager) Start(classID string, roster []domain.RollCallStudent) (domain.RandomCallSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(roster) == 0 {
		return domain.RandomCallSession{}, domain.ErrEmptyRoster
	}
	if m.strictRestart && m.session != nil {
		return domain.RandomCallSession{}, domain.ErrSessionActive
	}

	m.session = &domain.RandomCallSession{
		ID:        uuid.NewString(),
		ClassID:   classID,
		StartTime: m.nower.Now(),
		Settings:  m.settings,
		Students:  append([]domain.RollCallStudent{}, roster...),
		History:   []domain.HistoryEntry{},
	}
	m.picker.Reset()
	return m.session.Clone(), nil
}

// PerformPick выбирает учеников по настройкам сессии, не добавляя их в историю.
func (m *Manager) PerformPick() ([]domain.RollCallStudent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, domain.ErrNoActiveSession
	}
	session := m.session

	pool := session.Students
	// Исключаем всех, кто уже попадал в историю этой сессии
	if session.Settings.ExcludeSelected && len(session.History) > 0 {
		selected := make(map[string]struct{})
		for _, entry := range session.History {
			for _, s := range entry.SelectedStudents {
				selected[s.StudentID] = struct{}{}
			}
		}
		pool = make([]domain.RollCallStudent, 0, len(session.Students))
		for _, s := range session.Students {
			if _, ok := selected[s.StudentID]; !ok {
				pool = append(pool, s)
			}
		}
	}
	if len(pool) == 0 {
		return nil, domain.ErrPoolExhausted
	}

	count := min(session.Settings.PickCount, len(pool))
	return m.picker.Pick(pool, count), nil
}

// AddToHistory фиксирует выбор в истории активной сессии.
// Происхождение выбора не проверяется.
func (m *Manager) AddToHistory(selected []domain.RollCallStudent) (domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return domain.HistoryEntry{}, domain.ErrNoActiveSession
	}
	entry := domain.HistoryEntry{
		ID:               uuid.NewString(),
		Time:             m.nower.Now(),
		SelectedStudents: append([]domain.RollCallStudent{}, selected...),
	}
	m.session.History = append(m.session.History, entry)

	entry.SelectedStudents = append([]domain.RollCallStudent{}, entry.SelectedStudents...)
	return entry, nil
}

// End завершает активную сессию и освобождает слот.
// Возвращает завершённую сессию; без активной сессии ничего не делает.
func (m *Manager) End() (domain.RandomCallSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return domain.RandomCallSession{}, false
	}
	m.session.IsCompleted = true
	ended := m.session.Clone()
	m.session = nil
	return ended, true
}

// Current возвращает копию активной сессии.
func (m *Manager) Current() (domain.RandomCallSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return domain.RandomCallSession{}, false
	}
	return m.session.Clone(), true
}

// Settings возвращает глобальные настройки, которые получит следующая сессия.
func (m *Manager) Settings() domain.RandomCallSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// UpdateSettings применяет патч к глобальным настройкам.
// Уже начатая сессия продолжает работать со своим снимком.
func (m *Manager) UpdateSettings(patch domain.SettingsPatch) (domain.RandomCallSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.settings.Apply(patch)
	if next.PickCount < 1 {
		return m.settings, domain.ErrInvalidSettings
	}
	m.settings = next
	return m.settings, nil
}

// RecentPicks возвращает окно анти-повтора (от старых к новым).
func (m *Manager) RecentPicks() []domain.RollCallStudent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.picker.Recent()
}
