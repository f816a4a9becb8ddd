// Package rollcall реализует последовательную перекличку всего класса.
package rollcall

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/infrastructure/nower"
)

// Manager владеет текущей перекличкой.
type Manager struct {
	mu      sync.Mutex
	nower   nower.Nower
	session *domain.RollCallSession
	// pending запись завершённой переклички, ещё не подтверждённая Saved.
	pending *domain.AttendanceRecord
}

func New(nower nower.Nower) *Manager {
	return &Manager{nower: nower}
}

// Start начинает перекличку по снимку ростера, заменяя предыдущую.
func (m *Manager) Start(classID string, roster []domain.RollCallStudent) (domain.RollCallSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(roster) == 0 {
		return domain.RollCallSession{}, domain.ErrEmptyRoster
	}
	entries := make([]domain.RollCallEntry, 0, len(roster))
	for _, s := range roster {
		entries = append(entries, domain.RollCallEntry{RollCallStudent: s})
	}
	m.session = &domain.RollCallSession{
		ID:        uuid.NewString(),
		ClassID:   classID,
		StartTime: m.nower.Now(),
		Students:  entries,
	}
	m.pending = nil
	return m.session.Clone(), nil
}

// Mark отмечает ученика и переходит к следующему.
// Отметка на последнем ученике завершает перекличку и возвращает запись посещаемости.
func (m *Manager) Mark(studentID string, status domain.AttendanceStatus) (domain.RollCallSession, *domain.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !status.Valid() {
		return domain.RollCallSession{}, nil, domain.ErrInvalidStatus
	}
	if m.session == nil {
		return domain.RollCallSession{}, nil, domain.ErrNoActiveSession
	}
	session := m.session
	if session.IsCompleted {
		return domain.RollCallSession{}, nil, domain.ErrSessionCompleted
	}

	idx := -1
	for i := range session.Students {
		if session.Students[i].StudentID == studentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.RollCallSession{}, nil, domain.ErrStudentNotInSession
	}

	now := m.nower.Now()
	session.Students[idx].Status = status
	session.Students[idx].Time = &now

	var record *domain.AttendanceRecord
	if session.CurrentIndex < len(session.Students)-1 {
		session.CurrentIndex++
	} else {
		record = m.complete()
	}
	return session.Clone(), record, nil
}

// complete закрывает перекличку и откладывает запись до подтверждения сохранения.
func (m *Manager) complete() *domain.AttendanceRecord {
	m.session.IsCompleted = true
	rec := buildRecord(*m.session)
	m.pending = &rec
	out := rec
	return &out
}

// Finish завершает перекличку, не освобождая слот, и возвращает несохранённую запись.
// Для уже завершённой переклички это запись, которую ещё не подтвердили через Saved.
func (m *Manager) Finish() (*domain.AttendanceRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, false
	}
	if !m.session.IsCompleted {
		return m.complete(), true
	}
	if m.pending == nil {
		return nil, true
	}
	out := *m.pending
	return &out, true
}

// Saved подтверждает, что запись recordID сохранена.
func (m *Manager) Saved(recordID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil && m.pending.ID == recordID {
		m.pending = nil
	}
}

// End освобождает слот переклички. Возвращает запись по сделанным отметкам,
// если перекличка не была завершена, или несохранённую запись завершённой.
func (m *Manager) End() (*domain.AttendanceRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, false
	}
	record := m.pending
	if !m.session.IsCompleted {
		rec := buildRecord(*m.session)
		record = &rec
	}
	m.session = nil
	m.pending = nil
	return record, true
}

// Current возвращает копию текущей переклички.
func (m *Manager) Current() (domain.RollCallSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return domain.RollCallSession{}, false
	}
	return m.session.Clone(), true
}

// CurrentStudent возвращает ученика, которого вызывают сейчас.
func (m *Manager) CurrentStudent() (domain.RollCallEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || m.session.CurrentIndex >= len(m.session.Students) {
		return domain.RollCallEntry{}, false
	}
	return m.session.Clone().Students[m.session.CurrentIndex], true
}

// Progress возвращает прогресс переклички.
func (m *Manager) Progress() domain.RollCallProgress {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return domain.RollCallProgress{}
	}
	current := m.session.CurrentIndex + 1
	total := len(m.session.Students)
	return domain.RollCallProgress{
		Current:    current,
		Total:      total,
		Percentage: percent(current, total),
	}
}

// buildRecord собирает запись посещаемости по отмеченным ученикам.
func buildRecord(session domain.RollCallSession) domain.AttendanceRecord {
	details := make([]domain.AttendanceDetail, 0, len(session.Students))
	var present, absent int
	for _, s := range session.Students {
		if s.Status == "" || s.Time == nil {
			continue
		}
		details = append(details, domain.AttendanceDetail{
			StudentID: s.StudentID,
			Status:    s.Status,
			Time:      *s.Time,
		})
		switch s.Status {
		case domain.StatusPresent:
			present++
		case domain.StatusAbsent:
			absent++
		}
	}
	total := len(session.Students)
	return domain.AttendanceRecord{
		ID:      uuid.NewString(),
		ClassID: session.ClassID,
		Date:    session.StartTime,
		Type:    domain.AttendanceFullRollCall,
		Details: details,
		Summary: domain.AttendanceSummary{
			Total:   total,
			Present: present,
			Absent:  absent,
			Rate:    percent(present, total),
		},
	}
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
