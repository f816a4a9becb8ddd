package domain

import "time"

// Gender пол ученика в терминах исходного ростера.
type Gender string

const (
	GenderMale   Gender = "男"
	GenderFemale Gender = "女"
)

// AttendanceStatus отметка ученика.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "已到"
	StatusAbsent  AttendanceStatus = "未到"
)

// Valid проверяет, что статус один из поддерживаемых.
func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// AttendanceType режим, которым была получена запись посещаемости.
type AttendanceType string

const (
	AttendanceFullRollCall AttendanceType = "全员点名"
	AttendanceRandomCall   AttendanceType = "随机点名"
)

// Class описывает учебный класс.
type Class struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Grade        string    `json:"grade"`
	Note         string    `json:"note,omitempty"`
	StudentCount int       `json:"student_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClassPatch частичное обновление класса.
type ClassPatch struct {
	Name  *string `json:"name,omitempty"`
	Grade *string `json:"grade,omitempty"`
	Note  *string `json:"note,omitempty"`
}

// Student ученик класса. Удаление мягкое: IsDeleted.
type Student struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	StudentNo string    `json:"student_no"`
	Name      string    `json:"name"`
	Gender    Gender    `json:"gender"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	IsDeleted bool      `json:"is_deleted"`
}

// StudentInput данные для создания ученика (форма или строка импорта).
type StudentInput struct {
	StudentNo string `json:"student_no"`
	Name      string `json:"name"`
	Gender    Gender `json:"gender"`
	Avatar    string `json:"avatar,omitempty"`
}

// StudentPatch частичное обновление ученика.
type StudentPatch struct {
	StudentNo *string `json:"student_no,omitempty"`
	Name      *string `json:"name,omitempty"`
	Gender    *Gender `json:"gender,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// ImportResult итог пакетного импорта.
type ImportResult struct {
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}

// RollCallStudent неизменяемый снимок ученика на момент старта сессии.
// Правки ученика после старта не меняют историю.
type RollCallStudent struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	StudentNo string `json:"student_no"`
	Avatar    string `json:"avatar,omitempty"`
}

// SnapshotRoster снимает копии учеников для новой сессии.
func SnapshotRoster(students []Student) []RollCallStudent {
	out := make([]RollCallStudent, 0, len(students))
	for _, s := range students {
		out = append(out, RollCallStudent{
			StudentID: s.ID,
			Name:      s.Name,
			StudentNo: s.StudentNo,
			Avatar:    s.Avatar,
		})
	}
	return out
}

// RandomCallSettings настройки случайного вызова.
type RandomCallSettings struct {
	PickCount       int  `json:"pick_count"`
	ExcludeSelected bool `json:"exclude_selected"`
	EnableSound     bool `json:"enable_sound"`
}

// DefaultRandomCallSettings значения по умолчанию.
func DefaultRandomCallSettings() RandomCallSettings {
	return RandomCallSettings{PickCount: 1, ExcludeSelected: false, EnableSound: true}
}

// SettingsPatch частичное обновление настроек: nil-поля не меняются.
type SettingsPatch struct {
	PickCount       *int  `json:"pick_count,omitempty"`
	ExcludeSelected *bool `json:"exclude_selected,omitempty"`
	EnableSound     *bool `json:"enable_sound,omitempty"`
}

// Apply возвращает настройки с применённым патчем.
func (s RandomCallSettings) Apply(p SettingsPatch) RandomCallSettings {
	if p.PickCount != nil {
		s.PickCount = *p.PickCount
	}
	if p.ExcludeSelected != nil {
		s.ExcludeSelected = *p.ExcludeSelected
	}
	if p.EnableSound != nil {
		s.EnableSound = *p.EnableSound
	}
	return s
}

// HistoryEntry зафиксированный результат одного выбора.
type HistoryEntry struct {
	ID               string            `json:"id"`
	Time             time.Time         `json:"time"`
	SelectedStudents []RollCallStudent `json:"selected_students"`
}

// RandomCallSession сессия случайного вызова.
type RandomCallSession struct {
	ID          string             `json:"id"`
	ClassID     string             `json:"class_id"`
	StartTime   time.Time          `json:"start_time"`
	Settings    RandomCallSettings `json:"settings"`
	IsCompleted bool               `json:"is_completed"`
	Students    []RollCallStudent  `json:"students"`
	History     []HistoryEntry     `json:"history"`
}

// Clone возвращает глубокую копию сессии: наблюдатели не могут изменить оригинал.
func (s RandomCallSession) Clone() RandomCallSession {
	s.Students = append([]RollCallStudent{}, s.Students...)
	history := make([]HistoryEntry, len(s.History))
	for i, h := range s.History {
		h.SelectedStudents = append([]RollCallStudent{}, h.SelectedStudents...)
		history[i] = h
	}
	s.History = history
	return s
}

// RollCallEntry ученик в последовательной перекличке с отметкой.
type RollCallEntry struct {
	RollCallStudent
	Status AttendanceStatus `json:"status,omitempty"`
	Time   *time.Time       `json:"time,omitempty"`
}

// RollCallSession последовательная перекличка.
type RollCallSession struct {
	ID           string          `json:"id"`
	ClassID      string          `json:"class_id"`
	StartTime    time.Time       `json:"start_time"`
	CurrentIndex int             `json:"current_index"`
	IsCompleted  bool            `json:"is_completed"`
	Students     []RollCallEntry `json:"students"`
}

// Clone возвращает глубокую копию переклички.
func (s RollCallSession) Clone() RollCallSession {
	students := make([]RollCallEntry, len(s.Students))
	for i, e := range s.Students {
		if e.Time != nil {
			t := *e.Time
			e.Time = &t
		}
		students[i] = e
	}
	s.Students = students
	return s
}

// RollCallProgress прогресс переклички.
type RollCallProgress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// AttendanceDetail отметка одного ученика в записи.
type AttendanceDetail struct {
	StudentID string           `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
	Time      time.Time        `json:"time"`
}

// AttendanceSummary агрегаты записи.
type AttendanceSummary struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Rate    int `json:"rate"`
}

// AttendanceRecord сохранённый результат переклички.
type AttendanceRecord struct {
	ID      string             `json:"id"`
	ClassID string             `json:"class_id"`
	Date    time.Time          `json:"date"`
	Type    AttendanceType     `json:"type"`
	Details []AttendanceDetail `json:"details"`
	Summary AttendanceSummary  `json:"summary"`
}

// RecordFilter отбор записей посещаемости. Пустые поля не ограничивают выборку,
// границы дат включительные.
type RecordFilter struct {
	ClassID string
	From    *time.Time
	To      *time.Time
}
