package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roll_call"

var (
	randomPicks = promauto.NewCounter(
		counterOpts("random_picks_total", "Total number of random pick draws"),
	)
	studentsPicked = promauto.NewCounter(
		counterOpts("random_picked_students_total", "Total number of students returned by random picks"),
	)
	historyCommits = promauto.NewCounter(
		counterOpts("random_history_entries_total", "Total number of selections committed to random call history"),
	)
	sessionsStarted = promauto.NewCounterVec(
		counterOpts("sessions_started_total", "Total number of started sessions by kind"),
		[]string{"kind"},
	)
	sessionsEnded = promauto.NewCounterVec(
		counterOpts("sessions_ended_total", "Total number of ended sessions by kind"),
		[]string{"kind"},
	)
	studentsImported = promauto.NewCounter(
		counterOpts("students_imported_total", "Total number of students created via spreadsheet import"),
	)
	recordsSaved = promauto.NewCounterVec(
		counterOpts("attendance_records_saved_total", "Total number of saved attendance records by type"),
		[]string{"type"},
	)
)

// Виды сессий для меток sessions_*.
const (
	SessionRollCall   = "roll_call"
	SessionRandomCall = "random_call"
)

// IncRandomPicks учитывает одну жеребьёвку и число выбранных учеников.
func IncRandomPicks(picked int) {
	randomPicks.Inc()
	if picked > 0 {
		studentsPicked.Add(float64(picked))
	}
}

// IncHistoryCommits увеличивает счётчик записей истории случайного вызова.
func IncHistoryCommits() {
	historyCommits.Inc()
}

// IncSessionsStarted увеличивает счётчик начатых сессий.
func IncSessionsStarted(kind string) {
	sessionsStarted.WithLabelValues(kind).Inc()
}

// IncSessionsEnded увеличивает счётчик завершённых сессий.
func IncSessionsEnded(kind string) {
	sessionsEnded.WithLabelValues(kind).Inc()
}

// AddStudentsImported увеличивает счётчик импортированных учеников.
func AddStudentsImported(delta int) {
	if delta <= 0 {
		return
	}
	studentsImported.Add(float64(delta))
}

// IncRecordsSaved увеличивает счётчик сохранённых записей посещаемости.
func IncRecordsSaved(recordType string) {
	recordsSaved.WithLabelValues(recordType).Inc()
}

func counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}
}
