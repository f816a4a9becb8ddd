package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRandomPickCounters(t *testing.T) {
	beforePicks := testutil.ToFloat64(randomPicks)
	beforeStudents := testutil.ToFloat64(studentsPicked)

	IncRandomPicks(3)
	IncRandomPicks(0)

	require.Equal(t, beforePicks+2, testutil.ToFloat64(randomPicks))
	require.Equal(t, beforeStudents+3, testutil.ToFloat64(studentsPicked))

	beforeHistory := testutil.ToFloat64(historyCommits)
	IncHistoryCommits()
	require.Equal(t, beforeHistory+1, testutil.ToFloat64(historyCommits))
}

func TestSessionCountersByKind(t *testing.T) {
	started := sessionsStarted.WithLabelValues(SessionRandomCall)
	ended := sessionsEnded.WithLabelValues(SessionRollCall)
	beforeStarted := testutil.ToFloat64(started)
	beforeEnded := testutil.ToFloat64(ended)

	IncSessionsStarted(SessionRandomCall)
	IncSessionsEnded(SessionRollCall)

	require.Equal(t, beforeStarted+1, testutil.ToFloat64(started))
	require.Equal(t, beforeEnded+1, testutil.ToFloat64(ended))
}

func TestAddStudentsImportedIgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(studentsImported)
	AddStudentsImported(-1)
	AddStudentsImported(0)
	require.Equal(t, before, testutil.ToFloat64(studentsImported))
	AddStudentsImported(2)
	require.Equal(t, before+2, testutil.ToFloat64(studentsImported))
}

func TestIncRecordsSaved(t *testing.T) {
	counter := recordsSaved.WithLabelValues("随机点名")
	before := testutil.ToFloat64(counter)
	IncRecordsSaved("随机点名")
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}
