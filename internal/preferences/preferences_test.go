package preferences

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alexanderramin/ejournal/internal/api"
	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/testutil"
	"github.com/alexanderramin/ejournal/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newPrefs(t *testing.T) (*Preferences, *testutil.FakeTransport) {
	t.Helper()
	ft := testutil.NewFakeTransport()
	ft.Respond("PATCH", "preferences/4", "preferences", map[string]any{})
	p := New(api.New(ft).Preferences)
	p.SetUser(4)
	return p, ft
}

func TestDefaults(t *testing.T) {
	p, _ := newPrefs(t)

	assert.Equal(t, TodoView{SortBy: "date", FilterOwnGroups: true}, p.Todo())
	j := p.Journal()
	assert.Nil(t, j.AID)
	assert.True(t, j.SortAscending)
	assert.Equal(t, "markingNeeded", j.SortBy)
	assert.Equal(t, "name", p.CourseMembers().SortBy)
	assert.True(t, p.CourseMembers().ViewEnrolled)
	assert.Equal(t, "name", p.AssignmentOverview().SortBy)
	assert.Equal(t, "AIG", p.JournalImportRequestButtonSetting())
	assert.Empty(t, p.DismissedJIRs())
}

func TestSortSetters_RejectUnknownOption(t *testing.T) {
	p, _ := newPrefs(t)

	err := p.SetJournalSortBy("shoeSize")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOption)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "shoeSize", verr.Value)
	assert.Equal(t, "markingNeeded", p.Journal().SortBy)

	assert.ErrorIs(t, p.SetTodoSortBy("points"), ErrInvalidOption)
	assert.ErrorIs(t, p.SetCourseMembersSortBy("date"), ErrInvalidOption)
	assert.ErrorIs(t, p.SetAssignmentOverviewSortBy("username"), ErrInvalidOption)

	require.NoError(t, p.SetJournalSortBy("points"))
	assert.Equal(t, "points", p.Journal().SortBy)
}

func TestSwitchJournalAssignment_ResetsFiltersOnChange(t *testing.T) {
	p, _ := newPrefs(t)
	p.SwitchJournalAssignment(1)
	group := 3
	p.SetJournalGroupFilter(&group)
	p.SetJournalSearchValue("alice")
	require.NoError(t, p.SetJournalSortBy("name"))

	p.SwitchJournalAssignment(1)
	assert.Equal(t, "alice", p.Journal().SearchValue)

	p.SwitchJournalAssignment(2)
	j := p.Journal()
	require.NotNil(t, j.AID)
	assert.Equal(t, 2, *j.AID)
	assert.Nil(t, j.GroupFilter)
	assert.Empty(t, j.SearchValue)
	assert.Equal(t, "markingNeeded", j.SortBy)
}

func TestChange_AppliesOnlyKnownKeys(t *testing.T) {
	p, ft := newPrefs(t)
	require.NoError(t, p.Hydrate(domain.Preferences{ShowFormatTutorial: true}))

	p.Change(context.Background(), map[string]any{"show_format_tutorial": false, "made_up": 1})
	p.Flush()

	saved, err := p.Saved()
	require.NoError(t, err)
	assert.False(t, saved.ShowFormatTutorial)
	_, present := p.Snapshot().Saved["made_up"]
	assert.False(t, present)

	call, ok := ft.LastCall("PATCH", "preferences/4")
	require.True(t, ok)
	assert.Equal(t, false, call.Body["show_format_tutorial"])
	assert.Equal(t, float64(1), call.Body["made_up"])
}

func TestChange_FailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ft := testutil.NewFakeTransport()
	ft.Fail("PATCH", "preferences/4", &transport.StatusError{Status: http.StatusBadRequest})
	p := New(api.New(ft).Preferences, WithLogger(zap.New(core)))
	p.SetUser(4)
	require.NoError(t, p.Hydrate(domain.Preferences{}))

	p.Change(context.Background(), map[string]any{"auto_proceed_next_journal": true})
	p.Flush()

	saved, err := p.Saved()
	require.NoError(t, err)
	assert.True(t, saved.AutoProceedNextJournal)
	assert.Equal(t, 1, logs.FilterMessage("preferences update failed").Len())
}

func TestChange_SurvivesCanceledContext(t *testing.T) {
	p, ft := newPrefs(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p.Change(ctx, map[string]any{"show_format_tutorial": true})
	p.Flush()
	assert.Equal(t, 1, ft.CallCount("PATCH", "preferences/4"))
}

func TestSetHidePastDeadlines(t *testing.T) {
	p, ft := newPrefs(t)
	require.NoError(t, p.Hydrate(domain.Preferences{HidePastDeadlinesOfAssignments: []int{1}}))
	ctx := context.Background()

	p.SetHidePastDeadlines(ctx, 7, true)
	p.Flush()
	assert.True(t, p.HidePastDeadlines(7))
	assert.True(t, p.HidePastDeadlines(1))
	call, _ := ft.LastCall("PATCH", "preferences/4")
	assert.Equal(t, []any{float64(1), float64(7)}, call.Body["hide_past_deadlines_of_assignments"])

	p.SetHidePastDeadlines(ctx, 7, true)
	p.SetHidePastDeadlines(ctx, 1, false)
	p.Flush()
	saved, err := p.Saved()
	require.NoError(t, err)
	assert.Equal(t, []int{7}, saved.HidePastDeadlinesOfAssignments)
}

func TestReset(t *testing.T) {
	p, _ := newPrefs(t)
	require.NoError(t, p.Hydrate(domain.Preferences{ShowFormatTutorial: true}))
	require.NoError(t, p.SetTodoSortBy("markingNeeded"))
	p.AddDismissedJIRs(3)

	p.Reset()
	assert.Equal(t, DefaultState(), p.Snapshot())
}

func TestSnapshotRestore_Independent(t *testing.T) {
	p, _ := newPrefs(t)
	p.SwitchJournalAssignment(5)
	p.AddDismissedJIRs(1, 2)

	snap := p.Snapshot()
	*snap.Journal.AID = 99
	snap.DismissedJIRs[0] = 42
	assert.Equal(t, 5, *p.Journal().AID)
	assert.Equal(t, []int{1, 2}, p.DismissedJIRs())

	q, _ := newPrefs(t)
	q.Restore(p.Snapshot())
	assert.Equal(t, p.Snapshot(), q.Snapshot())
}

func TestSetFilter(t *testing.T) {
	p, _ := newPrefs(t)

	require.NoError(t, p.SetFilter("journal.group", "3"))
	j := p.Journal()
	require.NotNil(t, j.GroupFilter)
	assert.Equal(t, 3, *j.GroupFilter)
	assert.True(t, j.SelfSetGroupFilter)

	require.NoError(t, p.SetFilter("journal.group", ""))
	assert.Nil(t, p.Journal().GroupFilter)

	require.NoError(t, p.SetFilter("course_members.view_enrolled", "false"))
	assert.False(t, p.CourseMembers().ViewEnrolled)

	assert.ErrorIs(t, p.SetFilter("todo.sort_by", "nope"), ErrInvalidOption)
	assert.ErrorIs(t, p.SetFilter("todo.filter_own_groups", "maybe"), ErrInvalidOption)
	assert.ErrorIs(t, p.SetFilter("unknown", "x"), ErrInvalidOption)
}
