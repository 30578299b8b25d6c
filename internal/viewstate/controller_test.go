package viewstate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/prefs"
	"tasklist/internal/service"
	"tasklist/internal/testutil"
	"tasklist/internal/viewstate"
)

var errBackend = errors.New("boom")

// loaded returns a controller whose local list mirrors svc.
func loaded(t *testing.T, svc *testutil.FakeService) *viewstate.Controller {
	t.Helper()
	c := viewstate.New(svc, testutil.NewMemPrefs())
	require.NoError(t, c.Load(context.Background()))
	return c
}

func twoTasks() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "A", false)
	svc.AddTask("2", "B", true)
	return svc
}

func TestLoad_ReplacesTasks(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)

	assert.Equal(t, svc.Tasks(), c.Tasks())
	assert.NoError(t, c.Err())
}

func TestLoad_FailureLeavesEmpty(t *testing.T) {
	svc := twoTasks()
	svc.ListErr = errBackend
	c := viewstate.New(svc, nil)

	err := c.Load(context.Background())
	require.ErrorIs(t, err, errBackend)
	assert.Empty(t, c.Tasks())
	assert.ErrorIs(t, c.Err(), errBackend)
}

func TestAdd_AppendsConfirmedTask(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	c.SetDraft("  Buy milk ")

	require.NoError(t, c.Add(context.Background(), "  Buy milk "))

	tasks := c.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "  Buy milk ", tasks[2].Title, "title is sent untrimmed")
	assert.False(t, tasks[2].Completed)
	assert.Empty(t, c.Draft())
}

func TestAdd_BlankIsNoop(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)

	for _, text := range []string{"", "   ", "\t\n"} {
		require.NoError(t, c.Add(context.Background(), text))
	}
	assert.Equal(t, 0, svc.CallCount(testutil.OpCreate))
	assert.Len(t, c.Tasks(), 2)
}

func TestAdd_NotShownBeforeConfirmation(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	svc.OnCall = func(op string) {
		if op == testutil.OpCreate {
			assert.Len(t, c.Tasks(), 2)
		}
	}

	require.NoError(t, c.Add(context.Background(), "C"))
	assert.Len(t, c.Tasks(), 3)
}

func TestAdd_FailureLeavesTasksAndDraft(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	before := c.Tasks()
	c.SetDraft("C")
	svc.CreateErr = errBackend

	require.ErrorIs(t, c.Add(context.Background(), "C"), errBackend)
	assert.Equal(t, before, c.Tasks())
	assert.Equal(t, "C", c.Draft())
}

func TestToggleComplete_ReplacesWithServerTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "A", false)
	c := loaded(t, svc)

	require.NoError(t, c.ToggleComplete(context.Background(), "1"))

	assert.Equal(t, []service.Task{{ID: "1", Title: "A", Completed: true}}, c.Tasks())
}

func TestToggleComplete_WaitsForConfirmation(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	before := c.Tasks()
	svc.OnCall = func(op string) {
		if op == testutil.OpUpdate {
			assert.Equal(t, before, c.Tasks(), "local list must not change before the store answers")
		}
	}

	require.NoError(t, c.ToggleComplete(context.Background(), "2"))
	task, ok := c.Find("2")
	require.True(t, ok)
	assert.False(t, task.Completed)
}

func TestToggleComplete_FailureLeavesState(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	before := c.Tasks()
	svc.UpdateErr = service.ErrUpdateFailed

	err := c.ToggleComplete(context.Background(), "1")
	require.ErrorIs(t, err, service.ErrUpdateFailed)
	assert.Equal(t, before, c.Tasks())
}

func TestToggleComplete_UnknownTask(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)

	err := c.ToggleComplete(context.Background(), "nope")
	require.ErrorIs(t, err, viewstate.ErrUnknownTask)
	assert.Equal(t, 0, svc.CallCount(testutil.OpUpdate))
}

func TestDelete_RemovesBeforeStoreAnswers(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	svc.OnCall = func(op string) {
		if op == testutil.OpDelete {
			_, ok := c.Find("1")
			assert.False(t, ok, "task must be gone while the delete is in flight")
		}
	}

	require.NoError(t, c.Delete(context.Background(), "1"))
	assert.Equal(t, []service.Task{{ID: "2", Title: "B", Completed: true}}, c.Tasks())
}

func TestDelete_FailureRestoresOrder(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	before := c.Tasks()
	svc.DeleteErr = errBackend

	require.ErrorIs(t, c.Delete(context.Background(), "1"), errBackend)
	assert.Equal(t, before, c.Tasks())
}

func TestDelete_FailureKeepsConcurrentChanges(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "A", false)
	svc.AddTask("2", "B", false)
	svc.AddTask("3", "C", false)
	c := loaded(t, svc)

	// While the delete of 2 is in flight, task 3 is toggled.
	svc.OnCall = func(op string) {
		if op == testutil.OpDelete {
			svc.OnCall = nil
			require.NoError(t, c.ToggleComplete(context.Background(), "3"))
			svc.DeleteErr = errBackend
		}
	}

	require.ErrorIs(t, c.Delete(context.Background(), "2"), errBackend)
	assert.Equal(t, []service.Task{
		{ID: "1", Title: "A"},
		{ID: "2", Title: "B"},
		{ID: "3", Title: "C", Completed: true},
	}, c.Tasks())
}

func TestDelete_RestoresAfterPredecessorWhenSuccessorGone(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "A", false)
	svc.AddTask("2", "B", false)
	svc.AddTask("3", "C", false)
	c := loaded(t, svc)

	svc.OnCall = func(op string) {
		if op == testutil.OpDelete && svc.CallCount(testutil.OpDelete) == 1 {
			require.NoError(t, c.Delete(context.Background(), "3"))
			svc.DeleteErr = errBackend
		}
	}

	require.ErrorIs(t, c.Delete(context.Background(), "2"), errBackend)
	assert.Equal(t, []service.ID{"1", "2"}, ids(c.Tasks()))
}

func TestDelete_UnknownTask(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)

	require.ErrorIs(t, c.Delete(context.Background(), "nope"), viewstate.ErrUnknownTask)
	assert.Equal(t, 0, svc.CallCount(testutil.OpDelete))
}

func TestEdit_SaveReplacesTitleAndClears(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)

	c.BeginEdit("1", "A")
	id, ok := c.Editing()
	require.True(t, ok)
	assert.Equal(t, service.ID("1"), id)
	assert.Equal(t, "A", c.EditText())

	c.SetEditText("A2")
	svc.OnCall = func(op string) {
		assert.True(t, c.IsSaving(), "saving flag must be set during the call")
	}
	require.NoError(t, c.SaveEdit(context.Background()))

	task, _ := c.Find("1")
	assert.Equal(t, "A2", task.Title)
	_, ok = c.Editing()
	assert.False(t, ok)
	assert.Empty(t, c.EditText())
	assert.False(t, c.IsSaving())
}

func TestEdit_SaveFailureKeepsEdit(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	before := c.Tasks()
	svc.UpdateErr = service.ErrUpdateFailed

	c.BeginEdit("1", "A")
	c.SetEditText("A2")
	require.ErrorIs(t, c.SaveEdit(context.Background()), service.ErrUpdateFailed)

	id, ok := c.Editing()
	assert.True(t, ok)
	assert.Equal(t, service.ID("1"), id)
	assert.Equal(t, "A2", c.EditText())
	assert.Equal(t, before, c.Tasks())
	assert.False(t, c.IsSaving(), "saving flag is released on failure")
}

func TestEdit_BlankSaveIsNoop(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	before := c.Tasks()

	c.BeginEdit("1", "A")
	c.SetEditText("   ")
	require.NoError(t, c.SaveEdit(context.Background()))

	assert.Equal(t, 0, svc.CallCount(testutil.OpUpdate))
	id, ok := c.Editing()
	assert.True(t, ok)
	assert.Equal(t, service.ID("1"), id)
	assert.Equal(t, before, c.Tasks())
}

func TestEdit_SaveWithoutEditIsNoop(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)

	require.NoError(t, c.SaveEdit(context.Background()))
	assert.Equal(t, 0, svc.CallCount(testutil.OpUpdate))
}

func TestEdit_Cancel(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)

	c.BeginEdit("2", "B")
	c.CancelEdit()
	_, ok := c.Editing()
	assert.False(t, ok)
	assert.Equal(t, 1, svc.TotalCalls(), "only the initial load reached the store")
}

func TestRows_TagsEditedTask(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	c.BeginEdit("2", "B")
	c.SetEditText("B!")

	rows := c.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, viewstate.Viewing{Task: service.Task{ID: "1", Title: "A"}}, rows[0])
	assert.Equal(t, viewstate.Editing{Task: service.Task{ID: "2", Title: "B", Completed: true}, Buffer: "B!"}, rows[1])
}

func TestSetFilter_LocalAndIdempotent(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	calls := svc.TotalCalls()

	require.NoError(t, c.SetFilter(viewstate.Completed))
	once := c.VisibleTasks()
	require.NoError(t, c.SetFilter(viewstate.Completed))
	assert.Equal(t, once, c.VisibleTasks())
	assert.Equal(t, calls, svc.TotalCalls())
	assert.Equal(t, viewstate.Completed, c.Filter())
}

func TestSetFilter_RejectsUnknown(t *testing.T) {
	c := viewstate.New(testutil.NewFakeService(), nil)

	assert.Error(t, c.SetFilter(viewstate.Filter(9)))
	assert.Equal(t, viewstate.All, c.Filter())
}

func TestVisibleTasks_FollowsMutations(t *testing.T) {
	svc := twoTasks()
	c := loaded(t, svc)
	require.NoError(t, c.SetFilter(viewstate.Pending))
	assert.Equal(t, []service.ID{"1"}, ids(c.VisibleTasks()))

	require.NoError(t, c.ToggleComplete(context.Background(), "1"))
	assert.Empty(t, c.VisibleTasks())
}

func TestCounts(t *testing.T) {
	c := loaded(t, twoTasks())

	assert.Equal(t, viewstate.Counts{All: 2, Completed: 1, Pending: 1}, c.Counts())
}

func TestDarkMode_ReadAtStartupAndPersisted(t *testing.T) {
	store := testutil.NewMemPrefs()
	require.NoError(t, prefs.SaveDarkMode(store, true))

	var applied []bool
	c := viewstate.New(testutil.NewFakeService(), store,
		viewstate.WithThemeHook(func(dark bool) { applied = append(applied, dark) }))
	assert.True(t, c.DarkMode())

	require.NoError(t, c.ToggleDarkMode())
	assert.False(t, c.DarkMode())
	stored, err := prefs.LoadDarkMode(store)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.Equal(t, []bool{true, false}, applied)
}

func TestDarkMode_DefaultsToFalse(t *testing.T) {
	svc := testutil.NewFakeService()
	c := viewstate.New(svc, testutil.NewMemPrefs())

	assert.False(t, c.DarkMode())
	assert.Equal(t, 0, svc.TotalCalls())
}

func TestDarkMode_PersistFailureReported(t *testing.T) {
	store := testutil.NewMemPrefs()
	store.SetErr = errBackend
	c := viewstate.New(testutil.NewFakeService(), store)

	require.ErrorIs(t, c.ToggleDarkMode(), errBackend)
	assert.True(t, c.DarkMode())
}

func ids(tasks []service.Task) []service.ID {
	out := make([]service.ID, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
