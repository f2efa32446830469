package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/ejournal/internal/api"
	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/editor"
	"github.com/alexanderramin/ejournal/internal/persist"
	"github.com/alexanderramin/ejournal/internal/preferences"
	"github.com/alexanderramin/ejournal/internal/store"
	"github.com/alexanderramin/ejournal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// confirmRecorder answers every discard question with answer and keeps the
// lines it was shown.
type confirmRecorder struct {
	answer bool
	asked  [][]string
}

func (r *confirmRecorder) Confirm(_ context.Context, _ string, lines []string) (bool, error) {
	r.asked = append(r.asked, lines)
	return r.answer, nil
}

type testEnv struct {
	app     *App
	ft      *testutil.FakeTransport
	confirm *confirmRecorder
}

// testApp wires a full App over a fake transport and an in-memory DB, with
// assignment 7 holding one category, one template and one deadline.
func testApp(t *testing.T) testEnv {
	t.Helper()
	ft := testutil.NewFakeTransport()
	tmpl := testutil.NewTestTemplate(3, "Log")
	skill := testutil.NewTestCategory(5, "Skill", testutil.WithLinkedTemplates(tmpl))
	tmpl = testutil.NewTestTemplate(3, "Log", testutil.WithLinkedCategories(skill))
	ft.Respond("GET", "assignments/7", "assignment", testutil.NewTestAssignment(7, "Portfolio"))
	ft.Respond("GET", "categories", "categories", []domain.Category{skill})
	ft.Respond("GET", "templates", "templates", []domain.Template{tmpl})
	ft.Respond("GET", "preset_nodes", "presets", []domain.PresetNode{testutil.NewTestDeadline(9, "2021-10-01T12:00:00", &tmpl)})
	ft.Respond("GET", "rubrics", "rubrics", []domain.Rubric{testutil.NewTestRubric(2, "Main")})
	ft.Respond("PATCH", "preferences/4", "preferences", map[string]any{})

	client := api.New(ft)
	st := store.New(client)
	confirm := &confirmRecorder{}
	prefs := preferences.New(client.Preferences)
	prefs.SetUser(4)

	app := &App{
		Store:       st,
		Editor:      editor.New(st, editor.WithConfirmer(confirm)),
		Preferences: prefs,
		Persist:     persist.New(testutil.NewTestUoW(testutil.NewTestDB(t))),
		User:        &domain.User{ID: 4, Username: "tutor"},
		Now:         func() time.Time { return time.Date(2021, 9, 28, 12, 0, 0, 0, time.UTC) },
	}
	return testEnv{app: app, ft: ft, confirm: confirm}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestAssignmentRequired(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "category", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--assignment")
}

func TestAssignmentShow(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "assignment", "show", "-a", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Portfolio (2021 - 2022)")
	assert.Contains(t, out, "1 categories, 1 templates, 1 preset nodes, 1 rubrics")
}

func TestAssignmentExport_YAML(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "assignment", "export", "-a", "7", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Portfolio")
	assert.Contains(t, out, "preset_nodes:")
}

func TestAssignmentExport_RejectsUnknownFormat(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "assignment", "export", "-a", "7", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json, yaml")
}

func TestAssignmentUpdate(t *testing.T) {
	env := testApp(t)
	renamed := testutil.NewTestAssignment(7, "Portfolio 2")
	env.ft.Respond("PATCH", "assignments/7", "assignment", renamed)

	out, err := executeCmd(t, env.app, "assignment", "update", "-a", "7", "--name", "Portfolio 2", "--course", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated assignment Portfolio 2")

	call, ok := env.ft.LastCall("PATCH", "assignments/7")
	require.True(t, ok)
	assert.Equal(t, "Portfolio 2", call.Body["name"])
}

func TestCategoryList(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "category", "list", "-a", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Skill")
	assert.Contains(t, out, "Log")
}

func TestCategoryCreate(t *testing.T) {
	env := testApp(t)
	created := testutil.NewTestCategory(42, "Craft", testutil.WithLinkedTemplates(testutil.NewTestTemplate(3, "Log")))
	env.ft.Respond("POST", "categories", "category", created)

	out, err := executeCmd(t, env.app, "category", "create", "-a", "7", "--name", "Craft", "--template", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Created category Craft (42)")

	call, _ := env.ft.LastCall("POST", "categories")
	assert.Equal(t, []any{float64(3)}, call.Body["templates"])
	assert.Equal(t, float64(7), call.Body["assignment_id"])

	tmpl, ok := env.app.Store.Templates.Find(7, 3)
	require.True(t, ok)
	assert.True(t, tmpl.LinksCategory(42))
}

func TestCategoryCreate_UnknownTemplate(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "category", "create", "-a", "7", "--name", "Craft", "--template", "99")
	assert.ErrorIs(t, err, editor.ErrUnknownEntity)
	assert.Equal(t, 0, env.ft.CallCount("POST", "categories"))
}

func TestCategoryUpdate_ReviewKeepSaves(t *testing.T) {
	env := testApp(t)
	env.confirm.answer = false
	env.ft.Respond("PATCH", "categories/5", "category", testutil.NewTestCategory(5, "Craft"))

	out, err := executeCmd(t, env.app, "category", "update", "5", "-a", "7", "--name", "Craft", "--unlink-template", "3", "--review")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated category Craft")

	require.Len(t, env.confirm.asked, 1)
	assert.Equal(t, []string{`category "Craft" has unsaved changes`}, env.confirm.asked[0])

	call, _ := env.ft.LastCall("PATCH", "categories/5")
	assert.Equal(t, []any{}, call.Body["templates"])
	tmpl, _ := env.app.Store.Templates.Find(7, 3)
	assert.False(t, tmpl.LinksCategory(5))
}

func TestCategoryUpdate_ReviewDiscard(t *testing.T) {
	env := testApp(t)
	env.confirm.answer = true

	out, err := executeCmd(t, env.app, "category", "update", "5", "-a", "7", "--name", "Craft", "--review")
	require.NoError(t, err)
	assert.Contains(t, out, "Changes discarded.")
	assert.Equal(t, 0, env.ft.CallCount("PATCH", "categories/5"))
	assert.False(t, env.app.Editor.Dirty())
}

func TestCategoryUpdate_NoChanges(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "category", "update", "5", "-a", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to save.")
	assert.Empty(t, env.confirm.asked)
}

func TestCategoryDelete(t *testing.T) {
	env := testApp(t)
	env.ft.Respond("DELETE", "categories/5", "description", "Successfully deleted Skill.")
	env.app.Store.Timeline.SetFilteredCategories(5)

	out, err := executeCmd(t, env.app, "category", "delete", "5", "-a", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully deleted Skill.")
	assert.Empty(t, env.app.Store.Categories.Collection(7))
	assert.Empty(t, env.app.Store.Timeline.FilteredCategories())
}

func TestCategoryEntry(t *testing.T) {
	env := testApp(t)
	env.ft.Respond("PATCH", "categories/5/edit_entry", "description", "ok")

	out, err := executeCmd(t, env.app, "category", "entry", "5", "--entry", "11", "--remove")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed category 5 on entry 11")

	call, _ := env.ft.LastCall("PATCH", "categories/5/edit_entry")
	assert.Equal(t, false, call.Body["add"])
}

func TestTemplateImport(t *testing.T) {
	env := testApp(t)
	env.ft.Respond("POST", "templates", "template", testutil.NewTestTemplate(8, "Log"))

	out, err := executeCmd(t, env.app, "template", "import", "3", "-a", "7", "--from", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Created template Log (8)")

	call, _ := env.ft.LastCall("POST", "templates")
	assert.Equal(t, true, call.Body["template_import"])
}

func TestTemplateUpdate_RefreshesDeadline(t *testing.T) {
	env := testApp(t)
	env.ft.Respond("PATCH", "templates/3", "template", testutil.NewTestTemplate(3, "Weekly log"))

	_, err := executeCmd(t, env.app, "template", "update", "3", "-a", "7", "--name", "Weekly log")
	require.NoError(t, err)

	node, ok := env.app.Store.PresetNodes.Find(7, 9)
	require.True(t, ok)
	require.NotNil(t, node.Template)
	assert.Equal(t, "Weekly log", node.Template.Name)
}

func TestPresetCreate_Progress(t *testing.T) {
	env := testApp(t)
	env.ft.Respond("POST", "preset_nodes", "preset", testutil.NewTestProgressNode(12, "2021-12-01T12:00", 10))

	out, err := executeCmd(t, env.app, "preset", "create", "-a", "7", "--type", "progress", "--due", "2021-12-01T12:00", "--target", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	call, _ := env.ft.LastCall("POST", "preset_nodes")
	assert.Equal(t, "p", call.Body["type"])
	assert.Equal(t, float64(10), call.Body["target"])
	assert.Len(t, env.app.Store.PresetNodes.Collection(7), 2)
}

func TestRubricList(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "rubric", "list", "-a", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Main")
}

func TestTimelineFilter(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "timeline", "-a", "7", "--category", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Filtered by: Skill")
	assert.Equal(t, []int{5}, env.app.Store.Timeline.FilteredCategories())
	assert.Equal(t, editor.ComponentTimeline, env.app.Editor.ActiveComponent())
}

func TestPrefsSet(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "prefs", "set", "journal.sort_by", "points")
	require.NoError(t, err)
	assert.Equal(t, "points", env.app.Preferences.Journal().SortBy)

	_, err = executeCmd(t, env.app, "prefs", "set", "journal.sort_by", "shoeSize")
	assert.ErrorIs(t, err, preferences.ErrInvalidOption)
	assert.Equal(t, "points", env.app.Preferences.Journal().SortBy)
}

func TestPrefsChange_TypesScalars(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "prefs", "change", "show_format_tutorial", "false")
	require.NoError(t, err)

	call, ok := env.ft.LastCall("PATCH", "preferences/4")
	require.True(t, ok)
	assert.Equal(t, false, call.Body["show_format_tutorial"])
}

func TestPrefsHidePastDeadlines(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "prefs", "hide-past-deadlines", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "are hidden")
	assert.True(t, env.app.Preferences.HidePastDeadlines(7))
}

func TestPostRunPersistsState(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "category", "list", "-a", "7")
	require.NoError(t, err)

	s, err := env.app.Persist.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s.Content)
	assert.Len(t, s.Content.Categories[7], 1)
	require.NotNil(t, s.User)
	assert.Equal(t, 4, s.User.ID)
	require.NotNil(t, s.Preferences)
}

func TestNewConfirmer_NonInteractiveKeepsChanges(t *testing.T) {
	buf := new(bytes.Buffer)
	c := NewConfirmer(func() bool { return false }, buf)

	ok, err := c.Confirm(context.Background(), "Discard unsaved changes?", []string{`category "Skill" has unsaved changes`})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), `category "Skill" has unsaved changes`)
}
