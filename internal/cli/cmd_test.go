package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/repository"
	"github.com/alexanderramin/focustrack/internal/service"
	"github.com/alexanderramin/focustrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// monday09 is 2024-01-08 09:00 UTC, a Monday.
var monday09 = time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	app   *App
	dir   string
	clock *testutil.FakeClock
}

// testApp wires file-backed services in a temp dir with alice registered.
func testApp(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	clock := testutil.NewFakeClock(monday09)
	cal := calendar.New(time.UTC, clock)
	log := repository.NewFileSessionLog(dir)

	app := &App{
		Users:    service.NewUserService(repository.NewFileUserRepo(dir), service.BcryptHasher{Cost: bcrypt.MinCost}),
		Sessions: service.NewSessionService(log, cal, service.SessionOptions{}),
		Stats:    service.NewStatsService(log, repository.NewCSVReportWriter(dir), cal),
		Calendar: cal,
	}
	_, err := app.Users.Register(context.Background(), testutil.TestIdentity.Username, "secret")
	require.NoError(t, err)

	return &testEnv{app: app, dir: dir, clock: clock}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, context.Background(), app, strings.NewReader(""), args...)
}

func executeCmdWithInput(t *testing.T, ctx context.Context, app *App, in io.Reader, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(in)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return stripANSI(buf.String()), err
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// advancingReader moves the clock forward before yielding its content, like
// a user pressing ENTER some time after starting.
type advancingReader struct {
	clock *testutil.FakeClock
	after time.Duration
	r     io.Reader
	moved bool
}

func (a *advancingReader) Read(p []byte) (int, error) {
	if !a.moved {
		a.clock.Advance(a.after)
		a.moved = true
	}
	return a.r.Read(p)
}

// --- User resolution ---

func TestResolveIdentity(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "today")
	assert.ErrorIs(t, err, errNoUser)

	_, err = executeCmd(t, env.app, "today", "--user", "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	env.app.DefaultUser = "alice"
	out, err := executeCmd(t, env.app, "today")
	require.NoError(t, err)
	assert.Contains(t, out, "ALICE'S FOCUS")
}

func TestRegisterCmd_PasswordStdin(t *testing.T) {
	env := testApp(t)

	out, err := executeCmdWithInput(t, context.Background(), env.app, strings.NewReader("hunter2\n"),
		"register", "--user", "bob", "--password-stdin")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered bob.")

	id, err := env.app.Users.Authenticate(context.Background(), "bob", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "bob", id.Username)

	_, err = executeCmdWithInput(t, context.Background(), env.app, strings.NewReader("x\n"),
		"register", "--user", "bob", "--password-stdin")
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestRegisterCmd_NonInteractiveNeedsStdin(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "register", "--user", "bob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password-stdin")
}

// --- Log / sessions ---

func TestLogCmd_EndsNow(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "log", "--user", "alice", "--category", "Study", "--minutes", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Category: Study, Duration: 30 minutes, Start Time: 2024-01-08 08:30:00")

	out, err = executeCmd(t, env.app, "sessions", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Study")
	assert.Contains(t, out, "1 session, 30m total")
}

func TestLogCmd_AtFlag(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "log", "-u", "alice", "-c", "Reading", "-m", "45", "--at", "2024-01-07 20:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Start Time: 2024-01-07 20:00:00")
}

func TestLogCmd_Validation(t *testing.T) {
	env := testApp(t)

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"zero minutes", []string{"--category", "Study", "--minutes", "0"}, nil},
		{"bad at", []string{"--category", "Study", "--minutes", "10", "--at", "yesterday"}, nil},
		{"comma category", []string{"--category", "Deep,Work", "--minutes", "10"}, repository.ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"log", "--user", "alice"}, tt.args...)
			_, err := executeCmd(t, env.app, args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}

	out, err := executeCmd(t, env.app, "sessions", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "No focus sessions logged yet.")
}

// --- Manual session ---

func TestStartCmd_EnterEndsSession(t *testing.T) {
	env := testApp(t)
	in := &advancingReader{clock: env.clock, after: 25 * time.Minute, r: strings.NewReader("\n")}

	out, err := executeCmdWithInput(t, context.Background(), env.app, in, "start", "--user", "alice", "--category", "Work")
	require.NoError(t, err)
	assert.Contains(t, out, "Session started at 09:00:00. Category: Work")
	assert.Contains(t, out, "Session ended. Summary:")
	assert.Contains(t, out, "Category: Work, Duration: 25 minutes, Start Time: 2024-01-08 09:00:00")
}

func TestStartCmd_CancelAbandonsSession(t *testing.T) {
	env := testApp(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := executeCmdWithInput(t, ctx, env.app, pr, "start", "--user", "alice", "--category", "Work")
	require.NoError(t, err)
	assert.Contains(t, out, "Session abandoned")

	result, err := env.app.Sessions.List(context.Background(), testutil.TestIdentity)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestStartCmd_RequiresCategoryWhenNotInteractive(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "start", "--user", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--category")
}

// --- Pomodoro ---

func TestPomodoroCmd_PlainOutput(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "pomodoro", "--user", "alice", "--category", "Study",
		"--focus", "2m", "--break", "1m", "--cycles", "2")
	require.NoError(t, err)

	for _, want := range []string{
		"--- Cycle 1/2 ---",
		"Focus Time! Category: Study",
		"Time remaining: 02:00",
		"Focus time ended!",
		"Break Time!",
		"Break time ended!",
		"--- Cycle 2/2 ---",
		"Pomodoro session completed!",
		"2/2 cycles of Study",
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 1, strings.Count(out, "Break Time!"), "no break after the last cycle")

	result, err := env.app.Sessions.List(context.Background(), testutil.TestIdentity)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, 2, result.Records[0].DurationMinutes)
	assert.Equal(t, monday09.Add(3*time.Minute), result.Records[1].Start)
}

func TestPomodoroCmd_InvalidPlan(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "pomodoro", "--user", "alice", "--category", "Study", "--cycles", "0")
	assert.ErrorIs(t, err, service.ErrInvalidPlan)

	_, err = executeCmd(t, env.app, "pomodoro", "--user", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--category")
}

// --- Stats ---

func TestTodayCmd(t *testing.T) {
	env := testApp(t)
	_, err := executeCmd(t, env.app, "log", "--user", "alice", "--category", "Study", "--minutes", "30")
	require.NoError(t, err)
	_, err = executeCmd(t, env.app, "log", "--user", "alice", "--category", "Art", "--minutes", "15")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "today", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Study")
	assert.Contains(t, out, "Art")
	assert.Contains(t, out, "Total: 45 minutes")
	assert.Less(t, strings.Index(out, "Art"), strings.Index(out, "Study"), "categories sorted")

	out, err = executeCmd(t, env.app, "today", "--user", "alice", "--date", "2024-01-07")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded on Sun 2024-01-07.")

	_, err = executeCmd(t, env.app, "today", "--user", "alice", "--date", "01/07/2024")
	assert.Error(t, err)
}

func TestReportCmd_WritesSnapshot(t *testing.T) {
	env := testApp(t)
	_, err := executeCmd(t, env.app, "log", "--user", "alice", "--category", "Study", "--minutes", "30")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "report", "--user", "alice")
	require.NoError(t, err)

	path := filepath.Join(env.dir, "weekly_report_alice.csv")
	assert.Contains(t, out, "Weekly report generated successfully for alice at "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Category,Total Duration (minutes)\n2024-01-08,Study,30\n", string(data))
}

func TestReportCmd_NoSnapshot(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "report", "--user", "alice", "--no-snapshot")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded this week.")
	assert.NotContains(t, out, "generated successfully")
	assert.NoFileExists(t, filepath.Join(env.dir, "weekly_report_alice.csv"))
}

func TestStreakCmd(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "streak", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded to track streaks.")

	_, err = executeCmd(t, env.app, "log", "--user", "alice", "--category", "Study", "--minutes", "30",
		"--at", "2024-01-07 10:00")
	require.NoError(t, err)

	out, err = executeCmd(t, env.app, "streak", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Streak: 1 consecutive day")
	assert.Contains(t, out, "No session recorded today.")

	_, err = executeCmd(t, env.app, "log", "--user", "alice", "--category", "Study", "--minutes", "30")
	require.NoError(t, err)

	out, err = executeCmd(t, env.app, "streak", "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Streak: 2 consecutive days")
	assert.NotContains(t, out, "No session recorded today.")
}

// --- Import ---

func TestImportCmd_RequiresSQLite(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "import", "--user", "alice", "--file", "focus_log_alice.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestImportCmd_SQLite(t *testing.T) {
	env := testApp(t)
	database := testutil.NewTestDB(t)
	env.app.Import = service.NewImportService(testutil.NewTestUoW(database))

	lines := []string{
		repository.FormatLogLine(domain.NewSessionRecord("Study", monday09, monday09.Add(30*time.Minute))),
		"garbage",
		repository.FormatLogLine(domain.NewSessionRecord("Work", monday09.Add(time.Hour), monday09.Add(2*time.Hour))),
	}
	path := filepath.Join(t.TempDir(), "focus_log_alice.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	out, err := executeCmd(t, env.app, "import", "--user", "alice", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 sessions for alice.")
	assert.Contains(t, out, "1 line skipped.")

	n, err := repository.NewSQLiteSessionLog(database).CountBySource(context.Background(), testutil.TestIdentity, repository.SourceImport)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// --- Menu ---

func TestMenuCmd_NeedsTerminal(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "menu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestRootCmd_HelpWhenNotInteractive(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app)
	require.NoError(t, err)
	assert.Contains(t, out, "pomodoro")
	assert.Contains(t, out, "streak")
}
