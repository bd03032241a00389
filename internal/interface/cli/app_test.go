package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspark/studyspark/internal/application/command"
	"github.com/studyspark/studyspark/internal/application/query"
	"github.com/studyspark/studyspark/internal/infrastructure/persistence/memory"
)

func newTestApp(in string) (*App, *bytes.Buffer) {
	store := memory.NewStore()

	handlers := Handlers{
		RegisterUser:   command.NewRegisterUserHandler(store.Users(), nil),
		Login:          command.NewLoginHandler(store.Users(), nil, nil),
		StartSession:   command.NewStartSessionHandler(store.Users(), store.Sessions(), nil),
		EndSession:     command.NewEndSessionHandler(store.Users(), store.Sessions(), nil, nil),
		CreateGroup:    command.NewCreateGroupHandler(store.Users(), store.Groups(), nil),
		JoinGroup:      command.NewJoinGroupHandler(store.Users(), store.Groups(), nil),
		SetReminder:    command.NewSetReminderHandler(store.Users(), store.Reminders(), nil),
		DeleteReminder: command.NewDeleteReminderHandler(store.Reminders(), nil),

		GetLeaderboard:    query.NewGetLeaderboardHandler(store.Users(), nil, nil, nil),
		GetProgressReport: query.NewGetProgressReportHandler(store.Users(), store.Sessions(), nil, nil),
		ListSessions:      query.NewListSessionsHandler(store.Sessions()),
		ListGroups:        query.NewListGroupsHandler(store.Groups()),
		ListReminders:     query.NewListRemindersHandler(store.Reminders()),
	}

	out := &bytes.Buffer{}
	return NewApp(handlers, strings.NewReader(in), out, nil), out
}

func TestApp_RegisterLoginStudyFlow(t *testing.T) {
	script := strings.Join([]string{
		"1",     // register
		"alice", // username
		"secret",
		"2", // login
		"alice",
		"secret",
		"1",     // start session
		"focus", // session name
		"2",     // end session
		"3",     // progress report
		"q",
	}, "\n") + "\n"

	app, out := newTestApp(script)
	require.NoError(t, app.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Account created for alice")
	assert.Contains(t, text, "Welcome back, alice!")
	assert.Contains(t, text, "Day 1 of your streak")
	assert.Contains(t, text, "Session started")
	assert.Contains(t, text, "Session complete")
	assert.Contains(t, text, "--- Progress Report for alice ---")
	assert.Contains(t, text, "It's a great day to start a new streak!")
	assert.Contains(t, text, "Goodbye")
}

func TestApp_DoubleStartShowsFriendlyError(t *testing.T) {
	script := strings.Join([]string{
		"1", "bob", "secret",
		"2", "bob", "secret",
		"1", "", // start
		"1", "", // second start
		"q",
	}, "\n") + "\n"

	app, out := newTestApp(script)
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "you already have a session in progress")
}

func TestApp_EndWithoutStart(t *testing.T) {
	script := strings.Join([]string{
		"1", "carol", "secret",
		"2", "carol", "secret",
		"2", // end with nothing open
		"q",
	}, "\n") + "\n"

	app, out := newTestApp(script)
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "no session in progress")
}

func TestApp_GroupAndReminderFlow(t *testing.T) {
	script := strings.Join([]string{
		"1", "dave", "secret",
		"2", "dave", "secret",
		"6", "2", "algebra club", "math", "5", // create group
		"6", "1", // list groups
		"7", "2", "08:30", "Mon,Wed,Fri", // set reminder
		"7", "1", // list reminders
		"q",
	}, "\n") + "\n"

	app, out := newTestApp(script)
	require.NoError(t, app.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, `Group "algebra club" created`)
	assert.Contains(t, text, "algebra club")
	assert.Contains(t, text, "members 1/5")
	assert.Contains(t, text, "Reminder set for 08:30 on Mon,Wed,Fri")
}

func TestApp_EOFExitsCleanly(t *testing.T) {
	app, _ := newTestApp("")
	require.NoError(t, app.Run(context.Background()))
}
