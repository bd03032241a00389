// Package cli implements the interactive terminal interface of
// StudySpark. It is a thin shell over the application layer: every menu
// action maps to exactly one command or query handler.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/studyspark/studyspark/internal/application/command"
	"github.com/studyspark/studyspark/internal/application/query"
	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/pkg/logger"
)

// Handlers bundles the application handlers the CLI drives.
type Handlers struct {
	RegisterUser   *command.RegisterUserHandler
	Login          *command.LoginHandler
	StartSession   *command.StartSessionHandler
	EndSession     *command.EndSessionHandler
	CreateGroup    *command.CreateGroupHandler
	JoinGroup      *command.JoinGroupHandler
	SetReminder    *command.SetReminderHandler
	DeleteReminder *command.DeleteReminderHandler

	GetLeaderboard    *query.GetLeaderboardHandler
	GetProgressReport *query.GetProgressReportHandler
	ListSessions      *query.ListSessionsHandler
	ListGroups        *query.ListGroupsHandler
	ListReminders     *query.ListRemindersHandler
}

// App is the interactive terminal application.
type App struct {
	handlers Handlers
	logger   *logger.Logger

	in  *bufio.Scanner
	out io.Writer

	// Session state: ID of the logged-in user, empty when logged out.
	currentUserID   string
	currentUsername string
}

// NewApp creates the terminal application.
func NewApp(handlers Handlers, in io.Reader, out io.Writer, log *logger.Logger) *App {
	if log == nil {
		log = logger.Default()
	}
	return &App{
		handlers: handlers,
		logger:   log,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run executes the menu loop until quit or EOF.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to StudySpark!")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		a.printMenu()
		choice, ok := a.prompt("> ")
		if !ok {
			return nil
		}

		if err := a.dispatch(ctx, strings.TrimSpace(choice)); err != nil {
			if errors.Is(err, errQuit) {
				fmt.Fprintln(a.out, "Goodbye! Keep up the good study habits!")
				return nil
			}
			fmt.Fprintf(a.out, "Error: %s\n", userFacing(err))
		}
	}
}

var errQuit = errors.New("quit")

func (a *App) printMenu() {
	fmt.Fprintln(a.out)
	if a.currentUserID == "" {
		fmt.Fprintln(a.out, "1. Register")
		fmt.Fprintln(a.out, "2. Login")
		fmt.Fprintln(a.out, "3. View leaderboard")
		fmt.Fprintln(a.out, "q. Quit")
		return
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.currentUsername)
	fmt.Fprintln(a.out, "1. Start study session")
	fmt.Fprintln(a.out, "2. End study session")
	fmt.Fprintln(a.out, "3. My progress report")
	fmt.Fprintln(a.out, "4. View leaderboard")
	fmt.Fprintln(a.out, "5. My sessions")
	fmt.Fprintln(a.out, "6. Study groups")
	fmt.Fprintln(a.out, "7. Reminders")
	fmt.Fprintln(a.out, "8. Logout")
	fmt.Fprintln(a.out, "q. Quit")
}

func (a *App) dispatch(ctx context.Context, choice string) error {
	if choice == "q" || choice == "quit" {
		return errQuit
	}

	if a.currentUserID == "" {
		switch choice {
		case "1":
			return a.register(ctx)
		case "2":
			return a.login(ctx)
		case "3":
			return a.showLeaderboard(ctx)
		}
		return nil
	}

	switch choice {
	case "1":
		return a.startSession(ctx)
	case "2":
		return a.endSession(ctx)
	case "3":
		return a.showProgressReport(ctx)
	case "4":
		return a.showLeaderboard(ctx)
	case "5":
		return a.showSessions(ctx)
	case "6":
		return a.groupsMenu(ctx)
	case "7":
		return a.remindersMenu(ctx)
	case "8":
		a.currentUserID = ""
		a.currentUsername = ""
		fmt.Fprintln(a.out, "Logged out.")
	}
	return nil
}

// prompt reads one line. ok is false on EOF.
func (a *App) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return a.in.Text(), true
}

// userFacing maps domain errors to friendly strings.
func userFacing(err error) string {
	switch {
	case errors.Is(err, shared.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, shared.ErrUserAlreadyExists):
		return "that username is taken"
	case errors.Is(err, shared.ErrSessionAlreadyActive):
		return "you already have a session in progress"
	case errors.Is(err, shared.ErrNoActiveSession):
		return "no session in progress"
	case errors.Is(err, shared.ErrGroupFull):
		return "that group is full"
	case errors.Is(err, shared.ErrAlreadyMember):
		return "you are already a member of that group"
	case errors.Is(err, shared.ErrGroupNotFound):
		return "no group with that name"
	case errors.Is(err, shared.ErrReminderNotFound):
		return "no such reminder"
	default:
		return err.Error()
	}
}
