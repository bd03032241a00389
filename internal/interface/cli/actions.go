package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/studyspark/studyspark/internal/application/command"
	"github.com/studyspark/studyspark/internal/application/query"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/pkg/timeutil"
)

// ─────────────────────────────────────────────────────────────────────────────
// Account actions
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) register(ctx context.Context) error {
	username, ok := a.prompt("Username: ")
	if !ok {
		return nil
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return nil
	}

	res, err := a.handlers.RegisterUser.Handle(ctx, command.RegisterUserCommand{
		Username: strings.TrimSpace(username),
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created for %s. You can log in now.\n", res.Username)
	return nil
}

func (a *App) login(ctx context.Context) error {
	username, ok := a.prompt("Username: ")
	if !ok {
		return nil
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return nil
	}

	res, err := a.handlers.Login.Handle(ctx, command.LoginCommand{
		Username: strings.TrimSpace(username),
		Password: password,
	})
	if err != nil {
		return err
	}

	a.currentUserID = res.UserID
	a.currentUsername = res.Username

	fmt.Fprintf(a.out, "Welcome back, %s!\n", res.Username)
	if res.Streak == 1 && res.StreakExtended {
		fmt.Fprintln(a.out, "Day 1 of your streak. See you tomorrow!")
	} else {
		fmt.Fprintf(a.out, "Current streak: %d days\n", res.Streak)
	}
	a.announceBadges(res.NewBadges)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Session actions
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) startSession(ctx context.Context) error {
	name, ok := a.prompt("Session name (optional): ")
	if !ok {
		return nil
	}

	res, err := a.handlers.StartSession.Handle(ctx, command.StartSessionCommand{
		UserID: a.currentUserID,
		Name:   strings.TrimSpace(name),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Session started at %s. Happy studying!\n", res.StartedAt.Format("15:04"))
	return nil
}

func (a *App) endSession(ctx context.Context) error {
	res, err := a.handlers.EndSession.Handle(ctx, command.EndSessionCommand{
		UserID: a.currentUserID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Session complete: %.1f minutes, %.1f points earned (total %.1f).\n",
		res.DurationMinutes, res.PointsEarned, res.TotalPoints)
	a.announceBadges(res.NewBadges)
	return nil
}

func (a *App) showSessions(ctx context.Context) error {
	res, err := a.handlers.ListSessions.Handle(ctx, query.ListSessionsQuery{UserID: a.currentUserID})
	if err != nil {
		return err
	}

	if len(res.Sessions) == 0 {
		fmt.Fprintln(a.out, "No sessions yet. Start one!")
		return nil
	}

	for _, s := range res.Sessions {
		label := s.Name
		if label == "" {
			label = "(unnamed)"
		}
		if s.IsActive() {
			fmt.Fprintf(a.out, "  %s  %s  in progress\n", s.StartTime.Format("2006-01-02 15:04"), label)
			continue
		}
		fmt.Fprintf(a.out, "  %s  %s  %.1f min\n", s.StartTime.Format("2006-01-02 15:04"), label, s.Duration())
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Reports and leaderboard
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) showProgressReport(ctx context.Context) error {
	res, err := a.handlers.GetProgressReport.Handle(ctx, query.GetProgressReportQuery{
		UserID:       a.currentUserID,
		IncludeQuote: true,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n--- Progress Report for %s ---\n", res.Username)
	fmt.Fprintf(a.out, "Streak: %d days\n", res.Streak)
	fmt.Fprintf(a.out, "Points: %.1f\n", res.Points)
	fmt.Fprintf(a.out, "Sessions: %d completed of %d total\n", res.CompletedSessions, res.TotalSessions)
	fmt.Fprintf(a.out, "Total study time: %s\n", res.TotalStudyTime)

	if len(res.Badges) == 0 {
		fmt.Fprintln(a.out, "Badges: none yet")
	} else {
		names := make([]string, len(res.Badges))
		for i, b := range res.Badges {
			names[i] = b.Emoji + " " + b.Name
		}
		fmt.Fprintf(a.out, "Badges: %s\n", strings.Join(names, ", "))
	}
	a.announceBadges(res.NewBadges)

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, res.Message)
	if res.Quote != "" {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, res.Quote)
	}
	return nil
}

func (a *App) showLeaderboard(ctx context.Context) error {
	res, err := a.handlers.GetLeaderboard.Handle(ctx, query.GetLeaderboardQuery{})
	if err != nil {
		return err
	}

	board := res.Board
	if len(board.Entries) == 0 {
		fmt.Fprintln(a.out, "The leaderboard is empty. Be the first!")
		return nil
	}

	fmt.Fprintf(a.out, "\n--- Leaderboard (top %d of %d) ---\n", len(board.Entries), board.TotalUsers)
	for _, e := range board.Entries {
		fmt.Fprintf(a.out, "%2d. %-20s streak %3d  points %8.1f  badges %d\n",
			e.Rank, e.Username, e.Streak, e.Points, e.BadgeCount)
	}
	return nil
}

func (a *App) announceBadges(badges []user.BadgeID) {
	for _, id := range badges {
		if def, ok := user.BadgeDefinitionFor(id); ok {
			fmt.Fprintf(a.out, "New badge earned: %s %s!\n", def.Emoji, def.Name)
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Groups
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) groupsMenu(ctx context.Context) error {
	fmt.Fprintln(a.out, "1. List groups")
	fmt.Fprintln(a.out, "2. Create group")
	fmt.Fprintln(a.out, "3. Join group")
	choice, ok := a.prompt("> ")
	if !ok {
		return nil
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return a.listGroups(ctx)
	case "2":
		return a.createGroup(ctx)
	case "3":
		return a.joinGroup(ctx)
	}
	return nil
}

func (a *App) listGroups(ctx context.Context) error {
	res, err := a.handlers.ListGroups.Handle(ctx, query.ListGroupsQuery{})
	if err != nil {
		return err
	}

	if len(res.Groups) == 0 {
		fmt.Fprintln(a.out, "No study groups yet.")
		return nil
	}

	for _, g := range res.Groups {
		limit := "unlimited"
		if g.Group.MaxMembers != nil {
			limit = strconv.Itoa(*g.Group.MaxMembers)
		}
		fmt.Fprintf(a.out, "  %-20s %s  members %d/%s  by %s\n",
			g.Group.Name, g.Group.Subject, g.MemberCount, limit, g.CreatorUsername)
	}
	return nil
}

func (a *App) createGroup(ctx context.Context) error {
	name, ok := a.prompt("Group name: ")
	if !ok {
		return nil
	}
	subject, ok := a.prompt("Subject (optional): ")
	if !ok {
		return nil
	}
	maxStr, ok := a.prompt("Max members (empty for unlimited): ")
	if !ok {
		return nil
	}

	var maxMembers *int
	if s := strings.TrimSpace(maxStr); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("max members must be a number")
		}
		maxMembers = &n
	}

	res, err := a.handlers.CreateGroup.Handle(ctx, command.CreateGroupCommand{
		CreatorID:  a.currentUserID,
		Name:       strings.TrimSpace(name),
		Subject:    strings.TrimSpace(subject),
		MaxMembers: maxMembers,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Group %q created. You are its admin.\n", res.Name)
	return nil
}

func (a *App) joinGroup(ctx context.Context) error {
	name, ok := a.prompt("Group name: ")
	if !ok {
		return nil
	}

	res, err := a.handlers.JoinGroup.Handle(ctx, command.JoinGroupCommand{
		UserID:    a.currentUserID,
		GroupName: strings.TrimSpace(name),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Joined %q (%d members).\n", res.GroupName, res.MemberCount)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Reminders
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) remindersMenu(ctx context.Context) error {
	fmt.Fprintln(a.out, "1. List reminders")
	fmt.Fprintln(a.out, "2. Set reminder")
	fmt.Fprintln(a.out, "3. Delete reminder")
	choice, ok := a.prompt("> ")
	if !ok {
		return nil
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return a.listReminders(ctx)
	case "2":
		return a.setReminder(ctx)
	case "3":
		return a.deleteReminder(ctx)
	}
	return nil
}

func (a *App) listReminders(ctx context.Context) error {
	res, err := a.handlers.ListReminders.Handle(ctx, query.ListRemindersQuery{UserID: a.currentUserID})
	if err != nil {
		return err
	}

	if len(res.Reminders) == 0 {
		fmt.Fprintln(a.out, "No reminders set.")
		return nil
	}

	for i, r := range res.Reminders {
		state := "on"
		if !r.Enabled {
			state = "off"
		}
		fmt.Fprintf(a.out, "  %d. %s on %s [%s]  (id %s)\n", i+1, r.TimeOfDay, r.DaysString(), state, r.ID)
	}
	return nil
}

func (a *App) setReminder(ctx context.Context) error {
	timeOfDay, ok := a.prompt("Time (HH:MM): ")
	if !ok {
		return nil
	}
	if _, _, err := timeutil.ParseClock(strings.TrimSpace(timeOfDay)); err != nil {
		return err
	}
	days, ok := a.prompt("Days (e.g. Mon,Wed,Fri): ")
	if !ok {
		return nil
	}

	res, err := a.handlers.SetReminder.Handle(ctx, command.SetReminderCommand{
		UserID:    a.currentUserID,
		TimeOfDay: strings.TrimSpace(timeOfDay),
		Days:      strings.TrimSpace(days),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Reminder set for %s on %s.\n", res.TimeOfDay, res.Days)
	return nil
}

func (a *App) deleteReminder(ctx context.Context) error {
	id, ok := a.prompt("Reminder id: ")
	if !ok {
		return nil
	}

	if err := a.handlers.DeleteReminder.Handle(ctx, command.DeleteReminderCommand{
		UserID:     a.currentUserID,
		ReminderID: strings.TrimSpace(id),
	}); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Reminder deleted.")
	return nil
}
