package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/bankrkit/bankr/internal/application"
	"github.com/bankrkit/bankr/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(status application.Status, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Bankroll Status"),
		s.header.Render(fmt.Sprintf("sessions: %d", status.TotalSessions)),
		s.detail.Render(fmt.Sprintf("balance: %.2f", status.Balance)),
	}

	if status.Recovered {
		lines = append(lines, s.warning.Render("[recovered] stored ledger was unreadable, starting fresh"))
	}

	if status.ActiveSession == nil {
		lines = append(lines, s.empty.Render("No active session."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(renderSession(*status.ActiveSession, opts, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(session application.SessionStatus, opts RenderOptions, s styles) string {
	parts := []string{
		s.session.Render(sessionTitle(session, opts.Now)),
	}

	if len(session.Steps) == 0 {
		parts = append(parts, s.faint.Render("  no steps recorded yet"))
	}

	for _, step := range session.Steps {
		parts = append(parts, stepLine(step, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func stepLine(step domain.Step, s styles) string {
	resultStyle := s.loss
	if step.Result == domain.StepWin {
		resultStyle = s.win
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.faint.Render(fmt.Sprintf("  %2d  ", step.Index)),
		s.detail.Render(fmt.Sprintf("bet %.2f (%.2f%%)  ", step.BetAmount, step.BetPercent*100)),
		resultStyle.Render(strings.ToUpper(string(step.Result))),
		s.detail.Render(fmt.Sprintf("  pnl %+.2f  balance %.2f", step.PnL, step.BalanceAfter)),
	)
}

func sessionTitle(session application.SessionStatus, now time.Time) string {
	title := fmt.Sprintf("session %s started at %.2f", shortID(session.ID), session.StartBalance)
	if !session.CreatedAt.IsZero() {
		title += fmt.Sprintf(" (%s)", formatCreatedAt(session.CreatedAt, now))
	}
	return title
}

func shortID(id domain.SessionID) string {
	raw := string(id)
	if len(raw) > 8 {
		return raw[:8]
	}
	return raw
}

func formatCreatedAt(createdAt, now time.Time) string {
	if now.IsZero() {
		return createdAt.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := createdAt.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return createdAt.Format("15:04")
	}

	return createdAt.Format("15:04 on 02 Jan")
}
