package ui

import (
	"fmt"
	"strings"

	"github.com/pan-day/bot-tele2/internal/domain/model"
)

const systemActor = "система"

func RenderProfile(user model.User, history []model.Transaction) string {
	var b strings.Builder
	b.WriteString("👤 Ваш профиль:\n")
	fmt.Fprintf(&b, "🆔 ID: %d\n", user.ID)
	fmt.Fprintf(&b, "📛 ФИО: %s\n", user.FullName)
	fmt.Fprintf(&b, "⭐ Баллы: %d\n\n", user.Points)
	b.WriteString("📊 Последние операции:\n")

	for _, tx := range history {
		b.WriteString(RenderTransaction(tx))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderTransaction is one history line: date, signed delta, actor, reason.
func RenderTransaction(tx model.Transaction) string {
	actor := systemActor
	if name := strings.TrimSpace(tx.AdminUsername); name != "" {
		actor = "@" + strings.TrimPrefix(name, "@")
	}

	line := fmt.Sprintf("%s: %s баллов (%s)", tx.Date.Format("2006-01-02"), signed(tx.Amount), actor)
	if reason := strings.TrimSpace(tx.Reason); reason != "" {
		line += " - " + reason
	}
	return line
}
