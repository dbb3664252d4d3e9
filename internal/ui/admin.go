package ui

import (
	"fmt"
	"strings"

	"github.com/pan-day/bot-tele2/internal/domain/model"
)

func RenderStats(stats model.UsersCount) string {
	return fmt.Sprintf("📈 Статистика:\nПользователей: %d\nОдобрено: %d\nФото на модерации: %d",
		stats.Total, stats.Approved, stats.PendingPhotos)
}

func RenderAuditHistory(items []model.Audit) string {
	if len(items) == 0 {
		return "История пуста."
	}

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, "🗂 Последние действия:")
	for _, item := range items {
		payload := strings.TrimSpace(string(item.Payload))
		if payload == "" || payload == "{}" {
			payload = "-"
		}
		lines = append(lines, fmt.Sprintf("%s | %s | %d | %s",
			item.CreatedAt.UTC().Format("2006-01-02 15:04"), item.Action, item.ActorTGID, payload))
	}
	return strings.Join(lines, "\n")
}
