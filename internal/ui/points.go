package ui

import (
	"fmt"

	"github.com/pan-day/bot-tele2/internal/domain/model"
)

func PointsAdjustedAdmin(user model.User, amount int64, reason string) string {
	verb := "Начислено %d баллов пользователю %s (ID: %d)"
	if amount < 0 {
		verb = "Списано %d баллов у пользователя %s (ID: %d)"
		amount = -amount
	}
	return fmt.Sprintf(verb+"\nНовый баланс: %d\nПричина: %s",
		amount, Handle(user.Username, user.ID), user.ID, user.Points, reason)
}

func PointsAdjustedUser(user model.User, amount int64, reason string) string {
	verb := "Администратор начислил вам %d баллов."
	if amount < 0 {
		verb = "Администратор списал у вас %d баллов."
		amount = -amount
	}
	return fmt.Sprintf(verb+"\nПричина: %s\nНовый баланс: %d", amount, reason, user.Points)
}
