package ui

import (
	"fmt"
	"strings"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
	"github.com/pan-day/bot-tele2/internal/domain/model"
	"github.com/pan-day/bot-tele2/internal/infra/telegram"
)

func RegistrationRequest(user model.User) string {
	username := "—"
	if name := strings.TrimSpace(user.Username); name != "" {
		username = "@" + name
	}
	return fmt.Sprintf("Новый пользователь хочет зарегистрироваться:\nID: %d\nUsername: %s\nФИО: %s",
		user.ID, username, user.FullName)
}

func PhotoCaption(submitter model.User) string {
	return fmt.Sprintf("Фото от пользователя: %s\nID: %d\nФИО: %s\nТекущие баллы: %d",
		Handle(submitter.Username, submitter.ID), submitter.ID, submitter.FullName, submitter.Points)
}

func RegistrationKeyboard(userID int64) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: ButtonApprove, Data: model.ModerationAction{Kind: enums.ActionApproveUser, TargetID: userID}.Data()},
		{Text: ButtonReject, Data: model.ModerationAction{Kind: enums.ActionRejectUser, TargetID: userID}.Data()},
	}}
}

func PhotoKeyboard(photoID int64) [][]telegram.InlineButton {
	return [][]telegram.InlineButton{{
		{Text: ButtonApprovePhoto, Data: model.ModerationAction{Kind: enums.ActionApprovePhoto, TargetID: photoID}.Data()},
		{Text: ButtonReject, Data: model.ModerationAction{Kind: enums.ActionRejectPhoto, TargetID: photoID}.Data()},
	}}
}

// DecisionLine is appended to the moderation message once an admin acts.
func DecisionLine(kind enums.ActionKind, admin model.Actor, reward int64) string {
	verb := "Отклонено"
	if kind.IsApprove() {
		verb = "Одобрено"
	}
	line := fmt.Sprintf("\n\n%s администратором %s", verb, Handle(admin.Username, admin.ID))
	if kind == enums.ActionApprovePhoto && reward != 0 {
		line += fmt.Sprintf("\n%s балл пользователю", signed(reward))
	}
	return line
}

func DecisionNotice(kind enums.ActionKind) string {
	switch kind {
	case enums.ActionApproveUser:
		return UserApprovedNotice
	case enums.ActionRejectUser:
		return UserRejectedNotice
	case enums.ActionApprovePhoto:
		return PhotoApprovedNotice
	default:
		return PhotoRejectedNotice
	}
}

func DecisionAnswer(kind enums.ActionKind) string {
	switch kind {
	case enums.ActionApproveUser:
		return AnswerUserApproved
	case enums.ActionRejectUser:
		return AnswerUserRejected
	case enums.ActionApprovePhoto:
		return AnswerPhotoApproved
	default:
		return AnswerPhotoRejected
	}
}
