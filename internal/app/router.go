package app

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
	"github.com/pan-day/bot-tele2/internal/domain/model"
	"github.com/pan-day/bot-tele2/internal/infra/telegram"
	"github.com/pan-day/bot-tele2/internal/services/ledger"
	"github.com/pan-day/bot-tele2/internal/services/moderation"
	"github.com/pan-day/bot-tele2/internal/services/photos"
	"github.com/pan-day/bot-tele2/internal/services/registration"
	"github.com/pan-day/bot-tele2/internal/ui"
)

const (
	auditHistoryLimit = 20
	archiveTimeout    = 30 * time.Second
)

func (a *App) routeUpdate(ctx context.Context, update tgbotapi.Update) {
	started := time.Now()
	kind := updateKind(update)
	logger := a.logger.With(
		zap.String("correlation_id", uuid.NewString()),
		zap.Int("update_id", update.UpdateID),
		zap.String("kind", kind),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while handling update", zap.Any("panic", r))
		}
		a.metrics.ObserveUpdate(kind, time.Since(started))
	}()

	switch {
	case update.Message != nil:
		a.routeMessage(ctx, logger, update.Message)
	case update.CallbackQuery != nil:
		a.handleCallback(ctx, logger, update.CallbackQuery)
	}
}

func (a *App) routeMessage(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) {
	if message == nil || message.From == nil || message.Chat == nil {
		return
	}
	logger = logger.With(zap.Int64("tg_id", message.From.ID), zap.Int64("chat_id", message.Chat.ID))

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			a.handleStart(ctx, logger, message)
		case "profile":
			a.handleProfile(ctx, logger, message)
		case "cancel":
			a.handleCancel(ctx, logger, message)
		case "remove_points":
			a.handleAdjustPoints(ctx, logger, message, true)
		case "add_points":
			a.handleAdjustPoints(ctx, logger, message, false)
		case "stats":
			a.handleStats(ctx, logger, message)
		case "history":
			a.handleHistory(ctx, logger, message)
		default:
			a.sendText(logger, message.Chat.ID, ui.UnknownCommand)
		}
		return
	}

	if len(message.Photo) > 0 {
		a.handlePhoto(ctx, logger, message)
		return
	}

	if strings.TrimSpace(message.Text) != "" {
		a.handleName(ctx, logger, message)
	}
}

func (a *App) handleStart(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) {
	status, err := a.registrationService.Start(ctx, applicantFrom(message.From))
	if err != nil {
		logger.Error("start registration", zap.Error(err))
		a.sendText(logger, message.Chat.ID, ui.GenericError)
		return
	}

	switch status.State {
	case enums.RegistrationAwaitingName:
		a.sendText(logger, message.Chat.ID, ui.WelcomeAskName)
	case enums.RegistrationPendingApproval:
		a.sendText(logger, message.Chat.ID, ui.RegistrationPending)
	case enums.RegistrationApproved:
		a.sendProfile(ctx, logger, message.Chat.ID, message.From.ID)
	}
}

func (a *App) handleName(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) {
	user, err := a.registrationService.SubmitName(ctx, applicantFrom(message.From), message.Text)
	switch {
	case errors.Is(err, registration.ErrNotAwaitingName):
		return
	case errors.Is(err, registration.ErrInvalidName):
		a.sendText(logger, message.Chat.ID, ui.InvalidName)
		return
	case err != nil:
		logger.Error("save registration", zap.Error(err))
		a.sendText(logger, message.Chat.ID, ui.GenericError)
		return
	}

	a.sendInline(logger, a.cfg.ModerationChatID, ui.RegistrationRequest(user), ui.RegistrationKeyboard(user.ID))
	a.sendText(logger, message.Chat.ID, ui.RegistrationSubmitted)
}

func (a *App) handleCancel(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) {
	if _, err := a.registrationService.Cancel(ctx, message.From.ID); err != nil {
		logger.Error("cancel registration", zap.Error(err))
		a.sendText(logger, message.Chat.ID, ui.GenericError)
		return
	}
	a.sendText(logger, message.Chat.ID, ui.Cancelled)
}

func (a *App) handleProfile(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) {
	a.sendProfile(ctx, logger, message.Chat.ID, message.From.ID)
}

func (a *App) sendProfile(ctx context.Context, logger *zap.Logger, chatID, userID int64) {
	profile, err := a.ledgerService.Profile(ctx, userID)
	switch {
	case errors.Is(err, ledger.ErrUserNotFound):
		a.sendText(logger, chatID, ui.NotRegistered)
		return
	case err != nil:
		logger.Error("load profile", zap.Error(err))
		a.sendText(logger, chatID, ui.GenericError)
		return
	case !profile.User.IsApproved:
		a.sendText(logger, chatID, ui.RegistrationPending)
		return
	}

	a.sendText(logger, chatID, ui.RenderProfile(profile.User, profile.History))
}

func (a *App) handlePhoto(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) {
	largest := message.Photo[len(message.Photo)-1]

	submission, err := a.photosService.Submit(ctx, message.From.ID, largest.FileID)
	switch {
	case errors.Is(err, photos.ErrNotApproved):
		a.sendText(logger, message.Chat.ID, ui.PhotoNotAllowed)
		return
	case err != nil:
		logger.Error("save photo", zap.Error(err))
		a.sendText(logger, message.Chat.ID, ui.PhotoFailed)
		return
	}

	logger = logger.With(zap.Int64("photo_id", submission.Photo.ID))
	msg := tgbotapi.NewPhoto(a.cfg.ModerationChatID, tgbotapi.FileID(largest.FileID))
	msg.Caption = ui.PhotoCaption(submission.Submitter)
	msg.ReplyMarkup = telegram.BuildInlineKeyboard(ui.PhotoKeyboard(submission.Photo.ID))
	if _, err := a.sender.Send(msg); err != nil {
		logger.Error("forward photo to moderation", zap.Error(err))
		a.sendText(logger, message.Chat.ID, ui.PhotoFailed)
		return
	}

	a.sendText(logger, message.Chat.ID, ui.PhotoSubmitted)
}

func (a *App) handleAdjustPoints(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message, debit bool) {
	if !a.accessService.IsAdmin(message.From.ID) {
		a.sendText(logger, message.Chat.ID, ui.NoCommandRights)
		return
	}

	usage, defaultReason := ui.AddPointsUsage, ledger.DefaultCreditReason
	if debit {
		usage, defaultReason = ui.RemovePointsUsage, ledger.DefaultDebitReason
	}

	req, err := ledger.ParseAdjustArgs(message.CommandArguments(), defaultReason)
	switch {
	case errors.Is(err, ledger.ErrUsage):
		a.sendText(logger, message.Chat.ID, usage)
		return
	case errors.Is(err, ledger.ErrInvalidArgs):
		a.sendText(logger, message.Chat.ID, ui.BadPointsArgs)
		return
	case errors.Is(err, ledger.ErrInvalidAmount):
		a.sendText(logger, message.Chat.ID, ui.AmountNotPositive)
		return
	}

	admin := actorFrom(message.From)
	var result model.PointsResult
	if debit {
		result, err = a.ledgerService.Debit(ctx, req.UserID, req.Amount, &admin, req.Reason)
	} else {
		result, err = a.ledgerService.Credit(ctx, req.UserID, req.Amount, &admin, req.Reason)
	}
	switch {
	case errors.Is(err, ledger.ErrUserNotFound):
		a.sendText(logger, message.Chat.ID, ui.PointsUserMissing)
		return
	case err != nil:
		logger.Error("adjust points", zap.Int64("target_id", req.UserID), zap.Error(err))
		a.sendText(logger, message.Chat.ID, ui.CommandFailed)
		return
	}

	a.metrics.AddPoints(result.Transaction.Amount)
	if err := a.auditService.LogPointsAdjusted(ctx, admin, result.Transaction, result.User.Points); err != nil {
		logger.Warn("write audit log", zap.Error(err))
	}
	if err := a.ledgerService.Reconcile(ctx, req.UserID); err != nil {
		logger.Warn("ledger check failed", zap.Int64("target_id", req.UserID), zap.Error(err))
	}

	reply := ui.PointsAdjustedAdmin(result.User, result.Transaction.Amount, req.Reason)
	if err := a.sendText(logger, req.UserID, ui.PointsAdjustedUser(result.User, result.Transaction.Amount, req.Reason)); err != nil {
		reply += "\n" + ui.TargetNotNotified
	}
	a.sendText(logger, message.Chat.ID, reply)
}

func (a *App) handleStats(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) {
	if !a.accessService.IsAdmin(message.From.ID) {
		a.sendText(logger, message.Chat.ID, ui.NoCommandRights)
		return
	}

	stats, err := a.systemService.Stats(ctx)
	if err != nil {
		logger.Error("load stats", zap.Error(err))
		a.sendText(logger, message.Chat.ID, ui.CommandFailed)
		return
	}
	a.sendText(logger, message.Chat.ID, ui.RenderStats(stats))
}

func (a *App) handleHistory(ctx context.Context, logger *zap.Logger, message *tgbotapi.Message) {
	if !a.accessService.IsAdmin(message.From.ID) {
		a.sendText(logger, message.Chat.ID, ui.NoCommandRights)
		return
	}

	entries, err := a.auditService.Recent(ctx, auditHistoryLimit)
	if err != nil {
		logger.Error("load audit history", zap.Error(err))
		a.sendText(logger, message.Chat.ID, ui.CommandFailed)
		return
	}

	text := ui.RenderAuditHistory(entries)
	for _, chunk := range splitByLength(strings.Split(text, "\n"), 3600) {
		a.sendText(logger, message.Chat.ID, chunk)
	}
}

func (a *App) handleCallback(ctx context.Context, logger *zap.Logger, query *tgbotapi.CallbackQuery) {
	if query == nil || query.From == nil {
		return
	}
	logger = logger.With(zap.Int64("tg_id", query.From.ID), zap.String("data", query.Data))

	if !a.accessService.IsAdmin(query.From.ID) {
		a.answerCallback(logger, query.ID, ui.NoActionRights)
		return
	}

	action, err := model.ParseModerationAction(query.Data)
	if err != nil {
		logger.Warn("ignore callback payload", zap.Error(err))
		a.answerCallback(logger, query.ID, "")
		return
	}

	admin := actorFrom(query.From)
	outcome, err := a.moderationService.Decide(ctx, admin, action)
	switch {
	case errors.Is(err, moderation.ErrAlreadyDecided), errors.Is(err, moderation.ErrAlreadyApproved):
		a.answerCallback(logger, query.ID, ui.AnswerAlreadyDone)
		return
	case errors.Is(err, moderation.ErrUserNotFound):
		a.answerCallback(logger, query.ID, ui.AnswerUserMissing)
		return
	case errors.Is(err, moderation.ErrPhotoNotFound):
		a.answerCallback(logger, query.ID, ui.AnswerPhotoMissing)
		return
	case err != nil:
		logger.Error("moderation decision", zap.Error(err))
		a.answerCallback(logger, query.ID, ui.AnswerFailed)
		return
	}

	a.metrics.IncDecision(string(action.Kind))
	a.answerCallback(logger, query.ID, ui.DecisionAnswer(action.Kind))

	targetID := outcome.User.ID
	if targetID == 0 && !action.Kind.IsPhoto() {
		targetID = action.TargetID
	}
	a.sendText(logger, targetID, ui.DecisionNotice(action.Kind))

	var reward int64
	if outcome.Photo != nil && outcome.Photo.Transaction != nil {
		reward = outcome.Photo.Transaction.Amount
		a.metrics.AddPoints(reward)
	}
	a.appendDecision(logger, query.Message, ui.DecisionLine(action.Kind, admin, reward))

	if outcome.Photo != nil && outcome.Photo.Photo.Status == enums.PhotoStatusApproved {
		a.archivePhoto(ctx, logger, outcome.Photo.Photo)
	}
}

// appendDecision edits the moderation message in place. The edit carries no
// reply markup, so the buttons disappear.
func (a *App) appendDecision(logger *zap.Logger, message *tgbotapi.Message, line string) {
	if message == nil || message.Chat == nil {
		return
	}

	var edit tgbotapi.Chattable
	if len(message.Photo) > 0 || message.Caption != "" {
		edit = tgbotapi.NewEditMessageCaption(message.Chat.ID, message.MessageID, message.Caption+line)
	} else {
		edit = tgbotapi.NewEditMessageText(message.Chat.ID, message.MessageID, message.Text+line)
	}

	if err := a.sender.Request(edit); err != nil {
		logger.Warn("edit moderation message", zap.Int64("chat_id", message.Chat.ID), zap.Error(err))
	}
}

func (a *App) archivePhoto(ctx context.Context, logger *zap.Logger, photo model.Photo) {
	if !a.archiveService.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
	defer cancel()

	key, err := a.archiveService.Store(ctx, photo)
	if err != nil {
		logger.Warn("archive photo", zap.Int64("photo_id", photo.ID), zap.Error(err))
		return
	}
	logger.Info("photo archived", zap.Int64("photo_id", photo.ID), zap.String("key", key))
}

func (a *App) sendInline(logger *zap.Logger, chatID int64, text string, rows [][]telegram.InlineButton) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = telegram.BuildInlineKeyboard(rows)
	if _, err := a.sender.Send(msg); err != nil {
		logger.Error("send inline message", zap.Int64("to_chat_id", chatID), zap.Error(err))
	}
}

func (a *App) sendText(logger *zap.Logger, chatID int64, text string) error {
	if _, err := a.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Error("send message", zap.Int64("to_chat_id", chatID), zap.Error(err))
		return err
	}
	return nil
}

func (a *App) answerCallback(logger *zap.Logger, callbackID, text string) {
	if err := a.sender.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		logger.Warn("answer callback", zap.Error(err))
	}
}

func applicantFrom(user *tgbotapi.User) registration.Applicant {
	return registration.Applicant{ID: user.ID, Username: user.UserName}
}

func actorFrom(user *tgbotapi.User) model.Actor {
	return model.Actor{ID: user.ID, Username: user.UserName}
}

func updateKind(update tgbotapi.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message == nil:
		return "other"
	case update.Message.IsCommand():
		return "command"
	case len(update.Message.Photo) > 0:
		return "photo"
	default:
		return "text"
	}
}

func splitByLength(lines []string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = 3500
	}
	chunks := make([]string, 0, 1)
	current := strings.Builder{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if current.Len() == 0 {
			current.WriteString(line)
			continue
		}

		if current.Len()+1+len(line) > maxLen {
			chunks = append(chunks, current.String())
			current.Reset()
			current.WriteString(line)
			continue
		}

		current.WriteString("\n")
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
