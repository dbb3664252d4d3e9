package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/pan-day/bot-tele2/internal/config"
	"github.com/pan-day/bot-tele2/internal/domain/enums"
	"github.com/pan-day/bot-tele2/internal/domain/model"
	"github.com/pan-day/bot-tele2/internal/repo/memory"
	pgrepo "github.com/pan-day/bot-tele2/internal/repo/postgres"
	"github.com/pan-day/bot-tele2/internal/services/access"
	"github.com/pan-day/bot-tele2/internal/services/audit"
	"github.com/pan-day/bot-tele2/internal/services/ledger"
	"github.com/pan-day/bot-tele2/internal/services/moderation"
	"github.com/pan-day/bot-tele2/internal/services/photos"
	"github.com/pan-day/bot-tele2/internal/services/registration"
	systemsvc "github.com/pan-day/bot-tele2/internal/services/system"
)

const (
	testModerationChat = int64(-4802024453)
	testAdminID        = int64(1)
)

// fakeStore behaves like the postgres repositories: balance and ledger move
// together and photos are decided once.
type fakeStore struct {
	mu           sync.Mutex
	users        map[int64]model.User
	photos       map[int64]model.Photo
	transactions []model.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int64]model.User{}, photos: map[int64]model.Photo{}}
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) SaveRegistration(_ context.Context, user model.User) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.Points = f.users[user.ID].Points
	user.IsApproved = false
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) SetApproved(_ context.Context, id int64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	if user.IsApproved {
		return model.User{}, pgrepo.ErrUserAlreadyApproved
	}
	user.IsApproved = true
	f.users[id] = user
	return user, nil
}

func (f *fakeStore) Counts(_ context.Context) (model.UsersCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var counts model.UsersCount
	for _, user := range f.users {
		counts.Total++
		if user.IsApproved {
			counts.Approved++
		}
	}
	for _, photo := range f.photos {
		if photo.Status == enums.PhotoStatusPending {
			counts.PendingPhotos++
		}
	}
	return counts, nil
}

func (f *fakeStore) Create(_ context.Context, photo model.Photo) (model.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	photo.ID = int64(len(f.photos) + 1)
	f.photos[photo.ID] = photo
	return photo, nil
}

func (f *fakeStore) Apply(_ context.Context, entry model.PointsEntry) (model.PointsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applyLocked(entry)
}

func (f *fakeStore) applyLocked(entry model.PointsEntry) (model.PointsResult, error) {
	user, ok := f.users[entry.UserID]
	if !ok {
		return model.PointsResult{}, pgrepo.ErrUserNotFound
	}
	user.Points += entry.Amount
	f.users[user.ID] = user

	tx := model.Transaction{
		ID:     int64(len(f.transactions) + 1),
		UserID: entry.UserID,
		Amount: entry.Amount,
		Date:   entry.At,
		Reason: entry.Reason,
	}
	if entry.Admin != nil {
		adminID := entry.Admin.ID
		tx.AdminID = &adminID
		tx.AdminUsername = entry.Admin.Username
	}
	f.transactions = append(f.transactions, tx)
	return model.PointsResult{User: user, Transaction: tx}, nil
}

func (f *fakeStore) DecidePhoto(_ context.Context, d model.PhotoDecision) (model.PhotoDecisionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	photo, ok := f.photos[d.PhotoID]
	if !ok {
		return model.PhotoDecisionResult{}, pgrepo.ErrPhotoNotFound
	}
	if photo.Status != enums.PhotoStatusPending {
		return model.PhotoDecisionResult{}, pgrepo.ErrPhotoAlreadyDecided
	}
	moderatorID := d.Moderator.ID
	decidedAt := d.DecidedAt
	photo.Status = d.Status
	photo.ModeratorID = &moderatorID
	photo.DecisionDate = &decidedAt
	f.photos[photo.ID] = photo

	result := model.PhotoDecisionResult{Photo: photo, Submitter: f.users[photo.UserID]}
	if d.Status == enums.PhotoStatusApproved && d.Reward != 0 {
		moderator := d.Moderator
		points, err := f.applyLocked(model.PointsEntry{UserID: photo.UserID, Amount: d.Reward, Admin: &moderator, Reason: d.Reason, At: decidedAt})
		if err != nil {
			return model.PhotoDecisionResult{}, err
		}
		result.Submitter = points.User
		result.Transaction = &points.Transaction
	}
	return result, nil
}

func (f *fakeStore) ListRecent(_ context.Context, userID int64, limit int) ([]model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]model.Transaction, 0)
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			items = append(items, tx)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeStore) SumForUser(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			sum += tx.Amount
		}
	}
	return sum, nil
}

type fakeAuditRepo struct {
	entries []model.Audit
}

func (r *fakeAuditRepo) Save(_ context.Context, entry model.Audit) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) ListRecent(_ context.Context, limit int) ([]model.Audit, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

type sentItem struct {
	chatID int64
	text   string
	markup interface{}
}

// fakeSender records outbound calls. Chats listed in failFor reject sends.
type fakeSender struct {
	messages []sentItem
	photos   []sentItem
	answers  []string
	edits    []sentItem
	failFor  map[int64]bool
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch msg := c.(type) {
	case tgbotapi.MessageConfig:
		if s.failFor[msg.ChatID] {
			return tgbotapi.Message{}, errors.New("Forbidden: bot was blocked by the user")
		}
		s.messages = append(s.messages, sentItem{chatID: msg.ChatID, text: msg.Text, markup: msg.ReplyMarkup})
	case tgbotapi.PhotoConfig:
		s.photos = append(s.photos, sentItem{chatID: msg.ChatID, text: msg.Caption, markup: msg.ReplyMarkup})
	}
	return tgbotapi.Message{}, nil
}

func (s *fakeSender) Request(c tgbotapi.Chattable) error {
	switch cfg := c.(type) {
	case tgbotapi.CallbackConfig:
		s.answers = append(s.answers, cfg.Text)
	case tgbotapi.EditMessageTextConfig:
		s.edits = append(s.edits, sentItem{chatID: cfg.ChatID, text: cfg.Text})
	case tgbotapi.EditMessageCaptionConfig:
		s.edits = append(s.edits, sentItem{chatID: cfg.ChatID, text: cfg.Caption})
	}
	return nil
}

func (s *fakeSender) textsTo(chatID int64) []string {
	texts := make([]string, 0)
	for _, msg := range s.messages {
		if msg.chatID == chatID {
			texts = append(texts, msg.text)
		}
	}
	return texts
}

func (s *fakeSender) lastTextTo(chatID int64) string {
	texts := s.textsTo(chatID)
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

type testEnv struct {
	app    *App
	store  *fakeStore
	audit  *fakeAuditRepo
	sender *fakeSender
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	auditRepo := &fakeAuditRepo{}
	sender := &fakeSender{failFor: map[int64]bool{}}
	auditService := audit.NewService(auditRepo)

	cfg := config.Config{
		ModerationChatID:    testModerationChat,
		AdminIDs:            []int64{testAdminID},
		ProfileHistoryLimit: 5,
		RegistrationTTL:     time.Hour,
	}
	services := Services{
		Access:       access.NewService(cfg.AdminIDs),
		Registration: registration.NewService(store, memory.NewConversationRepo(), cfg.RegistrationTTL),
		Photos:       photos.NewService(store, store),
		Moderation:   moderation.NewService(store, store, auditService, zap.NewNop()),
		Ledger:       ledger.NewService(store, store, cfg.ProfileHistoryLimit),
		Audit:        auditService,
		System:       systemsvc.NewService(store),
	}

	return &testEnv{
		app:    newApp(cfg, zap.NewNop(), nil, sender, services),
		store:  store,
		audit:  auditRepo,
		sender: sender,
	}
}

func (e *testEnv) dispatch(update tgbotapi.Update) {
	e.app.routeUpdate(context.Background(), update)
}

func tgUser(id int64, username string) *tgbotapi.User {
	return &tgbotapi.User{ID: id, UserName: username}
}

func textUpdate(from *tgbotapi.User, text string) tgbotapi.Update {
	message := &tgbotapi.Message{
		MessageID: 1,
		From:      from,
		Chat:      &tgbotapi.Chat{ID: from.ID, Type: "private"},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		command := strings.Fields(text)[0]
		message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command)}}
	}
	return tgbotapi.Update{Message: message}
}

func photoUpdate(from *tgbotapi.User, fileID string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 2,
		From:      from,
		Chat:      &tgbotapi.Chat{ID: from.ID, Type: "private"},
		Photo: []tgbotapi.PhotoSize{
			{FileID: fileID + "-small", Width: 90, Height: 90},
			{FileID: fileID, Width: 1280, Height: 1280},
		},
	}}
}

func callbackUpdate(from *tgbotapi.User, data string, message *tgbotapi.Message) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-" + data,
		From:    from,
		Data:    data,
		Message: message,
	}}
}
