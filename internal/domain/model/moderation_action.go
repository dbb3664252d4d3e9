package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
)

var ErrUnknownAction = errors.New("unknown moderation action")

// ModerationAction is the decoded form of an inline button payload such as
// "approve_photo_42". TargetID is a Telegram user id for user actions and a
// photo id for photo actions.
type ModerationAction struct {
	Kind     enums.ActionKind
	TargetID int64
}

var actionKinds = []enums.ActionKind{
	enums.ActionApproveUser,
	enums.ActionRejectUser,
	enums.ActionApprovePhoto,
	enums.ActionRejectPhoto,
}

func ParseModerationAction(data string) (ModerationAction, error) {
	data = strings.TrimSpace(data)
	for _, kind := range actionKinds {
		prefix := string(kind) + "_"
		if !strings.HasPrefix(data, prefix) {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
		if err != nil || id <= 0 {
			return ModerationAction{}, fmt.Errorf("%w: bad target in %q", ErrUnknownAction, data)
		}
		return ModerationAction{Kind: kind, TargetID: id}, nil
	}
	return ModerationAction{}, fmt.Errorf("%w: %q", ErrUnknownAction, data)
}

func (a ModerationAction) Data() string {
	return fmt.Sprintf("%s_%d", a.Kind, a.TargetID)
}
