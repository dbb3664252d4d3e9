package model

import (
	"errors"
	"testing"

	"github.com/pan-day/bot-tele2/internal/domain/enums"
)

func TestParseModerationAction(t *testing.T) {
	cases := []struct {
		data string
		want ModerationAction
	}{
		{"approve_user_12345", ModerationAction{Kind: enums.ActionApproveUser, TargetID: 12345}},
		{"reject_user_7", ModerationAction{Kind: enums.ActionRejectUser, TargetID: 7}},
		{"approve_photo_42", ModerationAction{Kind: enums.ActionApprovePhoto, TargetID: 42}},
		{"reject_photo_1", ModerationAction{Kind: enums.ActionRejectPhoto, TargetID: 1}},
	}

	for _, tc := range cases {
		got, err := ParseModerationAction(tc.data)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.data, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %+v, got %+v", tc.data, tc.want, got)
		}
		if got.Data() != tc.data {
			t.Fatalf("expected round trip %q, got %q", tc.data, got.Data())
		}
	}
}

func TestParseModerationActionRejectsGarbage(t *testing.T) {
	for _, data := range []string{"", "approve_user_", "approve_user_abc", "approve_photo_-3", "ban_user_5", "approve_user_0"} {
		if _, err := ParseModerationAction(data); !errors.Is(err, ErrUnknownAction) {
			t.Fatalf("expected ErrUnknownAction for %q, got %v", data, err)
		}
	}
}
