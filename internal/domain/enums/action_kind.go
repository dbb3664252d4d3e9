package enums

type ActionKind string

const (
	ActionApproveUser  ActionKind = "approve_user"
	ActionRejectUser   ActionKind = "reject_user"
	ActionApprovePhoto ActionKind = "approve_photo"
	ActionRejectPhoto  ActionKind = "reject_photo"
)

func (k ActionKind) IsPhoto() bool {
	return k == ActionApprovePhoto || k == ActionRejectPhoto
}

func (k ActionKind) IsApprove() bool {
	return k == ActionApproveUser || k == ActionApprovePhoto
}
