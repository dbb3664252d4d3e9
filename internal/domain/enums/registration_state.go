package enums

// RegistrationState is where a Telegram user stands in the sign-up flow.
// Only AWAITING_NAME lives in the conversation store; the other states are
// derived from the users table.
type RegistrationState string

const (
	RegistrationUnregistered    RegistrationState = "UNREGISTERED"
	RegistrationAwaitingName    RegistrationState = "AWAITING_NAME"
	RegistrationPendingApproval RegistrationState = "PENDING_APPROVAL"
	RegistrationApproved        RegistrationState = "APPROVED"
)
