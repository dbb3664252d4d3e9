package enums

type PhotoStatus string

const (
	PhotoStatusPending  PhotoStatus = "pending"
	PhotoStatusApproved PhotoStatus = "approved"
	PhotoStatusRejected PhotoStatus = "rejected"
)

func (s PhotoStatus) IsFinal() bool {
	return s == PhotoStatusApproved || s == PhotoStatusRejected
}
