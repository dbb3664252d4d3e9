package enums

type AuditAction string

const (
	AuditActionUserApproved   AuditAction = "USER_APPROVED"
	AuditActionUserRejected   AuditAction = "USER_REJECTED"
	AuditActionPhotoApproved  AuditAction = "PHOTO_APPROVED"
	AuditActionPhotoRejected  AuditAction = "PHOTO_REJECTED"
	AuditActionPointsAdjusted AuditAction = "POINTS_ADJUSTED"
)
