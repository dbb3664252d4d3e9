package postgres

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyApproved = errors.New("user already approved")
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrPhotoAlreadyDecided = errors.New("photo already decided")
)
