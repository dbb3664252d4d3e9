package access

import "errors"

var ErrAccessDenied = errors.New("access denied")

// Service answers authorization questions against the fixed admin list.
type Service struct {
	admins map[int64]struct{}
}

func NewService(adminIDs []int64) *Service {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if id != 0 {
			admins[id] = struct{}{}
		}
	}
	return &Service{admins: admins}
}

func (s *Service) IsAdmin(tgID int64) bool {
	_, ok := s.admins[tgID]
	return ok
}

func (s *Service) RequireAdmin(tgID int64) error {
	if !s.IsAdmin(tgID) {
		return ErrAccessDenied
	}
	return nil
}
