package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/customtee/platform-api/internal/domain/entity"
	repo "github.com/customtee/platform-api/internal/domain/repository"
)

// OverviewService aggregates the admin dashboard counters.
type OverviewService struct {
	Users  repo.UserRepository
	Apps   repo.ApplicationRepository
	Logger *logrus.Logger
}

func NewOverviewService(users repo.UserRepository, apps repo.ApplicationRepository, logger *logrus.Logger) *OverviewService {
	return &OverviewService{Users: users, Apps: apps, Logger: logger}
}

// AdminOverview is the admin dashboard payload. Designs and Orders are
// always zero until catalog authorship and ordering land.
type AdminOverview struct {
	Users            int `json:"users"`
	Freelancers      int `json:"freelancers"`
	Designs          int `json:"designs"`
	Orders           int `json:"orders"`
	PendingApprovals int `json:"pendingApprovals"`
}

// AdminStats returns the dashboard counters. Each counter degrades to zero
// on storage failure so the dashboard renders with partial data.
func (s *OverviewService) AdminStats(ctx context.Context) *AdminOverview {
	out := &AdminOverview{}

	if n, err := s.Users.Count(ctx); err != nil {
		s.Logger.WithError(err).Warn("user count failed, reporting zero")
	} else {
		out.Users = n
	}

	if n, err := s.Apps.CountByStatus(ctx, entity.StatusApproved); err != nil {
		s.Logger.WithError(err).Warn("approved application count failed, reporting zero")
	} else {
		out.Freelancers = n
	}

	if n, err := s.Apps.CountByStatus(ctx, entity.StatusPending); err != nil {
		s.Logger.WithError(err).Warn("pending application count failed, reporting zero")
	} else {
		out.PendingApprovals = n
	}

	return out
}
