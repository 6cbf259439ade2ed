package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/customtee/platform-api/internal/domain/entity"
	repo "github.com/customtee/platform-api/internal/domain/repository"
	"github.com/customtee/platform-api/internal/listing"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)

// DirectoryService is the admin user directory: filtered listing plus the
// three single-field account mutators.
type DirectoryService struct {
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewDirectoryService(users repo.UserRepository, logger *logrus.Logger) *DirectoryService {
	return &DirectoryService{Users: users, Logger: logger}
}

// UserListParams are the raw admin listing filters. Admin and Active are
// tri-state: "", "true", "false".
type UserListParams struct {
	Search   string
	Role     string
	Admin    string
	Active   string
	SortBy   string
	SortDir  string
	Page     string
	PageSize string
}

// UserPage is the admin user listing payload.
type UserPage struct {
	Users      []entity.User `json:"users"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

func triState(s string) *bool {
	switch s {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

// ListUsers returns the filtered user directory. Filter values outside the
// allow-lists fall back to defaults; only storage failure errors.
func (s *DirectoryService) ListUsers(ctx context.Context, p UserListParams) (*UserPage, error) {
	page := listing.NormalizePage(p.Page, p.PageSize, listing.AdminDefaultPageSize, listing.AdminMaxPageSize)

	role := entity.Role(p.Role)
	if !role.Valid() {
		role = ""
	}

	filter := repo.UserFilter{
		Search: listing.NormalizeSearch(p.Search),
		Role:   role,
		Admin:  triState(p.Admin),
		Active: triState(p.Active),
		Sort:   listing.NormalizeSort(p.SortBy, p.SortDir, listing.UserSortKeys, "dateJoined"),
		Page:   page,
	}

	users, total, err := s.Users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []entity.User{}
	}

	return &UserPage{
		Users:      users,
		Total:      total,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: listing.TotalPages(total, page.Size),
	}, nil
}

// SetRole changes a user's marketplace role. Demoting a freelancer does not
// cascade to applications or designs; the APPROVED application stays as a
// historical record.
func (s *DirectoryService) SetRole(ctx context.Context, userID string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	u, err := s.Users.SetRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "role": role}).Info("user role updated")
	return u, nil
}

// SetAdmin grants or revokes the admin flag. The flag is independent of the
// marketplace role.
func (s *DirectoryService) SetAdmin(ctx context.Context, userID string, isAdmin bool) (*entity.User, error) {
	u, err := s.Users.SetAdmin(ctx, userID, isAdmin)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "is_admin": isAdmin}).Info("user admin flag updated")
	return u, nil
}

// SetActive activates or deactivates an account. Deactivation is a soft
// flag; the row and its relations are preserved.
func (s *DirectoryService) SetActive(ctx context.Context, userID string, active bool) (*entity.User, error) {
	u, err := s.Users.SetActive(ctx, userID, active)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "active": active}).Info("user active flag updated")
	return u, nil
}
