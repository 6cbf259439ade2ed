package repository

import (
	"context"

	"github.com/customtee/platform-api/internal/domain/entity"
	"github.com/customtee/platform-api/internal/listing"
)

// UserFilter narrows the admin user listing. Zero values mean "no filter";
// the tri-state Admin/Active flags use nil for "all".
type UserFilter struct {
	Search string      // ILIKE over email/username/first/last name
	Role   entity.Role // exact match, empty = all
	Admin  *bool
	Active *bool // true = not deleted
	Sort   listing.Sort
	Page   listing.Page
}

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, f UserFilter) ([]entity.User, int, error)
	Count(ctx context.Context) (int, error)

	// Single-field mutators. Each returns ErrNotFound when the id does not
	// resolve; none performs cross-field validation.
	SetRole(ctx context.Context, id string, role entity.Role) (*entity.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) (*entity.User, error)
	SetActive(ctx context.Context, id string, active bool) (*entity.User, error)
}
