package repository

import (
	"context"
	"time"

	"github.com/customtee/platform-api/internal/domain/entity"
	"github.com/customtee/platform-api/internal/listing"
)

// ApplicationFilter narrows the admin application listing.
type ApplicationFilter struct {
	Status   entity.ApplicationStatus // empty = all
	Search   string                   // ILIKE over the linked user's email/username/first/last name
	DateFrom *time.Time
	DateTo   *time.Time
	Sort     listing.Sort
	Page     listing.Page
}

// ApplicationRepository defines the persistence contract for freelancer
// applications.
type ApplicationRepository interface {
	// Upsert creates the user's application as PENDING, or resets an
	// existing one back to PENDING overwriting notes. Implemented as a
	// single conditional write so there is no race between the existence
	// check and the create. The boolean reports whether a new row was
	// inserted rather than an existing one reset.
	Upsert(ctx context.Context, userID, notes string) (*entity.FreelancerApplication, bool, error)

	GetByUserID(ctx context.Context, userID string) (*entity.FreelancerApplication, error)
	GetByID(ctx context.Context, id string) (*entity.FreelancerApplication, error)

	// ApproveAndPromote sets the application APPROVED and promotes the
	// owning user's role to FREELANCER inside a single transaction; the
	// caller never observes one write without the other.
	ApproveAndPromote(ctx context.Context, id string) (*entity.FreelancerApplication, error)

	// SetStatus updates only the status column (used for reject).
	SetStatus(ctx context.Context, id string, status entity.ApplicationStatus) (*entity.FreelancerApplication, error)

	List(ctx context.Context, f ApplicationFilter) ([]entity.ApplicationWithUser, int, error)
	CountByStatus(ctx context.Context, status entity.ApplicationStatus) (int, error)
}
