package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/customtee/platform-api/internal/domain/entity"
	repo "github.com/customtee/platform-api/internal/domain/repository"
	"github.com/customtee/platform-api/internal/listing"
	"github.com/customtee/platform-api/pkg/mailer"
	"github.com/customtee/platform-api/pkg/mailer/templates"
)

var ErrApplicationNotFound = errors.New("application not found")

// MailBranding carries the static fields every transactional email needs.
type MailBranding struct {
	CompanyName    string
	LogoURL        string
	SupportURL     string
	DashboardURL   string
	UnsubscribeURL string
}

// ReviewService owns the freelancer application lifecycle: apply, self
// status lookup, and the admin review decisions.
type ReviewService struct {
	Apps     repo.ApplicationRepository
	Users    repo.UserRepository
	Notifier Notifier
	Branding MailBranding
	Logger   *logrus.Logger
}

func NewReviewService(apps repo.ApplicationRepository, users repo.UserRepository, notifier Notifier, branding MailBranding, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Apps: apps, Users: users, Notifier: notifier, Branding: branding, Logger: logger}
}

// Apply files (or re-files) the user's freelancer application. Re-applying
// resets the existing row to PENDING and overwrites the notes; a duplicate
// row is structurally impossible. The boolean reports whether this apply
// created the application rather than reset an existing one.
func (s *ReviewService) Apply(ctx context.Context, userID, notes string) (*entity.FreelancerApplication, bool, error) {
	app, created, err := s.Apps.Upsert(ctx, userID, notes)
	if err != nil {
		return nil, false, err
	}
	s.notifyApplicant(ctx, userID, templates.ApplicationReceived, app)
	return app, created, nil
}

// MyApplication is the applicant-facing status payload. Status NONE means
// no application has ever been filed.
type MyApplication struct {
	Status      entity.ApplicationStatus      `json:"status"`
	Application *entity.FreelancerApplication `json:"application,omitempty"`
}

// Mine reports the caller's own application state.
func (s *ReviewService) Mine(ctx context.Context, userID string) (*MyApplication, error) {
	app, err := s.Apps.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return &MyApplication{Status: entity.StatusNone}, nil
		}
		return nil, err
	}
	return &MyApplication{Status: app.Status, Application: app}, nil
}

// Approve marks the application APPROVED and promotes its owner to
// FREELANCER. Both writes happen in one transaction; the approval email is
// sent only after that transaction commits.
func (s *ReviewService) Approve(ctx context.Context, appID string) (*entity.FreelancerApplication, error) {
	app, err := s.Apps.ApproveAndPromote(ctx, appID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	s.notifyApplicant(ctx, app.UserID, templates.ApplicationApproved, app)
	return app, nil
}

// Reject marks the application REJECTED. The owner's role is untouched;
// a previously approved freelancer keeps the role until an admin changes it
// through the user directory.
func (s *ReviewService) Reject(ctx context.Context, appID string) (*entity.FreelancerApplication, error) {
	app, err := s.Apps.SetStatus(ctx, appID, entity.StatusRejected)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	s.notifyApplicant(ctx, app.UserID, templates.ApplicationRejected, app)
	return app, nil
}

// ApplicationListParams are the raw admin listing filters.
type ApplicationListParams struct {
	Status   string
	Search   string
	DateFrom string
	DateTo   string
	SortBy   string
	SortDir  string
	Page     string
	PageSize string
}

// ApplicationPage is the admin review listing payload.
type ApplicationPage struct {
	Applications []entity.ApplicationWithUser `json:"applications"`
	Total        int                          `json:"total"`
	Page         int                          `json:"page"`
	PageSize     int                          `json:"pageSize"`
	TotalPages   int                          `json:"totalPages"`
}

// List returns the admin application listing. Unknown filter values degrade
// to defaults rather than erroring; only storage failure is surfaced.
func (s *ReviewService) List(ctx context.Context, p ApplicationListParams) (*ApplicationPage, error) {
	page := listing.NormalizePage(p.Page, p.PageSize, listing.AdminDefaultPageSize, listing.AdminMaxPageSize)

	status := entity.ApplicationStatus(p.Status)
	if !status.Valid() {
		status = ""
	}

	filter := repo.ApplicationFilter{
		Status:   status,
		Search:   listing.NormalizeSearch(p.Search),
		DateFrom: listing.NormalizeDate(p.DateFrom),
		DateTo:   listing.NormalizeDate(p.DateTo),
		Sort:     listing.NormalizeSort(p.SortBy, p.SortDir, listing.ApplicationSortKeys, "createdAt"),
		Page:     page,
	}

	apps, total, err := s.Apps.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []entity.ApplicationWithUser{}
	}

	return &ApplicationPage{
		Applications: apps,
		Total:        total,
		Page:         page.Number,
		PageSize:     page.Size,
		TotalPages:   listing.TotalPages(total, page.Size),
	}, nil
}

// notifyApplicant enqueues a status email for the application's owner.
// Failures are logged and swallowed; mail never blocks a state transition.
func (s *ReviewService) notifyApplicant(ctx context.Context, userID, template string, app *entity.FreelancerApplication) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("skipping application email, user lookup failed")
		return
	}

	data := templates.EmailData{
		Name:           user.FirstName,
		Email:          user.Email,
		CompanyName:    s.Branding.CompanyName,
		LogoURL:        s.Branding.LogoURL,
		SupportURL:     s.Branding.SupportURL,
		DashboardURL:   s.Branding.DashboardURL,
		UnsubscribeURL: s.Branding.UnsubscribeURL,
		Status:         string(app.Status),
		Notes:          app.Notes,
	}

	job := mailer.EmailJob{
		To:       user.Email,
		Template: template,
		Data:     templates.ToMap(data),
	}
	if err := s.Notifier.Notify(ctx, job); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"template": template,
		}).Warn("application email enqueue failed")
	}
}
