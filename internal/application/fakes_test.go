package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/customtee/platform-api/internal/domain/entity"
	repo "github.com/customtee/platform-api/internal/domain/repository"
	"github.com/customtee/platform-api/pkg/mailer"
)

var errStorage = errors.New("storage down")

// ---- design repository fake ----

type fakeDesignRepo struct {
	designs    []entity.MarketplaceDesign
	categories []entity.Category
	favorites  map[string]map[string]bool // designID -> userID -> true
	fail       bool
	lastFilter repo.DesignFilter
}

func newFakeDesignRepo() *fakeDesignRepo {
	return &fakeDesignRepo{favorites: map[string]map[string]bool{}}
}

func (f *fakeDesignRepo) addDesign(id, title, description string, cats ...entity.Category) {
	f.designs = append(f.designs, entity.MarketplaceDesign{
		Design:     entity.Design{ID: id, Title: title, Description: description, IsPublished: true},
		Categories: cats,
	})
}

func (f *fakeDesignRepo) ListPublished(_ context.Context, filter repo.DesignFilter) ([]entity.MarketplaceDesign, int, error) {
	if f.fail {
		return nil, 0, errStorage
	}
	f.lastFilter = filter

	matched := []entity.MarketplaceDesign{}
	for _, d := range f.designs {
		if filter.Search != "" {
			haystack := strings.ToLower(d.Title + " " + d.Description)
			if !strings.Contains(haystack, strings.ToLower(filter.Search)) {
				continue
			}
		}
		if filter.CategorySlug != "" {
			found := false
			for _, c := range d.Categories {
				if c.Slug == filter.CategorySlug {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		d.IsFavorite = f.favorites[d.ID][filter.ViewerID]
		d.FavoritesCount = len(f.favorites[d.ID])
		matched = append(matched, d)
	}

	total := len(matched)
	start := filter.Page.Offset()
	if start > total {
		start = total
	}
	end := start + filter.Page.Size
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeDesignRepo) ListCategories(context.Context) ([]entity.Category, error) {
	if f.fail {
		return nil, errStorage
	}
	out := append([]entity.Category{}, f.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeDesignRepo) GetPublished(_ context.Context, id string) (*entity.Design, error) {
	if f.fail {
		return nil, errStorage
	}
	for _, d := range f.designs {
		if d.ID == id && d.IsPublished {
			design := d.Design
			return &design, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeDesignRepo) FavoriteExists(_ context.Context, designID, userID string) (bool, error) {
	return f.favorites[designID][userID], nil
}

func (f *fakeDesignRepo) AddFavorite(_ context.Context, designID, userID string) error {
	if f.favorites[designID] == nil {
		f.favorites[designID] = map[string]bool{}
	}
	f.favorites[designID][userID] = true
	return nil
}

func (f *fakeDesignRepo) RemoveFavorite(_ context.Context, designID, userID string) error {
	delete(f.favorites[designID], userID)
	return nil
}

func (f *fakeDesignRepo) CountFavorites(_ context.Context, designID string) (int, error) {
	return len(f.favorites[designID]), nil
}

// ---- user repository fake ----

type fakeUserRepo struct {
	users map[string]*entity.User
	fail  bool
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if f.fail {
		return errStorage
	}
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.fail {
		return nil, errStorage
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.fail {
		return nil, errStorage
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context, filter repo.UserFilter) ([]entity.User, int, error) {
	if f.fail {
		return nil, 0, errStorage
	}
	matched := []entity.User{}
	for _, u := range f.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Admin != nil && u.IsAdmin != *filter.Admin {
			continue
		}
		if filter.Active != nil && u.IsDeleted == *filter.Active {
			continue
		}
		if filter.Search != "" {
			haystack := strings.ToLower(u.Email + " " + u.Username + " " + u.FirstName + " " + u.LastName)
			if !strings.Contains(haystack, strings.ToLower(filter.Search)) {
				continue
			}
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, len(matched), nil
}

func (f *fakeUserRepo) Count(context.Context) (int, error) {
	if f.fail {
		return 0, errStorage
	}
	return len(f.users), nil
}

func (f *fakeUserRepo) SetRole(_ context.Context, id string, role entity.Role) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u.Role = role
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) SetAdmin(_ context.Context, id string, isAdmin bool) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u.IsAdmin = isAdmin
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id string, active bool) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u.IsDeleted = !active
	copied := *u
	return &copied, nil
}

// ---- application repository fake ----

type fakeAppRepo struct {
	byID   map[string]*entity.FreelancerApplication
	byUser map[string]*entity.FreelancerApplication
	users  *fakeUserRepo
	seq    int
	fail   bool

	lastFilter repo.ApplicationFilter
}

func newFakeAppRepo(users *fakeUserRepo) *fakeAppRepo {
	return &fakeAppRepo{
		byID:   map[string]*entity.FreelancerApplication{},
		byUser: map[string]*entity.FreelancerApplication{},
		users:  users,
	}
}

func (f *fakeAppRepo) Upsert(_ context.Context, userID, notes string) (*entity.FreelancerApplication, bool, error) {
	if f.fail {
		return nil, false, errStorage
	}
	if app, ok := f.byUser[userID]; ok {
		app.Status = entity.StatusPending
		app.Notes = notes
		copied := *app
		return &copied, false, nil
	}
	f.seq++
	app := &entity.FreelancerApplication{
		ID:     fmt.Sprintf("app-%d", f.seq),
		UserID: userID,
		Status: entity.StatusPending,
		Notes:  notes,
	}
	f.byID[app.ID] = app
	f.byUser[userID] = app
	copied := *app
	return &copied, true, nil
}

func (f *fakeAppRepo) GetByUserID(_ context.Context, userID string) (*entity.FreelancerApplication, error) {
	if f.fail {
		return nil, errStorage
	}
	app, ok := f.byUser[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *app
	return &copied, nil
}

func (f *fakeAppRepo) GetByID(_ context.Context, id string) (*entity.FreelancerApplication, error) {
	app, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *app
	return &copied, nil
}

func (f *fakeAppRepo) ApproveAndPromote(ctx context.Context, id string) (*entity.FreelancerApplication, error) {
	if f.fail {
		return nil, errStorage
	}
	app, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	app.Status = entity.StatusApproved
	if _, err := f.users.SetRole(ctx, app.UserID, entity.RoleFreelancer); err != nil {
		return nil, err
	}
	copied := *app
	return &copied, nil
}

func (f *fakeAppRepo) SetStatus(_ context.Context, id string, status entity.ApplicationStatus) (*entity.FreelancerApplication, error) {
	if f.fail {
		return nil, errStorage
	}
	app, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	app.Status = status
	copied := *app
	return &copied, nil
}

func (f *fakeAppRepo) List(_ context.Context, filter repo.ApplicationFilter) ([]entity.ApplicationWithUser, int, error) {
	if f.fail {
		return nil, 0, errStorage
	}
	f.lastFilter = filter

	matched := []entity.ApplicationWithUser{}
	for _, app := range f.byID {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		row := entity.ApplicationWithUser{FreelancerApplication: *app}
		if u, ok := f.users.users[app.UserID]; ok {
			row.User = entity.ApplicantSummary{
				ID: u.ID, Email: u.Email, Username: u.Username,
				FirstName: u.FirstName, LastName: u.LastName,
			}
		}
		matched = append(matched, row)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := filter.Page.Offset()
	if start > total {
		start = total
	}
	end := start + filter.Page.Size
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeAppRepo) CountByStatus(_ context.Context, status entity.ApplicationStatus) (int, error) {
	if f.fail {
		return 0, errStorage
	}
	n := 0
	for _, app := range f.byID {
		if app.Status == status {
			n++
		}
	}
	return n, nil
}

// ---- notifier fake ----

type fakeNotifier struct {
	jobs []mailer.EmailJob
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, job mailer.EmailJob) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}
