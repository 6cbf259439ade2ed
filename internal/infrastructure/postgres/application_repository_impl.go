package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/customtee/platform-api/internal/domain/entity"
	"github.com/customtee/platform-api/internal/domain/repository"
)

const applicationColumns = `id, user_id, status, COALESCE(notes, ''), created_at, updated_at`

type ApplicationRepository struct {
	db DB
}

func NewApplicationRepository(db DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func scanApplication(row pgx.Row) (*entity.FreelancerApplication, error) {
	a := &entity.FreelancerApplication{}
	if err := row.Scan(&a.ID, &a.UserID, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Upsert is the create-or-reset write behind apply: one conditional
// statement, so there is no window between the existence check and the
// create in which a concurrent apply could slip a duplicate in. The
// xmax = 0 check distinguishes a fresh insert from a conflict update.
func (r *ApplicationRepository) Upsert(ctx context.Context, userID, notes string) (*entity.FreelancerApplication, bool, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO freelancer_applications (user_id, status, notes)
		VALUES ($1, 'PENDING', NULLIF($2, ''))
		ON CONFLICT (user_id)
		DO UPDATE SET status = 'PENDING', notes = NULLIF($2, ''), updated_at = now()
		RETURNING `+applicationColumns+`, (xmax = 0)`, userID, notes)
	a := &entity.FreelancerApplication{}
	var created bool
	if err := row.Scan(&a.ID, &a.UserID, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt, &created); err != nil {
		return nil, false, fmt.Errorf("upsert application: %w", err)
	}
	return a, created, nil
}

func (r *ApplicationRepository) GetByUserID(ctx context.Context, userID string) (*entity.FreelancerApplication, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM freelancer_applications WHERE user_id = $1`, userID)
	return scanApplication(row)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*entity.FreelancerApplication, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM freelancer_applications WHERE id = $1`, id)
	return scanApplication(row)
}

// ApproveAndPromote runs both writes in one transaction: the caller never
// observes APPROVED without the role promotion or vice versa.
func (r *ApplicationRepository) ApproveAndPromote(ctx context.Context, id string) (*entity.FreelancerApplication, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin approve tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		UPDATE freelancer_applications SET status = 'APPROVED', updated_at = now()
		WHERE id = $1
		RETURNING `+applicationColumns, id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("approve application: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = now() WHERE id = $2`,
		entity.RoleFreelancer, a.UserID); err != nil {
		return nil, fmt.Errorf("promote applicant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit approve tx: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepository) SetStatus(ctx context.Context, id string, status entity.ApplicationStatus) (*entity.FreelancerApplication, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE freelancer_applications SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+applicationColumns, status, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) List(ctx context.Context, f repository.ApplicationFilter) ([]entity.ApplicationWithUser, int, error) {
	var where strings.Builder
	where.WriteString(" WHERE 1=1")
	args := []any{}

	if f.Status.Valid() {
		args = append(args, f.Status)
		where.WriteString(fmt.Sprintf(" AND a.status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where.WriteString(fmt.Sprintf(
			" AND (u.email ILIKE $%d OR u.username ILIKE $%d OR u.first_name ILIKE $%d OR u.last_name ILIKE $%d)",
			n, n, n, n))
	}
	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		where.WriteString(fmt.Sprintf(" AND a.created_at >= $%d", len(args)))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		where.WriteString(fmt.Sprintf(" AND a.created_at <= $%d", len(args)))
	}

	from := " FROM freelancer_applications a JOIN users u ON u.id = a.user_id"

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*)"+from+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	column := "a.created_at"
	if f.Sort.By == "status" {
		column = "a.status"
	}
	dir := "DESC"
	if f.Sort.Dir == "asc" {
		dir = "ASC"
	}

	args = append(args, f.Page.Size, f.Page.Offset())
	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.status, COALESCE(a.notes, ''), a.created_at, a.updated_at,
		       u.id, u.email, u.username, u.first_name, u.last_name
		%s%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		from, where.String(), column, dir, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]entity.ApplicationWithUser, 0, f.Page.Size)
	for rows.Next() {
		var a entity.ApplicationWithUser
		if err := rows.Scan(&a.ID, &a.UserID, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
			&a.User.ID, &a.User.Email, &a.User.Username, &a.User.FirstName, &a.User.LastName); err != nil {
			return nil, 0, fmt.Errorf("scan application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate application rows: %w", err)
	}
	return apps, total, nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, status entity.ApplicationStatus) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM freelancer_applications WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count applications by status: %w", err)
	}
	return n, nil
}

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)
