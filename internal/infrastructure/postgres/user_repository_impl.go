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

const userColumns = `id, email, username, first_name, last_name, password_hash, role, is_admin, verified, is_deleted, date_joined, updated_at`

// userSortColumns maps allow-listed sort keys to columns. Keys are already
// validated by the listing package; the map is the second line of defense
// that keeps user input out of the ORDER BY clause.
var userSortColumns = map[string]string{
	"dateJoined": "date_joined",
	"firstName":  "first_name",
	"lastName":   "last_name",
	"role":       "role",
	"isAdmin":    "is_admin",
	"isDeleted":  "is_deleted",
}

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.Password,
		&u.Role, &u.IsAdmin, &u.Verified, &u.IsDeleted, &u.DateJoined, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, username, first_name, last_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_admin, verified, is_deleted, date_joined, updated_at
	`, u.Email, u.Username, u.FirstName, u.LastName, u.Password, u.Role)

	if err := row.Scan(&u.ID, &u.IsAdmin, &u.Verified, &u.IsDeleted, &u.DateJoined, &u.UpdatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return scanUser(row)
}

// List applies the directory filters and returns one page plus the total
// count of matching rows.
func (r *UserRepository) List(ctx context.Context, f repository.UserFilter) ([]entity.User, int, error) {
	var where strings.Builder
	where.WriteString(" WHERE 1=1")
	args := []any{}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		args = append(args, pattern)
		n := len(args)
		where.WriteString(fmt.Sprintf(
			" AND (email ILIKE $%d OR username ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)",
			n, n, n, n))
	}
	if f.Role != "" {
		args = append(args, f.Role)
		where.WriteString(fmt.Sprintf(" AND role = $%d", len(args)))
	}
	if f.Admin != nil {
		args = append(args, *f.Admin)
		where.WriteString(fmt.Sprintf(" AND is_admin = $%d", len(args)))
	}
	if f.Active != nil {
		// active means not deleted
		args = append(args, !*f.Active)
		where.WriteString(fmt.Sprintf(" AND is_deleted = $%d", len(args)))
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users"+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	column, ok := userSortColumns[f.Sort.By]
	if !ok {
		column = "date_joined"
	}
	dir := "DESC"
	if f.Sort.Dir == "asc" {
		dir = "ASC"
	}

	args = append(args, f.Page.Size, f.Page.Offset())
	query := fmt.Sprintf(
		`SELECT id, email, username, first_name, last_name, role, is_admin, verified, is_deleted, date_joined, updated_at
		 FROM users%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where.String(), column, dir, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]entity.User, 0, f.Page.Size)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
			&u.Role, &u.IsAdmin, &u.Verified, &u.IsDeleted, &u.DateJoined, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) SetRole(ctx context.Context, id string, role entity.Role) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET role = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+userColumns, role, id)
	return scanUser(row)
}

func (r *UserRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET is_admin = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+userColumns, isAdmin, id)
	return scanUser(row)
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET is_deleted = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+userColumns, !active, id)
	return scanUser(row)
}

var _ repository.UserRepository = (*UserRepository)(nil)
