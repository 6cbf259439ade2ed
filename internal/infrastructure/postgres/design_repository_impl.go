package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/customtee/platform-api/internal/domain/entity"
	"github.com/customtee/platform-api/internal/domain/repository"
	"github.com/customtee/platform-api/internal/listing"
)

type DesignRepository struct {
	db DB
}

func NewDesignRepository(db DB) *DesignRepository {
	return &DesignRepository{db: db}
}

// designOrderBy returns the ORDER BY clause for a normalized marketplace
// sort. The rating sort uses a three-level tie-break so the ordering is
// deterministic.
func designOrderBy(sort listing.MarketplaceSort) string {
	switch sort {
	case listing.SortPriceAsc:
		return "d.price ASC"
	case listing.SortPriceDesc:
		return "d.price DESC"
	case listing.SortRating:
		return "d.average_rating DESC, d.review_count DESC, d.created_at DESC"
	default:
		return "d.created_at DESC"
	}
}

// buildDesignWhere renders the filter conditions shared by the count and
// page queries. Placeholders start at $1.
func buildDesignWhere(f repository.DesignFilter) (string, []any) {
	var where strings.Builder
	where.WriteString(" WHERE d.is_published = TRUE")
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where.WriteString(fmt.Sprintf(" AND (d.title ILIKE $%d OR d.description ILIKE $%d)", n, n))
	}
	if f.CategorySlug != "" && f.CategorySlug != "all" {
		args = append(args, f.CategorySlug)
		where.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM design_categories dc JOIN categories c ON c.id = dc.category_id WHERE dc.design_id = d.id AND c.slug = $%d)",
			len(args)))
	}
	return where.String(), args
}

func (r *DesignRepository) ListPublished(ctx context.Context, f repository.DesignFilter) ([]entity.MarketplaceDesign, int, error) {
	where, args := buildDesignWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM designs d"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count designs: %w", err)
	}

	// Favorite state is computed per request for the viewer; it is never
	// cached on the design row.
	viewer := len(args) + 1
	args = append(args, f.ViewerID, f.Page.Size, f.Page.Offset())
	query := fmt.Sprintf(`
		SELECT d.id, d.slug, d.title, d.description, d.price, d.image_url, d.tags,
		       d.average_rating, d.review_count, d.is_published, d.created_at, d.updated_at,
		       EXISTS (SELECT 1 FROM design_favorites f WHERE f.design_id = d.id AND f.user_id = $%d) AS is_favorite,
		       (SELECT COUNT(*) FROM design_favorites f WHERE f.design_id = d.id) AS favorites_count
		FROM designs d%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		viewer, where, designOrderBy(f.Sort), viewer+1, viewer+2)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	designs := make([]entity.MarketplaceDesign, 0, f.Page.Size)
	ids := make([]string, 0, f.Page.Size)
	for rows.Next() {
		var d entity.MarketplaceDesign
		if err := rows.Scan(&d.ID, &d.Slug, &d.Title, &d.Description, &d.Price, &d.ImageURL, &d.Tags,
			&d.AverageRating, &d.ReviewCount, &d.IsPublished, &d.CreatedAt, &d.UpdatedAt,
			&d.IsFavorite, &d.FavoritesCount); err != nil {
			return nil, 0, fmt.Errorf("scan design row: %w", err)
		}
		d.Categories = []entity.Category{}
		designs = append(designs, d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate design rows: %w", err)
	}

	if err := r.attachCategories(ctx, designs, ids); err != nil {
		return nil, 0, err
	}
	return designs, total, nil
}

func (r *DesignRepository) attachCategories(ctx context.Context, designs []entity.MarketplaceDesign, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT dc.design_id, c.id, c.name, c.slug
		FROM design_categories dc
		JOIN categories c ON c.id = dc.category_id
		WHERE dc.design_id = ANY($1::uuid[])
		ORDER BY c.name ASC`, ids)
	if err != nil {
		return fmt.Errorf("list design categories: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]int, len(designs))
	for i := range designs {
		byID[designs[i].ID] = i
	}
	for rows.Next() {
		var designID string
		var c entity.Category
		if err := rows.Scan(&designID, &c.ID, &c.Name, &c.Slug); err != nil {
			return fmt.Errorf("scan design category row: %w", err)
		}
		if i, ok := byID[designID]; ok {
			designs[i].Categories = append(designs[i].Categories, c)
		}
	}
	return rows.Err()
}

func (r *DesignRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []entity.Category{}
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *DesignRepository) GetPublished(ctx context.Context, id string) (*entity.Design, error) {
	d := &entity.Design{}
	row := r.db.QueryRow(ctx, `
		SELECT id, slug, title, description, price, image_url, tags,
		       average_rating, review_count, is_published, created_at, updated_at
		FROM designs
		WHERE id = $1 AND is_published = TRUE`, id)
	if err := row.Scan(&d.ID, &d.Slug, &d.Title, &d.Description, &d.Price, &d.ImageURL, &d.Tags,
		&d.AverageRating, &d.ReviewCount, &d.IsPublished, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get design: %w", err)
	}
	return d, nil
}

func (r *DesignRepository) FavoriteExists(ctx context.Context, designID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM design_favorites WHERE design_id = $1 AND user_id = $2)`,
		designID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return exists, nil
}

func (r *DesignRepository) AddFavorite(ctx context.Context, designID, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO design_favorites (design_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (design_id, user_id) DO NOTHING`, designID, userID)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *DesignRepository) RemoveFavorite(ctx context.Context, designID, userID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM design_favorites WHERE design_id = $1 AND user_id = $2`, designID, userID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *DesignRepository) CountFavorites(ctx context.Context, designID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM design_favorites WHERE design_id = $1`, designID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return n, nil
}

var _ repository.DesignRepository = (*DesignRepository)(nil)
