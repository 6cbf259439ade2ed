package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/customtee/platform-api/config"
	pginfra "github.com/customtee/platform-api/internal/infrastructure/postgres"
	"github.com/customtee/platform-api/pkg/helpers"
)

type seedDesign struct {
	Slug        string
	Title       string
	Description string
	Price       float64
	ImageURL    string
	Category    string
	Tags        []string
	Rating      float64
	ReviewCount int
}

var sampleDesigns = []seedDesign{
	{
		Slug:        "sunset-horizon",
		Title:       "Sunset Horizon",
		Description: "A vibrant gradient design inspired by beach sunsets and soft ocean breezes.",
		Price:       27.99,
		ImageURL:    "https://images.unsplash.com/photo-1498050108023-c5249f4df085?auto=format&fit=crop&w=900&q=80",
		Category:    "Nature",
		Tags:        []string{"nature", "sunset", "gradient"},
		Rating:      4.8,
		ReviewCount: 142,
	},
	{
		Slug:        "retro-wave",
		Title:       "Retro Wave",
		Description: "Bold neon lines and a classic synthwave palette for lovers of the 80s aesthetic.",
		Price:       24.99,
		ImageURL:    "https://images.unsplash.com/photo-1521572267360-ee0c2909d518?auto=format&fit=crop&w=900&q=80",
		Category:    "Pop Culture",
		Tags:        []string{"retro", "synthwave", "neon"},
		Rating:      4.6,
		ReviewCount: 98,
	},
	{
		Slug:        "minimal-monstera",
		Title:       "Minimal Monstera",
		Description: "A clean, minimalist outline of monstera leaves on a neutral background.",
		Price:       22.50,
		ImageURL:    "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=900&q=80",
		Category:    "Minimalist",
		Tags:        []string{"minimalist", "botanical", "lineart"},
		Rating:      4.9,
		ReviewCount: 205,
	},
	{
		Slug:        "galactic-dreams",
		Title:       "Galactic Dreams",
		Description: "An illustrated journey through space featuring planets, comets, and starfields.",
		Price:       29.99,
		ImageURL:    "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee?auto=format&fit=crop&w=900&q=80",
		Category:    "Illustration",
		Tags:        []string{"space", "illustration", "galaxy"},
		Rating:      4.7,
		ReviewCount: 167,
	},
	{
		Slug:        "bold-typography",
		Title:       "Bold Statement",
		Description: "High-impact typography design to make your message stand out loud and clear.",
		Price:       21.50,
		ImageURL:    "https://images.unsplash.com/photo-1522202176988-66273c2fd55f?auto=format&fit=crop&w=900&q=80",
		Category:    "Typography",
		Tags:        []string{"typography", "bold", "statement"},
		Rating:      4.5,
		ReviewCount: 86,
	},
	{
		Slug:        "urban-photography",
		Title:       "Urban Reflections",
		Description: "Street photography capturing neon reflections in the heart of the city.",
		Price:       26.00,
		ImageURL:    "https://images.unsplash.com/photo-1498050108023-c5249f4df085?auto=format&fit=crop&w=900&q=80",
		Category:    "Photography",
		Tags:        []string{"photography", "urban", "nightlife"},
		Rating:      4.4,
		ReviewCount: 64,
	},
	{
		Slug:        "abstract-flow",
		Title:       "Abstract Flow",
		Description: "Dynamic curved shapes and pastel gradients that create a calming visual flow.",
		Price:       23.75,
		ImageURL:    "https://images.unsplash.com/photo-1526481280695-3c46917e2e8f?auto=format&fit=crop&w=900&q=80",
		Category:    "Abstract",
		Tags:        []string{"abstract", "pastel", "fluid"},
		Rating:      4.3,
		ReviewCount: 72,
	},
	{
		Slug:        "wanderlust-map",
		Title:       "Wanderlust Map",
		Description: "Hand-drawn world map with travel icons for the adventure seekers.",
		Price:       28.50,
		ImageURL:    "https://images.unsplash.com/photo-1500534314209-a25ddb2bd429?auto=format&fit=crop&w=900&q=80",
		Category:    "Illustration",
		Tags:        []string{"travel", "illustration", "map"},
		Rating:      4.9,
		ReviewCount: 231,
	},
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(s, " ", "-")
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	for _, d := range sampleDesigns {
		var categoryID string
		err := pool.QueryRow(ctx, `
			INSERT INTO categories (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, d.Category, slugify(d.Category)).Scan(&categoryID)
		if err != nil {
			log.Fatalf("seed category %q: %v", d.Category, err)
		}

		var designID string
		err = pool.QueryRow(ctx, `
			INSERT INTO designs (slug, title, description, price, image_url, tags, average_rating, review_count, is_published)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
			ON CONFLICT (slug) DO UPDATE SET
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				price = EXCLUDED.price,
				image_url = EXCLUDED.image_url,
				tags = EXCLUDED.tags,
				average_rating = EXCLUDED.average_rating,
				review_count = EXCLUDED.review_count,
				is_published = TRUE,
				updated_at = now()
			RETURNING id
		`, d.Slug, d.Title, d.Description, d.Price, d.ImageURL, d.Tags, d.Rating, d.ReviewCount).Scan(&designID)
		if err != nil {
			log.Fatalf("seed design %q: %v", d.Slug, err)
		}

		if _, err := pool.Exec(ctx, `
			INSERT INTO design_categories (design_id, category_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, designID, categoryID); err != nil {
			log.Fatalf("link design %q to category: %v", d.Slug, err)
		}

		log.Printf("seeded design %s", d.Slug)
	}

	if err := seedAdmin(ctx, pool, cfg); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	log.Println("seed complete")
}

// seedAdmin creates (or refreshes) the local admin account so a fresh
// install can reach the admin dashboard immediately.
func seedAdmin(ctx context.Context, pool pginfra.DB, cfg *config.Config) error {
	email := getenvDefault("SEED_ADMIN_EMAIL", "admin@customtee.local")
	password := getenvDefault("SEED_ADMIN_PASSWORD", "changeme-now")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (email, username, first_name, last_name, password_hash, role, is_admin, verified)
		VALUES ($1, 'admin', 'Admin', 'User', $2, 'BUYER', TRUE, TRUE)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, is_admin = TRUE
	`, email, hash)
	if err != nil {
		return err
	}
	log.Printf("seeded admin user %s", email)
	return nil
}
