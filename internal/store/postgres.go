package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/priyanshu14077/Video-La-Vida/internal/models"
)

// ErrDuplicateEmail is returned when registering an email that already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// PostgresStore handles user and video CRUD against PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the tables if they don't exist. A transformation row never
// outlives its video (cascade) and never exists without one (FK + NOT NULL).
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email      VARCHAR(255) UNIQUE NOT NULL,
			name       VARCHAR(100) NOT NULL DEFAULT '',
			password   VARCHAR(255),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS videos (
			id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			seq           BIGINT GENERATED ALWAYS AS IDENTITY,
			user_id       UUID NOT NULL REFERENCES users(id),
			title         TEXT NOT NULL,
			description   TEXT NOT NULL,
			video_url     TEXT NOT NULL,
			thumbnail_url TEXT NOT NULL,
			controls      BOOLEAN NOT NULL DEFAULT TRUE,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS transformations (
			video_id UUID PRIMARY KEY REFERENCES videos(id) ON DELETE CASCADE,
			height   INT NOT NULL CHECK (height > 0),
			width    INT NOT NULL CHECK (width > 0),
			quality  INT NOT NULL CHECK (quality BETWEEN 0 AND 100)
		)
	`)
	return err
}

func (s *PostgresStore) CreateUser(ctx context.Context, email, name, hashedPassword string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, password)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, name, created_at, updated_at`,
		email, name, hashedPassword,
	).Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, name, COALESCE(password, ''), created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, name, created_at, updated_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateVideo inserts the video and its transformation in one transaction so
// a video is never observable without its transformation. The returned video
// carries the generated ID, timestamps, and the owner summary.
func (s *PostgresStore) CreateVideo(ctx context.Context, v *models.Video) (*models.Video, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	created := *v
	err = tx.QueryRow(ctx,
		`INSERT INTO videos (user_id, title, description, video_url, thumbnail_url, controls)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		v.UserID, v.Title, v.Description, v.VideoURL, v.ThumbnailURL, v.Controls,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transformations (video_id, height, width, quality)
		 VALUES ($1, $2, $3, $4)`,
		created.ID, v.Transformation.Height, v.Transformation.Width, v.Transformation.Quality,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transformation: %w", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT id, name, email FROM users WHERE id = $1`, v.UserID,
	).Scan(&created.User.ID, &created.User.Name, &created.User.Email)
	if err != nil {
		return nil, fmt.Errorf("load owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &created, nil
}

// ListVideos returns every video joined with its owner and transformation,
// newest first. Creation-time ties resolve by insertion order.
func (s *PostgresStore) ListVideos(ctx context.Context) ([]models.Video, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT v.id, v.title, v.description, v.video_url, v.thumbnail_url, v.controls,
		       v.created_at, v.updated_at,
		       t.height, t.width, t.quality,
		       u.id, u.name, u.email
		FROM videos v
		JOIN transformations t ON t.video_id = v.id
		JOIN users u ON u.id = v.user_id
		ORDER BY v.created_at DESC, v.seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		var v models.Video
		err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL, &v.Controls,
			&v.CreatedAt, &v.UpdatedAt,
			&v.Transformation.Height, &v.Transformation.Width, &v.Transformation.Quality,
			&v.User.ID, &v.User.Name, &v.User.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		v.UserID = v.User.ID
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
