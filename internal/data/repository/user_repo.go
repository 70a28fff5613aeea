package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"user-account/internal/data/entity"
	"user-account/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// uniqueViolation is the SQLSTATE postgres reports for a unique index hit.
const uniqueViolation = "23505"

type UserRepository interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter entity.UserFilter, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context, filter entity.UserFilter) (int64, error)
	UpdateByID(ctx context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
	now func() time.Time
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
		now: time.Now,
	}
}

// EnsureSchema creates the users table and its unique email index when
// they are missing.
func (ur *userRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			phone      TEXT NOT NULL,
			password   TEXT NOT NULL,
			address    TEXT NOT NULL,
			image      TEXT,
			is_admin   BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);
	`

	if _, err := ur.db.Exec(ctx, query); err != nil {
		ur.log.Error("Failed to ensure users schema", zap.Error(err))
		return fmt.Errorf("ensure users schema: %w", err)
	}

	return nil
}

// Create inserts a new user. The id and timestamps are assigned here.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, password, address,
		                   image, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := ur.now().UTC()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.Password,
		user.Address,
		user.Image,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if isUniqueViolation(err) {
		ur.log.Warn("Duplicate email on create", zap.String("email", user.Email))
		return fmt.Errorf("create user %s: %w", user.Email, ErrEmailExists)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

// FindByID returns the full record, password included.
func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, name, email, phone, password, address, image,
		       is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err := ur.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Password,
		&user.Address,
		&user.Image,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("find user %s: %w", id, ErrUserNotFound)
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id, err)
	}

	return &user, nil
}

func (ur *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := ur.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		ur.log.Error("Failed to check email",
			zap.Error(err),
			zap.String("email", email),
		)
		return false, fmt.Errorf("exists by email %s: %w", email, err)
	}

	return exists, nil
}

// List returns one page of non-admin users matching filter. The password
// column is never read.
func (ur *userRepository) List(ctx context.Context, filter entity.UserFilter, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT id, name, email, phone, address, image,
		       is_admin, created_at, updated_at
		FROM users
		WHERE ` + listWhere + `
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := ur.db.Query(ctx, query, searchPattern(filter.Search), limit, offset)
	if err != nil {
		ur.log.Error("Failed to list users",
			zap.Error(err),
			zap.String("search", filter.Search),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Phone,
			&user.Address,
			&user.Image,
			&user.IsAdmin,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) Count(ctx context.Context, filter entity.UserFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE ` + listWhere

	var count int64
	if err := ur.db.QueryRow(ctx, query, searchPattern(filter.Search)).Scan(&count); err != nil {
		ur.log.Error("Database error counting users",
			zap.Error(err),
			zap.String("search", filter.Search),
		)
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

// UpdateByID applies the whitelisted fields of update. The returned record
// carries neither password nor image.
func (ur *userRepository) UpdateByID(ctx context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    password = COALESCE($3, password),
		    phone = COALESCE($4, phone),
		    address = COALESCE($5, address),
		    image = COALESCE($6, image),
		    updated_at = $7
		WHERE id = $1
		RETURNING id, name, email, phone, address, is_admin, created_at, updated_at
	`

	var user entity.User
	err := ur.db.QueryRow(ctx, query,
		id,
		update.Name,
		update.Password,
		update.Phone,
		update.Address,
		update.Image,
		ur.now().UTC(),
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Address,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update user %s: %w", id, ErrUserNotFound)
	}
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}

	return &user, nil
}

// DeleteByID removes the user and hands back the deleted row so the caller
// can clean up its image.
func (ur *userRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		DELETE FROM users
		WHERE id = $1
		RETURNING id, name, email, phone, address, image, is_admin, created_at, updated_at
	`

	var user entity.User
	err := ur.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Address,
		&user.Image,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("delete user %s: %w", id, ErrUserNotFound)
	}
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return nil, fmt.Errorf("delete user %s: %w", id, err)
	}

	ur.log.Info("User deleted", zap.String("id", id.String()))
	return &user, nil
}

// listWhere excludes admins and matches $1 against name, email or phone.
const listWhere = `is_admin = FALSE
		  AND (name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1)`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPattern turns a free-text term into a literal substring pattern.
// An empty term matches everything.
func searchPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(search)) + "%"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
