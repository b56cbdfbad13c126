package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ascentfit/ascent/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailTaken      = errors.New("email already taken")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddAccount(ctx context.Context, account Account, createdAt time.Time) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO user_account (id, email, password_hash, created_at)
			VALUES ($1, $2, $3, $4);`,
		account.UserID, account.Email, account.PasswordHash, createdAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *Repo) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, email, password_hash FROM user_account WHERE email = $1;`,
		email,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrAccountNotFound
	}

	var account Account
	if err := rows.Scan(&account.UserID, &account.Email, &account.PasswordHash); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}
	return &account, nil
}

func (r *Repo) UpsertProfile(ctx context.Context, p Profile) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO profile (user_id, name, email, avatar_url)
				VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO UPDATE
				SET name = EXCLUDED.name, email = EXCLUDED.email, avatar_url = EXCLUDED.avatar_url;`,
		p.UserID, p.Name, p.Email, p.AvatarURL,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *Repo) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, name, email, avatar_url FROM profile WHERE user_id = $1;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrProfileNotFound
	}

	var p Profile
	if err := rows.Scan(&p.UserID, &p.Name, &p.Email, &p.AvatarURL); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}
	return &p, nil
}
