package user

import (
	"context"
	"errors"
	c "passreset/internal/core/domain/common"
	"passreset/internal/core/domain/user"
	"passreset/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"

var ErrUserAlreadyExists = errors.New("user already exists")

const selectUser = `
SELECT email, name, password_hash, created_at, password_reset_token_hash, password_reset_expires_at
FROM "user"
WHERE email = $1`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

// Create inserts a new user record. Pending password resets are not stored
// by Create, use SetPasswordReset for that.
func (r *PgxUserRepository) Create(ctx context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO "user" (email, name, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		string(u.Email), u.Name, string(u.PasswordHash), u.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (user.User, error) {
	return r.get(ctx, selectUser, email)
}

func (r *PgxUserRepository) GetByEmailWithLock(ctx context.Context, email c.Email) (user.User, error) {
	return r.get(ctx, selectUser+" FOR UPDATE", email)
}

func (r *PgxUserRepository) SetPasswordReset(ctx context.Context, email c.Email, reset user.PasswordReset) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_reset_token_hash = $2, password_reset_expires_at = $3 WHERE email = $1`,
		string(email), string(reset.TokenHash), reset.ExpiresAt,
	)
	return checkUpdated(tag, err)
}

func (r *PgxUserRepository) ClearPasswordReset(ctx context.Context, email c.Email) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_reset_token_hash = NULL, password_reset_expires_at = NULL WHERE email = $1`,
		string(email),
	)
	return checkUpdated(tag, err)
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, email c.Email, password user.PasswordHash) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $2 WHERE email = $1`,
		string(email), string(password),
	)
	return checkUpdated(tag, err)
}

func (r *PgxUserRepository) get(ctx context.Context, query string, email c.Email) (u user.User, err error) {
	var (
		dbEmail      string
		name         string
		passwordHash string
		createdAt    pgtype.Timestamptz
		tokenHash    pgtype.Text
		expiresAt    pgtype.Timestamptz
	)
	err = r.db.QueryRow(ctx, query, string(email)).Scan(
		&dbEmail, &name, &passwordHash, &createdAt, &tokenHash, &expiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}

	u = user.User{
		Email:         c.Email(dbEmail),
		Name:          name,
		PasswordHash:  user.PasswordHash(passwordHash),
		CreatedAt:     createdAt.Time.UTC(),
		PasswordReset: decodePasswordReset(tokenHash, expiresAt),
	}
	err = u.Validate()
	if err != nil {
		return u, err
	}
	return u, nil
}

func decodePasswordReset(tokenHash pgtype.Text, expiresAt pgtype.Timestamptz) c.Optional[user.PasswordReset] {
	if tokenHash.Status != pgtype.Present || expiresAt.Status != pgtype.Present {
		return c.None[user.PasswordReset]()
	}
	return c.Some(user.NewPasswordReset(
		user.PasswordResetTokenHash(tokenHash.String),
		expiresAt.Time.UTC(),
	))
}

func checkUpdated(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}
