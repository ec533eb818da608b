package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/clinic-service/db"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, full_name, email, password_hash, phone_number, gender, dob, role,
		is_active, refresh_token, last_login, failed_login_attempts, account_locked_until,
		created_at, updated_at`

type PostgresRepository struct {
	db db.DBTX
}

func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.PhoneNumber, &user.Gender,
		&user.DOB, &role, &user.IsActive, &user.RefreshToken, &user.LastLogin,
		&user.FailedLoginAttempts, &user.AccountLockedUntil, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	return &user, nil
}

// GetByEmail returns nil, nil when no user has the email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE lower(email) = lower($1)
		LIMIT 1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetByID returns nil, nil when the user does not exist.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// Create inserts the user and its patient or doctor profile in one transaction.
func (r *PostgresRepository) Create(ctx context.Context, user *domain.User, details domain.ProfileDetails) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, full_name, email, password_hash, phone_number, gender, dob, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, user.ID, user.FullName, user.Email, user.PasswordHash, user.PhoneNumber, user.Gender, user.DOB,
		string(user.Role), user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if autherror.IsUniqueViolation(err) {
			return autherror.ErrEmailAlreadyInUse
		}
		return autherror.FromDatabase(err)
	}

	switch user.Role {
	case domain.RolePatient:
		_, err = tx.Exec(ctx, `
			INSERT INTO patients (user_id, medical_history, allergies, emergency_contact, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, user.ID, details.MedicalHistory, details.Allergies, details.EmergencyContact, user.CreatedAt, user.UpdatedAt)
	case domain.RoleDoctor:
		_, err = tx.Exec(ctx, `
			INSERT INTO doctors (user_id, specialization, license_number, experience_years, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, user.ID, details.Specialization, details.LicenseNumber, details.ExperienceYears, user.CreatedAt, user.UpdatedAt)
	case domain.RoleAdmin:
	}
	if err != nil {
		return autherror.FromDatabase(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit user: %w", err)
	}
	return nil
}

// SetRefreshToken overwrites the single stored refresh token. A nil token logs the user out.
func (r *PostgresRepository) SetRefreshToken(ctx context.Context, userID string, token *string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET refresh_token = $1, updated_at = now()
		WHERE id = $2
	`, token, userID)
	return err
}

func (r *PostgresRepository) RecordLoginSuccess(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET last_login = now(), failed_login_attempts = 0, account_locked_until = NULL
		WHERE id = $1
	`, userID)
	return err
}

// RecordLoginFailure bumps the failure counter and, once it reaches
// maxAttempts, locks the account for lockFor and resets the counter. It
// returns the lock expiry when the account got locked, nil otherwise.
func (r *PostgresRepository) RecordLoginFailure(ctx context.Context, userID string, maxAttempts int, lockFor time.Duration) (*time.Time, error) {
	var lockedUntil *time.Time
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET failed_login_attempts = CASE WHEN failed_login_attempts + 1 >= $2 THEN 0 ELSE failed_login_attempts + 1 END,
		    account_locked_until  = CASE WHEN failed_login_attempts + 1 >= $2 THEN now() + make_interval(secs => $3) ELSE account_locked_until END
		WHERE id = $1
		RETURNING account_locked_until
	`, userID, maxAttempts, lockFor.Seconds()).Scan(&lockedUntil)
	if err != nil {
		return nil, fmt.Errorf("failed to record login failure: %w", err)
	}
	if lockedUntil != nil && !lockedUntil.After(time.Now()) {
		return nil, nil
	}
	return lockedUntil, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now()
		WHERE id = $2
	`, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrUserNotFound
	}
	return nil
}

// SetActive toggles the account. Deactivation also drops the stored refresh token.
func (r *PostgresRepository) SetActive(ctx context.Context, userID string, active bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_active = $1,
		    refresh_token = CASE WHEN $1 THEN refresh_token ELSE NULL END,
		    updated_at = now()
		WHERE id = $2
	`, active, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
