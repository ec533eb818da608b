package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	repo "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/repository/postgres"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"id", "full_name", "email", "password_hash", "phone_number", "gender", "dob", "role",
	"is_active", "refresh_token", "last_login", "failed_login_attempts", "account_locked_until",
	"created_at", "updated_at",
}

func userRow(id, email string, role domain.Role) []any {
	now := time.Now()
	return []any{id, "Jane Doe", email, "hash", nil, nil, nil, string(role), true, nil, nil, 0, nil, now, now}
}

// TestGetByEmail covers the GetByEmail repository method.
func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	email := "jane@example.com"

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, full_name, email").
			WithArgs(email).
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(userRow("user-123", email, domain.RolePatient)...))

		user, err := r.GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, "user-123", user.ID)
		assert.Equal(t, domain.RolePatient, user.Role)
		assert.True(t, user.IsActive)
		assert.Nil(t, user.RefreshToken)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, full_name, email").
			WithArgs(email).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, full_name, email").
			WithArgs(email).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByEmail(ctx, email)
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, full_name, email").
			WithArgs("doc-1").
			WillReturnRows(pgxmock.NewRows(userColumns).AddRow(userRow("doc-1", "doc@example.com", domain.RoleDoctor)...))

		user, err := r.GetByID(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleDoctor, user.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, full_name, email").
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func userInsertArgs(user *domain.User) []any {
	return []any{user.ID, user.FullName, user.Email, user.PasswordHash, user.PhoneNumber, user.Gender, user.DOB,
		string(user.Role), user.IsActive, user.CreatedAt, user.UpdatedAt}
}

// TestCreate covers the transactional user plus profile insert.
func TestCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	newUser := func(role domain.Role) *domain.User {
		return &domain.User{
			ID:           "user-123",
			FullName:     "Jane Doe",
			Email:        "jane@example.com",
			PasswordHash: "hash",
			Role:         role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	t.Run("patient success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		user := newUser(domain.RolePatient)
		details := domain.ProfileDetails{MedicalHistory: "asthma", Allergies: "nuts", EmergencyContact: "John"}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(userInsertArgs(user)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("INSERT INTO patients").
			WithArgs(user.ID, "asthma", "nuts", "John", user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err = repo.NewPostgresRepository(mock).Create(ctx, user, details)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("doctor success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		user := newUser(domain.RoleDoctor)
		details := domain.ProfileDetails{Specialization: "Cardiology", LicenseNumber: "LIC-1", ExperienceYears: 7}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(userInsertArgs(user)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("INSERT INTO doctors").
			WithArgs(user.ID, "Cardiology", "LIC-1", 7, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err = repo.NewPostgresRepository(mock).Create(ctx, user, details)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin has no profile row", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		user := newUser(domain.RoleAdmin)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(userInsertArgs(user)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err = repo.NewPostgresRepository(mock).Create(ctx, user, domain.ProfileDetails{})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		user := newUser(domain.RolePatient)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(userInsertArgs(user)...).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		err = repo.NewPostgresRepository(mock).Create(ctx, user, domain.ProfileDetails{})
		assert.ErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("profile insert fails rolls back", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		user := newUser(domain.RolePatient)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(userInsertArgs(user)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("INSERT INTO patients").
			WithArgs(user.ID, "", "", "", user.CreatedAt, user.UpdatedAt).
			WillReturnError(fmt.Errorf("disk full"))
		mock.ExpectRollback()

		err = repo.NewPostgresRepository(mock).Create(ctx, user, domain.ProfileDetails{})
		assert.ErrorContains(t, err, "disk full")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetRefreshToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	token := "refresh-token"

	mock.ExpectExec("UPDATE users SET refresh_token").
		WithArgs(&token, "user-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.SetRefreshToken(context.Background(), "user-123", &token))

	mock.ExpectExec("UPDATE users SET refresh_token").
		WithArgs((*string)(nil), "user-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.SetRefreshToken(context.Background(), "user-123", nil))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordLoginSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("user-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.NewPostgresRepository(mock).RecordLoginSuccess(context.Background(), "user-123")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordLoginFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()
	lockFor := 30 * time.Minute

	t.Run("below threshold", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs("user-123", 5, lockFor.Seconds()).
			WillReturnRows(pgxmock.NewRows([]string{"account_locked_until"}).AddRow(nil))

		lockedUntil, err := r.RecordLoginFailure(ctx, "user-123", 5, lockFor)
		require.NoError(t, err)
		assert.Nil(t, lockedUntil)
	})

	t.Run("locks account", func(t *testing.T) {
		until := time.Now().Add(lockFor)
		mock.ExpectQuery("UPDATE users").
			WithArgs("user-123", 5, lockFor.Seconds()).
			WillReturnRows(pgxmock.NewRows([]string{"account_locked_until"}).AddRow(&until))

		lockedUntil, err := r.RecordLoginFailure(ctx, "user-123", 5, lockFor)
		require.NoError(t, err)
		require.NotNil(t, lockedUntil)
		assert.WithinDuration(t, until, *lockedUntil, time.Second)
	})

	t.Run("stale lock is ignored", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		mock.ExpectQuery("UPDATE users").
			WithArgs("user-123", 5, lockFor.Seconds()).
			WillReturnRows(pgxmock.NewRows([]string{"account_locked_until"}).AddRow(&past))

		lockedUntil, err := r.RecordLoginFailure(ctx, "user-123", 5, lockFor)
		require.NoError(t, err)
		assert.Nil(t, lockedUntil)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("new-hash", "user-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.UpdatePassword(context.Background(), "user-123", "new-hash"))

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("new-hash", "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, r.UpdatePassword(context.Background(), "ghost", "new-hash"), autherror.ErrUserNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	mock.ExpectExec("UPDATE users").
		WithArgs(false, "user-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.SetActive(context.Background(), "user-123", false))

	mock.ExpectExec("UPDATE users").
		WithArgs(false, "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, r.SetActive(context.Background(), "ghost", false), autherror.ErrUserNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllUsers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, full_name, email").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(userRow("u1", "a@example.com", domain.RoleAdmin)...).
				AddRow(userRow("u2", "b@example.com", domain.RolePatient)...))

		users, err := r.GetAllUsers(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, domain.RoleAdmin, users[0].Role)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, full_name, email").WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetAllUsers(context.Background())
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
