package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnthoniusHendriyanto/clinic-service/db"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"github.com/jackc/pgx/v5"
)

const doctorSelect = `
	SELECT u.id, u.full_name, u.email, u.phone_number, d.specialization, d.license_number,
	       d.experience_years, u.is_active, d.created_at, d.updated_at
	FROM doctors d
	JOIN users u ON u.id = d.user_id`

type DoctorRepository struct {
	db db.DBTX
}

func NewDoctorRepository(conn db.DBTX) *DoctorRepository {
	return &DoctorRepository{db: conn}
}

func scanDoctor(row pgx.Row) (*domain.Doctor, error) {
	var d domain.Doctor
	err := row.Scan(
		&d.UserID, &d.FullName, &d.Email, &d.PhoneNumber, &d.Specialization, &d.LicenseNumber,
		&d.ExperienceYears, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns active doctors ordered by name.
func (r *DoctorRepository) List(ctx context.Context) ([]domain.Doctor, error) {
	rows, err := r.db.Query(ctx, doctorSelect+` WHERE u.is_active ORDER BY u.full_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer rows.Close()

	doctors := make([]domain.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doctors = append(doctors, *d)
	}
	return doctors, rows.Err()
}

func (r *DoctorRepository) GetByID(ctx context.Context, userID string) (*domain.Doctor, error) {
	d, err := scanDoctor(r.db.QueryRow(ctx, doctorSelect+` WHERE d.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return d, nil
}

func (r *DoctorRepository) Update(ctx context.Context, d *domain.Doctor) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE doctors
		SET specialization = $1, license_number = $2, experience_years = $3, updated_at = $4
		WHERE user_id = $5
	`, d.Specialization, d.LicenseNumber, d.ExperienceYears, d.UpdatedAt, d.UserID)
	if err != nil {
		return autherror.FromDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrDoctorNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET full_name = $1, phone_number = $2, updated_at = $3
		WHERE id = $4
	`, d.FullName, d.PhoneNumber, d.UpdatedAt, d.UserID)
	if err != nil {
		return autherror.FromDatabase(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit doctor: %w", err)
	}
	return nil
}
