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

type PatientRepository struct {
	db db.DBTX
}

func NewPatientRepository(conn db.DBTX) *PatientRepository {
	return &PatientRepository{db: conn}
}

func (r *PatientRepository) GetByID(ctx context.Context, userID string) (*domain.Patient, error) {
	query := `
		SELECT u.id, u.full_name, u.email, u.phone_number, u.gender, u.dob,
		       p.medical_history, p.allergies, p.emergency_contact, p.created_at, p.updated_at
		FROM patients p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`

	var p domain.Patient
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.Email, &p.PhoneNumber, &p.Gender, &p.DOB,
		&p.MedicalHistory, &p.Allergies, &p.EmergencyContact, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

// Update writes the user columns and the patient columns in one transaction.
func (r *PatientRepository) Update(ctx context.Context, p *domain.Patient) (err error) {
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
		UPDATE patients
		SET medical_history = $1, allergies = $2, emergency_contact = $3, updated_at = $4
		WHERE user_id = $5
	`, p.MedicalHistory, p.Allergies, p.EmergencyContact, p.UpdatedAt, p.UserID)
	if err != nil {
		return autherror.FromDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrPatientNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE users
		SET full_name = $1, phone_number = $2, gender = $3, dob = $4, updated_at = $5
		WHERE id = $6
	`, p.FullName, p.PhoneNumber, p.Gender, p.DOB, p.UpdatedAt, p.UserID)
	if err != nil {
		return autherror.FromDatabase(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit patient: %w", err)
	}
	return nil
}
