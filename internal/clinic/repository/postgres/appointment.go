package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/clinic-service/db"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"github.com/jackc/pgx/v5"
)

// Names are left-joined so an appointment stays readable if a profile row is missing.
const appointmentSelect = `
	SELECT a.id, a.patient_id, a.doctor_id, pu.full_name, du.full_name, a.appointment_time,
	       a.status, a.notes, a.cancellation_reason, a.created_at, a.updated_at
	FROM appointments a
	LEFT JOIN users pu ON pu.id = a.patient_id
	LEFT JOIN users du ON du.id = a.doctor_id`

type AppointmentRepository struct {
	db db.DBTX
}

func NewAppointmentRepository(conn db.DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: conn}
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	var status string
	err := row.Scan(
		&a.ID, &a.PatientID, &a.DoctorID, &a.PatientName, &a.DoctorName, &a.AppointmentTime,
		&status, &a.Notes, &a.CancellationReason, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Status = domain.Status(status)
	return &a, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, appointment_time, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.PatientID, a.DoctorID, a.AppointmentTime, string(a.Status), a.Notes, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return autherror.FromDatabase(err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRow(ctx, appointmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return a, nil
}

// List applies the filter and returns the newest appointments first.
func (r *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	var conditions []string
	var args []any

	if filter.PatientID != "" {
		args = append(args, filter.PatientID)
		conditions = append(conditions, fmt.Sprintf("a.patient_id = $%d", len(args)))
	}
	if filter.DoctorID != "" {
		args = append(args, filter.DoctorID)
		conditions = append(conditions, fmt.Sprintf("a.doctor_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "a.status <> 'cancelled'")
	}

	query := appointmentSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.appointment_time DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, *a)
	}
	return appointments, rows.Err()
}

// Update writes every mutable column of the appointment.
func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE appointments
		SET appointment_time = $1, status = $2, notes = $3, cancellation_reason = $4, updated_at = $5
		WHERE id = $6
	`, a.AppointmentTime, string(a.Status), a.Notes, a.CancellationReason, a.UpdatedAt, a.ID)
	if err != nil {
		return autherror.FromDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return autherror.FromDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrAppointmentNotFound
	}
	return nil
}

// ExistsAt reports whether the doctor already has a non-cancelled appointment
// at exactly the given instant, ignoring excludeID.
func (r *AppointmentRepository) ExistsAt(ctx context.Context, doctorID string, at time.Time, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1 AND appointment_time = $2 AND status <> 'cancelled'
			  AND ($3 = '' OR id::text <> $3)
		)
	`, doctorID, at, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check appointment collision: %w", err)
	}
	return exists, nil
}
