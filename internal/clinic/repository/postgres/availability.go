package postgres

import (
	"context"
	"fmt"

	"github.com/AnthoniusHendriyanto/clinic-service/db"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"github.com/jackc/pgx/v5"
)

var availabilityColumns = []string{"doctor_id", "available_day", "start_time", "end_time"}

type AvailabilityRepository struct {
	db db.DBTX
}

func NewAvailabilityRepository(conn db.DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{db: conn}
}

// ListByDoctor returns the doctor's slots in insertion order.
func (r *AvailabilityRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Slot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, doctor_id, available_day, start_time, end_time
		FROM doctor_availability
		WHERE doctor_id = $1
		ORDER BY id
	`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		var day string
		if err := rows.Scan(&s.ID, &s.DoctorID, &day, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		if s.Day, err = domain.ParseWeekday(day); err != nil {
			return nil, fmt.Errorf("stored slot %d: %w", s.ID, err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// Replace deletes every slot of the doctor and copies the new set in, all in
// one transaction. An empty set leaves the doctor without availability.
func (r *AvailabilityRepository) Replace(ctx context.Context, doctorID string, slots []domain.Slot) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM doctor_availability WHERE doctor_id = $1`, doctorID); err != nil {
		return autherror.FromDatabase(err)
	}

	if len(slots) > 0 {
		rows := make([][]any, 0, len(slots))
		for _, s := range slots {
			rows = append(rows, []any{doctorID, s.Day.String(), s.StartTime, s.EndTime})
		}

		var copied int64
		copied, err = tx.CopyFrom(ctx, pgx.Identifier{"doctor_availability"}, availabilityColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return autherror.FromDatabase(err)
		}
		if copied != int64(len(slots)) {
			return fmt.Errorf("copied %d of %d slots", copied, len(slots))
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit availability: %w", err)
	}
	return nil
}
