package dto

import (
	"bytes"
	"encoding/json"

	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/domain"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
)

var ErrSlotsNotArray = autherror.Validation("slots must be an array")

type SlotInput struct {
	AvailableDay string `json:"available_day"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// AvailabilityInput is the full replacement set. It accepts either
// {"slots": [...]} or a bare array of slots. A missing or null slots field
// is rejected; only an explicit empty array clears the schedule.
type AvailabilityInput struct {
	Slots []SlotInput `json:"slots"`
}

func (in *AvailabilityInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		slots := []SlotInput{}
		if err := json.Unmarshal(trimmed, &slots); err != nil {
			return err
		}
		in.Slots = slots
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrSlotsNotArray
	}
	var wrapped struct {
		Slots *[]SlotInput `json:"slots"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	if wrapped.Slots == nil {
		return ErrSlotsNotArray
	}
	in.Slots = *wrapped.Slots
	if in.Slots == nil {
		in.Slots = []SlotInput{}
	}
	return nil
}

type SlotOutput struct {
	ID           int64  `json:"id"`
	DoctorID     string `json:"doctor_id"`
	AvailableDay string `json:"available_day"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

func NewSlotOutputs(slots []domain.Slot) []SlotOutput {
	out := make([]SlotOutput, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotOutput{
			ID:           s.ID,
			DoctorID:     s.DoctorID,
			AvailableDay: s.Day.String(),
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
		})
	}
	return out
}
