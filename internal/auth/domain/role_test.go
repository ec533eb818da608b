package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in    string
		want  Role
		valid bool
	}{
		{"patient", RolePatient, true},
		{" Doctor ", RoleDoctor, true},
		{"ADMIN", RoleAdmin, true},
		{"nurse", Role("nurse"), false},
		{"", Role(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, RolePatient.SelfRegistrable())
	assert.True(t, RoleDoctor.SelfRegistrable())
	assert.False(t, RoleAdmin.SelfRegistrable())
	assert.False(t, Role("nurse").SelfRegistrable())

	assert.True(t, RoleAdmin.SeesAllAppointments())
	assert.True(t, RoleDoctor.SeesAllAppointments())
	assert.False(t, RolePatient.SeesAllAppointments())
}

func TestUser_LockedAt(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	assert.False(t, (&User{}).LockedAt(now))
	assert.True(t, (&User{AccountLockedUntil: &future}).LockedAt(now))
	assert.False(t, (&User{AccountLockedUntil: &past}).LockedAt(now))
}
