package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponIsUsable(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	two := 2

	tests := []struct {
		name   string
		coupon Coupon
		want   bool
	}{
		{"active without limits", Coupon{IsActive: true}, true},
		{"inactive", Coupon{IsActive: false}, false},
		{"not yet valid", Coupon{IsActive: true, ValidFrom: &future}, false},
		{"expired", Coupon{IsActive: true, ValidUntil: &past}, false},
		{"inside window", Coupon{IsActive: true, ValidFrom: &past, ValidUntil: &future}, true},
		{"uses left", Coupon{IsActive: true, MaxUses: &two, UsedCount: 1}, true},
		{"exhausted", Coupon{IsActive: true, MaxUses: &two, UsedCount: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coupon.IsUsable(now))
		})
	}
}

func TestUserHasRole(t *testing.T) {
	u := User{Role: RoleInstructor}
	assert.True(t, u.HasRole(RoleStudent, RoleInstructor))
	assert.False(t, u.HasRole(RoleAdmin))
	assert.True(t, u.IsStaff())
	assert.False(t, (&User{Role: RoleStudent}).IsStaff())
}
