package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := errors.New(`ERROR: duplicate key value violates unique constraint "idx_participant_order_user" (SQLSTATE 23505)`)
	sqliteErr := errors.New("UNIQUE constraint failed: group_order_participants.group_order_id, group_order_participants.user_id")

	cases := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"nil error", nil, "idx_participant_order_user", false},
		{"postgres with matching constraint", pgErr, "idx_participant_order_user", true},
		{"postgres without constraint name", pgErr, "", true},
		{"sqlite message never names the index", sqliteErr, "idx_participant_order_user", true},
		{"sqlite without constraint name", sqliteErr, "", true},
		{"unrelated error", errors.New("connection refused"), "idx_participant_order_user", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err, tc.constraint); got != tc.want {
				t.Fatalf("IsUniqueViolation(%v, %q) = %v, want %v", tc.err, tc.constraint, got, tc.want)
			}
		})
	}
}
