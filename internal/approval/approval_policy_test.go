package approval_test

import (
	"testing"
	"time"

	"go-shiftswap/internal/approval"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var decisions = []string{approval.DecisionPending, approval.DecisionApproved, approval.DecisionRejected}

// everyAssignment yields every combination of decisions for levels 1..n.
func everyAssignment(n int, fn func([]approval.Record)) {
	var walk func(level int, acc []approval.Record)
	walk = func(level int, acc []approval.Record) {
		if level > n {
			fn(append([]approval.Record(nil), acc...))
			return
		}
		for _, d := range decisions {
			walk(level+1, append(acc, approval.Record{ID: uuid.New(), Level: level, Decision: d}))
		}
	}
	walk(1, nil)
}

func reversed(records []approval.Record) []approval.Record {
	out := make([]approval.Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

func TestAggregate_AllAssignments(t *testing.T) {
	for n := 1; n <= 4; n++ {
		everyAssignment(n, func(records []approval.Record) {
			maxApproved, anyApproved, anyPending := 0, false, false
			for _, r := range records {
				switch r.Decision {
				case approval.DecisionApproved:
					anyApproved = true
					if r.Level > maxApproved {
						maxApproved = r.Level
					}
				case approval.DecisionPending:
					anyPending = true
				}
			}

			got := approval.Aggregate(records)

			switch {
			case anyApproved:
				assert.Equal(t, approval.DecisionApproved, got.Status, "%+v", records)
				if assert.NotNil(t, got.CurrentLevel) {
					assert.Equal(t, maxApproved, *got.CurrentLevel)
				}
			case anyPending:
				assert.Equal(t, approval.DecisionPending, got.Status, "%+v", records)
				assert.Nil(t, got.CurrentLevel)
			default:
				assert.Equal(t, approval.DecisionRejected, got.Status, "%+v", records)
				assert.Nil(t, got.CurrentLevel)
			}

			assert.Equal(t, got, approval.Aggregate(reversed(records)), "order must not matter")
		})
	}
}

func TestAggregate_ApprovalOutweighsRejections(t *testing.T) {
	records := []approval.Record{
		{Level: 1, Decision: approval.DecisionRejected},
		{Level: 2, Decision: approval.DecisionRejected},
		{Level: 3, Decision: approval.DecisionApproved},
		{Level: 4, Decision: approval.DecisionRejected},
	}

	got := approval.Aggregate(records)

	assert.Equal(t, approval.DecisionApproved, got.Status)
	require.NotNil(t, got.CurrentLevel)
	assert.Equal(t, 3, *got.CurrentLevel)
}

func TestAggregate_HigherLevelApprovedFirstStillWins(t *testing.T) {
	records := []approval.Record{
		{Level: 2, Decision: approval.DecisionApproved},
		{Level: 1, Decision: approval.DecisionApproved},
	}

	got := approval.Aggregate(records)

	require.NotNil(t, got.CurrentLevel)
	assert.Equal(t, 2, *got.CurrentLevel)
}

func TestAggregate_IgnoresDeletedAndEmpty(t *testing.T) {
	assert.Equal(t, approval.DecisionPending, approval.Aggregate(nil).Status)

	deleted := gorm.DeletedAt{Time: time.Now(), Valid: true}
	got := approval.Aggregate([]approval.Record{
		{Level: 1, Decision: approval.DecisionRejected},
		{Level: 2, Decision: approval.DecisionApproved, DeletedAt: deleted},
	})
	assert.Equal(t, approval.DecisionRejected, got.Status)

	onlyDeleted := approval.Aggregate([]approval.Record{
		{Level: 1, Decision: approval.DecisionRejected, DeletedAt: deleted},
	})
	assert.Equal(t, approval.DecisionPending, onlyDeleted.Status)
}

func TestCanDecide(t *testing.T) {
	userID := uuid.New()
	role := "hr-manager"

	tests := []struct {
		name   string
		record approval.Record
		actor  approval.Actor
		want   bool
	}{
		{
			name:   "matching user",
			record: approval.Record{ApproverUserID: &userID},
			actor:  approval.Actor{UserID: userID},
			want:   true,
		},
		{
			name:   "matching role ignores case and separators",
			record: approval.Record{ApproverRole: &role},
			actor:  approval.Actor{UserID: uuid.New(), Role: " HR Manager "},
			want:   true,
		},
		{
			name:   "user or role, role matches",
			record: approval.Record{ApproverUserID: &userID, ApproverRole: &role},
			actor:  approval.Actor{UserID: uuid.New(), Role: "HR_MANAGER"},
			want:   true,
		},
		{
			name:   "negative other user and role",
			record: approval.Record{ApproverUserID: &userID, ApproverRole: &role},
			actor:  approval.Actor{UserID: uuid.New(), Role: "SUPERVISOR"},
			want:   false,
		},
		{
			name:   "negative empty actor role does not match empty approver role",
			record: approval.Record{ApproverRole: new(string)},
			actor:  approval.Actor{UserID: uuid.New()},
			want:   false,
		},
		{
			name:   "negative record without approver",
			record: approval.Record{},
			actor:  approval.Actor{UserID: uuid.Nil},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, approval.CanDecide(tt.record, tt.actor))
		})
	}
}

func TestNormalizeDecision(t *testing.T) {
	got, ok := approval.NormalizeDecision("approved")
	assert.True(t, ok)
	assert.Equal(t, approval.DecisionApproved, got)

	got, ok = approval.NormalizeDecision(" Rejected ")
	assert.True(t, ok)
	assert.Equal(t, approval.DecisionRejected, got)

	_, ok = approval.NormalizeDecision("pending")
	assert.False(t, ok)
	_, ok = approval.NormalizeDecision("")
	assert.False(t, ok)
}
