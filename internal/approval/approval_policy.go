package approval

import (
	"strings"

	"github.com/google/uuid"
)

type ApproverKind int

const (
	ByUser ApproverKind = iota + 1
	ByRole
)

// Approver names who may decide a record: a specific user or anyone holding a role.
type Approver struct {
	Kind   ApproverKind
	UserID uuid.UUID
	Role   string
}

func UserApprover(id uuid.UUID) Approver {
	return Approver{Kind: ByUser, UserID: id}
}

func RoleApprover(role string) Approver {
	return Approver{Kind: ByRole, Role: NormalizeRole(role)}
}

// Actor is the authenticated identity attempting a decision.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Approver) Matches(actor Actor) bool {
	switch a.Kind {
	case ByUser:
		return a.UserID != uuid.Nil && a.UserID == actor.UserID
	case ByRole:
		return a.Role != "" && a.Role == NormalizeRole(actor.Role)
	default:
		return false
	}
}

func (r Record) Approvers() []Approver {
	approvers := make([]Approver, 0, 2)
	if r.ApproverUserID != nil && *r.ApproverUserID != uuid.Nil {
		approvers = append(approvers, UserApprover(*r.ApproverUserID))
	}
	if r.ApproverRole != nil && strings.TrimSpace(*r.ApproverRole) != "" {
		approvers = append(approvers, RoleApprover(*r.ApproverRole))
	}
	return approvers
}

func CanDecide(r Record, actor Actor) bool {
	for _, a := range r.Approvers() {
		if a.Matches(actor) {
			return true
		}
	}
	return false
}

// NormalizeRole makes "hr-manager", "HR Manager" and "hr_manager" compare equal.
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	role = strings.NewReplacer("-", "_", " ", "_").Replace(role)
	return role
}

// NormalizeDecision accepts APPROVED or REJECTED in any case.
func NormalizeDecision(decision string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(decision)) {
	case DecisionApproved:
		return DecisionApproved, true
	case DecisionRejected:
		return DecisionRejected, true
	default:
		return "", false
	}
}

type Outcome struct {
	Status       string
	CurrentLevel *int
}

// Aggregate derives the request status from its live approval records.
// A single approval outweighs any number of rejections; current level is
// the highest approved level regardless of decision order.
func Aggregate(records []Record) Outcome {
	var (
		live       int
		rejected   int
		maxApprove int
		approved   bool
	)
	for _, r := range records {
		if r.DeletedAt.Valid {
			continue
		}
		live++
		switch r.Decision {
		case DecisionApproved:
			if !approved || r.Level > maxApprove {
				maxApprove = r.Level
			}
			approved = true
		case DecisionRejected:
			rejected++
		}
	}

	switch {
	case approved:
		level := maxApprove
		return Outcome{Status: DecisionApproved, CurrentLevel: &level}
	case live > 0 && rejected == live:
		return Outcome{Status: DecisionRejected}
	default:
		return Outcome{Status: DecisionPending}
	}
}
