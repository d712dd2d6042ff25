package dayswap

type PairRequest struct {
	DayOff    string `json:"day_off" binding:"required"`
	DayWorked string `json:"day_worked" binding:"required"`
}

// ApproverRequest describes one approval level. Level defaults to the
// position in the list (1-based) when omitted.
type ApproverRequest struct {
	Level  int     `json:"level" binding:"omitempty,min=1"`
	UserID *string `json:"user_id" binding:"omitempty,uuid"`
	Role   *string `json:"role"`
}

type CreateSwapRequest struct {
	UserID    string            `json:"user_id" binding:"omitempty,uuid"`
	Category  string            `json:"category"`
	Reason    string            `json:"reason"`
	Pairs     []PairRequest     `json:"pairs" binding:"required,min=1,dive"`
	Approvers []ApproverRequest `json:"approvers" binding:"omitempty,dive"`
}

type DecideRequest struct {
	Decision                  string `json:"decision" binding:"required"`
	Note                      string `json:"note"`
	CompensatoryWorkPatternID string `json:"compensatory_work_pattern_id"`
}

type ListFilter struct {
	Status string `form:"status"`
	UserID string `form:"user_id"`
}

type PairResponse struct {
	DayOff    string `json:"day_off"`
	DayWorked string `json:"day_worked"`
}

type ApprovalResponse struct {
	ID             string  `json:"id"`
	SwapRequestID  string  `json:"swap_request_id"`
	Level          int     `json:"level"`
	ApproverUserID *string `json:"approver_user_id,omitempty"`
	ApproverRole   *string `json:"approver_role,omitempty"`
	Decision       string  `json:"decision"`
	Note           *string `json:"note,omitempty"`
	DecidedAt      *string `json:"decided_at,omitempty"`
}

type SwapRequestResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	RequestNumber string             `json:"request_number"`
	UserID        string             `json:"user_id"`
	Category      string             `json:"category"`
	Reason        string             `json:"reason"`
	Status        string             `json:"status"`
	CurrentLevel  *int               `json:"current_level"`
	CreatedBy     string             `json:"created_by"`
	CreatedAt     string             `json:"created_at"`
	Pairs         []PairResponse     `json:"pairs"`
	Approvals     []ApprovalResponse `json:"approvals,omitempty"`
}

type ReconciliationResponse struct {
	UpdatedCount  int      `json:"updated_count"`
	CreatedCount  int      `json:"created_count"`
	AffectedDates []string `json:"affected_dates"`
}

type DecisionResponse struct {
	Request        SwapRequestResponse    `json:"request"`
	Reconciliation ReconciliationResponse `json:"reconciliation"`
}
