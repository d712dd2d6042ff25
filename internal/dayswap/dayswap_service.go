package dayswap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-shiftswap/internal/approval"
	dayswaperrors "go-shiftswap/internal/dayswap/errors"
	"go-shiftswap/internal/notification"
	"go-shiftswap/internal/shared/counter"
	"go-shiftswap/internal/shift"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout        = "2006-01-02"
	periodLabelLayout = "02 Jan 2006"
)

//go:generate mockgen -source=dayswap_service.go -destination=mock/dayswap_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateSwapRequest) (SwapRequestResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]SwapRequestResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SwapRequestResponse, error)
	ListPendingForActor(ctx context.Context, companyID string, actor approval.Actor) ([]ApprovalResponse, error)
	Decide(ctx context.Context, companyID string, actor approval.Actor, approvalID string, req DecideRequest) (DecisionResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

// Options carries the tunables the service reads from config.
type Options struct {
	// DefaultChain lists approver roles, level 1 first, used when a request
	// names no approvers of its own.
	DefaultChain []string
	// TxTimeout bounds the Decide transaction. Zero means no extra bound.
	TxTimeout time.Duration
}

type service struct {
	db         *sql.DB
	repo       Repository
	approvals  approval.Repository
	shifts     shift.Repository
	counters   counter.Repository
	reconciler *shift.Reconciler
	dispatcher notification.Dispatcher
	opts       Options
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	approvals approval.Repository,
	shifts shift.Repository,
	counters counter.Repository,
	reconciler *shift.Reconciler,
	dispatcher notification.Dispatcher,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dayswap.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dayswap.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		approvals:  approvals,
		shifts:     shifts,
		counters:   counters,
		reconciler: reconciler,
		dispatcher: dispatcher,
		opts:       opts,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateSwapRequest) (SwapRequestResponse, error) {
	s.logger.Debug("create swap request requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.Int("pairs", len(req.Pairs)),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SwapRequestResponse{}, dayswaperrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SwapRequestResponse{}, dayswaperrors.ErrInvalidActorID
	}
	userUUID := actorUUID
	if req.UserID != "" {
		if userUUID, err = uuid.Parse(req.UserID); err != nil {
			return SwapRequestResponse{}, dayswaperrors.ErrInvalidUserID
		}
	}

	pairs, err := parsePairs(req.Pairs)
	if err != nil {
		s.logger.Warn("create swap request validation failed", zap.Error(err))
		return SwapRequestResponse{}, err
	}
	records, err := s.buildApprovalMatrix(req.Approvers)
	if err != nil {
		s.logger.Warn("create swap request approvers invalid", zap.Error(err))
		return SwapRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create swap request begin tx failed", zap.Error(err))
		return SwapRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	seq, err := s.counters.WithTx(tx).GetNextValue(ctx, companyID, requestNumberCounter)
	if err != nil {
		s.logger.Error("create swap request counter failed", zap.Error(err))
		return SwapRequestResponse{}, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = CategoryDaySwap
	}

	sr := &SwapRequest{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		RequestNumber: fmt.Sprintf("%s-%06d", requestNumberPrefix, seq),
		UserID:        userUUID,
		Category:      category,
		Reason:        strings.TrimSpace(req.Reason),
		Status:        StatusPending,
		CreatedBy:     actorUUID,
	}
	if err := qtx.Create(ctx, sr); err != nil {
		s.logger.Error("create swap request persist failed", zap.Error(err))
		return SwapRequestResponse{}, err
	}

	for i := range pairs {
		pairs[i].ID = uuid.New()
		pairs[i].SwapRequestID = sr.ID
	}
	if err := qtx.CreatePairs(ctx, pairs); err != nil {
		s.logger.Error("create swap request pairs failed", zap.Error(err))
		return SwapRequestResponse{}, err
	}

	for i := range records {
		records[i].ID = uuid.New()
		records[i].SwapRequestID = sr.ID
	}
	if err := s.approvals.WithTx(tx).CreateBatch(ctx, records); err != nil {
		s.logger.Error("create swap request approvals failed", zap.Error(err))
		return SwapRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create swap request commit failed", zap.Error(err))
		return SwapRequestResponse{}, err
	}
	s.logger.Info("create swap request success",
		zap.String("swap_request_id", sr.ID.String()),
		zap.String("request_number", sr.RequestNumber),
		zap.String("company_id", companyID),
		zap.Int("levels", len(records)),
	)

	sr.Pairs = pairs
	return mapToResponse(*sr, records), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]SwapRequestResponse, error) {
	if filter.Status != "" {
		status := strings.ToUpper(strings.TrimSpace(filter.Status))
		switch status {
		case StatusPending, StatusApproved, StatusRejected:
			filter.Status = status
		default:
			return nil, dayswaperrors.ErrInvalidStatusFilter
		}
	}
	if filter.UserID != "" {
		if _, err := uuid.Parse(filter.UserID); err != nil {
			return nil, dayswaperrors.ErrInvalidUserID
		}
	}

	requests, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	pairs, err := s.repo.ListPairsByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[uuid.UUID][]SwapPair, len(requests))
	for _, p := range pairs {
		byRequest[p.SwapRequestID] = append(byRequest[p.SwapRequestID], p)
	}

	out := make([]SwapRequestResponse, 0, len(requests))
	for _, r := range requests {
		r.Pairs = byRequest[r.ID]
		out = append(out, mapToResponse(r, nil))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SwapRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SwapRequestResponse{}, dayswaperrors.ErrSwapRequestNotFound
	}

	sr, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SwapRequestResponse{}, dayswaperrors.ErrSwapRequestNotFound
		}
		return SwapRequestResponse{}, err
	}

	pairs, err := s.repo.ListPairs(ctx, sr.ID)
	if err != nil {
		return SwapRequestResponse{}, err
	}
	records, err := s.approvals.ListByRequest(ctx, sr.ID)
	if err != nil {
		return SwapRequestResponse{}, err
	}

	sr.Pairs = pairs
	return mapToResponse(*sr, records), nil
}

func (s *service) ListPendingForActor(ctx context.Context, companyID string, actor approval.Actor) ([]ApprovalResponse, error) {
	records, err := s.approvals.ListPendingForActor(ctx, companyID, actor)
	if err != nil {
		return nil, err
	}
	return mapApprovals(records), nil
}

// Decide records one approver's decision and, when the request becomes
// approved for the first time, rewrites the owner's shift calendar in the
// same transaction. Notifications go out only after commit.
func (s *service) Decide(ctx context.Context, companyID string, actor approval.Actor, approvalID string, req DecideRequest) (DecisionResponse, error) {
	s.logger.Debug("decide swap approval requested",
		zap.String("company_id", companyID),
		zap.String("approval_id", approvalID),
		zap.String("actor_id", actor.UserID.String()),
		zap.String("decision", req.Decision),
	)

	decision, ok := approval.NormalizeDecision(req.Decision)
	if !ok {
		return DecisionResponse{}, dayswaperrors.ErrInvalidDecision
	}
	approvalUUID, err := uuid.Parse(approvalID)
	if err != nil {
		return DecisionResponse{}, dayswaperrors.ErrInvalidApprovalID
	}
	var pattern *uuid.UUID
	if p := strings.TrimSpace(req.CompensatoryWorkPatternID); p != "" {
		parsed, err := uuid.Parse(p)
		if err != nil {
			return DecisionResponse{}, dayswaperrors.ErrInvalidWorkPatternID
		}
		pattern = &parsed
	}
	var note *string
	if n := strings.TrimSpace(req.Note); n != "" {
		note = &n
	}

	notifyCtx := ctx
	if s.opts.TxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.TxTimeout)
		defer cancel()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide swap approval begin tx failed", zap.Error(err))
		return DecisionResponse{}, err
	}
	defer tx.Rollback()

	approvals := s.approvals.WithTx(tx)
	requests := s.repo.WithTx(tx)

	record, err := approvals.FindByID(ctx, approvalUUID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DecisionResponse{}, dayswaperrors.ErrApprovalNotFound
		}
		s.logger.Error("decide swap approval load approval failed", zap.String("approval_id", approvalID), zap.Error(err))
		return DecisionResponse{}, err
	}

	failed := func(step string, err error) {
		s.logger.Error("decide swap approval failed",
			zap.String("step", step),
			zap.String("swap_request_id", record.SwapRequestID.String()),
			zap.String("approval_id", record.ID.String()),
			zap.Int("level", record.Level),
			zap.String("decision", decision),
			zap.Error(err),
		)
	}

	sr, err := requests.FindByIDForUpdate(ctx, companyID, record.SwapRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DecisionResponse{}, dayswaperrors.ErrSwapRequestNotFound
		}
		failed("lock_request", err)
		return DecisionResponse{}, err
	}

	if !approval.CanDecide(*record, actor) {
		s.logger.Warn("decide swap approval forbidden",
			zap.String("approval_id", record.ID.String()),
			zap.String("actor_id", actor.UserID.String()),
			zap.String("actor_role", actor.Role),
		)
		return DecisionResponse{}, dayswaperrors.ErrNotApprover
	}
	if !record.IsPending() {
		return DecisionResponse{}, dayswaperrors.ErrAlreadyDecided
	}

	decidedAt := time.Now().UTC()
	written, err := approvals.DecideIfPending(ctx, record.ID, decision, note, decidedAt)
	if err != nil {
		failed("write_decision", err)
		return DecisionResponse{}, err
	}
	if !written {
		s.logger.Warn("decide swap approval lost race",
			zap.String("approval_id", record.ID.String()),
			zap.Int("level", record.Level),
		)
		return DecisionResponse{}, dayswaperrors.ErrAlreadyDecided
	}

	records, err := approvals.ListByRequest(ctx, sr.ID)
	if err != nil {
		failed("reload_approvals", err)
		return DecisionResponse{}, err
	}
	outcome := approval.Aggregate(records)
	previousStatus := sr.Status

	if err := requests.UpdateStatus(ctx, sr.ID, outcome.Status, outcome.CurrentLevel); err != nil {
		failed("update_status", err)
		return DecisionResponse{}, err
	}
	sr.Status = outcome.Status
	sr.CurrentLevel = outcome.CurrentLevel

	pairs, err := requests.ListPairs(ctx, sr.ID)
	if err != nil {
		failed("load_pairs", err)
		return DecisionResponse{}, err
	}
	sr.Pairs = pairs

	var summary shift.Summary
	if outcome.Status == StatusApproved && previousStatus != StatusApproved {
		summary, err = s.reconciler.Reconcile(ctx, s.shifts.WithTx(tx), sr.UserID, toDatePairs(pairs), pattern)
		if err != nil {
			failed("reconcile", err)
			return DecisionResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		failed("commit", err)
		return DecisionResponse{}, err
	}
	s.logger.Info("decide swap approval success",
		zap.String("swap_request_id", sr.ID.String()),
		zap.String("approval_id", record.ID.String()),
		zap.Int("level", record.Level),
		zap.String("decision", decision),
		zap.String("status", sr.Status),
		zap.Int("updated_count", summary.UpdatedCount),
		zap.Int("created_count", summary.CreatedCount),
	)

	s.notifyDecision(notifyCtx, *sr, record.Level, decision, note)
	if summary.Changed() {
		s.notifyAdjustment(notifyCtx, *sr, summary)
	}

	return DecisionResponse{
		Request:        mapToResponse(*sr, records),
		Reconciliation: mapSummary(summary),
	}, nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return dayswaperrors.ErrSwapRequestNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete swap request begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sr, err := qtx.FindByIDForUpdate(ctx, companyID, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dayswaperrors.ErrSwapRequestNotFound
		}
		return err
	}
	if sr.Status != StatusPending {
		return dayswaperrors.ErrSwapRequestNotPending
	}

	if err := s.approvals.WithTx(tx).SoftDeleteByRequest(ctx, sr.ID); err != nil {
		s.logger.Error("delete swap request approvals failed", zap.Error(err))
		return err
	}
	if err := qtx.SoftDelete(ctx, companyID, sr.ID); err != nil {
		s.logger.Error("delete swap request persist failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete swap request commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("delete swap request success", zap.String("swap_request_id", id), zap.String("company_id", companyID))
	return nil
}

func (s *service) notifyDecision(ctx context.Context, sr SwapRequest, level int, decision string, note *string) {
	payload := map[string]any{
		"decision":        decision,
		"approval_level":  level,
		"swap_request_id": sr.ID.String(),
		"request_number":  sr.RequestNumber,
	}
	if note != nil {
		payload["note"] = *note
	}
	s.send(ctx, notification.KindSwapDecided, sr, payload)
}

func (s *service) notifyAdjustment(ctx context.Context, sr SwapRequest, summary shift.Summary) {
	start, end, ok := summary.Period()
	if !ok {
		return
	}
	label := start.Format(periodLabelLayout)
	if !end.Equal(start) {
		label += " - " + end.Format(periodLabelLayout)
	}
	s.send(ctx, notification.KindShiftSwapAdjustment, sr, map[string]any{
		"period_start":    start.Format(dateLayout),
		"period_end":      end.Format(dateLayout),
		"period_label":    label,
		"updated_count":   summary.UpdatedCount,
		"created_count":   summary.CreatedCount,
		"swap_request_id": sr.ID.String(),
	})
}

func (s *service) send(ctx context.Context, kind string, sr SwapRequest, payload map[string]any) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Send(ctx, kind, sr.UserID.String(), payload, notification.SendOptions{
		Deeplink:    "/day-swaps/" + sr.ID.String(),
		RelatedType: "swap_request",
		RelatedID:   sr.ID.String(),
	})
	if err != nil {
		s.logger.Warn("swap notification dispatch failed",
			zap.String("kind", kind),
			zap.String("swap_request_id", sr.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *service) buildApprovalMatrix(approvers []ApproverRequest) ([]approval.Record, error) {
	if len(approvers) == 0 {
		records := make([]approval.Record, 0, len(s.opts.DefaultChain))
		for _, role := range s.opts.DefaultChain {
			role = approval.NormalizeRole(role)
			if role == "" {
				continue
			}
			records = append(records, approval.Record{
				Level:        len(records) + 1,
				ApproverRole: &role,
				Decision:     approval.DecisionPending,
			})
		}
		if len(records) == 0 {
			return nil, dayswaperrors.ErrApproversRequired
		}
		return records, nil
	}

	seen := make(map[int]struct{}, len(approvers))
	records := make([]approval.Record, 0, len(approvers))
	for i, a := range approvers {
		level := a.Level
		if level == 0 {
			level = i + 1
		}
		if level < 1 {
			return nil, dayswaperrors.ErrInvalidApprovalLevel
		}
		if _, dup := seen[level]; dup {
			return nil, dayswaperrors.ErrInvalidApprovalLevel
		}
		seen[level] = struct{}{}

		rec := approval.Record{Level: level, Decision: approval.DecisionPending}
		if a.UserID != nil && strings.TrimSpace(*a.UserID) != "" {
			uid, err := uuid.Parse(strings.TrimSpace(*a.UserID))
			if err != nil {
				return nil, dayswaperrors.ErrInvalidUserID
			}
			rec.ApproverUserID = &uid
		}
		if a.Role != nil {
			if role := approval.NormalizeRole(*a.Role); role != "" {
				rec.ApproverRole = &role
			}
		}
		if rec.ApproverUserID == nil && rec.ApproverRole == nil {
			return nil, dayswaperrors.ErrApproverIdentityRequired
		}
		records = append(records, rec)
	}
	return records, nil
}

func parsePairs(in []PairRequest) ([]SwapPair, error) {
	if len(in) == 0 {
		return nil, dayswaperrors.ErrPairsRequired
	}
	pairs := make([]SwapPair, 0, len(in))
	for i, p := range in {
		off, err := parseDate(p.DayOff)
		if err != nil {
			return nil, dayswaperrors.ErrInvalidDateFormat.WithDetails(map[string]any{"pair": i, "field": "day_off"})
		}
		worked, err := parseDate(p.DayWorked)
		if err != nil {
			return nil, dayswaperrors.ErrInvalidDateFormat.WithDetails(map[string]any{"pair": i, "field": "day_worked"})
		}
		if off.Equal(worked) {
			return nil, dayswaperrors.ErrSameDayPair.WithDetails(map[string]any{"pair": i})
		}
		pairs = append(pairs, SwapPair{DayOff: off, DayWorked: worked, Position: i})
	}
	return pairs, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, dayswaperrors.ErrInvalidDateFormat
	}
	return t, nil
}

func toDatePairs(pairs []SwapPair) []shift.DatePair {
	out := make([]shift.DatePair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, shift.DatePair{DayOff: p.DayOff, DayWorked: p.DayWorked})
	}
	return out
}

func mapToResponse(sr SwapRequest, records []approval.Record) SwapRequestResponse {
	pairs := make([]PairResponse, 0, len(sr.Pairs))
	for _, p := range sr.Pairs {
		pairs = append(pairs, PairResponse{
			DayOff:    p.DayOff.Format(dateLayout),
			DayWorked: p.DayWorked.Format(dateLayout),
		})
	}

	return SwapRequestResponse{
		ID:            sr.ID.String(),
		CompanyID:     sr.CompanyID.String(),
		RequestNumber: sr.RequestNumber,
		UserID:        sr.UserID.String(),
		Category:      sr.Category,
		Reason:        sr.Reason,
		Status:        sr.Status,
		CurrentLevel:  sr.CurrentLevel,
		CreatedBy:     sr.CreatedBy.String(),
		CreatedAt:     sr.CreatedAt.Format(time.RFC3339),
		Pairs:         pairs,
		Approvals:     mapApprovals(records),
	}
}

func mapApprovals(records []approval.Record) []ApprovalResponse {
	if len(records) == 0 {
		return nil
	}
	out := make([]ApprovalResponse, 0, len(records))
	for _, r := range records {
		resp := ApprovalResponse{
			ID:            r.ID.String(),
			SwapRequestID: r.SwapRequestID.String(),
			Level:         r.Level,
			ApproverRole:  r.ApproverRole,
			Decision:      r.Decision,
			Note:          r.Note,
		}
		if r.ApproverUserID != nil {
			v := r.ApproverUserID.String()
			resp.ApproverUserID = &v
		}
		if r.DecidedAt != nil {
			v := r.DecidedAt.Format(time.RFC3339)
			resp.DecidedAt = &v
		}
		out = append(out, resp)
	}
	return out
}

func mapSummary(summary shift.Summary) ReconciliationResponse {
	dates := make([]string, 0, len(summary.AffectedDates))
	for _, d := range summary.AffectedDates {
		dates = append(dates, d.Format(dateLayout))
	}
	return ReconciliationResponse{
		UpdatedCount:  summary.UpdatedCount,
		CreatedCount:  summary.CreatedCount,
		AffectedDates: dates,
	}
}
