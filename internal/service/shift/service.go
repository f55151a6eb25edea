package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/events"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/timeutil"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	db        *database.DB
	shiftRepo shift.ShiftRepository
	validator *OverlapValidator
	bus       *events.Bus
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	bus *events.Bus,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:        db,
		shiftRepo: shiftRepo,
		validator: NewOverlapValidator(),
		bus:       bus,
	}
}

// Helper to get company_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, shift.ValidationResult, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, err
	}

	existing, err := s.existingShiftsAround(ctx, req.EmployeeID, req.Date, companyID)
	if err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, err
	}

	result := s.validator.ValidateCandidate(
		Candidate{
			EmployeeID: req.EmployeeID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
		},
		existing,
		ValidateOptions{AllowOvernight: req.AllowOvernight, MaxHours: req.MaxHours},
	)
	if !result.Valid {
		return shift.ShiftResponse{}, result, nil
	}

	newShift := shift.Shift{
		ID:            uuid.NewString(),
		EmployeeID:    req.EmployeeID,
		CompanyID:     companyID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Description:   req.Description,
		ShiftType:     req.ShiftType,
		CheckIn:       shift.AbsentCheck(),
		CheckOut:      shift.AbsentCheck(),
		DerivedStatus: shift.StatusScheduled,
	}
	if err := normalizeOvernight(&newShift, result.Overnight); err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, err
	}

	created, err := s.shiftRepo.Create(ctx, newShift)
	if err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, fmt.Errorf("failed to create shift: %w", err)
	}

	s.publishChanged(created)

	return mapShiftToResponse(created), result, nil
}

// UpdateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, shift.ValidationResult, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, err
	}

	current, err := s.shiftRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, err
	}

	if req.Date != nil && *req.Date != "" {
		current.Date = *req.Date
	}
	if req.StartTime != nil && *req.StartTime != "" {
		current.StartTime = *req.StartTime
	}
	if req.EndTime != nil && *req.EndTime != "" {
		current.EndTime = *req.EndTime
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.ShiftType != nil {
		current.ShiftType = *req.ShiftType
	}

	existing, err := s.existingShiftsAround(ctx, current.EmployeeID, current.Date, companyID)
	if err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, err
	}

	result := s.validator.ValidateCandidate(
		Candidate{
			EmployeeID: current.EmployeeID,
			Date:       current.Date,
			StartTime:  current.StartTime,
			EndTime:    current.EndTime,
		},
		existing,
		ValidateOptions{
			AllowOvernight: req.AllowOvernight || current.Overnight,
			MaxHours:       req.MaxHours,
			ExcludeShiftID: current.ID,
		},
	)
	if !result.Valid {
		return shift.ShiftResponse{}, result, nil
	}

	if err := normalizeOvernight(&current, result.Overnight); err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, err
	}

	// Edited times can change what the derived fields should be.
	if patch := SyncDerivedFields(current); patch != nil {
		applyPatch(&current, patch)
	}

	if err := s.shiftRepo.Update(ctx, current); err != nil {
		return shift.ShiftResponse{}, shift.ValidationResult{}, fmt.Errorf("failed to update shift: %w", err)
	}

	s.publishChanged(current)

	return mapShiftToResponse(current), result, nil
}

// ValidateCandidateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) ValidateCandidateShift(ctx context.Context, req shift.ValidateShiftRequest) (shift.ValidationResult, error) {
	if err := req.Validate(); err != nil {
		return shift.ValidationResult{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.ValidationResult{}, err
	}

	existing, err := s.existingShiftsAround(ctx, req.EmployeeID, req.Date, companyID)
	if err != nil {
		return shift.ValidationResult{}, err
	}

	return s.validator.ValidateCandidate(
		Candidate{
			EmployeeID: req.EmployeeID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
		},
		existing,
		ValidateOptions{
			AllowOvernight: req.AllowOvernight,
			MaxHours:       req.MaxHours,
			ExcludeShiftID: req.ExcludeShiftID,
		},
	), nil
}

// CheckIn implements shift.ShiftService.
func (s *ShiftServiceImpl) CheckIn(ctx context.Context, req shift.CheckRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	current, err := s.shiftRepo.GetByID(ctx, req.ShiftID, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if current.CheckIn.Present() {
		return shift.ShiftResponse{}, shift.ErrAlreadyCheckedIn
	}

	event, err := checkEventFromRequest(req)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	current.CheckIn = event

	if patch := SyncDerivedFields(current); patch != nil {
		applyPatch(&current, patch)
	}

	if err := s.shiftRepo.Update(ctx, current); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	s.publishChanged(current)

	return mapShiftToResponse(current), nil
}

// CheckOut implements shift.ShiftService.
func (s *ShiftServiceImpl) CheckOut(ctx context.Context, req shift.CheckRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	current, err := s.shiftRepo.GetByID(ctx, req.ShiftID, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if !current.CheckIn.Present() {
		return shift.ShiftResponse{}, shift.ErrNotCheckedIn
	}
	if current.CheckOut.Present() {
		return shift.ShiftResponse{}, shift.ErrAlreadyCheckedOut
	}

	event, err := checkEventFromRequest(req)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	current.CheckOut = event

	if patch := SyncDerivedFields(current); patch != nil {
		applyPatch(&current, patch)
	}

	if err := s.shiftRepo.Update(ctx, current); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	s.publishChanged(current)

	return mapShiftToResponse(current), nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	found, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return mapShiftToResponse(found), nil
}

// ListShiftsByDay implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShiftsByDay(ctx context.Context, filter shift.ListShiftsFilter) ([]shift.DayGroup, error) {
	if filter.StartDate > filter.EndDate {
		return nil, shift.ErrInvalidDateRange
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Pull one extra day back so a previous-day overnight shift can
	// contribute its continuation fragment to the first requested day.
	fetchStart, err := timeutil.PrevDate(filter.StartDate)
	if err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.ListForEmployeeInRange(ctx, filter.EmployeeID, fetchStart, filter.EndDate, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	groups := make(map[string]*shift.DayGroup)
	order := []string{}
	group := func(date string) *shift.DayGroup {
		if g, ok := groups[date]; ok {
			return g
		}
		g := &shift.DayGroup{Date: date}
		groups[date] = g
		order = append(order, date)
		return g
	}

	for _, sh := range shifts {
		frag := SplitContinuation(sh)

		if sh.Date >= filter.StartDate {
			resp := mapShiftToResponse(sh)
			if frag != nil {
				resp.WorkedMinutesOnDate = frag.BaseWorkedMinutes
			}
			group(sh.Date).Shifts = append(group(sh.Date).Shifts, resp)
		}

		if frag != nil && frag.Date >= filter.StartDate && frag.Date <= filter.EndDate {
			group(frag.Date).Fragments = append(group(frag.Date).Fragments, *frag)
		}
	}

	out := make([]shift.DayGroup, 0, len(order))
	for _, date := range order {
		out = append(out, *groups[date])
	}
	sortDayGroups(out)

	return out, nil
}

// ResyncShift implements shift.ShiftService.
func (s *ShiftServiceImpl) ResyncShift(ctx context.Context, shiftID, companyID string) (bool, error) {
	current, err := s.shiftRepo.GetByID(ctx, shiftID, companyID)
	if err != nil {
		return false, err
	}

	patch := SyncDerivedFields(current)
	if patch == nil {
		return false, nil
	}

	if err := s.shiftRepo.ApplyPatch(ctx, shiftID, *patch, companyID); err != nil {
		return false, fmt.Errorf("failed to apply derived-field patch: %w", err)
	}

	return true, nil
}

// DeleteShift implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	current, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}

	if err := s.shiftRepo.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	// The deleted shift's week still needs its earnings rebuilt.
	s.publishChanged(current)

	return nil
}

// existingShiftsAround fetches the nominal day's shifts plus the previous
// day's, whose overnight spill can still conflict with the candidate.
func (s *ShiftServiceImpl) existingShiftsAround(ctx context.Context, employeeID, date, companyID string) ([]shift.Shift, error) {
	prev, err := timeutil.PrevDate(date)
	if err != nil {
		return nil, err
	}
	shifts, err := s.shiftRepo.ListForEmployeeInRange(ctx, employeeID, prev, date, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing shifts: %w", err)
	}
	return shifts, nil
}

// normalizeOvernight writes the canonical midnight-crossing representation:
// EndDate present exactly when the shift crosses midnight, flag derived from
// it. The three redundant signals in the raw data collapse to one on write.
func normalizeOvernight(sh *shift.Shift, overnight bool) error {
	if !overnight {
		sh.Overnight = false
		sh.EndDate = nil
		return nil
	}

	next, err := timeutil.NextDate(sh.Date)
	if err != nil {
		return err
	}
	sh.Overnight = true
	sh.EndDate = &next
	return nil
}

func applyPatch(sh *shift.Shift, patch *shift.Patch) {
	if patch.DerivedWorkedHours != nil {
		sh.DerivedWorkedHours = patch.DerivedWorkedHours
	}
	if patch.DerivedStatus != nil {
		sh.DerivedStatus = *patch.DerivedStatus
	}
}

func checkEventFromRequest(req shift.CheckRequest) (shift.CheckEvent, error) {
	if req.Timestamp != nil && *req.Timestamp != "" {
		at, ok := validator.IsValidDateTime(*req.Timestamp)
		if !ok {
			return shift.CheckEvent{}, shift.ErrInvalidRequestData
		}
		return shift.PreciseCheck(at.UTC()), nil
	}

	if req.ClockTime != nil && *req.ClockTime != "" {
		if _, err := timeutil.ParseClock(*req.ClockTime); err != nil {
			return shift.CheckEvent{}, shift.ErrInvalidRequestData
		}
		return shift.WallClockCheck(*req.ClockTime), nil
	}

	// Neither supplied: stamp the current instant.
	return shift.PreciseCheck(time.Now().UTC()), nil
}

func (s *ShiftServiceImpl) publishChanged(sh shift.Shift) {
	if s.bus == nil {
		return
	}
	endDate := ""
	if sh.EndDate != nil {
		endDate = *sh.EndDate
	}
	s.bus.Publish(events.ShiftChanged{
		ShiftID:    sh.ID,
		EmployeeID: sh.EmployeeID,
		CompanyID:  sh.CompanyID,
		Date:       sh.Date,
		EndDate:    endDate,
	})
}

func sortDayGroups(groups []shift.DayGroup) {
	// ISO dates sort lexicographically.
	for i := 1; i < len(groups); i++ {
		for j := i; j > 0 && groups[j].Date < groups[j-1].Date; j-- {
			groups[j], groups[j-1] = groups[j-1], groups[j]
		}
	}
}

// mapShiftToResponse converts a Shift entity to ShiftResponse
func mapShiftToResponse(sh shift.Shift) shift.ShiftResponse {
	resp := shift.ShiftResponse{
		ID:                 sh.ID,
		EmployeeID:         sh.EmployeeID,
		EmployeeName:       sh.EmployeeName,
		Date:               sh.Date,
		StartTime:          sh.StartTime,
		EndTime:            sh.EndTime,
		EndDate:            sh.EndDate,
		Overnight:          sh.Overnight,
		Description:        sh.Description,
		ShiftType:          sh.ShiftType,
		DerivedWorkedHours: sh.DerivedWorkedHours,
		DerivedStatus:      sh.DerivedStatus,
		CreatedAt:          sh.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:          sh.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	resp.CheckInTime = checkEventToString(sh.CheckIn)
	resp.CheckOutTime = checkEventToString(sh.CheckOut)

	return resp
}

func checkEventToString(e shift.CheckEvent) *string {
	switch e.Kind {
	case shift.CheckPrecise:
		v := e.At.Format("2006-01-02 15:04:05")
		return &v
	case shift.CheckWallClock:
		v := e.Clock
		return &v
	default:
		return nil
	}
}
