package wage

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
)

type WageServiceImpl struct {
	wageRepo     wage.WageHistoryRepository
	employeeRepo employee.EmployeeRepository
}

func NewWageService(wageRepo wage.WageHistoryRepository, employeeRepo employee.EmployeeRepository) wage.WageService {
	return &WageServiceImpl{
		wageRepo:     wageRepo,
		employeeRepo: employeeRepo,
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

// RecordChange implements wage.WageService.
func (s *WageServiceImpl) RecordChange(ctx context.Context, req wage.CreateEntryRequest) (wage.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return wage.EntryResponse{}, err
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return wage.EntryResponse{}, wage.ErrInvalidRate
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return wage.EntryResponse{}, err
	}

	// The employee must exist in this company before a rate is recorded.
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return wage.EntryResponse{}, err
	}

	entry, err := s.wageRepo.Create(ctx, wage.HistoryEntry{
		ID:            uuid.NewString(),
		EmployeeID:    req.EmployeeID,
		CompanyID:     companyID,
		Rate:          req.Rate,
		EffectiveFrom: req.EffectiveFrom,
	})
	if err != nil {
		return wage.EntryResponse{}, fmt.Errorf("failed to record wage change: %w", err)
	}

	return mapEntryToResponse(entry), nil
}

// GetHistory implements wage.WageService.
func (s *WageServiceImpl) GetHistory(ctx context.Context, employeeID string) ([]wage.EntryResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.wageRepo.ListForEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]wage.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, mapEntryToResponse(entry))
	}

	return out, nil
}

func mapEntryToResponse(entry wage.HistoryEntry) wage.EntryResponse {
	return wage.EntryResponse{
		ID:            entry.ID,
		EmployeeID:    entry.EmployeeID,
		Rate:          entry.Rate,
		EffectiveFrom: entry.EffectiveFrom,
	}
}
