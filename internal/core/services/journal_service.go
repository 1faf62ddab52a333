package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/dto"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/accounting"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100

	referenceTypeJournalEntry = "JOURNAL_ENTRY"
)

// journalService drives the manual entry lifecycle.
type journalService struct {
	BaseService
	journalRepo      portsrepo.JournalRepositoryFacade
	fiscalPeriodRepo portsrepo.FiscalPeriodRepository
	accountSvc       portssvc.AccountReaderSvc
	balanceSvc       portssvc.BalanceSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	fiscalPeriodRepo portsrepo.FiscalPeriodRepository,
	accountSvc portssvc.AccountReaderSvc,
	balanceSvc portssvc.BalanceSvc,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:      journalRepo,
		fiscalPeriodRepo: fiscalPeriodRepo,
		accountSvc:       accountSvc,
		balanceSvc:       balanceSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts request lines into numbered domain lines and checks they balance.
func (s *journalService) buildLines(entryID string, reqLines []dto.JournalLineRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, l := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   l.AccountID,
			LineNumber:  i + 1,
			Debit:       accounting.Round(l.Debit),
			Credit:      accounting.Round(l.Credit),
			Description: strings.TrimSpace(l.Description),
			CostCenter:  l.CostCenter,
		}
	}
	if _, _, err := accounting.ValidateLinesBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return lines, nil
}

// checkAccounts verifies every line targets an existing, active account.
func (s *journalService) checkAccounts(ctx context.Context, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.AccountID)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range uniqueStrings(ids) {
		account, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, account.Code, id)
		}
	}
	return nil
}

func (s *journalService) findEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("journal entry " + entryID)
		}
		s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

// recomputeBalances refreshes derived balances after a post. A failure is logged and the post stands.
func (s *journalService) recomputeBalances(ctx context.Context, documentNumber string) {
	if s.balanceSvc == nil {
		return
	}
	if _, err := s.balanceSvc.Recompute(ctx); err != nil {
		s.LogError(ctx, err, "Balance recompute after post failed", slog.String("document_number", documentNumber))
	}
}

func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	if !req.EntryType.IsManual() {
		return nil, fmt.Errorf("%w: entry type %q cannot be created manually", apperrors.ErrValidation, req.EntryType)
	}
	if strings.TrimSpace(req.Narration) == "" {
		return nil, fmt.Errorf("%w: narration is required", apperrors.ErrValidation)
	}
	if req.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}

	entryID := uuid.NewString()
	lines, err := s.buildLines(entryID, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccounts(ctx, lines); err != nil {
		return nil, err
	}
	total, _, _ := accounting.ValidateLinesBalance(lines)

	entry := &domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   dateOnly(req.EntryDate),
		EntryType:   req.EntryType,
		Narration:   strings.TrimSpace(req.Narration),
		TotalDebit:  total,
		TotalCredit: total,
		Status:      domain.StatusDraft,
		AuditFields: domain.NewAuditFields(actorID, s.Now()),
		Lines:       lines,
	}
	if req.Reference != nil {
		entry.Reference = &domain.Reference{
			Type:   req.Reference.Type,
			ID:     req.Reference.ID,
			Number: req.Reference.Number,
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry drafted",
		slog.String("entry_id", entry.EntryID),
		slog.String("document_number", entry.DocumentNumber))
	return entry, nil
}

func (s *journalService) UpdateJournalLines(ctx context.Context, entryID string, req dto.UpdateJournalLinesRequest, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := entry.CanEdit(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrState, err)
	}

	lines, err := s.buildLines(entryID, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccounts(ctx, lines); err != nil {
		return nil, err
	}
	total, _, _ := accounting.ValidateLinesBalance(lines)

	now := s.Now()
	if err := s.journalRepo.ReplaceDraftLines(ctx, entryID, lines, total, total, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to replace journal lines", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Lines = lines
	entry.TotalDebit, entry.TotalCredit = total, total
	entry.LastUpdatedAt, entry.LastUpdatedBy = now, actorID
	return entry, nil
}

func (s *journalService) PostJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := entry.CanPost(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrState, err)
	}

	totalDebit, totalCredit, err := accounting.ValidateLinesBalance(entry.Lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.checkAccounts(ctx, entry.Lines); err != nil {
		return nil, err
	}
	periodID, err := periodForPosting(ctx, s.fiscalPeriodRepo, entry.EntryDate)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.journalRepo.MarkPosted(ctx, entryID, periodID, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Status = domain.StatusPosted
	entry.FiscalPeriodID = periodID
	entry.TotalDebit, entry.TotalCredit = totalDebit, totalCredit
	entry.PostedBy, entry.PostedAt = &actorID, &now
	entry.LastUpdatedAt, entry.LastUpdatedBy = now, actorID

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("document_number", entry.DocumentNumber))
	s.recomputeBalances(ctx, entry.DocumentNumber)
	return entry, nil
}

func (s *journalService) CancelJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := entry.CanCancel(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrState, err)
	}

	now := s.Now()
	if err := s.journalRepo.MarkCancelled(ctx, entryID, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to cancel journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Status = domain.StatusCancelled
	entry.LastUpdatedAt, entry.LastUpdatedBy = now, actorID
	return entry, nil
}

func (s *journalService) DeleteJournalEntry(ctx context.Context, entryID string, actorID string) error {
	entry, err := s.findEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if err := entry.CanDelete(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrState, err)
	}

	if err := s.journalRepo.DeleteDraft(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted",
		slog.String("entry_id", entryID),
		slog.String("document_number", entry.DocumentNumber),
		slog.String("actor_id", actorID))
	return nil
}

// ReverseJournalEntry books a mirror image of a posted entry. The original stays POSTED; the unique
// REV- number makes a second reversal of the same entry fail.
func (s *journalService) ReverseJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	original, err := s.findEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := original.CanReverse(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrState, err)
	}

	now := s.Now()
	entryDate := dateOnly(now)
	periodID, err := periodForPosting(ctx, s.fiscalPeriodRepo, entryDate)
	if err != nil {
		return nil, err
	}

	reversalID := uuid.NewString()
	lines := make([]domain.JournalLine, len(original.Lines))
	for i, l := range original.Lines {
		swapped := l.Swapped()
		swapped.LineID = uuid.NewString()
		swapped.EntryID = reversalID
		lines[i] = swapped
	}
	totalDebit, totalCredit, err := accounting.ValidateLinesBalance(lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	reversal := &domain.JournalEntry{
		EntryID:        reversalID,
		DocumentNumber: original.ReversalNumber(),
		EntryDate:      entryDate,
		EntryType:      domain.EntryReversal,
		Narration:      "Reversal of " + original.DocumentNumber + ": " + original.Narration,
		Reference: &domain.Reference{
			Type:   referenceTypeJournalEntry,
			ID:     original.EntryID,
			Number: original.DocumentNumber,
		},
		FiscalPeriodID: periodID,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		Status:         domain.StatusPosted,
		PostedBy:       &actorID,
		PostedAt:       &now,
		AuditFields:    domain.NewAuditFields(actorID, now),
		Lines:          lines,
	}

	if err := s.journalRepo.SaveEntry(ctx, reversal); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewStateError(fmt.Sprintf("entry %s has already been reversed", original.DocumentNumber))
		}
		s.LogError(ctx, err, "Failed to save reversal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_number", reversal.DocumentNumber))
	s.recomputeBalances(ctx, reversal.DocumentNumber)
	return reversal, nil
}

func (s *journalService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.findEntry(ctx, entryID)
}

func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	var filter domain.JournalFilter
	if params.Status != "" {
		status := domain.EntryStatus(params.Status)
		filter.Status = &status
	}
	if params.EntryType != "" {
		entryType := domain.EntryType(params.EntryType)
		filter.EntryType = &entryType
	}
	limit := pagination.ClampLimit(params.Limit, defaultJournalPageSize, maxJournalPageSize)

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}

	res := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		res.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return res, nil
}
