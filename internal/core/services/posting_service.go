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
	"github.com/KANAL1234/business-erp-system-sub002/internal/platform/metrics"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/accounting"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	skipReasonNothingToPost = "event carries no amounts to post"
	skipReasonNoVariance    = "stock adjustment has no variance"
)

// postingService turns business events into POSTED journal entries.
type postingService struct {
	BaseService
	eventRepo        portsrepo.EventSourceRepository
	journalRepo      portsrepo.JournalRepositoryFacade
	fiscalPeriodRepo portsrepo.FiscalPeriodRepository
	directory        portssvc.AccountDirectorySvc
	balanceSvc       portssvc.BalanceSvc
	guard            *idempotencyGuard
	validate         *validator.Validate
	metrics          *metrics.Ledger
}

// NewPostingService creates the automatic posting engine. m may be nil.
func NewPostingService(
	eventRepo portsrepo.EventSourceRepository,
	journalRepo portsrepo.JournalRepositoryFacade,
	fiscalPeriodRepo portsrepo.FiscalPeriodRepository,
	directory portssvc.AccountDirectorySvc,
	balanceSvc portssvc.BalanceSvc,
	m *metrics.Ledger,
) portssvc.PostingSvcFacade {
	return &postingService{
		eventRepo:        eventRepo,
		journalRepo:      journalRepo,
		fiscalPeriodRepo: fiscalPeriodRepo,
		directory:        directory,
		balanceSvc:       balanceSvc,
		guard:            &idempotencyGuard{journalRepo: journalRepo},
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		metrics:          m,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// loadSource reads the business record behind an event and pairs it with its posting rule.
func (s *postingService) loadSource(ctx context.Context, eventType domain.EventType, eventID string) (*postingSource, error) {
	switch eventType {
	case domain.EventPOSSale:
		sale, err := s.eventRepo.FindPOSSale(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return &postingSource{
			record:     sale,
			number:     sale.SaleNumber,
			date:       sale.SaleDate,
			narration:  fmt.Sprintf("POS sale %s (%s)", sale.SaleNumber, strings.ToLower(string(sale.PaymentMethod))),
			reference:  domain.Reference{Type: string(eventType), ID: sale.SaleID, Number: sale.SaleNumber},
			buildLines: posSaleLines(sale),
		}, nil

	case domain.EventVendorBill:
		bill, err := s.eventRepo.FindVendorBill(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return &postingSource{
			record:     bill,
			number:     bill.BillNumber,
			date:       bill.BillDate,
			narration:  "Vendor bill " + bill.BillNumber,
			reference:  domain.Reference{Type: string(eventType), ID: bill.BillID, Number: bill.BillNumber},
			buildLines: vendorBillLines(bill),
		}, nil

	case domain.EventStockAdjustment:
		adj, err := s.eventRepo.FindStockAdjustment(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return &postingSource{
			record:     adj,
			number:     adj.AdjustmentNumber,
			date:       adj.AdjustmentDate,
			narration:  "Stock adjustment " + adj.AdjustmentNumber,
			reference:  domain.Reference{Type: string(eventType), ID: adj.AdjustmentID, Number: adj.AdjustmentNumber},
			buildLines: stockAdjustmentLines(adj),
		}, nil

	case domain.EventFuelLog:
		fuel, err := s.eventRepo.FindFuelLog(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return &postingSource{
			record:     fuel,
			number:     fuel.LogNumber,
			date:       fuel.LogDate,
			narration:  "Fuel expense " + fuel.LogNumber,
			reference:  domain.Reference{Type: string(eventType), ID: fuel.FuelLogID, Number: fuel.LogNumber},
			buildLines: fuelLogLines(fuel),
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown event type %q", apperrors.ErrValidation, eventType)
}

func (s *postingService) skipped(ctx context.Context, eventType domain.EventType, eventID, reason string, retryable bool) *domain.PostingResult {
	s.LogWarn(ctx, "Automatic posting skipped",
		slog.String("event_type", string(eventType)),
		slog.String("event_id", eventID),
		slog.String("reason", reason))
	s.metrics.Posting(string(eventType), string(domain.OutcomeSkipped))
	if retryable {
		s.metrics.PostingFailure(string(eventType), "configuration")
	}
	return &domain.PostingResult{Outcome: domain.OutcomeSkipped, Reason: reason, Retryable: retryable}
}

func (s *postingService) alreadyPosted(eventType domain.EventType, entry *domain.JournalEntry) *domain.PostingResult {
	s.metrics.Posting(string(eventType), string(domain.OutcomeAlreadyPosted))
	return &domain.PostingResult{Outcome: domain.OutcomeAlreadyPosted, Entry: entry}
}

func (s *postingService) PostForEvent(ctx context.Context, eventType domain.EventType, eventID string, actorID string) (*domain.PostingResult, error) {
	if !eventType.IsValid() {
		return nil, fmt.Errorf("%w: unknown event type %q", apperrors.ErrValidation, eventType)
	}
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: event id is required", apperrors.ErrValidation)
	}

	src, err := s.loadSource(ctx, eventType, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.validate.StructCtx(ctx, src.record); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", apperrors.ErrValidation, eventType, eventID, err)
	}

	posted, existing, err := s.guard.AlreadyPosted(ctx, eventType, eventID, src.number)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Document number collision",
				slog.String("event_type", string(eventType)),
				slog.String("event_id", eventID))
		}
		return nil, err
	}
	if posted {
		return s.alreadyPosted(eventType, existing), nil
	}

	b := &lineBuilder{ctx: ctx, directory: s.directory}
	src.buildLines(b)
	if b.err != nil {
		if errors.Is(b.err, apperrors.ErrConfiguration) {
			return s.skipped(ctx, eventType, eventID, b.err.Error(), true), nil
		}
		return nil, b.err
	}

	entryID := uuid.NewString()
	lines := b.lines()
	if len(lines) == 0 {
		reason := skipReasonNothingToPost
		if eventType == domain.EventStockAdjustment {
			reason = skipReasonNoVariance
		}
		return s.skipped(ctx, eventType, eventID, reason, false), nil
	}
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
	}

	totalDebit, totalCredit, err := accounting.ValidateLinesBalance(lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", apperrors.ErrValidation, eventType, eventID, err)
	}

	entryDate := dateOnly(src.date)
	periodID, err := periodForPosting(ctx, s.fiscalPeriodRepo, entryDate)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	reference := src.reference
	entry := &domain.JournalEntry{
		EntryID:        entryID,
		DocumentNumber: postingNumber(eventType, src.number),
		EntryDate:      entryDate,
		EntryType:      domain.EntryAuto,
		Narration:      src.narration,
		Reference:      &reference,
		FiscalPeriodID: periodID,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		Status:         domain.StatusPosted,
		PostedBy:       &actorID,
		PostedAt:       &now,
		AuditFields:    domain.NewAuditFields(actorID, now),
		Lines:          lines,
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the race to a concurrent posting of the same event.
			existing, findErr := s.journalRepo.FindEntryByDocumentNumber(ctx, entry.DocumentNumber)
			if findErr != nil {
				return nil, findErr
			}
			if !sameEvent(existing, eventType, eventID) {
				collision := numberCollision(existing, eventType, eventID)
				s.LogError(ctx, collision, "Document number collision",
					slog.String("event_type", string(eventType)),
					slog.String("event_id", eventID))
				return nil, collision
			}
			return s.alreadyPosted(eventType, existing), nil
		}
		s.LogError(ctx, err, "Failed to save automatic entry",
			slog.String("event_type", string(eventType)),
			slog.String("event_id", eventID))
		return nil, err
	}

	s.metrics.Posting(string(eventType), string(domain.OutcomePosted))
	s.LogInfo(ctx, "Automatic entry posted",
		slog.String("event_type", string(eventType)),
		slog.String("event_id", eventID),
		slog.String("document_number", entry.DocumentNumber))

	if s.balanceSvc != nil {
		if _, err := s.balanceSvc.Recompute(ctx); err != nil {
			s.LogError(ctx, err, "Balance recompute after automatic post failed",
				slog.String("document_number", entry.DocumentNumber))
		}
	}

	return &domain.PostingResult{Outcome: domain.OutcomePosted, Entry: entry}, nil
}

// Trigger posts the event and swallows any failure after logging it.
func (s *postingService) Trigger(ctx context.Context, eventType domain.EventType, eventID string, actorID string) {
	result, err := s.PostForEvent(ctx, eventType, eventID, actorID)
	if err != nil {
		s.metrics.PostingFailure(string(eventType), failureReason(err))
		s.LogError(ctx, err, "Automatic posting failed",
			slog.String("event_type", string(eventType)),
			slog.String("event_id", eventID))
		return
	}
	s.LogDebug(ctx, "Automatic posting triggered",
		slog.String("event_type", string(eventType)),
		slog.String("event_id", eventID),
		slog.String("outcome", string(result.Outcome)))
}

// failureReason buckets an error for the failure counter.
func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrConfiguration):
		return "configuration"
	case errors.Is(err, apperrors.ErrDuplicate):
		return "duplicate"
	default:
		return "internal"
	}
}
