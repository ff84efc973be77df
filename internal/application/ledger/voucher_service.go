package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// VoucherService posts manual receipt and payment vouchers. Like invoice
// capture, a posting is a single unit of work: voucher row, account balance,
// journal entry and cash transaction commit together or not at all.
type VoucherService struct {
	scope  TransactionScope
	poster *finance.JournalPoster
	logger *zap.Logger
}

// NewVoucherService creates a new VoucherService
func NewVoucherService(scope TransactionScope, logger *zap.Logger) *VoucherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VoucherService{
		scope:  scope,
		poster: finance.NewJournalPoster(),
		logger: logger,
	}
}

// PostVoucher allocates a voucher number, adjusts the target account through
// a single-leg journal posting and, when the target is the cash account,
// appends the cash audit row. A NUMBER_CONFLICT replays the unit of work.
func (s *VoucherService) PostVoucher(ctx context.Context, req PostVoucherRequest) (*VoucherResponse, error) {
	voucherType := finance.VoucherType(req.VoucherType)
	if !voucherType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_TYPE", "Voucher type must be RECEIPT or PAYMENT")
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Voucher amount must be positive")
	}

	var response VoucherResponse
	var lastErr error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		lastErr = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			voucher, err := s.post(ctx, repos, voucherType, req)
			if err != nil {
				return err
			}
			response = ToVoucherResponse(voucher)
			return nil
		})
		if lastErr == nil {
			return &response, nil
		}
		if !shared.IsRetryable(lastErr) {
			return nil, lastErr
		}
		s.logger.Warn("voucher number conflict, retrying",
			zap.String("voucher_type", req.VoucherType),
			zap.Int("attempt", attempt),
		)
	}
	return nil, lastErr
}

// GetByID retrieves a voucher by ID
func (s *VoucherService) GetByID(ctx context.Context, id uuid.UUID) (*VoucherResponse, error) {
	var response VoucherResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		voucher, err := repos.Vouchers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		response = ToVoucherResponse(voucher)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves vouchers with filtering and pagination
func (s *VoucherService) List(ctx context.Context, filter finance.VoucherFilter) ([]VoucherResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var responses []VoucherResponse
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		vouchers, err := repos.Vouchers().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.Vouchers().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses = make([]VoucherResponse, 0, len(vouchers))
		for i := range vouchers {
			responses = append(responses, ToVoucherResponse(&vouchers[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

func (s *VoucherService) post(ctx context.Context, repos TransactionalRepositories, voucherType finance.VoucherType, req PostVoucherRequest) (*finance.Voucher, error) {
	account, err := repos.Accounts().FindByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	number, err := repos.Vouchers().GenerateVoucherNumber(ctx, voucherType)
	if err != nil {
		return nil, err
	}

	voucher, err := finance.NewVoucher(number, voucherType, account.ID, valueobject.NewMoneyEGP(req.Amount), req.Description)
	if err != nil {
		return nil, err
	}

	kind := finance.PostingKindReceipt
	if voucherType == finance.VoucherTypePayment {
		kind = finance.PostingKindPayment
	}
	entry, err := s.poster.Post(finance.PostingEvent{
		Kind:          kind,
		TotalAmount:   req.Amount,
		TargetAccount: account,
		Reference:     number,
		Description:   req.Description,
	}, finance.Chart{})
	if err != nil {
		return nil, err
	}

	if err := repos.Journal().Save(ctx, entry); err != nil {
		return nil, err
	}
	if err := repos.Accounts().SaveWithLock(ctx, account); err != nil {
		return nil, err
	}

	if account.IsCash() {
		cashTx, err := finance.NewCashTransaction(voucher.Amount, voucher.CashEffect(), req.Description, number)
		if err != nil {
			return nil, err
		}
		if err := repos.Cash().Save(ctx, cashTx); err != nil {
			return nil, err
		}
	}

	if err := repos.Vouchers().Save(ctx, voucher); err != nil {
		return nil, err
	}

	s.logger.Info("voucher posted",
		zap.String("voucher_number", number),
		zap.String("type", voucherType.String()),
		zap.String("amount", req.Amount.String()),
	)

	return voucher, nil
}
