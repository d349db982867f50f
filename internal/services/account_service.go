package services

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"pixshield/internal/models"
	"pixshield/internal/util"
	"pixshield/pkg/money"
)

// AccountService keeps the demo account balance in memory.
type AccountService struct {
	mu        sync.Mutex
	holder    string
	balance   int64
	updatedAt time.Time
	now       func() time.Time
}

func NewAccountService(holder string, balanceCents int64) *AccountService {
	return &AccountService{
		holder:    holder,
		balance:   balanceCents,
		updatedAt: time.Now(),
		now:       time.Now,
	}
}

// Balance returns a snapshot of the account.
func (s *AccountService) Balance() models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Transfer debits a local transfer to account. amount is a pt-BR display value.
func (s *AccountService) Transfer(account, amount string) (*models.TransferReceipt, error) {
	account = util.CleanInput(account)
	amount = util.CleanInput(amount)

	verr := newValidationErrors()
	if account == "" {
		verr.flag(FieldConta)
	}
	cents, err := money.ParseCents(amount)
	if amount == "" || err != nil || cents <= 0 {
		verr.flag(FieldValor)
	}
	if !verr.empty() {
		verr.Message = "Preencha tudo"
		return nil, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cents > s.balance {
		return nil, fmt.Errorf("%w: saldo R$ %s, transferência R$ %s",
			models.ErrInsufficientFunds, money.FormatCents(s.balance), money.FormatCents(cents))
	}
	s.balance -= cents
	s.updatedAt = s.now()

	log.WithFields(log.Fields{"conta": account, "valor": money.WireValue(cents)}).Info("local transfer")
	return &models.TransferReceipt{
		Account:      account,
		AmountCents:  cents,
		Message:      fmt.Sprintf("Transferido R$ %s para %s", money.FormatCents(cents), account),
		BalanceCents: s.balance,
	}, nil
}

func (s *AccountService) snapshotLocked() models.Account {
	return models.Account{
		Holder:       s.holder,
		BalanceCents: s.balance,
		Balance:      money.FormatCents(s.balance),
		UpdatedAt:    s.updatedAt,
	}
}
