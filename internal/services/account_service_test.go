package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixshield/internal/models"
)

func TestAccountService_Transfer(t *testing.T) {
	svc := NewAccountService("Cliente Demo", 1234567)

	acc := svc.Balance()
	assert.Equal(t, "Cliente Demo", acc.Holder)
	assert.Equal(t, "12.345,67", acc.Balance)

	receipt, err := svc.Transfer("0001-9", "1.000,50")
	require.NoError(t, err)
	assert.Equal(t, int64(100050), receipt.AmountCents)
	assert.Equal(t, "Transferido R$ 1.000,50 para 0001-9", receipt.Message)
	assert.Equal(t, int64(1134517), receipt.BalanceCents)
	assert.Equal(t, int64(1134517), svc.Balance().BalanceCents)
}

func TestAccountService_TransferValidation(t *testing.T) {
	svc := NewAccountService("x", 1000)

	_, err := svc.Transfer("", "")
	var verr *ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{FieldConta, FieldValor}, verr.Names())
	assert.Equal(t, "Preencha tudo", verr.Message)

	_, err = svc.Transfer("123", "-5,00")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Transfer("123", "10,01")
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	assert.Equal(t, int64(1000), svc.Balance().BalanceCents)
}

func TestAccountService_ConcurrentTransfers(t *testing.T) {
	svc := NewAccountService("x", 10000)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Transfer("1", "1,00")
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(0), svc.Balance().BalanceCents)
}
