package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreOneSessionPerChat(t *testing.T) {
	s := NewStore()

	first := s.Start(1, CommandCreateQuote, StepClient, QuoteDraft{})
	second := s.Start(1, CommandSearchPayment, StepDueDate, PaymentDraft{})

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
	assert.NotEqual(t, first.ID, got.ID)
	assert.Equal(t, CommandSearchPayment, got.Command)
	assert.IsType(t, PaymentDraft{}, got.Draft)
}

func TestStoreChatsAreIndependent(t *testing.T) {
	s := NewStore()
	s.Start(1, CommandAddExpense, StepAmount, ExpenseDraft{})
	s.Start(2, CommandCreateQuote, StepClient, QuoteDraft{})

	s.Delete(1)

	_, ok := s.Get(1)
	assert.False(t, ok)
	other, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, CommandCreateQuote, other.Command)
}

func TestSessionValuesAreNotShared(t *testing.T) {
	s := NewStore()
	sess := s.Start(1, CommandCreateQuote, StepClient, QuoteDraft{})

	sess = sess.Advance(StepQuoteType, QuoteDraft{Client: "Carla"})

	stored, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, StepClient, stored.Step)
	assert.Equal(t, QuoteDraft{}, stored.Draft)

	s.Set(sess)
	stored, _ = s.Get(1)
	assert.Equal(t, StepQuoteType, stored.Step)
	assert.Equal(t, "Carla", stored.Draft.(QuoteDraft).Client)
}

func TestSessionIs(t *testing.T) {
	sess := Session{Command: CommandChangeStatus, Step: StepStatus, Draft: EntryLookup{Date: time.Now()}}
	assert.True(t, sess.Is(CommandChangeStatus, StepStatus))
	assert.False(t, sess.Is(CommandChangeStatus, StepTime))
	assert.False(t, sess.Is(CommandCancelSchedule, StepStatus))
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			s.Start(chatID, CommandMonthlyReport, StepMonth, Empty{})
			_, _ = s.Get(chatID)
			s.Delete(chatID)
		}(i)
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		_, ok := s.Get(i)
		assert.False(t, ok)
	}
}

func TestTakeClaimsSessionOnce(t *testing.T) {
	s := NewStore()
	sess := s.Start(1, CommandAddExpense, StepExpenseMethod, ExpenseDraft{})

	assert.False(t, s.Take(1, "other"))
	assert.True(t, s.Take(1, sess.ID))
	assert.False(t, s.Take(1, sess.ID))

	_, ok := s.Get(1)
	assert.False(t, ok)
}

func TestTakeLeavesNewerSession(t *testing.T) {
	s := NewStore()
	old := s.Start(1, CommandAddExpense, StepExpenseMethod, ExpenseDraft{})
	fresh := s.Start(1, CommandCreateQuote, StepClient, QuoteDraft{})

	assert.False(t, s.Take(1, old.ID))
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, fresh.ID, got.ID)
}

func TestTakeUnderContention(t *testing.T) {
	s := NewStore()
	sess := s.Start(1, CommandAddExpense, StepExpenseMethod, ExpenseDraft{})

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Take(1, sess.ID) {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, won)
}
