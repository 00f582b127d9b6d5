package transaction_test

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	txdomain "github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	txrepo "github.com/amirasaad/fintrack/pkg/repository/transaction"
	accountsvc "github.com/amirasaad/fintrack/pkg/service/account"
	categorysvc "github.com/amirasaad/fintrack/pkg/service/category"
	txsvc "github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type LedgerTestSuite struct {
	suite.Suite
	ctx        context.Context
	uow        repository.UnitOfWork
	cfg        *config.Ledger
	ledger     *txsvc.Service
	accounts   *accountsvc.Service
	categories *categorysvc.Service
	userID     uuid.UUID
}

func (s *LedgerTestSuite) SetupTest() {
	db := testutils.NewTestDB(s.T())
	s.ctx = context.Background()
	s.uow = infrarepo.NewUoW(db)
	s.cfg = testutils.NewTestConfig().Ledger
	logger := slog.Default()
	s.ledger = txsvc.New(s.uow, s.cfg, logger)
	s.accounts = accountsvc.New(s.uow, s.cfg, logger)
	s.categories = categorysvc.New(s.uow, logger)
	s.userID = testutils.SeedUser(s.T(), db)
}

func (s *LedgerTestSuite) newAccount(name string, initial float64) uuid.UUID {
	acc, err := s.accounts.Create(s.ctx, s.userID, accountsvc.CreateInput{
		Name:           name,
		Type:           "BANK",
		InitialBalance: initial,
	})
	s.Require().NoError(err)
	return acc.ID
}

func (s *LedgerTestSuite) newCategory(name, typ string) uuid.UUID {
	c, err := s.categories.Create(s.ctx, s.userID, name, typ)
	s.Require().NoError(err)
	return c.ID
}

func (s *LedgerTestSuite) balance(id uuid.UUID) int64 {
	acc, err := s.accounts.Get(s.ctx, s.userID, id)
	s.Require().NoError(err)
	return acc.BalanceCents
}

func (s *LedgerTestSuite) create(in txsvc.CreateInput) *dto.TransactionRead {
	tx, err := s.ledger.Create(s.ctx, s.userID, in)
	s.Require().NoError(err)
	return tx
}

func ptr[T any](v T) *T { return &v }

func (s *LedgerTestSuite) TestCreate_ExpenseAndIncome() {
	a := s.newAccount("Wallet", 0)
	tx := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 120.50, Description: "lunch"})
	s.Equal(int64(-12050), s.balance(a))
	s.Equal(int64(12050), tx.AmountCents)
	s.Equal("Wallet", tx.Account.Name)
	s.Nil(tx.ToAccount)

	b := s.newAccount("Salary", 0)
	s.create(txsvc.CreateInput{Type: "income", AccountID: b, Amount: 120.50})
	s.Equal(int64(12050), s.balance(b))
}

func (s *LedgerTestSuite) TestCreate_Transfer() {
	a := s.newAccount("A", 1000)
	b := s.newAccount("B", 0)
	tx := s.create(txsvc.CreateInput{Type: "TRANSFER", AccountID: a, ToAccountID: &b, Amount: 200})
	s.Equal(int64(80000), s.balance(a))
	s.Equal(int64(20000), s.balance(b))
	s.Require().NotNil(tx.ToAccount)
	s.Equal("B", tx.ToAccount.Name)
}

func (s *LedgerTestSuite) TestCreate_NonTransferIgnoresDestination() {
	a := s.newAccount("A", 0)
	b := s.newAccount("B", 0)
	tx := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, ToAccountID: &b, Amount: 5})
	s.Nil(tx.ToAccountID)
	s.Equal(int64(0), s.balance(b))
}

func (s *LedgerTestSuite) TestCreate_Errors() {
	a := s.newAccount("A", 0)
	b := s.newAccount("B", 0)
	expense := s.newCategory("Food", "EXPENSE")
	income := s.newCategory("Pay", "INCOME")
	missing := uuid.New()

	tests := []struct {
		name string
		in   txsvc.CreateInput
		want error
	}{
		{"zero amount", txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 0}, domain.ErrInvalidAmount},
		{"negative amount", txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: -3}, domain.ErrInvalidAmount},
		{"rounds to zero", txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 0.004}, domain.ErrInvalidAmount},
		{"bad type", txsvc.CreateInput{Type: "REFUND", AccountID: a, Amount: 1}, txdomain.ErrInvalidType},
		{"unknown source", txsvc.CreateInput{Type: "EXPENSE", AccountID: missing, Amount: 1}, domain.ErrAccountNotFound},
		{"transfer without target", txsvc.CreateInput{Type: "TRANSFER", AccountID: a, Amount: 1}, domain.ErrTransferTargetRequired},
		{"transfer to self", txsvc.CreateInput{Type: "TRANSFER", AccountID: a, ToAccountID: &a, Amount: 1}, domain.ErrTransferSameAccount},
		{"transfer to unknown", txsvc.CreateInput{Type: "TRANSFER", AccountID: a, ToAccountID: &missing, Amount: 1}, domain.ErrAccountNotFound},
		{"category mismatch", txsvc.CreateInput{Type: "EXPENSE", AccountID: a, CategoryID: &income, Amount: 1}, domain.ErrCategoryTypeMismatch},
		{"category on transfer", txsvc.CreateInput{Type: "TRANSFER", AccountID: a, ToAccountID: &b, CategoryID: &expense, Amount: 1}, domain.ErrTransferCategoryNotAllowed},
		{"unknown category", txsvc.CreateInput{Type: "EXPENSE", AccountID: a, CategoryID: &missing, Amount: 1}, domain.ErrCategoryNotFound},
		{"too many tags", txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 1, Tags: make([]string, 11)}, txdomain.ErrInvalidTags},
		{"bad attachment", txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 1, Attachments: []string{"not a url"}}, txdomain.ErrInvalidAttachments},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.ledger.Create(s.ctx, s.userID, tt.in)
			s.ErrorIs(err, tt.want)
			s.Equal(int64(0), s.balance(a))
			s.Equal(int64(0), s.balance(b))
		})
	}
}

func (s *LedgerTestSuite) TestUpdate_ExpenseToIncomeShiftsByTwiceAmount() {
	a := s.newAccount("A", 0)
	tx := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 100})
	before := s.balance(a)

	updated, err := s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{Type: ptr("INCOME")})
	s.Require().NoError(err)
	s.Equal("INCOME", updated.Type)
	s.Equal(before+20000, s.balance(a))
}

func (s *LedgerTestSuite) TestUpdate_ExpenseToTransfer() {
	a := s.newAccount("A", 500)
	b := s.newAccount("B", 0)
	food := s.newCategory("Food", "EXPENSE")
	tx := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, CategoryID: &food, Amount: 100})
	s.Equal(int64(40000), s.balance(a))

	updated, err := s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{
		Type:        ptr("TRANSFER"),
		ToAccountID: &b,
		Amount:      ptr(50.0),
	})
	s.Require().NoError(err)
	s.Equal(int64(45000), s.balance(a))
	s.Equal(int64(5000), s.balance(b))
	s.Nil(updated.CategoryID, "transfer drops the existing category")

	updated, err = s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{Type: ptr("EXPENSE")})
	s.Require().NoError(err)
	s.Nil(updated.ToAccountID, "destination is cleared for non-transfers")
	s.Equal(int64(45000), s.balance(a))
	s.Equal(int64(0), s.balance(b))
}

func (s *LedgerTestSuite) TestUpdate_SwapsAccounts() {
	a := s.newAccount("A", 0)
	b := s.newAccount("B", 0)
	tx := s.create(txsvc.CreateInput{Type: "INCOME", AccountID: a, Amount: 30})

	_, err := s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{AccountID: &b, Amount: ptr(40.0)})
	s.Require().NoError(err)
	s.Equal(int64(0), s.balance(a))
	s.Equal(int64(4000), s.balance(b))
}

func (s *LedgerTestSuite) TestUpdate_CategoryRules() {
	a := s.newAccount("A", 0)
	food := s.newCategory("Food", "EXPENSE")
	pay := s.newCategory("Pay", "INCOME")
	tx := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, CategoryID: &food, Amount: 10, Tags: []string{"x"}})

	_, err := s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{Type: ptr("INCOME")})
	s.ErrorIs(err, domain.ErrCategoryTypeMismatch, "existing category is re-validated against the new type")
	s.Equal(int64(-1000), s.balance(a), "failed update leaves balances untouched")

	updated, err := s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{
		Type:       ptr("INCOME"),
		CategoryID: dto.Some(pay),
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.Category)
	s.Equal("Pay", updated.Category.Name)
	s.Equal([]string{"x"}, updated.Tags, "omitted tags keep their value")

	updated, err = s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{
		CategoryID: dto.Null[uuid.UUID](),
		Tags:       []string{},
	})
	s.Require().NoError(err)
	s.Nil(updated.CategoryID)
	s.Empty(updated.Tags, "provided tags replace the stored list")
}

func (s *LedgerTestSuite) TestUpdate_Errors() {
	a := s.newAccount("A", 0)
	tx := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 10})

	_, err := s.ledger.Update(s.ctx, s.userID, uuid.New(), txsvc.UpdateInput{})
	s.ErrorIs(err, domain.ErrTransactionNotFound)

	_, err = s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{Type: ptr("TRANSFER")})
	s.ErrorIs(err, domain.ErrTransferTargetRequired)

	_, err = s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{Type: ptr("TRANSFER"), ToAccountID: &a})
	s.ErrorIs(err, domain.ErrTransferSameAccount)

	_, err = s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{Amount: ptr(0.0)})
	s.ErrorIs(err, domain.ErrInvalidAmount)

	s.Equal(int64(-1000), s.balance(a))
}

func (s *LedgerTestSuite) TestDelete_RestoresBalances() {
	a := s.newAccount("A", 1000)
	b := s.newAccount("B", 0)
	tx := s.create(txsvc.CreateInput{Type: "TRANSFER", AccountID: a, ToAccountID: &b, Amount: 200})

	s.Require().NoError(s.ledger.Delete(s.ctx, s.userID, tx.ID))
	s.Equal(int64(100000), s.balance(a))
	s.Equal(int64(0), s.balance(b))

	_, err := s.ledger.Get(s.ctx, s.userID, tx.ID)
	s.ErrorIs(err, domain.ErrTransactionNotFound)
	s.ErrorIs(s.ledger.Delete(s.ctx, s.userID, tx.ID), domain.ErrTransactionNotFound)
}

func (s *LedgerTestSuite) TestOwnership() {
	a := s.newAccount("A", 0)
	tx := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 1})
	stranger := uuid.New()

	_, err := s.ledger.Get(s.ctx, stranger, tx.ID)
	s.ErrorIs(err, domain.ErrTransactionNotFound)
	_, err = s.ledger.Create(s.ctx, stranger, txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 1})
	s.ErrorIs(err, domain.ErrAccountNotFound)
	s.ErrorIs(s.ledger.Delete(s.ctx, stranger, tx.ID), domain.ErrTransactionNotFound)
}

func (s *LedgerTestSuite) TestArchivedAccounts() {
	a := s.newAccount("A", 0)
	b := s.newAccount("B", 0)
	tx := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 10})
	_, err := s.accounts.Archive(s.ctx, s.userID, a)
	s.Require().NoError(err)

	_, err = s.ledger.Create(s.ctx, s.userID, txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 1})
	s.ErrorIs(err, domain.ErrAccountArchived)
	_, err = s.ledger.Create(s.ctx, s.userID, txsvc.CreateInput{Type: "TRANSFER", AccountID: b, ToAccountID: &a, Amount: 1})
	s.ErrorIs(err, domain.ErrAccountArchived)

	_, err = s.ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{Amount: ptr(20.0)})
	s.NoError(err, "history on an archived account stays editable")
	s.Equal(int64(-2000), s.balance(a))

	other := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: b, Amount: 1})
	_, err = s.ledger.Update(s.ctx, s.userID, other.ID, txsvc.UpdateInput{AccountID: &a})
	s.ErrorIs(err, domain.ErrAccountArchived)

	s.NoError(s.ledger.Delete(s.ctx, s.userID, tx.ID))
	s.Equal(int64(0), s.balance(a))

	s.cfg.AllowArchivedTargets = true
	_, err = s.ledger.Create(s.ctx, s.userID, txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 1})
	s.NoError(err)
}

func (s *LedgerTestSuite) TestList_Pagination() {
	a := s.newAccount("A", 0)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: float64(i + 1), OccurredAt: base.Add(time.Duration(i) * time.Hour)})
	}

	page, err := s.ledger.List(s.ctx, s.userID, txsvc.ListQuery{Page: 2, PageSize: 1})
	s.Require().NoError(err)
	s.Len(page.Items, 1)
	s.Equal(int64(3), page.TotalItems)
	s.Equal(3, page.TotalPages)
	s.Equal(int64(200), page.Items[0].AmountCents, "newest first by default")

	empty, err := s.ledger.List(s.ctx, uuid.New(), txsvc.ListQuery{})
	s.Require().NoError(err)
	s.Equal(0, empty.TotalPages)
	s.Empty(empty.Items)
	s.Equal(s.cfg.DefaultPageSize, empty.PageSize)
}

func (s *LedgerTestSuite) TestList_FiltersAndSort() {
	a := s.newAccount("A", 0)
	b := s.newAccount("B", 0)
	food := s.newCategory("Food", "EXPENSE")
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, CategoryID: &food, Amount: 30, OccurredAt: jan, Description: "Coffee beans"})
	s.create(txsvc.CreateInput{Type: "INCOME", AccountID: a, Amount: 10, OccurredAt: feb, Description: "refund 100%"})
	s.create(txsvc.CreateInput{Type: "TRANSFER", AccountID: b, ToAccountID: &a, Amount: 20, OccurredAt: feb})

	list := func(q txsvc.ListQuery) []*dto.TransactionRead {
		page, err := s.ledger.List(s.ctx, s.userID, q)
		s.Require().NoError(err)
		return page.Items
	}

	s.Len(list(txsvc.ListQuery{Type: "expense"}), 1)
	s.Len(list(txsvc.ListQuery{AccountID: &b}), 1)
	s.Len(list(txsvc.ListQuery{AccountID: &a}), 3, "account filter matches either side of a transfer")
	s.Len(list(txsvc.ListQuery{CategoryID: &food}), 1)
	s.Len(list(txsvc.ListQuery{From: &feb}), 2)
	s.Len(list(txsvc.ListQuery{To: &jan}), 1)
	s.Len(list(txsvc.ListQuery{Keyword: "coffee"}), 1)
	s.Len(list(txsvc.ListQuery{Keyword: "%"}), 1, "LIKE wildcards are literal")

	items := list(txsvc.ListQuery{SortBy: dto.SortByAmount, Ascending: true})
	s.Require().Len(items, 3)
	s.Equal([]int64{1000, 2000, 3000}, []int64{items[0].AmountCents, items[1].AmountCents, items[2].AmountCents})

	_, err := s.ledger.List(s.ctx, s.userID, txsvc.ListQuery{SortBy: "name"})
	s.Equal(domain.KindValidation, domain.KindOf(err))
	_, err = s.ledger.List(s.ctx, s.userID, txsvc.ListQuery{Type: "gift"})
	s.ErrorIs(err, txdomain.ErrInvalidType)
}

// failingUoW makes every transaction row update fail after the old effect
// has been reverted inside the unit of work.
type failingUoW struct {
	repository.UnitOfWork
}

func (f failingUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return f.UnitOfWork.Do(ctx, func(inner repository.UnitOfWork) error {
		return fn(failingUoW{inner})
	})
}

func (f failingUoW) TransactionRepository() (txrepo.Repository, error) {
	repo, err := f.UnitOfWork.TransactionRepository()
	return failingTxRepo{repo}, err
}

type failingTxRepo struct {
	txrepo.Repository
}

func (failingTxRepo) Update(context.Context, uuid.UUID, uuid.UUID, dto.TransactionUpdate) error {
	return errors.New("disk full")
}

func (s *LedgerTestSuite) TestUpdate_StoreFailureRollsBack() {
	a := s.newAccount("A", 0)
	tx := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 10})

	broken := txsvc.New(failingUoW{s.uow}, s.cfg, slog.Default())
	_, err := broken.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{Amount: ptr(99.0)})
	s.Require().Error(err)

	s.Equal(int64(-1000), s.balance(a), "reverted effect must not survive the rollback")
	got, err := s.ledger.Get(s.ctx, s.userID, tx.ID)
	s.Require().NoError(err)
	s.Equal(int64(1000), got.AmountCents)
}

// lockingUoW records which reads of a stored transaction took a row lock.
type lockingUoW struct {
	repository.UnitOfWork
	locked *[]uuid.UUID
}

func (l lockingUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return l.UnitOfWork.Do(ctx, func(inner repository.UnitOfWork) error {
		return fn(lockingUoW{inner, l.locked})
	})
}

func (l lockingUoW) TransactionRepository() (txrepo.Repository, error) {
	repo, err := l.UnitOfWork.TransactionRepository()
	return lockingTxRepo{repo, l.locked}, err
}

type lockingTxRepo struct {
	txrepo.Repository
	locked *[]uuid.UUID
}

func (l lockingTxRepo) GetForUpdate(ctx context.Context, id, userID uuid.UUID) (*dto.TransactionRead, error) {
	*l.locked = append(*l.locked, id)
	return l.Repository.GetForUpdate(ctx, id, userID)
}

func (s *LedgerTestSuite) TestUpdateAndDelete_LockStoredRow() {
	a := s.newAccount("A", 0)
	tx := s.create(txsvc.CreateInput{Type: "EXPENSE", AccountID: a, Amount: 10})

	var locked []uuid.UUID
	ledger := txsvc.New(lockingUoW{s.uow, &locked}, s.cfg, slog.Default())

	_, err := ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{Amount: ptr(25.0)})
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{tx.ID}, locked, "update reverts the effect read under a row lock")

	s.Require().NoError(ledger.Delete(s.ctx, s.userID, tx.ID))
	s.Equal([]uuid.UUID{tx.ID, tx.ID}, locked, "delete reverts the effect read under a row lock")
	s.Equal(int64(0), s.balance(a))

	_, err = ledger.Update(s.ctx, s.userID, tx.ID, txsvc.UpdateInput{Amount: ptr(1.0)})
	s.ErrorIs(err, domain.ErrTransactionNotFound)
}

func (s *LedgerTestSuite) TestRandomSequenceKeepsBalancesConsistent() {
	accounts := []uuid.UUID{s.newAccount("A", 100), s.newAccount("B", 0), s.newAccount("C", -50)}
	types := []string{"EXPENSE", "INCOME", "TRANSFER"}
	rng := rand.New(rand.NewSource(42))
	var live []uuid.UUID

	randomInput := func() (string, uuid.UUID, *uuid.UUID, float64) {
		typ := types[rng.Intn(len(types))]
		src := accounts[rng.Intn(len(accounts))]
		var dst *uuid.UUID
		if typ == "TRANSFER" {
			d := accounts[(indexOf(accounts, src)+1+rng.Intn(len(accounts)-1))%len(accounts)]
			dst = &d
		}
		return typ, src, dst, float64(rng.Intn(100000)+1) / 100
	}

	for i := 0; i < 200; i++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(live) == 0:
			typ, src, dst, amount := randomInput()
			tx := s.create(txsvc.CreateInput{Type: typ, AccountID: src, ToAccountID: dst, Amount: amount})
			live = append(live, tx.ID)
		case op == 1:
			typ, src, dst, amount := randomInput()
			id := live[rng.Intn(len(live))]
			_, err := s.ledger.Update(s.ctx, s.userID, id, txsvc.UpdateInput{
				Type: &typ, AccountID: &src, ToAccountID: dst, Amount: &amount,
			})
			s.Require().NoError(err)
		default:
			idx := rng.Intn(len(live))
			s.Require().NoError(s.ledger.Delete(s.ctx, s.userID, live[idx]))
			live = append(live[:idx], live[idx+1:]...)
		}
	}

	expected := map[uuid.UUID]int64{accounts[0]: 10000, accounts[1]: 0, accounts[2]: -5000}
	for _, id := range live {
		tx, err := s.ledger.Get(s.ctx, s.userID, id)
		s.Require().NoError(err)
		for _, e := range txdomain.EffectOf(txdomain.Type(tx.Type), tx.AmountCents, tx.AccountID, tx.ToAccountID) {
			expected[e.AccountID] += e.Delta
		}
	}
	for _, id := range accounts {
		s.Equal(expected[id], s.balance(id))
		audit, err := s.accounts.Audit(s.ctx, s.userID, id)
		s.Require().NoError(err)
		s.True(audit.Consistent(), "drift %d on %s", audit.DriftCents, id)
	}
}

func indexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
