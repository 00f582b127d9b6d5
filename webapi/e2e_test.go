//go:build integration

package webapi_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type LedgerE2ESuite struct {
	testutils.E2ETestSuite
}

func (s *LedgerE2ESuite) register() testutils.Session {
	return s.App.Register(s.T(), fmt.Sprintf("e2e-%s@example.com", uuid.NewString()[:8]))
}

func (s *LedgerE2ESuite) firstAccount(token string) string {
	var accounts []struct {
		ID string `json:"id"`
	}
	testutils.Data(s.T(), s.Request(http.MethodGet, "/api/accounts", nil, token), &accounts)
	s.Require().NotEmpty(accounts)
	return accounts[0].ID
}

func (s *LedgerE2ESuite) balance(token, id string) string {
	var acc struct {
		Balance string `json:"balance"`
	}
	testutils.Data(s.T(), s.Request(http.MethodGet, "/api/accounts/"+id, nil, token), &acc)
	return acc.Balance
}

func (s *LedgerE2ESuite) TestTransferRoundTrip() {
	session := s.register()
	cash := s.firstAccount(session.AccessToken)

	var bank struct {
		ID string `json:"id"`
	}
	resp := s.Request(http.MethodPost, "/api/accounts",
		map[string]any{"name": "Bank", "type": "BANK", "initialBalance": 500}, session.AccessToken)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	testutils.Data(s.T(), resp, &bank)

	resp = s.Request(http.MethodPost, "/api/transactions",
		map[string]any{"type": "TRANSFER", "accountId": bank.ID, "toAccountId": cash, "amount": 123.45},
		session.AccessToken)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var tx struct {
		ID string `json:"id"`
	}
	testutils.Data(s.T(), resp, &tx)
	s.Equal("376.55", s.balance(session.AccessToken, bank.ID))
	s.Equal("123.45", s.balance(session.AccessToken, cash))

	resp = s.Request(http.MethodDelete, "/api/transactions/"+tx.ID, nil, session.AccessToken)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
	s.Equal("500.00", s.balance(session.AccessToken, bank.ID))
	s.Equal("0.00", s.balance(session.AccessToken, cash))
}

func (s *LedgerE2ESuite) TestConcurrentExpenses() {
	session := s.register()
	cash := s.firstAccount(session.AccessToken)

	const n = 20
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := s.Request(http.MethodPost, "/api/transactions",
				map[string]any{"type": "EXPENSE", "accountId": cash, "amount": 1.5}, session.AccessToken)
			codes[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()
	for _, code := range codes {
		s.Equal(fiber.StatusCreated, code)
	}
	s.Equal("-30.00", s.balance(session.AccessToken, cash))

	resp := s.Request(http.MethodGet, "/api/accounts/"+cash+"/audit", nil, session.AccessToken)
	var audit struct {
		Consistent bool `json:"consistent"`
	}
	testutils.Data(s.T(), resp, &audit)
	s.True(audit.Consistent)
}

func (s *LedgerE2ESuite) audit(token, id string) (drift string, consistent bool) {
	var audit struct {
		Drift      string `json:"drift"`
		Consistent bool   `json:"consistent"`
	}
	testutils.Data(s.T(), s.Request(http.MethodGet, "/api/accounts/"+id+"/audit", nil, token), &audit)
	return audit.Drift, audit.Consistent
}

func (s *LedgerE2ESuite) expense(token, account string, amount float64) string {
	resp := s.Request(http.MethodPost, "/api/transactions",
		map[string]any{"type": "EXPENSE", "accountId": account, "amount": amount}, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var tx struct {
		ID string `json:"id"`
	}
	testutils.Data(s.T(), resp, &tx)
	return tx.ID
}

func (s *LedgerE2ESuite) TestConcurrentUpdatesOfOneTransaction() {
	session := s.register()
	cash := s.firstAccount(session.AccessToken)
	id := s.expense(session.AccessToken, cash, 100)

	const n = 10
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			typ := "INCOME"
			if i%2 == 1 {
				typ = "EXPENSE"
			}
			resp := s.Request(http.MethodPatch, "/api/transactions/"+id,
				map[string]any{"type": typ, "amount": 10 * (i + 1)}, session.AccessToken)
			codes[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()
	for _, code := range codes {
		s.Equal(fiber.StatusOK, code)
	}

	var tx struct {
		Type   string `json:"type"`
		Amount string `json:"amount"`
	}
	testutils.Data(s.T(), s.Request(http.MethodGet, "/api/transactions/"+id, nil, session.AccessToken), &tx)
	want := tx.Amount
	if tx.Type == "EXPENSE" {
		want = "-" + tx.Amount
	}
	s.Equal(want, s.balance(session.AccessToken, cash), "balance reflects only the last stored version")

	drift, consistent := s.audit(session.AccessToken, cash)
	s.Equal("0.00", drift)
	s.True(consistent)
}

func (s *LedgerE2ESuite) TestConcurrentUpdateAndDelete() {
	session := s.register()
	cash := s.firstAccount(session.AccessToken)

	for round := 0; round < 5; round++ {
		id := s.expense(session.AccessToken, cash, 100)

		var wg sync.WaitGroup
		var patchCode, deleteCode int
		wg.Add(2)
		go func() {
			defer wg.Done()
			resp := s.Request(http.MethodPatch, "/api/transactions/"+id,
				map[string]any{"type": "INCOME", "amount": 50}, session.AccessToken)
			patchCode = resp.StatusCode
		}()
		go func() {
			defer wg.Done()
			resp := s.Request(http.MethodDelete, "/api/transactions/"+id, nil, session.AccessToken)
			deleteCode = resp.StatusCode
		}()
		wg.Wait()

		s.Contains([]int{fiber.StatusOK, fiber.StatusNotFound}, patchCode)
		s.Equal(fiber.StatusNoContent, deleteCode)
		s.Equal("0.00", s.balance(session.AccessToken, cash), "round %d", round)
	}

	drift, consistent := s.audit(session.AccessToken, cash)
	s.Equal("0.00", drift)
	s.True(consistent)
}

func (s *LedgerE2ESuite) TestDuplicateEmail() {
	email := fmt.Sprintf("dup-%s@example.com", uuid.NewString()[:8])
	s.App.Register(s.T(), email)
	resp := s.Request(http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": "password123", "name": "Again"}, "")
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	s.Equal("EMAIL_TAKEN", testutils.Problem(s.T(), resp).Code)
}

func TestLedgerE2E(t *testing.T) {
	suite.Run(t, new(LedgerE2ESuite))
}
