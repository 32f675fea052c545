package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

func newMemServer(t *testing.T) *httpserver.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	config := configpkg.Config{
		DBDriver:        configpkg.DriverMemory,
		TransferTimeout: time.Second,
	}

	server, err := httpserver.New(nil, zerolog.Nop(), config)
	require.NoError(t, err)

	return server
}

func do(t *testing.T, server http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func openAccount(t *testing.T, server http.Handler, number, balance string) {
	t.Helper()

	recorder := do(t, server, http.MethodPost, "/accounts", gin.H{
		"number":  number,
		"owner":   "owner " + number,
		"balance": balance,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
}

func balanceOf(t *testing.T, server http.Handler, number string) decimal.Decimal {
	t.Helper()

	recorder := do(t, server, http.MethodGet, "/accounts/"+number, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data struct {
			Account domain.Account `json:"account"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

	return res.Data.Account.Balance
}

func history(t *testing.T, server http.Handler) []domain.Transfer {
	t.Helper()

	recorder := do(t, server, http.MethodGet, "/transfers", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data struct {
			Transfers []domain.Transfer `json:"transfers"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

	return res.Data.Transfers
}

func transfer(from, to, amount string) gin.H {
	return gin.H{
		"from_account_number": from,
		"to_account_number":   to,
		"amount":              amount,
	}
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := httpserver.New(nil, zerolog.Nop(), configpkg.Config{DBDriver: "sqlite"})
	require.Error(t, err)

	_, err = httpserver.New(nil, zerolog.Nop(), configpkg.Config{DBDriver: configpkg.DriverPostgres})
	require.Error(t, err)
}

func TestLedgerFlow(t *testing.T) {
	server := newMemServer(t)

	openAccount(t, server, "ACC001", "1000.00")
	openAccount(t, server, "ACC002", "500.00")
	openAccount(t, server, "ACC003", "50.00")

	recorder := do(t, server, http.MethodPost, "/accounts", gin.H{
		"number": "ACC001", "owner": "someone else", "balance": "1.00",
	})
	require.Equal(t, http.StatusConflict, recorder.Code)

	recorder = do(t, server, http.MethodPost, "/transfers", transfer("ACC001", "ACC002", "200.00"))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = do(t, server, http.MethodPost, "/transfers", transfer("ACC003", "ACC001", "100.00"))
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	recorder = do(t, server, http.MethodPost, "/transfers", transfer("ACC001", "ACC999", "10.00"))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = do(t, server, http.MethodPost, "/transfers", transfer("ACC001", "ACC002", "-5.00"))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(t, server, http.MethodPost, "/transfers", transfer("ACC001", "ACC001", "5.00"))
	require.Equal(t, http.StatusOK, recorder.Code)

	require.True(t, balanceOf(t, server, "ACC001").Equal(decimal.RequireFromString("800")))
	require.True(t, balanceOf(t, server, "ACC002").Equal(decimal.RequireFromString("700")))
	require.True(t, balanceOf(t, server, "ACC003").Equal(decimal.RequireFromString("50")))

	recorder = do(t, server, http.MethodGet, "/accounts/ACC999", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	got := history(t, server)
	require.Len(t, got, 4)
	require.Equal(t, domain.StatusSuccess, got[0].Status)
	require.Equal(t, domain.StatusFailedAccountNotFound, got[1].Status)
	require.Equal(t, domain.StatusFailedInsufficientFunds, got[2].Status)
	require.Equal(t, domain.StatusSuccess, got[3].Status)

	recorder = do(t, server, http.MethodGet, "/accounts", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var list struct {
		Data struct {
			Accounts []domain.Account `json:"accounts"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&list))
	require.Len(t, list.Data.Accounts, 3)
	require.Equal(t, "ACC001", list.Data.Accounts[0].Number)

	recorder = do(t, server, http.MethodGet, fmt.Sprintf("/accounts/id/%d", list.Data.Accounts[1].ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"number":"ACC002"`)

	recorder = do(t, server, http.MethodGet, fmt.Sprintf("/transfers/%d", got[3].ID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"status":"SUCCESS"`)

	recorder = do(t, server, http.MethodGet, "/transfers/999", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestConcurrentTransfersOverHTTP(t *testing.T) {
	server := newMemServer(t)

	openAccount(t, server, "ACC001", "1000.00")
	openAccount(t, server, "ACC002", "1000.00")

	const n = 20

	var wg sync.WaitGroup
	codes := make(chan int, 2*n)

	for i := 0; i < n; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			codes <- do(t, server, http.MethodPost, "/transfers", transfer("ACC001", "ACC002", "7.25")).Code
		}()

		go func() {
			defer wg.Done()
			codes <- do(t, server, http.MethodPost, "/transfers", transfer("ACC002", "ACC001", "3.25")).Code
		}()
	}

	wg.Wait()
	close(codes)

	for code := range codes {
		require.Equal(t, http.StatusOK, code)
	}

	from := balanceOf(t, server, "ACC001")
	to := balanceOf(t, server, "ACC002")

	require.True(t, from.Equal(decimal.RequireFromString("920")), from.String())
	require.True(t, to.Equal(decimal.RequireFromString("1080")), to.String())
	require.Len(t, history(t, server), 2*n)
}
