package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	adaptershttp "github.com/iho/finledger/internal/adapter/http"
	"github.com/iho/finledger/internal/adapter/http/handler"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/finledger/internal/adapter/repository/redis"
	infraredis "github.com/iho/finledger/internal/infrastructure/redis"
	"github.com/iho/finledger/internal/usecase"
	"github.com/iho/finledger/tests/testutil"
)

// newTestRouter wires the full HTTP stack against the test database,
// using header identity instead of JWT auth.
func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	instrumentRepo := postgres.NewInstrumentRepository(pool)
	installmentRepo := postgres.NewInstallmentRepository(pool)
	ledgerRepo := postgres.NewLedgerTransactionRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	cache := redisrepo.NewCache(redisClient)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	instrumentUC := usecase.NewInstrumentUseCase(txManager, instrumentRepo, installmentRepo, outboxRepo, cache, idGen, retrier)
	installmentUC := usecase.NewInstallmentUseCase(txManager, instrumentRepo, installmentRepo, outboxRepo, cache, retrier)
	ledgerUC := usecase.NewLedgerUseCase(txManager, ledgerRepo, outboxRepo, idGen, retrier)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		InstrumentHandler:  handler.NewInstrumentHandler(instrumentUC),
		InstallmentHandler: handler.NewInstallmentHandler(installmentUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		OptionsHandler:     handler.NewOptionsHandler(),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
	})
}

// doRequest performs an HTTP request against the router with the owner
// identity header set, optionally JSON-encoding a body.
func doRequest(t *testing.T, router http.Handler, method, path, ownerID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	if ownerID != "" {
		r.Header.Set(middleware.OwnerIDHeader, ownerID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
}
