package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redisRepo "github.com/iho/budgetledger/internal/adapter/repository/redis"
)

func TestIdempotencyMiddleware_WithRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	mw := NewIdempotencyMiddleware(redisRepo.NewIdempotencyStore(client), time.Hour)

	calls := 0
	status := http.StatusBadRequest
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
		w.Write([]byte(`{"id":"tx-9"}`))
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/expense", bytes.NewBufferString(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "retry-me")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	// a failed attempt frees the key
	if rr := send(); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	status = http.StatusCreated
	if rr := send(); rr.Code != http.StatusCreated {
		t.Fatalf("expected retry to run, got %d", rr.Code)
	}

	rr := send()
	if rr.Code != http.StatusCreated || rr.Header().Get(IdempotencyReplayHeader) != "true" {
		t.Fatalf("expected replayed 201, got %d (replay=%q)", rr.Code, rr.Header().Get(IdempotencyReplayHeader))
	}
	if rr.Body.String() != `{"id":"tx-9"}` {
		t.Fatalf("unexpected replay body %s", rr.Body.String())
	}

	if calls != 2 {
		t.Fatalf("expected handler to run twice, got %d", calls)
	}
}
