//go:build integration

// Package tests provides integration test helpers and utilities.
package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/KJithathma/tmf670-payment-method-api/internal/api/handlers"
	"github.com/KJithathma/tmf670-payment-method-api/internal/repository"
	"github.com/KJithathma/tmf670-payment-method-api/internal/service"
	"github.com/KJithathma/tmf670-payment-method-api/pkg/database"
)

const (
	pgImage  = "postgres:17-alpine"
	basePath = "/tmf-api/paymentMethod/v4"
)

// TestEnv bundles everything an integration test needs: a real HTTP server
// over a containerized database, plus direct access to the pool and the
// event pipeline for drain control.
type TestEnv struct {
	Server    *httptest.Server
	Pool      *pgxpool.Pool
	Publisher *service.EventPublisherManager
}

// BaseURL returns the payment method API mount point.
func (e *TestEnv) BaseURL() string {
	return e.Server.URL + basePath
}

// StartTestEnv starts a postgres container with the schema applied and a full
// HTTP server wired the same way as cmd/api, with outbound event delivery on.
func StartTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	ctx := context.Background()

	pgC, err := postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase("payment_methods_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts("../db/schema.sql"),
		tc.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp").WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgC.Terminate(context.Background()))
	})

	dbURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPostgresPool(ctx, dbURL)
	require.NoError(t, err)

	t.Cleanup(pool.Close)

	paymentMethodsRepo := repository.NewPaymentMethodsRepository(pool)
	listenersRepo := repository.NewListenersRepository(pool)
	usersRepo := repository.NewUsersRepository(pool)

	publisher := service.NewEventPublisherManager(100, nil)
	sender := service.NewHTTPEventSender(2*time.Second, 0, nil)
	notifier := service.NewListenerNotifier(listenersRepo, sender, nil)
	publisher.RegisterProvider(notifier)

	paymentMethodsHandler := handlers.NewPaymentMethodsHandler(
		service.NewPaymentMethodsService(paymentMethodsRepo, publisher, basePath))
	hubHandler := handlers.NewHubHandler(service.NewListenersService(listenersRepo))
	usersHandler := handlers.NewUsersHandler(service.NewUsersService(usersRepo))
	healthHandler := handlers.NewHealthHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+basePath+"/paymentMethod", paymentMethodsHandler.Create)
	mux.HandleFunc("GET "+basePath+"/paymentMethod", paymentMethodsHandler.List)
	mux.HandleFunc("GET "+basePath+"/paymentMethod/{id}", paymentMethodsHandler.Get)
	mux.HandleFunc("PATCH "+basePath+"/paymentMethod/{id}", paymentMethodsHandler.Update)
	mux.HandleFunc("DELETE "+basePath+"/paymentMethod/{id}", paymentMethodsHandler.Delete)
	mux.HandleFunc("POST "+basePath+"/hub", hubHandler.Register)
	mux.HandleFunc("DELETE "+basePath+"/hub/{id}", hubHandler.Deregister)
	mux.HandleFunc("POST /users", usersHandler.Create)
	mux.HandleFunc("GET /users", usersHandler.List)
	mux.HandleFunc("GET /{$}", healthHandler.Root)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &TestEnv{Server: srv, Pool: pool, Publisher: publisher}
}

// TruncateAll clears all tables between test cases.
func (e *TestEnv) TruncateAll(t *testing.T) {
	t.Helper()

	_, err := e.Pool.Exec(context.Background(),
		"TRUNCATE payment_methods, listeners, users")
	require.NoError(t, err)
}
