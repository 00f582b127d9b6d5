//go:build integration

package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/amirasaad/fintrack/infra"
	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	pkgtestutils "github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/amirasaad/fintrack/webapi"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// E2ETestSuite runs the HTTP app against a real Postgres started with
// Testcontainers and migrated with the embedded SQL migrations.
type E2ETestSuite struct {
	suite.Suite
	pgContainer *tcpostgres.PostgresContainer
	App         *TestApp
}

// startPostgresContainer starts a Postgres container using Testcontainers
func (s *E2ETestSuite) startPostgresContainer(ctx context.Context) (*tcpostgres.PostgresContainer, error) {
	return tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
}

func (s *E2ETestSuite) SetupSuite() {
	ctx := context.Background()
	container, err := s.startPostgresContainer(ctx)
	s.Require().NoError(err)
	s.pgContainer = container

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	cfg := pkgtestutils.NewTestConfig()
	cfg.DB = &config.DB{Url: url, MaxOpenConns: 5, MaxIdleConns: 5, ConnMaxLifetime: time.Hour}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	s.Require().NoError(err)
	s.Require().NoError(infra.Migrate(db))

	a := app.New(&app.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, cfg)
	s.App = &TestApp{Fiber: webapi.SetupApp(a), App: a, DB: db, Config: cfg}
}

func (s *E2ETestSuite) TearDownSuite() {
	if s.App != nil {
		_ = infra.Close(s.App.DB)
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}

// Request sends a request to the suite's app.
func (s *E2ETestSuite) Request(method, path string, body any, token string) *http.Response {
	return s.App.Request(s.T(), method, path, body, token)
}
