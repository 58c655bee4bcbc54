package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"geotrivia-service/internal/app"
	"geotrivia-service/internal/catalog"
	"geotrivia-service/internal/domain"
	pgloader "geotrivia-service/internal/infra/postgres"
	pgmigrations "geotrivia-service/internal/infra/postgres/migrations"
	infraredis "geotrivia-service/internal/infra/redis"
)

func TestPlayGroupEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedGroups(t, ctx, pgURL, catalog.BuiltinGroups())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewGroupLoader(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	groupRepo := infraredis.NewGroupRepository(redisClient, loader, 5*time.Minute)
	sessionStore := infraredis.NewSessionStore(redisClient, time.Hour)
	service := app.NewGameService(sessionStore, groupRepo)

	info, err := service.StartNew(ctx, "player@example.com", "coastal-sprint")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	state := info.State

	for state.Status == domain.StatusInProgress {
		question, err := service.CurrentQuestion(ctx, state)
		if err != nil {
			t.Fatalf("current question: %v", err)
		}
		result, err := service.SubmitAnswer(ctx, state, answerFor(t, question))
		if err != nil {
			t.Fatalf("submit q%d: %v", question.ID, err)
		}
		if !result.Correct {
			t.Fatalf("expected q%d accepted", question.ID)
		}
	}

	if state.Status != domain.StatusCompleted {
		t.Fatalf("expected completed run, got %s", state.Status)
	}

	// The persisted record reflects the final state; the active pointer is gone.
	stored, err := sessionStore.LoadState(ctx, state.SessionID)
	if err != nil {
		t.Fatalf("load stored state: %v", err)
	}
	if stored.Status != domain.StatusCompleted || !stored.HasCompleted("coastal-sprint") {
		t.Fatalf("stored state not finalized: %+v", stored)
	}
	if _, err := sessionStore.ActiveSession(ctx, "player@example.com"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected active pointer cleared, got %v", err)
	}
}

func answerFor(t *testing.T, q domain.Question) string {
	t.Helper()
	switch q.Validator {
	case domain.ValidatorStarFlag:
		return "ghana"
	case domain.ValidatorMostPopulousCity:
		return "accra"
	case domain.ValidatorUnscrambledCity:
		if q.DynamicData == nil {
			t.Fatalf("question %d missing dynamic city", q.ID)
		}
		return q.DynamicData.City
	default:
		t.Fatalf("unexpected validator %s in coastal-sprint", q.Validator)
		return ""
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "trivia", "POSTGRES_PASSWORD": "triviapass", "POSTGRES_DB": "triviadb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://trivia:triviapass@%s:%s/triviadb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedGroups(t *testing.T, ctx context.Context, dsn string, groups []domain.QuestionGroup) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for position, group := range groups {
		data, err := json.Marshal(group)
		if err != nil {
			t.Fatalf("marshal group: %v", err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO question_groups (id, position, data) VALUES (?, ?, ?::jsonb)
			 ON CONFLICT (id) DO UPDATE SET position=EXCLUDED.position, data=EXCLUDED.data`,
			group.ID, position, string(data)); err != nil {
			t.Fatalf("insert group: %v", err)
		}
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
