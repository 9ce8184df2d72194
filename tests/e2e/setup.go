//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"table-booking/cmd/bootstrap"
	"table-booking/cmd/bootstrap/components"
	"table-booking/internal/infra/cache"
	"table-booking/internal/infra/db"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase/shared"
	"table-booking/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	dbUser     = "booking"
	dbPassword = "booking"
	dbName     = "table_booking_e2e"

	// the concurrent booking test opens one connection per caller
	poolSize = 20
)

var (
	containerOnce sync.Once
	container     testcontainers.Container
	containerErr  error

	// 予約ウィンドウの起点。builder.ServiceDay (2026-03-02 月曜) の前日
	testNow = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
)

// ------------------------------------------------------------
// Postgres コンテナ (プロセス内で一度だけ起動)
// ------------------------------------------------------------
func postgresConfig(t *testing.T) config.DBConfig {
	t.Helper()

	containerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		container, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     dbUser,
					"POSTGRES_PASSWORD": dbPassword,
					"POSTGRES_DB":       dbName,
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
				// tsrange の境界は UTC の壁時計で比較する
				Cmd: []string{
					"postgres",
					"-c", "timezone=UTC",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "full_page_writes=off",
					"-c", "max_connections=100",
				},
				WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, host, port.Port(), dbName)
				}).WithStartupTimeout(90 * time.Second),
				Labels: map[string]string{"purpose": "table-booking-e2e"},
			},
			Started: true,
		})
		if containerErr != nil {
			return
		}
		// ryuk が無効な環境でも片付ける
		t.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := container.Terminate(ctx); err != nil {
				slog.Warn("Postgresコンテナの終了に失敗しました", "error", err.Error())
			}
		})
	})
	require.NoError(t, containerErr, "Postgresコンテナの起動に失敗")

	ctx := context.Background()
	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: poolSize,
	}
}

// ------------------------------------------------------------
// スキーマ: migrations/*.sql をファイル名順に適用
// ------------------------------------------------------------
func migrate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(repoRoot(t), "migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "migrations/*.sql が見つかりません")
	sort.Strings(files)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 二重予約防止は制約に依存するので、既に適用済みなら何もしない
	if hasOverlapConstraint(ctx, t, pool) {
		return
	}
	for _, file := range files {
		sql, err := os.ReadFile(file)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, "マイグレーション %s の実行に失敗", filepath.Base(file))
	}
	require.True(t, hasOverlapConstraint(ctx, t, pool), "bookings_no_overlap 制約がありません")
}

func hasOverlapConstraint(ctx context.Context, t *testing.T, pool *pgxpool.Pool) bool {
	var exists bool
	err := pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap')").Scan(&exists)
	require.NoError(t, err)
	return exists
}

// go test runs in the package directory; walk up to the module root.
func repoRoot(t *testing.T) string {
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "go.mod が見つかりません")
		dir = parent
	}
}

// ------------------------------------------------------------
// fx アプリ: 本番と同じモジュール構成に固定時計と Noop キャッシュ
// ------------------------------------------------------------
func startApp(t *testing.T, pool *pgxpool.Pool, dbConfig config.DBConfig) (*gin.Engine, config.Config) {
	t.Helper()

	var (
		router *gin.Engine
		cfg    config.Config
	)
	app := fx.New(
		fx.Supply(pool),
		fx.Provide(func() config.Config {
			c := config.NewTestConfig()
			c.DB = dbConfig
			return c
		}),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.MetricsModule,
		fx.Provide(func() shared.ScheduleCache { return cache.Noop{} }),
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Decorate(func(clock.Clock) clock.Clock { return clock.NewMockClock(testNow) }),
		fx.Populate(&router, &cfg),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})
	return router, cfg
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dbConfig := postgresConfig(t)
	pool, closePool, err := db.Connect(context.Background(), dbConfig)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(closePool)

	migrate(t, pool)
	s.DB = pool
	s.Router, s.Config = startApp(t, pool, dbConfig)
}

// 各サブテストは空の予約台帳とシード済みのテーブルから始める
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
}
