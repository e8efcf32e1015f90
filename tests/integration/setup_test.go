//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Pesokrava/autospares/internal/pkg/database"
	"github.com/Pesokrava/autospares/migrations"
)

func startContainer(t *testing.T, req testcontainers.ContainerRequest) (testcontainers.Container, string) {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start %s", req.Image)
	t.Cleanup(func() {
		if err := c.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)
	return c, host
}

// setupTestDB starts Postgres and applies the embedded migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	c, host := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	})

	port, err := c.MappedPort(context.Background(), "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.RunMigrations(context.Background(), db, migrations.FS))
	return db
}

// setupTestRedis starts Redis for the session store and read cache
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	c, host := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	})

	port, err := c.MappedPort(context.Background(), "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

// recordingPublisher stands in for JetStream and keeps every published payload
type recordingPublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{messages: make(map[string][][]byte)}
}

func (p *recordingPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[subject] = append(p.messages[subject], data)
	return nil
}

func (p *recordingPublisher) count(subject string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages[subject])
}
