//go:build integration_pg || integration_redis

package testkit

import (
	"context"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// first image pulls are slow on cold runners
const startTimeout = 3 * time.Minute

// Run starts req, terminates it on cleanup and returns host:port of its first exposed port
func Run(t *testing.T, req tc.ContainerRequest) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	addr, err := c.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("%s endpoint: %v", req.Image, err)
	}
	return addr
}

// Postgres starts postgres 16 and returns a DSN for db
func Postgres(t *testing.T, db string) string {
	t.Helper()
	addr := Run(t, tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	})
	return "postgres://postgres:postgres@" + addr + "/" + db + "?sslmode=disable"
}

// Redis starts redis 7 and returns a URL for database 0
func Redis(t *testing.T) string {
	t.Helper()
	addr := Run(t, tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(2 * time.Minute),
	})
	return "redis://" + addr + "/0"
}
