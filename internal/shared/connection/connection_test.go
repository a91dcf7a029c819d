package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresOptions_DSN(t *testing.T) {
	opts := PostgresOptions{
		Host:     "db",
		User:     "presence",
		Password: "secret",
		Name:     "presence",
		Port:     "5432",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db user=presence password=secret dbname=presence port=5432 sslmode=disable",
		opts.DSN(),
	)
}

func TestNewKafkaReader(t *testing.T) {
	r := NewKafkaReader("localhost:9092", "presence.attendance.clocked.v1", "presence-audit")
	defer r.Close()

	cfg := r.Config()
	assert.Equal(t, "presence.attendance.clocked.v1", cfg.Topic)
	assert.Equal(t, "presence-audit", cfg.GroupID)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
}
