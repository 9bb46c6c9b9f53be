package database

import (
	"testing"

	"ai-calling-agent/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host: "db", Port: "5432", User: "agent", Password: "secret", Name: "calls", SSLMode: "disable",
	})

	assert.Equal(t, "host=db user=agent password=secret dbname=calls port=5432 sslmode=disable TimeZone=UTC", dsn)
}

func TestMigrationURL(t *testing.T) {
	u := MigrationURL(config.DBConfig{
		Host: "db", Port: "5432", User: "agent", Password: "p@ss", Name: "calls", SSLMode: "require",
	})

	assert.Equal(t, "pgx5://agent:p%40ss@db:5432/calls?sslmode=require", u)
}

func TestMigrationFilesEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestNewSQLiteConnection(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	db, err := NewSQLiteConnection(":memory:", log)
	require.NoError(t, err)

	for _, table := range []string{"companies", "doctors", "vacancies", "orders", "appointments", "feedback", "users", "conversation_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
