package localstore

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"ai-calling-agent/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMirror(t *testing.T) *Mirror {
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := NewMirror(t.TempDir(), "ai_calling_agent_", log)
	m.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return m
}

func TestMirror_SaveAssignsLocalID(t *testing.T) {
	m := newTestMirror(t)

	id, err := m.Save("appointments", &entity.Appointment{EntityID: "h1", Type: "doctor", Date: "2025-03-02", Time: "10:00"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, LocalIDPrefix))

	records, err := m.List("appointments")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0]["id"])
	assert.Equal(t, "h1", records[0]["entity_id"])
	assert.Equal(t, "2025-03-01T09:00:00Z", records[0]["mirrored_at"])
}

func TestMirror_KeepsExistingIDAndAppends(t *testing.T) {
	m := newTestMirror(t)

	_, err := m.Save("orders", &entity.Order{ID: "ORD-0000AA", CompanyID: "c1"})
	require.NoError(t, err)
	id, err := m.Save("orders", &entity.Order{ID: "ORD-0000BB", CompanyID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "ORD-0000BB", id)

	records, err := m.List("orders")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = os.Stat(m.Path("orders"))
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(m.Path("orders"), "ai_calling_agent_orders.json"))
}

func TestMirror_ListMissingFile(t *testing.T) {
	m := newTestMirror(t)

	records, err := m.List("feedback")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMirror_RejectsNonObject(t *testing.T) {
	m := newTestMirror(t)

	_, err := m.Save("feedback", []string{"a"})
	assert.Error(t, err)
}
