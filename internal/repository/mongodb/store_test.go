package mongodb

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"ai-calling-agent/config"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"
	"ai-calling-agent/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/datatypes"
)

// setupStore connects to MONGO_TEST_URI and gives every test its own database.
func setupStore(t *testing.T) *domainRepo.Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	name := "agent_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	client, err := database.NewMongoClient(ctx, config.MongoConfig{URI: uri, Database: name}, log)
	require.NoError(t, err)

	db := client.Database(name)
	require.NoError(t, EnsureIndexes(ctx, db))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return NewStore(db)
}

func TestEqualFold(t *testing.T) {
	re := equalFold("ORD-A1.B2")
	assert.Equal(t, primitive.Regex{Pattern: `^ORD-A1\.B2$`, Options: "i"}, re)
}

func TestOrderStore_FindByIDFoldAndDecimal(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	order := &entity.Order{ID: "ORD-00BEEF", CompanyID: "c1", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 3}
	require.NoError(t, store.Orders.Create(ctx, order))

	got, err := store.Orders.FindByIDFold(ctx, "ord-00beef")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("59.97").Equal(got.TotalPrice))

	err = store.Orders.Create(ctx, &entity.Order{ID: "ORD-00BEEF", CompanyID: "c2"})
	assert.ErrorIs(t, err, apperr.ErrDuplicate)
}

func TestAppointmentStore_ListOrderAndStatus(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	late := &entity.Appointment{EntityID: "h1", Type: "doctor", Date: "2025-03-01", Time: "15:00", UserInfo: datatypes.JSONMap{"notes": bson.M{"allergy": "none"}}}
	early := &entity.Appointment{EntityID: "h1", Type: "doctor", Date: "2025-03-01", Time: "10:00"}
	require.NoError(t, store.Appointments.Create(ctx, late))
	require.NoError(t, store.Appointments.Create(ctx, early))

	list, err := store.Appointments.List(ctx, entity.AppointmentFilter{EntityID: "h1"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)

	updated, err := store.Appointments.UpdateStatus(ctx, late.ID, entity.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCompleted, updated.Status)
	assert.IsType(t, bson.M{}, updated.UserInfo["notes"])

	_, err = store.Appointments.UpdateStatus(ctx, "missing", entity.AppointmentStatusCompleted)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserStore_UniqueEmail(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Users.Create(ctx, &entity.User{Email: "a@example.com", Password: "x"}))
	err := store.Users.Create(ctx, &entity.User{Email: "A@Example.com", Password: "y"})
	assert.ErrorIs(t, err, apperr.ErrDuplicate)
}

func TestCompanyStore_UpdateAndDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	company := &entity.Company{Name: "Spice Route", Industry: "Restaurant"}
	require.NoError(t, store.Companies.Create(ctx, company))

	company.Website = "https://spiceroute.example"
	require.NoError(t, store.Companies.Update(ctx, company))

	got, err := store.Companies.FindByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://spiceroute.example", got.Website)

	deleted, err := store.Companies.Delete(ctx, company.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.ErrorIs(t, store.Companies.Update(ctx, company), apperr.ErrNotFound)
}
