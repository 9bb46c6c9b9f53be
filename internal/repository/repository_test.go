package repository

import (
	"context"
	"testing"

	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"
	"ai-calling-agent/internal/infrastructure/database"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newTestStore(t *testing.T) *domainRepo.Store {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	db, err := database.NewSQLiteConnection(":memory:", log)
	require.NoError(t, err)
	return NewGormStore(db)
}

func TestCompanyRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	company := &entity.Company{
		Name:        "City Hospital",
		Industry:    "Healthcare",
		SocialMedia: datatypes.JSONMap{"twitter": "@cityhospital"},
	}
	require.NoError(t, store.Companies.Create(ctx, company))
	assert.NotEmpty(t, company.ID)

	got, err := store.Companies.FindByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "City Hospital", got.Name)
	assert.Equal(t, "@cityhospital", got.SocialMedia["twitter"])

	got.ContextSummary = "24/7 emergency care"
	require.NoError(t, store.Companies.Update(ctx, got))

	list, err := store.Companies.List(ctx, entity.CompanyFilter{Industry: "Healthcare"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "24/7 emergency care", list[0].ContextSummary)

	deleted, err := store.Companies.Delete(ctx, company.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Companies.Delete(ctx, company.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.Companies.FindByID(ctx, company.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCompanyRepository_UpdateMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.Companies.Update(context.Background(), &entity.Company{ID: "nope", Name: "Ghost"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCompanyRepository_CreateRequiresName(t *testing.T) {
	store := newTestStore(t)

	err := store.Companies.Create(context.Background(), &entity.Company{Industry: "Retail"})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
}

func TestDoctorRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Doctors.Create(ctx, &entity.Doctor{HospitalID: "h1", Name: "Dr. Rao", Specialization: "Cardiology", ExperienceYears: 12, IsAvailable: true}))
	require.NoError(t, store.Doctors.Create(ctx, &entity.Doctor{HospitalID: "h1", Name: "Dr. Iyer", Specialization: "Dermatology", ExperienceYears: 4}))
	require.NoError(t, store.Doctors.Create(ctx, &entity.Doctor{HospitalID: "h2", Name: "Dr. Sen", Specialization: "Cardiology", IsAvailable: true}))

	available := true
	list, err := store.Doctors.List(ctx, entity.DoctorFilter{HospitalID: "h1", IsAvailable: &available})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dr. Rao", list[0].Name)

	all, err := store.Doctors.List(ctx, entity.DoctorFilter{HospitalID: "h1"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestVacancyRepository_DefaultsToOpen(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	vacancy := &entity.Vacancy{CompanyID: "c1", Position: "Backend Engineer"}
	require.NoError(t, store.Vacancies.Create(ctx, vacancy))

	open, err := store.Vacancies.List(ctx, entity.VacancyFilter{CompanyID: "c1", Status: entity.VacancyStatusOpen})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, vacancy.ID, open[0].ID)
}

func TestOrderRepository_FindByIDFold(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	order := &entity.Order{ID: "ORD-ABC123", CompanyID: "c1", UnitPrice: decimal.RequireFromString("249.50"), Quantity: 2}
	require.NoError(t, store.Orders.Create(ctx, order))

	got, err := store.Orders.FindByIDFold(ctx, "ord-abc123")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderID("ORD-ABC123"), got.ID)
	assert.True(t, decimal.RequireFromString("499").Equal(got.TotalPrice))
	assert.Equal(t, entity.OrderStatusPending, got.Status)

	_, err = store.Orders.FindByIDFold(ctx, "ORD-000000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderRepository_DuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Orders.Create(ctx, &entity.Order{ID: "ORD-000001", CompanyID: "c1"}))
	err := store.Orders.Create(ctx, &entity.Order{ID: "ORD-000001", CompanyID: "c2"})
	assert.ErrorIs(t, err, apperr.ErrDuplicate)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	order := &entity.Order{CompanyID: "c1"}
	require.NoError(t, store.Orders.Create(ctx, order))

	updated, err := store.Orders.UpdateStatus(ctx, order.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, updated.Status)

	_, err = store.Orders.UpdateStatus(ctx, order.ID, "shipped")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = store.Orders.UpdateStatus(ctx, "ORD-FFFFFF", entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAppointmentRepository_ListOrderedByDateThenTime(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, a := range []entity.Appointment{
		{EntityID: "h1", Type: entity.AppointmentTypeDoctor, Date: "2025-03-02", Time: "09:00"},
		{EntityID: "h1", Type: entity.AppointmentTypeDoctor, Date: "2025-03-01", Time: "15:00"},
		{EntityID: "h1", Type: entity.AppointmentTypeDoctor, Date: "2025-03-01", Time: "10:00"},
		{EntityID: "h2", Type: entity.AppointmentTypeTable, Date: "2025-03-01", Time: "08:00"},
	} {
		a := a
		require.NoError(t, store.Appointments.Create(ctx, &a))
	}

	list, err := store.Appointments.List(ctx, entity.AppointmentFilter{EntityID: "h1"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "10:00", list[0].Time)
	assert.Equal(t, "15:00", list[1].Time)
	assert.Equal(t, "2025-03-02", list[2].Date)
	for _, a := range list {
		assert.Equal(t, entity.AppointmentStatusScheduled, a.Status)
	}
}

func TestAppointmentRepository_MissingDateCreatesNothing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.Appointments.Create(ctx, &entity.Appointment{EntityID: "h1", Type: entity.AppointmentTypeDoctor, Time: "10:00"})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date", vErr.Field)

	list, err := store.Appointments.List(ctx, entity.AppointmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAppointmentRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a := &entity.Appointment{EntityID: "h1", Type: entity.AppointmentTypeDoctor, Date: "2025-03-01", Time: "10:00", UserInfo: datatypes.JSONMap{"phone": "555"}}
	require.NoError(t, store.Appointments.Create(ctx, a))

	updated, err := store.Appointments.UpdateStatus(ctx, a.ID, entity.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, updated.Status)
	assert.Equal(t, "555", updated.UserInfo["phone"])
}

func TestFeedbackRepository_RatingBounds(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.Feedback.Create(ctx, &entity.Feedback{EntityID: "c1", Rating: 6})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	fb := &entity.Feedback{EntityID: "c1", Rating: 4, Comment: "Friendly staff"}
	require.NoError(t, store.Feedback.Create(ctx, fb))
	assert.Equal(t, entity.DefaultCategory, fb.Category)

	list, err := store.Feedback.List(ctx, entity.FeedbackFilter{EntityID: "c1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4, list[0].Rating)
}

func TestUserRepository_EmailIsUniqueAndCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	user := &entity.User{Email: "Asha@Example.com ", Password: "hash"}
	require.NoError(t, store.Users.Create(ctx, user))
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, entity.RoleUser, user.Role)

	err := store.Users.Create(ctx, &entity.User{Email: "ASHA@example.com", Password: "other"})
	assert.ErrorIs(t, err, apperr.ErrDuplicate)

	got, err := store.Users.FindByEmail(ctx, "asha@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Nil(t, got.LastLogin)

	require.NoError(t, store.Users.TouchLastLogin(ctx, user.ID, got.CreatedAt))
	got, err = store.Users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLogin)
}

func TestConversationLogRepository_ListBySession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.ConversationLogs.Create(ctx, &entity.ConversationLog{
		SessionID:      "s1",
		UserMessage:    "where is my order",
		AgentResponse:  "It is pending.",
		FunctionCalled: "trace_order",
		FunctionResult: datatypes.JSONMap{"success": true},
	}))
	require.NoError(t, store.ConversationLogs.Create(ctx, &entity.ConversationLog{SessionID: "s2", UserMessage: "hi"}))

	err := store.ConversationLogs.Create(ctx, &entity.ConversationLog{SessionID: "s1"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	logs, err := store.ConversationLogs.List(ctx, entity.ConversationLogFilter{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "trace_order", logs[0].FunctionCalled)
	assert.Equal(t, true, logs[0].FunctionResult["success"])
}
