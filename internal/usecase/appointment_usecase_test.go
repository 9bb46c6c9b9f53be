package usecase

import (
	"context"
	"testing"
	"time"

	"ai-calling-agent/internal/agent/tools"
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	domainRepo "ai-calling-agent/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppointmentUsecase(t *testing.T) (AppointmentUsecase, *entity.Company) {
	t.Helper()
	uc, company, _ := newAppointmentUsecaseWithStore(t)
	return uc, company
}

func newAppointmentUsecaseWithStore(t *testing.T) (AppointmentUsecase, *entity.Company, *domainRepo.Store) {
	t.Helper()
	store := newTestStore(t)
	company := &entity.Company{Name: "Aarogya Multispeciality Hospital", Industry: "Healthcare"}
	require.NoError(t, store.Companies.Create(context.Background(), company))

	registry := tools.NewRegistry(store, quietLogger(),
		tools.WithClock(func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }))
	return NewAppointmentUsecase(quietLogger(), store.Appointments, registry, newTestGuard(t)), company, store
}

func TestAppointmentUsecase_CreateAndSlots(t *testing.T) {
	ctx := context.Background()
	uc, company := newAppointmentUsecase(t)

	created, err := uc.Create(ctx, &dto.CreateAppointmentRequest{
		EntityID:  company.ID.String(),
		Type:      entity.AppointmentTypeDoctor,
		Date:      "2025-03-04",
		Time:      "11:00",
		UserEmail: "Asha@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusScheduled, created.Status)
	assert.Equal(t, "asha@example.com", created.UserEmail)

	slots, err := uc.Slots(ctx, company.ID.String(), "2025-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", slots.Date)
	assert.Equal(t, []string{"11:00"}, slots.BookedSlots)
	assert.NotContains(t, slots.AvailableSlots, "11:00")
	assert.Len(t, slots.AvailableSlots, len(tools.DailySlots)-1)

	today, err := uc.Slots(ctx, company.ID.String(), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", today.Date)
	assert.Len(t, today.AvailableSlots, len(tools.DailySlots))
}

func TestAppointmentUsecase_CancelledFreesSlot(t *testing.T) {
	ctx := context.Background()
	uc, company := newAppointmentUsecase(t)

	created, err := uc.Create(ctx, &dto.CreateAppointmentRequest{
		EntityID: company.ID.String(), Type: "doctor", Date: "2025-03-04", Time: "11:00",
	})
	require.NoError(t, err)

	updated, err := uc.UpdateStatus(ctx, created.ID.String(), &dto.UpdateAppointmentStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, updated.Status)

	slots, err := uc.Slots(ctx, company.ID.String(), "2025-03-04")
	require.NoError(t, err)
	assert.Empty(t, slots.BookedSlots)
}

func TestAppointmentUsecase_ValidationAndMissing(t *testing.T) {
	ctx := context.Background()
	uc, company := newAppointmentUsecase(t)

	_, err := uc.Create(ctx, &dto.CreateAppointmentRequest{EntityID: company.ID.String(), Type: "doctor", Date: "2025-03-04"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = uc.UpdateStatus(ctx, "missing", &dto.UpdateAppointmentStatusRequest{Status: "unknown"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = uc.UpdateStatus(ctx, "missing", &dto.UpdateAppointmentStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, "missing"), apperr.ErrNotFound)

	_, err = uc.Slots(ctx, "", "2025-03-04")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAppointmentUsecase_DoubleSubmitWithinWindow(t *testing.T) {
	ctx := context.Background()
	uc, company, store := newAppointmentUsecaseWithStore(t)
	req := &dto.CreateAppointmentRequest{EntityID: company.ID.String(), Type: "doctor", Date: "2025-03-05", Time: "14:00"}

	first, err := uc.Create(ctx, req)
	require.NoError(t, err)
	second, err := uc.Create(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	appointments, err := store.Appointments.List(ctx, entity.AppointmentFilter{EntityID: company.ID})
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}
