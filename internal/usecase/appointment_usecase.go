package usecase

import (
	"context"

	"ai-calling-agent/internal/agent/tools"
	"ai-calling-agent/internal/converter"
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// SlotFinder computes free and booked slots for an entity and day.
type SlotFinder interface {
	GetAvailableSlots(ctx context.Context, entityID, date string) (tools.Result, error)
}

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*entity.Appointment, error)
	List(ctx context.Context, query dto.AppointmentQuery) ([]entity.Appointment, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateAppointmentStatusRequest) (*entity.Appointment, error)
	Delete(ctx context.Context, id string) error
	Slots(ctx context.Context, entityID, date string) (*dto.SlotsResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	slots           SlotFinder
	guard           GuardedWriter
}

func NewAppointmentUsecase(log *logrus.Logger, appointmentRepo repository.AppointmentRepository, slots SlotFinder, guard GuardedWriter) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		slots:           slots,
		guard:           guard,
	}
}

func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*entity.Appointment, error) {
	appointment := converter.AppointmentFromRequest(req)
	appointment.ApplyDefaults()
	if err := appointment.Validate(); err != nil {
		return nil, err
	}

	created, err := guardedCreate(ctx, u.guard, u.log, tools.AppointmentKey(appointment), "appointments", appointment,
		func() (string, error) {
			if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
				return "", err
			}
			return appointment.ID.String(), nil
		},
		func(id string) { appointment.ID = entity.AppointmentID(id) },
		func(id string) (*entity.Appointment, error) {
			return u.appointmentRepo.FindByID(ctx, entity.AppointmentID(id))
		},
	)
	if err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}
	return created, nil
}

func (u *appointmentUsecase) List(ctx context.Context, query dto.AppointmentQuery) ([]entity.Appointment, error) {
	appointments, err := u.appointmentRepo.List(ctx, entity.AppointmentFilter{
		EntityID:  entity.CompanyID(query.EntityID),
		UserEmail: entity.NormalizeEmail(query.UserEmail),
		Date:      query.Date,
		Status:    entity.AppointmentStatus(query.Status),
	})
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return appointments, nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id string, req *dto.UpdateAppointmentStatusRequest) (*entity.Appointment, error) {
	status := entity.AppointmentStatus(req.Status)
	if !status.Valid() {
		return nil, apperr.Invalid("status", "must be one of scheduled, completed, cancelled")
	}

	appointment, err := u.appointmentRepo.UpdateStatus(ctx, entity.AppointmentID(id), status)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
		return nil, err
	}
	return appointment, nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id string) error {
	deleted, err := u.appointmentRepo.Delete(ctx, entity.AppointmentID(id))
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if !deleted {
		return apperr.NotFound("appointment", id)
	}
	return nil
}

func (u *appointmentUsecase) Slots(ctx context.Context, entityID, date string) (*dto.SlotsResponse, error) {
	res, err := u.slots.GetAvailableSlots(ctx, entityID, date)
	if err != nil {
		return nil, err
	}

	available, _ := res["available_slots"].([]string)
	booked, _ := res["booked_slots"].([]string)
	resolved, _ := res["date"].(string)
	return &dto.SlotsResponse{
		EntityID:       entityID,
		Date:           resolved,
		AvailableSlots: available,
		BookedSlots:    booked,
	}, nil
}
