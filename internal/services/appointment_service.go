package services

import (
	"context"
	"strings"

	"corteBack/internal/models"
	"corteBack/internal/repositories"
)

type AppointmentRepo interface {
	CreateAppointment(ctx context.Context, appt models.Appointment) (models.Appointment, error)
	GetAppointmentsByUserID(ctx context.Context, userID string) ([]models.Appointment, error)
	DeleteAppointment(ctx context.Context, userID, id string) error
	WatchAppointments(ctx context.Context, userID string, onUpdate func([]models.Appointment)) repositories.Unsubscribe
}

type AppointmentService struct {
	AppointmentRepo AppointmentRepo
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, userID, description string) (models.Appointment, error) {
	if strings.TrimSpace(description) == "" {
		return models.Appointment{}, models.ErrEmptyField
	}
	return s.AppointmentRepo.CreateAppointment(ctx, models.Appointment{
		UserID:      userID,
		Description: description,
	})
}

func (s *AppointmentService) GetAppointments(ctx context.Context, userID string) ([]models.Appointment, error) {
	return s.AppointmentRepo.GetAppointmentsByUserID(ctx, userID)
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, userID, id string) error {
	return s.AppointmentRepo.DeleteAppointment(ctx, userID, id)
}

func (s *AppointmentService) WatchAppointments(ctx context.Context, userID string, onUpdate func([]models.Appointment)) repositories.Unsubscribe {
	return s.AppointmentRepo.WatchAppointments(ctx, userID, onUpdate)
}
