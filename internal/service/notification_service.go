package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/trackerhq/project-tracker/internal/dashboard"
	"github.com/trackerhq/project-tracker/internal/events"
)

// NotificationService is the fan-out listener: it subscribes to domain events
// and forwards each one to the live dashboard broadcast, logging along the
// way. It replaces nothing in the request path; failures here never affect
// the emitting operation.
type NotificationService struct {
	dispatcher events.Dispatcher
	hub        *dashboard.Hub
	logger     *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(dispatcher events.Dispatcher, hub *dashboard.Hub, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, hub: hub, logger: logger}
}

// RegisterHandlers subscribes the dashboard forwarder to every event type the
// dashboard renders.
func (s *NotificationService) RegisterHandlers() {
	for _, eventType := range []events.EventType{
		events.EventProjectCreated,
		events.EventProjectUpdated,
		events.EventProjectDeleted,
		events.EventTaskCreated,
		events.EventTasksImported,
		events.EventTasksArchived,
		events.EventReportCompleted,
	} {
		s.dispatcher.Subscribe(eventType, s.forward)
	}
}

func (s *NotificationService) forward(_ context.Context, event events.Event) error {
	s.logger.Info("notification",
		zap.String("event_type", string(event.Type)),
		zap.String("actor", event.Actor),
	)
	s.hub.Broadcast(dashboard.Message{Type: string(event.Type), Data: event.Payload})
	return nil
}
