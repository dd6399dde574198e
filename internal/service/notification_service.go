package service

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-registration/internal/config"
	"github.com/spec-kit/event-registration/internal/events"
	"github.com/spec-kit/event-registration/internal/mail"
)

// NotificationService turns domain events into outbound email. Delivery is
// at-most-once, best-effort: failures are logged and never surfaced to the
// request that triggered them.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     mail.Sender
	logger     *zap.Logger
	cfg        config.MailConfig
	now        func() time.Time
}

// NewNotificationService creates the service. A nil sender disables
// delivery while keeping handlers registered for logging.
func NewNotificationService(dispatcher events.Dispatcher, sender mail.Sender, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventUserDeleted, n.handleUserDeleted)
	n.dispatcher.Subscribe(events.EventEventCreated, n.handleEventCreated)
	n.dispatcher.Subscribe(events.EventEventDeleted, n.handleEventDeleted)
	n.dispatcher.Subscribe(events.EventSubscriptionCreated, n.handleSubscriptionCreated)
	n.dispatcher.Subscribe(events.EventSubscriptionCancelled, n.handleSubscriptionCancelled)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	link := n.cfg.VerifyBaseURL + "?token=" + url.QueryEscape(payload.VerificationToken)
	subject, body := mail.VerificationEmail(payload.Name, link)
	n.send(event, mail.Message{To: payload.Email, Subject: subject, HTMLBody: body})
	return nil
}

func (n *NotificationService) handleUserDeleted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserDeletedPayload)
	if !ok {
		return nil
	}
	subject, body := mail.AccountDeletedEmail(payload.Name)
	n.send(event, mail.Message{To: payload.Email, Subject: subject, HTMLBody: body})
	return nil
}

func (n *NotificationService) handleEventCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.EventCreatedPayload)
	if !ok {
		return nil
	}
	subject, body := mail.EventCreatedEmail(payload.OrganizerName, payload.EventName, payload.Description, payload.Date, payload.ImageURL)
	n.send(event, mail.Message{To: payload.OrganizerEmail, Subject: subject, HTMLBody: body})
	return nil
}

func (n *NotificationService) handleEventDeleted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.EventDeletedPayload)
	if !ok {
		return nil
	}
	for _, recipient := range payload.Recipients {
		subject, body := mail.EventDeletedEmail(recipient.Name, payload.EventName, payload.Date)
		n.send(event, mail.Message{To: recipient.Email, Subject: subject, HTMLBody: body})
	}
	return nil
}

func (n *NotificationService) handleSubscriptionCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SubscriptionCreatedPayload)
	if !ok {
		return nil
	}

	invite := mail.GenerateInvite(mail.InviteDetails{
		UID:            payload.EventID,
		Summary:        payload.EventName,
		Description:    payload.EventDescription,
		Start:          payload.EventDate,
		OrganizerName:  payload.OrganizerName,
		OrganizerEmail: payload.OrganizerEmail,
	}, n.now())

	subject, body := mail.SubscriptionCreatedEmail(payload.UserName, payload.EventName, payload.EventDate, payload.EventImageURL)
	n.send(event, mail.Message{
		To:       payload.UserEmail,
		Subject:  subject,
		HTMLBody: body,
		Attachment: &mail.Attachment{
			FileName:    "invite.ics",
			ContentType: "text/calendar; method=REQUEST",
			Content:     []byte(invite),
		},
	})
	return nil
}

func (n *NotificationService) handleSubscriptionCancelled(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SubscriptionCancelledPayload)
	if !ok {
		return nil
	}
	subject, body := mail.SubscriptionCancelledEmail(payload.UserName, payload.EventName, payload.EventDate)
	n.send(event, mail.Message{To: payload.UserEmail, Subject: subject, HTMLBody: body})
	return nil
}

func (n *NotificationService) send(event events.Event, msg mail.Message) {
	if n.sender == nil {
		n.logger.Debug("mail disabled; dropping notification",
			zap.String("event_type", string(event.Type)),
			zap.String("to", msg.To))
		return
	}
	if err := n.sender.Send(msg); err != nil {
		n.logger.Warn("notification delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("to", msg.To),
			zap.Error(err))
		return
	}
	n.logger.Info("notification sent",
		zap.String("event_type", string(event.Type)),
		zap.String("to", msg.To))
}
