// Package push stores notifications and sends them to devices through
// Firebase Cloud Messaging.
package push

import (
	"context"
	"fmt"
	"log/slog"

	"firebase.google.com/go/v4/messaging"

	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/models"
)

// NotificationStore persists notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// Messenger sends one FCM message.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FirebaseNotifier implements fanout.Notifier.
type FirebaseNotifier struct {
	store     NotificationStore
	messenger Messenger
	logger    *slog.Logger
}

// NewFirebaseNotifier creates a notifier. A nil messenger only stores notifications.
func NewFirebaseNotifier(store NotificationStore, messenger Messenger, logger *slog.Logger) *FirebaseNotifier {
	return &FirebaseNotifier{store: store, messenger: messenger, logger: logger.With("component", "push")}
}

// Notify stores the alert for recipient and pushes it when the recipient has a device token.
func (n *FirebaseNotifier) Notify(ctx context.Context, recipient, actor models.User, alert fanout.Alert) error {
	record := &models.Notification{
		Type:               string(alert.Kind),
		ActorProfileID:     actor.ProfileID,
		RecipientProfileID: recipient.ProfileID,
		TargetID:           alert.MediaID,
		TargetType:         alert.MediaType,
		Message:            alert.Text,
	}
	if err := n.store.CreateNotification(ctx, record); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	if n.messenger == nil || recipient.DeviceToken == "" {
		return nil
	}
	id, err := n.messenger.Send(ctx, message(recipient.DeviceToken, alert))
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	n.logger.DebugContext(ctx, "push sent", "message_id", id, "recipient_profile_id", recipient.ProfileID)
	return nil
}

func message(token string, alert fanout.Alert) *messaging.Message {
	data := map[string]string{"kind": string(alert.Kind)}
	for k, v := range alert.Screen {
		data[k] = v
	}
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Body: alert.Text,
		},
		Data: data,
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}},
		},
	}
}
