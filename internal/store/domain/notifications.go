package domain

import "context"

//go:generate mockgen -source=notifications.go -destination=../../../gen/mocks/store/notifications.go -package=mocks

type MessageRef string

type CardRef string

// NotificationTransport delivers private messages to users.
// SendPrivate fails with *UndeliverableError, Retract with *MessageGoneError.
type NotificationTransport interface {
	SendPrivate(ctx context.Context, userID int64, text string) (MessageRef, error)
	Retract(ctx context.Context, ref MessageRef) error
}

// CardPublisher pushes a rendered item card to its public message.
// A removed card is reported as *TargetGoneError.
type CardPublisher interface {
	PublishCard(ctx context.Context, ref CardRef, card Card) error
}

type Card struct {
	Title         string
	Description   string
	Price         int64
	Stock         int64
	Image         string
	Footer        string
	ActionEnabled bool
}
