package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/Villegascvrr/tricketv0-sub002/internal/dto"
)

// TicketPublisher defines the interface for publishing tickets to the import queue
type TicketPublisher interface {
	PublishTicket(ctx context.Context, ticket *dto.PublishTicketRequest, ticketID string) error
}

// QueueConsumer defines the interface for consuming messages from a queue
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	QueueURL() string
}
