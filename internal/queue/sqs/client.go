package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	envConfig "github.com/Villegascvrr/tricketv0-sub002/internal/config"
	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
	"github.com/Villegascvrr/tricketv0-sub002/internal/dto"
)

// Client represents an SQS client bound to the ticket import queue
type Client struct {
	client *sqs.Client
	config envConfig.SQS
	log    *zap.Logger
}

// NewClient creates a new SQS client
func NewClient(ctx context.Context, sqsConfig envConfig.SQS, log *zap.Logger) (*Client, error) {
	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(sqsConfig.Region),
	}

	var clientOpts []func(*sqs.Options)

	// Local development against ElasticMQ
	if sqsConfig.Endpoint != "" {
		log.Info("Configuring SQS for local development",
			zap.String("endpoint", sqsConfig.Endpoint))
		configOpts = append(configOpts,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")))

		clientOpts = append(clientOpts, func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(sqsConfig.Endpoint)
		})
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info("SQS client created",
		zap.String("region", sqsConfig.Region),
		zap.String("queue_url", sqsConfig.QueueURL))

	return &Client{
		client: sqs.NewFromConfig(cfg, clientOpts...),
		config: sqsConfig,
		log:    log,
	}, nil
}

// ReceiveMessages receives messages from SQS
func (c *Client) ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error) {
	return c.client.ReceiveMessage(ctx, input)
}

// DeleteMessage deletes a message from SQS
func (c *Client) DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
	return c.client.DeleteMessage(ctx, input)
}

// QueueURL returns the configured queue URL
func (c *Client) QueueURL() string {
	return c.config.QueueURL
}

// MessageBody converts an intake request into the queue message consumed by the import pipeline
func MessageBody(ticket *dto.PublishTicketRequest, ticketID string) ([]byte, error) {
	status := ticket.Status
	if status == "" {
		status = domain.StatusConfirmed
	}

	rec := domain.TicketRecord{
		TicketID:         &ticketID,
		EventID:          &ticket.EventID,
		Price:            &ticket.Price,
		SoldAt:           &ticket.SoldAt,
		Provider:         &ticket.Provider,
		Zone:             &ticket.Zone,
		Channel:          &ticket.Channel,
		Status:           &status,
		BuyerAge:         ticket.BuyerAge,
		BuyerProvince:    &ticket.BuyerProvince,
		BuyerCity:        &ticket.BuyerCity,
		HasEmail:         &ticket.HasEmail,
		HasPhone:         &ticket.HasPhone,
		MarketingConsent: &ticket.MarketingConsent,
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ticket: %w", err)
	}
	return body, nil
}

// PublishTicket publishes a ticket to the import queue
func (c *Client) PublishTicket(ctx context.Context, ticket *dto.PublishTicketRequest, ticketID string) error {
	body, err := MessageBody(ticket, ticketID)
	if err != nil {
		c.log.Error("Failed to encode ticket",
			zap.String("ticket_id", ticketID),
			zap.String("event_id", ticket.EventID),
			zap.Error(err))
		return err
	}

	attributes := map[string]types.MessageAttributeValue{
		"EventID": {
			DataType:    aws.String("String"),
			StringValue: aws.String(ticket.EventID),
		},
	}
	// SQS rejects empty attribute values
	if ticket.Channel != "" {
		attributes["Channel"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(ticket.Channel),
		}
	}

	_, err = c.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(c.config.QueueURL),
		MessageBody:       aws.String(string(body)),
		MessageAttributes: attributes,
	})
	if err != nil {
		c.log.Error("Failed to send ticket to SQS",
			zap.String("ticket_id", ticketID),
			zap.String("event_id", ticket.EventID),
			zap.Error(err))
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	c.log.Debug("Ticket published to SQS",
		zap.String("ticket_id", ticketID),
		zap.String("event_id", ticket.EventID))

	return nil
}
