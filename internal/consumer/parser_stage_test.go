package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
)

// MockMessageParser is a mock implementation of MessageParser
type MockMessageParser struct {
	mock.Mock
}

func (m *MockMessageParser) Parse(body []byte) (*domain.Ticket, error) {
	args := m.Called(body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func testTicket(id string) *domain.Ticket {
	return &domain.Ticket{
		TicketID: id,
		EventID:  "fest-2027",
		Price:    decimal.RequireFromString("49.00"),
		SoldAt:   time.Unix(1781654400, 0).UTC(),
		Status:   domain.StatusConfirmed,
	}
}

func drainEnvelopes(out <-chan *Envelope, timeout time.Duration) []*Envelope {
	var envelopes []*Envelope
	deadline := time.After(timeout)
	for {
		select {
		case env, ok := <-out:
			if !ok {
				return envelopes
			}
			envelopes = append(envelopes, env)
		case <-deadline:
			return envelopes
		}
	}
}

func TestParserStage_Start_Success(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	msg := ticketMessage(1)
	mockParser.On("Parse", []byte(aws.ToString(msg.Body))).Return(testTicket("t-1"), nil)

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)
	go stage.Start(context.Background(), in, out)

	in <- msg
	close(in)

	envelopes := drainEnvelopes(out, time.Second)

	require.Len(t, envelopes, 1)
	assert.Equal(t, "t-1", envelopes[0].Ticket.TicketID)
	mockParser.AssertExpectations(t)
	mockConsumer.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestParserStage_EnvelopeAckDeletesMessage(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	msg := ticketMessage(7)
	mockParser.On("Parse", mock.Anything).Return(testTicket("t-7"), nil)
	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(in *sqs.DeleteMessageInput) bool {
		return aws.ToString(in.QueueUrl) == testQueueURL && aws.ToString(in.ReceiptHandle) == "receipt-7"
	})).Return(&sqs.DeleteMessageOutput{}, nil).Once()

	env := stage.parseMessage(context.Background(), msg)
	require.NotNil(t, env)

	require.NoError(t, env.Nack(context.Background()))
	mockConsumer.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)

	require.NoError(t, env.Ack(context.Background()))
	mockConsumer.AssertExpectations(t)
}

func TestParserStage_Start_InvalidMessageIsDeleted(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	msg := types.Message{
		MessageId:     aws.String("msg-1"),
		Body:          aws.String(`{invalid json}`),
		ReceiptHandle: aws.String("receipt-1"),
	}
	mockParser.On("Parse", []byte(`{invalid json}`)).Return(nil, errors.New("invalid JSON"))
	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.AnythingOfType("*sqs.DeleteMessageInput")).
		Return(&sqs.DeleteMessageOutput{}, nil)

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)
	go stage.Start(context.Background(), in, out)

	in <- msg
	close(in)

	envelopes := drainEnvelopes(out, time.Second)

	assert.Empty(t, envelopes)
	mockParser.AssertExpectations(t)
	mockConsumer.AssertNumberOfCalls(t, "DeleteMessage", 1)
}

func TestParserStage_Start_DeleteFailureIsTolerated(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	msg := types.Message{
		MessageId:     aws.String("msg-1"),
		Body:          aws.String(`{"ticket_id":"t-1"}`),
		ReceiptHandle: aws.String("receipt-1"),
	}
	mockParser.On("Parse", mock.Anything).
		Return(nil, &domain.ParseError{TicketID: "t-1", Field: "event_id", Reason: "missing"})
	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("failed to delete message from SQS"))

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)
	go stage.Start(context.Background(), in, out)

	in <- msg
	close(in)

	envelopes := drainEnvelopes(out, time.Second)

	assert.Empty(t, envelopes)
	mockConsumer.AssertCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestParserStage_Start_ContextCancellation(t *testing.T) {
	stage := NewParserStage(new(MockQueueConsumer), new(MockMessageParser), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := make(chan types.Message)
	out := make(chan *Envelope, 1)
	stage.Start(ctx, in, out)

	_, ok := <-out
	assert.False(t, ok, "Output channel should be closed after context cancellation")
}

func TestParserStage_Start_InputChannelClosed(t *testing.T) {
	stage := NewParserStage(new(MockQueueConsumer), new(MockMessageParser), zap.NewNop())

	in := make(chan types.Message)
	out := make(chan *Envelope, 1)
	close(in)

	stage.Start(context.Background(), in, out)

	_, ok := <-out
	assert.False(t, ok, "Output channel should be closed when input channel is closed")
}

func TestParserStage_Start_MixedMessages(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	good1, good3 := ticketMessage(1), ticketMessage(3)
	bad := types.Message{
		MessageId:     aws.String("msg-2"),
		Body:          aws.String(`{invalid}`),
		ReceiptHandle: aws.String("receipt-2"),
	}

	mockParser.On("Parse", []byte(aws.ToString(good1.Body))).Return(testTicket("t-1"), nil)
	mockParser.On("Parse", []byte(`{invalid}`)).Return(nil, errors.New("parse error"))
	mockParser.On("Parse", []byte(aws.ToString(good3.Body))).Return(testTicket("t-3"), nil)
	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.Anything).Return(&sqs.DeleteMessageOutput{}, nil)

	in := make(chan types.Message, 3)
	out := make(chan *Envelope, 3)
	go stage.Start(context.Background(), in, out)

	for _, msg := range []types.Message{good1, bad, good3} {
		in <- msg
	}
	close(in)

	envelopes := drainEnvelopes(out, time.Second)

	require.Len(t, envelopes, 2)
	assert.Equal(t, "t-1", envelopes[0].Ticket.TicketID)
	assert.Equal(t, "t-3", envelopes[1].Ticket.TicketID)
	mockConsumer.AssertNumberOfCalls(t, "DeleteMessage", 1)
}
