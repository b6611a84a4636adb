package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testQueueURL = "https://sqs.eu-west-1.amazonaws.com/123/ticket-imports"

// MockQueueConsumer is a mock implementation of queue.QueueConsumer
type MockQueueConsumer struct {
	mock.Mock
}

func (m *MockQueueConsumer) ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.ReceiveMessageOutput), args.Error(1)
}

func (m *MockQueueConsumer) DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sqs.DeleteMessageOutput), args.Error(1)
}

func (m *MockQueueConsumer) QueueURL() string {
	args := m.Called()
	return args.String(0)
}

func ticketMessage(n int) types.Message {
	return types.Message{
		MessageId:     aws.String(fmt.Sprintf("msg-%d", n)),
		Body:          aws.String(fmt.Sprintf(`{"ticket_id":"t-%d","event_id":"fest-2027","price":"49.00","sold_at":1781654400}`, n)),
		ReceiptHandle: aws.String(fmt.Sprintf("receipt-%d", n)),
	}
}

func defaultReceiverConfig() ReceiverConfig {
	return ReceiverConfig{
		MaxMessages:     10,
		WaitTimeSeconds: 20,
		BufferSize:      100,
	}
}

func collectMessages(out <-chan types.Message, want int, timeout time.Duration) []types.Message {
	var received []types.Message
	deadline := time.After(timeout)
	for len(received) < want {
		select {
		case msg, ok := <-out:
			if !ok {
				return received
			}
			received = append(received, msg)
		case <-deadline:
			return received
		}
	}
	return received
}

func TestReceiver_Start_Success(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	receiver := NewReceiver(mockConsumer, defaultReceiverConfig(), zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.MatchedBy(func(in *sqs.ReceiveMessageInput) bool {
		return aws.ToString(in.QueueUrl) == testQueueURL && in.MaxNumberOfMessages == 10 && in.WaitTimeSeconds == 20
	})).Return(&sqs.ReceiveMessageOutput{Messages: []types.Message{ticketMessage(1), ticketMessage(2)}}, nil).Once()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&sqs.ReceiveMessageOutput{}, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan types.Message, 10)
	go receiver.Start(ctx, out)

	received := collectMessages(out, 2, time.Second)

	require.Len(t, received, 2)
	assert.Equal(t, "msg-1", aws.ToString(received[0].MessageId))
	assert.Equal(t, "msg-2", aws.ToString(received[1].MessageId))
}

func TestReceiver_Start_RecoversAfterReceiveError(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	cfg := defaultReceiverConfig()
	cfg.ErrorBackoff = 5 * time.Millisecond
	receiver := NewReceiver(mockConsumer, cfg, zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(nil, errors.New("SQS connection error")).Once()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&sqs.ReceiveMessageOutput{Messages: []types.Message{ticketMessage(1)}}, nil).Once()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&sqs.ReceiveMessageOutput{}, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan types.Message, 10)
	go receiver.Start(ctx, out)

	received := collectMessages(out, 1, time.Second)

	require.Len(t, received, 1)
	assert.Equal(t, "msg-1", aws.ToString(received[0].MessageId))
}

func TestReceiver_Start_NilOutput(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	receiver := NewReceiver(mockConsumer, defaultReceiverConfig(), zap.NewNop())

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	out := make(chan types.Message, 10)
	receiver.Start(ctx, out)

	_, ok := <-out
	assert.False(t, ok, "Channel should be closed after context is done")
}

func TestReceiver_Start_ContextCancellation(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	receiver := NewReceiver(mockConsumer, defaultReceiverConfig(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := make(chan types.Message, 10)
	receiver.Start(ctx, out)

	_, ok := <-out
	assert.False(t, ok, "Channel should be closed after context cancellation")
	mockConsumer.AssertNotCalled(t, "ReceiveMessages", mock.Anything, mock.Anything)
}

func TestReceiver_Start_BufferBackpressure(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	cfg := defaultReceiverConfig()
	cfg.BufferSize = 2
	receiver := NewReceiver(mockConsumer, cfg, zap.NewNop())

	messages := make([]types.Message, 5)
	for i := range messages {
		messages[i] = ticketMessage(i)
	}

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&sqs.ReceiveMessageOutput{Messages: messages}, nil).Once()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&sqs.ReceiveMessageOutput{}, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan types.Message, 2)
	go receiver.Start(ctx, out)

	var received []types.Message
	for len(received) < 5 {
		select {
		case msg := <-out:
			received = append(received, msg)
			time.Sleep(5 * time.Millisecond)
		case <-time.After(time.Second):
			t.Fatal("receiver stalled under backpressure")
		}
	}

	assert.Len(t, received, 5)
	assert.Equal(t, "msg-4", aws.ToString(received[4].MessageId))
}
