package sinks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chainscout-hq/crypto-repo-collector/internal/domain"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func sampleEvent() Event {
	return NewEvent(domain.RepositoryRecord{
		RepositorySummary: domain.RepositorySummary{
			ID:       101,
			FullName: "alice/chainkit",
			HTMLURL:  "https://github.com/alice/chainkit",
		},
	})
}

func TestSQSSinkPublishSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	sink := &sqsSink{
		id:       "events",
		typ:      TypeSQS,
		queueURL: "https://sqs.example/queue",
		client:   client,
		log:      noopLogger{},
	}

	if err := sink.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.example/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["repo_full_name"]
	if !ok || attr.StringValue == nil || aws.ToString(attr.StringValue) != "alice/chainkit" {
		t.Fatalf("repo_full_name attribute missing or wrong: %#v", attr)
	}
	if client.input.MessageBody == nil || !strings.Contains(aws.ToString(client.input.MessageBody), `"full_name":"alice/chainkit"`) {
		t.Fatalf("MessageBody missing record: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSSinkPublishError(t *testing.T) {
	client := &fakeSQSClient{err: errors.New("boom")}
	sink := &sqsSink{
		id:       "events",
		typ:      TypeSQS,
		queueURL: "https://sqs.example/queue",
		client:   client,
		log:      noopLogger{},
	}

	if err := sink.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}
