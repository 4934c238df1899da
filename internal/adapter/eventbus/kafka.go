// Package eventbus publishes profile lifecycle events to Kafka so header
// widgets and search indexers can refresh without polling.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/kmsg"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/quickhire/profile-engine/internal/domain"
)

// DefaultTopic is the profile lifecycle topic.
const DefaultTopic = "profile.updated"

// Publisher wraps a Kafka producer and implements domain.EventPublisher.
type Publisher struct {
	client *kgo.Client
	topic  string
}

// profileUpdatedEvent is the wire shape of a publish. Collaborators key on
// the candidate code and refetch the record; the event itself stays small.
type profileUpdatedEvent struct {
	CandidateCode string `json:"candidate_code"`
	FullName      string `json:"full_name"`
	UpdatedAt     string `json:"updated_at"`
}

// NewPublisher connects to the brokers and ensures the topic exists.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no seed brokers provided")
	}
	if topic == "" {
		topic = DefaultTopic
	}

	kotelService := kotel.NewKotel(
		kotel.WithTracer(kotel.NewTracer(
			kotel.TracerProvider(otel.GetTracerProvider()),
		)),
	)

	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.RequestRetries(10),
		kgo.DialTimeout(10 * time.Second),
		kgo.WithHooks(kotelService.Hooks()...),
	}
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	if err := createTopicIfNotExists(context.Background(), client, topic, 1, 1); err != nil {
		slog.Warn("failed to create topic, it may already exist",
			slog.String("topic", topic),
			slog.Any("error", err))
	}
	return &Publisher{client: client, topic: topic}, nil
}

// PublishProfileUpdated announces a successful save. The record key is the
// candidate code so updates for one candidate stay ordered.
func (p *Publisher) PublishProfileUpdated(ctx domain.Context, prof domain.Profile) error {
	evt := profileUpdatedEvent{
		CandidateCode: prof.CandidateCode,
		FullName:      prof.FullName,
		UpdatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("op=events.publish encode: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(prof.CandidateCode),
		Value: b,
		Headers: []kgo.RecordHeader{
			{Key: "candidate_code", Value: []byte(prof.CandidateCode)},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("op=events.publish produce: %w", err)
	}
	slog.Debug("profile.updated published", slog.String("candidate_code", prof.CandidateCode))
	return nil
}

// Close closes the underlying client.
func (p *Publisher) Close() error {
	if p.client != nil {
		p.client.Close()
	}
	return nil
}

// createTopicIfNotExists creates the topic through the admin API, treating
// TOPIC_ALREADY_EXISTS (error code 36) as success.
func createTopicIfNotExists(ctx context.Context, client *kgo.Client, topic string, partitions int32, replicationFactor int16) error {
	req := kmsg.NewCreateTopicsRequest()
	req.TimeoutMillis = 30000

	topicReq := kmsg.NewCreateTopicsRequestTopic()
	topicReq.Topic = topic
	topicReq.NumPartitions = partitions
	topicReq.ReplicationFactor = replicationFactor
	req.Topics = append(req.Topics, topicReq)

	resp, err := client.Request(ctx, &req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	createResp, ok := resp.(*kmsg.CreateTopicsResponse)
	if !ok {
		return fmt.Errorf("unexpected response type: %T", resp)
	}
	for _, topicResp := range createResp.Topics {
		if topicResp.ErrorCode != 0 {
			if topicResp.ErrorCode == 36 {
				return nil
			}
			errorMsg := ""
			if topicResp.ErrorMessage != nil {
				errorMsg = *topicResp.ErrorMessage
			}
			return fmt.Errorf("create topic error: %s (code %d)", errorMsg, topicResp.ErrorCode)
		}
	}
	return nil
}
