// Package mailer hands booking confirmations to the mail pipeline over Kafka.
package mailer

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/usecase/commands"

	"github.com/IBM/sarama"
)

const eventBookingConfirmed = "booking_confirmed"

type event struct {
	EventType string                       `json:"event_type"`
	From      string                       `json:"from"`
	BCC       string                       `json:"bcc,omitempty"`
	Data      commands.BookingConfirmation `json:"data"`
}

type KafkaMailer struct {
	producer sarama.SyncProducer
	topic    string
	from     string
	bcc      string
}

func NewKafkaMailer(producer sarama.SyncProducer, cfg config.Config) *KafkaMailer {
	return &KafkaMailer{
		producer: producer,
		topic:    cfg.Kafka.MailTopic,
		from:     cfg.Mail.From,
		bcc:      cfg.Mail.AdminBCC,
	}
}

// SendBookingConfirmation publishes the event keyed by booking so every
// message for a booking lands on one partition.
func (m *KafkaMailer) SendBookingConfirmation(ctx context.Context, c commands.BookingConfirmation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Email == "" {
		return errs.New("booking confirmation has no recipient")
	}

	value, err := json.Marshal(event{EventType: eventBookingConfirmed, From: m.from, BCC: m.bcc, Data: c})
	if err != nil {
		return errs.Wrap(err, "marshal mail event")
	}

	partition, offset, err := m.producer.SendMessage(&sarama.ProducerMessage{
		Topic: m.topic,
		Key:   sarama.StringEncoder(c.BookingID.String()),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return errs.Wrap(err, "publish mail event")
	}

	slog.Info("booking confirmation queued",
		"booking_id", c.BookingID,
		"attempt_id", c.AttemptID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

// NewSyncProducer dials the brokers, retrying while they come up.
func NewSyncProducer(cfg config.KafkaConfig) (sarama.SyncProducer, error) {
	sc := sarama.NewConfig()
	sc.Producer.Return.Successes = true
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 5

	retries := cfg.DialRetries
	if retries < 1 {
		retries = 1
	}

	var (
		producer sarama.SyncProducer
		err      error
	)
	for i := 1; i <= retries; i++ {
		producer, err = sarama.NewSyncProducer(cfg.Brokers, sc)
		if err == nil {
			slog.Info("kafka producer connected", "brokers", cfg.Brokers)
			return producer, nil
		}
		slog.Warn("kafka producer connect failed", "try", i, "of", retries, "error", err.Error())
		if i < retries {
			time.Sleep(3 * time.Second)
		}
	}
	return nil, errs.Wrap(err, "connect kafka producer")
}
