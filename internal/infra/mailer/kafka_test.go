//go:build unit

package mailer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hotel-checkout/internal/infra/mailer"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/usecase/commands"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmation() commands.BookingConfirmation {
	return commands.BookingConfirmation{
		BookingID:        uuid.New(),
		AttemptID:        uuid.New(),
		Purpose:          "booking",
		Email:            "guest@example.com",
		GuestName:        "Ani Hakobyan",
		HotelCode:        "H",
		ConfirmationCode: "CNF-1",
		Currency:         "AMD",
	}
}

func TestKafkaMailer_SendBookingConfirmation(t *testing.T) {
	cfg := config.NewTestConfig()

	t.Run("publishes keyed by booking", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		c := confirmation()
		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			assert.Equal(t, cfg.Kafka.MailTopic, msg.Topic)
			key, _ := msg.Key.Encode()
			assert.Equal(t, c.BookingID.String(), string(key))

			raw, _ := msg.Value.Encode()
			var ev struct {
				EventType string                       `json:"event_type"`
				Data      commands.BookingConfirmation `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &ev))
			assert.Equal(t, "booking_confirmed", ev.EventType)
			assert.Equal(t, "CNF-1", ev.Data.ConfirmationCode)
			return nil
		})

		err := mailer.NewKafkaMailer(producer, cfg).SendBookingConfirmation(context.Background(), c)
		require.NoError(t, err)
		require.NoError(t, producer.Close())
	})

	t.Run("broker failure is returned", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageAndFail(errors.New("leader not available"))

		err := mailer.NewKafkaMailer(producer, cfg).SendBookingConfirmation(context.Background(), confirmation())
		assert.ErrorContains(t, err, "leader not available")
		require.NoError(t, producer.Close())
	})

	t.Run("missing recipient is rejected before publishing", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		c := confirmation()
		c.Email = ""

		err := mailer.NewKafkaMailer(producer, cfg).SendBookingConfirmation(context.Background(), c)
		assert.Error(t, err)
		require.NoError(t, producer.Close())
	})
}
