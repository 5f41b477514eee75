package stream

import (
	"github.com/Shopify/sarama"

	"github.com/tufitko/minmaxheap/pkg/logging"
)

// claimHandler adapts a Consumer to sarama.ConsumerGroupHandler.
type claimHandler struct {
	c *Consumer
}

func (h claimHandler) Setup(session sarama.ConsumerGroupSession) error {
	h.c.logger.WithField("generation_id", session.GenerationID()).Debug("consumer group session started")
	h.c.Lock()
	h.c.session = session
	h.c.Unlock()
	return nil
}

func (h claimHandler) Cleanup(session sarama.ConsumerGroupSession) error {
	h.c.logger.WithField("generation_id", session.GenerationID()).Debug("consumer group session ended")
	return nil
}

// ConsumeClaim runs in its own goroutine per claimed partition. A handler
// error ends the claim and with it the session.
func (h claimHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log := h.c.logger.WithFields(logging.Fields{
		"topic":     claim.Topic(),
		"partition": claim.Partition(),
	})
	log.Debug("partition claimed")

	autocommit := h.c.shouldCommit()
	for raw := range claim.Messages() {
		msg := newMessage(raw)
		commandsConsumed.WithLabelValues(msg.Type, msg.Topic).Inc()
		log.WithFields(logging.Fields{
			"key":          msg.Key,
			"offset":       msg.Offset,
			"message_type": msg.Type,
		}).Debug("handling command message")

		if autocommit {
			session.MarkMessage(raw, "")
		}
		if err := h.c.handler(msg); err != nil {
			return err
		}
	}
	return nil
}

func newMessage(raw *sarama.ConsumerMessage) *Message {
	return &Message{
		Key:       string(raw.Key),
		Type:      GetMessageType(raw.Headers),
		Data:      raw.Value,
		Topic:     raw.Topic,
		Partition: raw.Partition,
		Offset:    raw.Offset,
		Meta:      GetMessageMeta(raw.Headers),
	}
}
