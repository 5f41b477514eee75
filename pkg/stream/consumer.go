package stream

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"

	"github.com/tufitko/minmaxheap/pkg/logging"
	"github.com/tufitko/minmaxheap/pkg/retry"
)

const (
	OffsetNewest = sarama.OffsetNewest
	OffsetOldest = sarama.OffsetOldest
)

// Consumer feeds messages of a consumer group to one handler, one partition
// claim at a time per goroutine.
type Consumer struct {
	sync.RWMutex
	group        sarama.ConsumerGroup
	session      sarama.ConsumerGroupSession
	broker       string
	groupID      string
	topics       []string
	config       *ConsumerConfig
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	logger       logging.Logger
	handler      func(*Message) error
	errorHandler func(err error)
}

// ConsumerConfig tunes the consumer group. Connect retries the initial
// connection, Consume retries a failed Consume call before giving up.
type ConsumerConfig struct {
	Logger   logging.Logger
	ClientID string

	Connect retry.Retry
	Consume retry.Retry

	BufferSize        int
	Autocommit        bool
	InitialOffset     int64
	SessionTimeout    time.Duration
	HeartbeatInterval time.Duration
	MaxProcessingTime time.Duration
}

func NewConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Logger:        logging.NilLogger,
		Connect:       retry.New(5, 5*time.Second, 2),
		Consume:       retry.New(1, 250*time.Millisecond, 1),
		BufferSize:    10,
		InitialOffset: sarama.OffsetOldest,
	}
}

func NewConsumer(broker string, groupID string, config *ConsumerConfig, topics ...string) *Consumer {
	initMetrics(config.ClientID)
	ctx, cancel := context.WithCancel(context.Background())
	return &Consumer{
		broker:  broker,
		groupID: groupID,
		topics:  topics,
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
		logger:  config.Logger.WithField("service", "consumer"),
	}
}

func (c *Consumer) Start() {
	c.connect()
}

func (c *Consumer) Stop() {
	c.cancel()
	c.RLock()
	group := c.group
	c.RUnlock()
	if group != nil {
		if err := group.Close(); err != nil {
			c.logger.WithError(err).Error("consumer group close error")
		}
	}
	c.wg.Wait()
}

// MarkOffset marks msg as processed. The next offset is stored, following
// the sarama convention.
func (c *Consumer) MarkOffset(topic string, partition int32, offset int64, metadata string) {
	c.RLock()
	defer c.RUnlock()
	if c.session == nil {
		return
	}
	c.session.MarkOffset(topic, partition, offset+1, metadata)
}

func (c *Consumer) HandleFunc(fn func(*Message) error) {
	c.handler = fn
}

// ErrorHandlerFunc registers fn for fatal connect and consume errors.
func (c *Consumer) ErrorHandlerFunc(fn func(err error)) {
	c.errorHandler = fn
}

func (c *Consumer) saramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_5_0_0
	cfg.Consumer.Return.Errors = true
	cfg.ClientID = c.config.ClientID
	cfg.ChannelBufferSize = c.config.BufferSize
	cfg.Consumer.Offsets.Initial = c.config.InitialOffset

	if c.config.SessionTimeout > 0 {
		cfg.Consumer.Group.Session.Timeout = c.config.SessionTimeout
	}
	if c.config.HeartbeatInterval > 0 {
		cfg.Consumer.Group.Heartbeat.Interval = c.config.HeartbeatInterval
	}
	if c.config.MaxProcessingTime > 0 {
		cfg.Consumer.MaxProcessingTime = c.config.MaxProcessingTime
	}
	return cfg
}

func (c *Consumer) fail(err error, msg string) {
	c.logger.WithError(err).Error(msg)
	if c.errorHandler != nil {
		c.errorHandler(err)
	}
}

func (c *Consumer) connect() {
	cfg := c.saramaConfig()

	var group sarama.ConsumerGroup
	err := c.config.Connect.DoContext(c.ctx, func(attempt int) error {
		c.logger.WithField("attempt", attempt).Info("connecting to kafka")
		var err error
		group, err = sarama.NewConsumerGroup(strings.Split(c.broker, ","), c.groupID, cfg)
		if err != nil {
			c.logger.WithError(err).Warn("connection to kafka failed")
		}
		return err
	})
	if err != nil {
		c.fail(err, "connection to kafka failed")
		return
	}

	c.logger.WithField("group_id", c.groupID).Info("connected to kafka")

	c.Lock()
	c.group = group
	c.Unlock()

	c.wg.Add(2)
	go c.consume()
	go c.errors()
}

func (c *Consumer) consume() {
	defer c.wg.Done()

	if c.handler == nil {
		c.logger.Error("handler function is not registered")
		return
	}

	handler := claimHandler{c: c}

	// Consume returns on every rebalance, so it runs in a loop until the
	// group is closed.
	for {
		err := c.config.Consume.DoContext(c.ctx, func(attempt int) error {
			c.logger.WithField("attempt", attempt).Debug("begin consume")
			err := c.group.Consume(c.ctx, c.topics, handler)
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return retry.Stop(err)
			}
			return err
		})

		if retry.Stopped(err) || c.ctx.Err() != nil {
			c.logger.Info("consumer group is stopped")
			return
		}
		if err != nil {
			c.fail(err, "consume error")
			return
		}
	}
}

func (c *Consumer) shouldCommit() bool {
	c.RLock()
	defer c.RUnlock()
	return c.config.Autocommit
}

func (c *Consumer) errors() {
	defer c.wg.Done()

	for err := range c.group.Errors() {
		// retriable, see https://kafka.apache.org/protocol#protocol_error_codes
		if errors.Is(err, sarama.ErrUnknownMemberId) || errors.Is(err, sarama.ErrRequestTimedOut) {
			c.logger.WithError(err).Warn("consumer client error")
			continue
		}
		c.logger.WithError(err).Error("consumer client error")
	}
}
