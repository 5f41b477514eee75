package stream

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"

	"github.com/tufitko/minmaxheap/pkg/encoding/json"
	"github.com/tufitko/minmaxheap/pkg/logging"
	"github.com/tufitko/minmaxheap/pkg/retry"
)

const (
	defaultCompressionLevel   = 1
	producerFailedMessagesDir = `/tmp/minmaxheap_failed_results`
)

// Producer publishes command results. Failed sends are queued and retried
// in the background until Stop, after which they are dumped to disk.
type Producer struct {
	sp         sarama.SyncProducer
	topic      string
	logger     logging.Logger
	dumpDir    string
	onReady    func(ready bool)
	pending    chan *sarama.ProducerMessage
	retryDelay time.Duration
	wg         sync.WaitGroup
	mu         sync.RWMutex
	closed     bool
}

// ProducerOption tunes the sarama producer config.
type ProducerOption func(*sarama.Config)

// Flush sets the batching thresholds. Zero values keep sarama's defaults.
func Flush(bytes int, messages int, freq time.Duration, maxMessages int) ProducerOption {
	return func(cfg *sarama.Config) {
		flush := &cfg.Producer.Flush
		flush.Bytes, flush.Messages, flush.Frequency, flush.MaxMessages = bytes, messages, freq, maxMessages
	}
}

// Compress selects a codec by name, e.g. "gzip" or "zstd". Unknown names
// keep the default.
func Compress(codec string, level int) ProducerOption {
	for _, c := range []sarama.CompressionCodec{
		sarama.CompressionNone,
		sarama.CompressionGZIP,
		sarama.CompressionSnappy,
		sarama.CompressionLZ4,
		sarama.CompressionZSTD,
	} {
		if c.String() != codec {
			continue
		}
		return func(cfg *sarama.Config) {
			cfg.Producer.Compression = c
			cfg.Producer.CompressionLevel = level
		}
	}
	return func(*sarama.Config) {}
}

func producerConfig(appName string, opts []ProducerOption) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = appName
	cfg.Version = sarama.V2_5_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Compression = sarama.CompressionZSTD
	cfg.Producer.CompressionLevel = defaultCompressionLevel
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// NewProducer dials brokers (comma separated) under the connect policy and
// returns a producer publishing to topic. Start must be called before Send.
func NewProducer(
	appName string,
	brokers string,
	topic string,
	connect retry.Retry,
	retryBufferSize int,
	retryDelay time.Duration,
	logger logging.Logger,
	opts ...ProducerOption,
) (*Producer, error) {
	logger = logger.WithFields(logging.Fields{"service": "producer", "topic": topic})
	initMetrics(appName)

	cfg := producerConfig(appName, opts)
	var sp sarama.SyncProducer
	err := connect.Do(func(attempt int) (err error) {
		if sp, err = sarama.NewSyncProducer(strings.Split(brokers, ","), cfg); err != nil {
			logger.WithError(err).WithField("attempt", attempt).Warn("kafka producer dial failed")
		}
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "dial kafka %s", brokers)
	}
	logger.Info("kafka producer connected")

	return newProducer(sp, topic, retryBufferSize, retryDelay, logger), nil
}

func newProducer(sp sarama.SyncProducer, topic string, retryBufferSize int, retryDelay time.Duration, logger logging.Logger) *Producer {
	return &Producer{
		sp:         sp,
		topic:      topic,
		logger:     logger,
		dumpDir:    producerFailedMessagesDir,
		pending:    make(chan *sarama.ProducerMessage, retryBufferSize),
		retryDelay: retryDelay,
	}
}

// SetFailedMessagesDir changes where undeliverable messages are dumped.
func (p *Producer) SetFailedMessagesDir(path string) {
	p.dumpDir = path
}

// SetFallbackReadyFunc is called with false when a send fails and with true
// once the retry queue is drained.
func (p *Producer) SetFallbackReadyFunc(fn func(ready bool)) {
	p.onReady = fn
}

// Send publishes data under the given type. The key picks the partition. A
// failed message is retried in the background and the error is returned.
func (p *Producer) Send(key string, mtype string, data []byte, meta ...map[string]string) error {
	start := time.Now()
	resultSizeBytes.WithLabelValues(mtype, p.topic).Observe(float64(len(data)))
	defer func() {
		resultDurationSeconds.WithLabelValues(mtype, p.topic).Observe(time.Since(start).Seconds())
	}()

	log := p.logger.WithFields(logging.Fields{
		"key":            key,
		"message_type":   mtype,
		"content_length": len(data),
	})

	msg := p.buildMessage(sarama.StringEncoder(key), mtype, data, meta)
	if _, _, err := p.sp.SendMessage(msg); err != nil {
		log.WithError(err).Warn("send failed")
		p.setReady(false)
		p.fail(msg, log)
		return errors.Wrap(err, "send message error")
	}
	log.Debug("message sent")
	return nil
}

func (p *Producer) buildMessage(key sarama.Encoder, mtype string, data []byte, meta []map[string]string) *sarama.ProducerMessage {
	headers := []sarama.RecordHeader{
		{Key: []byte(messageTypeKey), Value: []byte(mtype)},
		MetaStreamSendTimestamp(),
	}
	if len(meta) == 1 {
		headers = append(headers, MetaToHeaders(meta[0])...)
	}

	return &sarama.ProducerMessage{
		Topic:    p.topic,
		Key:      key,
		Value:    sarama.ByteEncoder(data),
		Headers:  headers,
		Metadata: mtype,
	}
}

// fail queues msg for another attempt, or dumps it once the producer is
// stopped. The read lock keeps Stop from closing the queue underneath.
func (p *Producer) fail(msg *sarama.ProducerMessage, log logging.Logger) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.closed {
		p.pending <- msg
		return
	}
	if err := p.dump(msg); err != nil {
		log.WithError(err).Error("error writing message to disk")
	}
}

func (p *Producer) setReady(ready bool) {
	if p.onReady != nil {
		p.onReady(ready)
	}
}

func (p *Producer) isClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// Start starts the retry loop.
func (p *Producer) Start() {
	p.wg.Add(1)
	go p.resendLoop()
}

// Stop drains the retry loop and closes the kafka producer.
func (p *Producer) Stop() {
	p.mu.Lock()
	p.closed = true
	close(p.pending)
	p.mu.Unlock()

	p.wg.Wait()
	if err := p.sp.Close(); err != nil {
		p.logger.WithError(err).Error("close producer error")
	}
}

func (p *Producer) resendLoop() {
	defer p.wg.Done()
	for msg := range p.pending {
		p.resend(msg)
		if len(p.pending) == 0 && !p.isClosed() {
			p.setReady(true)
		}
	}
}

// resend retries msg until it is delivered or the producer is stopped.
func (p *Producer) resend(msg *sarama.ProducerMessage) {
	log := p.logger.WithFields(logging.Fields{
		"key":            msg.Key,
		"message_type":   msg.Metadata,
		"content_length": msg.Value.Length(),
	})
	for {
		_, _, err := p.sp.SendMessage(msg)
		if err == nil {
			log.Info("message sent after retry")
			return
		}
		log.WithError(err).Error("send message error on retry")
		if p.isClosed() {
			if err := p.dump(msg); err != nil {
				log.WithError(err).Error("error writing message to disk")
			}
			return
		}
		time.Sleep(p.retryDelay)
	}
}

// dump writes msg as JSON into the dump directory.
func (p *Producer) dump(msg *sarama.ProducerMessage) error {
	if err := os.MkdirAll(p.dumpDir, os.ModePerm); err != nil {
		return errors.Wrapf(err, "create dir %s", p.dumpDir)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal message")
	}

	// e.g. insert-result_client-7_2026-10-16T19:38:40+07:00
	name := fmt.Sprintf("%s_%s_%s", msg.Metadata, msg.Key, time.Now().Format(time.RFC3339))
	return errors.Wrap(os.WriteFile(filepath.Join(p.dumpDir, name), data, 0o644), "write file")
}
