package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/tufitko/minmaxheap/pkg/api"
	"github.com/tufitko/minmaxheap/pkg/command"
	"github.com/tufitko/minmaxheap/pkg/logging"
	"github.com/tufitko/minmaxheap/pkg/menu"
	"github.com/tufitko/minmaxheap/pkg/metric"
	"github.com/tufitko/minmaxheap/pkg/retry"
	"github.com/tufitko/minmaxheap/pkg/service"
	"github.com/tufitko/minmaxheap/pkg/stream"
)

const appName = "minmaxheap"

const (
	modeInteractive = "interactive"
	modeServe       = "serve"
)

var (
	mode           = flag.String("mode", modeInteractive, "Run mode: interactive or serve")
	input          = flag.String("input", "", "File of whitespace separated integers to build the heap from at startup")
	env            = flag.String("env", "prod", "Environment name, dev switches logs to text")
	logLevel       = flag.String("log-level", "info", "Log level")
	diagnosticAddr = flag.String("diagnostic-addr", ":7070", "Address for gathering metrics, state and pprof")
	apiAddr        = flag.String("api-addr", ":8080", "Address of the heap HTTP API")
	apiShutdown    = flag.Duration("api-shutdown-timeout", 5*time.Second, "Graceful shutdown timeout of the heap HTTP API")
	loadRetryCount = flag.Int("load-retry-count", 3, "Attempts to read a heap source file")
	loadRetryDelay = flag.Duration("load-retry-delay", time.Second, "Delay between heap source file attempts")
	repairedDelete = flag.Bool("repaired-delete", false, "Repair upward as well as downward after deleting an index")

	etcdHosts  = flag.String("etcd-hosts", "", "Comma separated etcd endpoints, enables leader election")
	etcdPrefix = flag.String("etcd-prefix", "/"+appName+"/leader", "Leader election key prefix")

	sourceBroker              = flag.String("source-broker", "", "Kafka broker of the command feed, empty disables it")
	topics                    = flag.String("topics", "heap-commands", "Comma separated command topics")
	consumerGroup             = flag.String("consumer-group", appName, "Name of consumer group")
	consumerBufferSize        = flag.Int("consumer-buffer-size", 10, "Max number of commands queued in consumer before it blocks")
	consumerMaxProcessingTime = flag.Duration("consumer-max-process-time", 300*time.Millisecond, "Command max processing time")
	resultBroker              = flag.String("result-broker", "", "Kafka broker for results, defaults to the source broker")
	resultTopic               = flag.String("result-topic", "", "Topic to publish command results to, empty disables publishing")
	connectRetryCount         = flag.Int("connect-retry-count", 3, "Number of max attempts for kafka connection")
	connectRetryDelay         = flag.Duration("connect-retry-delay", 5*time.Second, "Delay between kafka reconnects")
	producerRetryInterval     = flag.Duration("producer-retry-interval", time.Second, "Producer retry interval")
	producerRetryBuffSize     = flag.Int("producer-retry-buff-size", 100, "Producer retry buffer size")
	producerFlushBytes        = flag.Int("producer-flush-bytes", 0, "Producer flush bytes")
	producerFlushMessages     = flag.Int("producer-flush-messages", 0, "Producer flush messages")
	producerFlushFrequency    = flag.Duration("producer-flush-frequency", 0, "Producer flush frequency")
	producerFlushMaxMessages  = flag.Int("producer-flush-max-messages", 0, "Producer flush max messages")
	producerCompression       = flag.String("producer-compression", "none", "Producer compression codec")
	producerCompressionLevel  = flag.Int("producer-compression-level", 1, "Producer compression level")
)

func main() {
	flag.Parse()

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		logging.WithError(err).Fatal("invalid log level")
	}
	logging.SetLevel(level)

	switch *mode {
	case modeInteractive:
		runInteractive()
	case modeServe:
		runServe()
	default:
		logging.WithField("mode", *mode).Fatal("unknown mode")
	}
}

func dispatcherOptions(metrics *metric.HeapMetrics) []command.Option {
	opts := []command.Option{
		command.WithLogger(logging.DefaultLogger),
		command.WithLoadRetry(retry.New(*loadRetryCount, *loadRetryDelay, 2)),
		command.WithRepairedDelete(*repairedDelete),
	}
	if metrics != nil {
		opts = append(opts, command.WithMetrics(metrics))
	}
	return opts
}

func buildFromInput(ctx context.Context, d *command.Dispatcher) {
	if *input == "" {
		return
	}
	res, err := d.Execute(ctx, command.Command{Kind: command.Build, Path: *input})
	if err != nil {
		logging.WithError(err).WithField("path", *input).Fatal("failed to build heap from input")
	}
	logging.WithFields(logging.Fields{
		"path": *input,
		"len":  len(res.Elements),
	}).Info("heap built from input")
}

// runInteractive keeps stdout for the menu, logs go to stderr.
func runInteractive() {
	logging.SetOutput(os.Stderr)
	logging.SetFormatter(logging.FormatterText)

	ctx := context.Background()
	d := command.NewDispatcher(dispatcherOptions(nil)...)
	buildFromInput(ctx, d)

	if err := menu.New(os.Stdin, os.Stdout, d).Run(ctx); err != nil {
		logging.WithError(err).Fatal("menu failed")
	}
}

func runServe() {
	service.Init(appName, *env)

	metrics := metric.NewHeapMetrics(appName, metric.DefaultOperationDurationBuckets)
	metrics.MustRegister()

	d := command.NewDispatcher(dispatcherOptions(metrics)...)
	handler := api.NewHandler(d, logging.DefaultLogger)

	service.StartDiagnosticsServerWithConfig(*diagnosticAddr, service.DiagnosticServerConfig{
		StateHandler: handler.SnapshotHandler(),
	})

	var services []service.StartStopper
	if *etcdHosts != "" {
		services = append(services, leaderServices()...)
	}

	ctx, cancel := context.WithCancel(context.Background())
	services = append(services, service.StartStopFunc{
		StartFunc: func() { buildFromInput(ctx, d) },
		StopFunc:  cancel,
	})
	services = append(services, service.NewHTTPServer(*apiAddr, *apiShutdown, handler))
	if *sourceBroker != "" {
		services = append(services, streamServices(ctx, d)...)
	}

	service.Run(services...)
}

// leaderServices blocks startup until this replica leads and exits the
// process if the etcd session is lost afterwards.
func leaderServices() []service.StartStopper {
	identity, err := os.Hostname()
	if err != nil {
		identity = appName
	}
	leader, err := service.NewLeaderElection(strings.Split(*etcdHosts, ","), *etcdPrefix, identity, logging.DefaultLogger)
	if err != nil {
		logging.WithError(err).Fatal("failed to init leader election")
	}

	stopping := make(chan struct{})
	watch := service.StartStopFunc{
		StartFunc: func() {
			go func() {
				select {
				case <-leader.Done():
					logging.Fatal("leadership lost")
				case <-stopping:
				}
			}()
		},
		StopFunc: func() { close(stopping) },
	}
	return []service.StartStopper{leader, watch}
}

func streamServices(ctx context.Context, d *command.Dispatcher) []service.StartStopper {
	var services []service.StartStopper

	var sender stream.SimpleSender
	if *resultTopic != "" {
		broker := *resultBroker
		if broker == "" {
			broker = *sourceBroker
		}
		producer, err := stream.NewProducer(
			appName,
			broker,
			*resultTopic,
			retry.New(*connectRetryCount, *connectRetryDelay, 2),
			*producerRetryBuffSize,
			*producerRetryInterval,
			logging.DefaultLogger,
			stream.Flush(*producerFlushBytes, *producerFlushMessages, *producerFlushFrequency, *producerFlushMaxMessages),
			stream.Compress(*producerCompression, *producerCompressionLevel),
		)
		if err != nil {
			logging.WithError(err).Fatal("failed to create result producer")
		}
		producer.SetFallbackReadyFunc(service.SetReady)
		services = append(services, producer)
		sender = producer
	}

	consumerConfig := stream.NewConsumerConfig()
	consumerConfig.ClientID = appName
	consumerConfig.Logger = logging.DefaultLogger
	consumerConfig.Connect = retry.New(*connectRetryCount, *connectRetryDelay, 2)
	consumerConfig.BufferSize = *consumerBufferSize
	consumerConfig.InitialOffset = stream.OffsetNewest
	consumerConfig.MaxProcessingTime = *consumerMaxProcessingTime

	consumer := stream.NewConsumer(*sourceBroker, *consumerGroup, consumerConfig, strings.Split(*topics, ",")...)
	handle := stream.CommandHandler(ctx, d, sender, logging.DefaultLogger)
	consumer.HandleFunc(func(message *stream.Message) error {
		if err := handle(message); err != nil {
			return err
		}
		consumer.MarkOffset(message.Topic, message.Partition, message.Offset, "")
		return nil
	})
	consumer.ErrorHandlerFunc(func(err error) {
		logging.WithError(err).Error("command feed stopped")
		service.SetReady(false)
	})

	return append(services, consumer)
}
