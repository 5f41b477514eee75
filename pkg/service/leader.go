package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/concurrency"

	"github.com/tufitko/minmaxheap/pkg/logging"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultSessionTTL  = 10
)

// LeaderElection blocks Start until this replica owns the election prefix,
// so only one process serves the heap at a time.
type LeaderElection struct {
	client   *clientv3.Client
	session  *concurrency.Session
	election *concurrency.Election
	identity string
	logger   logging.Logger
}

func NewLeaderElection(etcdHosts []string, etcdPrefix, identity string, logger logging.Logger) (*LeaderElection, error) {
	etcd, err := clientv3.New(clientv3.Config{
		Endpoints:   etcdHosts,
		DialTimeout: defaultDialTimeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "etcd client")
	}

	s, err := concurrency.NewSession(etcd, concurrency.WithTTL(defaultSessionTTL))
	if err != nil {
		_ = etcd.Close()
		return nil, errors.Wrap(err, "etcd session")
	}

	return &LeaderElection{
		client:   etcd,
		session:  s,
		election: concurrency.NewElection(s, etcdPrefix),
		identity: identity,
		logger:   logger.WithField("service", "leader_election"),
	}, nil
}

func (l *LeaderElection) Start() {
	l.logger.WithField("identity", l.identity).Info("wait leader election")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	err := l.election.Campaign(ctx, l.identity)
	if errors.Is(ctx.Err(), context.Canceled) {
		if err := l.close(); err != nil {
			l.logger.WithError(err).Error("failed to close leader election")
		}
		l.logger.Info("leader election was aborted, app wont start")
		os.Exit(0)
	}
	if err != nil {
		l.logger.WithError(err).Fatal("failed to elect leader")
	}

	l.logger.WithField("identity", l.identity).Info("i am leader")
}

// Done is closed when the etcd session expires and leadership is lost.
func (l *LeaderElection) Done() <-chan struct{} {
	return l.session.Done()
}

func (l *LeaderElection) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultDialTimeout)
	defer cancel()
	if err := l.election.Resign(ctx); err != nil {
		l.logger.WithError(err).Warn("failed to resign leadership")
	}
	if err := l.close(); err != nil {
		l.logger.WithError(err).Error("failed to stop leader election")
	}
}

func (l *LeaderElection) close() error {
	if err := l.session.Close(); err != nil {
		return errors.Wrap(err, "session")
	}
	return errors.Wrap(l.client.Close(), "client")
}
