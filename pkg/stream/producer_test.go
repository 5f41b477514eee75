package stream

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tufitko/minmaxheap/pkg/logging"
	"github.com/tufitko/minmaxheap/pkg/stream/mocks"
)

func initTestMetrics() {
	initMetrics("test")
}

func TestProducer_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	initTestMetrics()

	var mu sync.Mutex
	sent := make([]*sarama.ProducerMessage, 0)

	sp := mocks.NewMockSyncProducer(ctrl)
	sp.EXPECT().SendMessage(gomock.Any()).DoAndReturn(func(msg *sarama.ProducerMessage) (int32, int64, error) {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, msg)
		return 0, int64(len(sent)), nil
	}).Times(3)
	sp.EXPECT().Close().Times(1)

	p := newProducer(sp, "heap-results", 1, time.Millisecond, logging.NilLogger)
	p.Start()
	for _, key := range []string{"a", "b", "c"} {
		assert.NoError(t, p.Send(key, "insert-result", []byte(`{}`), map[string]string{MetaKeyRequestId: key}))
	}
	p.Stop()

	require.Len(t, sent, 3)
	for i, key := range []string{"a", "b", "c"} {
		msg := sent[i]
		assert.Equal(t, "heap-results", msg.Topic)
		assert.EqualValues(t, key, msg.Key)
		assert.Equal(t, "insert-result", msg.Metadata)

		headers := make([]*sarama.RecordHeader, 0, len(msg.Headers))
		for j := range msg.Headers {
			headers = append(headers, &msg.Headers[j])
		}
		assert.Equal(t, "insert-result", GetMessageType(headers))
		assert.Equal(t, key, GetMessageMeta(headers)[MetaKeyRequestId])
	}
}

func TestProducer_RetryRestoresReadiness(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	initTestMetrics()

	sp := mocks.NewMockSyncProducer(ctrl)
	gomock.InOrder(
		sp.EXPECT().SendMessage(gomock.Any()).Return(int32(0), int64(0), errors.New("broker down")),
		sp.EXPECT().SendMessage(gomock.Any()).Return(int32(0), int64(1), nil),
	)
	sp.EXPECT().Close().Times(1)

	readiness := make(chan bool, 2)
	p := newProducer(sp, "heap-results", 1, time.Millisecond, logging.NilLogger)
	p.SetFallbackReadyFunc(func(ready bool) { readiness <- ready })
	p.Start()

	assert.Error(t, p.Send("a", "insert-result", []byte(`{}`)))
	for _, want := range []bool{false, true} {
		select {
		case got := <-readiness:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("readiness %v was not reported", want)
		}
	}
	p.Stop()
}

func TestProducer_DumpsWhenClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	initTestMetrics()

	sp := mocks.NewMockSyncProducer(ctrl)
	sp.EXPECT().SendMessage(gomock.Any()).Return(int32(0), int64(0), errors.New("broker down"))
	sp.EXPECT().Close().Times(1)

	dir := t.TempDir()
	p := newProducer(sp, "heap-results", 1, time.Millisecond, logging.NilLogger)
	p.SetFailedMessagesDir(dir)
	p.Start()
	p.Stop()

	assert.Error(t, p.Send("k1", "extract-min-result", []byte(`{"value":1}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "extract-min-result_k1_"))
}

func TestCompress(t *testing.T) {
	cfg := sarama.NewConfig()
	Compress("gzip", 3)(cfg)
	assert.Equal(t, sarama.CompressionGZIP, cfg.Producer.Compression)
	assert.Equal(t, 3, cfg.Producer.CompressionLevel)

	cfg = sarama.NewConfig()
	Compress("brotli", 3)(cfg)
	assert.Equal(t, sarama.CompressionNone, cfg.Producer.Compression)
}
