package stream

import (
	"strconv"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMessageType(t *testing.T) {
	headers := []*sarama.RecordHeader{
		{Key: []byte("meta_request_id"), Value: []byte("r1")},
		{Key: []byte("type"), Value: []byte("insert")},
		{Key: []byte("type"), Value: []byte("delete")},
	}
	assert.Equal(t, "insert", GetMessageType(headers))
	assert.Equal(t, "", GetMessageType(nil))
}

func TestGetMessageMeta(t *testing.T) {
	headers := []*sarama.RecordHeader{
		{Key: []byte("meta_k"), Value: []byte("v")},
		{Key: []byte("key"), Value: []byte("value")},
		{Key: []byte("type"), Value: []byte("insert")},
	}
	meta := GetMessageMeta(headers)

	require.Len(t, meta, 1)
	assert.Equal(t, "v", meta["k"])
	assert.Empty(t, GetMessageMeta(nil))
}

func TestMetaToHeaders(t *testing.T) {
	h := MetaToHeaders(map[string]string{MetaKeyRequestId: "r1", "client": "c7"})

	require.Len(t, h, 2)
	assert.Equal(t, "meta_client", string(h[0].Key))
	assert.Equal(t, "c7", string(h[0].Value))
	assert.Equal(t, "meta_request_id", string(h[1].Key))
	assert.Equal(t, "r1", string(h[1].Value))
}

func TestMetaStreamSendTimestamp(t *testing.T) {
	before := time.Now().UnixMilli()
	h := MetaStreamSendTimestamp()
	assert.Equal(t, "meta_stream_send_unixtime", string(h.Key))

	ms, err := strconv.ParseInt(string(h.Value), 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ms, before)
}

func TestResultType(t *testing.T) {
	assert.Equal(t, "extract-max-result", ResultType("extract-max"))
}
