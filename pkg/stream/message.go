package stream

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Shopify/sarama"
)

// Header keys. The command kind travels in "type"; request metadata travels
// in "meta_" prefixed headers and is echoed back on the reply.
const (
	messageTypeKey = "type"
	metaPrefix     = "meta_"
	resultSuffix   = "-result"

	MetaKeyStreamSendUnixTime = "stream_send_unixtime"
	MetaKeyRequestId          = "request_id"
)

// Message is one consumed record. Type carries the command kind and Data its
// JSON arguments.
type Message struct {
	Key       string
	Type      string
	Data      []byte
	Topic     string
	Partition int32
	Offset    int64
	Meta      map[string]string
}

func GetMessageType(headers []*sarama.RecordHeader) string {
	mtype, _ := splitHeaders(headers)
	return mtype
}

// GetMessageMeta collects meta_ prefixed headers with the prefix stripped.
func GetMessageMeta(headers []*sarama.RecordHeader) map[string]string {
	_, meta := splitHeaders(headers)
	return meta
}

func splitHeaders(headers []*sarama.RecordHeader) (mtype string, meta map[string]string) {
	meta = make(map[string]string)
	for _, h := range headers {
		key := string(h.Key)
		switch {
		case key == messageTypeKey:
			if mtype == "" {
				mtype = string(h.Value)
			}
		case strings.HasPrefix(key, metaPrefix):
			meta[key[len(metaPrefix):]] = string(h.Value)
		}
	}
	return mtype, meta
}

// MetaStreamSendTimestamp stamps a record with the send time in unix
// milliseconds.
func MetaStreamSendTimestamp() sarama.RecordHeader {
	return metaHeader(MetaKeyStreamSendUnixTime, strconv.FormatInt(time.Now().UnixMilli(), 10))
}

// MetaToHeaders turns meta into headers, ordered by key.
func MetaToHeaders(meta map[string]string) []sarama.RecordHeader {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]sarama.RecordHeader, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, metaHeader(k, meta[k]))
	}
	return headers
}

func metaHeader(key, value string) sarama.RecordHeader {
	return sarama.RecordHeader{Key: []byte(metaPrefix + key), Value: []byte(value)}
}

// ResultType is the message type a reply to a command of type mtype is
// published under.
func ResultType(mtype string) string {
	return mtype + resultSuffix
}
