package stream

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tufitko/minmaxheap/pkg/command"
	"github.com/tufitko/minmaxheap/pkg/encoding/json"
	"github.com/tufitko/minmaxheap/pkg/heap"
	"github.com/tufitko/minmaxheap/pkg/logging"
)

type Executor interface {
	Execute(ctx context.Context, cmd command.Command) (command.Result, error)
}

// SimpleSender publishes replies. *Producer satisfies it.
type SimpleSender interface {
	Send(key string, mtype string, data []byte, meta ...map[string]string) error
}

// Reply is the body published for every consumed command. Exactly one of
// Result and Error is set.
type Reply struct {
	Type   string          `json:"type"`
	Result *command.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

// DecodeCommand reads the kind from the type header and the arguments from
// the JSON body. An empty body is allowed for argument-less kinds.
func DecodeCommand(msg *Message) (command.Command, error) {
	var cmd command.Command
	kind, err := command.ParseKind(msg.Type)
	if err != nil {
		return cmd, err
	}
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &cmd); err != nil {
			return cmd, errors.Wrapf(heap.ErrMalformedInput, "command body: %v", err)
		}
	}
	cmd.Kind = kind
	return cmd, command.CheckRemote(cmd)
}

// CommandHandler applies each message to executor and, when sender is set,
// publishes a Reply under ResultType(msg.Type) with the same key and meta.
// Rejected commands are answered, not retried. The returned error stops
// consumption and is reserved for cancellation and publish failures.
func CommandHandler(ctx context.Context, executor Executor, sender SimpleSender, logger logging.Logger) func(*Message) error {
	logger = logger.WithField("service", "command_handler")

	return func(msg *Message) error {
		log := logger.WithFields(logging.Fields{
			"key":          msg.Key,
			"message_type": msg.Type,
			"topic":        msg.Topic,
			"partition":    msg.Partition,
			"offset":       msg.Offset,
		})

		reply := Reply{Type: msg.Type}
		cmd, err := DecodeCommand(msg)
		if err == nil {
			var res command.Result
			if res, err = executor.Execute(ctx, cmd); err == nil {
				reply.Result = &res
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			log.WithError(err).Warn("command rejected")
			reply.Error = err.Error()
			reply.Reason = command.Reason(err)
		}

		if sender == nil {
			return nil
		}
		data, err := json.Marshal(reply)
		if err != nil {
			return errors.Wrap(err, "marshal reply")
		}
		return sender.Send(msg.Key, ResultType(msg.Type), data, msg.Meta)
	}
}
