// README: Generic iterator turning storage notifications into loaded objects.
package pipeline

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"

	"lambdatrip/internal/logger"
)

// MessageSource is a channel of notification messages with manual commits.
type MessageSource interface {
	Messages() <-chan kafka.Message
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// LoaderFunc loads and decodes the object a notification refers to.
type LoaderFunc[T any] func(ctx context.Context, bucket, key string) (T, error)

// Fetched pairs a loaded object with the message that announced it.
// The consumer commits Message once it is done with Data.
type Fetched[T any] struct {
	Data    T
	Bucket  string
	Key     string
	Event   notification.Event
	Message kafka.Message
}

// Iterator decodes notifications and loads the referenced objects.
// Undecodable or filtered-out messages are committed and skipped; load
// failures are skipped without a commit.
type Iterator[T any] struct {
	source MessageSource
	loader LoaderFunc[T]
	accept func(key string) bool
	log    *logger.Logger
}

func NewIterator[T any](source MessageSource, loader LoaderFunc[T], accept func(key string) bool, log *logger.Logger) *Iterator[T] {
	if accept == nil {
		accept = func(string) bool { return true }
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Iterator[T]{source: source, loader: loader, accept: accept, log: log}
}

// Objects streams loaded objects until the source channel closes or ctx ends.
func (it *Iterator[T]) Objects(ctx context.Context) <-chan *Fetched[T] {
	out := make(chan *Fetched[T])
	go func() {
		defer close(out)
		for {
			var msg kafka.Message
			var ok bool
			select {
			case <-ctx.Done():
				return
			case msg, ok = <-it.source.Messages():
				if !ok {
					return
				}
			}

			item, skip := it.load(ctx, msg)
			if skip {
				continue
			}
			select {
			case out <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (it *Iterator[T]) load(ctx context.Context, msg kafka.Message) (*Fetched[T], bool) {
	var info notification.Info
	if err := json.Unmarshal(msg.Value, &info); err != nil || len(info.Records) == 0 {
		it.log.Warn("dropping undecodable notification", "offset", msg.Offset, "error", err)
		it.commit(ctx, msg)
		return nil, true
	}

	event := info.Records[0]
	key, err := url.QueryUnescape(event.S3.Object.Key)
	if err != nil {
		it.log.Warn("dropping notification with bad key", "key", event.S3.Object.Key, "error", err)
		it.commit(ctx, msg)
		return nil, true
	}
	if !it.accept(key) {
		it.commit(ctx, msg)
		return nil, true
	}

	data, err := it.loader(ctx, event.S3.Bucket.Name, key)
	if err != nil {
		it.log.Error("load object failed", "bucket", event.S3.Bucket.Name, "key", key, "error", err)
		return nil, true
	}
	return &Fetched[T]{Data: data, Bucket: event.S3.Bucket.Name, Key: key, Event: event, Message: msg}, false
}

func (it *Iterator[T]) commit(ctx context.Context, msg kafka.Message) {
	if err := it.source.CommitOffset(ctx, msg); err != nil {
		it.log.Warn("commit offset failed", "offset", msg.Offset, "error", err)
	}
}
