// README: Kafka consumer with manual offset commits, exposed as a message channel.
package kafkaclient

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"lambdatrip/internal/logger"
)

const readBackoff = time.Second

// Reader is the subset of *kafka.Reader the consumer needs. FetchMessage does
// not commit, unlike ReadMessage on a group reader.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Broker  string
	Topic   string
	GroupID string
}

// Consumer pumps messages from a Reader into a channel. Offsets are committed
// only through CommitOffset.
type Consumer struct {
	reader   Reader
	log      *logger.Logger
	messages chan kafka.Message
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewConsumer(cfg Config, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.Broker},
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		CommitInterval: 0,
		MinBytes:       10e3,
		MaxBytes:       10e6,
	})
	return NewConsumerWithReader(reader, log)
}

func NewConsumerWithReader(r Reader, log *logger.Logger) *Consumer {
	if log == nil {
		log = logger.Nop()
	}
	return &Consumer{
		reader:   r,
		log:      log.With("component", "kafkaclient.Consumer"),
		messages: make(chan kafka.Message),
		done:     make(chan struct{}),
	}
}

func (c *Consumer) Messages() <-chan kafka.Message {
	return c.messages
}

func (c *Consumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	c.log.Debug("committing offset", "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
	return c.reader.CommitMessages(ctx, msg)
}

// Start runs the read loop until ctx is cancelled, Stop is called or the reader closes.
// The Messages channel is closed when the loop exits.
func (c *Consumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(c.messages)

		c.log.Info("consumer loop started")
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.done:
				return
			default:
			}

			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					c.log.Info("consumer loop stopped", "reason", err)
					return
				}
				c.log.Warn("fetch message failed", "error", err)
				select {
				case <-time.After(readBackoff):
				case <-ctx.Done():
					return
				case <-c.done:
					return
				}
				continue
			}

			select {
			case c.messages <- msg:
			case <-ctx.Done():
				return
			case <-c.done:
				return
			}
		}
	}()
}

// Stop ends the read loop and closes the reader. Safe to call more than once.
func (c *Consumer) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		if err := c.reader.Close(); err != nil {
			c.log.Warn("close reader failed", "error", err)
		}
		c.wg.Wait()
	})
}
