package observability

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/config"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/logging"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap/zapcore"
)

const logShipQueueSize = 1024

// InitBetterStackLogger returns a stdout JSON logger that also ships entries at
// or above BETTERSTACK_MIN_LEVEL to Better Stack in NDJSON batches.
func InitBetterStackLogger(cfg config.Config, baseLogger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if baseLogger == nil {
		baseLogger = logging.NewJSON(cfg.LogLevel)
	}

	if !cfg.BetterStackEnabled {
		baseLogger.Info("betterstack disabled", "reason", "BETTERSTACK_ENABLED=false")
		return baseLogger, func(context.Context) error { return nil }, nil
	}

	endpoint := normalizeEndpoint(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("betterstack endpoint cannot be empty")
	}

	sink := newLogSink(logSinkConfig{
		endpoint:      endpoint,
		token:         strings.TrimSpace(cfg.BetterStackToken),
		timeout:       cfg.BetterStackTimeout,
		batchSize:     cfg.BetterStackBatchSize,
		flushInterval: cfg.BetterStackFlushInterval,
		breaker: resilience.Settings{
			FailureThreshold: cfg.BetterStackFailureCount,
			OpenTimeout:      cfg.BetterStackOpenTimeout,
			OnStateChange: func(from, to resilience.State) {
				fmt.Fprintf(os.Stderr, "betterstack circuit %s -> %s\n", from, to)
			},
		},
	})

	shipCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(logging.EncoderConfig()),
		zapcore.AddSync(sink),
		cfg.BetterStackMinLevel,
	)
	logger := logging.NewJSON(cfg.LogLevel, shipCore)
	logger.Info("betterstack enabled",
		"endpoint", endpoint,
		"min_level", cfg.BetterStackMinLevel.String(),
		"batch_size", sink.batchSize,
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
	)

	return logger, func(ctx context.Context) error {
		if ctx == nil {
			ctx = context.Background()
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
		}
		if err := sink.Close(ctx); err != nil {
			return fmt.Errorf("drain betterstack queue: %w", err)
		}
		if err := logger.Sync(); err != nil && !isIgnorableSyncError(err) {
			return err
		}
		return nil
	}, nil
}

func normalizeEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

type logSinkConfig struct {
	endpoint      string
	token         string
	timeout       time.Duration
	batchSize     int
	flushInterval time.Duration
	breaker       resilience.Settings
}

// logSink is a zapcore.WriteSyncer that queues encoded entries and posts them
// from a single goroutine. Writes never block the caller: a full queue or an
// open breaker drops lines and counts them.
type logSink struct {
	endpoint      string
	token         string
	client        *http.Client
	breaker       *resilience.Breaker
	batchSize     int
	flushInterval time.Duration

	queue     chan []byte
	queueMu   sync.RWMutex
	closeOnce sync.Once
	closed    atomic.Bool
	done      chan struct{}
	dropped   atomic.Uint64
}

func newLogSink(cfg logSinkConfig) *logSink {
	if cfg.timeout <= 0 {
		cfg.timeout = 3 * time.Second
	}
	if cfg.batchSize < 1 {
		cfg.batchSize = 50
	}
	if cfg.flushInterval <= 0 {
		cfg.flushInterval = 2 * time.Second
	}

	s := &logSink{
		endpoint:      cfg.endpoint,
		token:         cfg.token,
		client:        &http.Client{Timeout: cfg.timeout},
		breaker:       resilience.NewBreaker(cfg.breaker),
		batchSize:     cfg.batchSize,
		flushInterval: cfg.flushInterval,
		queue:         make(chan []byte, logShipQueueSize),
		done:          make(chan struct{}),
	}
	go s.run()

	return s
}

func (s *logSink) Write(p []byte) (int, error) {
	line := bytes.TrimSpace(p)
	if len(line) == 0 {
		return len(p), nil
	}

	s.queueMu.RLock()
	defer s.queueMu.RUnlock()
	if s.closed.Load() {
		return len(p), nil
	}

	// zap reuses its buffer once Write returns.
	copied := make([]byte, len(line))
	copy(copied, line)

	select {
	case s.queue <- copied:
	default:
		s.drop(1, "queue full")
	}
	return len(p), nil
}

func (s *logSink) Sync() error {
	return nil
}

func (s *logSink) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	batch := make([][]byte, 0, s.batchSize)
	for {
		select {
		case line, ok := <-s.queue:
			if !ok {
				s.flush(batch)
				return
			}
			batch = append(batch, line)
			if len(batch) >= s.batchSize {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *logSink) flush(batch [][]byte) {
	if len(batch) == 0 {
		return
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for _, line := range batch {
		_, _ = buf.Write(line)
		_ = buf.WriteByte('\n')
	}

	err := s.breaker.Do(func() error { return s.post(buf.B) })
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		s.drop(len(batch), "circuit open")
	case err != nil:
		fmt.Fprintf(os.Stderr, "betterstack ship failed lines=%d: %v\n", len(batch), err)
	}
}

func (s *logSink) post(body []byte) error {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status=%d", resp.StatusCode)
	}
	return nil
}

func (s *logSink) drop(n int, reason string) {
	total := s.dropped.Add(uint64(n))
	if total == uint64(n) || total/100 != (total-uint64(n))/100 {
		fmt.Fprintf(os.Stderr, "betterstack %s; dropped logs=%d\n", reason, total)
	}
}

// Close stops accepting lines and waits for the queue to drain.
func (s *logSink) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.queueMu.Lock()
		s.closed.Store(true)
		close(s.queue)
		s.queueMu.Unlock()
	})

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isIgnorableSyncError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bad file descriptor") || strings.Contains(msg, "invalid argument")
}
