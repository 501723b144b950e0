package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"goremoteid/internal/frame"
	"goremoteid/internal/logging"
	"goremoteid/internal/record"
	"goremoteid/pkg/remoteid"
)

// Application represents the main application
type Application struct {
	config     Config
	logger     *logrus.Logger
	decoder    *frame.Decoder
	writer     *record.Writer
	logRotator *logging.LogRotator
	auth       *AuthCollector
	stats      *statsCounter
	stdout     io.Writer
	wg         sync.WaitGroup
}

// NewApplication creates a new application instance
func NewApplication(config Config) *Application {
	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
		auth:   NewAuthCollector(logger),
		stats:  newStatsCounter(),
		stdout: os.Stdout,
	}
}

// Logger returns the application logger
func (app *Application) Logger() *logrus.Logger {
	return app.logger
}

// Statistics returns a snapshot of the processing counters
func (app *Application) Statistics() Statistics {
	return app.stats.snapshot()
}

// Start monitors the configured input until it ends or the process is
// interrupted
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Starting Remote ID monitor")

	input, err := app.openInput()
	if err != nil {
		return err
	}
	defer input.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.Monitor(ctx, input)
}

func (app *Application) openInput() (io.ReadCloser, error) {
	if app.config.Input == "" || app.config.Input == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(app.config.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return file, nil
}

// Monitor decodes the frame stream from r and writes a record per message
// to the rotated log. It returns when r is exhausted or ctx is done.
func (app *Application) Monitor(ctx context.Context, r io.Reader) error {
	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer app.shutdown(cancel)

	// Create data channel for raw input chunks
	dataChan := make(chan []byte, 100)
	readErr := make(chan error, 1)

	go func() {
		readErr <- app.readInput(ctx, r, dataChan)
	}()

	// Start log rotation
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.logRotator.Start(ctx)
	}()

	// Start statistics reporting
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.reportStatistics(ctx)
	}()

	app.logger.Info("All components started successfully")

	for {
		select {
		case <-ctx.Done():
			app.logger.Info("Received shutdown signal")
			return nil
		case data, ok := <-dataChan:
			if !ok {
				app.processFrames(app.decoder.Flush())
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				app.logger.Info("Input exhausted")
				return nil
			}

			frames, err := app.decoder.Decode(data)
			if err != nil {
				app.stats.overflow()
				app.logger.WithError(err).Warn("Dropped unterminated input")
			}
			app.processFrames(frames)
		}
	}
}

// initializeComponents initializes all application components
func (app *Application) initializeComponents() error {
	var err error

	app.decoder = frame.NewDecoder(app.logger)

	app.logRotator, err = logging.NewLogRotator(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize log rotator: %w", err)
	}

	if app.config.MaxLogDays > 0 {
		if err := app.logRotator.CleanupOldLogs(app.config.MaxLogDays); err != nil {
			app.logger.WithError(err).Warn("Failed to clean up old logs")
		}
	}

	var sink record.Sink = app.logRotator
	if app.config.Echo {
		sink = echoSink{rotator: app.logRotator, stdout: app.stdout}
	}
	app.writer = record.NewWriter(sink, app.logger)

	return nil
}

// readInput forwards chunks of r to dataChan and closes it at end of input
func (app *Application) readInput(ctx context.Context, r io.Reader, dataChan chan<- []byte) error {
	defer close(dataChan)

	for {
		buf := make([]byte, DefaultReadSize)
		n, err := r.Read(buf)
		if n > 0 {
			select {
			case dataChan <- buf[:n]:
			case <-ctx.Done():
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// processFrames records each frame and feeds authentication pages to the
// collector
func (app *Application) processFrames(frames []*frame.Frame) {
	for _, f := range frames {
		app.stats.record(f)

		if _, err := app.writer.WriteFrame(f); err != nil {
			app.logger.WithError(err).Error("Failed to write record")
		}

		for _, element := range f.Expand() {
			if !element.IsValid() {
				continue
			}
			page, ok := element.Message.Payload().(remoteid.Authentication)
			if !ok {
				continue
			}
			msg, complete, err := app.auth.Add(page)
			if err != nil {
				app.logger.WithError(err).Debug("Dropped authentication page")
				continue
			}
			if complete {
				app.stats.authComplete()
				app.logger.WithFields(logrus.Fields{
					"auth_type": msg.Type.String(),
					"pages":     msg.Pages,
					"length":    len(msg.Data),
					"timestamp": msg.Timestamp.Time().Format(time.RFC3339),
				}).Info("Authentication message complete")
			}
		}
	}
}

// reportStatistics reports processing statistics periodically
func (app *Application) reportStatistics(ctx context.Context) {
	interval := app.config.StatsInterval
	if interval <= 0 {
		interval = DefaultStatsInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.logStatistics()
		}
	}
}

func (app *Application) logStatistics() {
	stats := app.stats.snapshot()

	fields := logrus.Fields{
		"frames":        stats.Frames,
		"packs":         stats.Packs,
		"messages":      stats.Messages,
		"errors":        stats.Errors,
		"dropped_lines": stats.Dropped,
		"auth_complete": stats.AuthComplete,
		"auth_pending":  app.auth.Pending(),
	}
	for kind, n := range stats.ByKind {
		fields[kind.String()] = n
	}
	app.logger.WithFields(fields).Info("Remote ID processing statistics")
}

// shutdown gracefully shuts down the application
func (app *Application) shutdown(cancel context.CancelFunc) {
	app.logger.Info("Shutting down application")
	cancel()

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		app.logger.Info("All goroutines finished")
	case <-time.After(5 * time.Second):
		app.logger.Warn("Shutdown timeout, forcing exit")
	}

	app.logStatistics()

	if app.logRotator != nil {
		app.logRotator.Close()
	}

	app.logger.Info("Shutdown completed")
}

// echoSink writes records to the rotated log and to stdout
type echoSink struct {
	rotator *logging.LogRotator
	stdout  io.Writer
}

func (s echoSink) GetWriter() (io.Writer, error) {
	w, err := s.rotator.GetWriter()
	if err != nil {
		return nil, err
	}
	return io.MultiWriter(w, s.stdout), nil
}
