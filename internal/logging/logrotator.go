package logging

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Record log file naming
const (
	FilePrefix   = "remoteid_"
	FileSuffix   = ".log"
	GzipSuffix   = ".gz"
	DateLayout   = "2006-01-02"
	RotatePeriod = time.Minute // Date check interval
)

// LogRotator writes record logs to one file per day and gzips the
// previous day's file on rotation
type LogRotator struct {
	logDir      string
	useUTC      bool
	logger      *logrus.Logger
	currentFile *os.File
	currentDate string
	mutex       sync.RWMutex
	compressing sync.WaitGroup
	now         func() time.Time
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewLogRotator creates a new log rotator
func NewLogRotator(logDir string, useUTC bool, logger *logrus.Logger) (*LogRotator, error) {
	return newLogRotator(logDir, useUTC, logger, time.Now)
}

// newLogRotator is NewLogRotator with the clock used for file dates
func newLogRotator(logDir string, useUTC bool, logger *logrus.Logger, now func() time.Time) (*LogRotator, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	rotator := &LogRotator{
		logDir: logDir,
		useUTC: useUTC,
		logger: logger,
		now:    now,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := rotator.rotateLogFile(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize log file: %w", err)
	}

	return rotator, nil
}

// Start runs the rotation scheduler until ctx is done or the rotator closes
func (r *LogRotator) Start(ctx context.Context) {
	r.logger.Info("Starting log rotator")

	ticker := time.NewTicker(RotatePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Log rotator stopping")
			return
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.checkRotation()
		}
	}
}

func (r *LogRotator) currentTime() time.Time {
	if r.useUTC {
		return r.now().UTC()
	}
	return r.now()
}

// checkRotation rotates when the date changed since the file was opened
func (r *LogRotator) checkRotation() {
	currentDate := r.currentTime().Format(DateLayout)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.currentDate != currentDate {
		r.logger.WithFields(logrus.Fields{
			"old_date": r.currentDate,
			"new_date": currentDate,
		}).Info("Rotating record log")

		if err := r.rotateLogFile(); err != nil {
			r.logger.WithError(err).Error("Failed to rotate log file")
		}
	}
}

// rotateLogFile closes the current file, schedules its compression and
// opens the file for today. Callers hold the write lock.
func (r *LogRotator) rotateLogFile() error {
	newDate := r.currentTime().Format(DateLayout)

	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			r.logger.WithError(err).Error("Failed to close old log file")
		}
		r.currentFile = nil

		if r.currentDate != newDate {
			r.compressing.Add(1)
			go func(date string) {
				defer r.compressing.Done()
				r.compressLogFile(date)
			}(r.currentDate)
		}
	}

	path := r.logPath(newDate)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file %s: %w", path, err)
	}

	r.currentFile = file
	r.currentDate = newDate

	r.logger.WithField("file", path).Info("Created new log file")

	return nil
}

func (r *LogRotator) logPath(date string) string {
	return filepath.Join(r.logDir, FilePrefix+date+FileSuffix)
}

// compressLogFile gzips the log file for date and removes the original
func (r *LogRotator) compressLogFile(date string) {
	logFile := r.logPath(date)
	gzipFile := logFile + GzipSuffix

	r.logger.WithFields(logrus.Fields{
		"source": logFile,
		"target": gzipFile,
	}).Info("Compressing log file")

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		r.logger.WithField("file", logFile).Debug("Log file doesn't exist, skipping compression")
		return
	}

	if err := compressFile(logFile, gzipFile); err != nil {
		r.logger.WithError(err).WithField("file", logFile).Error("Failed to compress log file")
		return
	}

	if err := os.Remove(logFile); err != nil {
		r.logger.WithError(err).WithField("file", logFile).Error("Failed to remove original log file")
		return
	}

	r.logger.WithField("file", gzipFile).Info("Log file compressed successfully")
}

// GetWriter returns the rotator itself. Writes always go to the file for
// the current date, even across a rotation.
func (r *LogRotator) GetWriter() (io.Writer, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.currentFile == nil {
		return nil, fmt.Errorf("no current log file")
	}

	return r, nil
}

// Write appends p to the current log file
func (r *LogRotator) Write(p []byte) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.currentFile == nil {
		return 0, fmt.Errorf("no current log file")
	}
	return r.currentFile.Write(p)
}

// Close stops the scheduler, closes the current file and waits for pending
// compressions
func (r *LogRotator) Close() error {
	r.logger.Info("Closing log rotator")

	r.cancel()

	r.mutex.Lock()
	var err error
	if r.currentFile != nil {
		if err = r.currentFile.Close(); err != nil {
			r.logger.WithError(err).Error("Failed to close current log file")
		}
		r.currentFile = nil
	}
	r.mutex.Unlock()

	r.compressing.Wait()
	return err
}

// GetCurrentLogFile returns the current log file path
func (r *LogRotator) GetCurrentLogFile() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.currentDate == "" {
		return ""
	}

	return r.logPath(r.currentDate)
}

// GetLogFiles returns all record log files, compressed ones included
func (r *LogRotator) GetLogFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.logDir, FilePrefix+"*"+FileSuffix+"*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list log files: %w", err)
	}

	return files, nil
}

// CleanupOldLogs removes log files whose date is older than maxDays
func (r *LogRotator) CleanupOldLogs(maxDays int) error {
	if maxDays <= 0 {
		return fmt.Errorf("maxDays must be positive")
	}

	files, err := r.GetLogFiles()
	if err != nil {
		return fmt.Errorf("failed to get log files: %w", err)
	}

	cutoff := r.currentTime().AddDate(0, 0, -maxDays)
	current := r.GetCurrentLogFile()

	removed := 0
	for _, file := range files {
		if file == current {
			continue
		}

		fileTime, ok := r.fileDate(file)
		if !ok {
			info, err := os.Stat(file)
			if err != nil {
				r.logger.WithError(err).WithField("file", file).Warn("Failed to stat log file")
				continue
			}
			fileTime = info.ModTime()
		}

		if fileTime.Before(cutoff) {
			if err := os.Remove(file); err != nil {
				r.logger.WithError(err).WithField("file", file).Error("Failed to remove old log file")
			} else {
				r.logger.WithField("file", file).Info("Removed old log file")
				removed++
			}
		}
	}

	r.logger.WithField("count", removed).Info("Cleaned up old log files")
	return nil
}

// fileDate parses the date out of a record log file name
func (r *LogRotator) fileDate(path string) (time.Time, bool) {
	name := strings.TrimSuffix(filepath.Base(path), GzipSuffix)
	name = strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), FileSuffix)

	loc := time.Local
	if r.useUTC {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, name, loc)
	return t, err == nil
}

func compressFile(source, target string) error {
	src, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create compressed file: %w", err)
	}
	defer dst.Close()

	gzWriter := gzip.NewWriter(dst)
	gzWriter.Name = filepath.Base(source)
	gzWriter.ModTime = time.Now()

	if _, err := io.Copy(gzWriter, src); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to copy data: %w", err)
	}

	// Close gzip writer to flush data
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return dst.Close()
}
