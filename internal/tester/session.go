// Package tester replays payload files against a running rclusterd
// daemon over a single TCP connection and reports per-file latency.
package tester

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/okamoto/clusterd-tester/internal/config"
	"github.com/okamoto/clusterd-tester/pkg/protocol"
)

// Mode selects how chatty a replay run is.
type Mode string

const (
	// ModeFast reports statistics only.
	ModeFast Mode = "fast"
	// ModeDetailed additionally logs every file sent and every
	// successful server reply.
	ModeDetailed Mode = "detailed"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeFast || m == ModeDetailed
}

// Session replays payload files against a single rclusterd connection.
// The connection is established lazily on first use and reused until
// Close; exactly one connection is opened per run.
type Session struct {
	addr          string
	mode          Mode
	banner        string
	successPrefix string
	errorPrefix   string
	timeout       time.Duration
	recvSize      int
	logger        *zap.Logger

	// tr stays nil until the handshake has been validated.
	tr *transport
}

// NewSession creates a session for the given server address.
func NewSession(addr string, mode Mode, cfg *config.ClientConfig, logger *zap.Logger) *Session {
	return &Session{
		addr:          addr,
		mode:          mode,
		banner:        cfg.Banner,
		successPrefix: cfg.SuccessPrefix,
		errorPrefix:   cfg.ErrorPrefix,
		timeout:       cfg.ConnectTimeout,
		recvSize:      cfg.RecvBufferSize,
		logger:        logger,
	}
}

// Connect dials the server and validates its greeting banner. Calling
// it on an already connected session is a no-op, so a caller holding a
// session across several Replay calls keeps the original connection
// without re-validating.
func (s *Session) Connect() error {
	if s.tr != nil {
		return nil
	}

	tr, err := dial(s.addr, s.timeout)
	if err != nil {
		return err
	}

	greeting, err := tr.receive(s.recvSize)
	if err != nil {
		tr.close()
		return &ConnectError{Addr: s.addr, Err: err}
	}
	if err := protocol.ValidateBanner(greeting, s.banner); err != nil {
		tr.close()
		return err
	}

	s.tr = tr
	s.logger.Info("connected to server",
		zap.String("server", s.addr),
		zap.String("banner", greeting))
	return nil
}

// SendFile transmits one file and classifies the server's reply. The
// returned outcome covers the whole exchange, file read included, and
// is produced exactly once; failed transfers are never retried.
func (s *Session) SendFile(path string) (TransferOutcome, error) {
	start := time.Now()
	err := s.exchange(path)
	return TransferOutcome{
		File:    path,
		Elapsed: time.Since(start),
		Success: err == nil,
	}, err
}

func (s *Session) exchange(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := s.tr.sendAll(protocol.EncodePayload(data)); err != nil {
		return err
	}

	reply, err := s.tr.receive(s.recvSize)
	if err != nil {
		return err
	}

	status, err := protocol.Classify(reply, s.successPrefix, s.errorPrefix)
	if err != nil {
		return err
	}
	if status == protocol.StatusSuccess && s.mode == ModeDetailed {
		s.logger.Info("transfer succeeded",
			zap.String("file", path),
			zap.String("response", reply))
	}
	return nil
}

// Replay connects once, sends every file in the order given, and
// returns the run summary. Connection and handshake failures abort the
// run before any file is sent. Per-file faults are logged, counted as
// errors, and the loop continues on the same connection; a
// connection-level fault therefore shows up as errors on every
// remaining file rather than aborting the run.
func (s *Session) Replay(files []string) (*RunSummary, error) {
	if err := s.Connect(); err != nil {
		return nil, err
	}

	summary := &RunSummary{}
	for _, file := range files {
		if s.mode == ModeDetailed {
			s.logger.Info("sending file",
				zap.String("file", file),
				zap.String("server", s.addr))
		}

		out, err := s.SendFile(file)
		summary.Record(out)
		if err != nil {
			s.logger.Error("transfer failed",
				zap.String("file", file),
				zap.Duration("elapsed", out.Elapsed),
				zap.Error(err))
		}
	}

	s.logger.Info("run complete",
		zap.Int("files_processed", summary.Successes),
		zap.Int("errors", summary.Errors),
		zap.Duration("total_elapsed", summary.TotalElapsed))
	if avg, ok := summary.Average(); ok {
		s.logger.Info("average time per successful file",
			zap.Duration("average", avg))
	}

	return summary, nil
}

// Close releases the connection. It is idempotent and safe to call on
// a session that never connected; the caller defers it so the socket
// is released on every exit path.
func (s *Session) Close() error {
	if s.tr == nil {
		return nil
	}
	return s.tr.close()
}
