package tcp

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"juliapow/internal/domain"
	"juliapow/internal/usecases"
)

type Client struct {
	cfg           *Config
	solverUsecase usecases.SolverUsecase
	logger        Logger
}

type Config struct {
	ServerAddr     string
	Payload        string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	Connections    int
	RetryAttempts  int
	RetryDelay     time.Duration
	MaxMessageSize int32
}

type Logger interface {
	Error(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

func NewClient(
	cfg *Config,
	solverUsecase usecases.SolverUsecase,
	logger Logger,
) *Client {
	return &Client{
		cfg:           cfg,
		solverUsecase: solverUsecase,
		logger:        logger,
	}
}

// Start runs the configured number of concurrent notarization sessions and
// returns the last error seen, if any.
func (c *Client) Start(ctx context.Context) error {
	var (
		mu      sync.Mutex
		lastErr error
		wg      sync.WaitGroup
	)

	connections := max(c.cfg.Connections, 1)
	for i := 0; i < connections; i++ {
		wg.Add(1)
		go func(conn int) {
			defer wg.Done()

			hash, err := c.Notarize(ctx)
			if err != nil {
				c.logger.Error("session error", "connection", conn, "error", err)
				mu.Lock()
				lastErr = NewClientError("Start", err, "session failed")
				mu.Unlock()
				return
			}
			c.logger.Info("block notarized", "connection", conn, "hash", hash)
		}(i)
	}

	wg.Wait()
	return lastErr
}

// Notarize mines the configured payload against a fresh challenge and returns
// the block hash accepted by the server. Retryable failures are retried up to
// RetryAttempts times.
func (c *Client) Notarize(ctx context.Context) (string, error) {
	var err error
	for attempt := 0; attempt <= c.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			c.logger.Info("retrying connection",
				"attempt", attempt+1,
				"max_attempts", c.cfg.RetryAttempts+1)

			select {
			case <-time.After(c.cfg.RetryDelay):
			case <-ctx.Done():
				return "", NewClientError("Notarize", ctx.Err(), "cancelled while waiting to retry")
			}
		}

		var hash string
		hash, err = c.executeSession(ctx)
		if err == nil {
			return hash, nil
		}
		if !IsRetryableError(err) {
			return "", err
		}
	}

	return "", NewClientError("Notarize", ErrMaxRetriesExceeded, err.Error())
}

func (c *Client) executeSession(ctx context.Context) (string, error) {
	connectCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	conn, err := c.connect(connectCtx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	sessionCtx, cancelSession := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancelSession()

	session := &ClientSession{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		writer:  bufio.NewWriter(conn),
		client:  c,
		context: sessionCtx,
	}

	return session.Execute()
}

func (c *Client) connect(ctx context.Context) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.cfg.ServerAddr)
	if err != nil {
		return nil, NewClientError("connect", ErrConnectionClosed, err.Error())
	}

	if err := conn.SetDeadline(time.Now().Add(c.cfg.RequestTimeout)); err != nil {
		conn.Close()
		return nil, NewClientError("connect", err, "setting timeout failed")
	}

	return conn, nil
}

type ClientSession struct {
	conn    net.Conn
	reader  *bufio.Reader
	writer  *bufio.Writer
	client  *Client
	context context.Context
}

// Execute receives a challenge, mines a block for it and submits the block.
func (s *ClientSession) Execute() (string, error) {
	challenge, err := s.receiveChallenge()
	if err != nil {
		return "", err
	}

	solution, err := s.solveChallenge(challenge)
	if err != nil {
		return "", err
	}

	return s.sendSolutionAndGetResponse(solution)
}

func (s *ClientSession) receiveChallenge() (*domain.ProofOfWork, error) {
	var length int32
	if err := binary.Read(s.reader, binary.BigEndian, &length); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewClientError("receiveChallenge", ErrConnectionClosed, "unexpected EOF")
		}
		return nil, NewClientError("receiveChallenge", err, "reading length failed")
	}

	if length <= 0 || length > s.client.cfg.MaxMessageSize {
		return nil, NewClientError("receiveChallenge", ErrInvalidMessageSize, "invalid challenge size")
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(s.reader, data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, NewClientError("receiveChallenge", ErrConnectionClosed, "unexpected EOF")
		}
		return nil, NewClientError("receiveChallenge", err, "reading challenge failed")
	}

	challenge, err := domain.DecodeChallenge(data)
	if err != nil {
		return nil, NewClientError("receiveChallenge", ErrInvalidChallenge, err.Error())
	}

	s.client.logger.Debug("challenge received",
		"parameter", challenge.Parameter.String(),
		"target", challenge.Target,
		"pool_size", challenge.PoolSize)

	return challenge, nil
}

// solveChallenge mines on a separate goroutine so the session deadline can
// abandon it.
func (s *ClientSession) solveChallenge(challenge *domain.ProofOfWork) (*domain.Solution, error) {
	resultCh := make(chan struct {
		solution *domain.Solution
		err      error
	}, 1)

	go func() {
		solution, err := s.client.solverUsecase.FindSolution(challenge, s.client.cfg.Payload)
		resultCh <- struct {
			solution *domain.Solution
			err      error
		}{solution, err}
	}()

	select {
	case result := <-resultCh:
		if result.err != nil {
			return nil, NewClientError("solveChallenge", ErrSolutionNotFound, result.err.Error())
		}
		s.client.logger.Debug("challenge solved", "nonce", result.solution.Nonce.String())
		return result.solution, nil
	case <-s.context.Done():
		return nil, NewClientError("solveChallenge", ErrReadTimeout, "mining abandoned")
	}
}

func (s *ClientSession) sendSolutionAndGetResponse(solution *domain.Solution) (string, error) {
	data, err := domain.EncodeSolution(solution)
	if err != nil {
		return "", NewClientError("sendSolution", err, "encoding failed")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := binary.Write(s.writer, binary.BigEndian, int32(len(data))); err != nil {
			errCh <- NewClientError("sendSolution", err, "sending length failed")
			return
		}
		if _, err := s.writer.Write(data); err != nil {
			errCh <- NewClientError("sendSolution", err, "sending solution failed")
			return
		}
		if err := s.writer.Flush(); err != nil {
			errCh <- NewClientError("sendSolution", err, "flush failed")
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return "", err
		}
	case <-s.context.Done():
		return "", NewClientError("sendSolution", ErrWriteTimeout, "write timeout")
	}

	responseCh := make(chan struct {
		response string
		err      error
	}, 1)

	go func() {
		response, err := s.reader.ReadString('\n')
		responseCh <- struct {
			response string
			err      error
		}{response, err}
	}()

	select {
	case result := <-responseCh:
		if result.err != nil {
			return "", NewClientError("sendSolution", ErrConnectionClosed, result.err.Error())
		}
		return s.handleResponse(strings.TrimSpace(result.response))
	case <-s.context.Done():
		return "", NewClientError("sendSolution", ErrReadTimeout, "read timeout")
	}
}

func (s *ClientSession) handleResponse(response string) (string, error) {
	if strings.HasPrefix(response, "SUCCESS:") {
		return strings.TrimPrefix(response, "SUCCESS:"), nil
	}

	if strings.HasPrefix(response, "ERROR:") {
		parts := strings.SplitN(strings.TrimPrefix(response, "ERROR:"), ":", 2)
		if len(parts) != 2 {
			return "", NewClientError("handleResponse", ErrInvalidProtocol, "invalid error format")
		}
		return "", NewClientError("handleResponse", fmt.Errorf("%w: %s", ErrRejected, parts[0]), parts[1])
	}

	return "", NewClientError("handleResponse", ErrInvalidProtocol, "invalid response format")
}
