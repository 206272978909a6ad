package tcp

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"juliapow/internal/domain"
	"juliapow/internal/usecases"
)

type Server struct {
	cfg        *Config
	powUsecase usecases.PowUsecase
	logger     Logger
}

type Config struct {
	Address        string
	KeepAlive      time.Duration
	Deadline       time.Duration
	MaxMessageSize int32
}

type Logger interface {
	Error(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

func NewServer(cfg *Config, powUsecase usecases.PowUsecase, logger Logger) *Server {
	return &Server{
		cfg:        cfg,
		powUsecase: powUsecase,
		logger:     logger,
	}
}

func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{
		KeepAlive: s.cfg.KeepAlive,
	}

	listener, err := lc.Listen(ctx, "tcp", s.cfg.Address)
	if err != nil {
		return NewConnectionError("Run", err, "failed to start listener")
	}

	s.logger.Info("server started", "address", listener.Addr().String())

	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done. The listener is
// closed on return.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return NewConnectionError("serve", ErrServerShutdown, "context cancelled")
			}
			if errors.Is(err, net.ErrClosed) {
				s.logger.Debug("listener closed")
				return nil
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}
		go s.HandleConnection(conn)
	}
}

// HandleConnection runs one challenge session on conn and closes it.
func (s *Server) HandleConnection(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Debug("connection close failed",
				"error", NewConnectionError("handleConnection", err, "cleanup failed"))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Deadline)
	defer cancel()

	if err := conn.SetDeadline(time.Now().Add(s.cfg.Deadline)); err != nil {
		s.logger.Error("set deadline failed",
			"error", NewConnectionError("handleConnection", err, "setting timeout failed"))
		return
	}

	session := &Session{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		writer:  bufio.NewWriter(conn),
		server:  s,
		context: ctx,
	}

	if err := session.Handle(); err != nil {
		s.handleError(session.writer, err)
	}
}

type Session struct {
	conn    net.Conn
	reader  *bufio.Reader
	writer  *bufio.Writer
	server  *Server
	context context.Context
}

// Handle sends a challenge, reads the mined block back and verifies it.
func (s *Session) Handle() error {
	challenge, err := s.sendChallenge()
	if err != nil {
		return fmt.Errorf("failed to send challenge: %w", err)
	}

	solution, err := s.readSolution()
	if err != nil {
		return fmt.Errorf("failed to read solution: %w", err)
	}

	err = s.validateAndRespond(challenge, solution)
	if err != nil {
		return fmt.Errorf("failed to validate and respond: %w", err)
	}

	return nil
}

func (s *Session) sendChallenge() (*domain.ProofOfWork, error) {
	pow, err := s.server.powUsecase.GenerateChallenge()
	if err != nil {
		return nil, NewConnectionError("sendChallenge", ErrChallengeFailed, err.Error())
	}

	data, err := domain.EncodeChallenge(pow)
	if err != nil {
		return nil, NewConnectionError("sendChallenge", ErrChallengeFailed, "encoding failed")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- writeFrame(s.writer, data)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return nil, NewConnectionError("sendChallenge", ErrChallengeDelivery, "write challenge failed")
		}
	case <-s.context.Done():
		return nil, NewConnectionError("sendChallenge", ErrWriteTimeout, "context deadline exceeded")
	}

	s.server.logger.Info("challenge sent",
		"parameter", pow.Parameter.String(),
		"target", pow.Target,
		"pool_size", pow.PoolSize,
		"length", len(data))

	return pow, nil
}

func (s *Session) readSolution() (*domain.Solution, error) {
	resultCh := make(chan struct {
		solution *domain.Solution
		err      error
	}, 1)

	go func() {
		data, err := readFrame(s.reader, s.server.cfg.MaxMessageSize)
		if err != nil {
			resultCh <- struct {
				solution *domain.Solution
				err      error
			}{nil, NewConnectionError("readSolution", err, "reading solution failed")}
			return
		}

		solution, err := domain.DecodeSolution(data)
		if err != nil {
			err = NewConnectionError("readSolution", ErrInvalidProtocol, err.Error())
		}
		resultCh <- struct {
			solution *domain.Solution
			err      error
		}{solution, err}
	}()

	select {
	case result := <-resultCh:
		return result.solution, result.err
	case <-s.context.Done():
		return nil, NewConnectionError("readSolution", ErrReadTimeout, "context deadline exceeded")
	}
}

func (s *Session) validateAndRespond(challenge *domain.ProofOfWork, solution *domain.Solution) error {
	isValidated, err := s.server.powUsecase.ValidateSolution(challenge, solution)
	if err != nil {
		return NewConnectionError("validateAndRespond", err, "validation failed")
	}
	if !isValidated {
		return NewConnectionError("validateAndRespond", ErrInvalidSolution, "validation failed")
	}

	hash := hex.EncodeToString(solution.Hash)
	s.server.logger.Info("block accepted", "hash", hash, "nonce", solution.Nonce.String())

	errCh := make(chan error, 1)
	go func() {
		_, err := s.writer.WriteString(formatSuccessResponse(hash))
		if err == nil {
			err = s.writer.Flush()
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return NewConnectionError("validateAndRespond", err, "write response failed")
		}
	case <-s.context.Done():
		return NewConnectionError("validateAndRespond", ErrWriteTimeout, "context deadline exceeded")
	}

	return nil
}

func (s *Server) handleError(writer *bufio.Writer, err error) {
	response := ToErrorResponse(err)
	s.logger.Error("client error",
		"code", response.Code,
		"message", response.Message,
		"error", err)

	if err := sendErrorResponse(writer, response); err != nil {
		s.logger.Debug("failed to send error response", "error", err)
	}
}

// Helper functions

// writeFrame writes a big-endian int32 length followed by data.
func writeFrame(w *bufio.Writer, data []byte) error {
	if err := binary.Write(w, binary.BigEndian, int32(len(data))); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

func readFrame(r io.Reader, maxSize int32) ([]byte, error) {
	var length int32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrConnectionClosed
		}
		return nil, err
	}
	if length <= 0 || length > maxSize {
		return nil, ErrInvalidMessageSize
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

func formatSuccessResponse(hash string) string {
	return fmt.Sprintf("SUCCESS:%s\n", hash)
}

func sendErrorResponse(writer *bufio.Writer, response ErrorResponse) error {
	_, err := writer.WriteString(fmt.Sprintf("ERROR:%s:%s\n", response.Code, response.Message))
	if err != nil {
		return err
	}
	return writer.Flush()
}
