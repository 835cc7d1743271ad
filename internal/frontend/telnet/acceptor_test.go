package telnet

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/lootgame/internal/config"
)

// echoHandler is a test SessionHandler that echoes lines back to the client.
type echoHandler struct {
	sessionCount atomic.Int32
}

func (h *echoHandler) HandleSession(_ context.Context, conn *Conn) error {
	h.sessionCount.Add(1)
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return err
		}
		if line == "quit" {
			_ = conn.WriteLines("bye")
			return nil
		}
		_ = conn.WriteLines("echo: "+line, "> ")
	}
}

func startAcceptor(t *testing.T, handler SessionHandler) (*Acceptor, <-chan error) {
	t.Helper()
	cfg := config.TelnetConfig{
		Host:         "127.0.0.1",
		Port:         0, // random port
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	acc := NewAcceptor(cfg, handler, zaptest.NewLogger(t))

	errCh := make(chan error, 1)
	go func() {
		errCh <- acc.Start()
	}()

	deadline := time.After(2 * time.Second)
	for {
		if acc.Addr() != "" {
			return acc, errCh
		}
		select {
		case <-deadline:
			t.Fatal("acceptor did not start in time")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func dial(t *testing.T, addr string) net.Conn {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	// Read initial telnet negotiations (IAC sequences)
	buf := make([]byte, 256)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _ = conn.Read(buf)
	return conn
}

func TestAcceptorStartAndStop(t *testing.T) {
	handler := &echoHandler{}
	acc, errCh := startAcceptor(t, handler)
	conn := dial(t, acc.Addr())

	_, err := conn.Write([]byte("hello\r\n"))
	require.NoError(t, err)

	buf := make([]byte, 256)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "echo: hello\r\n> \r\n")

	_, _ = conn.Write([]byte("quit\r\n"))
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _ = conn.Read(buf)
	assert.Contains(t, string(buf[:n]), "bye")
	conn.Close()

	acc.Stop()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("acceptor did not stop in time")
	}
	assert.Equal(t, int32(1), handler.sessionCount.Load())
	assert.Zero(t, acc.Sessions())
}

func TestAcceptorStopUnblocksIdleSession(t *testing.T) {
	handler := &echoHandler{}
	acc, errCh := startAcceptor(t, handler)
	conn := dial(t, acc.Addr())
	defer conn.Close()

	require.Eventually(t, func() bool { return acc.Sessions() == 1 }, 2*time.Second, 10*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		acc.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop blocked on an idle session")
	}
	assert.NoError(t, <-errCh)
	assert.Equal(t, 0, acc.Sessions())
}

func TestAcceptorMultipleClients(t *testing.T) {
	handler := &echoHandler{}
	acc, _ := startAcceptor(t, handler)

	const numClients = 3
	conns := make([]net.Conn, numClients)
	for i := range conns {
		conns[i] = dial(t, acc.Addr())
	}

	for _, conn := range conns {
		_, _ = conn.Write([]byte("quit\r\n"))
		buf := make([]byte, 256)
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, _ = conn.Read(buf)
		conn.Close()
	}

	require.Eventually(t, func() bool { return acc.Sessions() == 0 }, 2*time.Second, 10*time.Millisecond)
	acc.Stop()
	assert.Equal(t, int32(numClients), handler.sessionCount.Load())
}
