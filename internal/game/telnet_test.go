package game

import (
	"bytes"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

// pipeClient is the far end of a net.Pipe that records everything the
// session writes.
type pipeClient struct {
	conn net.Conn
	mu   sync.Mutex
	seen bytes.Buffer
	done chan struct{}
}

func newPipeSession(t *testing.T) (*TelnetSession, *pipeClient) {
	t.Helper()
	server, client := net.Pipe()
	c := &pipeClient{conn: client, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		buf := make([]byte, 256)
		for {
			n, err := client.Read(buf)
			c.mu.Lock()
			c.seen.Write(buf[:n])
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}()
	session := NewTelnetSession(server)
	t.Cleanup(func() {
		session.Close()
		client.Close()
		<-c.done
	})
	return session, c
}

func (c *pipeClient) send(t *testing.T, payload ...byte) {
	t.Helper()
	go func() { _, _ = c.conn.Write(payload) }()
}

func (c *pipeClient) received() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.seen.Bytes()...)
}

func (c *pipeClient) waitFor(t *testing.T, want []byte) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if bytes.Contains(c.received(), want) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client never received %v; got %v", want, c.received())
}

func TestTelnetHandshakeOffersOptions(t *testing.T) {
	_, client := newPipeSession(t)
	client.waitFor(t, []byte{telnetIAC, telnetWILL, telnetOptCharset})
	assert.True(t, bytes.HasPrefix(client.received(), []byte{telnetIAC, telnetWILL, telnetOptSuppressGA}))
}

func TestReadLineHandlesEditingAndNegotiation(t *testing.T) {
	session, client := newPipeSession(t)
	payload := []byte{'l', 'o', 'x', 0x7f, 'o', 'k'}
	payload = append(payload, telnetIAC, telnetSB, telnetOptWindowSize, 0, 120, 0, 40, telnetIAC, telnetSE)
	payload = append(payload, telnetIAC, telnetSB, telnetOptTerminalType, 0)
	payload = append(payload, "xterm"...)
	payload = append(payload, telnetIAC, telnetSE, telnetIAC, telnetNOP, 0x01, '\r', '\n')
	client.send(t, payload...)

	line, err := session.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "look", line)
	width, height := session.Size()
	assert.Equal(t, 120, width)
	assert.Equal(t, 40, height)
	assert.Equal(t, "XTERM", session.Terminal())
}

func TestClientCharsetRequestIsAccepted(t *testing.T) {
	session, client := newPipeSession(t)
	payload := []byte{telnetIAC, telnetSB, telnetOptCharset, charsetRequest}
	payload = append(payload, ";KOI8-R;latin1"...)
	payload = append(payload, telnetIAC, telnetSE, 0xe9, '\n')
	client.send(t, payload...)

	line, err := session.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "é", line)
	assert.Equal(t, "LATIN1", session.Charset())
	client.waitFor(t, append([]byte{telnetIAC, telnetSB, telnetOptCharset, charsetAccepted}, "latin1"...))

	require.NoError(t, session.WriteString("café ☕\n"))
	client.waitFor(t, []byte{'c', 'a', 'f', 0xe9, ' ', '?', '\r', '\n'})
}

func TestTranslateForTelnet(t *testing.T) {
	tests := []struct {
		in, want []byte
	}{
		{[]byte("a\nb"), []byte("a\r\nb")},
		{[]byte("a\r\nb"), []byte("a\r\nb")},
		{[]byte{'x', telnetIAC}, []byte{'x', telnetIAC, telnetIAC}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, translateForTelnet(tt.in))
	}
}

func TestCharsetHelpers(t *testing.T) {
	assert.Equal(t, "UTF8", normalizeToken("Utf-8"))
	assert.Equal(t, []string{"UTF-8", "ISO88591"}, parseCharsetList(";UTF-8; ISO88591; "))
	assert.Nil(t, parseCharsetList(""))
	assert.Equal(t, "Hi!", sanitizeTelnetString([]byte{0x01, 'H', 'i', 0x7f, '!'}))

	encoded := encodeWithCharmap(charmap.CodePage437, []byte("é€"))
	want, _ := charmap.CodePage437.EncodeRune('é')
	assert.Equal(t, []byte{want, '?'}, encoded)
}

func TestSetCharsetRejectsUnknown(t *testing.T) {
	session, _ := newPipeSession(t)
	assert.False(t, session.SetCharset("EBCDIC"))
	assert.Equal(t, "UTF-8", session.Charset())
	assert.True(t, session.SetCharset("cp437"))
	assert.Equal(t, "CP437", session.Charset())
}
