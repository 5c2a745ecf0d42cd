package game

import (
	"bufio"
	"bytes"
	"net"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	telnetIAC  byte = 255
	telnetDONT byte = 254
	telnetDO   byte = 253
	telnetWONT byte = 252
	telnetWILL byte = 251
	telnetSB   byte = 250
	telnetSE   byte = 240
	telnetNOP  byte = 241
	telnetDM   byte = 242
	telnetBRK  byte = 243
	telnetIP   byte = 244
	telnetAO   byte = 245
	telnetAYT  byte = 246
	telnetEC   byte = 247
	telnetEL   byte = 248
	telnetGA   byte = 249
)

const (
	telnetOptEcho         byte = 1
	telnetOptSuppressGA   byte = 3
	telnetOptTerminalType byte = 24
	telnetOptWindowSize   byte = 31
	telnetOptLineMode     byte = 34
	telnetOptCharset      byte = 42
)

// RFC 2066 subnegotiation verbs.
const (
	charsetRequest  byte = 1
	charsetAccepted byte = 2
	charsetRejected byte = 3
)

var (
	serverSupportedOptions = map[byte]bool{
		telnetOptSuppressGA: true,
		telnetOptCharset:    true,
	}
	clientSupportedOptions = map[byte]bool{
		telnetOptTerminalType: true,
		telnetOptWindowSize:   true,
		telnetOptCharset:      true,
	}
)

// offeredCharsets is sent to clients in preference order.
var offeredCharsets = []string{"UTF-8", "ISO-8859-1", "WINDOWS-1252", "CP437"}

// knownCharmaps maps normalised charset names to single-byte encodings. A nil
// entry means UTF-8, which needs no translation.
var knownCharmaps = map[string]*charmap.Charmap{
	"UTF8":        nil,
	"ISO88591":    charmap.ISO8859_1,
	"LATIN1":      charmap.ISO8859_1,
	"WINDOWS1252": charmap.Windows1252,
	"CP1252":      charmap.Windows1252,
	"CP437":       charmap.CodePage437,
	"IBM437":      charmap.CodePage437,
}

type TelnetSession struct {
	conn    net.Conn
	reader  *bufio.Reader
	mu      sync.Mutex
	width   int
	height  int
	term    string
	charset string
	cm      *charmap.Charmap
}

func NewTelnetSession(conn net.Conn) *TelnetSession {
	s := &TelnetSession{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		width:   80,
		height:  24,
		charset: "UTF-8",
	}
	s.performHandshake()
	return s
}

// SetCharset selects the encoding used for the session. Unknown names are
// ignored and reported as false.
func (s *TelnetSession) SetCharset(name string) bool {
	cm, ok := knownCharmaps[normalizeToken(name)]
	if !ok {
		return false
	}
	s.mu.Lock()
	s.cm = cm
	s.charset = strings.ToUpper(strings.TrimSpace(name))
	s.mu.Unlock()
	return true
}

// Charset reports the negotiated character set.
func (s *TelnetSession) Charset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.charset
}

func (s *TelnetSession) performHandshake() {
	_ = s.writeCommand(telnetWILL, telnetOptSuppressGA)
	_ = s.writeCommand(telnetWONT, telnetOptEcho)
	_ = s.writeCommand(telnetDONT, telnetOptLineMode)
	_ = s.writeCommand(telnetDO, telnetOptTerminalType)
	_ = s.writeCommand(telnetDO, telnetOptWindowSize)
	_ = s.writeCommand(telnetWILL, telnetOptCharset)
}

func (s *TelnetSession) writeCommand(cmd, opt byte) error {
	return s.writeRaw([]byte{telnetIAC, cmd, opt})
}

func (s *TelnetSession) writeRaw(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.conn.Write(payload)
	return err
}

func (s *TelnetSession) requestCharset() error {
	payload := []byte{telnetIAC, telnetSB, telnetOptCharset, charsetRequest}
	payload = append(payload, ';')
	payload = append(payload, strings.Join(offeredCharsets, ";")...)
	payload = append(payload, telnetIAC, telnetSE)
	return s.writeRaw(payload)
}

func (s *TelnetSession) WriteString(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := []byte(msg)
	if s.cm != nil {
		data = encodeWithCharmap(s.cm, data)
	}
	_, err := s.conn.Write(translateForTelnet(data))
	return err
}

func translateForTelnet(msg []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(msg) + 8)
	var prev byte
	for _, b := range msg {
		switch b {
		case '\n':
			if prev != '\r' {
				buf.WriteByte('\r')
			}
			buf.WriteByte('\n')
		case telnetIAC:
			buf.WriteByte(telnetIAC)
			buf.WriteByte(telnetIAC)
		default:
			buf.WriteByte(b)
		}
		prev = b
	}
	return buf.Bytes()
}

func encodeWithCharmap(cm *charmap.Charmap, data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r < utf8.RuneSelf {
			out = append(out, byte(r))
			continue
		}
		if b, ok := cm.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}
		out = append(out, '?')
	}
	return out
}

func decodeWithCharmap(cm *charmap.Charmap, data []byte) string {
	decoded, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// normalizeToken upper-cases a charset name and drops punctuation so that
// "utf-8" and "UTF8" compare equal.
func normalizeToken(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, name)
}

// parseCharsetList splits an RFC 2066 list whose first byte is the separator.
func parseCharsetList(raw string) []string {
	if raw == "" {
		return nil
	}
	sep := raw[:1]
	out := make([]string, 0, 4)
	for _, part := range strings.Split(raw[1:], sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// sanitizeTelnetString drops control bytes a client may leak into a line.
func sanitizeTelnetString(raw []byte) string {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b < 0x20 || b == 0x7f {
			continue
		}
		out = append(out, b)
	}
	return string(out)
}

func (s *TelnetSession) decodeLine(raw []byte) string {
	clean := sanitizeTelnetString(raw)
	s.mu.Lock()
	cm := s.cm
	s.mu.Unlock()
	if cm == nil {
		return clean
	}
	return decodeWithCharmap(cm, []byte(clean))
}

func (s *TelnetSession) ReadLine() (string, error) {
	var buf bytes.Buffer
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return "", err
		}
		switch b {
		case '\r':
			if next, err := s.reader.Peek(1); err == nil && next[0] == '\n' {
				_, _ = s.reader.ReadByte()
			}
			return s.decodeLine(buf.Bytes()), nil
		case '\n':
			return s.decodeLine(buf.Bytes()), nil
		case 0x08, 0x7f:
			if n := buf.Len(); n > 0 {
				buf.Truncate(n - 1)
			}
		case 0x00:
		case telnetIAC:
			if err := s.handleIAC(&buf); err != nil {
				return "", err
			}
		default:
			buf.WriteByte(b)
		}
	}
}

func (s *TelnetSession) handleIAC(buf *bytes.Buffer) error {
	cmd, err := s.reader.ReadByte()
	if err != nil {
		return err
	}
	switch cmd {
	case telnetIAC:
		buf.WriteByte(telnetIAC)
	case telnetDO, telnetDONT, telnetWILL, telnetWONT:
		opt, err := s.reader.ReadByte()
		if err != nil {
			return err
		}
		s.handleNegotiation(cmd, opt)
	case telnetSB:
		return s.handleSubnegotiation()
	case telnetNOP, telnetDM, telnetBRK, telnetIP, telnetAO, telnetAYT, telnetEC, telnetEL, telnetGA:
	default:
		// unknown commands are skipped to keep the stream usable
	}
	return nil
}

func (s *TelnetSession) handleNegotiation(cmd, opt byte) {
	switch cmd {
	case telnetDO:
		switch {
		case opt == telnetOptCharset:
			// WILL was already offered in the handshake
			_ = s.requestCharset()
		case serverSupportedOptions[opt]:
			_ = s.writeCommand(telnetWILL, opt)
		default:
			_ = s.writeCommand(telnetWONT, opt)
		}
	case telnetDONT:
		_ = s.writeCommand(telnetWONT, opt)
	case telnetWILL:
		if clientSupportedOptions[opt] {
			_ = s.writeCommand(telnetDO, opt)
		} else {
			_ = s.writeCommand(telnetDONT, opt)
		}
	case telnetWONT:
		_ = s.writeCommand(telnetDONT, opt)
	}
}

func (s *TelnetSession) handleSubnegotiation() error {
	opt, err := s.reader.ReadByte()
	if err != nil {
		return err
	}
	payload := make([]byte, 0, 16)
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return err
		}
		if b == telnetIAC {
			esc, err := s.reader.ReadByte()
			if err != nil {
				return err
			}
			if esc == telnetIAC {
				payload = append(payload, telnetIAC)
				continue
			}
			if esc == telnetSE {
				break
			}
			continue
		}
		payload = append(payload, b)
	}

	switch opt {
	case telnetOptTerminalType:
		if len(payload) > 1 && payload[0] == 0 { // IS
			s.mu.Lock()
			s.term = strings.ToUpper(string(payload[1:]))
			s.mu.Unlock()
		}
	case telnetOptWindowSize:
		if len(payload) >= 4 {
			width := int(payload[0])<<8 | int(payload[1])
			height := int(payload[2])<<8 | int(payload[3])
			// zero means the client does not know
			s.mu.Lock()
			if width > 0 {
				s.width = width
			}
			if height > 0 {
				s.height = height
			}
			s.mu.Unlock()
		}
	case telnetOptCharset:
		s.handleCharsetReply(payload)
	}
	return nil
}

func (s *TelnetSession) handleCharsetReply(payload []byte) {
	if len(payload) == 0 {
		return
	}
	switch payload[0] {
	case charsetAccepted:
		s.SetCharset(string(payload[1:]))
	case charsetRequest:
		// client-initiated request: take the first charset we know
		for _, name := range parseCharsetList(string(payload[1:])) {
			if _, ok := knownCharmaps[normalizeToken(name)]; ok {
				reply := []byte{telnetIAC, telnetSB, telnetOptCharset, charsetAccepted}
				reply = append(reply, name...)
				reply = append(reply, telnetIAC, telnetSE)
				_ = s.writeRaw(reply)
				s.SetCharset(name)
				return
			}
		}
		_ = s.writeRaw([]byte{telnetIAC, telnetSB, telnetOptCharset, charsetRejected, telnetIAC, telnetSE})
	case charsetRejected:
	}
}

func (s *TelnetSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Size reports the terminal dimensions last announced through NAWS.
func (s *TelnetSession) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *TelnetSession) Terminal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}
