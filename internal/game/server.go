package game

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Dispatcher executes a command for the connected player.
// Returning true indicates the connection should terminate.
type Dispatcher func(*World, *Player, string) bool

// ServerConfig describes where the server listens and keeps its files.
type ServerConfig struct {
	Addr         string
	AccountsPath string
	AreasPath    string
	AdminAccount string
	TLS          bool
	CertFile     string
	KeyFile      string
	// DisabledCommands start switched off until an admin enables them.
	DisabledCommands []string
}

// Deps are the collaborators handed to ListenAndServe.
type Deps struct {
	Dispatcher Dispatcher
	Logger     *zap.Logger
	Metrics    *Metrics
	Profiles   ProfileStore
}

var (
	accountManagerFactory = NewAccountManager
	worldFactory          = NewWorld
	netListenFunc         = net.Listen
	tlsListenFunc         = tls.Listen
	ensureCertificateFunc = ensureCertificate
)

const (
	postLoginAtmosphere = "|mThe cushions of the world plump up around you.|n"
	postLoginPrompt     = "|gType 'help' to learn the essentials or 'look' to see where you are.|n"
	logoffAtmosphere    = "|mThe world fluffs down to a quiet hush.|n"
)

func ensureCertificate(certFile, keyFile, addr string) (tls.Certificate, bool, error) {
	if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
		return cert, false, nil
	}
	if err := generateSelfSignedCert(certFile, keyFile, addr); err != nil {
		return tls.Certificate{}, false, err
	}
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return tls.Certificate{}, false, err
	}
	return cert, true, nil
}

func generateSelfSignedCert(certFile, keyFile, addr string) error {
	for _, path := range []string{certFile, keyFile} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create certificate directory: %w", err)
			}
		}
	}

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	now := time.Now()
	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(now.UnixNano()),
		Subject: pkix.Name{
			CommonName:   "FluffyMUD",
			Organization: []string{"FluffyMUD"},
		},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	switch ip := net.ParseIP(host); {
	case host == "" || host == "0.0.0.0" || host == "::":
		tmpl.DNSNames = append(tmpl.DNSNames, "localhost")
		tmpl.IPAddresses = append(tmpl.IPAddresses, net.ParseIP("127.0.0.1"), net.ParseIP("::1"))
	case ip != nil:
		tmpl.IPAddresses = append(tmpl.IPAddresses, ip)
	default:
		tmpl.DNSNames = append(tmpl.DNSNames, host)
	}

	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	if err != nil {
		return fmt.Errorf("create certificate: %w", err)
	}
	if err := writePEM(certFile, 0o644, &pem.Block{Type: "CERTIFICATE", Bytes: der}); err != nil {
		return err
	}
	return writePEM(keyFile, 0o600, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})
}

func writePEM(path string, perm os.FileMode, block *pem.Block) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := pem.Encode(out, block); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// EnterRoom shows the player their surroundings and announces the arrival to
// everyone else present. via names the exit used, if any.
func EnterRoom(world *World, p *Player, via string) {
	p.Msg("\r\n" + world.Appearance(p.Room, p))
	arrival := fmt.Sprintf("\r\n|m%s|n arrives.", p.Name)
	if via != "" {
		arrival = fmt.Sprintf("\r\n|m%s|n arrives from %s.", p.Name, via)
	}
	world.BroadcastToRoom(p.Room, arrival, p)
}

type connHandler struct {
	world      *World
	accounts   *AccountManager
	dispatcher Dispatcher
	logger     *zap.Logger
}

// claimSession resolves a login for a name that is already playing. It
// reports false when the new connection should give up.
func (h *connHandler) claimSession(session *TelnetSession, username string) bool {
	for {
		existing, ok := h.world.ActivePlayer(username)
		if !ok {
			return true
		}
		writeMarkup(session, "\r\n|yAnother session for "+username+" is already active.|n")
		writeMarkup(session, "\r\nTake over the existing session? (yes/no): ")
		response, err := session.ReadLine()
		if err != nil {
			return false
		}
		switch strings.ToLower(Trim(response)) {
		case "y", "yes":
			h.world.PersistPlayer(existing)
			oldSession, oldOutput, ok := h.world.PrepareTakeover(username)
			if !ok {
				continue
			}
			if oldOutput != nil {
				select {
				case oldOutput <- RenderMarkup("\r\n|yYour connection has been claimed from another location.|n\r\n"):
				default:
				}
				close(oldOutput)
			}
			if oldSession != nil {
				_ = oldSession.Close()
			}
			h.logger.Info("session taken over", zap.String("account", username))
			writeMarkup(session, "\r\n|gPrevious connection released.|n\r\n")
		case "n", "no":
			writeMarkup(session, "\r\n|yMaintaining the existing session.|n\r\n")
			return false
		default:
			writeMarkup(session, "\r\n|yPlease respond with 'yes' or 'no'.|n")
		}
	}
}

func (h *connHandler) serve(conn net.Conn) {
	logger := h.logger.With(zap.String("remote", conn.RemoteAddr().String()))
	session := NewTelnetSession(conn)
	defer session.Close()

	username, isAdmin, err := login(session, h.accounts)
	if err != nil {
		logger.Debug("login ended", zap.Error(err))
		return
	}
	if !h.claimSession(session, username) {
		return
	}

	p, err := h.world.addPlayer(username, session, isAdmin, h.world.LoadProfile(username))
	if err != nil {
		writeMarkup(session, "\r\n|y"+err.Error()+"|n\r\n")
		return
	}
	logger = logger.With(zap.String("player", p.Name))
	logger.Info("player connected", zap.Bool("admin", isAdmin))
	if err := h.accounts.RecordLogin(username, time.Now().UTC()); err != nil {
		logger.Warn("record login", zap.Error(err))
	}

	pumped := make(chan struct{})
	go func() {
		defer close(pumped)
		for out := range p.Output {
			_ = session.WriteString(out)
		}
	}()

	p.Msg("\r\n" + postLoginAtmosphere + "\r\n")
	p.Msg(fmt.Sprintf("Welcome, |c%s|n!\r\n", p.Name))
	p.Msg(postLoginPrompt + "\r\n")
	EnterRoom(h.world, p, "")
	p.send(Prompt(p))

	for {
		line, err := session.ReadLine()
		if err != nil {
			break
		}
		line = Trim(line)
		if line == "" {
			p.send(Prompt(p))
			continue
		}
		if !p.allowCommand(time.Now()) {
			p.Msg("\r\n|yYou are sending commands too quickly. Please wait.|n")
			p.send(Prompt(p))
			continue
		}
		if !p.Alive() {
			break
		}
		if quit := h.dispatcher(h.world, p, line); quit {
			break
		}
		p.send(Prompt(p))
	}

	if !p.Alive() {
		// taken over by another connection
		return
	}

	p.Msg("\r\n" + logoffAtmosphere + "\r\n")
	p.Msg(fmt.Sprintf("Until next time, |c%s|n.\r\n", p.Name))
	p.alive.Store(false)
	h.world.BroadcastToRoom(p.Room, fmt.Sprintf("\r\n|m%s|n leaves.", p.Name), p)
	h.world.PersistPlayer(p)
	h.world.removePlayer(p.Name)
	close(p.Output)
	<-pumped
	logger.Info("player disconnected")
}

// ListenAndServe runs the MUD until ctx is cancelled or the listener fails.
// Cancellation is a clean shutdown and returns nil.
func ListenAndServe(ctx context.Context, cfg ServerConfig, deps Deps) error {
	if deps.Dispatcher == nil {
		return fmt.Errorf("dispatcher must not be nil")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	areasPath := cfg.AreasPath
	if areasPath == "" {
		areasPath = DefaultAreasPath
	}

	accounts, err := accountManagerFactory(cfg.AccountsPath)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	accounts.SetAdminAccount(cfg.AdminAccount)
	world, err := worldFactory(areasPath,
		WithLogger(logger),
		WithMetrics(deps.Metrics),
		WithProfileStore(deps.Profiles),
	)
	if err != nil {
		return fmt.Errorf("load world: %w", err)
	}
	for _, name := range cfg.DisabledCommands {
		world.SetCommandDisabled(name, true)
	}

	var ln net.Listener
	if cfg.TLS {
		cert, created, err := ensureCertificateFunc(cfg.CertFile, cfg.KeyFile, cfg.Addr)
		if err != nil {
			return fmt.Errorf("tls certificate: %w", err)
		}
		if created {
			logger.Info("generated self-signed certificate",
				zap.String("cert", cfg.CertFile), zap.String("key", cfg.KeyFile))
		}
		ln, err = tlsListenFunc("tcp", cfg.Addr, &tls.Config{Certificates: []tls.Certificate{cert}})
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	} else {
		ln, err = netListenFunc("tcp", cfg.Addr)
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}
	logger.Info("MUD listening", zap.Stringer("addr", ln.Addr()), zap.Bool("tls", cfg.TLS))

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()
	defer ln.Close()

	handler := &connHandler{
		world:      world,
		accounts:   accounts,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
	err = acceptConnections(ln, logger, func(conn net.Conn) {
		deps.Metrics.connectionAccepted()
		go handler.serve(conn)
	})
	if ctx.Err() != nil {
		logger.Info("MUD shutting down")
		return nil
	}
	return err
}

const (
	acceptBackoffStart = 50 * time.Millisecond
	acceptBackoffMax   = time.Second
)

var acceptSleep = time.Sleep

func acceptConnections(ln net.Listener, logger *zap.Logger, handle func(net.Conn)) error {
	backoff := acceptBackoffStart
	for {
		conn, err := ln.Accept()
		if err != nil {
			if isTemporaryAcceptError(err) {
				logger.Warn("temporary accept error", zap.Error(err), zap.Duration("retry", backoff))
				acceptSleep(backoff)
				backoff *= 2
				if backoff > acceptBackoffMax {
					backoff = acceptBackoffMax
				}
				continue
			}
			return err
		}
		backoff = acceptBackoffStart
		handle(conn)
	}
}

func isTemporaryAcceptError(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() || ne.Temporary() {
			return true
		}
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}
