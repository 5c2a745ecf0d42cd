package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	loginBanner = "|c+------------------------------------+|n\n" +
		"|c|||n            |hF L U F F Y M U D|n            |c|||n\n" +
		"|c+------------------------------------+|n"
	loginTagline = "|gA soft place to land.|n"
)

var (
	errAuthenticationFailed = errors.New("authentication failed")
	errLoginCancelled       = errors.New("login cancelled")
)

// lineSession is the part of a telnet session the login flow needs.
type lineSession interface {
	ReadLine() (string, error)
	WriteString(string) error
}

func validateUsername(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsAny(name, " \t\r\n|") {
		return fmt.Errorf("name cannot contain spaces or bars")
	}
	if len(name) > 24 {
		return fmt.Errorf("name must be 24 characters or fewer")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be blank")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

func writeMarkup(session lineSession, text string) {
	_ = session.WriteString(RenderMarkup(text))
}

func lastSeen(accounts *AccountManager, username string) string {
	stats, ok := accounts.Stats(username)
	if !ok || stats.LastLogin.IsZero() {
		return ""
	}
	return fmt.Sprintf(" Last seen %s (%d visits).", stats.LastLogin.Format("2006-01-02 15:04 MST"), stats.TotalLogins)
}

func login(session lineSession, accounts *AccountManager) (string, bool, error) {
	writeMarkup(session, "\n"+loginBanner+"\n")
	writeMarkup(session, "\n"+loginTagline+"\n")
	for attempts := 0; attempts < 5; attempts++ {
		writeMarkup(session, "\nUsername: ")
		username, err := session.ReadLine()
		if err != nil {
			return "", false, err
		}
		username = Trim(username)
		if err := validateUsername(username); err != nil {
			writeMarkup(session, "\n|y"+err.Error()+"|n")
			continue
		}
		if accounts.Exists(username) {
			for tries := 0; tries < 3; tries++ {
				writeMarkup(session, "\nPassword: ")
				password, err := session.ReadLine()
				if err != nil {
					return "", false, err
				}
				if accounts.Authenticate(username, Trim(password)) {
					writeMarkup(session, "\n|gWelcome back, "+username+"!|n"+lastSeen(accounts, username))
					return username, accounts.IsAdmin(username), nil
				}
				writeMarkup(session, "\n|yIncorrect password.|n")
			}
			writeMarkup(session, "\nToo many failed attempts.\n")
			return "", false, errAuthenticationFailed
		}

		for {
			writeMarkup(session, "\nSet a password: ")
			password, err := session.ReadLine()
			if err != nil {
				return "", false, err
			}
			password = Trim(password)
			if err := validatePassword(password); err != nil {
				writeMarkup(session, "\n|y"+err.Error()+"|n")
				continue
			}
			if err := accounts.Register(username, password); err != nil {
				writeMarkup(session, "\n|y"+err.Error()+"|n")
				break
			}
			writeMarkup(session, "\n|gAccount created. Welcome, "+username+"!|n")
			return username, accounts.IsAdmin(username), nil
		}
	}
	writeMarkup(session, "\nLogin cancelled.\n")
	return "", false, errLoginCancelled
}
