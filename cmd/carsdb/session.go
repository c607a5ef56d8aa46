package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lealre/carsdb-backend/internal/client"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var errNotSignedIn = errors.New("not signed in, run 'carsdb signin' first")

// sessionFile is what survives between invocations.
type sessionFile struct {
	Server string `yaml:"server"`
	Email  string `yaml:"email"`
	Token  string `yaml:"token"`
}

func sessionPath() (string, error) {
	if rootFlags.session != "" {
		return rootFlags.session, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".carsdb.yaml"), nil
}

// loadSession returns nil when no session file exists.
func loadSession(path string) (*sessionFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s sessionFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	if s.Token == "" {
		return nil, nil
	}
	return &s, nil
}

func saveSession(path string, s sessionFile) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func removeSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func newClient(server string, opts ...client.Option) (*client.Client, error) {
	logger := zerolog.Nop()
	if rootFlags.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return client.New(server, append([]client.Option{client.WithLogger(logger)}, opts...)...)
}

// resumeClient builds a client from the saved session and loads the catalog
// and profile into its state.
func resumeClient(ctx context.Context) (*client.Client, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	s, err := loadSession(path)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errNotSignedIn
	}

	server := s.Server
	if server == "" {
		server = rootFlags.server
	}
	c, err := newClient(server, client.WithToken(s.Token))
	if err != nil {
		return nil, err
	}
	if err := c.Resume(ctx); err != nil {
		if client.IsUnauthorized(err) {
			return nil, fmt.Errorf("%w (%s)", errNotSignedIn, err.Error())
		}
		return nil, err
	}
	return c, nil
}
