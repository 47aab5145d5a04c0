package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/williamokano/rsyncer/pkg/connection"
	"github.com/williamokano/rsyncer/pkg/rsync"
)

// ConnectionConfig defines a named sync target
type ConnectionConfig struct {
	Name            string `json:"name"`
	Type            string `json:"type"`                       // local, remote, akamai
	DestinationRoot string `json:"destination_root,omitempty"` // default: /
	Host            string `json:"host,omitempty"`
	Port            int    `json:"port,omitempty"` // ssh port, remote only
	User            string `json:"user,omitempty"`
	SSHKey          string `json:"ssh_key,omitempty"`     // path, ~ is expanded
	Password        string `json:"password,omitempty"`    // "$NAME" reads the environment variable NAME
	KnownHosts      string `json:"known_hosts,omitempty"` // used by preflight checks only
}

// JobConfig defines a single transfer
type JobConfig struct {
	Name        string          `json:"name"`
	Connection  string          `json:"connection"`
	Source      string          `json:"source"`
	Destination string          `json:"destination,omitempty"` // relative to the connection root
	Files       []string        `json:"files,omitempty"`       // transfer only these files
	Prepare     bool            `json:"prepare,omitempty"`     // create the destination before syncing
	Enabled     *bool           `json:"enabled,omitempty"`     // defaults to true if omitted
	Options     rsync.Overrides `json:"options,omitempty"`
}

// Config is the root configuration structure
type Config struct {
	LogLevel          string             `json:"log_level,omitempty"`           // debug, info, warn, error (default: info)
	LogFormat         string             `json:"log_format,omitempty"`          // json, console (default: json)
	MaxConcurrentJobs int                `json:"max_concurrent_jobs,omitempty"` // default: 1
	RsyncPath         string             `json:"rsync_path,omitempty"`          // default: rsync
	Defaults          rsync.Overrides    `json:"defaults,omitempty"`
	Connections       []ConnectionConfig `json:"connections"`
	Jobs              []JobConfig        `json:"jobs"`
}

// IsEnabled returns whether the job runs (defaults to true)
func (j *JobConfig) IsEnabled() bool {
	return j.Enabled == nil || *j.Enabled
}

// SourceDir returns the job source with ~ expanded
func (j *JobConfig) SourceDir() (string, error) {
	return homedir.Expand(j.Source)
}

// Build validates the connection settings and returns a Connection
func (cc *ConnectionConfig) Build() (*connection.Connection, error) {
	kind, err := connection.ParseKind(cc.Type)
	if err != nil {
		return nil, fmt.Errorf("connection %s: %w", cc.Name, err)
	}

	auth, err := cc.auth()
	if err != nil {
		return nil, fmt.Errorf("connection %s: %w", cc.Name, err)
	}

	conn, err := connection.New(connection.Config{
		Kind:            kind,
		DestinationRoot: cc.DestinationRoot,
		Host:            cc.Host,
		Port:            cc.Port,
		User:            cc.User,
		Auth:            auth,
	})
	if err != nil {
		return nil, fmt.Errorf("connection %s: %w", cc.Name, err)
	}

	return conn, nil
}

func (cc *ConnectionConfig) auth() (*connection.Auth, error) {
	if cc.SSHKey != "" && cc.Password != "" {
		return nil, fmt.Errorf("%w: ssh_key and password are mutually exclusive", connection.ErrInvalidConfig)
	}

	if cc.SSHKey != "" {
		path, err := homedir.Expand(cc.SSHKey)
		if err != nil {
			return nil, fmt.Errorf("%w: ssh_key: %v", connection.ErrInvalidConfig, err)
		}
		return connection.SSHKey(path), nil
	}

	if cc.Password != "" {
		password := cc.Password
		if name, ok := strings.CutPrefix(password, "$"); ok {
			password = os.Getenv(name)
		}
		return connection.Password(password), nil
	}

	return nil, nil
}

// FindConnection returns the connection named name
func (c *Config) FindConnection(name string) (*ConnectionConfig, bool) {
	for i := range c.Connections {
		if c.Connections[i].Name == name {
			return &c.Connections[i], true
		}
	}
	return nil, false
}

// FindJob returns the job named name
func (c *Config) FindJob(name string) (*JobConfig, bool) {
	for i := range c.Jobs {
		if c.Jobs[i].Name == name {
			return &c.Jobs[i], true
		}
	}
	return nil, false
}

// BaseOptions returns the built-in defaults with the config defaults applied
func (c *Config) BaseOptions() rsync.Options {
	return rsync.DefaultOptions().Merge(c.Defaults)
}

// GetMaxConcurrentJobs returns the max concurrent jobs (defaults to 1)
func (c *Config) GetMaxConcurrentJobs() int {
	if c.MaxConcurrentJobs > 0 {
		return c.MaxConcurrentJobs
	}
	return 1
}

// GetRsyncPath returns the rsync binary (defaults to rsync in PATH)
func (c *Config) GetRsyncPath() string {
	if c.RsyncPath != "" {
		return c.RsyncPath
	}
	return rsync.DefaultBinary
}

// GetLogLevel returns the log level (defaults to info)
func (c *Config) GetLogLevel() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return "info"
}

// GetLogFormat returns the log format (defaults to json)
func (c *Config) GetLogFormat() string {
	if c.LogFormat != "" {
		return c.LogFormat
	}
	return "json"
}
