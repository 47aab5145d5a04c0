package connection

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Kind is the type of sync target
type Kind string

const (
	Local  Kind = "local"
	Remote Kind = "remote"
	Akamai Kind = "akamai" // CDN storage group reached through an rsync daemon
)

// PasswordEnv is the variable rsync reads a daemon or ssh password from
const PasswordEnv = "RSYNC_PASSWORD"

// AuthMode selects how a non-local connection authenticates
type AuthMode int

const (
	AuthSSHKey AuthMode = iota + 1
	AuthPassword
)

// Auth holds exactly one credential
type Auth struct {
	Mode  AuthMode
	Value string
}

// SSHKey returns key file authentication
func SSHKey(path string) *Auth {
	return &Auth{Mode: AuthSSHKey, Value: path}
}

// Password returns password authentication
func Password(password string) *Auth {
	return &Auth{Mode: AuthPassword, Value: password}
}

// Config describes a connection before validation
type Config struct {
	Kind            Kind
	DestinationRoot string // defaults to "/"
	Host            string
	Port            int // optional, remote only
	User            string
	Auth            *Auth
}

// Connection is a validated sync target. It is never mutated after New.
type Connection struct {
	kind Kind
	root string
	host string
	port int
	user string
	auth *Auth
}

// New validates cfg and builds a Connection
func New(cfg Config) (*Connection, error) {
	c := &Connection{
		kind: cfg.Kind,
		root: cfg.DestinationRoot,
		host: cfg.Host,
		port: cfg.Port,
		user: cfg.User,
	}
	if cfg.Auth != nil {
		auth := *cfg.Auth
		c.auth = &auth
	}
	if c.root == "" {
		c.root = "/"
	}

	if err := c.validateKind(); err != nil {
		return nil, err
	}
	if err := c.validateDestinationRoot(); err != nil {
		return nil, err
	}
	if err := c.validateHost(); err != nil {
		return nil, err
	}
	if err := c.validateAuth(); err != nil {
		return nil, err
	}

	return c, nil
}

// ParseKind converts a config value into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case Local, Remote, Akamai:
		return k, nil
	}
	return "", invalid(fmt.Sprintf("%s is not a valid value for connection type", s))
}

func (c *Connection) validateKind() error {
	switch c.kind {
	case Local, Remote, Akamai:
		return nil
	}
	return invalid(fmt.Sprintf("%s is not a valid value for connection type", c.kind))
}

func (c *Connection) validateDestinationRoot() error {
	if !strings.HasPrefix(c.root, "/") {
		return invalid("The destination root directory must be an absolute path.")
	}
	if !strings.HasSuffix(c.root, "/") {
		c.root += "/"
	}
	return nil
}

func (c *Connection) validateHost() error {
	if c.kind != Local && c.host == "" {
		return invalid("Host is required.")
	}
	if c.port < 0 || c.port > 65535 {
		return invalid(fmt.Sprintf("port %d is out of range", c.port))
	}
	return nil
}

func (c *Connection) validateAuth() error {
	if c.kind == Local {
		return nil
	}

	if c.user == "" {
		return invalid("User is required.")
	}

	if c.auth == nil {
		return invalid("Authentication is required for non-local connections.")
	}

	switch c.auth.Mode {
	case AuthSSHKey:
		if _, err := os.Stat(c.auth.Value); err != nil {
			return invalid("SSH key path is invalid.")
		}
	case AuthPassword:
		if strings.TrimSpace(c.auth.Value) == "" {
			return invalid("Password is required for non-SSH connections.")
		}
	default:
		return invalid("unknown authentication mode")
	}

	return nil
}

func (c *Connection) Kind() Kind   { return c.kind }
func (c *Connection) Root() string { return c.root }
func (c *Connection) Host() string { return c.host }
func (c *Connection) User() string { return c.user }

// Port returns the configured ssh port, 22 when unset
func (c *Connection) Port() int {
	if c.port == 0 {
		return 22
	}
	return c.port
}

// KeyPath returns the ssh key path, empty for password or local connections
func (c *Connection) KeyPath() string {
	if c.auth != nil && c.auth.Mode == AuthSSHKey {
		return c.auth.Value
	}
	return ""
}

// Password returns the password, empty unless password auth is used
func (c *Connection) Password() string {
	if c.auth != nil && c.auth.Mode == AuthPassword {
		return c.auth.Value
	}
	return ""
}

// SSHCommand returns the remote shell rsync should use, e.g. "ssh -i /key".
// Remote connections on a non-default port get "-p N" whatever the auth mode.
// Empty when rsync can use its default transport.
func (c *Connection) SSHCommand() string {
	var parts []string
	key := c.KeyPath()
	if key != "" {
		parts = append(parts, "-i", key)
	}
	if c.port != 0 && c.port != 22 && (c.kind == Remote || key != "") {
		parts = append(parts, "-p", strconv.Itoa(c.port))
	}
	if len(parts) == 0 {
		return ""
	}
	return "ssh " + strings.Join(parts, " ")
}

// SSHKeyFragment returns the -e option for a shell command line. The key
// path is not escaped.
func (c *Connection) SSHKeyFragment() string {
	cmd := c.SSHCommand()
	if cmd == "" {
		return ""
	}
	return `-e "` + cmd + `"`
}

// Destination returns the rsync destination address for dir, relative to
// the destination root
func (c *Connection) Destination(dir string) string {
	switch c.kind {
	case Akamai:
		// the storage group is addressed as module "<user>", hence user twice
		return c.user + "@" + c.host + "::" + c.user + c.root + dir
	case Remote:
		return c.user + "@" + c.host + ":" + c.root + dir
	default:
		return c.root + dir
	}
}

// Env returns the variables the rsync child process needs, in os.Environ form
func (c *Connection) Env() []string {
	if pw := c.Password(); pw != "" {
		return []string{PasswordEnv + "=" + pw}
	}
	return nil
}

func (c *Connection) String() string {
	return fmt.Sprintf("%s %s", c.kind, c.Destination(""))
}
