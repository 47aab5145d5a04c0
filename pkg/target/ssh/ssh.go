package ssh

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/williamokano/rsyncer/pkg/connection"
	"github.com/williamokano/rsyncer/pkg/target"
)

// Target prepares remote destinations over SFTP
type Target struct {
	name       string
	sshClient  *ssh.Client
	sftpClient *sftp.Client
	root       string
}

// dial is replaced in tests
var dial = ssh.Dial

func init() {
	target.Register(connection.Remote, func(ctx context.Context, conn *connection.Connection, opts target.Options) (target.Target, error) {
		return New(ctx, conn, opts)
	})
}

// New connects to the remote host of conn and opens an SFTP session
func New(ctx context.Context, conn *connection.Connection, opts target.Options) (*Target, error) {
	if conn.Kind() != connection.Remote {
		return nil, fmt.Errorf("%w: ssh target needs a remote connection, got %s", target.ErrInvalidConfig, conn.Kind())
	}

	clientConfig, err := ClientConfig(conn, opts)
	if err != nil {
		return nil, err
	}

	name := conn.User() + "@" + conn.Host()
	addr := net.JoinHostPort(conn.Host(), strconv.Itoa(conn.Port()))

	var sshClient *ssh.Client
	err = target.WithRetry(ctx, opts.Retry, func() error {
		c, err := dial("tcp", addr, clientConfig)
		if err != nil {
			return target.WrapError(name, "connect", classify(err))
		}
		sshClient = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, target.WrapError(name, "sftp init", err)
	}

	return &Target{
		name:       name,
		sshClient:  sshClient,
		sftpClient: sftpClient,
		root:       conn.Root(),
	}, nil
}

// ClientConfig builds the ssh client configuration for conn
func ClientConfig(conn *connection.Connection, opts target.Options) (*ssh.ClientConfig, error) {
	clientConfig := &ssh.ClientConfig{
		User:            conn.User(),
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         opts.DialTimeout,
	}

	if opts.KnownHostsPath != "" {
		cb, err := knownhosts.New(opts.KnownHostsPath)
		if err != nil {
			return nil, fmt.Errorf("%w: known_hosts: %v", target.ErrInvalidConfig, err)
		}
		clientConfig.HostKeyCallback = cb
	}

	if pw := conn.Password(); pw != "" {
		clientConfig.Auth = append(clientConfig.Auth, ssh.Password(pw))
	}

	if keyPath := conn.KeyPath(); keyPath != "" {
		key, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read SSH key: %v", target.ErrInvalidConfig, err)
		}

		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			var passphraseMissing *ssh.PassphraseMissingError
			if errors.As(err, &passphraseMissing) {
				return nil, fmt.Errorf("%w: SSH key is encrypted, load it into ssh-agent instead", target.ErrInvalidConfig)
			}
			return nil, fmt.Errorf("%w: failed to parse SSH key: %v", target.ErrInvalidConfig, err)
		}

		clientConfig.Auth = append(clientConfig.Auth, ssh.PublicKeys(signer))
	}

	return clientConfig, nil
}

func (t *Target) Type() connection.Kind { return connection.Remote }

// Check verifies the remote destination root is a directory
func (t *Target) Check(ctx context.Context) error {
	info, err := t.sftpClient.Stat(path.Clean(t.root))
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return target.WrapError(t.name, "check", target.ErrPermissionDenied)
		}
		return target.WrapError(t.name, "check", err)
	}
	if !info.IsDir() {
		return target.WrapError(t.name, "check", target.ErrNotDirectory)
	}
	return nil
}

// Prepare creates dir under the remote destination root
func (t *Target) Prepare(ctx context.Context, dir string) error {
	remotePath := path.Join(t.root, dir)
	if err := t.sftpClient.MkdirAll(remotePath); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return target.WrapError(t.name, "mkdir", target.ErrPermissionDenied)
		}
		return target.WrapError(t.name, "mkdir", err)
	}
	return nil
}

// Close releases resources
func (t *Target) Close() error {
	if t.sftpClient != nil {
		t.sftpClient.Close()
	}
	if t.sshClient != nil {
		t.sshClient.Close()
	}
	return nil
}

func classify(err error) error {
	var netErr net.Error
	switch {
	case strings.Contains(err.Error(), "unable to authenticate"):
		return fmt.Errorf("%w: %v", target.ErrAuthFailed, err)
	case strings.Contains(err.Error(), "knownhosts"):
		return fmt.Errorf("%w: %v", target.ErrAuthFailed, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", target.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", target.ErrConnFailed, err)
	}
}
