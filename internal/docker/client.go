package docker

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/docker/docker/client"
)

const (
	// pingTimeout bounds Ping. list --probe must stay responsive when the
	// socket exists but the daemon is wedged.
	pingTimeout = 3 * time.Second

	// windowsPipe is the Docker Desktop named pipe on Windows.
	windowsPipe = `//./pipe/docker_engine`
)

// Client is a read-only view of the local Docker daemon.
type Client struct {
	api *client.Client
}

// NewClient connects to DOCKER_HOST when it is set, otherwise to the first
// platform socket that exists. No request is sent; call Ping to find out
// whether the daemon answers.
func NewClient() (*Client, error) {
	host := os.Getenv("DOCKER_HOST")
	if host == "" {
		var err error
		if host, err = detectDockerHost(); err != nil {
			return nil, err
		}
	}

	api, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client for %q: %w", host, err)
	}
	return &Client{api: api}, nil
}

// detectDockerHost returns the daemon address for the current platform.
func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "windows":
		// Named pipes cannot be stat'ed; dial briefly instead.
		conn, err := net.DialTimeout("pipe", windowsPipe, time.Second)
		if err != nil {
			return "", fmt.Errorf("Docker named pipe %s not reachable: %w", windowsPipe, err)
		}
		_ = conn.Close()
		return "npipe://" + windowsPipe, nil
	case "linux", "darwin":
		return detectUnixSocket(socketCandidates())
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// socketCandidates lists the Unix socket paths probed in order. Docker
// Desktop on macOS may only provide the per-user socket.
func socketCandidates() []string {
	candidates := []string{"/var/run/docker.sock"}
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(home, ".docker", "run", "docker.sock"))
		}
	}
	return candidates
}

// detectUnixSocket returns a unix:// host for the first existing path.
func detectUnixSocket(candidates []string) (string, error) {
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return "unix://" + p, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of %v", candidates)
}

// Ping checks that the daemon answers within pingTimeout.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := c.api.Ping(ctx); err != nil {
		return fmt.Errorf("Docker daemon is not responding: %w", err)
	}
	return nil
}

// Close releases the underlying HTTP transport.
func (c *Client) Close() error {
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}
