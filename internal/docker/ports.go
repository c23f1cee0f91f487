package docker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
)

// PublishedPorts returns the host ports published by running containers,
// keyed by port, with the owning container's name as value.
//
// Only running containers are listed: a stopped container holds no host
// port, even though its configuration still declares one.
func (c *Client) PublishedPorts(ctx context.Context) (map[uint16]string, error) {
	containers, err := c.api.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list Docker containers: %w", err)
	}
	return publishedPorts(containers), nil
}

// publishedPorts extracts the public TCP ports from container summaries.
// When several containers publish the same port (on different host
// addresses), the alphabetically first name wins so output is stable.
func publishedPorts(containers []container.Summary) map[uint16]string {
	owners := make(map[uint16][]string)

	for _, c := range containers {
		name := containerName(c)
		for _, p := range c.Ports {
			if p.PublicPort == 0 || (p.Type != "" && p.Type != "tcp") {
				continue
			}
			owners[p.PublicPort] = append(owners[p.PublicPort], name)
		}
	}

	result := make(map[uint16]string, len(owners))
	for port, names := range owners {
		sort.Strings(names)
		result[port] = names[0]
	}
	return result
}

// containerName returns the first container name without the leading "/"
// the Docker API adds, falling back to the short ID.
func containerName(c container.Summary) string {
	if len(c.Names) > 0 {
		return strings.TrimPrefix(c.Names[0], "/")
	}
	if len(c.ID) > 12 {
		return c.ID[:12]
	}
	return c.ID
}
