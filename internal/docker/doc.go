// Package docker provides a thin Docker Engine API wrapper used to find
// host ports that are published by running containers.
//
// A mapped UI port can be taken over by a container after it was assigned;
// the port mapping does not detect this itself. The CLI uses this package
// to report such ports when probing mapping state.
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
