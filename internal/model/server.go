package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a server accepts connections on.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a network API of the identity backend (HTTP or gRPC).
type Server interface {
	Start(securityLayer SecurityLayer) error
	// Stop drains in-flight requests until ctx ends.
	Stop(ctx context.Context) error
	Address() string
}
