package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dtroode/jobboard/internal/model"
)

// locationHost is told where the navigator ended up.
type locationHost interface {
	LocationChanged(ctx context.Context, location string)
}

// printNavigator writes every navigation request and completes it at once.
type printNavigator struct {
	out  io.Writer
	host locationHost
}

var _ model.Navigator = (*printNavigator)(nil)

func (n *printNavigator) Navigate(ctx context.Context, req model.NavigationRequest) error {
	if _, err := fmt.Fprintf(n.out, "navigate #%d %s\n", req.ID, req.Target); err != nil {
		return err
	}
	if n.host != nil {
		n.host.LocationChanged(ctx, req.Target)
	}
	return nil
}
