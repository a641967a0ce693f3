/*
	service package defines the application services and the glue that
	runs them. A search engine run is phased: the crawl must drain the
	frontier before ranking may read the graph, and ranking must finish
	before queries are served. Group therefore executes its services in
	order, not in parallel.
*/

package service

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Service describes an application service.
type Service interface {
	// Name returns the name of the service.
	Name() string

	// Run executes the service and blocks until it completes, the
	// context gets cancelled or an error occurs.
	Run(context.Context) error
}

// Group is an ordered list of Service instances executed one after
// another.
type Group []Service

// Execute runs each service in the group to completion in order. A
// service error or a cancelled context stops the group; the
// accumulated errors are returned.
func (g Group) Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var err error
	for _, s := range g {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = multierror.Append(err, ctxErr)

			break
		}

		if runErr := s.Run(ctx); runErr != nil {
			err = multierror.Append(err, fmt.Errorf("%s: %w", s.Name(), runErr))

			break
		}
	}

	return err
}
