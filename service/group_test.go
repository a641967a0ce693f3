package service

import (
	"context"
	"errors"
	"testing"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(groupTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type groupTestSuite struct{}

func (s *groupTestSuite) TestServicesRunInOrder(c *check.C) {
	var order []string

	group := Group{
		&serviceStub{name: "first", order: &order},
		&serviceStub{name: "second", order: &order},
		&serviceStub{name: "third", order: &order},
	}

	err := group.Execute(context.TODO())
	c.Assert(err, check.IsNil)
	c.Assert(order, check.DeepEquals, []string{"first", "second", "third"})
}

func (s *groupTestSuite) TestErrorStopsGroup(c *check.C) {
	var order []string

	group := Group{
		&serviceStub{name: "first", order: &order},
		&serviceStub{name: "second", order: &order, err: errors.New("boom")},
		&serviceStub{name: "third", order: &order},
	}

	err := group.Execute(context.TODO())
	c.Assert(err, check.ErrorMatches, "(?s).*second: boom.*")
	c.Assert(order, check.DeepEquals, []string{"first", "second"})
}

func (s *groupTestSuite) TestCancelledContextStopsGroup(c *check.C) {
	var order []string

	ctx, cancelFn := context.WithCancel(context.TODO())
	cancelFn()

	group := Group{&serviceStub{name: "first", order: &order}}

	err := group.Execute(ctx)
	c.Assert(err, check.ErrorMatches, "(?s).*context canceled.*")
	c.Assert(order, check.HasLen, 0)
}

type serviceStub struct {
	name  string
	order *[]string
	err   error
}

func (s *serviceStub) Name() string { return s.name }

func (s *serviceStub) Run(_ context.Context) error {
	*s.order = append(*s.order, s.name)

	return s.err
}
