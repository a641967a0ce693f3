package cdb

import (
	"database/sql"
	"os"
	"testing"

	check "gopkg.in/check.v1"

	"unisearch/linkgraph/graph/graphtest"
)

// Initialize and register an instance of the cockroachDBGraphTestSuite to be
// executed by check testing package.
var _ = check.Suite(new(cockroachDBGraphTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

// cockroachDBGraphTestSuite embeds and runs the BaseSuite test methods
// against a real database instance pointed to by the CDB_DSN env var.
type cockroachDBGraphTestSuite struct {
	// Keep track of the sql.DB instance from the graph implementation
	// so we can execute SQL statements to reset the db between tests.
	db *sql.DB
	graphtest.BaseSuite
}

func (s *cockroachDBGraphTestSuite) SetUpSuite(c *check.C) {
	dsn := os.Getenv("CDB_DSN")
	if dsn == "" {
		c.Skip("Missing CDB_DSN envvar: skipping cockroachDB backed test suite")
	}

	g, err := NewCockroachDBGraph(dsn)
	if err != nil {
		c.Fatalf("Failed to make a database connection: %v", err)
	}

	s.SetGraph(g)
	s.db = g.db
}

// SetUpTest resets the database tables before each test.
func (s *cockroachDBGraphTestSuite) SetUpTest(c *check.C) {
	if s.db != nil {
		s.flushDB(c)
	}
}

func (s *cockroachDBGraphTestSuite) TearDownSuite(c *check.C) {
	if s.db != nil {
		s.flushDB(c)
		c.Assert(s.db.Close(), check.IsNil)
	}
}

func (s *cockroachDBGraphTestSuite) flushDB(c *check.C) {
	_, err := s.db.Exec("DELETE FROM edges")
	c.Assert(err, check.IsNil)

	_, err = s.db.Exec("DELETE FROM links")
	c.Assert(err, check.IsNil)
}
