package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeReply is what the fake driver answers for one statement.
type fakeReply struct {
	columns      []string
	rows         [][]driver.Value
	rowsAffected int64
}

type executed struct {
	query string
	args  []driver.Value
}

// fakeDB is a database/sql driver that records statements and answers them
// from a reply function, so gorm can run against it without a server.
type fakeDB struct {
	mu       sync.Mutex
	executed []executed
	reply    func(query string) fakeReply
}

func newFakeGorm(t *testing.T, reply func(query string) fakeReply) (*gorm.DB, *fakeDB) {
	t.Helper()
	fake := &fakeDB{reply: reply}
	sqlDB := sql.OpenDB(fake)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, fake
}

func (f *fakeDB) record(query string, args []driver.NamedValue) fakeReply {
	values := make([]driver.Value, len(args))
	for i, a := range args {
		values[i] = a.Value
	}
	f.mu.Lock()
	f.executed = append(f.executed, executed{query: query, args: values})
	f.mu.Unlock()
	if f.reply == nil {
		return fakeReply{}
	}
	return f.reply(query)
}

// statements returns every recorded statement containing substr.
func (f *fakeDB) statements(substr string) []executed {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []executed
	for _, e := range f.executed {
		if strings.Contains(e.query, substr) {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeDB) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.executed))
	for i, e := range f.executed {
		out[i] = e.query
	}
	return out
}

func (f *fakeDB) Connect(context.Context) (driver.Conn, error) { return &fakeConn{db: f}, nil }
func (f *fakeDB) Driver() driver.Driver                        { return fakeDriver{f} }

type fakeDriver struct{ db *fakeDB }

func (d fakeDriver) Open(string) (driver.Conn, error) { return &fakeConn{db: d.db}, nil }

type fakeConn struct{ db *fakeDB }

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	c.db.record("BEGIN", nil)
	return fakeTx{db: c.db}, nil
}

func (c *fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	reply := c.db.record(query, args)
	return driver.RowsAffected(reply.rowsAffected), nil
}

func (c *fakeConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	reply := c.db.record(query, args)
	columns := reply.columns
	if len(columns) == 0 {
		columns = []string{"id"}
	}
	return &fakeRows{columns: columns, rows: reply.rows}, nil
}

type fakeTx struct{ db *fakeDB }

func (t fakeTx) Commit() error {
	t.db.record("COMMIT", nil)
	return nil
}

func (t fakeTx) Rollback() error {
	t.db.record("ROLLBACK", nil)
	return nil
}

type fakeRows struct {
	columns []string
	rows    [][]driver.Value
	next    int
}

func (r *fakeRows) Columns() []string { return r.columns }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.next >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.next])
	r.next++
	return nil
}
