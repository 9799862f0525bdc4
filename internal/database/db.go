package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Pool defaults, overridable per deployment through Params.
const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 10
	defaultConnMaxLife  = 30 * time.Minute
	pingTimeout         = 5 * time.Second
)

// Params carries the MySQL connection settings.  The zero values of
// the pool fields select the package defaults above.
type Params struct {
	User string
	Pass string // empty means no password
	Host string
	Port string
	Name string

	MaxOpenConns int
	MaxIdleConns int
	ConnMaxLife  time.Duration
}

// dsn renders the go-sql-driver DSN.  parseTime maps DATETIME columns
// onto time.Time and loc=UTC keeps every timestamp in one zone.
func (p Params) dsn() string {
	auth := p.User
	if p.Pass != "" {
		auth += ":" + p.Pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, p.Host, p.Port, p.Name)
}

// withDefaults fills unset pool fields.  Idle connections never exceed
// the open limit.
func (p Params) withDefaults() Params {
	if p.MaxOpenConns <= 0 {
		p.MaxOpenConns = defaultMaxOpenConns
	}
	if p.MaxIdleConns <= 0 {
		p.MaxIdleConns = defaultMaxIdleConns
	}
	if p.MaxIdleConns > p.MaxOpenConns {
		p.MaxIdleConns = p.MaxOpenConns
	}
	if p.ConnMaxLife <= 0 {
		p.ConnMaxLife = defaultConnMaxLife
	}
	return p
}

// Open connects to MySQL, applies the pool settings and verifies the
// connection with a bounded ping.
func Open(p Params) (*sql.DB, error) {
	p = p.withDefaults()

	db, err := sql.Open("mysql", p.dsn())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(p.MaxOpenConns)
	db.SetMaxIdleConns(p.MaxIdleConns)
	db.SetConnMaxLifetime(p.ConnMaxLife)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
