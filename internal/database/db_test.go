package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParamsDSN(t *testing.T) {
	p := Params{User: "fleet", Pass: "s3cret", Host: "db.internal", Port: "3306", Name: "fleet_inventory"}
	assert.Equal(t,
		"fleet:s3cret@tcp(db.internal:3306)/fleet_inventory?charset=utf8mb4&parseTime=true&loc=UTC",
		p.dsn())

	p.Pass = ""
	assert.Equal(t,
		"fleet@tcp(db.internal:3306)/fleet_inventory?charset=utf8mb4&parseTime=true&loc=UTC",
		p.dsn())
}

func TestParamsWithDefaults(t *testing.T) {
	got := Params{}.withDefaults()
	assert.Equal(t, defaultMaxOpenConns, got.MaxOpenConns)
	assert.Equal(t, defaultMaxIdleConns, got.MaxIdleConns)
	assert.Equal(t, defaultConnMaxLife, got.ConnMaxLife)

	got = Params{MaxOpenConns: 4, MaxIdleConns: 9, ConnMaxLife: time.Minute}.withDefaults()
	assert.Equal(t, 4, got.MaxOpenConns)
	// Idle never exceeds open.
	assert.Equal(t, 4, got.MaxIdleConns)
	assert.Equal(t, time.Minute, got.ConnMaxLife)
}
