package gateway

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// DatabaseHost is the shared MySQL service as seen from an environment.
	DatabaseHost     = "mysql"
	DatabasePassword = "password"

	maxUserLength  = 32
	userHashLength = 8

	readyAttempts = 30
)

// DatabaseUser is the MySQL account owning the database of slug. Slugs too
// long for a MySQL user name keep a prefix and end in a hash of the full slug,
// so two long slugs sharing a prefix still get distinct users.
func DatabaseUser(slug string) string {
	if len(slug) <= maxUserLength {
		return slug
	}
	sum := sha1.Sum([]byte(slug))
	prefix := slug[:maxUserLength-userHashLength-1]
	return prefix + "_" + hex.EncodeToString(sum[:])[:userHashLength]
}

type Database struct {
	gtwy         *Gateway
	container    string
	rootPassword string
	retryDelay   time.Duration
}

func (g *Gateway) Database(container, rootPassword string) *Database {
	return &Database{gtwy: g, container: container, rootPassword: rootPassword, retryDelay: time.Second}
}

// Wait blocks until the server accepts statements. A freshly started
// container needs a few seconds before mysqld listens.
func (d *Database) Wait(ctx context.Context) error {
	var err error
	for attempt := 0; attempt < readyAttempts; attempt++ {
		if err = d.gtwy.ExecSQL(ctx, d.container, d.rootPassword, "SELECT 1;"); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.retryDelay):
		}
	}
	return fmt.Errorf("database did not become ready: %w", err)
}

func (d *Database) Create(ctx context.Context, slug string) error {
	return d.gtwy.ExecSQL(ctx, d.container, d.rootPassword,
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`;", slug))
}

// AssignPrivileges creates the environment's user with full rights on its
// own database only.
func (d *Database) AssignPrivileges(ctx context.Context, slug string) error {
	user := DatabaseUser(slug)
	return d.gtwy.ExecSQL(ctx, d.container, d.rootPassword, fmt.Sprintf(
		"CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'; GRANT ALL PRIVILEGES ON `%s`.* TO '%s'@'%%'; FLUSH PRIVILEGES;",
		user, DatabasePassword, slug, user))
}

func (d *Database) Drop(ctx context.Context, slug string) error {
	return d.gtwy.ExecSQL(ctx, d.container, d.rootPassword, fmt.Sprintf(
		"DROP DATABASE IF EXISTS `%s`; DROP USER IF EXISTS '%s'@'%%';", slug, DatabaseUser(slug)))
}
