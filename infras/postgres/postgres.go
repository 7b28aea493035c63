package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"bazaar/config"
)

const driverName = "postgres"

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New connects both pools. Reads fall back to the primary when no replica host is configured.
func New(config *config.Config) *Connection {
	write := connect("write", *config, config.DB.Postgres.Write)

	if config.DB.Postgres.Read.Host == "" {
		return &Connection{Read: write, Write: write}
	}

	return &Connection{
		Read:  connect("read", *config, config.DB.Postgres.Read),
		Write: write,
	}
}

func (c *Connection) Close() error {
	if c.Read != nil && c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if c.Write != nil {
		return c.Write.Close() //nolint:wrapcheck
	}

	return nil
}

func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// DSN builds the lib/pq connection URL for one endpoint.
func DSN(config config.Config, endpoint config.PostgresEndpoint) string {
	query := url.Values{}

	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     getDBName(config, endpoint.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(name string, config config.Config, endpoint config.PostgresEndpoint) *sqlx.DB {
	pool := config.DB.Postgres
	attempts := max(1, pool.MaxRetry)

	for attempt := range attempts {
		sqlDB, err := sqlx.Connect(driverName, DSN(config, endpoint))
		if err == nil {
			sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
			sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
			sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleSec) * time.Second)

			log.Info().
				Str("name", name).
				Str("host", endpoint.Host).
				Str("dbName", getDBName(config, endpoint.Name)).
				Msg("Connected to database")

			return sqlDB
		}

		log.Error().
			Err(err).
			Str("name", name).
			Str("host", endpoint.Host).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pool.RetryWaitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Int("attempts", attempts).Msg("Giving up connecting to database")

	return nil
}
