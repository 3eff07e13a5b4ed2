package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/ajitpratap0/pokedex/internal/models"
)

// SQLStore implements Store with hand-written statements over database/sql.
// Every operation opens its own single-connection handle and closes it
// before returning; nothing is held between calls.
type SQLStore struct {
	driver  string
	dsn     string
	dialect Dialect
	table   string
	q       queries
	logger  zerolog.Logger
}

// NewSQLStore validates the driver and table name and prepares the statements.
// It does not connect; use Ping for that.
func NewSQLStore(driver, dsn, table string, logger zerolog.Logger) (*SQLStore, error) {
	dialect, err := DialectForDriver(driver)
	if err != nil {
		return nil, err
	}
	if !ValidTableName(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if dsn == "" {
		return nil, errors.New("empty data source name")
	}
	if dialect == DialectMySQL {
		if dsn, err = normalizeMySQLDSN(dsn); err != nil {
			return nil, err
		}
	}

	return &SQLStore{
		driver:  driver,
		dsn:     dsn,
		dialect: dialect,
		table:   table,
		q:       buildQueries(dialect, table),
		logger:  logger.With().Str("component", "store").Str("driver", driver).Str("table", table).Logger(),
	}, nil
}

// normalizeMySQLDSN makes UPDATE report matched rather than changed rows, so
// rewriting a record with identical values is not mistaken for a missing id.
func normalizeMySQLDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parsing mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

// Dialect returns the SQL dialect in use.
func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

// acquire opens a dedicated handle and checks out its only connection.
// The returned release func closes both.
func (s *SQLStore) acquire(ctx context.Context) (*sql.Conn, func(), error) {
	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s database: %w", s.dialect, err)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("connecting to %s database: %w", s.dialect, err)
	}

	return conn, func() {
		_ = conn.Close()
		_ = db.Close()
	}, nil
}

func (s *SQLStore) exec(ctx context.Context, query string, args ...any) (int64, error) {
	conn, release, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return n, nil
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) ([]models.Pokemon, error) {
	conn, release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.Pokemon, 0)
	for rows.Next() {
		p, err := scanPokemon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

// scanPokemon maps one row, reading NULL optional columns as zero values.
// Only active rows are ever selected.
func scanPokemon(rows *sql.Rows) (models.Pokemon, error) {
	var (
		p              models.Pokemon
		typ, ability   sql.NullString
		height, weight sql.NullFloat64
	)
	if err := rows.Scan(&p.ID, &p.Name, &typ, &height, &weight, &ability); err != nil {
		return models.Pokemon{}, fmt.Errorf("scanning row: %w", err)
	}
	p.Type = typ.String
	p.Height = height.Float64
	p.Weight = weight.Float64
	p.Ability = ability.String
	p.Active = true
	return p, nil
}

// EnsureTable creates the catalog table if it doesn't exist.
func (s *SQLStore) EnsureTable(ctx context.Context) error {
	if _, err := s.exec(ctx, s.q.create); err != nil {
		return fmt.Errorf("creating table %s: %w", s.table, err)
	}
	s.logger.Info().Msg("table ready")
	return nil
}

// ListActive returns every active record in store order.
func (s *SQLStore) ListActive(ctx context.Context) ([]models.Pokemon, error) {
	start := time.Now()
	out, err := s.query(ctx, s.q.list)
	if err != nil {
		return nil, fmt.Errorf("listing active pokemon: %w", err)
	}
	s.logger.Debug().Int("rows", len(out)).Dur("took", time.Since(start)).Msg("listed active pokemon")
	return out, nil
}

// Insert adds a new active record.
func (s *SQLStore) Insert(ctx context.Context, p models.Pokemon) error {
	_, err := s.exec(ctx, s.q.insert, p.ID, p.Name, p.Type, p.Height, p.Weight, p.Ability)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %d: %w", ErrDuplicateID, p.ID, err)
		}
		return fmt.Errorf("inserting pokemon %d: %w", p.ID, err)
	}
	s.logger.Debug().Int("id", p.ID).Msg("inserted pokemon")
	return nil
}

// Update overwrites Name, Type, Height, Weight and Ability of the row with p.ID.
func (s *SQLStore) Update(ctx context.Context, p models.Pokemon) error {
	n, err := s.exec(ctx, s.q.update, p.Name, p.Type, p.Height, p.Weight, p.Ability, p.ID)
	if err != nil {
		return fmt.Errorf("updating pokemon %d: %w", p.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, p.ID)
	}
	s.logger.Debug().Int("id", p.ID).Int64("rows", n).Msg("updated pokemon")
	return nil
}

// Release clears the active flag of the row with the given id. A row that is
// missing or already released yields ErrNotFound.
func (s *SQLStore) Release(ctx context.Context, id int) error {
	n, err := s.exec(ctx, s.q.release, id)
	if err != nil {
		return fmt.Errorf("releasing pokemon %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s.logger.Debug().Int("id", id).Msg("released pokemon")
	return nil
}

// Search returns active rows whose lower-cased name or textual id contains query.
func (s *SQLStore) Search(ctx context.Context, query string) ([]models.Pokemon, error) {
	q := lowerText(query)
	out, err := s.query(ctx, s.q.search, q, q)
	if err != nil {
		return nil, fmt.Errorf("searching pokemon: %w", err)
	}
	s.logger.Debug().Str("query", q).Int("rows", len(out)).Msg("searched pokemon")
	return out, nil
}

// Ping opens a connection and checks the server answers.
func (s *SQLStore) Ping(ctx context.Context) error {
	conn, release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging %s database: %w", s.dialect, err)
	}
	return nil
}

// Close is a no-op: no connection outlives an operation.
func (s *SQLStore) Close() error {
	return nil
}
