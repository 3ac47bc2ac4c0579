package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"

	"github.com/mattn/go-sqlite3"
)

// Repository implements the event, monitor and account repositories on SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository opens (creating if needed) the database and initializes its schema.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/dashboard.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("%w: failed to open database at '%s': %w", ports.ErrDBConnection, dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("%w: failed to ping database at '%s': %w", ports.ErrDBConnection, dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trade_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		event_time TEXT NOT NULL,
		side TEXT NOT NULL,
		price REAL NOT NULL,
		qty REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS monitors (
		symbol TEXT PRIMARY KEY,
		stop_loss REAL NULL,
		momentum_score REAL NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS account_pnl (
		date TEXT PRIMARY KEY,
		value_usd REAL NOT NULL,
		pct_pnl REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS positions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		quantity REAL NOT NULL,
		entry_price REAL NOT NULL DEFAULT 0,
		stop_loss REAL NOT NULL DEFAULT 0,
		entry_time TIMESTAMP NOT NULL,
		exit_time TIMESTAMP NULL,
		status TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ranked_coins (
		symbol TEXT PRIMARY KEY,
		score REAL NOT NULL,
		price REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trade_events_symbol ON trade_events (symbol, id);
	CREATE INDEX IF NOT EXISTS idx_positions_status ON positions (status, symbol);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrDBConnection, err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// --- EventRepository Implementation ---

// CreateEvent saves a trade event and returns its assigned ID.
func (r *Repository) CreateEvent(ctx context.Context, event *domain.TradeEvent) (int64, error) {
	const query = `
	INSERT INTO trade_events (symbol, event_time, side, price, qty)
	VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, event.Symbol, event.Time, string(event.Side), event.Price, event.Qty)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert trade event for symbol %s: %w", ports.ErrUpdateFailed, event.Symbol, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for trade event %s: %w", event.Symbol, err)
	}
	event.ID = id
	r.logger.Debug(ctx, "Trade event created", map[string]interface{}{"eventID": id, "symbol": event.Symbol, "side": string(event.Side)})
	return id, nil
}

// FindEventsBySymbol returns the symbol's events in insertion order.
func (r *Repository) FindEventsBySymbol(ctx context.Context, symbol string) ([]domain.TradeEvent, error) {
	const query = `
	SELECT id, symbol, event_time, side, price, qty
	FROM trade_events
	WHERE symbol = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: trade events for symbol %s: %w", ports.ErrQueryFailed, symbol, err)
	}
	defer rows.Close()

	events := make([]domain.TradeEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade event: %w", err)
		}
		events = append(events, *e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade event rows: %w", err)
	}
	return events, nil
}

// --- MonitorRepository Implementation ---

// UpsertMonitor replaces the monitor row for the symbol.
func (r *Repository) UpsertMonitor(ctx context.Context, m *domain.Monitor) error {
	const query = `
	INSERT INTO monitors (symbol, stop_loss, momentum_score, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(symbol) DO UPDATE SET
		stop_loss = excluded.stop_loss,
		momentum_score = excluded.momentum_score,
		updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, m.Symbol, nullFloat(m.StopLoss), nullFloat(m.MomentumScore), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: failed to upsert monitor for symbol %s: %w", ports.ErrUpdateFailed, m.Symbol, err)
	}
	r.logger.Debug(ctx, "Monitor updated", map[string]interface{}{"symbol": m.Symbol})
	return nil
}

// FindMonitor returns nil, nil when the symbol has no monitor row.
func (r *Repository) FindMonitor(ctx context.Context, symbol string) (*domain.Monitor, error) {
	const query = `SELECT symbol, stop_loss, momentum_score FROM monitors WHERE symbol = ?`

	var (
		m        domain.Monitor
		stopLoss sql.NullFloat64
		momentum sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, query, symbol).Scan(&m.Symbol, &stopLoss, &momentum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: monitor for symbol %s: %w", ports.ErrQueryFailed, symbol, err)
	}
	if stopLoss.Valid {
		m.StopLoss = &stopLoss.Float64
	}
	if momentum.Valid {
		m.MomentumScore = &momentum.Float64
	}
	return &m, nil
}

// --- AccountRepository Implementation ---

// CreateSnapshot saves a daily valuation. A second snapshot for the same date
// fails with ports.ErrAlreadyExists.
func (r *Repository) CreateSnapshot(ctx context.Context, snap *domain.AccountSnapshot) error {
	const query = `INSERT INTO account_pnl (date, value_usd, pct_pnl) VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, snap.Date, snap.ValueUSD, snap.PctPnL); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: snapshot for %s", ports.ErrAlreadyExists, snap.Date)
		}
		return fmt.Errorf("%w: failed to insert snapshot for %s: %w", ports.ErrUpdateFailed, snap.Date, err)
	}
	r.logger.Debug(ctx, "Account snapshot created", map[string]interface{}{"date": snap.Date, "valueUSD": snap.ValueUSD})
	return nil
}

// FindSnapshots returns all snapshots ordered by date ascending.
func (r *Repository) FindSnapshots(ctx context.Context) ([]domain.AccountSnapshot, error) {
	const query = `SELECT date, value_usd, pct_pnl FROM account_pnl ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: account snapshots: %w", ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	snaps := make([]domain.AccountSnapshot, 0)
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account snapshot: %w", err)
		}
		snaps = append(snaps, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account snapshot rows: %w", err)
	}
	return snaps, nil
}

// LatestSnapshot returns the most recent snapshot, or nil, nil when there is none.
func (r *Repository) LatestSnapshot(ctx context.Context) (*domain.AccountSnapshot, error) {
	const query = `SELECT date, value_usd, pct_pnl FROM account_pnl ORDER BY date DESC LIMIT 1`

	s, err := scanSnapshot(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: latest account snapshot: %w", ports.ErrQueryFailed, err)
	}
	return s, nil
}

// --- PositionRepository Implementation ---

// CreatePosition saves an open position and returns its assigned ID.
func (r *Repository) CreatePosition(ctx context.Context, pos *domain.Position) (int64, error) {
	const query = `
	INSERT INTO positions (symbol, quantity, entry_price, stop_loss, entry_time, status)
	VALUES (?, ?, ?, ?, ?, ?)`

	if pos.EntryTime.IsZero() {
		pos.EntryTime = time.Now().UTC()
	}
	pos.Status = domain.StatusOpen
	result, err := r.db.ExecContext(ctx, query, pos.Symbol, pos.Quantity, pos.EntryPrice, pos.StopLoss, pos.EntryTime, string(pos.Status))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert position for symbol %s: %w", ports.ErrUpdateFailed, pos.Symbol, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for position %s: %w", pos.Symbol, err)
	}
	pos.ID = id
	r.logger.Debug(ctx, "Position created", map[string]interface{}{"positionID": id, "symbol": pos.Symbol, "quantity": pos.Quantity})
	return id, nil
}

// ClosePositions marks every open position for the symbol closed.
func (r *Repository) ClosePositions(ctx context.Context, symbol string) error {
	const query = `UPDATE positions SET status = ?, exit_time = ? WHERE symbol = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, string(domain.StatusClosed), time.Now().UTC(), symbol, string(domain.StatusOpen))
	if err != nil {
		return fmt.Errorf("%w: failed to close positions for symbol %s: %w", ports.ErrUpdateFailed, symbol, err)
	}
	closed, _ := result.RowsAffected()
	r.logger.Debug(ctx, "Positions closed", map[string]interface{}{"symbol": symbol, "count": closed})
	return nil
}

// FindOpenPositions returns open positions ordered by symbol, then ID.
func (r *Repository) FindOpenPositions(ctx context.Context) ([]domain.Position, error) {
	const query = `
	SELECT id, symbol, quantity, entry_price, stop_loss, entry_time, exit_time, status
	FROM positions
	WHERE status = ? ORDER BY symbol ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, string(domain.StatusOpen))
	if err != nil {
		return nil, fmt.Errorf("%w: open positions: %w", ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	positions := make([]domain.Position, 0)
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position rows: %w", err)
	}
	return positions, nil
}

// --- RankingRepository Implementation ---

// ReplaceRanking deletes the stored ranking and inserts coins in one transaction.
func (r *Repository) ReplaceRanking(ctx context.Context, coins []domain.RankedCoin) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin ranking transaction: %w", ports.ErrUpdateFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ranked_coins`); err != nil {
		return fmt.Errorf("%w: failed to clear ranking: %w", ports.ErrUpdateFailed, err)
	}
	for _, c := range coins {
		if _, err := tx.ExecContext(ctx, `INSERT INTO ranked_coins (symbol, score, price) VALUES (?, ?, ?)`, c.Symbol, c.Score, c.Price); err != nil {
			var sqliteErr sqlite3.Error
			if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
				return fmt.Errorf("%w: ranked coin %s", ports.ErrAlreadyExists, c.Symbol)
			}
			return fmt.Errorf("%w: failed to insert ranked coin %s: %w", ports.ErrUpdateFailed, c.Symbol, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit ranking: %w", ports.ErrUpdateFailed, err)
	}
	r.logger.Debug(ctx, "Ranking replaced", map[string]interface{}{"count": len(coins)})
	return nil
}

// FindRanking returns the ranking ordered by score descending.
func (r *Repository) FindRanking(ctx context.Context) ([]domain.RankedCoin, error) {
	const query = `SELECT symbol, score, price FROM ranked_coins ORDER BY score DESC, symbol ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: ranking: %w", ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	coins := make([]domain.RankedCoin, 0)
	for rows.Next() {
		var c domain.RankedCoin
		if err := rows.Scan(&c.Symbol, &c.Score, &c.Price); err != nil {
			return nil, fmt.Errorf("failed to scan ranked coin: %w", err)
		}
		coins = append(coins, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranking rows: %w", err)
	}
	return coins, nil
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(s scanner) (*domain.TradeEvent, error) {
	e := &domain.TradeEvent{}
	var side string
	if err := s.Scan(&e.ID, &e.Symbol, &e.Time, &side, &e.Price, &e.Qty); err != nil {
		return nil, err
	}
	e.Side = domain.Side(side)
	return e, nil
}

func scanPosition(s scanner) (*domain.Position, error) {
	p := &domain.Position{}
	var (
		status   string
		exitTime sql.NullTime
	)
	if err := s.Scan(&p.ID, &p.Symbol, &p.Quantity, &p.EntryPrice, &p.StopLoss, &p.EntryTime, &exitTime, &status); err != nil {
		return nil, err
	}
	if exitTime.Valid {
		p.ExitTime = exitTime.Time
	}
	p.Status = domain.PositionStatus(status)
	return p, nil
}

func scanSnapshot(s scanner) (*domain.AccountSnapshot, error) {
	snap := &domain.AccountSnapshot{}
	if err := s.Scan(&snap.Date, &snap.ValueUSD, &snap.PctPnL); err != nil {
		return nil, err
	}
	return snap, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
