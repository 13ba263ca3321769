package trace

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteWriter buffers access records and inserts them into a SQLite
// database in batches, one transaction per batch.
type SQLiteWriter struct {
	db        *sql.DB
	statement *sql.Stmt

	dbName    string
	runID     string
	records   []AccessRecord
	batchSize int
	err       error
}

// NewSQLiteWriter creates a writer for the database path stem. An empty stem
// picks cachesim_trace_<xid>. The ".sqlite3" suffix is added on Init.
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{
		dbName:    path,
		runID:     xid.New().String(),
		batchSize: 100000,
	}
}

// RunID identifies this run in the access table.
func (w *SQLiteWriter) RunID() string {
	return w.runID
}

// Filename returns the database file the writer targets.
func (w *SQLiteWriter) Filename() string {
	return w.dbName + ".sqlite3"
}

// Init creates the database file, the access table and the insert statement.
func (w *SQLiteWriter) Init() error {
	if w.dbName == "" {
		w.dbName = "cachesim_trace_" + w.runID
	}
	filename := w.Filename()
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filename, err)
	}
	w.db = db

	if _, err := w.db.Exec(`
		CREATE TABLE access (
			run_id   TEXT    NOT NULL,
			seq      INTEGER NOT NULL,
			clock_ns REAL    NOT NULL,
			level    TEXT,
			kind     TEXT    NOT NULL,
			address  INTEGER NOT NULL,
			hit      INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`); err != nil {
		return fmt.Errorf("creating access table: %w", err)
	}

	stmt, err := w.db.Prepare(
		`INSERT INTO access (run_id, seq, clock_ns, level, kind, address, hit) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	w.statement = stmt

	atexit.Register(func() { _ = w.Close() })
	return nil
}

// Record implements Recorder. Insert errors are kept and returned by Close.
func (w *SQLiteWriter) Record(rec AccessRecord) {
	w.records = append(w.records, rec)
	if len(w.records) >= w.batchSize {
		w.Flush()
	}
}

// Flush writes all buffered records in one transaction.
func (w *SQLiteWriter) Flush() {
	if len(w.records) == 0 || w.db == nil || w.err != nil {
		w.records = nil
		return
	}

	tx, err := w.db.Begin()
	if err != nil {
		w.err = fmt.Errorf("begin transaction: %w", err)
		return
	}
	stmt := tx.Stmt(w.statement)
	for _, r := range w.records {
		// SQLite integers are signed 64-bit; addresses keep their bit pattern.
		if _, err := stmt.Exec(w.runID, int64(r.Seq), r.Clock, r.Level, string(r.Kind), int64(r.Address), r.Hit); err != nil {
			_ = tx.Rollback()
			w.err = fmt.Errorf("inserting access %d: %w", r.Seq, err)
			w.records = nil
			return
		}
	}
	if err := tx.Commit(); err != nil {
		w.err = fmt.Errorf("commit transaction: %w", err)
	}
	w.records = nil
}

// Close flushes and closes the database. Safe to call more than once.
func (w *SQLiteWriter) Close() error {
	if w.db == nil {
		return w.err
	}
	w.Flush()
	if w.statement != nil {
		_ = w.statement.Close()
		w.statement = nil
	}
	if err := w.db.Close(); err != nil && w.err == nil {
		w.err = err
	}
	w.db = nil
	return w.err
}
