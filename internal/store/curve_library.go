package store

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"pumpsizer/internal/domain"
)

// CurveLibrary is a SQLite-backed pump curve store shared between projects.
type CurveLibrary struct {
	conn *sqlx.DB
}

type modelRow struct {
	ID    string `db:"id"`
	Label string `db:"label"`
}

type lineRow struct {
	ModelID string  `db:"model_id"`
	RPM     float64 `db:"rpm"`
	Label   string  `db:"label"`
	Points  string  `db:"points_json"`
}

// OpenCurveLibrary opens or creates the library database at path.
func OpenCurveLibrary(path string) (*CurveLibrary, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open curve library: %w", err)
	}
	lib := &CurveLibrary{conn: conn}
	if err := lib.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate curve library: %w", err)
	}
	return lib, nil
}

// Close closes the database connection.
func (l *CurveLibrary) Close() error {
	return l.conn.Close()
}

func (l *CurveLibrary) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pump_models (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rpm_lines (
		model_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		rpm REAL NOT NULL,
		label TEXT NOT NULL,
		points_json TEXT NOT NULL,
		PRIMARY KEY (model_id, seq)
	);`
	_, err := l.conn.Exec(schema)
	return err
}

// LoadLibrary returns every model with its lines ordered by speed.
func (l *CurveLibrary) LoadLibrary() (domain.CurveLibrary, error) {
	var models []modelRow
	if err := l.conn.Select(&models, `SELECT id, label FROM pump_models`); err != nil {
		return nil, fmt.Errorf("load pump models: %w", err)
	}
	var lines []lineRow
	if err := l.conn.Select(&lines,
		`SELECT model_id, rpm, label, points_json FROM rpm_lines ORDER BY model_id, rpm, seq`); err != nil {
		return nil, fmt.Errorf("load rpm lines: %w", err)
	}

	out := make(domain.CurveLibrary, len(models))
	for _, m := range models {
		out[m.ID] = domain.PumpCurveModel{ID: m.ID, Label: m.Label}
	}
	for _, r := range lines {
		m, ok := out[r.ModelID]
		if !ok {
			continue
		}
		line := domain.RpmLine{RPM: r.RPM, Label: r.Label}
		if err := json.Unmarshal([]byte(r.Points), &line.Points); err != nil {
			return nil, fmt.Errorf("decode points for %s@%v: %w", r.ModelID, r.RPM, err)
		}
		m.Lines = append(m.Lines, line)
		out[r.ModelID] = m
	}
	return out, nil
}

// SaveModel inserts or replaces m and all of its lines.
func (l *CurveLibrary) SaveModel(m domain.PumpCurveModel) error {
	tx, err := l.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO pump_models (id, label) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET label = excluded.label`, m.ID, m.Label); err != nil {
		return fmt.Errorf("save model %s: %w", m.ID, err)
	}
	if _, err := tx.Exec(`DELETE FROM rpm_lines WHERE model_id = ?`, m.ID); err != nil {
		return fmt.Errorf("replace lines of %s: %w", m.ID, err)
	}
	for i, line := range m.Lines {
		pts, err := json.Marshal(line.Points)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO rpm_lines (model_id, seq, rpm, label, points_json)
			VALUES (?, ?, ?, ?, ?)`, m.ID, i, line.RPM, line.Label, string(pts)); err != nil {
			return fmt.Errorf("save line %v of %s: %w", line.RPM, m.ID, err)
		}
	}
	return tx.Commit()
}

// DeleteModel removes a model and its lines. Unknown ids are not an error.
func (l *CurveLibrary) DeleteModel(id string) error {
	tx, err := l.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM rpm_lines WHERE model_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM pump_models WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Compile-time assertion that CurveLibrary implements domain.CurveStore.
var _ domain.CurveStore = (*CurveLibrary)(nil)
