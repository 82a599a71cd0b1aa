package storage

import (
	"fmt"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

// MatchExists returns true if a match with the given hash is already stored.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch inserts a match record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertMatch(m model.MatchSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO matches(hash, source, video_path, ingest_date, fps, shot_count, rally_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Hash, m.Source, m.VideoPath, m.IngestDate, m.FPS, m.ShotCount, m.RallyCount,
	)
	return err
}

// InsertShots bulk-inserts the shot stream in a transaction.
func (db *DB) InsertShots(hash string, shots []model.Shot) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO shots(
			match_hash, idx, frame, label, direction, winner_error,
			coord_x, coord_y, player_zone, court_side, player_id,
			rally_group, new_sequence, rating,
			timestamp, start_time, end_time, zone
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range shots {
		_, err = stmt.Exec(
			hash, s.Index, s.Frame, s.Label, s.Direction, s.WinnerError.String(),
			s.CoordX, s.CoordY, s.PlayerZone, s.Side.String(), s.PlayerID,
			s.Group, boolInt(s.NewSequence), s.Rating,
			s.Timestamp, s.StartTime, s.EndTime, s.Zone,
		)
		if err != nil {
			return fmt.Errorf("insert shot %d: %w", s.Index, err)
		}
	}
	return tx.Commit()
}

// InsertRallies bulk-inserts rally records in a transaction.
func (db *DB) InsertRallies(hash string, rallies []model.Rally) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO rallies(match_hash, rally_id, start_time, end_time, shot_count, winner)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rallies {
		_, err = stmt.Exec(hash, r.ID, r.StartTime(), r.EndTime(), len(r.Shots), r.Winner)
		if err != nil {
			return fmt.Errorf("insert rally %d: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// ListMatches returns all stored matches, newest first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT hash, source, video_path, ingest_date, fps, shot_count, rally_count
		FROM matches ORDER BY ingest_date DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var m model.MatchSummary
		if err := rows.Scan(&m.Hash, &m.Source, &m.VideoPath, &m.IngestDate, &m.FPS, &m.ShotCount, &m.RallyCount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMatchByPrefix resolves a hash prefix to a single match. Ambiguous or
// unknown prefixes are errors.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT hash, source, video_path, ingest_date, fps, shot_count, rally_count
		FROM matches WHERE hash LIKE ? || '%'`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.MatchSummary
	for rows.Next() {
		var m model.MatchSummary
		if err := rows.Scan(&m.Hash, &m.Source, &m.VideoPath, &m.IngestDate, &m.FPS, &m.ShotCount, &m.RallyCount); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no match with hash prefix %q", prefix)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("hash prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// GetShots returns the full ordered shot stream for a match.
func (db *DB) GetShots(hash string) ([]model.Shot, error) {
	rows, err := db.conn.Query(`
		SELECT idx, frame, label, direction, winner_error,
		       coord_x, coord_y, player_zone, court_side, player_id,
		       rally_group, new_sequence, rating,
		       timestamp, start_time, end_time, zone
		FROM shots WHERE match_hash = ? ORDER BY idx`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Shot
	for rows.Next() {
		var s model.Shot
		var outcome, side string
		var newSeq int
		err := rows.Scan(
			&s.Index, &s.Frame, &s.Label, &s.Direction, &outcome,
			&s.CoordX, &s.CoordY, &s.PlayerZone, &side, &s.PlayerID,
			&s.Group, &newSeq, &s.Rating,
			&s.Timestamp, &s.StartTime, &s.EndTime, &s.Zone,
		)
		if err != nil {
			return nil, err
		}
		s.WinnerError = model.OutcomeFromString(outcome)
		s.Side = model.SideFromString(side)
		s.NewSequence = newSeq != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// RallyRow is the stored rally summary (shots live in the shots table).
type RallyRow struct {
	ID        int
	StartTime float64
	EndTime   float64
	ShotCount int
	Winner    string
}

// GetRallies returns rally summaries for a match, ordered by start time.
func (db *DB) GetRallies(hash string) ([]RallyRow, error) {
	rows, err := db.conn.Query(`
		SELECT rally_id, start_time, end_time, shot_count, winner
		FROM rallies WHERE match_hash = ? ORDER BY start_time`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RallyRow
	for rows.Next() {
		var r RallyRow
		if err := rows.Scan(&r.ID, &r.StartTime, &r.EndTime, &r.ShotCount, &r.Winner); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteMatch removes a match and its shots and rallies.
func (db *DB) DeleteMatch(hash string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM shots WHERE match_hash = ?",
		"DELETE FROM rallies WHERE match_hash = ?",
		"DELETE FROM matches WHERE hash = ?",
	} {
		if _, err := tx.Exec(q, hash); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LabelCount is one row of the shot-label breakdown.
type LabelCount struct {
	Label string
	Count int
}

// CountByLabel returns shot counts per label across all matches (or one
// match when hash is non-empty), most frequent first.
func (db *DB) CountByLabel(hash string) ([]LabelCount, error) {
	q := "SELECT label, COUNT(1) FROM shots"
	args := []interface{}{}
	if hash != "" {
		q += " WHERE match_hash = ?"
		args = append(args, hash)
	}
	q += " GROUP BY label ORDER BY COUNT(1) DESC, label"

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LabelCount
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

// Totals returns database-wide match, shot, and rally counts.
func (db *DB) Totals() (matches, shots, rallies int, err error) {
	if err = db.conn.QueryRow("SELECT COUNT(1) FROM matches").Scan(&matches); err != nil {
		return
	}
	if err = db.conn.QueryRow("SELECT COUNT(1) FROM shots").Scan(&shots); err != nil {
		return
	}
	err = db.conn.QueryRow("SELECT COUNT(1) FROM rallies").Scan(&rallies)
	return
}

// RunQuery executes an arbitrary read query and returns column names plus
// stringified rows, for the sql command.
func (db *DB) RunQuery(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		raw := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			switch val := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(val)
			default:
				row[i] = fmt.Sprintf("%v", val)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
