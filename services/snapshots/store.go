package snapshots

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"skolexport/lib/scrapers/skola24"
	"skolexport/lib/timezone"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// Store keeps the lessons of past extraction runs per (year, week) so
// a later run can report what changed. It stores extracted output
// only, never session state.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

// Open opens (and initializes) a snapshot database at the given path.
// ":memory:" works for tests.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Push replaces the stored snapshot of every successfully fetched week
// with its fresh lessons. Failed weeks keep their previous snapshot.
func (s Store) Push(ctx context.Context, year int, results []skola24.WeekResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range results {
		if r.Err != nil {
			slog.WarnContext(ctx, "keeping previous snapshot for failed week", "week", r.Week, "err", r.Err)
			continue
		}

		_, err = tx.ExecContext(
			ctx,
			`DELETE FROM lesson_snapshot WHERE year = ? AND week = ?`,
			year, r.Week,
		)
		if err != nil {
			return err
		}

		for _, lesson := range r.Lessons {
			_, err = tx.ExecContext(
				ctx,
				`INSERT INTO lesson_snapshot
					(year, week, course, teacher, location, start_unix, end_unix, color)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				year, r.Week,
				lesson.Course, lesson.Teacher, lesson.Location,
				lesson.Start.Unix(), lesson.End.Unix(), lesson.Color,
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Pull returns the stored lessons for one (year, week), in the order
// they were pushed.
func (s Store) Pull(ctx context.Context, year, week int) ([]skola24.Lesson, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT course, teacher, location, start_unix, end_unix, color
		FROM lesson_snapshot WHERE year = ? AND week = ? ORDER BY rowid`,
		year, week,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []skola24.Lesson
	for rows.Next() {
		var l skola24.Lesson
		var startUnix, endUnix int64
		err = rows.Scan(&l.Course, &l.Teacher, &l.Location, &startUnix, &endUnix, &l.Color)
		if err != nil {
			return nil, err
		}
		l.Start = time.Unix(startUnix, 0).In(timezone.Location)
		l.End = time.Unix(endUnix, 0).In(timezone.Location)
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}
