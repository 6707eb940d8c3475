package prepare

import (
	"context"
	"database/sql"
	"strings"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// Store keeps the normalized rows queryable so downstream tools don't
// re-parse the csv outputs.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

func OpenStore(path string) (Store, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	_, err = database.Exec(Schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		database.Close()
		return Store{}, err
	}
	return Store{db: database}, nil
}

func (s Store) Close() error {
	return s.db.Close()
}

// Import replaces the table contents with rows in a single transaction.
func (s Store) Import(ctx context.Context, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "DELETE FROM textbooks")
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO textbooks (
		textbook_title, textbook_title_reading,
		course_title, course_title_reading,
		campus, course_code, course_category, instruction_language,
		note, authors, publisher, publication_year, isbn,
		faculty_names, department_names, tag_names
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx,
			row.TextbookTitle, row.TextbookTitleReading,
			row.CourseTitle, row.CourseTitleReading,
			row.Campus, row.CourseCode, row.CourseCategory, row.InstructionLanguage,
			row.Note, row.Authors, row.Publisher, row.PublicationYear, row.ISBN,
			strings.Join(row.Faculties, ","),
			strings.Join(row.Departments, ","),
			strings.Join(row.Tags, ","),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM textbooks").Scan(&count)
	return count, err
}

// ByCourseTitle returns the textbooks recorded for an exact course title.
func (s Store) ByCourseTitle(ctx context.Context, courseTitle string) ([]Row, error) {
	dbrows, err := s.db.QueryContext(ctx, `SELECT
		textbook_title, textbook_title_reading,
		course_title, course_title_reading,
		campus, course_code, course_category, instruction_language,
		note, authors, publisher, publication_year, isbn,
		faculty_names, department_names, tag_names
	FROM textbooks WHERE course_title = ? ORDER BY id`, courseTitle)
	if err != nil {
		return nil, err
	}
	defer dbrows.Close()

	var rows []Row
	for dbrows.Next() {
		var row Row
		var faculties, departments, tags string
		err := dbrows.Scan(
			&row.TextbookTitle, &row.TextbookTitleReading,
			&row.CourseTitle, &row.CourseTitleReading,
			&row.Campus, &row.CourseCode, &row.CourseCategory, &row.InstructionLanguage,
			&row.Note, &row.Authors, &row.Publisher, &row.PublicationYear, &row.ISBN,
			&faculties, &departments, &tags,
		)
		if err != nil {
			return nil, err
		}
		row.Faculties = splitMultiValue(faculties)
		row.Departments = splitMultiValue(departments)
		row.Tags = splitMultiValue(tags)
		rows = append(rows, row)
	}
	return rows, dbrows.Err()
}
