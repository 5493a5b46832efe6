package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"depflow/internal/modules/sentence/domain"
	sentenceout "depflow/internal/modules/sentence/port/out"

	_ "modernc.org/sqlite"
)

const defaultSearchLimit = 50

type SQLiteSentenceProjector struct {
	db *sql.DB
}

var _ sentenceout.SentenceIndexProjector = (*SQLiteSentenceProjector)(nil)

func NewSQLiteSentenceProjector(dbPath string) (*SQLiteSentenceProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteSentenceProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (p *SQLiteSentenceProjector) Close() error {
	return p.db.Close()
}

func (p *SQLiteSentenceProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sentences (
  id INTEGER PRIMARY KEY,
  text TEXT NOT NULL,
  slug TEXT NOT NULL,
  question_count INTEGER NOT NULL,
  note_path TEXT,
  added_at TEXT NOT NULL
);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sentences table: %w", err)
	}
	return nil
}

func (p *SQLiteSentenceProjector) Reset(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM sentences`); err != nil {
		return fmt.Errorf("reset sentences: %w", err)
	}
	return nil
}

func (p *SQLiteSentenceProjector) Upsert(ctx context.Context, sentence domain.Sentence) error {
	const stmt = `
INSERT INTO sentences (id, text, slug, question_count, note_path, added_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  text=excluded.text,
  slug=excluded.slug,
  question_count=excluded.question_count,
  note_path=excluded.note_path,
  added_at=excluded.added_at;
`
	_, err := p.db.ExecContext(ctx, stmt,
		sentence.ID,
		sentence.Text,
		sentence.Slug,
		len(sentence.Questions),
		sentence.NotePath,
		sentence.AddedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert sentence: %w", err)
	}
	return nil
}

// Search matches query case-insensitively against sentence text; an empty
// query lists everything.
func (p *SQLiteSentenceProjector) Search(ctx context.Context, query string, limit int) ([]domain.Summary, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := p.db.QueryContext(ctx, `
SELECT id, text, question_count
FROM sentences
WHERE lower(text) LIKE ?
ORDER BY id ASC
LIMIT ?;
`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search sentences: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Summary, 0)
	for rows.Next() {
		item := domain.Summary{}
		if err := rows.Scan(&item.ID, &item.Text, &item.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan sentence summary: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sentence summaries: %w", err)
	}
	return out, nil
}
