package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
)

// rfdNumberLockKey — ключ advisory-lock, сериализующий выдачу номеров RFD.
const rfdNumberLockKey int64 = 0x52464431

// rfdColumns — порядок колонок RFD (с данными автора) для scanRFD.
const rfdColumns = `
r.id, r.number, r.title, r.summary, r.status, r.author_id, u.name, u.email,
r.doc_id, r.doc_url, r.tags, r.is_active, r.created_at, r.updated_at, r.last_synced_at
`

const rfdFrom = ` FROM rfds r JOIN users u ON u.id = r.author_id `

// visibleTo — черновик виден автору, а при SeeDrafts — всем.
// Параметры: $1 — ID читателя, $2 — SeeDrafts.
const visibleTo = ` (r.status <> 'draft' OR r.author_id = $1 OR $2::boolean) `

// scanRFD сканирует строку RFD; устаревшие статусы нормализуются здесь.
func scanRFD(row pgx.Row, extra ...any) (*models.RFD, error) {
	var (
		rfd    models.RFD
		status string
		docID  *string
	)

	dest := []any{
		&rfd.ID,
		&rfd.Number,
		&rfd.Title,
		&rfd.Summary,
		&status,
		&rfd.AuthorID,
		&rfd.AuthorName,
		&rfd.AuthorEmail,
		&docID,
		&rfd.Doc.URL,
		&rfd.Tags,
		&rfd.IsActive,
		&rfd.CreatedAt,
		&rfd.UpdatedAt,
		&rfd.LastSyncedAt,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	st, err := models.NormalizeStatus(status)
	if err != nil {
		return nil, err
	}

	rfd.Status = st
	rfd.Doc.ID = deref(docID)
	if rfd.Tags == nil {
		rfd.Tags = []string{}
	}

	return &rfd, nil
}

// CreateRFD назначает следующий номер под advisory-lock и сохраняет RFD.
// UNIQUE(number) остаётся последней линией защиты: его нарушение — storage.ErrNumberTaken.
func (s *Storage) CreateRFD(ctx context.Context, rfd *models.RFD) (*models.RFD, error) {
	const op = "storage.postgres.CreateRFD"

	var created *models.RFD
	err := s.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, rfdNumberLockKey); err != nil {
			return err
		}

		var number int64
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(number), 0) + 1 FROM rfds`).Scan(&number); err != nil {
			return err
		}

		tags := rfd.Tags
		if tags == nil {
			tags = []string{}
		}

		q := `
			WITH r AS (
				INSERT INTO rfds(id, number, title, summary, status, author_id, doc_id, doc_url,
					tags, is_active, created_at, updated_at, last_synced_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10, $10, $11)
				RETURNING *
			)
			SELECT ` + rfdColumns + ` FROM r JOIN users u ON u.id = r.author_id`

		row := tx.QueryRow(ctx, q,
			rfd.ID,
			number,
			rfd.Title,
			rfd.Summary,
			string(rfd.Status),
			rfd.AuthorID,
			nullString(rfd.Doc.ID),
			rfd.Doc.URL,
			tags,
			rfd.CreatedAt,
			rfd.LastSyncedAt,
		)

		var err error
		created, err = scanRFD(row)
		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case isUniqueViolation(err) && pgErr.ConstraintName == "rfds_number_key":
				return nil, fmt.Errorf("%s: %w", op, storage.ErrNumberTaken)
			case isUniqueViolation(err):
				return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
			case isForeignKeyViolation(err):
				return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
			}
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// RFDByID возвращает видимый читателю RFD с одобрениями.
func (s *Storage) RFDByID(ctx context.Context, id uuid.UUID, viewer storage.Viewer) (*models.RFDView, error) {
	const op = "storage.postgres.RFDByID"

	view, err := s.rfdView(ctx, `r.id = $3`, id, viewer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return view, nil
}

// RFDByNumber возвращает видимый читателю RFD по номеру.
func (s *Storage) RFDByNumber(ctx context.Context, number int64, viewer storage.Viewer) (*models.RFDView, error) {
	const op = "storage.postgres.RFDByNumber"

	view, err := s.rfdView(ctx, `r.number = $3`, number, viewer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return view, nil
}

// rfdView читает RFD и список одобривших в одном снимке (REPEATABLE READ),
// поэтому счётчик и флаг читателя согласованы со списком.
func (s *Storage) rfdView(ctx context.Context, where string, arg any, viewer storage.Viewer) (*models.RFDView, error) {
	var view *models.RFDView

	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := s.inTx(ctx, opts, func(tx pgx.Tx) error {
		q := `SELECT ` + rfdColumns + rfdFrom + ` WHERE ` + where + ` AND ` + visibleTo

		rfd, err := scanRFD(tx.QueryRow(ctx, q, viewer.UserID, viewer.SeeDrafts, arg))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}

			return err
		}

		endorsers, err := endorsersOf(ctx, tx, rfd.ID)
		if err != nil {
			return err
		}

		view = &models.RFDView{
			RFD:              *rfd,
			EndorsementCount: len(endorsers),
			Endorsers:        endorsers,
		}
		for _, e := range endorsers {
			if e.UserID == viewer.UserID {
				view.UserHasEndorsed = true
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// endorsersOf возвращает одобривших в порядке одобрения.
func endorsersOf(ctx context.Context, q pgx.Tx, rfdID uuid.UUID) ([]models.Endorser, error) {
	rows, err := q.Query(ctx, `
		SELECT e.user_id, u.name, COALESCE(u.avatar, ''), e.created_at
		FROM rfd_endorsements e
		JOIN users u ON u.id = e.user_id
		WHERE e.rfd_id = $1
		ORDER BY e.created_at, e.id
	`, rfdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Endorser, 0)
	for rows.Next() {
		var e models.Endorser
		if err := rows.Scan(&e.UserID, &e.Name, &e.Avatar, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

// ListRFDs возвращает активные видимые RFD от недавно изменённых к старым.
// Агрегаты одобрений считаются подзапросами, сам список одобривших не загружается.
func (s *Storage) ListRFDs(ctx context.Context, viewer storage.Viewer, filter storage.RFDFilter) ([]models.RFDView, error) {
	const op = "storage.postgres.ListRFDs"

	where := []string{"r.is_active", visibleTo}
	args := []any{viewer.UserID, viewer.SeeDrafts}
	count := 2

	if filter.Status != nil {
		count++
		where = append(where, fmt.Sprintf("r.status = ANY($%d)", count))
		args = append(args, filter.Status.StoredAliases())
	}

	if filter.AuthorID != nil {
		count++
		where = append(where, fmt.Sprintf("r.author_id = $%d", count))
		args = append(args, *filter.AuthorID)
	}

	if filter.Tag != "" {
		count++
		where = append(where, fmt.Sprintf("$%d = ANY(r.tags)", count))
		args = append(args, filter.Tag)
	}

	q := `SELECT ` + rfdColumns + `,
		(SELECT count(*) FROM rfd_endorsements e WHERE e.rfd_id = r.id),
		EXISTS (SELECT 1 FROM rfd_endorsements e WHERE e.rfd_id = r.id AND e.user_id = $1)
	` + rfdFrom + ` WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY r.updated_at DESC, r.number DESC`

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.RFDView, 0)
	for rows.Next() {
		var (
			total    int64
			endorsed bool
		)

		rfd, err := scanRFD(rows, &total, &endorsed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		out = append(out, models.RFDView{
			RFD:              *rfd,
			EndorsementCount: int(total),
			UserHasEndorsed:  endorsed,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateRFD блокирует строку (SELECT ... FOR UPDATE), передаёт её mutate и применяет
// изменение вместе с записью журнала статусов. Пустое изменение ничего не пишет.
func (s *Storage) UpdateRFD(ctx context.Context, id uuid.UUID, mutate storage.MutateFunc) (*models.RFD, error) {
	const op = "storage.postgres.UpdateRFD"

	var updated *models.RFD
	err := s.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		current, err := scanRFD(tx.QueryRow(ctx,
			`SELECT `+rfdColumns+rfdFrom+` WHERE r.id = $1 FOR UPDATE OF r`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}

			return err
		}

		change, err := mutate(current)
		if err != nil {
			return err
		}

		if change.Empty() {
			updated = current
			return nil
		}

		sets := []string{"updated_at = now()"}
		args := []any{id}
		count := 1

		if change.Title != nil {
			count++
			sets = append(sets, fmt.Sprintf("title = $%d", count))
			args = append(args, *change.Title)
		}

		if change.Summary != nil {
			count++
			sets = append(sets, fmt.Sprintf("summary = $%d", count))
			args = append(args, *change.Summary)
		}

		if change.Tags != nil {
			tags := *change.Tags
			if tags == nil {
				tags = []string{}
			}
			count++
			sets = append(sets, fmt.Sprintf("tags = $%d", count))
			args = append(args, tags)
		}

		if change.Status != nil {
			count++
			sets = append(sets, fmt.Sprintf("status = $%d", count))
			args = append(args, string(*change.Status))
		}

		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`UPDATE rfds SET %s WHERE id = $1`, strings.Join(sets, ", ")), args...); err != nil {
			return err
		}

		if h := change.History; h != nil {
			_, err := tx.Exec(ctx, `
				INSERT INTO rfd_status_history(id, rfd_id, from_status, to_status, changed_by, comment, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, h.ID, id, string(h.FromStatus), string(h.ToStatus), h.ChangedBy, nullString(h.Comment), h.CreatedAt)
			if err != nil {
				return err
			}
		}

		updated, err = scanRFD(tx.QueryRow(ctx, `SELECT `+rfdColumns+rfdFrom+` WHERE r.id = $1`, id))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// StatusHistory возвращает журнал статусов RFD от старых записей к новым.
func (s *Storage) StatusHistory(ctx context.Context, rfdID uuid.UUID) ([]models.StatusHistoryEntry, error) {
	const op = "storage.postgres.StatusHistory"

	rows, err := s.db.Query(ctx, `
		SELECT id, rfd_id, from_status, to_status, changed_by, COALESCE(comment, ''), created_at
		FROM rfd_status_history
		WHERE rfd_id = $1
		ORDER BY created_at, id
	`, rfdID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.StatusHistoryEntry, 0)
	for rows.Next() {
		var (
			e        models.StatusHistoryEntry
			from, to string
		)

		if err := rows.Scan(&e.ID, &e.RFDID, &from, &to, &e.ChangedBy, &e.Comment, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if e.FromStatus, err = models.NormalizeStatus(from); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if e.ToStatus, err = models.NormalizeStatus(to); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Tags возвращает отсортированные уникальные теги активных видимых RFD.
func (s *Storage) Tags(ctx context.Context, viewer storage.Viewer) ([]string, error) {
	const op = "storage.postgres.Tags"

	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT tag.name
		FROM rfds r, unnest(r.tags) AS tag(name)
		WHERE r.is_active AND `+visibleTo+`
		ORDER BY tag.name
	`, viewer.UserID, viewer.SeeDrafts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tags, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if tags == nil {
		tags = []string{}
	}

	return tags, nil
}
