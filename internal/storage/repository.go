// Package storage persists the domain model in SQLite. Amounts travel
// as decimal strings so no float precision is lost across the driver.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/rribeiro1/spendless/internal/core"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// GetAll implements services.TransactionStore.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount, description, note, category, type, recurrence, created_at_ms
		FROM transactions
		ORDER BY created_at_ms DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Save implements services.TransactionStore. The returned copy carries
// the storage-assigned ID.
func (r *SQLiteRepository) Save(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (amount, description, note, category, type, recurrence, created_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.Amount.String(),
		tx.Description,
		tx.Note,
		string(tx.Category),
		string(tx.Type),
		string(tx.Recurrence),
		tx.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}
	tx.ID = id

	slog.DebugContext(ctx, "Transaction saved",
		"id", tx.ID,
		"description", tx.Description,
		"amount", tx.Amount.String())

	return tx, nil
}

// DeleteAll implements services.TransactionStore.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("delete all transactions: %w", err)
	}
	slog.InfoContext(ctx, "All transactions deleted")
	return nil
}

// HasOccurrence implements services.TransactionStore. A materialized
// occurrence matches its template on description, amount, category and
// type, carries no recurrence of its own, and falls on the given
// calendar day.
func (r *SQLiteRepository) HasOccurrence(ctx context.Context, template core.Transaction, day time.Time) (bool, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE recurrence = 'none'
			  AND description = ?
			  AND amount = ?
			  AND category = ?
			  AND type = ?
			  AND created_at_ms >= ? AND created_at_ms < ?
		)`,
		template.Description,
		template.Amount.String(),
		string(template.Category),
		string(template.Type),
		dayStart.UnixMilli(),
		dayEnd.UnixMilli(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check occurrence: %w", err)
	}
	return exists, nil
}

// CreateUser implements services.UserStore.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, pin_hash, salt, created_at_ms)
		VALUES (?, ?, ?, ?)`,
		u.Username, u.PINHash, u.Salt, u.CreatedAt.UnixMilli())
	if err != nil {
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("last insert id: %w", err)
	}
	u.ID = id

	// Fresh accounts start from the documented preference defaults.
	if _, err := r.db.ExecContext(ctx, `INSERT INTO preferences (user_id) VALUES (?)`, id); err != nil {
		return core.User{}, fmt.Errorf("seed preferences: %w", err)
	}

	return u, nil
}

// UserByUsername implements services.UserStore.
func (r *SQLiteRepository) UserByUsername(ctx context.Context, username string) (core.User, error) {
	var u core.User
	var createdMs int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, pin_hash, salt, created_at_ms
		FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PINHash, &u.Salt, &createdMs)
	if err != nil {
		return core.User{}, fmt.Errorf("get user %q: %w", username, err)
	}
	u.CreatedAt = time.UnixMilli(createdMs)
	return u, nil
}

// FormattingPreferences implements services.PreferencesSource. Stored
// names that no longer parse fall back to the documented defaults, so a
// corrupted row can never break rendering.
func (r *SQLiteRepository) FormattingPreferences(ctx context.Context, userID int64) (core.FormattingPreferences, error) {
	var dec, thou, cur, exp string
	err := r.db.QueryRowContext(ctx, `
		SELECT decimal_separator, thousands_separator, currency, expense_format
		FROM preferences WHERE user_id = ?`, userID).
		Scan(&dec, &thou, &cur, &exp)
	if err == sql.ErrNoRows {
		return core.DefaultFormattingPreferences(), nil
	}
	if err != nil {
		return core.FormattingPreferences{}, fmt.Errorf("get formatting preferences: %w", err)
	}

	return core.FormattingPreferences{
		DecimalSeparator:   core.ParseDecimalSeparator(dec),
		ThousandsSeparator: core.ParseThousandsSeparator(thou),
		Currency:           core.ParseCurrency(cur),
		ExpenseFormat:      core.ParseExpenseFormat(exp),
	}, nil
}

// SessionPreferences implements services.PreferencesSource.
func (r *SQLiteRepository) SessionPreferences(ctx context.Context, userID int64) (core.SessionPreferences, error) {
	var expirySecs, lockoutSecs int64
	err := r.db.QueryRowContext(ctx, `
		SELECT session_expiry_seconds, lockout_seconds
		FROM preferences WHERE user_id = ?`, userID).
		Scan(&expirySecs, &lockoutSecs)
	if err == sql.ErrNoRows {
		return core.SessionPreferences{SessionExpiry: 5 * time.Minute, LockoutDuration: 30 * time.Second}, nil
	}
	if err != nil {
		return core.SessionPreferences{}, fmt.Errorf("get session preferences: %w", err)
	}

	return core.SessionPreferences{
		SessionExpiry:   time.Duration(expirySecs) * time.Second,
		LockoutDuration: time.Duration(lockoutSecs) * time.Second,
	}, nil
}

// SetFormattingPreferences overwrites a user's display conventions.
func (r *SQLiteRepository) SetFormattingPreferences(ctx context.Context, userID int64, p core.FormattingPreferences) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE preferences
		SET decimal_separator = ?, thousands_separator = ?, currency = ?, expense_format = ?
		WHERE user_id = ?`,
		string(p.DecimalSeparator), string(p.ThousandsSeparator), string(p.Currency), string(p.ExpenseFormat), userID)
	if err != nil {
		return fmt.Errorf("update formatting preferences: %w", err)
	}
	return nil
}

// SetSessionPreferences overwrites a user's security settings.
func (r *SQLiteRepository) SetSessionPreferences(ctx context.Context, userID int64, p core.SessionPreferences) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE preferences
		SET session_expiry_seconds = ?, lockout_seconds = ?
		WHERE user_id = ?`,
		int64(p.SessionExpiry.Seconds()), int64(p.LockoutDuration.Seconds()), userID)
	if err != nil {
		return fmt.Errorf("update session preferences: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var tx core.Transaction
	var amount, category, txType, recurrence string
	var createdMs int64

	if err := row.Scan(&tx.ID, &amount, &tx.Description, &tx.Note, &category, &txType, &recurrence, &createdMs); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}

	tx.Amount = dec
	tx.Category = core.ParseCategory(category)
	tx.Type = core.ParseTransactionType(txType)
	tx.Recurrence = core.ParseRecurrenceType(recurrence)
	tx.CreatedAt = time.UnixMilli(createdMs)
	return tx, nil
}
