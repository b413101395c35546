package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/brace/log"
)

// queryRows runs a read query against the SQLite database at path and
// returns one *document per row, with keys in column order.
//
// Byte slices are converted to strings; SQL NULL becomes nil, which templates
// treat as falsy.
func queryRows(ctx context.Context, path, query string) (rows []any, err error) {
	attrs := []slog.Attr{slog.String("db", path)}

	db, err := openDB(path)
	if err != nil {
		return nil, ErrQuery.With(attrs...).Wrap(err)
	}
	defer db.Close()

	res, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, ErrQuery.With(attrs...).Wrap(err)
	}
	defer res.Close()

	cols, err := res.Columns()
	if err != nil {
		return nil, ErrQuery.With(attrs...).Wrap(err)
	}

	rows = make([]any, 0)

	for res.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := res.Scan(ptrs...); err != nil {
			return nil, ErrQuery.With(attrs...).Wrap(err)
		}

		rec := newDocument()

		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				values[i] = string(b)
			}

			rec.set(col, values[i])
		}

		rows = append(rows, rec)
	}

	if err := res.Err(); err != nil {
		return nil, ErrQuery.With(attrs...).Wrap(err)
	}

	log.DebugContext(ctx, "query complete",
		slog.String("db", path),
		slog.Int("rows", len(rows)),
		slog.Int("columns", len(cols)),
	)

	return rows, nil
}
