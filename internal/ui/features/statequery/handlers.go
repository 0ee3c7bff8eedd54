package statequery

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/planportal/internal/ui/features/common"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	maxRows      = 1000
	queryTimeout = 30 * time.Second
)

//go:embed templates/*.html
var templatesFS embed.FS

var views = common.MustParse(templatesFS, "templates/*.html")

// QuerySignals represents the signals sent from the frontend.
type QuerySignals struct {
	SQL string `json:"sql"`
}

// Handlers provides HTTP handlers for the state query feature.
type Handlers struct {
	db    *sql.DB
	isDev bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, isDev bool) *Handlers {
	return &Handlers{db: db, isDev: isDev}
}

// QueryPage renders the console with the table and view list. ?table=
// shows the schema of that table or view.
func (h *Handlers) QueryPage(w http.ResponseWriter, r *http.Request) {
	data, err := h.buildQueryViewData(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if table := r.URL.Query().Get("table"); table != "" && h.db != nil {
		schema, err := getTableSchema(r.Context(), h.db, table)
		if err != nil {
			data.Result.Error = err.Error()
		} else {
			data.Schema = schema
		}
	}

	meta := common.PageMeta{Title: "SQL", CurrentPath: "/query", IsDev: h.isDev}
	if err := views.Page(meta, "query", data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handlers) buildQueryViewData(ctx context.Context) (QueryViewData, error) {
	raw, _ := json.Marshal(QuerySignals{SQL: "SELECT title, category, status FROM planning_documents LIMIT 10"})
	data := QueryViewData{Signals: string(raw)}

	if h.db == nil {
		return data, nil
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT name, type
		FROM sqlite_master
		WHERE type IN ('table', 'view')
		AND name NOT LIKE 'sqlite_%'
		AND name NOT LIKE 'goose_%'
		ORDER BY type, name
	`)
	if err != nil {
		return data, err
	}
	defer rows.Close()

	for rows.Next() {
		var item TableItem
		if err := rows.Scan(&item.Name, &item.Type); err != nil {
			return data, err
		}
		if item.Type == "view" {
			data.Views = append(data.Views, item)
		} else {
			data.Tables = append(data.Tables, item)
		}
	}
	return data, rows.Err()
}

// ExecuteQuerySSE executes a SQL query and returns results. The statement
// runs in a transaction that is always rolled back, so nothing it does is
// ever committed.
func (h *Handlers) ExecuteQuerySSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals QuerySignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		h.patchResult(sse, QueryResult{Error: "Failed to read signals: " + err.Error()})
		return
	}

	sse := datastar.NewSSE(w, r)

	query := strings.TrimSpace(signals.SQL)
	if query == "" {
		h.patchResult(sse, QueryResult{Error: "Query cannot be empty"})
		return
	}
	if h.db == nil {
		h.patchResult(sse, QueryResult{Error: "no database available"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	result, err := runQuery(ctx, h.db, query)
	if err != nil {
		h.patchResult(sse, QueryResult{Error: err.Error()})
		return
	}
	h.patchResult(sse, result)
}

// SchemaSSE returns schema for a table.
func (h *Handlers) SchemaSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	tableName := chi.URLParam(r, "name")

	if h.db == nil {
		_ = sse.ConsoleError(errors.New("no database available"))
		return
	}

	schema, err := getTableSchema(r.Context(), h.db, tableName)
	if err != nil {
		_ = sse.ConsoleError(fmt.Errorf("failed to get schema: %w", err))
		return
	}

	if err := sse.PatchElementTempl(views.Fragment("query-schema", schema)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) patchResult(sse *datastar.ServerSentEventGenerator, result QueryResult) {
	if err := sse.PatchElementTempl(views.Fragment("query-results", result)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func runQuery(ctx context.Context, db *sql.DB, query string) (QueryResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return QueryResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	start := time.Now()
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return QueryResult{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return QueryResult{}, err
	}

	var results [][]string
	for rows.Next() && len(results) < maxRows {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return QueryResult{}, err
		}

		row := make([]string, len(cols))
		for i, val := range values {
			row[i] = formatValue(val)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return QueryResult{}, err
	}

	return QueryResult{
		Columns:   cols,
		Rows:      results,
		RowCount:  len(results),
		Truncated: len(results) == maxRows,
		QueryMS:   time.Since(start).Milliseconds(),
	}, nil
}

func getTableSchema(ctx context.Context, db *sql.DB, tableName string) (SchemaData, error) {
	var objType string
	err := db.QueryRowContext(ctx, `
		SELECT type FROM sqlite_master
		WHERE name = ? AND type IN ('table', 'view')
	`, tableName).Scan(&objType)
	if err != nil {
		return SchemaData{}, fmt.Errorf("table not found: %s", tableName)
	}

	// PRAGMA takes no parameters; the name was validated above.
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", tableName))
	if err != nil {
		return SchemaData{}, err
	}
	defer rows.Close()

	var columns []ColumnSchema
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dflt sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return SchemaData{}, err
		}

		columns = append(columns, ColumnSchema{
			Name:     name,
			Type:     colType,
			Nullable: notNull == 0,
			Default:  dflt.String,
			IsPK:     pk > 0,
		})
	}

	return SchemaData{
		Name:    tableName,
		Type:    objType,
		Columns: columns,
	}, rows.Err()
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
