package commands

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/planportal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a migrated and seeded state database at path.
func setupTestDB(t *testing.T, path string) {
	t.Helper()

	store, err := openStore(path, testutil.NewTestLogger(t))
	require.NoError(t, err)
	_, err = store.SeedCatalog()
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

// openTestDB returns a read-only handle on a freshly seeded state database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	statePath := filepath.Join(t.TempDir(), "state.db")
	setupTestDB(t, statePath)

	db, err := openStateDBReadOnly(statePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestQueryCommand_Tables(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := listTablesFromDB(context.Background(), buf, db, "table", false)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "planning_documents")
	assert.Contains(t, output, "document_categories")
	assert.Contains(t, output, "regulations")
	assert.Contains(t, output, "assessments")
	assert.Contains(t, output, "v_assessments")
	assert.NotContains(t, output, "goose_db_version")
}

func TestQueryCommand_ViewsOnly(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := listTablesFromDB(context.Background(), buf, db, "json", true)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"v_assessments"`)
	assert.NotContains(t, output, `"planning_documents"`)
}

func TestQueryCommand_Schema(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := showSchemaFromDB(context.Background(), buf, db, "planning_documents", "table")
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Table: planning_documents")
	assert.Contains(t, output, "title")
	assert.Contains(t, output, "verification_status")
	assert.Contains(t, output, "idx_planning_documents_category")
}

func TestQueryCommand_SchemaNotFound(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := showSchemaFromDB(context.Background(), buf, db, "nonexistent_table", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestQueryCommand_SchemaInvalidName(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := showSchemaFromDB(context.Background(), buf, db, "regulations; DROP TABLE regulations", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid table name")
}

func TestQueryCommand_ViewSchema(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := showSchemaFromDB(context.Background(), buf, db, "v_assessments", "table")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "View: v_assessments")
}

func TestQueryCommand_SchemaJSON(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := showSchemaFromDB(context.Background(), buf, db, "regulations", "json")
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"name": "regulations"`)
	assert.Contains(t, output, `"type": "table"`)
	assert.Contains(t, output, `"columns"`)
	assert.Contains(t, output, `"compliance_status"`)
}

func TestQueryCommand_Search(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := searchDocumentsFromDB(context.Background(), buf, db, "Klimabudsjett", "json")
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Klimabudsjett 2023")
	assert.NotContains(t, output, "Eldreplan")
}

func TestQueryCommand_SearchWildcardIsLiteral(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := searchDocumentsFromDB(context.Background(), buf, db, "%", "table")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(0 rows)")
}

func TestQueryCommand_Formats(t *testing.T) {
	const query = "SELECT title, priority FROM planning_documents WHERE title = 'Klimabudsjett 2023'"

	tests := []struct {
		format string
		want   []string
	}{
		{format: "table", want: []string{"Klimabudsjett 2023", "(1 rows)"}},
		{format: "json", want: []string{`"title": "Klimabudsjett 2023"`, `"priority"`}},
		{format: "csv", want: []string{"Klimabudsjett 2023,"}},
		{format: "md", want: []string{"| Klimabudsjett 2023 |"}},
	}

	db := openTestDB(t)
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf := new(bytes.Buffer)
			err := queryAndRender(context.Background(), buf, db, query, tt.format)
			require.NoError(t, err)

			output := buf.String()
			for _, want := range tt.want {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestQueryCommand_CSVRowCount(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := queryAndRender(context.Background(), buf, db,
		"SELECT id, name FROM regulations ORDER BY position LIMIT 3", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4) // header + 3 rows
}

func TestQueryCommand_EmptyResults(t *testing.T) {
	db := openTestDB(t)

	for _, format := range []string{"table", "md"} {
		buf := new(bytes.Buffer)
		err := queryAndRender(context.Background(), buf, db, "SELECT * FROM assessments", format)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "(0 rows)")
	}
}

func TestQueryCommand_ReadOnly(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := queryAndRender(context.Background(), buf, db, "DELETE FROM regulations", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query failed")
}

func TestQueryCommand_InvalidSQL(t *testing.T) {
	db := openTestDB(t)
	buf := new(bytes.Buffer)

	err := queryAndRender(context.Background(), buf, db, "SELEC nothing", "table")
	require.Error(t, err)
}

func TestNewQueryCommand(t *testing.T) {
	cmd := NewQueryCommand()
	assert.Equal(t, "query", cmd.Name())
	assert.NotNil(t, cmd.RunE)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "tables")
	assert.Contains(t, names, "views")
	assert.Contains(t, names, "schema")
	assert.Contains(t, names, "search")

	for _, flag := range []string{"format", "input"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{nil, "NULL"},
		{"hello", "hello"},
		{42, "42"},
		{3.14, "3.14"},
		{true, "true"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatValue(tt.input))
	}
}

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"klima", "klima"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeLikePattern(tt.input))
	}
}
