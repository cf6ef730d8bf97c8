package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// FTSTable is the SQLite FTS5 table that indexes text of papers.
const FTSTable = "papers_fts"

// FTSColumns returns the columns of papers included into the full-text
// index. They are taken from `fts` struct tags of Paper.
func FTSColumns() []string {
	t := reflect.TypeOf(Paper{})

	var res []string
	for i := 0; i < t.NumField(); i++ {
		if col := t.Field(i).Tag.Get("fts"); col != "" {
			res = append(res, col)
		}
	}
	return res
}

// FTSDDL returns statements that create the FTS5 index of papers and
// triggers that keep it in sync with the papers table. All statements are
// idempotent. The index is external-content, it stores no copy of text.
func FTSDDL() []string {
	cols := FTSColumns()
	colList := strings.Join(cols, ", ")
	newVals := prefixed("new.", cols)
	oldVals := prefixed("old.", cols)

	return []string{
		fmt.Sprintf(
			`CREATE VIRTUAL TABLE IF NOT EXISTS %s USING fts5(
    %s,
    content='papers',
    content_rowid='id'
)`, FTSTable, colList),

		fmt.Sprintf(
			`CREATE TRIGGER IF NOT EXISTS papers_fts_insert AFTER INSERT ON papers BEGIN
    INSERT INTO %[1]s(rowid, %[2]s) VALUES (new.id, %[3]s);
END`, FTSTable, colList, newVals),

		fmt.Sprintf(
			`CREATE TRIGGER IF NOT EXISTS papers_fts_delete AFTER DELETE ON papers BEGIN
    INSERT INTO %[1]s(%[1]s, rowid, %[2]s) VALUES ('delete', old.id, %[3]s);
END`, FTSTable, colList, oldVals),

		fmt.Sprintf(
			`CREATE TRIGGER IF NOT EXISTS papers_fts_update AFTER UPDATE ON papers BEGIN
    INSERT INTO %[1]s(%[1]s, rowid, %[2]s) VALUES ('delete', old.id, %[3]s);
    INSERT INTO %[1]s(rowid, %[2]s) VALUES (new.id, %[4]s);
END`, FTSTable, colList, oldVals, newVals),
	}
}

// FTSDropTriggers returns statements that remove the synchronization
// triggers, so that older versions of them are replaced by FTSDDL.
func FTSDropTriggers() []string {
	return []string{
		"DROP TRIGGER IF EXISTS papers_fts_insert",
		"DROP TRIGGER IF EXISTS papers_fts_delete",
		"DROP TRIGGER IF EXISTS papers_fts_update",
	}
}

// FTSRebuild returns the statement that reindexes all existing papers.
func FTSRebuild() string {
	return fmt.Sprintf("INSERT INTO %[1]s(%[1]s) VALUES ('rebuild')", FTSTable)
}

func prefixed(prefix string, cols []string) string {
	res := make([]string, len(cols))
	for i, v := range cols {
		res[i] = prefix + v
	}
	return strings.Join(res, ", ")
}
