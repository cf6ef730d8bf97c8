package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/papersdb/internal/iodb"
	"github.com/gnames/papersdb/internal/iostore"
	"github.com/gnames/papersdb/internal/iotesting"
	"github.com/gnames/papersdb/pkg/config"
	"github.com/gnames/papersdb/pkg/errcode"
	"github.com/gnames/papersdb/pkg/schema"
	"github.com/gnames/papersdb/pkg/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useConfig replaces the configuration of commands for one test.
func useConfig(t *testing.T, c *config.Config) {
	t.Helper()
	old := cfg
	cfg = c
	t.Cleanup(func() { cfg = old })
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func openTestStore(t *testing.T, c *config.Config) store.Store {
	t.Helper()
	op := iodb.NewOperator()
	require.NoError(t, op.Connect(context.Background(), c))
	t.Cleanup(func() { _ = op.Close() })
	return iostore.New(op)
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	return gnErr.Code
}

func TestRecordCommands(t *testing.T) {
	c := iotesting.SQLiteConfig(t)
	pdfs := t.TempDir()
	c.Update([]config.Option{config.OptArtifactsRoot(pdfs)})
	useConfig(t, c)

	_, err := run(t, getAddCmd(),
		"-t", "Deep Learning", "-c", "brng", "-p", "syel", "-y", "2023")
	require.NoError(t, err)
	_, err = run(t, getAddCmd(), "-t", "X", "-c", "OTER", "-p", "AITS")
	require.NoError(t, err)
	_, err = run(t, getAddCmd(), "-c", "OTER")
	assert.Equal(t, errcode.RecordMissingTitleError, errCode(t, err))

	st := openTestStore(t, c)
	ctx := context.Background()
	papers, err := st.AllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, papers, 2)
	assert.Equal(t, "0001-DENG-BRNG-SYEL", papers[0].UniqueName)
	assert.Equal(t, "BRNG", papers[0].RelatesTo)
	// a one-letter title cannot make a key
	assert.Empty(t, papers[1].UniqueName)

	out, err := run(t, getListCmd(), "deep", "--json")
	require.NoError(t, err)
	var found []schema.Paper
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, papers[0].ID, found[0].ID)

	out, err = run(t, getListCmd(), "-c", "BRNG")
	require.NoError(t, err)
	assert.Contains(t, out, "0001-DENG-BRNG-SYEL")

	src := filepath.Join(t.TempDir(), "download.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF"), 0644))
	_, err = run(t, getAttachCmd(), "1", src)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(pdfs, "0001-DENG-BRNG-SYEL.pdf"))
	_, err = run(t, getAttachCmd(), "1", src)
	assert.Equal(t, errcode.ArtifactExistsError, errCode(t, err))

	out, err = run(t, getShowCmd(), "1")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(pdfs, "0001-DENG-BRNG-SYEL.pdf"))

	_, err = run(t, getUpdateCmd(), "1", "-c", "PHHD", "--rekey")
	require.NoError(t, err)
	p, err := st.GetRecord(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "0001-DENG-PHHD-SYEL", p.UniqueName)
	assert.FileExists(t, filepath.Join(pdfs, "0001-DENG-PHHD-SYEL.pdf"))
	assert.NoFileExists(t, filepath.Join(pdfs, "0001-DENG-BRNG-SYEL.pdf"))

	_, err = run(t, getShowCmd(), "99")
	assert.Equal(t, errcode.RecordNotFoundError, errCode(t, err))

	_, err = run(t, getDeleteCmd(), "2", "--yes")
	require.NoError(t, err)
	p, err = st.GetRecord(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, p)

	out, err = run(t, getExportCmd(), "-")
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Deep Learning", rows[1][1])
}

func TestVocabCommands(t *testing.T) {
	c := iotesting.SQLiteConfig(t)
	useConfig(t, c)

	_, err := run(t, getVocabCmd(), "add", "project", "orgn", "Organoid models")
	require.NoError(t, err)

	out, err := run(t, getVocabCmd(), "list", "project")
	require.NoError(t, err)
	assert.Contains(t, out, "ORGN")
	assert.Contains(t, out, "Organoid models")

	_, err = run(t, getVocabCmd(), "add", "project", "ORGN", "Again")
	assert.Equal(t, errcode.CodeExistsError, errCode(t, err))

	_, err = run(t, getAddCmd(), "-t", "Organoids", "-c", "PHHD", "-p", "ORGN")
	require.NoError(t, err)
	_, err = run(t, getVocabCmd(), "delete", "project", "ORGN")
	assert.Equal(t, errcode.CodeInUseError, errCode(t, err))

	_, err = run(t, getVocabCmd(), "list", "journal")
	assert.Error(t, err)
}

func TestCheckAndStatsCommands(t *testing.T) {
	c := iotesting.SQLiteConfig(t)
	useConfig(t, c)

	for _, title := range []string{"Deep Learning", "Deep Learning"} {
		_, err := run(t, getAddCmd(), "-t", title, "-c", "BRNG", "-p", "SYEL")
		require.NoError(t, err)
	}
	st := openTestStore(t, c)
	require.NoError(t, st.UpdateKey(context.Background(), 2, "0001-DENG-BRNG-SYEL"))

	out, err := run(t, getCheckCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "0001-DENG-BRNG-SYEL")

	out, err = run(t, getStatsCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Papers")
	assert.Contains(t, out, "SYEL")
}

func TestRenameCommand(t *testing.T) {
	c := iotesting.SQLiteConfig(t)
	pdfs := t.TempDir()
	c.Update([]config.Option{config.OptArtifactsRoot(pdfs)})
	useConfig(t, c)

	_, err := run(t, getRenameCmd(), "--preview")
	assert.Equal(t, errcode.StoreNotFoundError, errCode(t, err))

	_, err = run(t, getAddCmd(), "-t", "Deep Learning", "-c", "BRNG", "-p", "SYEL")
	require.NoError(t, err)
	old := filepath.Join(pdfs, "0001-DENG-BRNG-SYEL.pdf")
	require.NoError(t, os.WriteFile(old, []byte("%PDF"), 0644))

	out, err := run(t, getRenameCmd(), "--preview", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "BRNG-SYEL-001-DENG")

	_, err = run(t, getRenameCmd())
	assert.Equal(t, errcode.NamingSchemeError, errCode(t, err))
	_, err = run(t, getRenameCmd(), "--scheme", "random")
	assert.Equal(t, errcode.NamingSchemeError, errCode(t, err))
	_, err = run(t, getRenameCmd(), "--scheme", "simple", "--dry-run", "--execute")
	assert.Error(t, err)

	out, err = run(t, getRenameCmd(), "--scheme", "simple")
	require.NoError(t, err)
	assert.Contains(t, out, "BRNG-SYEL-001")
	assert.FileExists(t, old)

	_, err = run(t, getRenameCmd(), "--scheme", "simple", "--execute", "--backup")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(pdfs, "BRNG-SYEL-001.pdf"))
	assert.NoFileExists(t, old)
	assert.FileExists(t, c.StorePath()+".backup")

	st := openTestStore(t, c)
	p, err := st.GetRecord(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "BRNG-SYEL-001", p.UniqueName)
}

func TestAddKeysAfterDelete(t *testing.T) {
	c := iotesting.SQLiteConfig(t)
	c.Update([]config.Option{config.OptNamingScheme("simple")})
	useConfig(t, c)

	for _, title := range []string{"Deep Learning", "Organoids", "Cardiac models"} {
		_, err := run(t, getAddCmd(), "-t", title, "-c", "BRNG", "-p", "SYEL")
		require.NoError(t, err)
	}
	_, err := run(t, getDeleteCmd(), "1", "--yes")
	require.NoError(t, err)
	_, err = run(t, getAddCmd(), "-t", "Neural fields", "-c", "BRNG", "-p", "SYEL")
	require.NoError(t, err)

	st := openTestStore(t, c)
	ctx := context.Background()
	dups, err := st.DuplicateKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, dups)

	p, err := st.GetRecord(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "BRNG-SYEL-004", p.UniqueName)
}

func TestAddWithPDF(t *testing.T) {
	c := iotesting.SQLiteConfig(t)
	pdfs := t.TempDir()
	c.Update([]config.Option{config.OptArtifactsRoot(pdfs)})
	useConfig(t, c)

	src := filepath.Join(t.TempDir(), "download.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF"), 0644))

	_, err := run(t, getAddCmd(), "-t", "Deep Learning", "-c", "BRNG", "-p", "SYEL",
		"--pdf", src)
	require.NoError(t, err)

	// no project code means no key, the paper is refused with its PDF
	_, err = run(t, getAddCmd(), "-t", "Organoids", "-c", "BRNG", "--pdf", src)
	assert.Equal(t, errcode.NamingKeyError, errCode(t, err))

	_, err = run(t, getAddCmd(), "-t", "Organoids", "-c", "BRNG", "-p", "SYEL",
		"--pdf", filepath.Join(t.TempDir(), "none.pdf"))
	assert.Equal(t, errcode.ArtifactNotFoundError, errCode(t, err))

	st := openTestStore(t, c)
	papers, err := st.AllRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, papers, 1)
	assert.FileExists(t, filepath.Join(pdfs, "0001-DENG-BRNG-SYEL.pdf"))
}
