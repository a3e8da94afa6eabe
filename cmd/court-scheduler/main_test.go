package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JustJay7/court-scheduler/internal/classify"
	"github.com/JustJay7/court-scheduler/internal/database"
	"github.com/JustJay7/court-scheduler/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedYAML = `cases:
  - judgeId: 12
    appearanceId: APP-1
    appearanceDate: "2024-03-04"
    styleOfCause: R v. Doe
    restrictionCode: S
  - judgeId: 12
    appearanceId: APP-2
    appearanceDate: "2024-03-05"
    reason: DEC
    restrictionCode: S
  - judgeId: 12
    appearanceId: APP-3
    reason: ACT
    restrictionCode: G
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithContext(t, args...)
	return out, err
}

func runWithContext(t *testing.T, args ...string) (string, *commandContext, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	cmd, ctx := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := execute(cmd, ctx)
	return out.String(), ctx, err
}

func TestImportThenAssigned(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "court.db")
	feedPath := filepath.Join(dir, "feed.yaml")
	require.NoError(t, os.WriteFile(feedPath, []byte(feedYAML), 0o644))

	out, err := run(t, "--db", dbPath, "import", "--file", feedPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 cases")

	out, err = run(t, "--db", dbPath, "assigned", "--judge", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Reserved judgments (2)")
	assert.Contains(t, out, "Scheduled continuations (1)")
	assert.Contains(t, out, "Others (0)")
	assert.Contains(t, out, "Future assigned (1)")
	assert.Contains(t, out, "R v. Doe")
	assert.Less(t, strings.Index(out, "APP-2"), strings.Index(out, "APP-1"), "decision listed first")

	out, err = run(t, "--db", dbPath, "assigned", "--judge", "12", "--json")
	require.NoError(t, err)
	var res result.Result[classify.Buckets]
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	b, ok := res.Payload()
	require.True(t, ok)
	assert.Len(t, b.FutureAssigned, 1)
}

func TestAssignedRejectsInvalidJudge(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "court.db")

	_, err := run(t, "--db", dbPath, "assigned", "--judge", "0")
	assert.ErrorContains(t, err, "Invalid judge id.")
}

func TestMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "court.db")

	_, err := run(t, "--db", dbPath, "migrate")
	require.NoError(t, err)
	assert.FileExists(t, dbPath)
}

func TestAssignedJSONFailureReturnsError(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "court.db")

	out, err := run(t, "--db", dbPath, "assigned", "--judge", "0", "--json")
	require.Error(t, err)
	assert.ErrorContains(t, err, "Invalid judge id.")

	var res result.Result[classify.Buckets]
	require.NoError(t, json.Unmarshal([]byte(out), &res), "envelope is still printed")
	assert.False(t, res.Succeeded())
	assert.Equal(t, []string{"Invalid judge id."}, res.Errors())
}

func TestFailedCommandStillClosesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "court.db")

	_, ctx, err := runWithContext(t, "--db", dbPath, "assigned", "--judge", "0")
	require.Error(t, err)
	require.NotNil(t, ctx.db)

	sqlDB, err := ctx.db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "database handle released after a failing command")
}

func TestReopenedDatabaseAcceptsImports(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "court.db")
	feedPath := filepath.Join(dir, "feed.yaml")
	require.NoError(t, os.WriteFile(feedPath, []byte(feedYAML), 0o644))

	_, err := run(t, "--db", dbPath, "migrate")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		out, err := run(t, "--db", dbPath, "import", "--file", feedPath)
		require.NoError(t, err)
		assert.Contains(t, out, "Imported 3 cases")
	}

	_, err = run(t, "--db", dbPath, "migrate")
	require.NoError(t, err)

	out, err := run(t, "--db", dbPath, "assigned", "--judge", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Reserved judgments (2)")
	assert.Contains(t, out, "Future assigned (1)")
}

func TestCaseTable(t *testing.T) {
	out := caseTable([]database.CaseRecord{
		{AppearanceID: "APP-1", AppearanceDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), StyleOfCause: "R v. Doe", RestrictionCode: "S"},
		{AppearanceID: "APP-2", RestrictionCode: "G"},
	})
	assert.Contains(t, out, "Style of Cause")
	assert.Contains(t, out, "2024-03-04")
	assert.Contains(t, out, "R v. Doe")
	assert.NotContains(t, out, "0001-01-01", "blank dates stay blank")
	assert.Less(t, strings.Index(out, "APP-1"), strings.Index(out, "APP-2"))
}
