package xlsx

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bankrkit/bankr/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildAccount(t *testing.T) domain.Account {
	t.Helper()

	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	account := domain.NewAccount(1000)
	_, err := account.StartSession("sess-1", now)
	require.NoError(t, err)
	_, err = account.RecordResult(0.02, 20, -20, domain.StepLoss, now)
	require.NoError(t, err)
	_, err = account.RecordResult(0.04, 39.20, 39.20, domain.StepWin, now.Add(time.Minute))
	require.NoError(t, err)
	return account
}

func TestExportWritesHistoryAndSummary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bankroll.xlsx")
	require.NoError(t, Export(path, buildAccount(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{historySheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(historySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, historyHeaders, rows[0])
	assert.Equal(t, "sess-1", rows[1][0])
	assert.Equal(t, "loss", rows[1][4])
	assert.Equal(t, "win", rows[2][4])

	balance, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "1019.2", balance)

	sessions, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", sessions)
}

func TestExportEmptyAccount(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, Export(path, domain.NewAccount(0)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(historySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	profit, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "0", profit)
}

func TestTotalProfitUsesFirstSessionStart(t *testing.T) {
	t.Parallel()

	account := domain.RestoreAccount(1250, []domain.Session{
		{ID: "sess-1", StartBalance: 1000},
		{ID: "sess-2", StartBalance: 1100},
	})

	assert.Equal(t, 250.0, totalProfit(account))
}
