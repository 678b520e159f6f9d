// Package xlsx writes the ledger to an Excel workbook with a per-step
// history sheet and a summary sheet.
package xlsx

import (
	"fmt"
	"time"

	"github.com/bankrkit/bankr/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	historySheet = "Trading History"
	summarySheet = "Summary"

	headerFillColor = "2C3E50"
	headerFontColor = "ECF0F1"
	winFillColor    = "27AE60"
	lossFillColor   = "C0392B"
)

var historyHeaders = []string{
	"Session", "Step", "Bet Amount ($)", "Bet %", "Win/Loss", "P&L ($)", "New Balance", "Timestamp",
}

// Export writes the full account history to path, overwriting any
// existing file.
func Export(path string, account domain.Account) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeHistory(f, account); err != nil {
		return err
	}
	if err := writeSummary(f, account); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	return nil
}

func writeHistory(f *excelize.File, account domain.Account) error {
	if _, err := f.NewSheet(historySheet); err != nil {
		return fmt.Errorf("create history sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: headerFontColor},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("build header style: %w", err)
	}

	winStyle, err := resultStyle(f, winFillColor)
	if err != nil {
		return err
	}
	lossStyle, err := resultStyle(f, lossFillColor)
	if err != nil {
		return err
	}

	for col, header := range historyHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("address header cell: %w", err)
		}
		if err := f.SetCellValue(historySheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(historySheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	row := 2
	for _, session := range account.Sessions {
		for _, step := range session.Steps {
			values := []any{
				string(session.ID),
				step.Index,
				step.BetAmount,
				step.BetPercent * 100,
				string(step.Result),
				step.PnL,
				step.BalanceAfter,
				formatTimestamp(step.Timestamp),
			}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return fmt.Errorf("address history cell: %w", err)
				}
				if err := f.SetCellValue(historySheet, cell, value); err != nil {
					return fmt.Errorf("write history row: %w", err)
				}
			}

			resultCell, err := excelize.CoordinatesToCellName(5, row)
			if err != nil {
				return fmt.Errorf("address result cell: %w", err)
			}
			style := lossStyle
			if step.Result == domain.StepWin {
				style = winStyle
			}
			if err := f.SetCellStyle(historySheet, resultCell, resultCell, style); err != nil {
				return fmt.Errorf("style result cell: %w", err)
			}

			row++
		}
	}

	if err := f.SetColWidth(historySheet, "A", "A", 38); err != nil {
		return fmt.Errorf("size session column: %w", err)
	}
	if err := f.SetColWidth(historySheet, "B", "G", 16); err != nil {
		return fmt.Errorf("size value columns: %w", err)
	}
	if err := f.SetColWidth(historySheet, "H", "H", 22); err != nil {
		return fmt.Errorf("size timestamp column: %w", err)
	}

	return nil
}

func writeSummary(f *excelize.File, account domain.Account) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	rows := []struct {
		label string
		value any
	}{
		{"Current Balance", account.Balance},
		{"Total Profit/Loss", totalProfit(account)},
		{"Total Sessions", len(account.Sessions)},
	}

	for i, entry := range rows {
		labelCell := fmt.Sprintf("A%d", i+1)
		valueCell := fmt.Sprintf("B%d", i+1)
		if err := f.SetCellValue(summarySheet, labelCell, entry.label); err != nil {
			return fmt.Errorf("write summary label: %w", err)
		}
		if err := f.SetCellValue(summarySheet, valueCell, entry.value); err != nil {
			return fmt.Errorf("write summary value: %w", err)
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "B", 22); err != nil {
		return fmt.Errorf("size summary columns: %w", err)
	}

	return nil
}

// totalProfit compares the current balance against the balance the very
// first session started with. An account with no sessions has no profit
// to report.
func totalProfit(account domain.Account) float64 {
	if len(account.Sessions) == 0 {
		return 0
	}
	return account.Balance - account.Sessions[0].StartBalance
}

func resultStyle(f *excelize.File, fill string) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: headerFontColor},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
	})
	if err != nil {
		return 0, fmt.Errorf("build result style: %w", err)
	}
	return style, nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
