// Package export renders ledger reports as spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of workbooks produced by this package.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	pandlSheet   = "Profit and Loss"
	journalSheet = "Journal"
	dateLayout   = "2006-01-02"
)

// ProfitAndLossWorkbook lays out a P&L report as a summary block followed by
// per-account lines.
func ProfitAndLossWorkbook(report domain.PAndLReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", pandlSheet); err != nil {
		return nil, err
	}

	period := "All time"
	switch {
	case report.From != nil && report.To != nil:
		period = fmt.Sprintf("%s to %s", report.From.Format(dateLayout), report.To.Format(dateLayout))
	case report.From != nil:
		period = "From " + report.From.Format(dateLayout)
	case report.To != nil:
		period = "Up to " + report.To.Format(dateLayout)
	}

	rows := [][]interface{}{
		{"Period", period},
		{"Method", string(report.Method)},
		{},
		{"Revenue", report.Revenue.InexactFloat64()},
		{"Cost of Goods Sold", report.COGS.InexactFloat64()},
		{"Gross Profit", report.GrossProfit.InexactFloat64()},
		{"Operating Expenses", report.OperatingExpense.InexactFloat64()},
		{"Net Profit", report.NetProfit.InexactFloat64()},
	}
	if len(report.Lines) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Code", "Account", "Type", "Net Amount"})
		for _, l := range report.Lines {
			rows = append(rows, []interface{}{l.Code, l.Name, string(l.AccountType), l.NetAmount.InexactFloat64()})
		}
	}

	if err := writeRows(f, pandlSheet, rows); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(pandlSheet, "A", "B", 28)
	return f, nil
}

// JournalWorkbook writes one row per journal line. accounts is used to show
// the account code and name next to each line; missing accounts show the id.
func JournalWorkbook(entries []domain.JournalEntry, accounts map[string]domain.Account) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", journalSheet); err != nil {
		return nil, err
	}

	rows := [][]interface{}{{"Date", "Entry", "Source", "Ref", "Account Code", "Account", "Description", "Debit", "Credit"}}
	for _, e := range entries {
		for _, l := range e.Lines {
			code, name := "", l.AccountID
			if acc, ok := accounts[l.AccountID]; ok {
				code, name = acc.Code, acc.Name
			}
			rows = append(rows, []interface{}{
				e.EntryDate.Format(dateLayout), e.EntryID, e.Source, e.Ref,
				code, name, l.Description, l.Debit.InexactFloat64(), l.Credit.InexactFloat64(),
			})
		}
	}

	if err := writeRows(f, journalSheet, rows); err != nil {
		return nil, err
	}
	return f, nil
}

// Write streams a workbook to w and closes it.
func Write(w io.Writer, f *excelize.File) error {
	defer f.Close()
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}
	return nil
}
