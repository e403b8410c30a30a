package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"recruiter-backend/internal/domain"
	"recruiter-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{
	"ID", "CANDIDATE", "INTERVIEWER", "JOB", "SCHEDULED DATE",
	"DURATION (MIN)", "TYPE", "RATING", "FEEDBACK",
}

// ExportReport produces a staff-only report of completed interviews
func (u *interviewUsecase) ExportReport(ctx context.Context, role, format string) ([]byte, string, error) {
	if !domain.IsStaff(role) {
		return nil, "", apperror.Forbidden("Only staff can export interview reports")
	}

	interviews, err := u.interviewRepo.FetchCompleted(ctx)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	switch format {
	case "csv":
		return exportInterviewsCSV(interviews)
	case "xlsx", "":
		return exportInterviewsExcel(interviews)
	default:
		return nil, "", apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", format))
	}
}

func interviewRow(iv domain.Interview) []string {
	rating := ""
	if iv.Rating != nil {
		rating = strconv.Itoa(*iv.Rating)
	}
	return []string{
		strconv.FormatInt(iv.ID, 10),
		iv.CandidateName,
		iv.InterviewerName,
		iv.JobTitle,
		iv.ScheduledDate.Format(time.RFC3339),
		strconv.Itoa(iv.Duration),
		iv.InterviewType,
		rating,
		iv.Feedback,
	}
}

func exportInterviewsExcel(interviews []domain.Interview) ([]byte, string, error) {
	f := excelize.NewFile()
	sheetName := "Interviews"
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, iv := range interviews {
		for colIdx, value := range interviewRow(iv) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

func exportInterviewsCSV(interviews []domain.Interview) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, "", err
	}
	for _, iv := range interviews {
		if err := w.Write(interviewRow(iv)); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), "text/csv", nil
}
