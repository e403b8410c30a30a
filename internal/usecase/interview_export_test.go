package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"recruiter-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"
)

func completedInterviews() []domain.Interview {
	rating := 4
	return []domain.Interview{
		{
			ID:              1,
			CandidateName:   "Ada Prawira",
			InterviewerName: "Budi Santoso",
			JobTitle:        "Backend Engineer",
			ScheduledDate:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			Duration:        60,
			InterviewType:   domain.InterviewTypeVideo,
			Status:          domain.InterviewStatusCompleted,
			Rating:          &rating,
			Feedback:        "Hire",
		},
	}
}

func TestExportReport(t *testing.T) {
	t.Run("Should be staff-only", func(t *testing.T) {
		_, _, _, _, uc := newInterviewFixture()
		_, _, err := uc.ExportReport(context.Background(), domain.RoleInterviewer, "csv")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only staff")
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("FetchCompleted", mock.Anything).Return(completedInterviews(), nil).Once()

		_, _, err := uc.ExportReport(context.Background(), domain.RoleAdmin, "pdf")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported export format")
	})

	t.Run("Should render CSV with header and rows", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("FetchCompleted", mock.Anything).Return(completedInterviews(), nil).Once()

		data, contentType, err := uc.ExportReport(context.Background(), domain.RoleAdmin, "csv")
		assert.NoError(t, err)
		assert.Equal(t, "text/csv", contentType)

		body := string(data)
		assert.True(t, strings.HasPrefix(body, "ID,CANDIDATE,INTERVIEWER,JOB"))
		assert.Contains(t, body, "Ada Prawira")
		assert.Contains(t, body, "Hire")
	})

	t.Run("Should render a readable Excel workbook", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("FetchCompleted", mock.Anything).Return(completedInterviews(), nil).Once()

		data, contentType, err := uc.ExportReport(context.Background(), domain.RoleAdmin, "xlsx")
		assert.NoError(t, err)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)

		f, err := excelize.OpenReader(strings.NewReader(string(data)))
		assert.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Interviews")
		assert.NoError(t, err)
		assert.Len(t, rows, 2) // header + one interview
		assert.Equal(t, "Ada Prawira", rows[1][1])
	})
}
