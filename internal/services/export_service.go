package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
)

const (
	responsesSheet = "Responses"
	questionsSheet = "Questions"
	exportPageSize = 500
	emptyBlank     = "___"
)

// ExportService renders stored responses as a spreadsheet.
type ExportService interface {
	ExportResponses(ctx context.Context, formID string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	forms  FormService
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, forms FormService, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		forms:  forms,
		logger: logger,
	}
}

// ExportResponses writes one row per response and one column per question,
// oldest response first. A second sheet lists the questions.
func (s *exportService) ExportResponses(ctx context.Context, formID string) ([]byte, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	responses, err := s.allResponses(ctx, form.ID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", responsesSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []interface{}{"Response ID", "Submitted At"}
	for i, q := range form.Questions {
		headers = append(headers, questionLabel(i, q))
	}
	if err := f.SetSheetRow(responsesSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range responses {
		row := []interface{}{r.ID, r.CreatedAt.UTC().Format("2006-01-02 15:04:05")}
		byQuestion := make(map[string]models.Answer, len(r.Answers))
		for _, a := range r.Answers {
			byQuestion[a.QuestionID] = a
		}
		for _, q := range form.Questions {
			a, ok := byQuestion[q.ID]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, AnswerText(q, a))
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(responsesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write response row: %w", err)
		}
	}

	if err := writeQuestionsSheet(f, form); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Responses exported", "form_id", form.ID, "response_count", len(responses))
	return buf.Bytes(), nil
}

// allResponses pages through the responses of a form oldest first. The offset
// advances by the rows actually returned, so a repository that clamps the page
// size below exportPageSize is still read to the end.
func (s *exportService) allResponses(ctx context.Context, formID string) ([]*models.Response, error) {
	var out []*models.Response
	for {
		page, total, err := s.repo.Responses().ListByForm(ctx, formID, repositories.ResponseFilters{
			Limit:     exportPageSize,
			Offset:    len(out),
			SortOrder: "asc",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list responses: %w", err)
		}
		out = append(out, page...)
		if len(page) == 0 || int64(len(out)) >= total {
			return out, nil
		}
	}
}

func writeQuestionsSheet(f *excelize.File, form *models.Form) error {
	if _, err := f.NewSheet(questionsSheet); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	header := []interface{}{"#", "Question ID", "Type", "Question Text"}
	if err := f.SetSheetRow(questionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, q := range form.Questions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, q.ID, string(q.Kind), q.QuestionText}
		if err := f.SetSheetRow(questionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write question row: %w", err)
		}
	}
	return nil
}

func questionLabel(i int, q models.Question) string {
	if q.QuestionText == "" {
		return fmt.Sprintf("Q%d (%s)", i+1, q.Kind)
	}
	return fmt.Sprintf("Q%d %s", i+1, q.QuestionText)
}

// AnswerText renders a stored answer for a human reader. Answers that cannot
// be decoded are rendered as their raw JSON.
func AnswerText(q models.Question, a models.Answer) string {
	value, err := a.Decode()
	if err != nil || !q.HasPayload() || value.Kind() != q.Kind {
		return string(a.Value)
	}

	switch v := value.(type) {
	case models.CategorizeAnswer:
		parts := make([]string, 0, len(v))
		for _, item := range q.Categorize.Items {
			if category, ok := v[item.ID]; ok {
				parts = append(parts, item.Text+": "+category)
			}
		}
		return strings.Join(parts, "; ")
	case models.ClozeAnswer:
		segments := q.Cloze.Segments()
		var b strings.Builder
		for i, segment := range segments {
			b.WriteString(segment)
			if i == len(segments)-1 {
				break
			}
			word := emptyBlank
			if i < len(v) && v[i] != "" {
				word = v[i]
			}
			b.WriteString(word)
		}
		return b.String()
	case models.ComprehensionAnswer:
		parts := make([]string, 0, len(v))
		for _, mcq := range q.Comprehension.MCQs {
			if option, ok := v[mcq.ID]; ok {
				parts = append(parts, mcq.Question+": "+option)
			}
		}
		return strings.Join(parts, "; ")
	}
	return string(a.Value)
}
