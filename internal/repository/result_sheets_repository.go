package repository

import (
	"ap_quiz_backend/internal/config"
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/util"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsResultRepository 使用 Google 表格保存答题记录，第一行为表头
type SheetsResultRepository struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsResultRepository 使用服务账号 JSON 密钥授权
func NewSheetsResultRepository(ctx context.Context, cfg *config.SheetsConfig) (*SheetsResultRepository, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return NewSheetsResultRepositoryWithService(srv, cfg.SpreadsheetID, cfg.SheetName), nil
}

func NewSheetsResultRepositoryWithService(srv *sheets.Service, spreadsheetID, sheetName string) *SheetsResultRepository {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &SheetsResultRepository{srv: srv, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

func (r *SheetsResultRepository) Backend() string {
	return util.BackendSheets
}

// a1 'Sheet1'!A:F
func (r *SheetsResultRepository) a1(cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(r.sheetName, "'", "''"), cells)
}

func (r *SheetsResultRepository) EnsureHeader(ctx context.Context) error {
	return instrument(ctx, r.Backend(), "ensure_header", func(ctx context.Context) error {
		resp, err := r.srv.Spreadsheets.Values.Get(r.spreadsheetID, r.a1("1:1")).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Values) > 0 && !isBlankRow(resp.Values[0]) {
			return nil
		}

		header := make([]interface{}, len(model.ResultHeader))
		for i, h := range model.ResultHeader {
			header[i] = h
		}
		_, err = r.srv.Spreadsheets.Values.Update(r.spreadsheetID, r.a1("A1"), &sheets.ValueRange{
			Values: [][]interface{}{header},
		}).ValueInputOption("RAW").Context(ctx).Do()
		return err
	})
}

func (r *SheetsResultRepository) AppendRow(ctx context.Context, rec *model.ResultRecord) error {
	return instrument(ctx, r.Backend(), "append_row", func(ctx context.Context) error {
		_, err := r.srv.Spreadsheets.Values.Append(r.spreadsheetID, r.a1("A:F"), &sheets.ValueRange{
			Values: [][]interface{}{rec.Row()},
		}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
		return err
	})
}

// ReadAll 按表头名称（不区分大小写）映射列，跳过空行
func (r *SheetsResultRepository) ReadAll(ctx context.Context) ([]model.ResultRecord, error) {
	var records []model.ResultRecord
	err := instrument(ctx, r.Backend(), "read_all", func(ctx context.Context) error {
		resp, err := r.srv.Spreadsheets.Values.Get(r.spreadsheetID, r.a1("A:F")).Context(ctx).Do()
		if err != nil {
			return err
		}
		records = parseSheetRows(resp.Values)
		return nil
	})
	return records, err
}

func (r *SheetsResultRepository) Ping(ctx context.Context) error {
	_, err := r.srv.Spreadsheets.Get(r.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	return err
}

func parseSheetRows(rows [][]interface{}) []model.ResultRecord {
	if len(rows) == 0 {
		return nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(cellString(h)))] = i
	}

	cell := func(row []interface{}, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return cellString(row[i])
	}

	records := make([]model.ResultRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, model.ResultRecord{
			Name:          cell(row, "name"),
			Question:      cell(row, "question"),
			UserAnswer:    cell(row, "user answer"),
			CorrectAnswer: parseCellInt(cell(row, "correct answer")),
			Status:        model.ResultStatus(cell(row, "status")),
			Timestamp:     cell(row, "timestamp"),
		})
	}
	return records
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func parseCellInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func isBlankRow(row []interface{}) bool {
	for _, v := range row {
		if strings.TrimSpace(cellString(v)) != "" {
			return false
		}
	}
	return true
}
