package service

import (
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/util"
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	ChartTitle  = "Quiz Result Summary"
	ChartYLabel = "Count"
)

var (
	correctColor   = drawing.ColorFromHex("a1d99b")
	incorrectColor = drawing.ColorFromHex("fcae91")
)

type ChartService struct {
	Storage *StorageService
}

func NewChartService(storage *StorageService) *ChartService {
	return &ChartService{Storage: storage}
}

// RenderSummaryChart 两根柱子：Correct 和 Incorrect，纵轴从 0 开始
func RenderSummaryChart(correct, incorrect int) ([]byte, error) {
	maxCount := correct
	if incorrect > maxCount {
		maxCount = incorrect
	}
	if maxCount < 1 {
		maxCount = 1
	}

	graph := chart.BarChart{
		Title:    ChartTitle,
		Width:    600,
		Height:   400,
		BarWidth: 120,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Name: ChartYLabel,
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(maxCount),
			},
		},
		Bars: []chart.Value{
			{Label: "Correct", Value: float64(correct), Style: chart.Style{FillColor: correctColor, StrokeColor: correctColor}},
			{Label: "Incorrect", Value: float64(incorrect), Style: chart.Style{FillColor: incorrectColor, StrokeColor: incorrectColor}},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveSummaryChart 渲染并覆盖写入 barplot.png，返回图片地址
func (s *ChartService) SaveSummaryChart(ctx context.Context, summary *model.ResultSummary) (string, error) {
	data, err := RenderSummaryChart(summary.CorrectCount, summary.IncorrectCount)
	if err != nil {
		return "", util.ExternalError("render chart", err)
	}
	return s.Storage.Save(ctx, util.ChartFilename, data, util.MimePNG)
}
