package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/terraincognita07/steady/internal/models"
)

const exportDateLayout = "2006-01-02"

var ExportCSVHeaders = []string{"date", "mood", "status", "hrv_rmssd", "completed"}

type ExportCheckInReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.CheckIn, error)
}

type ExportHRVReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.HRVReading, error)
}

type ExportService struct {
	checkIns ExportCheckInReader
	hrv      ExportHRVReader
}

// ExportRow is one labelled check-in; HRVRMSSD is nil when no reading exists for that day.
type ExportRow struct {
	Date      string
	Mood      int
	Status    string
	HRVRMSSD  *float64
	Completed bool
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from,omitempty"`
	DateTo       string `json:"date_to,omitempty"`
}

func NewExportService(checkIns ExportCheckInReader, hrv ExportHRVReader) *ExportService {
	return &ExportService{checkIns: checkIns, hrv: hrv}
}

func (service *ExportService) BuildRows(userID uint, from *time.Time, to *time.Time) ([]ExportRow, error) {
	fromStart, toEnd := dayBounds(from, to)

	checkIns, err := service.checkIns.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, err
	}
	readings, err := service.hrv.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, err
	}

	rmssdByDay := make(map[string]float64, len(readings))
	for _, reading := range readings {
		rmssdByDay[civilKey(reading.Date).Format(exportDateLayout)] = reading.RMSSDMs
	}

	rows := make([]ExportRow, 0, len(checkIns))
	for _, entry := range checkIns {
		day := civilKey(entry.Date).Format(exportDateLayout)
		row := ExportRow{
			Date:      day,
			Mood:      entry.Mood,
			Status:    entry.Status,
			Completed: entry.Status == models.StatusOK,
		}
		if rmssd, ok := rmssdByDay[day]; ok {
			value := rmssd
			row.HRVRMSSD = &value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time) (ExportSummary, error) {
	fromStart, toEnd := dayBounds(from, to)
	checkIns, err := service.checkIns.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(checkIns) == 0 {
		return ExportSummary{}, nil
	}

	first := checkIns[0].Date
	last := checkIns[0].Date
	for _, entry := range checkIns[1:] {
		if entry.Date.Before(first) {
			first = entry.Date
		}
		if entry.Date.After(last) {
			last = entry.Date
		}
	}
	return ExportSummary{
		TotalEntries: len(checkIns),
		HasData:      true,
		DateFrom:     civilKey(first).Format(exportDateLayout),
		DateTo:       civilKey(last).Format(exportDateLayout),
	}, nil
}

func (row ExportRow) Columns() []string {
	rmssd := ""
	if row.HRVRMSSD != nil {
		rmssd = strconv.FormatFloat(*row.HRVRMSSD, 'f', -1, 64)
	}
	completed := "0"
	if row.Completed {
		completed = "1"
	}
	return []string{row.Date, strconv.Itoa(row.Mood), row.Status, rmssd, completed}
}

func WriteExportCSV(writer io.Writer, rows []ExportRow) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(ExportCSVHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := csvWriter.Write(row.Columns()); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
