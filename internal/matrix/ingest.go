package matrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Accepted event timestamp layouts, tried in order. Timestamps are
// truncated to the calendar day.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// IngestStats summarizes the cleaning pass over a raw event log.
type IngestStats struct {
	RowsIn       int     `json:"rows_in"`
	RowsOut      int     `json:"rows_out"`
	ReductionPct float64 `json:"reduction_pct"`
	FirstDay     string  `json:"first_day"`
	LastDay      string  `json:"last_day"`
	UniqueDays   int     `json:"unique_days"`
	UniqueUsers  int     `json:"unique_users"`
}

// IngestResult is a pivoted activity matrix plus the identity of its rows
// and columns.
type IngestResult struct {
	Matrix      Matrix
	CustomerIDs []string
	Days        []string
	Stats       IngestStats
}

// IngestEvents parses a raw event CSV (one row per customer-day event,
// with ID_Cust and Date columns), deduplicates (customer, day) pairs, and
// pivots the result into a binary activity matrix covering every calendar
// day from the earliest to the latest event. Rows are ordered by customer
// id, numerically when all ids are numeric.
func IngestEvents(r io.Reader) (*IngestResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoEvents
	}
	if err != nil {
		return nil, fmt.Errorf("read event header: %w", err)
	}
	idCol, dateCol, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]map[int64]struct{})
	var minDay, maxDay int64
	var rowsIn, rowsOut int
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read event row: %w", err)
		}
		if idCol >= len(rec) || dateCol >= len(rec) {
			return nil, fmt.Errorf("event row %d: %w", rowsIn+1, ErrMissingColumn)
		}
		rowsIn++

		id := strings.TrimSpace(rec[idCol])
		day, err := parseDay(rec[dateCol])
		if err != nil {
			return nil, fmt.Errorf("event row %d: %w", rowsIn, err)
		}

		days, ok := seen[id]
		if !ok {
			days = make(map[int64]struct{})
			seen[id] = days
		}
		if _, dup := days[day]; dup {
			continue
		}
		days[day] = struct{}{}
		rowsOut++
		if rowsOut == 1 || day < minDay {
			minDay = day
		}
		if rowsOut == 1 || day > maxDay {
			maxDay = day
		}
	}
	if rowsOut == 0 {
		return nil, ErrNoEvents
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sortCustomerIDs(ids)

	span := int(maxDay-minDay) + 1
	rows := make([][]int8, len(ids))
	uniqueDays := make(map[int64]struct{})
	for i, id := range ids {
		row := make([]int8, span)
		for day := range seen[id] {
			row[day-minDay] = 1
			uniqueDays[day] = struct{}{}
		}
		rows[i] = row
	}

	labels := make([]string, span)
	for j := range labels {
		labels[j] = time.Unix((minDay+int64(j))*86400, 0).UTC().Format("2006-01-02")
	}

	reduction := 0.0
	if rowsIn > 0 {
		reduction = float64(rowsIn-rowsOut) / float64(rowsIn) * 100
	}
	return &IngestResult{
		Matrix:      Matrix(rows),
		CustomerIDs: ids,
		Days:        labels,
		Stats: IngestStats{
			RowsIn:       rowsIn,
			RowsOut:      rowsOut,
			ReductionPct: math.Round(reduction*10) / 10,
			FirstDay:     labels[0],
			LastDay:      labels[len(labels)-1],
			UniqueDays:   len(uniqueDays),
			UniqueUsers:  len(ids),
		},
	}, nil
}

// locateColumns finds the ID_Cust and Date columns by name,
// case-insensitively.
func locateColumns(header []string) (idCol, dateCol int, err error) {
	idCol, dateCol = -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id_cust":
			idCol = i
		case "date":
			dateCol = i
		}
	}
	if idCol < 0 {
		return 0, 0, fmt.Errorf("%w: ID_Cust", ErrMissingColumn)
	}
	if dateCol < 0 {
		return 0, 0, fmt.Errorf("%w: Date", ErrMissingColumn)
	}
	return idCol, dateCol, nil
}

// parseDay parses an event timestamp and truncates it to days since the
// Unix epoch.
func parseDay(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Unix() / 86400, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadDate, raw)
}

// sortCustomerIDs orders ids numerically when every id parses as an
// integer, lexicographically otherwise.
func sortCustomerIDs(ids []string) {
	nums := make(map[string]int64, len(ids))
	numeric := true
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			numeric = false
			break
		}
		nums[id] = n
	}
	if numeric {
		sort.Slice(ids, func(i, j int) bool { return nums[ids[i]] < nums[ids[j]] })
		return
	}
	sort.Strings(ids)
}
