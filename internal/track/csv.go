package track

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

var csvColumns = []string{"timestamp", "depth_mm", "temperature_c"}

// LoadCSV reads a track exported as CSV with the header
// "timestamp,depth_mm,temperature_c". Timestamps are epoch seconds or RFC 3339.
func LoadCSV(path string) (LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open csv track: %w", err)
	}
	defer file.Close()
	return DecodeCSV(file, path)
}

// DecodeCSV parses CSV track data from r.
func DecodeCSV(r io.Reader, source string) (LoadResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return LoadResult{Files: []string{source}}, nil
		}
		return LoadResult{}, fmt.Errorf("read csv header %s: %w", source, err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return LoadResult{}, fmt.Errorf("csv %s: %w", source, err)
	}

	result := LoadResult{Files: []string{source}}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return LoadResult{}, fmt.Errorf("read csv %s: %w", source, err)
		}
		sample, err := sampleFromRow(record, index, source)
		if err != nil {
			result.Rejected = append(result.Rejected, Rejected{Source: source, Index: row, Err: err})
			continue
		}
		result.Samples = append(result.Samples, sample)
	}
	return result, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, column := range csvColumns {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("missing column %q", column)
		}
	}
	return index, nil
}

func sampleFromRow(record []string, index map[string]int, source string) (Sample, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rawTS := field("timestamp")
	if rawTS == "" {
		return Sample{}, fmt.Errorf("%w: missing timestamp", ErrMalformedSample)
	}
	ts, err := parseTimestamp(rawTS)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %v", ErrMalformedSample, err)
	}
	rawDepth := field("depth_mm")
	if rawDepth == "" {
		return Sample{}, fmt.Errorf("%w: missing depth", ErrMalformedSample)
	}
	depth, err := strconv.ParseFloat(rawDepth, 64)
	if err != nil || math.IsNaN(depth) || math.IsInf(depth, 0) {
		return Sample{}, fmt.Errorf("%w: invalid depth %q", ErrMalformedSample, rawDepth)
	}
	rawTemp := field("temperature_c")
	if rawTemp == "" {
		return Sample{}, fmt.Errorf("%w: missing temperature", ErrMalformedSample)
	}
	temp, err := strconv.ParseFloat(rawTemp, 64)
	if err != nil || math.IsNaN(temp) || math.IsInf(temp, 0) {
		return Sample{}, fmt.Errorf("%w: invalid temperature %q", ErrMalformedSample, rawTemp)
	}
	return Sample{
		Timestamp:    ts,
		DepthMM:      int64(math.Round(depth)),
		TemperatureC: temp,
		Source:       source,
	}, nil
}

func parseTimestamp(value string) (int64, error) {
	if epoch, err := strconv.ParseInt(value, 10, 64); err == nil {
		return epoch, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return parsed.Unix(), nil
}
