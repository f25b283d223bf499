package track

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/basetype"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"

	"depthsync/internal/failure"
)

func TestDecodeCSV(t *testing.T) {
	input := `timestamp,depth_mm,temperature_c
# surface interval
100,5000,15
2024-06-01T10:00:10Z,6000.4,14.5
120,,14
130,7000
abc,7000,13
140,8000,nan
`
	result, err := DecodeCSV(strings.NewReader(input), "dive.csv")
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}

	want := []Sample{
		{Timestamp: 100, DepthMM: 5000, TemperatureC: 15, Source: "dive.csv"},
		{Timestamp: time.Date(2024, 6, 1, 10, 0, 10, 0, time.UTC).Unix(), DepthMM: 6000, TemperatureC: 14.5, Source: "dive.csv"},
	}
	if diff := cmp.Diff(want, result.Samples); diff != "" {
		t.Fatalf("samples mismatch (-want +got):\n%s", diff)
	}
	if result.Malformed() != 4 {
		t.Fatalf("expected 4 malformed rows, got %d: %+v", result.Malformed(), result.Rejected)
	}
	for _, rejected := range result.Rejected {
		if !errors.Is(rejected.Err, ErrMalformedSample) {
			t.Errorf("row %d: expected ErrMalformedSample, got %v", rejected.Index, rejected.Err)
		}
	}
}

func TestDecodeCSVRequiresColumns(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("time,depth\n1,2\n"), "bad.csv")
	if err == nil || !strings.Contains(err.Error(), "missing column") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestDecodeCSVEmpty(t *testing.T) {
	result, err := DecodeCSV(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if len(result.Samples) != 0 || result.Malformed() != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func newRecord(ts time.Time, depthMM uint32, temperatureC int8) *mesgdef.Record {
	return mesgdef.NewRecord(nil).
		SetTimestamp(ts).
		SetDepth(depthMM).
		SetTemperature(temperatureC)
}

// encodeActivity builds a FIT activity file holding the given records.
func encodeActivity(t *testing.T, records ...*mesgdef.Record) []byte {
	t.Helper()
	created := time.Date(2024, 6, 1, 9, 55, 0, 0, time.UTC)
	messages := []proto.Message{
		mesgdef.NewFileId(nil).
			SetType(typedef.FileActivity).
			SetManufacturer(typedef.ManufacturerDevelopment).
			SetTimeCreated(created).
			ToMesg(nil),
	}
	for _, rec := range records {
		messages = append(messages, rec.ToMesg(nil))
	}
	var buf bytes.Buffer
	if err := encoder.New(&buf).Encode(&proto.FIT{Messages: messages}); err != nil {
		t.Fatalf("encode fit: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeFITReadsDepthAndTemperature(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	missingTemp := newRecord(start.Add(20*time.Second), 7000, 0)
	missingTemp.Temperature = basetype.Sint8Invalid

	data := encodeActivity(t,
		newRecord(start, 5000, 15),
		newRecord(start.Add(10*time.Second), 6000, 14),
		missingTemp,
	)
	result, err := DecodeFIT(bytes.NewReader(data), "dive.fit")
	if err != nil {
		t.Fatalf("DecodeFIT: %v", err)
	}

	want := []Sample{
		{Timestamp: 1717236000, DepthMM: 5000, TemperatureC: 15, Source: "dive.fit"},
		{Timestamp: 1717236010, DepthMM: 6000, TemperatureC: 14, Source: "dive.fit"},
	}
	if diff := cmp.Diff(want, result.Samples); diff != "" {
		t.Fatalf("samples mismatch (-want +got):\n%s", diff)
	}
	if result.Malformed() != 1 || result.Rejected[0].Index != 2 {
		t.Fatalf("expected the third record rejected, got %+v", result.Rejected)
	}
	if !errors.Is(result.Rejected[0].Err, ErrMalformedSample) {
		t.Fatalf("expected ErrMalformedSample, got %v", result.Rejected[0].Err)
	}
}

func TestLoadFITFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DIVE.FIT")
	data := encodeActivity(t, newRecord(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), 5400, 14))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Samples) != 1 || result.Samples[0].DepthMM != 5400 {
		t.Fatalf("unexpected samples %+v", result.Samples)
	}
	if diff := cmp.Diff([]string{path}, result.Files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleFromRecordRejectsInvalidFields(t *testing.T) {
	valid := func() *mesgdef.Record {
		return newRecord(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), 5400, 14)
	}

	got, err := sampleFromRecord(valid(), "dive.fit")
	if err != nil {
		t.Fatalf("sampleFromRecord: %v", err)
	}
	want := Sample{Timestamp: 1717236000, DepthMM: 5400, TemperatureC: 14, Source: "dive.fit"}
	if got != want {
		t.Fatalf("sample = %+v, want %+v", got, want)
	}

	tests := []struct {
		name   string
		mutate func(*mesgdef.Record)
	}{
		{"timestamp", func(r *mesgdef.Record) { r.Timestamp = time.Time{} }},
		{"fit epoch", func(r *mesgdef.Record) { r.Timestamp = fitEpoch }},
		{"depth", func(r *mesgdef.Record) { r.Depth = basetype.Uint32Invalid }},
		{"temperature", func(r *mesgdef.Record) { r.Temperature = basetype.Sint8Invalid }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid()
			tt.mutate(rec)
			if _, err := sampleFromRecord(rec, "dive.fit"); !errors.Is(err, ErrMalformedSample) {
				t.Fatalf("expected ErrMalformedSample, got %v", err)
			}
		})
	}
}

func TestDecodeFITRejectsGarbage(t *testing.T) {
	if _, err := DecodeFIT(strings.NewReader("definitely not a fit file"), "junk.fit"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := DecodeFIT(strings.NewReader(""), "empty.fit"); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestLoadFilesConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "b.csv")
	second := filepath.Join(dir, "a.CSV")
	writeFile(t, first, "timestamp,depth_mm,temperature_c\n200,1000,10\n")
	writeFile(t, second, "temperature_c,timestamp,depth_mm\n11,100,2000\n")

	result, err := LoadFiles([]string{first, second})
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if len(result.Samples) != 2 || result.Samples[0].Timestamp != 200 || result.Samples[1].DepthMM != 2000 {
		t.Fatalf("unexpected samples %+v", result.Samples)
	}
	if diff := cmp.Diff([]string{first, second}, result.Files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
	if result.Samples[0].Timestamp < result.Samples[1].Timestamp {
		t.Fatal("expected samples in file order, not time order")
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load("dive.uddf"); !errors.Is(err, failure.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "gone.csv")
	if _, err := Load(missing); !errors.Is(err, failure.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if IsTrackFile("IMG_0001.JPG") || !IsTrackFile("DIVE.FIT") {
		t.Fatal("IsTrackFile misclassified extensions")
	}
}

func TestSummarize(t *testing.T) {
	samples := []Sample{
		{Timestamp: 110, DepthMM: 6000, TemperatureC: 14},
		{Timestamp: 100, DepthMM: 5000, TemperatureC: 15},
		{Timestamp: 160, DepthMM: 1000, TemperatureC: 16},
	}
	got := Summarize(samples)
	if got.Samples != 3 {
		t.Fatalf("samples = %d", got.Samples)
	}
	if got.Duration != time.Minute {
		t.Fatalf("duration = %v", got.Duration)
	}
	if got.MaxDepthMM != 6000 || got.MeanDepthMM != 4000 {
		t.Fatalf("depth stats = %v / %v", got.MaxDepthMM, got.MeanDepthMM)
	}
	if got.MinTemperatureC != 14 || got.MeanTemperatureC != 15 {
		t.Fatalf("temperature stats = %v / %v", got.MinTemperatureC, got.MeanTemperatureC)
	}
	if (Summarize(nil) != Summary{}) {
		t.Fatal("expected zero summary for empty track")
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
