package track

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/basetype"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
)

// fitEpoch is the FIT protocol's time zero; anything at or before it is an
// unset timestamp.
var fitEpoch = time.Date(1989, time.December, 31, 0, 0, 0, 0, time.UTC)

// LoadFIT decodes a FIT activity file and returns its record messages as
// samples.
func LoadFIT(path string) (LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open fit file: %w", err)
	}
	defer file.Close()
	return DecodeFIT(bufio.NewReader(file), path)
}

// DecodeFIT decodes FIT data from r. Chained FIT sequences are read in
// order. source is recorded on every sample.
func DecodeFIT(r io.Reader, source string) (LoadResult, error) {
	result := LoadResult{Files: []string{source}}
	dec := decoder.New(r)
	sequences := 0
	for dec.Next() {
		decoded, err := dec.Decode()
		if err != nil {
			return LoadResult{}, fmt.Errorf("decode fit %s: %w", source, err)
		}
		sequences++
		index := 0
		for i := range decoded.Messages {
			if decoded.Messages[i].Num != typedef.MesgNumRecord {
				continue
			}
			record := mesgdef.NewRecord(&decoded.Messages[i])
			sample, err := sampleFromRecord(record, source)
			if err != nil {
				result.Rejected = append(result.Rejected, Rejected{Source: source, Index: index, Err: err})
			} else {
				result.Samples = append(result.Samples, sample)
			}
			index++
		}
	}
	if sequences == 0 {
		return LoadResult{}, fmt.Errorf("decode fit %s: no fit data", source)
	}
	return result, nil
}

func sampleFromRecord(record *mesgdef.Record, source string) (Sample, error) {
	ts := record.Timestamp
	if ts.IsZero() || !ts.After(fitEpoch) {
		return Sample{}, fmt.Errorf("%w: missing timestamp", ErrMalformedSample)
	}
	if record.Depth == basetype.Uint32Invalid {
		return Sample{}, fmt.Errorf("%w: missing depth at %s", ErrMalformedSample, ts.UTC().Format(time.RFC3339))
	}
	if record.Temperature == basetype.Sint8Invalid {
		return Sample{}, fmt.Errorf("%w: missing temperature at %s", ErrMalformedSample, ts.UTC().Format(time.RFC3339))
	}
	// Depth is stored in metres with a scale of 1000, so the raw value is mm.
	return Sample{
		Timestamp:    ts.Unix(),
		DepthMM:      int64(record.Depth),
		TemperatureC: float64(record.Temperature),
		Source:       source,
	}, nil
}
