package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/tlinesim/internal/drive"
	"github.com/san-kum/tlinesim/internal/tline"
)

var ErrNoData = errors.New("storage: run has no field data")

const (
	metaFile  = "metadata.json"
	fieldFile = "field.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	ZSource   float64            `json:"z_source"`
	ZTrace    float64            `json:"z_trace"`
	ZLoad     float64            `json:"z_load"`
	Length    float64            `json:"length"`
	Samples   int                `json:"samples"`
	Steps     int                `json:"steps"`
	EndTime   float64            `json:"end_time"`
	Drive     drive.Spec         `json:"drive"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes the metadata and the field under a fresh run directory and
// returns the run id. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, f *tline.Field) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = f.Steps()
	meta.Samples = f.Samples()

	if err := writeJSON(filepath.Join(runDir, metaFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, fieldFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, f, f.TimeAxis(meta.EndTime)); err != nil {
		return "", err
	}
	return runID, csvFile.Close()
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return file.Close()
}

// WriteCSV writes one row per time step: the time followed by the voltage
// at every spatial sample.
func WriteCSV(out io.Writer, f *tline.Field, times []float64) error {
	w := csv.NewWriter(out)

	header := []string{"time"}
	for i := 0; i < f.Samples(); i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < f.Steps(); i++ {
		row := make([]string, 0, f.Samples()+1)
		row = append(row, strconv.FormatFloat(times[i], 'f', 6, 64))
		for _, val := range f.Row(i) {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadField reads a stored field back together with its time axis.
func (s *Store) LoadField(runID string) (*tline.Field, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, fieldFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV parses the format written by WriteCSV. Rows with an unparsable
// time are skipped.
func ReadCSV(in io.Reader) (*tline.Field, []float64, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, ErrNoData
	}

	times := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		row := make([]float64, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: row %d column %d: %w", i, j, err)
			}
			row[j-1] = val
		}
		times = append(times, t)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, nil, ErrNoData
	}
	f, err := tline.NewField(rows)
	if err != nil {
		return nil, nil, err
	}
	return f, times, nil
}
