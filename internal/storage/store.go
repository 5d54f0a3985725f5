package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/blokeley/montecarlo/internal/mc"
)

// Store persists simulation runs under a base directory, one
// subdirectory per run holding metadata.json, convergence.csv and
// histogram.csv.
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
	ID          string    `json:"id"`
	Model       string    `json:"model"`
	Timestamp   time.Time `json:"timestamp"`
	Seed        int64     `json:"seed"`
	SampleCount int64     `json:"sample_count"`
	Tolerance   float64   `json:"tolerance,omitempty"`
	Converged   bool      `json:"converged"`
	Mean        float64   `json:"mean"`
	Variance    float64   `json:"variance"`
	StdDev      float64   `json:"std_dev"`
	StdErr      float64   `json:"std_err"`
}

func (s *Store) Save(model string, seed int64, tolerance float64, result *mc.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Model:       model,
		Timestamp:   time.Now(),
		Seed:        seed,
		SampleCount: result.SampleCount,
		Tolerance:   tolerance,
		Converged:   result.Converged,
		Mean:        result.Stats.Mean,
		Variance:    result.Stats.Variance,
		StdDev:      result.Stats.StdDev,
		StdErr:      result.Stats.StdErr,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.saveConvergence(runDir, result.Trace); err != nil {
		return "", err
	}
	if result.Hist != nil {
		if err := s.saveHistogram(runDir, result); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) saveConvergence(runDir string, trace []mc.ConvergencePoint) error {
	f, err := os.Create(filepath.Join(runDir, "convergence.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"n", "mean", "std_err"}); err != nil {
		return err
	}
	for _, p := range trace {
		row := []string{
			strconv.FormatInt(p.N, 10),
			strconv.FormatFloat(p.Mean, 'f', 6, 64),
			strconv.FormatFloat(p.StdErr, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) saveHistogram(runDir string, result *mc.Result) error {
	f, err := os.Create(filepath.Join(runDir, "histogram.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"lo", "hi", "count"}); err != nil {
		return err
	}
	for _, bin := range result.Hist.Bins() {
		row := []string{
			strconv.FormatFloat(bin.Lo, 'f', 6, 64),
			strconv.FormatFloat(bin.Hi, 'f', 6, 64),
			strconv.FormatInt(bin.Count, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

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
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadConvergence reads back a run's convergence trace.
func (s *Store) LoadConvergence(runID string) ([]mc.ConvergencePoint, error) {
	records, err := s.readCSV(filepath.Join(s.baseDir, runID, "convergence.csv"))
	if err != nil {
		return nil, err
	}
	trace := make([]mc.ConvergencePoint, 0, len(records))
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		n, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			continue
		}
		mean, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		stderr, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			continue
		}
		trace = append(trace, mc.ConvergencePoint{N: n, Mean: mean, StdErr: stderr})
	}
	return trace, nil
}

// HistBin mirrors one histogram.csv row.
type HistBin struct {
	Lo    float64
	Hi    float64
	Count int64
}

// LoadHistogram reads back a run's histogram rows.
func (s *Store) LoadHistogram(runID string) ([]HistBin, error) {
	records, err := s.readCSV(filepath.Join(s.baseDir, runID, "histogram.csv"))
	if err != nil {
		return nil, err
	}
	bins := make([]HistBin, 0, len(records))
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		lo, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}
		hi, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		count, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			continue
		}
		bins = append(bins, HistBin{Lo: lo, Hi: hi, Count: count})
	}
	return bins, nil
}

// readCSV returns the data rows of a headed CSV file.
func (s *Store) readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, nil
	}
	return records[1:], nil
}
