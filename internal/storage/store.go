package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/firesim/internal/config"
	"github.com/san-kum/firesim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "metrics.csv"
)

// ErrInvalidRunID is returned for run ids that would resolve outside the
// data directory.
var ErrInvalidRunID = errors.New("storage: invalid run id")

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
	Scene     string             `json:"scene"`
	Backend   string             `json:"backend"`
	Timestamp time.Time          `json:"timestamp"`
	Size      [3]int             `json:"size"`
	Frames    int                `json:"frames"`
	Dt        float64            `json:"dt"`
	WallTime  float64            `json:"wall_time_seconds"`
	Params    map[string]float64 `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewRunID returns a unique identifier prefixed with the run name.
func NewRunID(name string) string {
	if name == "" {
		name = "run"
	}
	return fmt.Sprintf("%s_%s", name, uuid.New().String()[:8])
}

// Save writes the run metadata and its per-frame metric series under a new
// run directory and returns the run ID.
func (s *Store) Save(cfg *config.Config, backend string, result *sim.Result) (string, error) {
	runID := NewRunID(cfg.Name)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      cfg.Name,
		Scene:     cfg.Scene,
		Backend:   backend,
		Timestamp: time.Now(),
		Size:      cfg.Size,
		Frames:    result.Frames,
		Dt:        cfg.Params.Dt,
		WallTime:  result.Duration.Seconds(),
		Params:    cfg.KernelParams().Values(),
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func seriesNames(series map[string][]float64) []string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeSeries(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	names := seriesNames(result.Series)

	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := []string{strconv.FormatFloat(t, 'f', 6, 64)}
		for _, name := range names {
			val := 0.0
			if i < len(result.Series[name]) {
				val = result.Series[name][i]
			}
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, newest first.
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
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// runPath joins a file of runID under the data directory. The id must be a
// single path element.
func (s *Store) runPath(runID, file string) (string, error) {
	if runID == "" || runID == "." || strings.Contains(runID, "..") || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return filepath.Join(s.baseDir, runID, file), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	path, err := s.runPath(runID, metadataFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadSeries reads the per-frame metric series of a run.
func (s *Store) LoadSeries(runID string) ([]float64, map[string][]float64, error) {
	path, err := s.runPath(runID, seriesFile)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}

	series := make(map[string][]float64)
	if len(records) < 1 {
		return []float64{}, series, nil
	}

	header := records[0]
	for _, name := range header[1:] {
		series[name] = make([]float64, 0, len(records)-1)
	}
	times := make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s: time: %w", runID, err)
		}
		times = append(times, t)

		for j, name := range header[1:] {
			val, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: %s: %w", runID, name, err)
			}
			series[name] = append(series[name], val)
		}
	}

	return times, series, nil
}
