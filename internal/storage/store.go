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
	"time"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.csv"
)

// ErrRunNotFound is returned when a run id has no metadata on disk.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string          `json:"id"`
	Family    string          `json:"family"`
	Timestamp time.Time       `json:"timestamp"`
	Dt        float64         `json:"dt"`
	Params    dynamo.Params   `json:"params"`
	Initial   dynamo.Point3   `json:"initial"`
	Steps     int             `json:"steps"`
	Bounds    analysis.Bounds `json:"bounds"`
	Midpoint  dynamo.Point3   `json:"midpoint"`
}

// Recorder streams the points of one run to disk. It satisfies the
// controller's observer interface, so it can be attached to a live
// simulation.
type Recorder struct {
	store  *Store
	meta   RunMetadata
	file   *os.File
	w      *csv.Writer
	bounds analysis.Bounds
	err    error
}

// NewRecorder creates the run directory and opens its point log.
func (s *Store) NewRecorder(f physics.Family, dt float64, k dynamo.Params, initial dynamo.Point3) (*Recorder, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}

	now := time.Now()
	runID, runDir, err := s.makeRunDir(f.String(), now)
	if err != nil {
		return nil, err
	}

	file, err := os.Create(filepath.Join(runDir, pointsFile))
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		store: s,
		meta: RunMetadata{
			ID:        runID,
			Family:    f.String(),
			Timestamp: now,
			Dt:        dt,
			Params:    k,
			Initial:   initial,
		},
		file: file,
		w:    csv.NewWriter(file),
	}
	r.err = r.w.Write([]string{"step", "x", "y", "z"})
	return r, nil
}

func (s *Store) makeRunDir(family string, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", family, now.Unix())
	for i := 0; ; i++ {
		runID := base
		if i > 0 {
			runID = fmt.Sprintf("%s_%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
	}
}

func (r *Recorder) ID() string { return r.meta.ID }

// OnPoint appends p to the run. The first write error is kept and
// returned by Close.
func (r *Recorder) OnPoint(_ physics.Family, p dynamo.Point3) {
	if r.err != nil {
		return
	}
	r.bounds.Observe(p)
	r.err = r.w.Write([]string{
		strconv.Itoa(r.meta.Steps),
		formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z),
	})
	r.meta.Steps++
}

// Close flushes the point log and writes the run metadata.
func (r *Recorder) Close() (*RunMetadata, error) {
	r.w.Flush()
	if r.err == nil {
		r.err = r.w.Error()
	}
	if err := r.file.Close(); r.err == nil {
		r.err = err
	}
	if r.err != nil {
		return nil, fmt.Errorf("record %s: %w", r.meta.ID, r.err)
	}

	r.meta.Bounds = r.bounds
	r.meta.Midpoint = r.bounds.Midpoint()
	if err := writeJSON(filepath.Join(r.store.baseDir, r.meta.ID, metadataFile), r.meta); err != nil {
		return nil, err
	}
	return &r.meta, nil
}

// Save writes a finished trajectory as a new run.
func (s *Store) Save(f physics.Family, dt float64, k dynamo.Params, points []dynamo.Point3) (*RunMetadata, error) {
	var initial dynamo.Point3
	if len(points) > 0 {
		initial = points[0]
	}
	r, err := s.NewRecorder(f, dt, k, initial)
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		r.OnPoint(f, p)
	}
	return r.Close()
}

// List returns every readable run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadPoints reads the recorded trajectory of a run.
func (s *Store) LoadPoints(runID string) ([]dynamo.Point3, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, pointsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	if len(records) < 2 {
		return []dynamo.Point3{}, nil
	}

	points := make([]dynamo.Point3, 0, len(records)-1)
	for i, record := range records[1:] {
		var xyz [3]float64
		for j := range xyz {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", runID, i+1, err)
			}
			xyz[j] = v
		}
		points = append(points, dynamo.PointFromSlice(xyz[:]))
	}
	return points, nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
