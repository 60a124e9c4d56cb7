package sim

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"
)

// datasetFile is the YAML layout of a cascade dataset.
type datasetFile struct {
	Name         string          `yaml:"name"`
	HorizonWeeks int             `yaml:"horizon_weeks"`
	Reservoirs   []reservoirFile `yaml:"reservoirs"`
}

type reservoirFile struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Curve struct {
		Storages []float64 `yaml:"storages"`
		Areas    []float64 `yaml:"areas"`
	} `yaml:"storage_area_curve"`
	Evaporation []float64           `yaml:"evaporation"`
	Inflows     []float64           `yaml:"inflows"`
	Streamflow  *streamflowSpecFile `yaml:"streamflow"`
	Demands     []float64           `yaml:"demands"`
}

type streamflowSpecFile struct {
	Amplitude float64 `yaml:"amplitude"`
	LogMean   float64 `yaml:"log_mean"`
	LogSigma  float64 `yaml:"log_sigma"`
	Seed      int64   `yaml:"seed"`
}

// ParseDataset parses and validates a YAML cascade dataset. Reservoirs may
// declare explicit inflows or a streamflow generator spec; declaring both is
// an error.
func ParseDataset(data []byte) (*Cascade, error) {
	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing dataset: %w", err)
	}

	cascade := &Cascade{
		Name:         file.Name,
		HorizonWeeks: file.HorizonWeeks,
		Reservoirs:   make([]Reservoir, 0, len(file.Reservoirs)),
	}

	for _, rf := range file.Reservoirs {
		reservoir := Reservoir{
			ID:   rf.ID,
			Name: rf.Name,
			Curve: StorageAreaCurve{
				Storages: rf.Curve.Storages,
				Areas:    rf.Curve.Areas,
			},
			Evaporation: rf.Evaporation,
			Inflows:     rf.Inflows,
			Demands:     rf.Demands,
		}

		if rf.Streamflow != nil {
			if len(rf.Inflows) > 0 {
				return nil, fmt.Errorf("reservoir %s declares both inflows and a streamflow spec", rf.ID)
			}
			flows, err := GenerateStreamflow(file.HorizonWeeks, StreamflowSpec{
				Amplitude: rf.Streamflow.Amplitude,
				LogMean:   rf.Streamflow.LogMean,
				LogSigma:  rf.Streamflow.LogSigma,
				Seed:      rf.Streamflow.Seed,
			})
			if err != nil {
				return nil, fmt.Errorf("reservoir %s: %w", rf.ID, err)
			}
			reservoir.Inflows = flows
		}

		cascade.Reservoirs = append(cascade.Reservoirs, reservoir)
	}

	if err := cascade.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	return cascade, nil
}

func rawDatasetData(source string, isLocalFile bool) ([]byte, error) {
	if isLocalFile {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local dataset file: %w", err)
		}
		return b, nil
	}

	resp, err := http.Get(source)
	if err != nil {
		return nil, fmt.Errorf("error downloading dataset: %w", err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading dataset: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}
	return b, nil
}

// loadDataset loads and parses a cascade dataset from either a URL or a local file.
func loadDataset(source string, isLocalFile bool) (*Cascade, error) {
	b, err := rawDatasetData(source, isLocalFile)
	if err != nil {
		return nil, err
	}
	return ParseDataset(b)
}
