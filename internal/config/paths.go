package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	InputDir      string
	ReportsDir    string
	LogsDir       string

	// Well-known output files
	FactCSV       string
	KPICSV        string
	DemandCSV     string
	RunReportJSON string
}

// GetPaths returns the application paths relative to the executable location
// All paths are ALWAYS relative to the executable directory, never the current working directory
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)

	// Directory structure:
	//   data/
	//     input/     (source transaction workbooks)
	//     reports/   (generated CSV and JSON outputs)
	//   logs/        (application logs)
	dataDir := filepath.Join(exeDir, "data")
	reportsDir := filepath.Join(dataDir, "reports")

	paths := &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		InputDir:      filepath.Join(dataDir, "input"),
		ReportsDir:    reportsDir,
		LogsDir:       filepath.Join(exeDir, "logs"),

		FactCSV:       filepath.Join(reportsDir, "transactions_clean.csv"),
		KPICSV:        filepath.Join(reportsDir, "store_category_kpis.csv"),
		DemandCSV:     filepath.Join(reportsDir, "demand_matrix.csv"),
		RunReportJSON: filepath.Join(reportsDir, "run_report.json"),
	}

	return paths, nil
}

// SetReportsDir redirects report output to dir and recomputes the
// well-known output file paths to match.
func (p *Paths) SetReportsDir(dir string) {
	p.ReportsDir = dir
	p.FactCSV = filepath.Join(dir, "transactions_clean.csv")
	p.KPICSV = filepath.Join(dir, "store_category_kpis.csv")
	p.DemandCSV = filepath.Join(dir, "demand_matrix.csv")
	p.RunReportJSON = filepath.Join(dir, "run_report.json")
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.InputDir,
		p.ReportsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetInputPath returns the full path for an input workbook file
func (p *Paths) GetInputPath(filename string) string {
	return filepath.Join(p.InputDir, filename)
}

// GetReportPath returns the full path for a generated report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
