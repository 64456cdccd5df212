package bench

import (
	"fmt"
	"os"

	"pkg.jsn.cam/stressgen/internal/config"
)

// Report is the outcome of checking one output file
type Report struct {
	Name  string
	Path  string
	Bytes int64
	Err   error
}

// Verify re-reads every target and checks its nesting. It returns one report
// per target and ErrVerify if any file is missing or malformed.
func Verify(cfg config.Config) ([]Report, error) {
	var (
		reports []Report
		failed  int
	)

	for _, t := range Targets(cfg) {
		rep := Report{Name: t.Name, Path: t.Path}

		data, err := os.ReadFile(t.Path)
		switch {
		case err != nil:
			rep.Err = err
		case len(data) == 0:
			rep.Err = fmt.Errorf("%s is empty", t.Path)
		default:
			rep.Bytes = int64(len(data))
			rep.Err = t.check(string(data))
		}

		if rep.Err != nil {
			failed++
		}
		reports = append(reports, rep)
	}

	if failed > 0 {
		return reports, fmt.Errorf("%w: %d of %d files failed", ErrVerify, failed, len(reports))
	}
	return reports, nil
}
