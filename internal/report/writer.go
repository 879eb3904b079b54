package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/econ-intel/internal/model"
)

// Write emits the configured report formats into dir and returns the paths
// written. Unknown format names are an error; the formats list is validated
// configuration, not data.
func Write(dir string, formats []string, run *model.Run) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "report: create dir %s", dir)
	}

	var paths []string
	for _, format := range formats {
		var (
			path string
			err  error
		)
		switch format {
		case "markdown":
			path = filepath.Join(dir, run.ID+".md")
			err = os.WriteFile(path, []byte(FormatMarkdown(run)), 0o644)
		case "json":
			path = filepath.Join(dir, run.ID+".json")
			var payload []byte
			payload, err = json.MarshalIndent(run, "", "  ")
			if err == nil {
				err = os.WriteFile(path, payload, 0o644)
			}
		default:
			return nil, eris.Errorf("report: unknown format %q", format)
		}
		if err != nil {
			return nil, eris.Wrapf(err, "report: write %s", format)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
