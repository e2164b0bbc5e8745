package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"issue-assistant/internal/analysis"
	"issue-assistant/internal/issues"
	"issue-assistant/internal/ui"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

func writeOutput(w io.Writer, format string, v any) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatTable:
		switch val := v.(type) {
		case analysis.AnalysisResult:
			_, err := io.WriteString(w, ui.FormatAnalysis(val))
			return err
		case issues.DeveloperInfo:
			_, err := io.WriteString(w, ui.FormatDeveloperInfo(val))
			return err
		}
		return fmt.Errorf("table output not supported for %T", v)
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or table)", format)
	}
}
