package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/pdftext/internal/common"
)

// Profile is a named set of extraction options supplied per invocation.
// Zero values mean "keep the configured default".
type Profile struct {
	Languages   string `json:"languages,omitempty"`
	DPI         int    `json:"dpi,omitempty"`
	PSM         int    `json:"psm,omitempty"`
	OEM         int    `json:"oem,omitempty"`
	MaxPages    int    `json:"max_pages,omitempty"`
	TessdataDir string `json:"tessdata_dir,omitempty"`
	PopplerDir  string `json:"poppler_dir,omitempty"`
	Normalize   bool   `json:"normalize,omitempty"`
}

// Load reads a profile file, validates it against the profile schema, and
// unmarshals it.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	if err := validateJSONAgainstSchema(BuildProfileJSONSchema(), data); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, nil
}

// Apply overlays the profile's non-zero options onto cfg.
func (p Profile) Apply(cfg *common.Config) {
	if p.Languages != "" {
		cfg.OCR.Languages = p.Languages
	}
	if p.DPI > 0 {
		cfg.Raster.DPI = p.DPI
	}
	if p.PSM > 0 {
		cfg.OCR.PSM = p.PSM
	}
	if p.OEM > 0 {
		cfg.OCR.OEM = p.OEM
	}
	if p.MaxPages > 0 {
		cfg.Raster.MaxPages = p.MaxPages
	}
	if p.TessdataDir != "" {
		cfg.OCR.TessdataDir = p.TessdataDir
	}
	if p.PopplerDir != "" {
		cfg.Raster.PopplerDir = p.PopplerDir
	}
	if p.Normalize {
		cfg.OCR.Normalize = true
	}
}

// validateJSONAgainstSchema validates "data" against "schemaMap".
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profile.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("profile.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
