package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/attractors/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Points [][3]float64 `json:"points"`
}

// ExportJSON writes a run and its trajectory as one indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, points []dynamo.Point3) error {
	data := ExportData{
		RunMetadata: *meta,
		Points:      make([][3]float64, len(points)),
	}
	for i, p := range points {
		data.Points[i] = [3]float64{p.X, p.Y, p.Z}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
