package importer

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// ImportDXF imports every CIRCLE entity of a DXF file. Other entities,
// such as the canvas outline, are counted and skipped.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Circle:
			if e.Radius <= 0 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Skipped degenerate circle at (%.2f, %.2f)", e.Center[0], e.Center[1]))
				continue
			}
			result.Circles = append(result.Circles, Circle{X: e.Center[0], Y: e.Center[1], Radius: e.Radius})
		default:
			skipped++
		}
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d non-circle entities", skipped))
	}
	if len(result.Circles) == 0 {
		result.Errors = append(result.Errors, "No circles found in DXF file")
	}
	return result
}
