package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/tumble/internal/logger"
)

// LoadOBJ loads a Wavefront-style .obj file. Only "v" and "f" records are
// used; everything else is skipped.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads .obj records from r and returns a finalized mesh.
//
// Face tokens may be bare indices or a/b/c compounds, of which only the first
// component is used. Indices are 1-based; negative indices count back from the
// most recently read vertex. Faces with more than three vertices are fan
// triangulated from their first vertex. Malformed vertices and faces that
// reference missing vertices are skipped.
func ParseOBJ(name string, r io.Reader) (*Mesh, error) {
	mesh := NewMesh(name)
	var vertices []Point3

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseVertex(fields[1:])
			if err != nil {
				logger.Warn("skipping vertex", zap.Int("line", lineNo), zap.Error(err))
				continue
			}
			vertices = append(vertices, p)

		case "f":
			poly, err := parseFace(fields[1:], vertices)
			if err != nil {
				logger.Warn("skipping face", zap.Int("line", lineNo), zap.Error(err))
				continue
			}
			mesh.AddPolygon(poly)

		default:
			logger.Debug("ignoring line", zap.Int("line", lineNo), zap.String("record", fields[0]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	// Bounds cover every vertex, referenced or not.
	if err := mesh.FinalizeBounds(vertices); err != nil {
		return nil, err
	}
	logger.Debug("loaded obj",
		zap.String("name", name),
		zap.Int("vertices", len(vertices)),
		zap.Int("triangles", mesh.TriangleCount()))
	return mesh, nil
}

func parseVertex(args []string) (Point3, error) {
	if len(args) < 3 {
		return Point3{}, fmt.Errorf("want 3 coordinates, got %d", len(args))
	}
	var c [3]float64
	for i := range c {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return Point3{}, fmt.Errorf("coordinate %d: %w", i, err)
		}
		c[i] = v
	}
	return P3(c[0], c[1], c[2]), nil
}

func parseFace(args []string, vertices []Point3) ([]Point3, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("want at least 3 vertices, got %d", len(args))
	}
	poly := make([]Point3, 0, len(args))
	for _, tok := range args {
		ref, _, _ := strings.Cut(tok, "/")
		idx, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("vertex reference %q: %w", tok, err)
		}
		// 1-based, negative is relative to the end
		switch {
		case idx > 0:
			idx--
		case idx < 0:
			idx += len(vertices)
		default:
			return nil, fmt.Errorf("vertex reference %q: index 0 is invalid", tok)
		}
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("vertex reference %q: out of range (have %d)", tok, len(vertices))
		}
		poly = append(poly, vertices[idx])
	}
	return poly, nil
}
