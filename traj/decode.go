package traj

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pierrec/lz4/v4"
)

var lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}

// SkippedRowsError reports rows that were dropped while parsing. Parse only
// returns it through Options.Strict.
type SkippedRowsError struct {
	Lines []int
}

func (e *SkippedRowsError) Error() string {
	return fmt.Sprintf("%d malformed rows skipped, first on line %d", len(e.Lines), e.Lines[0])
}

type Options struct {
	Logger *slog.Logger
	// Strict turns skipped rows into an error
	Strict bool
}

// Load reads the trajectory file at path. A missing file yields an empty
// slice and an error matching ErrNoData.
func Load(path string, logger *slog.Logger) ([]Trajectory, error) {
	return LoadWith(path, Options{Logger: logger})
}

func LoadWith(path string, opts Options) ([]Trajectory, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return []Trajectory{}, fmt.Errorf("%v: %w", path, ErrNoData)
	} else if err != nil {
		return []Trajectory{}, fmt.Errorf("open trajectories: %w", err)
	}
	defer file.Close()

	trajs, err := ParseWith(file, opts)
	if err != nil {
		return trajs, fmt.Errorf("%v: %w", path, err)
	}
	return trajs, nil
}

func Parse(r io.Reader, logger *slog.Logger) ([]Trajectory, error) {
	return ParseWith(r, Options{Logger: logger})
}

// ParseWith decodes a plain or LZ4 framed trajectory table. Malformed rows are
// skipped as a whole and logged with their line number.
func ParseWith(r io.Reader, opts Options) ([]Trajectory, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(lz4Magic)); err == nil && bytes.Equal(magic, lz4Magic) {
		br = bufio.NewReader(lz4.NewReader(br))
	}

	trajs := []Trajectory{}
	var skipped []int
	scanner := bufio.NewScanner(br)
	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			continue
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		name, pos, err := parseRow(text)
		if err != nil {
			logger.Warn("skipping malformed trajectory row", "line", line, "error", err)
			skipped = append(skipped, line)
			continue
		}

		if n := len(trajs); n == 0 || trajs[n-1].Name != name {
			trajs = append(trajs, Trajectory{Name: name, Color: pos.Color})
		}
		last := &trajs[len(trajs)-1]
		last.Positions = append(last.Positions, pos)
	}
	if err := scanner.Err(); err != nil {
		return trajs, fmt.Errorf("read trajectories: %w", err)
	}

	logger.Info("loaded trajectories", "count", len(trajs), "skipped", len(skipped))
	if opts.Strict && len(skipped) > 0 {
		return trajs, &SkippedRowsError{Lines: skipped}
	}
	return trajs, nil
}

func parseRow(text string) (string, Position, error) {
	fields := strings.Split(text, ",")
	if len(fields) != 7 {
		return "", Position{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}
	name := strings.TrimSpace(fields[0])
	if name == "" {
		return "", Position{}, errors.New("empty name")
	}

	var values [6]float32
	for i := range values {
		field := strings.TrimSpace(fields[i+1])
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return "", Position{}, fmt.Errorf("field %d: %w", i+2, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", Position{}, fmt.Errorf("field %d: %q is not finite", i+2, field)
		}
		values[i] = float32(v)
	}

	return name, Position{
		Pos:   mgl32.Vec3{values[0], values[1], values[2]},
		Color: mgl32.Vec3{values[3], values[4], values[5]},
	}, nil
}
