package traj_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"earthviewer/traj"

	"github.com/go-gl/mathgl/mgl32"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

const sample = `name,x,y,z,r,g,b
A,1,0,0,1,0,0
A,0,1,0,1,0,0
B,0,0,1,0,1,0
A,2,0,0,1,0,0
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trajectories.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseGroupsContiguousRows(t *testing.T) {
	trajs, err := traj.Parse(strings.NewReader(sample), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(trajs) != 3 {
		t.Fatalf("trajectory count should be 3 but is %d", len(trajs))
	}
	names := []string{trajs[0].Name, trajs[1].Name, trajs[2].Name}
	if !reflect.DeepEqual(names, []string{"A", "B", "A"}) {
		t.Errorf("names should be [A B A] but are %v", names)
	}
	if trajs[0].Len() != 2 || trajs[1].Len() != 1 || trajs[2].Len() != 1 {
		t.Errorf("lengths should be 2,1,1 but are %d,%d,%d", trajs[0].Len(), trajs[1].Len(), trajs[2].Len())
	}
	if trajs[1].Color != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("color of B should be green but is %v", trajs[1].Color)
	}
	if got := trajs[2].At(0).Pos; got != (mgl32.Vec3{2, 0, 0}) {
		t.Errorf("second A should start at (2,0,0) but is %v", got)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	path := writeFile(t, sample)
	first, err := traj.Load(path, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	second, err := traj.Load(path, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("loading twice should give equal results but got %v and %v", first, second)
	}
}

func TestLoadMissingFile(t *testing.T) {
	trajs, err := traj.Load(filepath.Join(t.TempDir(), "missing.csv"), testLogger())
	if !errors.Is(err, traj.ErrNoData) {
		t.Errorf("error should be ErrNoData but is %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should match os.ErrNotExist but is %v", err)
	}
	if trajs == nil || len(trajs) != 0 {
		t.Errorf("trajectories should be empty but are %v", trajs)
	}
}

func TestParseSkipsMalformedRows(t *testing.T) {
	input := `name,x,y,z,r,g,b
A,1,0,0,1,0,0
A,oops,0,0,1,0,0
A,1,0
,1,0,0,1,0,0
A,NaN,0,0,1,0,0

  A , 0 , 1 , 0 , 1 , 0 , 0  
`
	trajs, err := traj.Parse(strings.NewReader(input), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(trajs) != 1 || trajs[0].Len() != 2 {
		t.Fatalf("should have one trajectory with 2 samples but got %v", trajs)
	}
	if got := trajs[0].At(1).Pos; got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("trimmed row should parse to (0,1,0) but is %v", got)
	}

	_, err = traj.ParseWith(strings.NewReader(input), traj.Options{Logger: testLogger(), Strict: true})
	var skipped *traj.SkippedRowsError
	if !errors.As(err, &skipped) {
		t.Fatalf("strict parse should fail with SkippedRowsError but got %v", err)
	}
	if !reflect.DeepEqual(skipped.Lines, []int{3, 4, 5, 6}) {
		t.Errorf("skipped lines should be [3 4 5 6] but are %v", skipped.Lines)
	}
}

func TestParseHeaderOnly(t *testing.T) {
	trajs, err := traj.Parse(strings.NewReader(traj.Header+"\n"), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(trajs) != 0 {
		t.Errorf("should have no trajectories but has %d", len(trajs))
	}
}

func TestLz4RoundTrip(t *testing.T) {
	trajs, err := traj.Parse(strings.NewReader(sample), testLogger())
	if err != nil {
		t.Fatal(err)
	}

	var plain, packed bytes.Buffer
	if err := traj.Encode(&plain, trajs); err != nil {
		t.Fatal(err)
	}
	if err := traj.EncodeLz4(&packed, trajs); err != nil {
		t.Fatal(err)
	}

	decoded, err := traj.Parse(&packed, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(trajs, decoded) {
		t.Errorf("lz4 round trip should preserve trajectories, got %v", decoded)
	}
	if !strings.HasPrefix(plain.String(), traj.Header+"\nA,1.000000,0.000000,0.000000,1.000,0.000,0.000\n") {
		t.Errorf("unexpected encoding:\n%v", plain.String())
	}
}

func TestIndexWraps(t *testing.T) {
	tr := traj.Trajectory{Name: "A", Positions: make([]traj.Position, 5)}
	cases := map[int]int{0: 0, 4: 4, 5: 0, 12: 2, -1: 4}
	for frame, want := range cases {
		if got := tr.Index(frame); got != want {
			t.Errorf("Index(%d) should be %d but is %d", frame, want, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	trajs, _ := traj.Parse(strings.NewReader(sample), testLogger())
	s := traj.Summarize(trajs)
	if s.Trajectories != 3 || s.Samples != 4 || s.MinLength != 1 || s.MaxLength != 2 {
		t.Errorf("unexpected summary %+v", s)
	}
	if traj.Period(trajs) != 2 {
		t.Errorf("period should be 2 but is %d", traj.Period(trajs))
	}
}
