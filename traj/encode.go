package traj

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

func Encode(w io.Writer, trajs []Trajectory) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return err
	}
	for _, t := range trajs {
		for _, p := range t.Positions {
			_, err := fmt.Fprintf(bw, "%s,%.6f,%.6f,%.6f,%.3f,%.3f,%.3f\n",
				t.Name, p.Pos[0], p.Pos[1], p.Pos[2], p.Color[0], p.Color[1], p.Color[2])
			if err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// EncodeLz4 writes the table as a single LZ4 frame.
func EncodeLz4(w io.Writer, trajs []Trajectory) error {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4.Level5)); err != nil {
		return err
	}
	if err := Encode(zw, trajs); err != nil {
		return err
	}
	return zw.Close()
}
