package video

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestBuildSequenceArgs(t *testing.T) {
	args := buildSequenceArgs("out/frame_%03d.png", "out/pan.mp4", 25, "libx264", 20)
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-framerate 25",
		"-i out/frame_%03d.png",
		"-c:v libx264",
		"-crf 20",
		"-pix_fmt yuv420p",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args lack %q: %s", want, joined)
		}
	}
	if args[len(args)-1] != "out/pan.mp4" {
		t.Errorf("output must be last, got %q", args[len(args)-1])
	}
	t.Logf("ffmpeg %s", joined)
}

func TestQualityArgs(t *testing.T) {
	tests := []struct {
		encoder string
		quality int
		want    []string
	}{
		{"h264_videotoolbox", 75, []string{"-b:v", "7500k"}},
		{"h264_nvenc", 23, []string{"-cq", "23"}},
		{"libx264", 18, []string{"-crf", "18", "-preset", "medium"}},
		{"libx264", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.encoder, func(t *testing.T) {
			if got := qualityArgs(tt.encoder, tt.quality); !slices.Equal(got, tt.want) {
				t.Errorf("qualityArgs(%q, %d) = %v, want %v", tt.encoder, tt.quality, got, tt.want)
			}
		})
	}
}

func TestEncodeSequence_MissingBinary(t *testing.T) {
	e := &FFmpegEncoder{Binary: filepath.Join(t.TempDir(), "no-ffmpeg")}
	err := e.EncodeSequence(context.Background(), "f_%03d.png", "out.mp4", 30, "libx264", 0)
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestEncodeSequence_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &FFmpegEncoder{Binary: filepath.Join(t.TempDir(), "no-ffmpeg")}
	err := e.EncodeSequence(ctx, "f_%03d.png", "out.mp4", 30, "libx264", 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
