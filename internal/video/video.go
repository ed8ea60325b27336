package video

import (
	"context"
	"fmt"
	"os/exec"
)

type VideoEncoder interface {
	EncodeSequence(ctx context.Context, pattern, videoPath string, fps int, encoderName string, quality int) error
}

// FFmpegEncoder turns a numbered PNG sequence into an H.264 video.
type FFmpegEncoder struct {
	Binary string // defaults to "ffmpeg"
}

func (e *FFmpegEncoder) EncodeSequence(
	ctx context.Context,
	pattern string,
	videoPath string,
	fps int,
	encoderName string,
	quality int,
) error {
	binary := e.Binary
	if binary == "" {
		binary = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, binary, buildSequenceArgs(pattern, videoPath, fps, encoderName, quality)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg sequence error: %v, output: %s", err, string(out))
	}
	return nil
}

func buildSequenceArgs(pattern, videoPath string, fps int, encoderName string, quality int) []string {
	args := []string{
		"-y",
		"-framerate", fmt.Sprintf("%d", fps),
		"-start_number", "0",
		"-i", pattern,
		// yuv420p needs even dimensions
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2:color=white",
		"-r", fmt.Sprintf("%d", fps),
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}
	args = append(args, qualityArgs(encoderName, quality)...)
	return append(args, videoPath)
}

// qualityArgs maps one quality knob onto each encoder; 0 keeps encoder defaults.
func qualityArgs(encoderName string, quality int) []string {
	if quality <= 0 {
		return nil
	}
	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox не везде поддерживает -q:v, используем битрейт. 75 -> 7.5 Мбит/с
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}
