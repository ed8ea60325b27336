package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/twhiteaker/arc-panimate/internal/config"
	"github.com/twhiteaker/arc-panimate/internal/director"
	"github.com/twhiteaker/arc-panimate/internal/extent"
	"github.com/twhiteaker/arc-panimate/internal/geo"
	"github.com/twhiteaker/arc-panimate/internal/renderer"
	"github.com/twhiteaker/arc-panimate/internal/source"
	"github.com/twhiteaker/arc-panimate/internal/system"
	"github.com/twhiteaker/arc-panimate/internal/trajectory"
	"github.com/twhiteaker/arc-panimate/internal/video"
	"github.com/twhiteaker/arc-panimate/internal/viewport"
)

// Project runs one panimate job: trajectory, extent file, frames, video.
type Project struct {
	Config     *config.Config
	ConfigPath string
	Builder    *trajectory.Builder
	Encoder    video.VideoEncoder

	// ExtentsInput, when set, re-renders a saved extents file instead of
	// computing a new trajectory.
	ExtentsInput string

	// EncoderName overrides ffmpeg encoder detection.
	EncoderName string

	Logger *log.Logger
}

func NewProject(cfg *config.Config, ve video.VideoEncoder) *Project {
	return &Project{
		Config:  cfg,
		Builder: trajectory.NewBuilder(),
		Encoder: ve,
	}
}

type timings struct {
	trajectory, export, encode time.Duration
}

func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()
	var t timings
	cfg := p.Config

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("не удалось создать папку %s: %w", cfg.Output.Dir, err)
	}

	fmt.Println("--- [PROJECT: PANIMATE] ---")
	fmt.Printf("[*] Кадр: %dx%d @ %.0f DPI | Масштаб: 1:%.0f | %s\n",
		cfg.Viewport.WidthPx, cfg.Viewport.HeightPx, cfg.Viewport.DPI, cfg.Viewport.Scale, cfg.ViewportReference())
	fmt.Println("-----------------------------")

	trajStart := time.Now()
	extents, err := p.extents()
	if err != nil {
		return err
	}
	t.trajectory = time.Since(trajStart)

	exportStart := time.Now()
	frame, err := p.frame()
	if err != nil {
		return err
	}
	files, err := p.exportFrames(ctx, frame, extents)
	if err != nil {
		return fmt.Errorf("ошибка экспорта кадров: %w", err)
	}
	t.export = time.Since(exportStart)

	if cfg.Output.Video != "" {
		encodeStart := time.Now()
		if err := p.encode(ctx); err != nil {
			return fmt.Errorf("ошибка сборки видео: %w", err)
		}
		t.encode = time.Since(encodeStart)
	}

	if cfg.Output.Stats {
		p.report(len(files), time.Since(startTime), t)
	}
	return nil
}

// extents computes the trajectory and saves it, or loads a saved one.
func (p *Project) extents() ([]geo.Extent, error) {
	cfg := p.Config
	vpSR := cfg.ViewportReference()

	if p.ExtentsInput != "" {
		extents, err := extent.Load(p.ExtentsInput)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения экстентов: %w", err)
		}
		// saved files carry no usable reference; frames are drawn in the viewport's
		for i := range extents {
			extents[i].SpatialReference = vpSR
		}
		fmt.Printf("[*] Загружено кадров: %d из %s\n", len(extents), p.ExtentsInput)
		return extents, nil
	}

	vp, err := p.viewport()
	if err != nil {
		return nil, err
	}

	opts := trajectory.Options{
		AccelerateSteps: cfg.Motion.AccelerateSteps,
		CruiseSteps:     cfg.Motion.CruiseSteps,
		MaxScale:        trajectory.FromPtr(cfg.Motion.MaxScale),
		TargetScale:     trajectory.FromPtr(cfg.Motion.TargetScale),
	}
	builder := p.Builder
	if builder.Logger == nil && p.Logger != nil {
		builder.Logger = p.Logger
	}
	frames, err := builder.Build(vp, cfg.Polyline(), opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка расчёта траектории: %w", err)
	}
	fmt.Printf("[*] Траектория: %d кадров (разгон %d, движение %d)\n", len(frames), opts.AccelerateSteps, opts.CruiseSteps)

	extents := trajectory.Extents(frames)
	extentsPath := filepath.Join(cfg.Output.Dir, cfg.Output.ExtentsFile)
	if err := extent.Save(extents, extentsPath); err != nil {
		return nil, fmt.Errorf("ошибка записи экстентов: %w", err)
	}
	fmt.Printf("[*] Экстенты сохранены: %s\n", extentsPath)

	if cfg.Output.ScenarioFile != "" {
		scenarioPath := filepath.Join(cfg.Output.Dir, cfg.Output.ScenarioFile)
		if err := director.WriteScenario(director.FromFrames(frames, p.ConfigPath), scenarioPath); err != nil {
			return nil, fmt.Errorf("ошибка записи сценария: %w", err)
		}
		fmt.Printf("[*] Сценарий сохранен: %s\n", scenarioPath)
	}
	return extents, nil
}

func (p *Project) viewport() (*viewport.MapFrame, error) {
	cfg := p.Config
	vpSR := cfg.ViewportReference()

	center, fromPath := cfg.ViewportCenter()
	if fromPath {
		center = p.toViewport(geo.Polyline{Points: []geo.Point{center}, SpatialReference: geo.NewSpatialReference(cfg.Path.WKID)}).Points[0]
	}

	vp, err := viewport.New(cfg.Viewport.WidthPx, cfg.Viewport.HeightPx, cfg.Viewport.DPI, cfg.Viewport.Scale, center, vpSR)
	if err != nil {
		return nil, err
	}
	if l := cfg.Viewport.Limit; l != nil {
		limit := l.Extent(vpSR)
		vp.Limit = &limit
	}
	return vp, nil
}

// toViewport projects line into the viewport reference when both references
// are known. On failure the line is returned unchanged.
func (p *Project) toViewport(line geo.Polyline) geo.Polyline {
	target := p.Config.ViewportReference()
	if target.Unknown() || line.SpatialReference.Unknown() {
		return line
	}
	out, err := (geo.Projector{}).Project(line, target)
	if err != nil {
		p.logger().Printf("[!] Не удалось спроецировать путь (%s -> %s): %v", line.SpatialReference, target, err)
		return line
	}
	return out
}

func (p *Project) frame() (*renderer.Frame, error) {
	cfg := p.Config
	f := &renderer.Frame{
		Path:   p.toViewport(cfg.Polyline()),
		Width:  cfg.Viewport.WidthPx,
		Height: cfg.Viewport.HeightPx,
		Debug:  cfg.Output.Debug,
	}

	if b := cfg.Basemap; b != nil {
		bm, err := source.LoadBasemap(b.Path, b.Page, b.DPI, b.Extent.Extent(cfg.ViewportReference()))
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки подложки: %w", err)
		}
		f.Basemap = bm.Image
		f.BasemapExtent = bm.Extent
		fmt.Printf("[*] Подложка: %s (стр. %d, %dx%d px)\n", b.Path, b.Page, bm.Image.Bounds().Dx(), bm.Image.Bounds().Dy())
	}
	return f, nil
}

func (p *Project) encode(ctx context.Context) error {
	cfg := p.Config
	encoderName := p.EncoderName
	if encoderName == "" {
		encoderName, _ = system.GetBestH264Encoder()
	}

	videoPath := cfg.Output.Video
	if !filepath.IsAbs(videoPath) {
		videoPath = filepath.Join(cfg.Output.Dir, videoPath)
	}

	quality := cfg.Output.Quality
	if quality == 0 {
		quality = system.DefaultQuality(encoderName)
	}

	fmt.Printf("[*] Сборка видео (%s, %d FPS)...\n", encoderName, cfg.Output.FPS)
	pattern := filepath.Join(cfg.Output.Dir, cfg.Output.Name+"_%03d.png")
	if err := p.Encoder.EncodeSequence(ctx, pattern, videoPath, cfg.Output.FPS, encoderName, quality); err != nil {
		return err
	}
	fmt.Printf("[+++] Видео сохранено: %s\n", videoPath)
	return nil
}

func (p *Project) report(frames int, total time.Duration, t timings) {
	cfg := p.Config
	fps := float64(frames) / total.Seconds()

	memLine := "n/a"
	if mr, err := system.ReadMemory(); err == nil {
		memLine = mr.String()
	}

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Trajectory: %.2fs\n"+
			"Export (PNG): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"Memory: %s\n"+
			"----------------------------\n",
		cfg.BuildVersion, total.Seconds(), t.trajectory.Seconds(), t.export.Seconds(), t.encode.Seconds(), fps, memLine,
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Frames: %d | Size: %dx%d | Total: %.2fs | Export: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		cfg.BuildVersion,
		frames,
		cfg.Viewport.WidthPx, cfg.Viewport.HeightPx,
		total.Seconds(),
		t.export.Seconds(),
		t.encode.Seconds(),
		fps,
	)

	f, err := os.OpenFile(filepath.Join(cfg.Output.Dir, "benchmark.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}

func (p *Project) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}
