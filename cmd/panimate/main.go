package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/twhiteaker/arc-panimate/internal/config"
	"github.com/twhiteaker/arc-panimate/internal/engine"
	"github.com/twhiteaker/arc-panimate/internal/system"
	"github.com/twhiteaker/arc-panimate/internal/video"
)

// set with -ldflags "-X main.buildVersion=..."
var buildVersion = "dev"

// overrides are CLI values that replace the job file. Negative step counts,
// zero scales and workers, and empty strings mean "keep the job file value".
type overrides struct {
	AccelerateSteps int
	CruiseSteps     int
	MaxScale        float64
	TargetScale     float64
	Video           string
	Workers         int
	Debug           bool
	Stats           bool
}

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	cfgPath := flag.String("config", "panimate.yaml", "Путь к YAML-файлу задания")
	accelPtr := flag.Int("accelerate", -1, "Шагов разгона (и торможения); -1 - из задания")
	cruisePtr := flag.Int("cruise", -1, "Шагов равномерного движения; -1 - из задания")
	maxScalePtr := flag.Float64("max-scale", 0, "Максимальный масштаб в середине пути (0 - из задания)")
	targetScalePtr := flag.Float64("target-scale", 0, "Конечный масштаб (0 - из задания)")
	loadExtentsPtr := flag.String("load-extents", "", "Перерисовать кадры из сохраненного JSON с экстентами")
	videoPtr := flag.String("video", "", "Путь к видео (пусто - из задания)")
	workersPtr := flag.Int("workers", 0, "Потоки экспорта (0 - по числу ядер)")
	debugPtr := flag.Bool("debug", false, "QR-метка с номером и экстентом на каждом кадре")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[-] Ошибка чтения задания: %v", err)
	}
	cfg.BuildVersion = buildVersion

	ov := overrides{
		AccelerateSteps: *accelPtr,
		CruiseSteps:     *cruisePtr,
		MaxScale:        *maxScalePtr,
		TargetScale:     *targetScalePtr,
		Video:           *videoPtr,
		Workers:         *workersPtr,
		Debug:           *debugPtr,
		Stats:           *statsPtr,
	}
	if err := validateOverrides(ov); err != nil {
		log.Fatalf("[-] Неверный параметр: %v", err)
	}
	applyOverrides(cfg, ov)

	encoderName, _ := system.GetBestH264Encoder()
	if cfg.Output.Video != "" && encoderName != "libx264" {
		fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
	}

	project := engine.NewProject(cfg, &video.FFmpegEncoder{})
	project.ConfigPath = filepath.Base(*cfgPath)
	project.ExtentsInput = *loadExtentsPtr
	project.EncoderName = encoderName

	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Кадры: %s\n", cfg.Output.Dir)
}

func validateOverrides(ov overrides) error {
	if ov.AccelerateSteps < -1 || ov.CruiseSteps < -1 {
		return fmt.Errorf("accelerate and cruise must be >= 0, got %d and %d", ov.AccelerateSteps, ov.CruiseSteps)
	}
	for name, v := range map[string]float64{"max-scale": ov.MaxScale, "target-scale": ov.TargetScale} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%s must be > 0, got %g", name, v)
		}
	}
	if ov.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", ov.Workers)
	}
	return nil
}

// applyOverrides mutates cfg with overrides. Only set override values are applied.
func applyOverrides(cfg *config.Config, ov overrides) {
	if ov.AccelerateSteps >= 0 {
		cfg.Motion.AccelerateSteps = ov.AccelerateSteps
	}
	if ov.CruiseSteps >= 0 {
		cfg.Motion.CruiseSteps = ov.CruiseSteps
	}
	if ov.MaxScale > 0 {
		v := ov.MaxScale
		cfg.Motion.MaxScale = &v
	}
	if ov.TargetScale > 0 {
		v := ov.TargetScale
		cfg.Motion.TargetScale = &v
	}
	if ov.Video != "" {
		cfg.Output.Video = ov.Video
	}
	if ov.Workers > 0 {
		cfg.Output.Workers = ov.Workers
	}
	cfg.Output.Debug = cfg.Output.Debug || ov.Debug
	cfg.Output.Stats = cfg.Output.Stats || ov.Stats
}
