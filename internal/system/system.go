package system

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Каждый воркер экспорта держит кадр, его PNG-буфер и копию для кодека.
const buffersPerWorker = 4

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	if rLimit.Cur >= 2048 {
		return
	}
	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// DefaultWorkers возвращает число воркеров экспорта: по одному на логическое
// ядро, но не больше, чем помещается в половину свободной памяти.
func DefaultWorkers(frameBytes uint64) int {
	workers, err := cpu.Counts(true)
	if err != nil || workers < 1 {
		workers = runtime.NumCPU()
	}

	vm, err := mem.VirtualMemory()
	if err != nil || frameBytes == 0 {
		return workers
	}
	return capWorkers(workers, vm.Available/2, frameBytes)
}

func capWorkers(workers int, budget, frameBytes uint64) int {
	fit := budget / (frameBytes * buffersPerWorker)
	if fit < uint64(workers) {
		workers = int(fit)
	}
	return max(workers, 1)
}

// MemoryReport is a snapshot of host and process memory.
type MemoryReport struct {
	Total       uint64
	Available   uint64
	UsedPercent float64
	HeapAlloc   uint64
	NumGC       uint32
}

// ReadMemory собирает отчёт о памяти системы и текущего процесса.
func ReadMemory() (MemoryReport, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	report := MemoryReport{HeapAlloc: ms.HeapAlloc, NumGC: ms.NumGC}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return report, fmt.Errorf("virtual memory: %w", err)
	}
	report.Total = vm.Total
	report.Available = vm.Available
	report.UsedPercent = vm.UsedPercent
	return report, nil
}

func (r MemoryReport) String() string {
	return fmt.Sprintf("RAM %s / %s (%.1f%%), heap %s, GC %d",
		humanBytes(r.Total-r.Available), humanBytes(r.Total), r.UsedPercent, humanBytes(r.HeapAlloc), r.NumGC)
}

func humanBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

func GetBestH264Encoder() (string, string) {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Software (libx264)
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264", ""
	}
	return pickEncoder(string(out))
}

func pickEncoder(listing string) (string, string) {
	encoders := []struct {
		name string
		args string
	}{
		{"h264_videotoolbox", ""},
		{"h264_nvenc", ""},
	}

	for _, enc := range encoders {
		if strings.Contains(listing, enc.name) {
			return enc.name, enc.args
		}
	}

	return "libx264", ""
}

// DefaultQuality возвращает качество по умолчанию для энкодера.
func DefaultQuality(encoderName string) int {
	switch encoderName {
	case "h264_videotoolbox":
		return 75 // Хорошее качество для VideoToolbox
	case "h264_nvenc":
		return 28 // Эквивалент CRF для NVENC
	default:
		return 23 // Стандартный CRF для x264
	}
}
