package system

import (
	"image"
	"strings"
	"testing"
)

func TestCapWorkers(t *testing.T) {
	const frame = 1 << 20 // 1 MiB
	tests := []struct {
		name    string
		workers int
		budget  uint64
		want    int
	}{
		{"plenty of memory", 8, 1 << 30, 8},
		{"memory bound", 8, 12 * frame, 3},
		{"never below one", 8, frame, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := capWorkers(tt.workers, tt.budget, frame); got != tt.want {
				t.Errorf("capWorkers = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDefaultWorkers(t *testing.T) {
	n := DefaultWorkers(1280 * 720 * 4)
	if n < 1 {
		t.Errorf("DefaultWorkers = %d", n)
	}
	t.Logf("default workers: %d", n)
}

func TestReadMemory(t *testing.T) {
	r, err := ReadMemory()
	if err != nil {
		t.Skipf("virtual memory unavailable: %v", err)
	}
	if r.Total == 0 || r.HeapAlloc == 0 {
		t.Errorf("report = %+v", r)
	}
	if !strings.Contains(r.String(), "RAM") {
		t.Errorf("String() = %q", r.String())
	}
	t.Log(r)
}

func TestHumanBytes(t *testing.T) {
	tests := map[uint64]string{
		512:     "512 B",
		2048:    "2.0 KiB",
		5 << 20: "5.0 MiB",
		3 << 30: "3.0 GiB",
	}
	for in, want := range tests {
		if got := humanBytes(in); got != want {
			t.Errorf("humanBytes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestPickEncoder(t *testing.T) {
	tests := []struct {
		listing string
		want    string
	}{
		{" V....D h264_nvenc  NVIDIA NVENC H.264 encoder\n V....D libx264", "h264_nvenc"},
		{" V....D h264_videotoolbox VideoToolbox H.264 Encoder\n V....D h264_nvenc", "h264_videotoolbox"},
		{" V....D libx264 libx264 H.264", "libx264"},
	}
	for _, tt := range tests {
		if got, _ := pickEncoder(tt.listing); got != tt.want {
			t.Errorf("pickEncoder = %q, want %q", got, tt.want)
		}
	}
}

func TestFramePool(t *testing.T) {
	p := NewFramePool(8, 4)
	img := p.Get()
	if img.Rect != image.Rect(0, 0, 8, 4) {
		t.Fatalf("rect = %v", img.Rect)
	}
	p.Put(img)
	p.Put(image.NewRGBA(image.Rect(0, 0, 2, 2))) // dropped
	p.Put(nil)

	if got := p.Get(); got.Rect != image.Rect(0, 0, 8, 4) {
		t.Errorf("pooled rect = %v", got.Rect)
	}
}

func TestDefaultQuality(t *testing.T) {
	for enc, want := range map[string]int{"h264_videotoolbox": 75, "h264_nvenc": 28, "libx264": 23} {
		if got := DefaultQuality(enc); got != want {
			t.Errorf("DefaultQuality(%q) = %d, want %d", enc, got, want)
		}
	}
}
