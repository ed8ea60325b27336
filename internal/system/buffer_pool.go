package system

import (
	"image"
	"sync"
)

// FramePool переиспользует кадры *image.RGBA одного размера,
// чтобы экспорт сотен кадров не нагружал GC.
type FramePool struct {
	rect image.Rectangle
	pool sync.Pool
}

func NewFramePool(width, height int) *FramePool {
	rect := image.Rect(0, 0, width, height)
	p := &FramePool{rect: rect}
	p.pool.New = func() any {
		return image.NewRGBA(rect)
	}
	return p
}

// Get возвращает кадр из пула или создаёт новый. Содержимое не очищается.
func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put возвращает кадр в пул; кадры другого размера отбрасываются.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}
