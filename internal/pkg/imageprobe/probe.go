// Package imageprobe 读取上传图片的尺寸
package imageprobe

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/kolesa-team/go-webp/decoder"
	"github.com/kolesa-team/go-webp/webp"
)

// ErrUnknownFormat 无法识别的图片格式
var ErrUnknownFormat = errors.New("unknown image format")

// Info 图片基本信息
type Info struct {
	Format string
	Width  int
	Height int
}

// Prober 图片探测
type Prober interface {
	Probe(data []byte) (*Info, error)
}

// ProberFunc 函数适配
type ProberFunc func(data []byte) (*Info, error)

func (f ProberFunc) Probe(data []byte) (*Info, error) {
	return f(data)
}

// Default 支持 jpeg/png/gif/webp
var Default Prober = ProberFunc(Probe)

// Probe 只解析头部取尺寸, webp 需要完整解码
func Probe(data []byte) (*Info, error) {
	if isWEBP(data) {
		img, err := webp.Decode(bytes.NewReader(data), &decoder.Options{})
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		return &Info{Format: "webp", Width: b.Dx(), Height: b.Dy()}, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnknownFormat
		}
		return nil, err
	}
	return &Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

func isWEBP(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}
