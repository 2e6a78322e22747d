package render

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// frame 图片固定为 1.91:1
const (
	FrameWidth  = 1200
	FrameHeight = 630
)

const (
	titleScale  = 5
	lineScale   = 3
	footerScale = 2

	avatarSize = 120
	maxWidth   = FrameWidth - 80
)

var (
	bgColor     = color.NRGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF}
	accentColor = color.NRGBA{R: 0x8A, G: 0x63, B: 0xD2, A: 0xFF}
	titleColor  = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	lineColor   = color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	footerColor = color.NRGBA{R: 0x9A, G: 0x9A, B: 0x9A, A: 0xFF}
)

// Card 一张 frame 卡片的内容描述
type Card struct {
	Title  string
	Lines  []string
	Footer string
	Avatar image.Image // 可为 nil
}

// Render 把卡片绘制成 PNG 字节流
func Render(card *Card) ([]byte, error) {
	canvas := imaging.New(FrameWidth, FrameHeight, bgColor)

	// 顶部品牌色条
	bar := imaging.New(FrameWidth, 10, accentColor)
	canvas = imaging.Paste(canvas, bar, image.Pt(0, 0))

	blocks := buildBlocks(card)

	total := 0
	for _, blk := range blocks {
		total += blk.Bounds().Dy() + blockGap
	}
	total -= blockGap

	y := (FrameHeight - total) / 2
	if y < 30 {
		y = 30
	}
	for _, blk := range blocks {
		x := (FrameWidth - blk.Bounds().Dx()) / 2
		canvas = imaging.Paste(canvas, blk, image.Pt(x, y))
		y += blk.Bounds().Dy() + blockGap
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const blockGap = 22

func buildBlocks(card *Card) []image.Image {
	var blocks []image.Image

	if card.Avatar != nil {
		blocks = append(blocks, imaging.Fill(card.Avatar, avatarSize, avatarSize, imaging.Center, imaging.Lanczos))
	}
	if card.Title != "" {
		blocks = append(blocks, textBlock(card.Title, titleScale, titleColor))
	}
	for _, line := range card.Lines {
		if line == "" {
			continue
		}
		blocks = append(blocks, textBlock(line, lineScale, lineColor))
	}
	if card.Footer != "" {
		blocks = append(blocks, textBlock(card.Footer, footerScale, footerColor))
	}

	if len(blocks) == 0 {
		blocks = append(blocks, textBlock(" ", lineScale, lineColor))
	}
	return blocks
}

// textBlock 用点阵字体渲染一行文本，再按整数倍放大保持像素边缘
func textBlock(s string, scale int, fg color.NRGBA) image.Image {
	face := basicfont.Face7x13
	s = truncate(s, face, scale)

	w := font.MeasureString(face, s).Ceil()
	if w < 1 {
		w = 1
	}
	h := face.Ascent + face.Descent

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	return imaging.Resize(img, w*scale, h*scale, imaging.NearestNeighbor)
}

// truncate 超出画布宽度的文本截断并追加省略号
func truncate(s string, face *basicfont.Face, scale int) string {
	if font.MeasureString(face, s).Ceil()*scale <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 {
		candidate := string(runes) + "..."
		if font.MeasureString(face, candidate).Ceil()*scale <= maxWidth {
			return candidate
		}
		runes = runes[:len(runes)-1]
	}
	return "..."
}
