package main

import (
	"fmt"
	"image/color"
	"strings"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebu "github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebv "github.com/hajimehoshi/ebiten/v2/vector"
)

type DebugMsg struct {
	Key   string
	Value string
}

var TheDebugPrintManager struct {
	DebugMsgs           []DebugMsg
	PersistentDebugMsgs []DebugMsg

	builder strings.Builder
}

func DebugPrintf(key, fmtStr string, values ...any) {
	DebugPuts(key, fmt.Sprintf(fmtStr, values...))
}

func DebugPrint(key string, values ...any) {
	DebugPuts(key, fmt.Sprint(values...))
}

func DebugPuts(key, value string) {
	dm := &TheDebugPrintManager
	dm.DebugMsgs = putDebugMsg(dm.DebugMsgs, key, value)
}

func DebugPrintfPersist(key, fmtStr string, values ...any) {
	DebugPutsPersist(key, fmt.Sprintf(fmtStr, values...))
}

func DebugPutsPersist(key, value string) {
	dm := &TheDebugPrintManager
	dm.PersistentDebugMsgs = putDebugMsg(dm.PersistentDebugMsgs, key, value)
}

func putDebugMsg(msgs []DebugMsg, key, value string) []DebugMsg {
	for i, msg := range msgs {
		if msg.Key == key {
			msgs[i].Value = value
			return msgs
		}
	}

	return append(msgs, DebugMsg{
		Key:   key,
		Value: value,
	})
}

// glyph size of ebitenutil's debug font
const (
	debugCharWidth  = 6
	debugLineHeight = 16
)

func DrawDebugMsgs(dst *eb.Image) {
	dm := &TheDebugPrintManager

	dm.builder.Reset()

	lines := 0
	longest := 0

	writeMsgs := func(msgs []DebugMsg) {
		for _, msg := range msgs {
			if lines > 0 {
				dm.builder.WriteString("\n")
			}
			// builder doesn't actually errors out
			// no need to check error
			dm.builder.WriteString(msg.Key)
			dm.builder.WriteString(": ")
			dm.builder.WriteString(msg.Value)

			longest = max(longest, len(msg.Key)+2+len(msg.Value))
			lines++
		}
	}

	writeMsgs(dm.PersistentDebugMsgs)
	writeMsgs(dm.DebugMsgs)

	if lines == 0 {
		return
	}

	const hozMargin = 5
	const vertMargin = 5

	boxW := float32(longest*debugCharWidth + hozMargin*2)
	boxH := float32(lines*debugLineHeight + vertMargin*2)

	bounds := dst.Bounds()
	x := float32(bounds.Max.X) - boxW
	y := float32(bounds.Max.Y) - boxH

	// draw background
	ebv.DrawFilledRect(dst, x, y, boxW, boxH, color.NRGBA{255, 255, 255, 255}, false)
	ebv.DrawFilledRect(dst, x+2, y+2, boxW-4, boxH-4, color.NRGBA{0, 0, 0, 220}, false)

	// draw text
	ebu.DebugPrintAt(dst, dm.builder.String(), int(x)+hozMargin, int(y)+vertMargin)
}

func ClearDebugMsgs() {
	dm := &TheDebugPrintManager

	dm.DebugMsgs = dm.DebugMsgs[:0]
}
