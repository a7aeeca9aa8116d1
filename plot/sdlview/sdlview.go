// This file is part of cgbcolour.
//
// cgbcolour is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// cgbcolour is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with cgbcolour.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlview shows a plot.Chart in an SDL window. The chart is drawn by
// the raster package and redrawn whenever the window is resized.
//
// SDL requires that window creation and event handling happen on the main
// thread. NewWindow() and Service() must therefore only be called from the
// main thread. Other goroutines can wait for the window to be closed with the
// channel returned by Closed().
package sdlview

import (
	"fmt"
	"io"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/cgbcolour/logger"
	"github.com/jetsetilly/cgbcolour/plot"
	"github.com/jetsetilly/cgbcolour/plot/raster"
)

// number of bytes per pixel in the texture
const pixelDepth = 4

// maximum time Service() will wait for an event, in milliseconds
const serviceWait = 20

// Window is an SDL window showing a single chart.
type Window struct {
	chart plot.Chart

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int32
	height int32

	closed    chan struct{}
	closeOnce sync.Once
}

// NewWindow creates and shows a window of the given size containing the
// chart. Must be called from the main thread.
func NewWindow(ch plot.Chart, width int32, height int32) (*Window, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}

	win := &Window{
		chart:  ch,
		closed: make(chan struct{}),
	}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, fmt.Errorf("sdlview: %w", err)
	}

	win.window, err = sdl.CreateWindow(ch.Title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		width, height,
		uint32(sdl.WINDOW_SHOWN)|uint32(sdl.WINDOW_RESIZABLE))
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdlview: %w", err)
	}

	win.renderer, err = sdl.CreateRenderer(win.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		_ = win.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdlview: %w", err)
	}

	if err := win.resize(width, height); err != nil {
		win.Destroy(io.Discard)
		return nil, err
	}

	logger.Logf(logger.Allow, "sdlview", "window opened (%dx%d)", width, height)

	return win, nil
}

// resize recreates the texture and redraws the chart at the new size
func (win *Window) resize(width int32, height int32) error {
	if win.texture != nil {
		_ = win.texture.Destroy()
		win.texture = nil
	}

	var err error
	win.texture, err = win.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), width, height)
	if err != nil {
		return fmt.Errorf("sdlview: %w", err)
	}

	win.width = width
	win.height = height

	img := raster.Render(win.chart, int(width), int(height))
	err = win.texture.Update(nil, img.Pix, int(width*pixelDepth))
	if err != nil {
		return fmt.Errorf("sdlview: %w", err)
	}

	return win.present()
}

func (win *Window) present() error {
	if err := win.renderer.Clear(); err != nil {
		return fmt.Errorf("sdlview: %w", err)
	}
	if err := win.renderer.Copy(win.texture, nil, nil); err != nil {
		return fmt.Errorf("sdlview: %w", err)
	}
	win.renderer.Present()
	return nil
}

// Closed returns a channel that is closed when the user closes the window.
func (win *Window) Closed() <-chan struct{} {
	return win.closed
}

func (win *Window) close() {
	win.closeOnce.Do(func() {
		close(win.closed)
	})
}

// IsQuitKey returns true if the scancode is one of the keys that closes the
// window.
func IsQuitKey(s sdl.Scancode) bool {
	switch s {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		return true
	}
	return false
}

// Service handles window events. It waits a short time for the first event
// and so is suitable for calling in a loop. Must be called from the main
// thread.
func (win *Window) Service() {
	ev := sdl.WaitEventTimeout(serviceWait)
	for ; ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			win.close()

		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && IsQuitKey(ev.Keysym.Scancode) {
				win.close()
			}

		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_CLOSE:
				win.close()
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				if ev.Data1 != win.width || ev.Data2 != win.height {
					if err := win.resize(ev.Data1, ev.Data2); err != nil {
						logger.Log(logger.Allow, "sdlview", err)
					}
				}
			case sdl.WINDOWEVENT_EXPOSED:
				if err := win.present(); err != nil {
					logger.Log(logger.Allow, "sdlview", err)
				}
			}
		}
	}
}

// Destroy the window and release SDL resources. Must be called from the main
// thread.
func (win *Window) Destroy(output io.Writer) {
	if win.texture != nil {
		if err := win.texture.Destroy(); err != nil {
			fmt.Fprintln(output, err)
		}
		win.texture = nil
	}
	if win.renderer != nil {
		if err := win.renderer.Destroy(); err != nil {
			fmt.Fprintln(output, err)
		}
		win.renderer = nil
	}
	if win.window != nil {
		if err := win.window.Destroy(); err != nil {
			fmt.Fprintln(output, err)
		}
		win.window = nil
	}
	win.close()
	sdl.Quit()
}
