package main

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	eb "github.com/hajimehoshi/ebiten/v2"

	"ribbons/misc"
)

const RibbonShaderPath = "assets/ribbon_shader.go"

//go:embed assets/ribbon_shader.go
var ribbonShaderCode []byte

var TheShaderManager struct {
	Shader *eb.Shader
	// last failed reload, the previous shader stays in use
	LoadError error

	Reloads int

	watcher  *fsnotify.Watcher
	reloadCh chan struct{}
}

func InitShaderManager() error {
	sm := &TheShaderManager

	shader, err := eb.NewShader(ribbonShaderCode)
	if err != nil {
		return err
	}
	sm.Shader = shader
	sm.reloadCh = make(chan struct{}, 1)

	return nil
}

// ReloadShader compiles the shader source on disk.
// On failure the current shader is kept and the error is remembered.
func ReloadShader() {
	sm := &TheShaderManager

	shader, err := loadShaderFromDisk()
	if err != nil {
		sm.LoadError = err
		misc.ErrLogger.Printf("failed to reload shader: %v", err)
		return
	}

	if sm.Shader != nil {
		sm.Shader.Deallocate()
	}
	sm.Shader = shader
	sm.LoadError = nil
	sm.Reloads++

	misc.InfoLogger.Printf("reloaded %s", RibbonShaderPath)
}

func loadShaderFromDisk() (*eb.Shader, error) {
	shaderCode, err := os.ReadFile(RibbonShaderPath)
	if err != nil {
		return nil, err
	}

	shader, err := eb.NewShader(shaderCode)
	if err != nil {
		return nil, err
	}

	return shader, nil
}

// WatchShader reloads the shader whenever the source file is written.
// Events are collected on a watcher goroutine and applied from Update.
func WatchShader() error {
	sm := &TheShaderManager

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// editors often replace the file, so watch the directory
	if err := watcher.Add(filepath.Dir(RibbonShaderPath)); err != nil {
		watcher.Close()
		return err
	}
	sm.watcher = watcher

	target := filepath.Clean(RibbonShaderPath)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				select {
				case sm.reloadCh <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				misc.WarnLogger.Printf("shader watcher: %v", err)
			}
		}
	}()

	misc.InfoLogger.Printf("watching %s", RibbonShaderPath)

	return nil
}

// UpdateShader applies reloads requested by the watcher.
func UpdateShader() {
	sm := &TheShaderManager

	select {
	case <-sm.reloadCh:
		ReloadShader()
	default:
	}
}

func CloseShaderWatcher() {
	sm := &TheShaderManager

	if sm.watcher != nil {
		sm.watcher.Close()
		sm.watcher = nil
	}
}
