package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Chandima-Prabhath/Aura/commons"
	"github.com/Chandima-Prabhath/Aura/engine"
	"github.com/Chandima-Prabhath/Aura/models"
)

const (
	AppID   = "com.chandima-prabhath.aura"
	AppName = "Aura"

	WindowWidth  = 700
	WindowHeight = 520
)

func main() {
	myApp := app.NewWithID(AppID)
	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	cfg, err := commons.LoadConfig()
	if err != nil {
		fmt.Printf("could not load config: %v\n", err)
		return
	}
	log := commons.NewLogger(cfg.LogLevel)

	eng := engine.New(engine.Config{
		Headless:          cfg.Headless,
		UserAgent:         cfg.UserAgent,
		NavigationTimeout: cfg.NavigationTimeoutDuration(),
		DebugDir:          cfg.DebugDir,
	}, log)

	ui := NewRootUI(myWindow, eng)
	myWindow.SetOnClosed(ui.shutdown)

	myWindow.ShowAndRun()
}

// RootUI holds the main window widgets and the browser session they drive.
type RootUI struct {
	window fyne.Window
	eng    *engine.Engine

	searchEntry    *widget.Entry
	searchBtn      *widget.Button
	resultList     *widget.List
	selectionEntry *widget.Entry
	resolveBtn     *widget.Button
	statusLabel    *widget.Label
	output         *widget.Entry

	mu       sync.Mutex
	results  []models.SearchResult
	selected int
	started  bool
	busy     bool
}

// NewRootUI creates and arranges the main window.
func NewRootUI(window fyne.Window, eng *engine.Engine) *RootUI {
	ui := &RootUI{
		window:   window,
		eng:      eng,
		selected: -1,
	}
	ui.setupUI()
	return ui
}

func (ui *RootUI) setupUI() {
	ui.searchEntry = widget.NewEntry()
	ui.searchEntry.SetPlaceHolder("Search for an anime...")
	ui.searchEntry.OnSubmitted = func(string) { ui.onSearchClick() }

	ui.searchBtn = widget.NewButton("Search", ui.onSearchClick)

	ui.resultList = widget.NewList(
		func() int {
			ui.mu.Lock()
			defer ui.mu.Unlock()
			return len(ui.results)
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.mu.Lock()
			defer ui.mu.Unlock()
			if id < len(ui.results) {
				obj.(*widget.Label).SetText(ui.results[id].Title)
			}
		},
	)
	ui.resultList.OnSelected = func(id widget.ListItemID) {
		ui.mu.Lock()
		ui.selected = id
		ui.mu.Unlock()
	}

	ui.selectionEntry = widget.NewEntry()
	ui.selectionEntry.SetPlaceHolder(`Episodes, e.g. "1-3,10" or "all"`)
	ui.selectionEntry.OnSubmitted = func(string) { ui.onResolveClick() }

	ui.resolveBtn = widget.NewButton("Get Links", ui.onResolveClick)

	ui.statusLabel = widget.NewLabel("Ready")

	ui.output = widget.NewMultiLineEntry()
	ui.output.Wrapping = fyne.TextWrapOff

	topPanel := container.NewBorder(nil, nil, nil, ui.searchBtn, ui.searchEntry)
	resolvePanel := container.NewBorder(nil, nil, nil, ui.resolveBtn, ui.selectionEntry)

	content := container.NewBorder(
		topPanel,
		container.NewVBox(resolvePanel, ui.statusLabel),
		nil, nil,
		container.NewHSplit(ui.resultList, ui.output),
	)
	ui.window.SetContent(content)
}

// beginWork marks the UI busy for one background action at a time.
func (ui *RootUI) beginWork() bool {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	if ui.busy {
		return false
	}
	ui.busy = true
	return true
}

func (ui *RootUI) endWork() {
	ui.mu.Lock()
	ui.busy = false
	ui.mu.Unlock()
}

// ensureStarted launches the browser on first use. Called off the UI thread.
func (ui *RootUI) ensureStarted(ctx context.Context) error {
	ui.mu.Lock()
	started := ui.started
	ui.mu.Unlock()
	if started {
		return nil
	}
	ui.setStatus("Starting browser...")
	if err := ui.eng.Start(ctx); err != nil {
		return err
	}
	ui.mu.Lock()
	ui.started = true
	ui.mu.Unlock()
	return nil
}

func (ui *RootUI) onSearchClick() {
	query := strings.TrimSpace(ui.searchEntry.Text)
	if query == "" {
		ui.setStatus("Enter a search term first")
		return
	}
	if !ui.beginWork() {
		return
	}

	go func() {
		defer ui.endWork()
		ctx := context.Background()
		if err := ui.ensureStarted(ctx); err != nil {
			ui.setStatus(fmt.Sprintf("Browser failed to start: %v", err))
			return
		}

		ui.setStatus(fmt.Sprintf("Searching for %q...", query))
		results, err := ui.eng.SearchAnime(ctx, query)
		if err != nil {
			ui.setStatus(fmt.Sprintf("Search failed: %v", err))
			return
		}

		ui.mu.Lock()
		ui.results = results
		ui.selected = -1
		ui.mu.Unlock()

		fyne.Do(func() {
			ui.resultList.UnselectAll()
			ui.resultList.Refresh()
		})
		ui.setStatus(fmt.Sprintf("Found %d result(s)", len(results)))
	}()
}

func (ui *RootUI) onResolveClick() {
	ui.mu.Lock()
	var showURL, title string
	if ui.selected >= 0 && ui.selected < len(ui.results) {
		showURL = ui.results[ui.selected].URL
		title = ui.results[ui.selected].Title
	}
	ui.mu.Unlock()

	if showURL == "" {
		ui.setStatus("Select a show from the results first")
		return
	}
	selection := strings.TrimSpace(ui.selectionEntry.Text)
	if !ui.beginWork() {
		return
	}

	go func() {
		defer ui.endWork()
		ctx := context.Background()

		ui.setStatus(fmt.Sprintf("Resolving episodes for %s...", title))
		items, err := ui.eng.ResolveEpisodeSelection(ctx, showURL, selection)

		var resolveErr *engine.ResolveError
		switch {
		case err == nil:
		case errors.As(err, &resolveErr):
		default:
			ui.setStatus(fmt.Sprintf("Could not resolve episodes: %v", err))
			return
		}

		var b strings.Builder
		for _, item := range items {
			fmt.Fprintf(&b, "Episode %d: %s\n", item.EpisodeNumber, item.DownloadURL)
		}
		if resolveErr != nil {
			for _, f := range resolveErr.Failures {
				fmt.Fprintf(&b, "Episode %d failed: %v\n", f.EpisodeNumber, f.Err)
			}
		}

		fyne.Do(func() { ui.output.SetText(b.String()) })
		ui.setStatus(fmt.Sprintf("Resolved %d episode(s)", len(items)))
	}()
}

func (ui *RootUI) setStatus(message string) {
	fyne.Do(func() { ui.statusLabel.SetText(message) })
}

func (ui *RootUI) shutdown() {
	ui.mu.Lock()
	started := ui.started
	ui.mu.Unlock()
	if started {
		ui.eng.Close()
	}
}
