package ui

import (
	"log"
	"log/slog"

	"LocalPaint/internal/config"
	"LocalPaint/internal/paint"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// RunApp opens the desktop window and blocks until it is closed.
func RunApp(cfg config.Config, logger *slog.Logger, shareLink string) {
	myApp := app.NewWithID("io.localpaint")
	myWindow := myApp.NewWindow("LocalPaint")
	myWindow.Resize(fyne.NewSize(1024, 768))

	// Create the interactive board widget
	board, err := NewBoardWidget(myWindow, cfg.Width, cfg.Height,
		paint.WithHistoryLimit(cfg.HistoryLimit),
		paint.WithHistoryBytes(cfg.HistoryBytes()),
		paint.WithPageScale(cfg.PageScale),
		paint.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}

	// Create the toolbar and pass it a reference to the board
	toolbar := NewToolbar(board)

	undo := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redo := &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	myWindow.Canvas().AddShortcut(undo, func(fyne.Shortcut) { board.Undo() })
	myWindow.Canvas().AddShortcut(redo, func(fyne.Shortcut) { board.Redo() })

	bottom := container.NewHBox(board.StatusBar())
	if shareLink != "" {
		bottom.Add(widget.NewSeparator())
		bottom.Add(widget.NewLabel("Browser: " + shareLink))
	}

	// Set up the main layout
	content := container.NewBorder(toolbar, bottom, nil, nil, container.NewScroll(board))

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
