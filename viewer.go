package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

type namedImage struct {
	title string
	img   image.Image
}

// showImages opens one window per image and blocks until the main (first)
// window is closed.
func showImages(size int, images []namedImage) {
	if len(images) == 0 {
		return
	}

	// We supply an ID (hopefully unique) because we may need to use the preferences API
	myApp := app.NewWithID("com.gmail.ok.anderson.bob.interferometer")

	var primary fyne.Window
	for i, ni := range images {
		w := myApp.NewWindow(ni.title)
		w.SetPadded(false)

		img := canvas.NewImageFromImage(ni.img)
		img.FillMode = canvas.ImageFillContain
		img.ScaleMode = canvas.ImageScalePixels
		img.SetMinSize(fyne.NewSize(float32(size), float32(size)))

		w.SetContent(container.NewStack(img))
		w.Resize(fyne.Size{Height: float32(size), Width: float32(size)})
		if i == 0 {
			primary = w
			w.CenterOnScreen()
			w.SetMaster()
			continue
		}
		w.Show()
	}
	primary.ShowAndRun()
}
