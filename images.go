package storefront

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processedImage is a resized JPEG ready to be written under uploads/.
type processedImage struct {
	Filename string
	Width    int
	Height   int
	Data     []byte
}

// processImage decodes src, scales it down to maxImageWidth when wider and
// re-encodes it as JPEG named after base.
func processImage(src io.Reader, base string) (processedImage, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return processedImage{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return processedImage{}, fmt.Errorf("encode jpeg: %w", err)
	}

	slug := Slugify(base)
	if slug == "" {
		slug = "service"
	}
	return processedImage{
		Filename: slug + ".jpg",
		Width:    w,
		Height:   h,
		Data:     buf.Bytes(),
	}, nil
}

// uniqueFilename appends a counter until name is free in dir.
func uniqueFilename(dir, name string) string {
	base := strings.TrimSuffix(name, ".jpg")
	candidate := name
	for counter := 2; ; counter++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
}

// handleServiceImageUpload stores a resized image under the static dir and
// points the service's ImageURL at it.
func (a *App) handleServiceImageUpload(c echo.Context) error {
	svc, ok := a.Content.Service(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, err := processImage(src, svc.Title)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	dir := filepath.Join(a.Config.StaticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	img.Filename = uniqueFilename(dir, img.Filename)
	if err := os.WriteFile(filepath.Join(dir, img.Filename), img.Data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	a.Log.Info("service image stored",
		zap.String("service", svc.ID),
		zap.String("file", img.Filename),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
	)

	svc.ImageURL = "/public/" + uploadsSubdir + "/" + img.Filename
	err = a.Content.UpdateService(c.Request().Context(), svc)
	return a.afterMutation(c, err, "Image uploaded", "/admin/services/"+svc.ID+"/")
}
