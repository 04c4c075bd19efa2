package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

var ErrDownload = errors.New("raster: tile download failed")

// Cache keeps Terrarium tiles on disk, fetching missing ones from
// URLTemplate with at most MaxDownloads requests in flight.
type Cache struct {
	URLTemplate  string
	Directory    string
	MaxDownloads int
	Client       *http.Client

	sem  chan int
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

func NewCache(urlTemplate, directory string, maxDownloads int) *Cache {
	if maxDownloads < 1 {
		maxDownloads = 1
	}
	return &Cache{
		URLTemplate:  urlTemplate,
		Directory:    directory,
		MaxDownloads: maxDownloads,
		Client:       http.DefaultClient,
		sem:          make(chan int, maxDownloads),
	}
}

// EnsureTile starts downloading the tile unless it is already cached.
func (cache *Cache) EnsureTile(z, x, y int) {
	path := cache.tilePath(z, x, y)
	if _, err := os.Stat(path); err == nil {
		return
	}
	cache.wg.Add(1)
	go cache.tileWorker(z, x, y)
}

// EnsureTiles starts downloading every tile in the inclusive range.
func (cache *Cache) EnsureTiles(z int, min, max IntPoint) {
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			cache.EnsureTile(z, x, y)
		}
	}
}

// Wait blocks until pending downloads finish and reports their failures.
func (cache *Cache) Wait() error {
	cache.wg.Wait()
	cache.mu.Lock()
	defer cache.mu.Unlock()
	err := errors.Join(cache.errs...)
	cache.errs = nil
	return err
}

func (cache *Cache) GetTileImage(z, x, y int) (image.Image, error) {
	path := cache.tilePath(z, x, y)
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	im, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return im, nil
}

func (cache *Cache) GetTile(z, x, y int) (*Tile, error) {
	im, err := cache.GetTileImage(z, x, y)
	if err != nil {
		return nil, err
	}
	return newTile(z, x, y, im), nil
}

// GetStitchedTile returns the tile extended by the first column of its
// east neighbour and the first row of its south neighbour.
func (cache *Cache) GetStitchedTile(z, x, y int) (*Tile, error) {
	n := 1 << uint(z)
	im := image.NewRGBA(image.Rect(0, 0, TileSize+1, TileSize+1))
	for _, part := range []struct {
		dx, dy int
		dst    image.Rectangle
	}{
		{0, 0, image.Rect(0, 0, TileSize, TileSize)},
		{0, 1, image.Rect(0, TileSize, TileSize, TileSize+1)},
		{1, 0, image.Rect(TileSize, 0, TileSize+1, TileSize)},
		{1, 1, image.Rect(TileSize, TileSize, TileSize+1, TileSize+1)},
	} {
		src, err := cache.GetTileImage(z, (x+part.dx)%n, (y+part.dy)%n)
		if err != nil {
			return nil, err
		}
		draw.Draw(im, part.dst, src, src.Bounds().Min, draw.Src)
	}
	return newTile(z, x, y, im), nil
}

func (cache *Cache) tileURL(z, x, y int) string {
	url := cache.URLTemplate
	url = strings.ReplaceAll(url, "{z}", strconv.Itoa(z))
	url = strings.ReplaceAll(url, "{x}", strconv.Itoa(x))
	url = strings.ReplaceAll(url, "{y}", strconv.Itoa(y))
	return url
}

func (cache *Cache) tilePath(z, x, y int) string {
	path := fmt.Sprintf("%d/%d/%d.png", z, x, y)
	return filepath.Join(cache.Directory, path)
}

func (cache *Cache) tileWorker(z, x, y int) {
	defer cache.wg.Done()
	cache.sem <- 1
	err := cache.downloadTile(z, x, y)
	<-cache.sem
	if err != nil {
		cache.mu.Lock()
		cache.errs = append(cache.errs, fmt.Errorf("tile %d/%d/%d: %w", z, x, y, err))
		cache.mu.Unlock()
	}
}

func (cache *Cache) downloadTile(z, x, y int) error {
	path := cache.tilePath(z, x, y)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	response, err := cache.Client.Get(cache.tileURL(z, x, y))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrDownload, response.Status)
	}
	tmp := path + ".part"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, response.Body); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
