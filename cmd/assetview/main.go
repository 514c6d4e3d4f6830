// Command assetview previews the generated sprites and sound cues of the
// prefabs, and can export the sprites as PNG files.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/tower/assets"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
	"github.com/milk9111/tower/ecs/entity"
	"github.com/milk9111/tower/prefabs"
)

const (
	viewSize = 512
	viewPPU  = 96
)

type preview struct {
	name   string
	sprite *component.Sprite
}

type viewer struct {
	items   []preview
	current int
	cache   *assets.SpriteCache
	audio   *component.Audio
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		v.current = (v.current + 1) % len(v.items)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		v.current = (v.current + len(v.items) - 1) % len(v.items)
	}
	if v.audio == nil {
		return nil
	}
	for i := range v.audio.Clips {
		if i > 8 || !inpututil.IsKeyJustPressed(ebiten.Key1+ebiten.Key(i)) {
			continue
		}
		p := assets.NewPlayer(v.audio.Clips[i])
		p.SetVolume(v.audio.Volume[i])
		p.Play()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff})
	item := v.items[v.current]
	img := v.cache.Image(item.sprite, viewPPU)
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(viewSize-b.Dx())/2, float64(viewSize-b.Dy())/2)
	screen.DrawImage(img, op)

	help := fmt.Sprintf("%s (%d/%d)  left/right: cycle", item.name, v.current+1, len(v.items))
	if v.audio != nil {
		help += fmt.Sprintf("  1-%d: play %v", len(v.audio.Names), v.audio.Names)
	}
	ebitenutil.DebugPrint(screen, help)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

// collect builds each prefab into a scratch world and keeps its sprite.
func collect(names []string) ([]preview, *component.Audio, error) {
	w := ecs.NewWorld()
	var items []preview
	var sfx *component.Audio
	for _, name := range names {
		e, err := entity.BuildEntity(w, name)
		if err != nil {
			return nil, nil, fmt.Errorf("build %s: %w", name, err)
		}
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			items = append(items, preview{name: name, sprite: s})
		}
		if a, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok && sfx == nil {
			sfx = a
		}
	}
	return items, sfx, nil
}

func export(dir string, items []preview) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, item := range items {
		s := item.sprite
		img := assets.DrawShape(s.Shape, int(s.Width*viewPPU), int(s.Height*viewPPU), s.Color)
		path := filepath.Join(dir, item.name[:len(item.name)-len(filepath.Ext(item.name))]+".png")
		if err := gg.NewContextForImage(img).SavePNG(path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		log.Info().Str("file", path).Msg("exported")
	}
	return nil
}

func main() {
	pngDir := flag.String("png", "", "write sprites to this directory and exit")
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	prefabs.SetDir("")

	items, sfx, err := collect([]string{"player.yaml", "enemy.yaml", "projectile.yaml"})
	if err != nil {
		log.Fatal().Err(err).Msg("load prefabs")
	}
	if len(items) == 0 {
		log.Fatal().Msg("no sprites in prefabs")
	}

	if *pngDir != "" {
		if err := export(*pngDir, items); err != nil {
			log.Fatal().Err(err).Msg("export")
		}
		return
	}

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("tower asset view")
	if err := ebiten.RunGame(&viewer{items: items, cache: assets.NewSpriteCache(), audio: sfx}); err != nil && err != ebiten.Termination {
		log.Fatal().Err(err).Msg("asset view")
	}
}
