// arena-preview 在终端中查看不同群系与种子生成的竞技场
//
// 用法：
//
//	go run ./cmd/arena-preview -biome snow -seed 42
//	go run ./cmd/arena-preview -dump   # 直接输出文本，不进入交互界面
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/gdamore/tcell/v2"
)

var (
	biomeFlag   = flag.String("biome", "", "群系名称（默认使用配置中的默认群系）")
	seedFlag    = flag.Int64("seed", 0, "随机种子（0 使用 SURVIVOR_SEED 或 1）")
	dumpFlag    = flag.Bool("dump", false, "输出文本地图后退出")
	verboseFlag = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	runtimeCfg, err := config.LoadRuntimeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "runtime config: %v\n", err)
		os.Exit(1)
	}
	gameCfg, err := runtimeCfg.ResolveGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "game config: %v\n", err)
		os.Exit(1)
	}

	biome := firstNonEmpty(*biomeFlag, runtimeCfg.Biome, gameCfg.Biomes.Default)
	seed := *seedFlag
	if seed == 0 {
		seed = runtimeCfg.Seed
	}
	if seed == 0 {
		seed = 1
	}

	v, err := newView(gameCfg.Biomes, biome, seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *dumpFlag {
		fmt.Println(v.status())
		fmt.Println(strings.Join(v.arena.Rows(), "\n"))
		return
	}

	if err := runInteractive(v); err != nil {
		fmt.Fprintf(os.Stderr, "preview: %v\n", err)
		os.Exit(1)
	}
}

func runInteractive(v *view) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	for {
		v.draw(screen)
		width, height := screen.Size()
		height--

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			v.scroll(0, 0, width, height)
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyLeft:
				v.scroll(-4, 0, width, height)
			case tcell.KeyRight:
				v.scroll(4, 0, width, height)
			case tcell.KeyUp:
				v.scroll(0, -2, width, height)
			case tcell.KeyDown:
				v.scroll(0, 2, width, height)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q':
					return nil
				case 'n':
					v.nextSeed()
				case 'b':
					v.nextBiome()
				}
				v.scroll(0, 0, width, height)
			}
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
