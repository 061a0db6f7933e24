package main

import (
	"log"

	"github.com/foumildo44/vampire-survivor/pkg/app"
	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// 初始化嵌入数据（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	runtimeCfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatalf("Failed to load runtime config: %v", err)
	}
	gameCfg, err := runtimeCfg.ResolveGameConfig()
	if err != nil {
		log.Fatalf("Failed to load game config: %v", err)
	}

	application, err := app.NewApp(app.Config{Game: gameCfg, Runtime: runtimeCfg})
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Vampire Survivor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(runtimeCfg.TickRate)

	runErr := ebiten.RunGame(application)
	if err := application.Close(); err != nil {
		log.Printf("Failed to save ledger: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
