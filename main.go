// @title AP Quiz 后端 API
// @version 1.0
// @description 等差数列答题服务的 JSON 接口。

// @host localhost:8001
// @BasePath /api

package main

import (
	"ap_quiz_backend/internal/app"
	"ap_quiz_backend/internal/config"
	"ap_quiz_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件所在目录")
	watch := flag.Bool("watch", false, "监听配置文件变化并热更新日志级别")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *watch {
		application.WatchConfig()
	}

	application.Run()
}
