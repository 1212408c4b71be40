// @title CodeTutor 后端 API
// @version 1.0
// @description 编程导学应用的后端服务器：接收聊天请求，调用大模型并返回规范化的导学响应。

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

package main

import (
	"flag"
	"log"
	"path/filepath"

	"code_tutor_backend/internal/app"
	"code_tutor_backend/internal/config"
	"code_tutor_backend/pkg/configwatcher"
	"code_tutor_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	watch := flag.Bool("watch-config", false, "监听配置文件变更并热更新上游模型配置")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *watch {
		go configwatcher.WatchConfig(filepath.Join(*configDir, "config.yaml"), application.ReloadConfig)
	}

	application.Run()
}
