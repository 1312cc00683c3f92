// file: main.go
package main

import (
	"SecXplore/database"
	"SecXplore/routes"
	"github.com/joho/godotenv"
	"log"
	"os"
)

func main() {
	// .env 不存在时直接用进程环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	database.Connect()
	database.InitRedis()

	// 首次部署时设置 SECXPLORE_MIGRATE=1 建表，之后建议用 SQL 脚本管理
	if os.Getenv("SECXPLORE_MIGRATE") == "1" {
		database.MigrateTables()
	}

	r := routes.SetupRouter()

	addr := os.Getenv("SECXPLORE_LISTEN")
	if addr == "" {
		addr = ":8080"
	}

	log.Println("Starting server on " + addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
