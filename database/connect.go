// file: database/connect.go
package database

import (
	"SecXplore/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"log"
	"os"
	"time"
)

var DB *gorm.DB

func Connect() {
	dsn := os.Getenv("SECXPLORE_DSN")
	if dsn == "" {
		dsn = "root:123456@tcp(localhost:3306)/secxplore?charset=utf8mb4&parseTime=True&loc=Local"
	}

	var err error
	// TranslateError: 唯一键冲突统一转为 gorm.ErrDuplicatedKey，
	// 计分/提示服务依赖它把并发冲突还原为幂等响应
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// 连接池配置：空闲连接、最大连接、连接最大存活时间
	// （1小时存活避免 MySQL wait_timeout 断连问题）
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
}

// MigrateTables 自动迁移（生产环境建议使用 SQL 脚本管理表结构，此函数按需调用）
func MigrateTables() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Challenge{},
		&models.Hint{},
		&models.HintDisclosure{},
		&models.Submission{},
		&models.Solve{},
		&models.SolveFeed{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
