// 导出全部答题记录为 CSV
//
// 从配置的结果存储读取所有记录，写到标准输出，表头与表格存储一致。
//
// 用法: go run scripts/export_results.go [-config configs] > results.csv

package main

import (
	"ap_quiz_backend/internal/config"
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/repository"
	"ap_quiz_backend/internal/util"
	"ap_quiz_backend/pkg/database"
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strconv"
	"time"
)

func openResults(ctx context.Context, cfg *config.Config) (repository.ResultRepository, func(), error) {
	switch cfg.Results.Backend {
	case util.BackendSheets:
		r, err := repository.NewSheetsResultRepository(ctx, &cfg.Sheets)
		return r, func() {}, err
	case util.BackendMySQL:
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repository.NewGormResultRepository(db), closeDB, nil
	case util.BackendMongo:
		client, err := database.InitMongo(&cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMongoResultRepository(client, cfg.Mongo.Database, cfg.Mongo.Collection),
			func() { database.DisconnectMongo(client) }, nil
	default:
		log.Fatalf("后端 %q 不支持导出（内存存储不跨进程保存）", cfg.Results.Backend)
		return nil, nil, nil
	}
}

func main() {
	configDir := flag.String("config", "configs", "配置文件所在目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	results, closeFn, err := openResults(ctx, cfg)
	if err != nil {
		log.Fatalf("连接结果存储失败: %v", err)
	}
	defer closeFn()

	records, err := results.ReadAll(ctx)
	if err != nil {
		log.Fatalf("读取记录失败: %v", err)
	}

	w := csv.NewWriter(os.Stdout)
	w.Write(model.ResultHeader)
	for _, rec := range records {
		w.Write([]string{
			rec.Name,
			rec.Question,
			rec.UserAnswer,
			strconv.Itoa(rec.CorrectAnswer),
			string(rec.Status),
			rec.Timestamp,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("写入 CSV 失败: %v", err)
	}

	log.Printf("已导出 %d 条记录", len(records))
}
