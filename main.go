package main

import (
	"fmt"
	"time"
	"venturas/murmur-api/app"
	"venturas/murmur-api/config"
	"venturas/murmur-api/db"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func main() {
	err := config.Setup()
	if err != nil {
		panic(err)
	}

	makeLogger()

	if config.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if config.MigrateOnly() {
		gdb, err := db.New()
		if err != nil {
			panic(err)
		}

		sqlDB, _ := gdb.DB()
		sqlDB.Close()

		zap.L().Info("Migrations done")
		return
	}

	a, err := app.NewRouter()
	if err != nil {
		panic(err)
	}

	port := viper.GetInt("host.port")
	zap.L().Info("Server starting", zap.Int("port", port))

	err = a.Run(fmt.Sprintf(":%d", port))
	if err != nil {
		panic(err)
	}
}

func makeLogger() {
	var cfg zap.Config

	if config.Production() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
			pae.AppendString(gray + t.Format("15:04:05.000") + reset)
		}
		cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
			pae.AppendString(gray + ec.TrimmedPath() + reset)
		}
		cfg.DisableStacktrace = true
	}

	var lvl zapcore.Level
	if err := lvl.Set(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
