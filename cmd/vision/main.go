package main

import (
	"context"
	"flag"
	"fmt"
	"loria/internal/ai"
	"loria/internal/config"
	"loria/internal/service/companion"
	"mime"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Разовый анализ графика с диска тем же путём, что и POST /analyze-image.
func main() {
	imagePath := flag.String("image", "images/1.png", "путь к картинке с графиком")
	lang := flag.String("lang", "en", "язык персоны (en|mn)")

	cfg := config.NewConfig()
	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	var aiClient ai.Client
	if cfg.StubUpstream {
		aiClient = ai.NewStubClient()
	} else {
		oClient := ai.NewOpenAI(cfg.OpenAI)
		aiClient = ai.NewChatClient(&oClient, cfg.OpenAI.Model)
	}

	imageData, err := os.ReadFile(*imagePath)
	if err != nil {
		sugar.Fatalw("failed to read image file", "path", *imagePath, "error", err)
	}

	svc := companion.New(aiClient, cfg.OpenAI, sugar)
	resp, err := svc.AnalyzeImage(context.Background(), *lang, companion.Image{
		Data:        imageData,
		ContentType: mime.TypeByExtension(filepath.Ext(*imagePath)),
		Filename:    filepath.Base(*imagePath),
	})
	if err != nil {
		sugar.Fatalw("image analysis failed", "kind", companion.KindOf(err), "error", err)
	}

	fmt.Println(resp)
}
