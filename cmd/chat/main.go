package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"smart-pdf-assistant/internal/config"
	"smart-pdf-assistant/internal/constant"
	"smart-pdf-assistant/internal/dto"
	"smart-pdf-assistant/internal/pkg/logger"
	"smart-pdf-assistant/internal/service"
	"smart-pdf-assistant/pkg/backend"
	"smart-pdf-assistant/pkg/store"

	"github.com/fatih/color"
)

const usage = "Commands: /upload <path>, /history, /quit. Anything else is a question."

type repl struct {
	upload service.IUploadService
	chat   service.IChatService
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// stdout is the UI, so logs only go to the file.
	sysLogger := logger.NewIsolatedLogger(cfg.App.ChatLogPath)
	defer sysLogger.Sync()

	st := store.New()
	be := backend.NewHTTPClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	r := &repl{
		upload: service.NewUploadService(st, be, sysLogger),
		chat:   service.NewChatService(st, be, sysLogger),
	}

	color.Cyan("📄 %s", constant.AppTitle)
	fmt.Println(constant.AppTagline)
	fmt.Println(usage)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			return
		case line == "/history":
			r.printHistory()
		case line == "/upload" || strings.HasPrefix(line, "/upload "):
			r.doUpload(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/upload")))
		default:
			r.doChat(ctx, line)
		}
	}
}

func (r *repl) doUpload(ctx context.Context, path string) {
	var file *dto.SelectedFile
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			color.Red("Cannot read %s: %v", path, err)
			return
		}
		file = &dto.SelectedFile{Name: filepath.Base(path), Data: data}
		color.Yellow(constant.UploadBusy)
	}

	s, err := r.upload.SubmitUpload(ctx, file)
	if err != nil {
		color.Red("%v", err)
		return
	}
	if s.UploadError != "" {
		color.Red("%s", s.UploadError)
		return
	}

	if s.PageCount > 0 {
		color.Green("Loaded %s (%d pages)", s.PdfFileName, s.PageCount)
	} else {
		color.Green("Loaded %s", s.PdfFileName)
	}
	fmt.Println(constant.ChatEmptyTranscriptMsg)
}

func (r *repl) doChat(ctx context.Context, text string) {
	if text == "" {
		return
	}
	if !r.chat.Session().HasDocument() {
		color.Red("Upload a PDF first: /upload <path>")
		return
	}

	color.Yellow(constant.ChatTypingMessage)
	s, err := r.chat.SubmitQuery(ctx, text)
	if err != nil {
		color.Red("%v", err)
		return
	}
	if n := len(s.ChatHistory); n > 0 {
		printMessage(s.ChatHistory[n-1])
	}
}

func (r *repl) printHistory() {
	history := r.chat.History()
	if len(history) == 0 {
		fmt.Println(constant.ChatEmptyTranscriptMsg)
		return
	}
	for _, m := range history {
		printMessage(m)
	}
}

func printMessage(m store.ChatMessage) {
	if m.Sender == store.SenderUser {
		color.Cyan("you: %s", m.Text)
		return
	}
	color.Green("bot: %s", m.Text)
}
