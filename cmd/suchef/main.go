// Su-Chef — a voice-guided cooking assistant.
//
// Usage:
//
//	suchef [-verbose] [-quiet] [-no-speech] [-no-ai]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/YardenLiberman/Su-Chef/internal/agent"
	"github.com/YardenLiberman/Su-Chef/internal/config"
	"github.com/YardenLiberman/Su-Chef/internal/display"
	"github.com/YardenLiberman/Su-Chef/internal/generate"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
	"github.com/YardenLiberman/Su-Chef/internal/speech"
	"github.com/YardenLiberman/Su-Chef/internal/store"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".suchef-logs/suchef.log", "file to write logs to (use \"stderr\" to log to console)")
	noSpeech := flag.Bool("no-speech", false, "disable voice even if Azure Speech keys are set")
	noAI := flag.Bool("no-ai", false, "disable recipe generation and questions even if OPENAI_API_KEY is set")
	dbPath := flag.String("db", "", "path to the recipe database (overrides SUCHEF_DB)")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the menus stay clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Third-party libs write through the default log package; keep
	// that off the terminal too.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Wire dependencies.
	db, err := store.Open(cfg.DBPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	a := &app{
		cfg:     cfg,
		log:     log,
		store:   db,
		console: speech.NewConsole(os.Stdin, os.Stdout),
		out:     os.Stdout,
	}

	// Language-model features, when a key is present.
	if cfg.AIEnabled() && !*noAI {
		client := openai.NewClient(cfg.OpenAIAPIKey)
		a.generator = generate.New(client, log)
		a.assistant = agent.New(client, log)
		log.Info("AI enabled")
	} else if !*noAI {
		log.Info("AI disabled: set OPENAI_API_KEY to enable recipe generation and questions")
	}

	// Voice channel, when Azure Speech credentials are present. Any
	// audio init failure just leaves the console channel in charge.
	if cfg.SpeechEnabled() && !*noSpeech {
		a.voice = buildVoice(ctx, cfg, log)
	} else if !*noSpeech {
		log.Info("voice disabled: set SPEECH_KEY and SPEECH_REGION to enable")
	}
	if a.voice != nil {
		defer a.voice.Close()
	}

	fmt.Println(display.Banner())
	fmt.Println()

	a.run(ctx)
	fmt.Println(display.Info(speech.LineBye()))
}

// buildVoice assembles the spoken channel. Returns nil when any audio
// component fails to initialize.
func buildVoice(ctx context.Context, cfg *config.Config, log *logger.Logger) *speech.Voice {
	player, err := speech.NewPlayer(log)
	if err != nil {
		log.Error("audio player init failed, voice disabled: %v", err)
		return nil
	}

	mic, err := speech.NewRecorder(log)
	if err != nil {
		log.Error("microphone init failed, voice disabled: %v", err)
		return nil
	}

	synth := speech.NewSynthesizer(cfg.SpeechKey, cfg.SpeechRegion, cfg.VoiceName, log)
	rec := speech.NewRecognizer(cfg.SpeechKey, cfg.SpeechRegion, cfg.Language, log)
	cache := speech.NewAudioCache(cfg.VoiceName, cfg.CacheDir, log)

	voice := speech.NewVoice(synth, rec, mic, player, cache, os.Stdout, log)
	voice.Warmup(ctx)
	log.Info("voice enabled (voice=%s, region=%s)", cfg.VoiceName, cfg.SpeechRegion)
	return voice
}
