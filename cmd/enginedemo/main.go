// =============================================================================
// SOUNDSTAGE - ENGINE DEMO
// =============================================================================
// Standalone process that wires the audio engine to a real output device
// and exposes the HTTP control surface (state, group volume, metrics,
// VU-meter WebSocket) described by the engine façade.
//
// USAGE:
//   go run ./cmd/enginedemo
// =============================================================================
package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"soundstage/internal/api"
	"soundstage/internal/config"
	"soundstage/internal/decode"
	"soundstage/internal/device"
	"soundstage/internal/engine"
)

const (
	groupSFX   = "sfx"
	groupMusic = "music"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := config.Load()

	log.Println("================================")
	log.Println("  SOUNDSTAGE - ENGINE DEMO")
	log.Println("================================")
	log.Printf("Audio: %dHz, %d channel(s)", cfg.Audio.SampleRate, cfg.Audio.Channels)

	eng := engine.NewWithGroups[string](cfg.Audio.Channels, cfg.Audio.SampleRate)
	metrics := engine.NewMetrics()
	eng.Attach(metrics)

	eng.SetGroupVolume(groupSFX, cfg.Audio.DefaultVolume)
	eng.SetGroupVolume(groupMusic, cfg.Audio.DefaultVolume)

	seedSounds(eng)

	sup, err := device.NewSupervisor(device.New(), eng.Mixer().WriteSamples)
	if err != nil {
		log.Fatalf("failed to open an output device: %v", err)
	}
	defer sup.Close()
	log.Printf("device stream opened: %+v", sup.Config())

	server := api.NewServer(eng, []string{groupSFX, groupMusic})
	addr := ":" + strconv.Itoa(cfg.Server.Port)
	go func() {
		if err := server.Start(addr); err != nil {
			log.Printf("control surface stopped: %v", err)
		}
	}()
	defer server.Stop()

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			peak, rms := eng.VUMeter()
			log.Printf("vu: peak=%.3f rms=%.3f", peak, rms)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("")
	log.Printf("Engine demo ready on %s. Press Ctrl+C to stop.", addr)
	log.Println("")
	<-quit

	log.Println("shutting down...")
}

// seedSounds registers a few demonstration sounds: a looping sine pad in
// the music group, and an optional one-shot WAV in the sfx group if
// DEMO_WAV_PATH points at a readable file. No OGG file is loaded here.
func seedSounds(eng *engine.Engine[string]) {
	tone := decode.NewSineSource(1, 48000, 220, 0.2)
	sound, err := eng.NewSoundWithGroup(groupMusic, tone)
	if err != nil {
		log.Printf("failed to register demo tone: %v", err)
		return
	}
	sound.SetLoop(true)
	sound.Play()

	if path := os.Getenv("DEMO_WAV_PATH"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Printf("DEMO_WAV_PATH set but unreadable: %v", err)
		} else {
			defer f.Close()
			wav, err := decode.DecodeWAV(f)
			if err != nil {
				log.Printf("failed to decode %s: %v", path, err)
			} else if s, err := eng.NewSoundWithGroup(groupSFX, wav); err == nil {
				s.Play()
			}
		}
	}
}
