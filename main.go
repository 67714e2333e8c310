package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/viper"

	"marble-race/server/logging"
	loggingrace "marble-race/server/logging/race"
	"marble-race/server/logging/sinks"
)

// raceConfig is everything the process needs to run one race.
type raceConfig struct {
	Course  courseConfig
	Marbles int
	Addr    string
}

// loadConfig reads settings from an optional marble-race.cfg.json next to
// the binary and from MARBLE_RACE_* environment variables. CLI flag
// parsing deliberately stays outside this program.
func loadConfig() (raceConfig, error) {
	def := defaultCourseConfig()
	viper.SetDefault("seed", def.Seed)
	viper.SetDefault("complexity", def.Complexity)
	viper.SetDefault("width", def.Width)
	viper.SetDefault("height", def.Height)
	viper.SetDefault("marbles", defaultMarbleCount)
	viper.SetDefault("addr", ":8080")

	viper.SetConfigName("marble-race.cfg")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("MARBLE_RACE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return raceConfig{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := raceConfig{
		Course: courseConfig{
			Seed:       viper.GetString("seed"),
			Complexity: viper.GetInt("complexity"),
			Width:      viper.GetFloat64("width"),
			Height:     viper.GetFloat64("height"),
		},
		Marbles: viper.GetInt("marbles"),
		Addr:    viper.GetString("addr"),
	}
	cfg.Course = cfg.Course.normalized()
	if cfg.Marbles <= 0 {
		cfg.Marbles = defaultMarbleCount
	}
	return cfg, nil
}

var marbleColors = []string{
	"#e63946", "#f4a261", "#ffd166", "#3ddc97",
	"#48cae4", "#6c8dfa", "#b26ef2", "#ff5d73",
}

// spawnMarbles lines the field up across the starting channel, staggered
// in shallow rows so marbles do not spawn inside each other.
func spawnMarbles(sim *RaceSimulation, course *Course, count int) error {
	const lane = 42.0
	for i := 0; i < count; i++ {
		col := i % 3
		row := i / 3
		marble := Marble{
			ID:          fmt.Sprintf("marble-%d", i+1),
			X:           course.Start.X + float64(col-1)*lane,
			Y:           course.Start.Y + float64(row)*lane,
			Radius:      marbleDefaultRadius,
			Mass:        marbleDefaultMass,
			Friction:    marbleDefaultFriction,
			Restitution: marbleDefaultRestitution,
			Color:       marbleColors[i%len(marbleColors)],
		}
		if err := sim.AddMarble(marble); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	router, err := logging.NewRouter(nil, logging.DefaultConfig(), []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stderr, logging.ConsoleConfig{})},
	})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		router.Close(ctx)
	}()

	rng := newDeterministicRNG(cfg.Course.Seed, "generator")
	course := generateCourse(rng, cfg.Course)
	loggingrace.CourseGenerated(
		context.Background(),
		router,
		0,
		logging.EntityRef{ID: course.Seed, Kind: logging.EntityKindCourse},
		loggingrace.CourseGeneratedPayload{
			Complexity:  course.Complexity,
			Sections:    len(course.Sections),
			Checkpoints: len(course.Checkpoints),
		},
		nil,
	)

	sim, err := newRaceSimulation(course, router)
	if err != nil {
		log.Fatalf("simulation setup: %v", err)
	}
	if err := spawnMarbles(sim, course, cfg.Marbles); err != nil {
		log.Fatalf("spawning marbles: %v", err)
	}

	hub := newHub(sim, router)
	stop := make(chan struct{})
	defer close(stop)
	go hub.RunRace(stop)

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	http.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade failed: %v", err)
			return
		}
		id := hub.Watch(conn)
		// Drain control frames until the peer goes away.
		go func() {
			defer hub.Unwatch(id)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	http.HandleFunc("/course", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(course); err != nil {
			log.Printf("failed to encode course: %v", err)
		}
	})

	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	log.Printf("marble race listening on %s (seed=%s complexity=%d)", cfg.Addr, cfg.Course.Seed, cfg.Course.Complexity)
	log.Fatal(http.ListenAndServe(cfg.Addr, nil))
}
